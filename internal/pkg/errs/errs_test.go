//go:build unit

package errs_test

import (
	"errors"
	"strings"
	"testing"

	"school-reservations/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMark(t *testing.T) {
	t.Run("マーク済みエラーは両方に一致", func(t *testing.T) {
		base := errs.New("unique violation")
		marked := errs.Mark(base, errs.ErrDatabaseOperationFailed)

		assert.True(t, errs.Is(marked, errs.ErrDatabaseOperationFailed))
		assert.ErrorIs(t, marked, errs.ErrDatabaseOperationFailed)
		assert.True(t, errors.Is(marked, base))
		assert.Equal(t, "unique violation", marked.Error())
	})

	t.Run("nilはマーク自体を返す", func(t *testing.T) {
		assert.Equal(t, errs.ErrForbidden, errs.Mark(nil, errs.ErrForbidden))
	})
}

func TestMarkFormatKeepsStack(t *testing.T) {
	marked := errs.Mark(errs.New("deadlock"), errs.ErrDatabaseOperationFailed)
	assert.Greater(t, len(errs.ExtractStackLines(marked, 0)), 1)
}

func TestWrap(t *testing.T) {
	assert.NoError(t, errs.Wrap(nil, "ignored"))
	assert.NoError(t, errs.Wrapf(nil, "ignored %d", 1))

	err := errs.Wrapf(errs.ErrReservationNotFound, "load reservation %d", 7)
	assert.Equal(t, "load reservation 7: reservation not found", err.Error())
	assert.True(t, errs.Is(err, errs.ErrReservationNotFound))
}

func TestExtractStackLines(t *testing.T) {
	assert.Nil(t, errs.ExtractStackLines(nil, 5))

	lines := errs.ExtractStackLines(errs.Wrap(errs.New("boom"), "handler"), 4)
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "handler"))
	for _, l := range lines {
		assert.NotEmpty(t, strings.TrimSpace(l))
	}
}
