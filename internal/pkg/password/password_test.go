//go:build unit

package password

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerify(t *testing.T) {
	t.Run("ハッシュ化したパスワードを検証できる", func(t *testing.T) {
		hashed, err := Hash("password123")
		require.NoError(t, err)
		assert.NotEqual(t, "password123", hashed)
		assert.NoError(t, Verify(hashed, "password123"))
	})

	t.Run("誤ったパスワードはErrMismatch", func(t *testing.T) {
		hashed, err := Hash("password123")
		require.NoError(t, err)
		assert.True(t, errors.Is(Verify(hashed, "password124"), ErrMismatch))
	})

	t.Run("最小長未満はハッシュ化しない", func(t *testing.T) {
		_, err := Hash("short")
		assert.True(t, errors.Is(err, ErrTooShort))
	})

	t.Run("空の値はErrMismatch", func(t *testing.T) {
		assert.True(t, errors.Is(Verify("", "password123"), ErrMismatch))
		assert.True(t, errors.Is(Verify("$2a$10$abc", ""), ErrMismatch))
	})

	t.Run("壊れたハッシュはErrMismatch以外のエラー", func(t *testing.T) {
		err := Verify("not-a-bcrypt-hash", "password123")
		require.Error(t, err)
		assert.False(t, errors.Is(err, ErrMismatch))
	})
}
