//go:build unit

package queries_test

import (
	"encoding/base64"
	"testing"
	"time"

	"school-reservations/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursor(t *testing.T) {
	t.Run("エンコードしたカーソルを復元できる", func(t *testing.T) {
		k := queries.Keyset{
			CreatedAt: time.Date(2025, 10, 6, 9, 15, 30, 123456000, time.UTC),
			ID:        uuid.New(),
		}

		got, err := queries.DecodeAfterCursor(queries.EncodeAfterCursor(k))

		require.NoError(t, err)
		assert.True(t, k.CreatedAt.Equal(got.CreatedAt))
		assert.Equal(t, k.ID, got.ID)
	})

	cases := []struct {
		name   string
		cursor string
	}{
		{name: "空文字NG", cursor: ""},
		{name: "base64でないNG", cursor: "%%%"},
		{name: "バージョン無しNG", cursor: base64.URLEncoding.EncodeToString([]byte("123-abc"))},
		{name: "UUID不正NG", cursor: base64.URLEncoding.EncodeToString([]byte("v1:123-not-a-uuid"))},
		{name: "時刻不正NG", cursor: base64.URLEncoding.EncodeToString([]byte("v1:abc-" + uuid.NewString()))},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := queries.DecodeAfterCursor(c.cursor)
			assert.Error(t, err)
		})
	}
}

func TestValidateLimit(t *testing.T) {
	assert.Equal(t, queries.DefaultListLimit, queries.ValidateLimit(0))
	assert.Equal(t, queries.DefaultListLimit, queries.ValidateLimit(-5))
	assert.Equal(t, 50, queries.ValidateLimit(50))
	assert.Equal(t, queries.MaxListLimit, queries.ValidateLimit(1000))
}
