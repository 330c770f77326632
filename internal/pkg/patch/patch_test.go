//go:build unit

package patch_test

import (
	"testing"

	"school-reservations/internal/pkg/patch"

	"github.com/stretchr/testify/assert"
)

func ptr[T any](v T) *T { return &v }

func TestCoalesce(t *testing.T) {
	assert.True(t, patch.Coalesce(ptr(true), false))
	assert.False(t, patch.Coalesce(ptr(false), true), "送信されたゼロ値は保持される")
	assert.Equal(t, 3, patch.Coalesce[int](nil, 3))
}

func TestText(t *testing.T) {
	t.Run("未送信なら既存値", func(t *testing.T) {
		assert.Equal(t, "Lab 2", patch.Text(nil, "Lab 2"))
	})
	t.Run("送信値は前後の空白を除く", func(t *testing.T) {
		assert.Equal(t, "Lab 3", patch.Text(ptr("  Lab 3 "), "Lab 2"))
	})
	t.Run("空白のみは空文字", func(t *testing.T) {
		assert.Empty(t, patch.Text(ptr("   "), "Lab 2"))
	})
}

func TestDeref(t *testing.T) {
	assert.Empty(t, patch.Deref(nil))
	assert.Equal(t, "Math", patch.Deref(ptr("Math")))
}
