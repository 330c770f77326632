//go:build unit || e2e

package testutil

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

// Mutation edits a request body after it has been flattened to JSON fields.
type Mutation func(map[string]any)

// DtoMap flattens v through its json tags so tests can break single fields
// before the body reaches a handler.
func DtoMap(t *testing.T, v any, muts ...func(map[string]any)) map[string]any {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)

	m := map[string]any{}
	require.NoError(t, json.Unmarshal(raw, &m))
	for _, mut := range muts {
		if mut != nil {
			mut(m)
		}
	}
	return m
}

// Field sets key to value. A nil value removes the key, which is how tests
// send a request with a required field missing.
func Field(key string, value any) Mutation {
	if value == nil {
		return Without(key)
	}
	return func(m map[string]any) {
		m[key] = value
	}
}

func Without(keys ...string) Mutation {
	return func(m map[string]any) {
		for _, k := range keys {
			delete(m, k)
		}
	}
}
