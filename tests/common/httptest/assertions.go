//go:build unit || e2e

package httptest

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	resdto "school-reservations/internal/handler/dto/response"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func AssertSuccessResponse(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, targetStruct any) {
	t.Helper()

	if !assert.Equal(t, expectedStatus, w.Code, "unexpected status, body: %s", w.Body.String()) {
		return
	}
	if expectedStatus >= 200 && expectedStatus < 300 && targetStruct != nil {
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), targetStruct), "failed to decode response JSON: %s", w.Body.String())
	}
}

// AssertErrorResponse checks the {"error": {"message": ...}} envelope written
// by the error middleware.
func AssertErrorResponse(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, expectedErrorMsg string) {
	t.Helper()

	assert.Equal(t, expectedStatus, w.Code, "unexpected status, body: %s", w.Body.String())

	var envelope struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope), "failed to decode error JSON: %s", w.Body.String())

	if expectedErrorMsg != "" {
		assert.Contains(t, envelope.Error.Message, expectedErrorMsg)
	}
}

// AssertRejection checks a booking rejection body and returns it for further
// assertions on its message or detail.
func AssertRejection(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, expectedKind string) resdto.ValidationResult {
	t.Helper()

	require.Equal(t, expectedStatus, w.Code, "unexpected status, body: %s", w.Body.String())

	var result resdto.ValidationResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result), "failed to decode rejection JSON: %s", w.Body.String())
	assert.False(t, result.OK)
	assert.Equal(t, expectedKind, result.Kind)
	return result
}

// AssertLocation checks the Location header of a 201 and returns the trailing id.
func AssertLocation(t *testing.T, w *httptest.ResponseRecorder, prefix string) string {
	t.Helper()

	loc := w.Header().Get("Location")
	require.True(t, strings.HasPrefix(loc, prefix), "Location %q does not start with %q", loc, prefix)
	return strings.TrimPrefix(loc, prefix)
}
