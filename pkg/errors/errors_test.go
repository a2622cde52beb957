// SPDX-License-Identifier: Apache-2.0

package errors

import (
	"errors"
	"net/http"
	"testing"
)

func TestNew(t *testing.T) {
	cause := errors.New("connection refused")
	e := New(CodeLLMError, "gemini call failed", cause)

	if e.Code != CodeLLMError {
		t.Errorf("expected CodeLLMError, got %v", e.Code)
	}
	if e.Message != "gemini call failed" {
		t.Errorf("expected message 'gemini call failed', got %q", e.Message)
	}
	if !errors.Is(e, cause) {
		t.Errorf("expected errors.Is to see the wrapped cause")
	}
}

func TestErrorString(t *testing.T) {
	e := Newf(CodeModelNotConfigured, "model %q not configured for API routing", "gpt-99")
	want := `[MODEL_NOT_CONFIGURED] model "gpt-99" not configured for API routing`
	if e.Error() != want {
		t.Errorf("Error() = %q, want %q", e.Error(), want)
	}
}

func TestCodeOf(t *testing.T) {
	if got := CodeOf(Newf(CodeNotFound, "agent missing")); got != CodeNotFound {
		t.Errorf("CodeOf(typed) = %v, want CodeNotFound", got)
	}
	if got := CodeOf(errors.New("plain")); got != CodeInternal {
		t.Errorf("CodeOf(plain) = %v, want CodeInternal", got)
	}
}

func TestAsErrorNil(t *testing.T) {
	if AsError(nil) != nil {
		t.Errorf("AsError(nil) should be nil")
	}
}

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		code ErrorCode
		want int
	}{
		{CodeNotFound, http.StatusNotFound},
		{CodeInvalidInput, http.StatusBadRequest},
		{CodeModelNotConfigured, http.StatusBadRequest},
		{CodeAlreadyExists, http.StatusConflict},
		{CodeCredentialsMissing, http.StatusUnauthorized},
		{CodeLLMError, http.StatusBadGateway},
		{CodeTTSError, http.StatusInternalServerError},
		{CodeStorageError, http.StatusInternalServerError},
		{CodeInternal, http.StatusInternalServerError},
	}
	for _, c := range cases {
		if got := HTTPStatus(c.code); got != c.want {
			t.Errorf("HTTPStatus(%s) = %d, want %d", c.code, got, c.want)
		}
	}
}
