package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestWrapErrorPreservesKind(t *testing.T) {
	underlying := fmt.Errorf("connection refused")
	wrapped := WrapError(ErrInternal, underlying)

	if !errors.Is(wrapped, ErrInternal) {
		t.Error("wrapped error should match its predefined kind")
	}
	if !errors.Is(wrapped, underlying) {
		t.Error("wrapped error should expose the underlying cause")
	}
	if errors.Is(wrapped, ErrUserNotFound) {
		t.Error("wrapped error should not match a different kind")
	}
}

func TestDomainErrorMessage(t *testing.T) {
	plain := NewDomainError("TEST", "something broke")
	if plain.Error() != "something broke" {
		t.Errorf("Error() = %q, want %q", plain.Error(), "something broke")
	}

	wrapped := WrapError(plain, fmt.Errorf("inner detail"))
	if wrapped.Error() != "something broke: inner detail" {
		t.Errorf("Error() = %q, want message with cause", wrapped.Error())
	}
}

func TestToHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil error", nil, http.StatusOK},
		{"bad credentials", ErrBadCredentials, http.StatusUnauthorized},
		{"invalid token", ErrInvalidToken, http.StatusUnauthorized},
		{"inactive account", ErrInactiveAccount, http.StatusBadRequest},
		{"forbidden", ErrForbidden, http.StatusForbidden},
		{"user not found", ErrUserNotFound, http.StatusNotFound},
		{"question not found", ErrQuestionNotFound, http.StatusNotFound},
		{"response not found", ErrResponseNotFound, http.StatusNotFound},
		{"email exists", ErrEmailExists, http.StatusBadRequest},
		{"username exists", ErrUsernameExists, http.StatusBadRequest},
		{"category exists", ErrCategoryExists, http.StatusBadRequest},
		{"self deactivation", ErrSelfDeactivation, http.StatusBadRequest},
		{"invalid input", ErrInvalidInput, http.StatusBadRequest},
		{"password mismatch", ErrPasswordMismatch, http.StatusBadRequest},
		{"internal", ErrInternal, http.StatusInternalServerError},
		{"service unavailable", ErrServiceUnavailable, http.StatusServiceUnavailable},
		{"wrapped keeps status", WrapError(ErrQuestionNotFound, fmt.Errorf("record not found")), http.StatusNotFound},
		{"plain error", fmt.Errorf("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToHTTPStatus(tt.err); got != tt.want {
				t.Errorf("ToHTTPStatus() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestGetErrorMessage(t *testing.T) {
	if got := GetErrorMessage(nil); got != "" {
		t.Errorf("GetErrorMessage(nil) = %q, want empty", got)
	}

	wrapped := WrapError(ErrBadCredentials, fmt.Errorf("bcrypt compare failed"))
	if got := GetErrorMessage(wrapped); got != "incorrect username or password" {
		t.Errorf("GetErrorMessage() = %q, internal detail must not leak", got)
	}

	if got := GetErrorMessage(fmt.Errorf("plain failure")); got != "plain failure" {
		t.Errorf("GetErrorMessage() = %q, want the raw message", got)
	}
}

func TestGetDomainError(t *testing.T) {
	if GetDomainError(fmt.Errorf("plain")) != nil {
		t.Error("plain errors should not resolve to a domain error")
	}

	wrapped := fmt.Errorf("outer: %w", ErrForbidden)
	domainErr := GetDomainError(wrapped)
	if domainErr == nil || domainErr.Code != "FORBIDDEN" {
		t.Errorf("GetDomainError() = %v, want FORBIDDEN kind", domainErr)
	}
	if !IsDomainError(wrapped) {
		t.Error("IsDomainError should see through fmt.Errorf wrapping")
	}
}
