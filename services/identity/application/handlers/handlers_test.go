package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// Validation and auth failures short-circuit before any service call, so
// these run against handlers with no backing services.

func TestPostSignupHandler_BadBody(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{"invalid JSON", `{"name":`, http.StatusBadRequest},
		{"missing fields", `{}`, http.StatusUnprocessableEntity},
		{"bad email", `{"name":"Alice","email":"not-an-email","password":"longenough"}`, http.StatusUnprocessableEntity},
		{"short password", `{"name":"Alice","email":"alice@example.com","password":"short"}`, http.StatusUnprocessableEntity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodPost, "/auth/signup", strings.NewReader(tt.body))
			NewPostSignupHandler(nil, nil).Execute(w, r)
			if w.Code != tt.wantStatus {
				t.Fatalf("expected %d, got %d", tt.wantStatus, w.Code)
			}
		})
	}
}

func TestPostLoginHandler_BadBody(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{"invalid JSON", `not json`, http.StatusBadRequest},
		{"missing password", `{"email":"alice@example.com"}`, http.StatusUnprocessableEntity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(tt.body))
			NewPostLoginHandler(nil, nil).Execute(w, r)
			if w.Code != tt.wantStatus {
				t.Fatalf("expected %d, got %d", tt.wantStatus, w.Code)
			}
		})
	}
}

func TestGetMeHandler_Unauthenticated(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/auth/me", nil)

	NewGetMeHandler(nil).Execute(w, r)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}
