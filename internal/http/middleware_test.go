package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/example/dayplanner/internal/planner"
)

func TestRequireSession(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name        string
		cookieToken *http.Cookie
		headerToken string
		validator   *sessionValidatorStub
		wantStatus  int
	}{
		{
			name:       "missing credentials",
			validator:  &sessionValidatorStub{},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:        "invalid token",
			headerToken: "Bearer bad-token",
			validator:   &sessionValidatorStub{err: planner.ErrUnauthorized},
			wantStatus:  http.StatusUnauthorized,
		},
		{
			name:        "expired session",
			headerToken: "Bearer stale-token",
			validator:   &sessionValidatorStub{err: planner.ErrSessionExpired},
			wantStatus:  http.StatusUnauthorized,
		},
		{
			name:        "valid bearer token",
			headerToken: "Bearer good-token",
			validator:   &sessionValidatorStub{principal: planner.Principal{UserID: "user-1"}},
			wantStatus:  http.StatusOK,
		},
		{
			name:        "valid cookie token",
			cookieToken: &http.Cookie{Name: "session_token", Value: "good-token"},
			validator:   &sessionValidatorStub{principal: planner.Principal{UserID: "user-1"}},
			wantStatus:  http.StatusOK,
		},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			var sawPrincipal *planner.Principal
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if principal, ok := PrincipalFromContext(r.Context()); ok {
					sawPrincipal = &principal
				}
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tc.cookieToken != nil {
				req.AddCookie(tc.cookieToken)
			}
			if tc.headerToken != "" {
				req.Header.Set("Authorization", tc.headerToken)
			}

			recorder := httptest.NewRecorder()
			RequireSession(tc.validator, nil)(next).ServeHTTP(recorder, req)

			if recorder.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d (body %s)", recorder.Code, tc.wantStatus, recorder.Body.String())
			}
			if tc.wantStatus == http.StatusOK {
				if sawPrincipal == nil || sawPrincipal.UserID != "user-1" {
					t.Fatalf("principal not attached to context: %+v", sawPrincipal)
				}
			} else if sawPrincipal != nil {
				t.Fatalf("next handler ran despite rejection")
			}
		})
	}
}

func TestRequestLogger_PassesThrough(t *testing.T) {
	t.Parallel()

	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if LoggerFromContext(r.Context()) == nil {
			t.Error("request logger not attached to context")
		}
		called = true
		w.WriteHeader(http.StatusTeapot)
	})

	recorder := httptest.NewRecorder()
	RequestLogger(nil)(next).ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/anything", nil))

	if !called {
		t.Fatalf("next handler not invoked")
	}
	if recorder.Code != http.StatusTeapot {
		t.Fatalf("status = %d, want 418", recorder.Code)
	}
}
