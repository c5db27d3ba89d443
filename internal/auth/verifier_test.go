package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"lectern/internal/domain"
)

const (
	testSecret = "test-secret"
	testIssuer = "lectern-test"
)

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	tkn := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	raw, err := tkn.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("Failed to sign token: %v", err)
	}
	return raw
}

func TestVerifier_Verify(t *testing.T) {
	v := NewVerifier(testSecret, testIssuer)
	now := time.Now()

	raw := signToken(t, jwt.MapClaims{
		"sub":     "user-1",
		"iss":     testIssuer,
		"exp":     now.Add(time.Hour).Unix(),
		"name":    "Dana",
		"email":   "dana@example.com",
		"picture": "https://example.com/dana.png",
	})

	user, err := v.Verify(context.Background(), raw)
	if err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}
	want := domain.User{
		ID:          "user-1",
		DisplayName: "Dana",
		Email:       "dana@example.com",
		PhotoURL:    "https://example.com/dana.png",
	}
	if user != want {
		t.Errorf("Verify = %+v, want %+v", user, want)
	}
}

func TestVerifier_VerifyRejects(t *testing.T) {
	v := NewVerifier(testSecret, testIssuer)
	now := time.Now()

	tests := []struct {
		name string
		raw  string
	}{
		{"garbage", "not-a-token"},
		{"expired", signToken(t, jwt.MapClaims{
			"sub": "user-1",
			"iss": testIssuer,
			"exp": now.Add(-time.Hour).Unix(),
		})},
		{"wrong issuer", signToken(t, jwt.MapClaims{
			"sub": "user-1",
			"iss": "someone-else",
			"exp": now.Add(time.Hour).Unix(),
		})},
		{"missing subject", signToken(t, jwt.MapClaims{
			"iss": testIssuer,
			"exp": now.Add(time.Hour).Unix(),
		})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := v.Verify(context.Background(), tt.raw); err == nil {
				t.Error("Verify accepted an invalid token")
			}
		})
	}
}

func TestMiddleware(t *testing.T) {
	v := NewVerifier(testSecret, testIssuer)
	raw := signToken(t, jwt.MapClaims{
		"sub": "user-1",
		"iss": testIssuer,
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	var gotUser *domain.User
	handler := Middleware(v)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if u, ok := domain.UserFromCtx(r.Context()); ok {
			gotUser = &u
		}
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name     string
		prepare  func(r *http.Request)
		wantUser bool
	}{
		{"no token", func(r *http.Request) {}, false},
		{"bearer header", func(r *http.Request) {
			r.Header.Set("Authorization", "Bearer "+raw)
		}, true},
		{"session cookie", func(r *http.Request) {
			r.AddCookie(&http.Cookie{Name: sessionCookie, Value: raw})
		}, true},
		{"invalid bearer stays anonymous", func(r *http.Request) {
			r.Header.Set("Authorization", "Bearer nonsense")
		}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotUser = nil
			r := httptest.NewRequest(http.MethodGet, "/lectures", nil)
			tt.prepare(r)
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, r)

			if tt.wantUser && gotUser == nil {
				t.Error("expected a user in context, got none")
			}
			if !tt.wantUser && gotUser != nil {
				t.Errorf("expected anonymous request, got user %+v", *gotUser)
			}
			if tt.wantUser && gotUser != nil && gotUser.ID != "user-1" {
				t.Errorf("user ID = %q, want %q", gotUser.ID, "user-1")
			}
		})
	}
}
