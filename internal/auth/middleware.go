package auth

import (
	"net/http"
	"strings"

	"lectern/internal/domain"
	"lectern/internal/ports"
)

const sessionCookie = "lectern_session"

// Middleware resolves the request's identity token (Authorization
// bearer header, falling back to the session cookie) and, when it
// verifies, stores the user in the request context. Requests without
// a valid token pass through anonymous; pages render the signed-out
// shell and the data layer rejects mutations.
func Middleware(verifier ports.TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := extractBearer(r.Header.Get("Authorization"))
			if raw == "" {
				if c, err := r.Cookie(sessionCookie); err == nil {
					raw = c.Value
				}
			}
			if raw == "" {
				next.ServeHTTP(w, r)
				return
			}

			user, err := verifier.Verify(r.Context(), raw)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(domain.WithUser(r.Context(), user)))
		})
	}
}

func extractBearer(h string) string {
	if len(h) > 7 && strings.EqualFold(h[:7], "Bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}
