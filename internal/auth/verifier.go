// Package auth consumes identity tokens from the external auth
// provider. The application never issues tokens or handles
// credentials; it only verifies what the provider signed.
package auth

import (
	"context"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"lectern/internal/domain"
	"lectern/internal/ports"
)

type Verifier struct {
	secret []byte
	issuer string
}

var _ ports.TokenVerifier = (*Verifier)(nil)

func NewVerifier(secret, issuer string) *Verifier {
	return &Verifier{secret: []byte(secret), issuer: issuer}
}

type idClaims struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	PhotoURL string `json:"picture"`
	jwt.RegisteredClaims
}

// Verify validates signature, expiry and issuer, and maps the claims
// to a domain user. Subject is the user id and is required; the
// profile fields are optional and degrade to placeholders in the UI.
func (v *Verifier) Verify(_ context.Context, raw string) (domain.User, error) {
	var claims idClaims
	tkn, err := jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
		return v.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(v.issuer),
	)
	if err != nil {
		return domain.User{}, fmt.Errorf("invalid token: %w", err)
	}
	if !tkn.Valid {
		return domain.User{}, jwt.ErrTokenInvalidClaims
	}
	if claims.Subject == "" {
		return domain.User{}, fmt.Errorf("token has no subject")
	}

	return domain.User{
		ID:          claims.Subject,
		DisplayName: claims.Name,
		Email:       claims.Email,
		PhotoURL:    claims.PhotoURL,
	}, nil
}
