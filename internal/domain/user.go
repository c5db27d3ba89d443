package domain

import "context"

// User is the identity supplied by the external auth provider.
// Only ID is guaranteed; the rest degrade to placeholders in the UI.
type User struct {
	ID          string
	DisplayName string
	Email       string
	PhotoURL    string
}

type userCtxKey struct{}

// WithUser stores the authenticated user in the request context.
func WithUser(ctx context.Context, u User) context.Context {
	return context.WithValue(ctx, userCtxKey{}, u)
}

// UserFromCtx returns the authenticated user, if any.
func UserFromCtx(ctx context.Context) (User, bool) {
	u, ok := ctx.Value(userCtxKey{}).(User)
	return u, ok
}
