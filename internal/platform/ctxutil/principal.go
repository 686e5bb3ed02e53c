package ctxutil

import "context"

type principalKey struct{}

// Principal is the authenticated caller resolved from the bearer token.
type Principal struct {
	UserID    string
	TokenID   string
	ExpiresAt int64
}

func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

func GetPrincipal(ctx context.Context) *Principal {
	if p, ok := ctx.Value(principalKey{}).(*Principal); ok {
		return p
	}
	return nil
}

// UserID returns the principal's user id, or "" when unauthenticated.
func UserID(ctx context.Context) string {
	if p := GetPrincipal(ctx); p != nil {
		return p.UserID
	}
	return ""
}
