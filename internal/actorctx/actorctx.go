// Package actorctx carries the authenticated identity on a plain
// context.Context, for code that should not depend on the HTTP framework.
package actorctx

import (
	"context"

	"github.com/poketrainer/skillhub/internal/auth"
)

type ctxKey struct{}

func WithClaims(ctx context.Context, claims *auth.Claims) context.Context {
	return context.WithValue(ctx, ctxKey{}, claims)
}

func ClaimsFrom(ctx context.Context) (*auth.Claims, bool) {
	v, ok := ctx.Value(ctxKey{}).(*auth.Claims)

	return v, ok && v != nil
}

func UserIDFrom(ctx context.Context) (string, bool) {
	claims, ok := ClaimsFrom(ctx)

	if !ok {
		return "", false
	}

	return claims.UserID(), claims.UserID() != ""
}
