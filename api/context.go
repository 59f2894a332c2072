package api

import (
	"context"

	"github.com/rpupo63/portfolio-site-backend/auth"
)

type keyType string

const claimsKey keyType = "claims"

// ctxWithClaims stores the validated token claims on the request context
func ctxWithClaims(ctx context.Context, claims *auth.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

// ctxGetClaims returns the claims stored by the auth middleware, or nil
func ctxGetClaims(ctx context.Context) *auth.Claims {
	claims, _ := ctx.Value(claimsKey).(*auth.Claims)
	return claims
}
