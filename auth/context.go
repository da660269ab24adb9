package auth

import "context"

type claimContextKey struct{}

// withClaim attaches claim to ctx, for downstream handlers to read via
// ClaimFromContext. This is the sole side effect the middleware has on
// a successful authentication (§4.6).
func withClaim(ctx context.Context, claim Claim) context.Context {
	return context.WithValue(ctx, claimContextKey{}, claim)
}

// ClaimFromContext returns the Claim attached by the authentication
// middleware, if any.
func ClaimFromContext(ctx context.Context) (Claim, bool) {
	claim, ok := ctx.Value(claimContextKey{}).(Claim)
	return claim, ok
}
