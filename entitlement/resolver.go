// Package entitlement resolves what a principal is authorized for at a
// tenant: role names and active module identifiers, read at token-issuance
// time. Resolution is a pure read with no side effects; a principal with no
// active subscriptions resolves to empty sets, not an error.
package entitlement

import "context"

// Result is the typed entitlement set for one principal at one tenant.
// The issuer builds claims directly from this value.
type Result struct {
	Roles   []string
	Modules []string
}

// Resolver is the entitlement lookup contract the token issuer depends on.
// A resolver failure is fatal for issuance: no token is ever issued with
// guessed or empty-by-default entitlements.
type Resolver interface {
	Resolve(ctx context.Context, subjectID, tenantID string) (Result, error)
}

// ResolverFunc adapts an ordinary function to the Resolver interface.
type ResolverFunc func(ctx context.Context, subjectID, tenantID string) (Result, error)

// Resolve implements Resolver.
func (f ResolverFunc) Resolve(ctx context.Context, subjectID, tenantID string) (Result, error) {
	return f(ctx, subjectID, tenantID)
}
