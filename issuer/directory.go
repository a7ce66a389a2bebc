package issuer

import (
	"context"
	"errors"
)

// ErrPrincipalNotFound is returned by Directory lookups when no principal
// matches. The issuer translates it into the same generic failure as a wrong
// password, so callers can never distinguish the two.
var ErrPrincipalNotFound = errors.New("principal not found")

// Principal is an account as the user directory knows it.
type Principal struct {
	ID             string
	Email          string
	Name           string
	TenantID       string
	CredentialHash string
}

// Directory is the user-lookup contract (external collaborator). Lookups by
// email receive the identity already normalized (trimmed, lowercased).
type Directory interface {
	FindByEmail(ctx context.Context, email string) (*Principal, error)
	FindByID(ctx context.Context, id string) (*Principal, error)
}
