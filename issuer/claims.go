package issuer

import (
	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/skillsenselab/authcore/entitlement"
)

// AccessClaims is the access-token claim set. Claims are ephemeral: built
// fresh per issuance from the principal and the resolved entitlements, never
// persisted. The registered ID claim is a fresh random identifier per token,
// so two tokens for the same principal never compare equal even when every
// other claim matches.
type AccessClaims struct {
	gojwt.RegisteredClaims
	Email    string   `json:"email"`
	Name     string   `json:"name"`
	TenantID string   `json:"tenant_id,omitempty"`
	Roles    []string `json:"roles"`
	Modules  []string `json:"modules"`
}

// buildClaims assembles the claim set directly from typed inputs. The
// super-role rule lives here, not in the resolver: a principal holding the
// configured super role gains the implicit module regardless of the tenant's
// subscription state.
func (i *Issuer) buildClaims(p *Principal, res entitlement.Result) *AccessClaims {
	now := i.now().UTC()

	roles := append([]string{}, res.Roles...)
	modules := append([]string{}, res.Modules...)

	if i.cfg.SuperRole != "" && i.cfg.SuperRoleModule != "" && containsString(roles, i.cfg.SuperRole) {
		if !containsString(modules, i.cfg.SuperRoleModule) {
			modules = append(modules, i.cfg.SuperRoleModule)
		}
	}

	return &AccessClaims{
		RegisteredClaims: gojwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   p.ID,
			Issuer:    i.signer.Config().Issuer,
			IssuedAt:  gojwt.NewNumericDate(now),
			ExpiresAt: gojwt.NewNumericDate(now.Add(i.signer.Config().AccessTokenTTL)),
		},
		Email:    p.Email,
		Name:     p.Name,
		TenantID: p.TenantID,
		Roles:    roles,
		Modules:  modules,
	}
}

func containsString(slice []string, val string) bool {
	for _, s := range slice {
		if s == val {
			return true
		}
	}
	return false
}
