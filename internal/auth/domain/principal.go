package domain

import (
	"github.com/google/uuid"
)

// Principal is the authenticated identity behind a request. It never carries a
// password hash; credentials stay inside the credential authenticator.
type Principal struct {
	ID          uuid.UUID
	Username    string
	Email       string
	Roles       []Role
	Authorities AuthoritySet
}

// HasAuthority reports whether the principal was granted authority.
func (p *Principal) HasAuthority(authority Authority) bool {
	return p != nil && p.Authorities.Has(authority)
}

// HasAnyRole reports whether the principal holds the marker of at least one role.
func (p *Principal) HasAnyRole(roles ...Role) bool {
	if p == nil {
		return false
	}
	for _, role := range roles {
		if p.Authorities.Has(RoleMarker(role)) {
			return true
		}
	}
	return false
}

// SecurityContext binds a validated principal to a single request. It is created
// by the authentication interceptor and dropped when the request completes.
type SecurityContext struct {
	Principal *Principal
	Claims    *TokenClaims
}
