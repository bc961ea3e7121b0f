package domain

import (
	"slices"
	"strings"
)

// Authority is an opaque capability string. In practice it is either a role marker
// ("ROLE_ADMIN") or a permission ("project:read"). Comparison is exact.
type Authority string

// RoleMarker returns the marker authority for role.
func RoleMarker(role Role) Authority {
	return Authority(RoleMarkerPrefix + string(role))
}

// AuthoritySet is an immutable set of authorities.
type AuthoritySet struct {
	items map[Authority]struct{}
}

// NewAuthoritySet builds a set from the given authorities. Empty strings are dropped.
func NewAuthoritySet(authorities ...Authority) AuthoritySet {
	items := make(map[Authority]struct{}, len(authorities))
	for _, a := range authorities {
		if a == "" {
			continue
		}
		items[a] = struct{}{}
	}
	return AuthoritySet{items: items}
}

// AuthoritySetFromStrings builds a set from raw strings, as decoded from token claims.
func AuthoritySetFromStrings(values []string) AuthoritySet {
	authorities := make([]Authority, 0, len(values))
	for _, v := range values {
		authorities = append(authorities, Authority(v))
	}
	return NewAuthoritySet(authorities...)
}

// Has reports whether the set contains authority.
func (s AuthoritySet) Has(authority Authority) bool {
	_, ok := s.items[authority]
	return ok
}

// HasAny reports whether the set contains at least one of the given authorities.
func (s AuthoritySet) HasAny(authorities ...Authority) bool {
	for _, a := range authorities {
		if s.Has(a) {
			return true
		}
	}
	return false
}

// Len returns the number of authorities in the set.
func (s AuthoritySet) Len() int {
	return len(s.items)
}

// Slice returns the authorities sorted, so serialized forms are stable.
func (s AuthoritySet) Slice() []Authority {
	out := make([]Authority, 0, len(s.items))
	for a := range s.items {
		out = append(out, a)
	}
	slices.Sort(out)
	return out
}

// Strings returns the sorted authorities as plain strings.
func (s AuthoritySet) Strings() []string {
	sorted := s.Slice()
	out := make([]string, len(sorted))
	for i, a := range sorted {
		out[i] = string(a)
	}
	return out
}

// Union returns a new set holding the authorities of both sets.
func (s AuthoritySet) Union(other AuthoritySet) AuthoritySet {
	items := make(map[Authority]struct{}, len(s.items)+len(other.items))
	for a := range s.items {
		items[a] = struct{}{}
	}
	for a := range other.items {
		items[a] = struct{}{}
	}
	return AuthoritySet{items: items}
}

// Equal reports whether both sets hold exactly the same authorities.
func (s AuthoritySet) Equal(other AuthoritySet) bool {
	if len(s.items) != len(other.items) {
		return false
	}
	for a := range s.items {
		if !other.Has(a) {
			return false
		}
	}
	return true
}

// RoleModel maps each role to its authority set. It is built once at startup from
// the fixed role enumeration and is read-only afterwards, so it is safe to share
// between goroutines without locking.
type RoleModel struct {
	roles       []Role
	authorities map[Role]AuthoritySet
}

// NewRoleModel builds the role table from the fixed enumeration.
func NewRoleModel() *RoleModel {
	definitions := []struct {
		role        Role
		permissions []Permission
	}{
		{role: RoleEstimator},
		{
			role: RoleAdmin,
			permissions: []Permission{
				EstimatorRead, EstimatorWrite,
				ProjectRead, ProjectWrite,
				AdminRead, AdminWrite,
			},
		},
		{
			role:        RoleEstimatorTrainee,
			permissions: []Permission{ProjectRead, EstimatorRead},
		},
	}

	model := &RoleModel{
		roles:       make([]Role, 0, len(definitions)),
		authorities: make(map[Role]AuthoritySet, len(definitions)),
	}
	for _, def := range definitions {
		authorities := make([]Authority, 0, len(def.permissions)+1)
		for _, p := range def.permissions {
			authorities = append(authorities, Authority(p))
		}
		authorities = append(authorities, RoleMarker(def.role))

		model.roles = append(model.roles, def.role)
		model.authorities[def.role] = NewAuthoritySet(authorities...)
	}
	return model
}

// Roles returns the known roles in declaration order.
func (m *RoleModel) Roles() []Role {
	return slices.Clone(m.roles)
}

// AuthoritiesFor returns the role's permissions plus its role marker.
func (m *RoleModel) AuthoritiesFor(role Role) (AuthoritySet, error) {
	set, ok := m.authorities[role]
	if !ok {
		return AuthoritySet{}, ErrUnknownRole
	}
	// Hand out a copy so callers can never reach the shared table.
	return set.Union(AuthoritySet{}), nil
}

// AuthoritiesForRoles returns the union of the authorities of every given role.
func (m *RoleModel) AuthoritiesForRoles(roles []Role) (AuthoritySet, error) {
	result := NewAuthoritySet()
	for _, role := range roles {
		set, err := m.AuthoritiesFor(role)
		if err != nil {
			return AuthoritySet{}, err
		}
		result = result.Union(set)
	}
	return result, nil
}

// ParseRole resolves a role name. The "ROLE_" marker prefix is accepted, matching is
// exact otherwise.
func (m *RoleModel) ParseRole(name string) (Role, error) {
	role := Role(strings.TrimPrefix(name, RoleMarkerPrefix))
	if _, ok := m.authorities[role]; !ok {
		return "", ErrUnknownRole
	}
	return role, nil
}

// ParseRoles resolves a list of role names. Unknown names fail the whole call and
// duplicates collapse.
func (m *RoleModel) ParseRoles(names []string) ([]Role, error) {
	roles := make([]Role, 0, len(names))
	for _, name := range names {
		role, err := m.ParseRole(name)
		if err != nil {
			return nil, err
		}
		if !slices.Contains(roles, role) {
			roles = append(roles, role)
		}
	}
	return roles, nil
}
