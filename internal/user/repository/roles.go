package repository

import (
	"encoding/json"
	"strings"

	authDomain "github.com/allisson/workshop-users/internal/auth/domain"
	apperrors "github.com/allisson/workshop-users/internal/errors"
)

// marshalRoles encodes roles as a JSON array of role names. A nil slice is stored as [].
func marshalRoles(roles []authDomain.Role) ([]byte, error) {
	names := make([]string, 0, len(roles))
	for _, role := range roles {
		names = append(names, string(role))
	}

	data, err := json.Marshal(names)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal user roles")
	}
	return data, nil
}

// unmarshalRoles decodes the roles column. Names are kept as stored; resolving
// them against the role model happens when authorities are computed.
func unmarshalRoles(data []byte) ([]authDomain.Role, error) {
	if len(data) == 0 {
		return []authDomain.Role{}, nil
	}

	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal user roles")
	}

	roles := make([]authDomain.Role, 0, len(names))
	for _, name := range names {
		roles = append(roles, authDomain.Role(name))
	}
	return roles, nil
}

// isPostgreSQLUniqueViolation checks if the error is a PostgreSQL unique constraint violation
func isPostgreSQLUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	errMsg := strings.ToLower(err.Error())
	// PostgreSQL: "duplicate key value violates unique constraint" or "pq: duplicate key"
	return strings.Contains(errMsg, "duplicate key") || strings.Contains(errMsg, "unique constraint")
}

// isMySQLUniqueViolation checks if the error is a MySQL duplicate entry error (1062)
func isMySQLUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	errMsg := strings.ToLower(err.Error())
	return strings.Contains(errMsg, "duplicate entry") || strings.Contains(errMsg, "1062")
}
