// Package domain defines the authentication and authorization model: permissions,
// roles, principals, token claims and the error taxonomy shared by the token codec,
// the request interceptor and the authorization gate.
package domain

import "time"

// Permission is a fine-grained capability in "resource:action" form.
type Permission string

const (
	// EstimatorRead allows reading estimator data.
	EstimatorRead Permission = "estimator:read"

	// EstimatorWrite allows creating or changing estimator data.
	EstimatorWrite Permission = "estimator:write"

	// ProjectRead allows reading project data.
	ProjectRead Permission = "project:read"

	// ProjectWrite allows creating or changing project data.
	ProjectWrite Permission = "project:write"

	// AdminRead allows reading administrative data such as user accounts.
	AdminRead Permission = "admin:read"

	// AdminWrite allows changing administrative data such as user accounts.
	AdminWrite Permission = "admin:write"
)

// Role names a fixed set of permissions. Role names are upper case.
type Role string

const (
	// RoleEstimator is the base role. It carries no permissions beyond its marker.
	RoleEstimator Role = "ESTIMATOR"

	// RoleAdmin holds every read and write permission.
	RoleAdmin Role = "ADMIN"

	// RoleEstimatorTrainee is restricted to reading projects and estimators.
	RoleEstimatorTrainee Role = "ESTIMATORTRAINEE"
)

// RoleMarkerPrefix is prepended to a role name to form its marker authority.
const RoleMarkerPrefix = "ROLE_"

const (
	// TokenValidity is the fixed lifetime of an issued token.
	TokenValidity = 24 * time.Hour

	// DefaultTokenIssuer is the iss claim written into every token.
	DefaultTokenIssuer = "workshop_ltd"

	// DefaultTokenAudience is the aud claim written into every token.
	DefaultTokenAudience = "workshop_user"

	// BearerPrefix is the exact, case-sensitive prefix of the Authorization header.
	BearerPrefix = "Bearer "

	// TokenTypeBearer is reported to clients alongside an issued token.
	TokenTypeBearer = "Bearer"
)

// LoginLookup selects which public identifier the credential authenticator looks up.
type LoginLookup string

const (
	// LookupByEmail resolves the principal by email address.
	LookupByEmail LoginLookup = "email"

	// LookupByUsername resolves the principal by username.
	LookupByUsername LoginLookup = "username"
)
