// internal/domain/errors.go
package domain

import "errors"

var (
	// General errors
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrForbidden    = errors.New("forbidden")

	// Auth-related errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrInactiveUser       = errors.New("inactive user")

	// User-related errors
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")

	// Organization-related errors
	ErrOrganizationNotFound = errors.New("organization not found")
	ErrMembershipNotFound   = errors.New("membership not found")
	ErrAlreadyMember        = errors.New("already a member")
	ErrNotOrgMember         = errors.New("user is not an active member of the organization")

	// Team-related errors
	ErrTeamNotFound = errors.New("team not found")

	// Incident-related errors
	ErrIncidentNotFound = errors.New("incident not found")

	// Resource-related errors
	ErrResourceNotFound     = errors.New("resource not found")
	ErrAssignmentNotFound   = errors.New("resource assignment not found")
	ErrInsufficientQuantity = errors.New("insufficient quantity available")
)
