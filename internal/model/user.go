// internal/model/user.go
package model

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	// Email matching is case-sensitive: two addresses differing only in
	// case are distinct accounts.
	Email          string    `gorm:"type:text;uniqueIndex;not null" json:"email"`
	FirstName      string    `gorm:"type:text;not null" json:"first_name"`
	LastName       string    `gorm:"type:text" json:"last_name"`
	HashedPassword string    `gorm:"type:text;not null" json:"-"`
	IsActive       bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// UserWithOrgRole is the member-list projection of a user together with the
// role their membership carries in the organization being listed.
type UserWithOrgRole struct {
	User
	OrganizationRole OrgRole `json:"organization_role"`
}

// OrganizationMemberInfo and TeamMemberInfo are the membership views embedded
// in the current user's profile. They are assembled from joins, not stored.
type OrganizationMemberInfo struct {
	OrganizationID   uuid.UUID        `json:"organization_id"`
	OrganizationName string           `json:"name"`
	Role             OrgRole          `json:"role"`
	Status           MembershipStatus `json:"status"`
	JoinDate         time.Time        `json:"join_date"`
}

type TeamMemberInfo struct {
	TeamID         uuid.UUID `json:"team_id"`
	TeamName       string    `json:"name"`
	OrganizationID uuid.UUID `json:"organization_id"`
	Role           TeamRole  `json:"role"`
	JoinDate       time.Time `json:"join_date"`
}

type UserProfile struct {
	User
	Organizations []OrganizationMemberInfo `json:"organizations"`
	Teams         []TeamMemberInfo         `json:"teams"`
}
