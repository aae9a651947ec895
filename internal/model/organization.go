// internal/model/organization.go
package model

import (
	"time"

	"github.com/google/uuid"
)

type OrganizationType string

const (
	OrgTypeEmergencyResponse    OrganizationType = "emergency_response"
	OrgTypeResourceDistribution OrganizationType = "resource_distribution"
	OrgTypeVolunteerCoord       OrganizationType = "volunteer_coordination"
	OrgTypeDisasterRelief       OrganizationType = "disaster_relief"
)

type Visibility string

const (
	VisibilityPublic  Visibility = "public"
	VisibilityPrivate Visibility = "private"
)

type OrgRole string

const (
	OrgRoleAdmin  OrgRole = "admin"
	OrgRoleMember OrgRole = "member"
)

type MembershipStatus string

const (
	MembershipActive  MembershipStatus = "active"
	MembershipPending MembershipStatus = "pending"
	// MembershipDenied is reachable through the status enum but no endpoint
	// transitions into it yet.
	MembershipDenied MembershipStatus = "denied"
)

type Organization struct {
	ID          uuid.UUID        `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name        string           `gorm:"type:text;not null" json:"name"`
	Description string           `gorm:"type:text" json:"description"`
	Type        OrganizationType `gorm:"type:organization_type;not null" json:"type"`
	Visibility  Visibility       `gorm:"type:visibility_type;not null;default:'public'" json:"visibility"`
	IsVerified  bool             `gorm:"not null;default:false" json:"is_verified"`
	Region      string           `gorm:"type:text;not null" json:"region"`
	CreatedByID uuid.UUID        `gorm:"type:uuid;not null" json:"created_by_id"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`

	CreatedBy *User                    `gorm:"foreignKey:CreatedByID" json:"-"`
	Members   []OrganizationMembership `gorm:"foreignKey:OrganizationID" json:"-"`
}

type OrganizationMembership struct {
	ID             uuid.UUID        `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID         uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:idx_org_memberships_user_org" json:"user_id"`
	OrganizationID uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:idx_org_memberships_user_org" json:"organization_id"`
	Role           OrgRole          `gorm:"type:org_role;not null;default:'member'" json:"role"`
	Status         MembershipStatus `gorm:"type:membership_status;not null;default:'pending'" json:"status"`
	JoinDate       time.Time        `gorm:"autoCreateTime" json:"join_date"`
	LastActive     *time.Time       `json:"last_active,omitempty"`

	User         *User         `gorm:"foreignKey:UserID" json:"-"`
	Organization *Organization `gorm:"foreignKey:OrganizationID" json:"-"`
}

// OrganizationStats carries the aggregate counts shown on the organization
// detail view.
type OrganizationStats struct {
	MemberCount     int64 `json:"member_count"`
	TeamCount       int64 `json:"team_count"`
	ResourceCount   int64 `json:"resource_count"`
	ActiveIncidents int64 `json:"active_incidents"`
}

type OrganizationDetail struct {
	Organization
	Members []UserWithOrgRole `json:"members"`
	Teams   []Team            `json:"teams"`
	OrganizationStats
}
