// internal/model/team.go
package model

import (
	"time"

	"github.com/google/uuid"
)

type TeamType string

const (
	TeamTypeResponse  TeamType = "response"
	TeamTypeMedical   TeamType = "medical"
	TeamTypeRescue    TeamType = "rescue"
	TeamTypeLogistics TeamType = "logistics"
	TeamTypeSupport   TeamType = "support"
)

type TeamStatus string

const (
	TeamStatusActive   TeamStatus = "active"
	TeamStatusInactive TeamStatus = "inactive"
	TeamStatusStandby  TeamStatus = "standby"
)

type TeamRole string

const (
	TeamRoleLeader     TeamRole = "leader"
	TeamRoleMember     TeamRole = "member"
	TeamRoleDispatcher TeamRole = "dispatcher"
)

type Team struct {
	ID             uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name           string     `gorm:"type:text;not null" json:"name"`
	OrganizationID uuid.UUID  `gorm:"type:uuid;not null" json:"organization_id"`
	Type           TeamType   `gorm:"type:team_type;not null" json:"type"`
	Description    string     `gorm:"type:text" json:"description"`
	GeographicArea string     `gorm:"type:text" json:"geographic_area"`
	Status         TeamStatus `gorm:"type:team_status;not null;default:'active'" json:"status"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`

	Organization *Organization    `gorm:"foreignKey:OrganizationID" json:"-"`
	Members      []TeamMembership `gorm:"foreignKey:TeamID" json:"-"`
}

type TeamMembership struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_team_memberships_user_team" json:"user_id"`
	TeamID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_team_memberships_user_team" json:"team_id"`
	Role      TeamRole  `gorm:"type:team_role;not null;default:'member'" json:"role"`
	JoinDate  time.Time `gorm:"autoCreateTime" json:"join_date"`
	AddedByID uuid.UUID `gorm:"type:uuid;not null" json:"added_by_id"`

	User    *User `gorm:"foreignKey:UserID" json:"-"`
	Team    *Team `gorm:"foreignKey:TeamID" json:"-"`
	AddedBy *User `gorm:"foreignKey:AddedByID" json:"-"`
}

type TeamStats struct {
	MemberCount       int64 `json:"member_count"`
	ActiveIncidents   int64 `json:"active_incidents"`
	AssignedResources int64 `json:"assigned_resources"`
}

type TeamDetail struct {
	Team
	Members          []User     `json:"members"`
	Resources        []Resource `json:"resources"`
	OrganizationName string     `json:"organization_name"`
	TeamStats
}
