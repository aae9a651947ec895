// internal/model/incident.go
package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type IncidentType string

const (
	IncidentTypeEmergency       IncidentType = "emergency"
	IncidentTypeResourceRequest IncidentType = "resource_request"
	IncidentTypeStatusUpdate    IncidentType = "status_update"
)

type IncidentPriority string

const (
	PriorityCritical IncidentPriority = "critical"
	PriorityHigh     IncidentPriority = "high"
	PriorityMedium   IncidentPriority = "medium"
	PriorityLow      IncidentPriority = "low"
)

type IncidentStatus string

const (
	IncidentOpen       IncidentStatus = "open"
	IncidentInProgress IncidentStatus = "in_progress"
	IncidentResolved   IncidentStatus = "resolved"
	IncidentClosed     IncidentStatus = "closed"
)

type UpdateType string

const (
	UpdateStatusChange   UpdateType = "status_change"
	UpdateResourceUpdate UpdateType = "resource_update"
	UpdateGeneral        UpdateType = "general_update"
)

type Incident struct {
	ID          uuid.UUID        `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Title       string           `gorm:"type:text;not null" json:"title"`
	Description string           `gorm:"type:text" json:"description"`
	Type        IncidentType     `gorm:"type:incident_type;not null" json:"type"`
	Priority    IncidentPriority `gorm:"type:incident_priority;not null" json:"priority"`
	Status      IncidentStatus   `gorm:"type:incident_status;not null;default:'open'" json:"status"`

	Latitude            *float64 `gorm:"type:double precision" json:"latitude,omitempty"`
	Longitude           *float64 `gorm:"type:double precision" json:"longitude,omitempty"`
	LocationDescription string   `gorm:"type:text" json:"location_description"`

	OrganizationID uuid.UUID  `gorm:"type:uuid;not null" json:"organization_id"`
	CreatedByID    uuid.UUID  `gorm:"type:uuid;not null" json:"created_by_id"`
	AssignedTeamID *uuid.UUID `gorm:"type:uuid" json:"assigned_team_id,omitempty"`

	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
	ResolvedAt *time.Time `json:"resolved_at,omitempty"`

	Organization *Organization `gorm:"foreignKey:OrganizationID" json:"-"`
	Creator      *User         `gorm:"foreignKey:CreatedByID" json:"-"`
	AssignedTeam *Team         `gorm:"foreignKey:AssignedTeamID" json:"-"`
}

// Metadata is an opaque key-value payload stored as jsonb. It implements
// sql.Scanner and driver.Valuer.
type Metadata map[string]any

func (m *Metadata) Scan(value interface{}) error {
	if value == nil {
		*m = Metadata{}
		return nil
	}

	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported Scan, storing driver.Value type %T into type %T", value, m)
	}

	return json.Unmarshal(raw, m)
}

func (m Metadata) Value() (driver.Value, error) {
	if m == nil {
		return "{}", nil
	}

	raw, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(raw), nil
}

type IncidentUpdate struct {
	ID         uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	IncidentID uuid.UUID  `gorm:"type:uuid;not null" json:"incident_id"`
	UserID     uuid.UUID  `gorm:"type:uuid;not null" json:"user_id"`
	Content    string     `gorm:"type:text;not null" json:"content"`
	UpdateType UpdateType `gorm:"type:update_type;not null;default:'general_update'" json:"update_type"`
	Metadata   Metadata   `gorm:"type:jsonb" json:"metadata"`
	CreatedAt  time.Time  `json:"created_at"`

	Incident *Incident `gorm:"foreignKey:IncidentID" json:"-"`
	User     *User     `gorm:"foreignKey:UserID" json:"-"`
}

// ActiveIncidentStatuses are the statuses counted as "active" in dashboard
// aggregates.
var ActiveIncidentStatuses = []IncidentStatus{IncidentOpen, IncidentInProgress}

type IncidentDetail struct {
	Incident
	AssignedResources []ResourceAssignment `json:"assigned_resources"`
	OrganizationName  string               `json:"organization_name"`
	AssignedTeamName  string               `json:"assigned_team_name,omitempty"`
	CreatorName       string               `json:"creator_name"`
}
