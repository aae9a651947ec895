// internal/model/resource.go
package model

import (
	"time"

	"github.com/google/uuid"
)

type ResourceType string

const (
	ResourceVehicle   ResourceType = "vehicle"
	ResourceEquipment ResourceType = "equipment"
	ResourceMedical   ResourceType = "medical"
	ResourceSupply    ResourceType = "supply"
	ResourcePersonnel ResourceType = "personnel"
	ResourceOther     ResourceType = "other"
)

type ResourceStatus string

const (
	ResourceAvailable    ResourceStatus = "available"
	ResourceInUse        ResourceStatus = "in_use"
	ResourceOutOfService ResourceStatus = "out_of_service"
	ResourceReserved     ResourceStatus = "reserved"
)

type ResourceCondition string

const (
	ConditionExcellent ResourceCondition = "excellent"
	ConditionGood      ResourceCondition = "good"
	ConditionFair      ResourceCondition = "fair"
	ConditionPoor      ResourceCondition = "poor"
)

type Resource struct {
	ID       uuid.UUID         `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name     string            `gorm:"type:text;not null" json:"name"`
	Type     ResourceType      `gorm:"type:resource_type;not null" json:"type"`
	Status   ResourceStatus    `gorm:"type:resource_status;not null;default:'available'" json:"status"`
	Quantity int               `gorm:"not null;default:1;check:quantity >= 0" json:"quantity"`
	Condition ResourceCondition `gorm:"type:resource_condition;not null;default:'good'" json:"condition"`

	Latitude            *float64 `gorm:"type:double precision" json:"latitude,omitempty"`
	Longitude           *float64 `gorm:"type:double precision" json:"longitude,omitempty"`
	LocationDescription string   `gorm:"type:text" json:"location_description"`

	OrganizationID uuid.UUID  `gorm:"type:uuid;not null" json:"organization_id"`
	TeamID         *uuid.UUID `gorm:"type:uuid" json:"team_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Organization *Organization `gorm:"foreignKey:OrganizationID" json:"-"`
	Team         *Team         `gorm:"foreignKey:TeamID" json:"-"`
}

type ResourceAssignment struct {
	ID         uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ResourceID uuid.UUID  `gorm:"type:uuid;not null" json:"resource_id"`
	IncidentID uuid.UUID  `gorm:"type:uuid;not null" json:"incident_id"`
	Quantity   int        `gorm:"not null;default:1;check:quantity > 0" json:"quantity"`
	AssignedAt time.Time  `gorm:"autoCreateTime" json:"assigned_at"`
	ReturnedAt *time.Time `json:"returned_at,omitempty"`

	Resource *Resource `gorm:"foreignKey:ResourceID" json:"-"`
	Incident *Incident `gorm:"foreignKey:IncidentID" json:"-"`
}

// Active reports whether the assignment is still checked out.
func (a *ResourceAssignment) Active() bool {
	return a.ReturnedAt == nil
}

// AvailableQuantity computes how many units of the resource remain after
// subtracting all active assignments. The resource's status column is derived
// from this number, never the other way around.
func AvailableQuantity(r *Resource, assignments []*ResourceAssignment) int {
	available := r.Quantity
	for _, a := range assignments {
		if a.Active() {
			available -= a.Quantity
		}
	}
	return available
}

type ResourceDetail struct {
	Resource
	AvailableQty       int                   `json:"available_quantity"`
	CurrentAssignments []*ResourceAssignment `json:"current_assignments"`
	AssignmentHistory  []*ResourceAssignment `json:"assignment_history"`
	OrganizationName   string                `json:"organization_name"`
	TeamName           string                `json:"team_name,omitempty"`
}
