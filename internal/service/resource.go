// internal/service/resource.go
package service

import (
	"context"
	"fmt"

	"github.com/emresys/emre/internal/authz"
	"github.com/emresys/emre/internal/domain"
	"github.com/emresys/emre/internal/model"
	"github.com/emresys/emre/internal/repository"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type ResourceService struct {
	repo      repository.ResourceRepositoryIface
	incidents repository.IncidentRepositoryIface
	guard     *authz.Guard
	validate  *validator.Validate
}

func NewResourceService(repo repository.ResourceRepositoryIface, incidents repository.IncidentRepositoryIface, guard *authz.Guard) *ResourceService {
	return &ResourceService{
		repo:      repo,
		incidents: incidents,
		guard:     guard,
		validate:  validator.New(),
	}
}

type CreateResourceInput struct {
	Name                string                  `json:"name" validate:"required"`
	Type                model.ResourceType      `json:"type" validate:"required,oneof=vehicle equipment medical supply personnel other"`
	Quantity            int                     `json:"quantity" validate:"omitempty,min=0"`
	Condition           model.ResourceCondition `json:"condition" validate:"omitempty,oneof=excellent good fair poor"`
	Latitude            *float64                `json:"latitude,omitempty"`
	Longitude           *float64                `json:"longitude,omitempty"`
	LocationDescription string                  `json:"location_description"`
	OrganizationID      uuid.UUID               `json:"organization_id" validate:"required"`
	TeamID              *uuid.UUID              `json:"team_id,omitempty"`
}

// Create registers a resource in an organization's inventory. Only org
// admins may add inventory.
func (s *ResourceService) Create(ctx context.Context, input CreateResourceInput, actorID uuid.UUID) (*model.Resource, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, err)
	}

	admin, err := s.guard.IsOrgAdmin(ctx, actorID, input.OrganizationID)
	if err != nil {
		return nil, err
	}
	if !admin {
		return nil, domain.ErrForbidden
	}

	resource := &model.Resource{
		Name:                input.Name,
		Type:                input.Type,
		Status:              model.ResourceAvailable,
		Quantity:            input.Quantity,
		Condition:           input.Condition,
		Latitude:            input.Latitude,
		Longitude:           input.Longitude,
		LocationDescription: input.LocationDescription,
		OrganizationID:      input.OrganizationID,
		TeamID:              input.TeamID,
	}
	if resource.Quantity == 0 {
		resource.Quantity = 1
	}
	if resource.Condition == "" {
		resource.Condition = model.ConditionGood
	}

	if err := s.repo.Create(ctx, resource); err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	return resource, nil
}

// List returns resources matching the filter.
func (s *ResourceService) List(ctx context.Context, filter repository.ResourceFilter) ([]*model.Resource, error) {
	return s.repo.List(ctx, filter)
}

// Get assembles the resource detail view: the record, its live availability,
// open assignments and full checkout history.
func (s *ResourceService) Get(ctx context.Context, resourceID uuid.UUID) (*model.ResourceDetail, error) {
	resource, err := s.repo.FindDetailByID(ctx, resourceID)
	if err != nil {
		return nil, err
	}

	active, err := s.repo.ActiveAssignments(ctx, resourceID)
	if err != nil {
		return nil, err
	}
	history, err := s.repo.ListAssignments(ctx, resourceID, repository.Pagination{})
	if err != nil {
		return nil, err
	}

	detail := &model.ResourceDetail{
		Resource:           *resource,
		AvailableQty:       model.AvailableQuantity(resource, active),
		CurrentAssignments: active,
		AssignmentHistory:  history,
	}
	if resource.Organization != nil {
		detail.OrganizationName = resource.Organization.Name
	}
	if resource.Team != nil {
		detail.TeamName = resource.Team.Name
	}

	return detail, nil
}

type UpdateResourceInput struct {
	Name                *string                  `json:"name,omitempty"`
	Quantity            *int                     `json:"quantity,omitempty" validate:"omitempty,min=0"`
	Condition           *model.ResourceCondition `json:"condition,omitempty" validate:"omitempty,oneof=excellent good fair poor"`
	Latitude            *float64                 `json:"latitude,omitempty"`
	Longitude           *float64                 `json:"longitude,omitempty"`
	LocationDescription *string                  `json:"location_description,omitempty"`
	TeamID              *uuid.UUID               `json:"team_id,omitempty"`
}

// Update applies a partial update to a resource. Status is absent here on
// purpose: it is derived from assignments and only Assign/Return touch it.
func (s *ResourceService) Update(ctx context.Context, resourceID uuid.UUID, input UpdateResourceInput, actorID uuid.UUID) (*model.Resource, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, err)
	}

	resource, err := s.repo.FindByID(ctx, resourceID)
	if err != nil {
		return nil, err
	}

	allowed, err := s.guard.CanManageResource(ctx, actorID, resource)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, domain.ErrForbidden
	}

	if input.Name != nil {
		resource.Name = *input.Name
	}
	if input.Quantity != nil {
		resource.Quantity = *input.Quantity
	}
	if input.Condition != nil {
		resource.Condition = *input.Condition
	}
	if input.Latitude != nil {
		resource.Latitude = input.Latitude
	}
	if input.Longitude != nil {
		resource.Longitude = input.Longitude
	}
	if input.LocationDescription != nil {
		resource.LocationDescription = *input.LocationDescription
	}
	if input.TeamID != nil {
		resource.TeamID = input.TeamID
	}

	if err := s.repo.Update(ctx, resource); err != nil {
		return nil, err
	}

	return resource, nil
}

type AssignResourceInput struct {
	IncidentID uuid.UUID `json:"incident_id" validate:"required"`
	Quantity   int       `json:"quantity" validate:"omitempty,min=1"`
}

// Assign checks out units of a resource against an incident. The actor must
// be a leader or dispatcher of the resource's team, or an org admin. Quantity
// defaults to 1. Availability is enforced under a row lock in the repository.
func (s *ResourceService) Assign(ctx context.Context, resourceID uuid.UUID, input AssignResourceInput, actorID uuid.UUID) (*model.ResourceAssignment, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, err)
	}

	resource, err := s.repo.FindByID(ctx, resourceID)
	if err != nil {
		return nil, err
	}

	allowed, err := s.guard.CanDispatchResource(ctx, actorID, resource)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, domain.ErrForbidden
	}

	if _, err := s.incidents.FindByID(ctx, input.IncidentID); err != nil {
		return nil, err
	}

	quantity := input.Quantity
	if quantity == 0 {
		quantity = 1
	}

	return s.repo.Assign(ctx, resourceID, input.IncidentID, quantity)
}

// Return marks an assignment as returned and restores availability. Same
// authorization as Assign.
func (s *ResourceService) Return(ctx context.Context, resourceID, assignmentID, actorID uuid.UUID) (*model.ResourceAssignment, error) {
	assignment, err := s.repo.FindAssignment(ctx, assignmentID)
	if err != nil {
		return nil, err
	}
	if assignment.ResourceID != resourceID {
		return nil, domain.ErrAssignmentNotFound
	}
	if !assignment.Active() {
		return nil, fmt.Errorf("%w: assignment already returned", domain.ErrInvalidInput)
	}

	resource, err := s.repo.FindByID(ctx, assignment.ResourceID)
	if err != nil {
		return nil, err
	}

	allowed, err := s.guard.CanDispatchResource(ctx, actorID, resource)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, domain.ErrForbidden
	}

	return s.repo.Return(ctx, assignmentID)
}

// ListAssignments returns a resource's checkout history, newest first.
func (s *ResourceService) ListAssignments(ctx context.Context, resourceID uuid.UUID, page repository.Pagination) ([]*model.ResourceAssignment, error) {
	if _, err := s.repo.FindByID(ctx, resourceID); err != nil {
		return nil, err
	}
	return s.repo.ListAssignments(ctx, resourceID, page)
}
