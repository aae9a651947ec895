// internal/service/incident.go
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/emresys/emre/internal/authz"
	"github.com/emresys/emre/internal/domain"
	"github.com/emresys/emre/internal/model"
	"github.com/emresys/emre/internal/repository"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type IncidentService struct {
	repo     repository.IncidentRepositoryIface
	guard    *authz.Guard
	validate *validator.Validate
}

func NewIncidentService(repo repository.IncidentRepositoryIface, guard *authz.Guard) *IncidentService {
	return &IncidentService{
		repo:     repo,
		guard:    guard,
		validate: validator.New(),
	}
}

type CreateIncidentInput struct {
	Title               string                 `json:"title" validate:"required"`
	Description         string                 `json:"description"`
	Type                model.IncidentType     `json:"type" validate:"required,oneof=emergency resource_request status_update"`
	Priority            model.IncidentPriority `json:"priority" validate:"required,oneof=critical high medium low"`
	Latitude            *float64               `json:"latitude,omitempty"`
	Longitude           *float64               `json:"longitude,omitempty"`
	LocationDescription string                 `json:"location_description"`
	OrganizationID      uuid.UUID              `json:"organization_id" validate:"required"`
	AssignedTeamID      *uuid.UUID             `json:"assigned_team_id,omitempty"`
}

// Create opens a new incident. The creator must be an active member of the
// organization.
func (s *IncidentService) Create(ctx context.Context, input CreateIncidentInput, creatorID uuid.UUID) (*model.Incident, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, err)
	}

	member, err := s.guard.IsOrgMember(ctx, creatorID, input.OrganizationID)
	if err != nil {
		return nil, err
	}
	if !member {
		return nil, domain.ErrForbidden
	}

	incident := &model.Incident{
		Title:               input.Title,
		Description:         input.Description,
		Type:                input.Type,
		Priority:            input.Priority,
		Status:              model.IncidentOpen,
		Latitude:            input.Latitude,
		Longitude:           input.Longitude,
		LocationDescription: input.LocationDescription,
		OrganizationID:      input.OrganizationID,
		CreatedByID:         creatorID,
		AssignedTeamID:      input.AssignedTeamID,
	}

	if err := s.repo.Create(ctx, incident); err != nil {
		return nil, fmt.Errorf("creating incident: %w", err)
	}

	return incident, nil
}

// List returns incidents matching the filter, newest first.
func (s *IncidentService) List(ctx context.Context, filter repository.IncidentFilter) ([]*model.Incident, error) {
	return s.repo.List(ctx, filter)
}

// Get assembles the incident detail view.
func (s *IncidentService) Get(ctx context.Context, incidentID uuid.UUID) (*model.IncidentDetail, error) {
	incident, err := s.repo.FindDetailByID(ctx, incidentID)
	if err != nil {
		return nil, err
	}

	assignments, err := s.repo.ActiveAssignments(ctx, incidentID)
	if err != nil {
		return nil, err
	}

	detail := &model.IncidentDetail{
		Incident:          *incident,
		AssignedResources: assignments,
	}
	if incident.Organization != nil {
		detail.OrganizationName = incident.Organization.Name
	}
	if incident.AssignedTeam != nil {
		detail.AssignedTeamName = incident.AssignedTeam.Name
	}
	if incident.Creator != nil {
		detail.CreatorName = incident.Creator.FirstName + " " + incident.Creator.LastName
	}

	return detail, nil
}

type UpdateIncidentInput struct {
	Title          *string                 `json:"title,omitempty"`
	Description    *string                 `json:"description,omitempty"`
	Priority       *model.IncidentPriority `json:"priority,omitempty" validate:"omitempty,oneof=critical high medium low"`
	Status         *model.IncidentStatus   `json:"status,omitempty" validate:"omitempty,oneof=open in_progress resolved closed"`
	AssignedTeamID *uuid.UUID              `json:"assigned_team_id,omitempty"`
}

// Update applies a partial update. The actor must be the creator, a member of
// the assigned team, or an org admin. A transition to resolved stamps
// resolved_at once; later updates never clear it.
func (s *IncidentService) Update(ctx context.Context, incidentID uuid.UUID, input UpdateIncidentInput, actorID uuid.UUID) (*model.Incident, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, err)
	}

	incident, err := s.repo.FindByID(ctx, incidentID)
	if err != nil {
		return nil, err
	}

	allowed, err := s.guard.CanUpdateIncident(ctx, actorID, incident)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, domain.ErrForbidden
	}

	if input.Title != nil {
		incident.Title = *input.Title
	}
	if input.Description != nil {
		incident.Description = *input.Description
	}
	if input.Priority != nil {
		incident.Priority = *input.Priority
	}
	if input.AssignedTeamID != nil {
		incident.AssignedTeamID = input.AssignedTeamID
	}
	if input.Status != nil {
		incident.Status = *input.Status
		if *input.Status == model.IncidentResolved && incident.ResolvedAt == nil {
			now := time.Now().UTC()
			incident.ResolvedAt = &now
		}
	}

	if err := s.repo.Update(ctx, incident); err != nil {
		return nil, err
	}

	return incident, nil
}

type AddUpdateInput struct {
	Content    string           `json:"content" validate:"required"`
	UpdateType model.UpdateType `json:"update_type" validate:"omitempty,oneof=status_change resource_update general_update"`
	Metadata   model.Metadata   `json:"metadata,omitempty"`
}

// AddUpdate appends an entry to the incident's update log. Any authenticated
// active user may post; there is deliberately no incident-level access check.
func (s *IncidentService) AddUpdate(ctx context.Context, incidentID, authorID uuid.UUID, input AddUpdateInput) (*model.IncidentUpdate, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, err)
	}

	if _, err := s.repo.FindByID(ctx, incidentID); err != nil {
		return nil, err
	}

	updateType := input.UpdateType
	if updateType == "" {
		updateType = model.UpdateGeneral
	}

	update := &model.IncidentUpdate{
		IncidentID: incidentID,
		UserID:     authorID,
		Content:    input.Content,
		UpdateType: updateType,
		Metadata:   input.Metadata,
	}

	if err := s.repo.CreateUpdate(ctx, update); err != nil {
		return nil, fmt.Errorf("creating incident update: %w", err)
	}

	return update, nil
}

// ListUpdates returns the incident's update log in chronological order.
func (s *IncidentService) ListUpdates(ctx context.Context, incidentID uuid.UUID, page repository.Pagination) ([]*model.IncidentUpdate, error) {
	if _, err := s.repo.FindByID(ctx, incidentID); err != nil {
		return nil, err
	}
	return s.repo.ListUpdates(ctx, incidentID, page)
}
