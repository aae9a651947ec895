// internal/repository/incident.go
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/emresys/emre/internal/domain"
	"github.com/emresys/emre/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// IncidentFilter narrows incident listings. Nil fields are ignored.
type IncidentFilter struct {
	OrganizationID *uuid.UUID
	TeamID         *uuid.UUID
	Status         *model.IncidentStatus
	Priority       *model.IncidentPriority
	Pagination
}

type IncidentRepositoryIface interface {
	Create(ctx context.Context, incident *model.Incident) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Incident, error)
	FindDetailByID(ctx context.Context, id uuid.UUID) (*model.Incident, error)
	List(ctx context.Context, filter IncidentFilter) ([]*model.Incident, error)
	Update(ctx context.Context, incident *model.Incident) error
	ActiveAssignments(ctx context.Context, incidentID uuid.UUID) ([]model.ResourceAssignment, error)
	CreateUpdate(ctx context.Context, update *model.IncidentUpdate) error
	ListUpdates(ctx context.Context, incidentID uuid.UUID, page Pagination) ([]*model.IncidentUpdate, error)
}

type IncidentRepository struct {
	db *gorm.DB
}

func NewIncidentRepository(db *gorm.DB) *IncidentRepository {
	return &IncidentRepository{db: db}
}

func (r *IncidentRepository) Create(ctx context.Context, incident *model.Incident) error {
	if err := r.db.WithContext(ctx).Create(incident).Error; err != nil {
		return fmt.Errorf("creating incident: %w", err)
	}
	return nil
}

func (r *IncidentRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Incident, error) {
	var incident model.Incident
	if err := r.db.WithContext(ctx).First(&incident, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrIncidentNotFound
		}
		return nil, fmt.Errorf("finding incident: %w", err)
	}
	return &incident, nil
}

// FindDetailByID loads the incident with the related rows the detail view
// needs (organization, creator, assigned team).
func (r *IncidentRepository) FindDetailByID(ctx context.Context, id uuid.UUID) (*model.Incident, error) {
	var incident model.Incident
	err := r.db.WithContext(ctx).
		Preload("Organization").
		Preload("Creator").
		Preload("AssignedTeam").
		First(&incident, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrIncidentNotFound
		}
		return nil, fmt.Errorf("finding incident: %w", err)
	}
	return &incident, nil
}

// List returns incidents matching the filter, newest first. The descending
// creation order is part of the API contract.
func (r *IncidentRepository) List(ctx context.Context, filter IncidentFilter) ([]*model.Incident, error) {
	var incidents []*model.Incident
	query := r.db.WithContext(ctx)

	if filter.OrganizationID != nil {
		query = query.Where("organization_id = ?", *filter.OrganizationID)
	}
	if filter.TeamID != nil {
		query = query.Where("assigned_team_id = ?", *filter.TeamID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Priority != nil {
		query = query.Where("priority = ?", *filter.Priority)
	}

	err := query.Order("created_at DESC").
		Offset(filter.Skip).Limit(filter.limitOrDefault()).
		Find(&incidents).Error
	if err != nil {
		return nil, fmt.Errorf("listing incidents: %w", err)
	}
	return incidents, nil
}

func (r *IncidentRepository) Update(ctx context.Context, incident *model.Incident) error {
	if err := r.db.WithContext(ctx).Save(incident).Error; err != nil {
		return fmt.Errorf("updating incident: %w", err)
	}
	return nil
}

func (r *IncidentRepository) ActiveAssignments(ctx context.Context, incidentID uuid.UUID) ([]model.ResourceAssignment, error) {
	var assignments []model.ResourceAssignment
	err := r.db.WithContext(ctx).
		Where("incident_id = ? AND returned_at IS NULL", incidentID).
		Find(&assignments).Error
	if err != nil {
		return nil, fmt.Errorf("finding incident assignments: %w", err)
	}
	return assignments, nil
}

func (r *IncidentRepository) CreateUpdate(ctx context.Context, update *model.IncidentUpdate) error {
	if err := r.db.WithContext(ctx).Create(update).Error; err != nil {
		return fmt.Errorf("creating incident update: %w", err)
	}
	return nil
}

// ListUpdates returns the append-only update log in chronological order.
func (r *IncidentRepository) ListUpdates(ctx context.Context, incidentID uuid.UUID, page Pagination) ([]*model.IncidentUpdate, error) {
	var updates []*model.IncidentUpdate
	err := r.db.WithContext(ctx).
		Where("incident_id = ?", incidentID).
		Order("created_at ASC").
		Offset(page.Skip).Limit(page.limitOrDefault()).
		Find(&updates).Error
	if err != nil {
		return nil, fmt.Errorf("listing incident updates: %w", err)
	}
	return updates, nil
}
