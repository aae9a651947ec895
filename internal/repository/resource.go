// internal/repository/resource.go
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/emresys/emre/internal/domain"
	"github.com/emresys/emre/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ResourceFilter narrows resource listings. Nil fields are ignored.
type ResourceFilter struct {
	OrganizationID *uuid.UUID
	TeamID         *uuid.UUID
	Status         *model.ResourceStatus
	Type           *model.ResourceType
	Pagination
}

type ResourceRepositoryIface interface {
	Create(ctx context.Context, resource *model.Resource) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Resource, error)
	FindDetailByID(ctx context.Context, id uuid.UUID) (*model.Resource, error)
	List(ctx context.Context, filter ResourceFilter) ([]*model.Resource, error)
	Update(ctx context.Context, resource *model.Resource) error
	Assign(ctx context.Context, resourceID, incidentID uuid.UUID, quantity int) (*model.ResourceAssignment, error)
	Return(ctx context.Context, assignmentID uuid.UUID) (*model.ResourceAssignment, error)
	FindAssignment(ctx context.Context, assignmentID uuid.UUID) (*model.ResourceAssignment, error)
	ListAssignments(ctx context.Context, resourceID uuid.UUID, page Pagination) ([]*model.ResourceAssignment, error)
	ActiveAssignments(ctx context.Context, resourceID uuid.UUID) ([]*model.ResourceAssignment, error)
}

type ResourceRepository struct {
	db *gorm.DB
}

func NewResourceRepository(db *gorm.DB) *ResourceRepository {
	return &ResourceRepository{db: db}
}

func (r *ResourceRepository) Create(ctx context.Context, resource *model.Resource) error {
	if err := r.db.WithContext(ctx).Create(resource).Error; err != nil {
		return fmt.Errorf("creating resource: %w", err)
	}
	return nil
}

func (r *ResourceRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Resource, error) {
	var resource model.Resource
	if err := r.db.WithContext(ctx).First(&resource, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrResourceNotFound
		}
		return nil, fmt.Errorf("finding resource: %w", err)
	}
	return &resource, nil
}

// FindDetailByID loads the resource with its organization and team for the
// detail view.
func (r *ResourceRepository) FindDetailByID(ctx context.Context, id uuid.UUID) (*model.Resource, error) {
	var resource model.Resource
	err := r.db.WithContext(ctx).
		Preload("Organization").
		Preload("Team").
		First(&resource, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrResourceNotFound
		}
		return nil, fmt.Errorf("finding resource: %w", err)
	}
	return &resource, nil
}

func (r *ResourceRepository) List(ctx context.Context, filter ResourceFilter) ([]*model.Resource, error) {
	var resources []*model.Resource
	query := r.db.WithContext(ctx)

	if filter.OrganizationID != nil {
		query = query.Where("organization_id = ?", *filter.OrganizationID)
	}
	if filter.TeamID != nil {
		query = query.Where("team_id = ?", *filter.TeamID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Type != nil {
		query = query.Where("type = ?", *filter.Type)
	}

	if err := query.Offset(filter.Skip).Limit(filter.limitOrDefault()).Find(&resources).Error; err != nil {
		return nil, fmt.Errorf("listing resources: %w", err)
	}
	return resources, nil
}

func (r *ResourceRepository) Update(ctx context.Context, resource *model.Resource) error {
	if err := r.db.WithContext(ctx).Save(resource).Error; err != nil {
		return fmt.Errorf("updating resource: %w", err)
	}
	return nil
}

// Assign checks availability and inserts the assignment inside a single
// transaction holding a FOR UPDATE lock on the resource row, so two
// concurrent assignments cannot both read the same available count. When the
// post-assignment available quantity hits zero the resource status is flipped
// to in_use in the same transaction.
func (r *ResourceRepository) Assign(ctx context.Context, resourceID, incidentID uuid.UUID, quantity int) (*model.ResourceAssignment, error) {
	var assignment *model.ResourceAssignment

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var resource model.Resource
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&resource, "id = ?", resourceID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrResourceNotFound
			}
			return fmt.Errorf("locking resource: %w", err)
		}

		var active []*model.ResourceAssignment
		if err := tx.Where("resource_id = ? AND returned_at IS NULL", resourceID).
			Find(&active).Error; err != nil {
			return fmt.Errorf("finding active assignments: %w", err)
		}

		available := model.AvailableQuantity(&resource, active)
		if quantity > available {
			return fmt.Errorf("%w: only %d units available", domain.ErrInsufficientQuantity, available)
		}

		assignment = &model.ResourceAssignment{
			ResourceID: resourceID,
			IncidentID: incidentID,
			Quantity:   quantity,
		}
		if err := tx.Create(assignment).Error; err != nil {
			return fmt.Errorf("creating assignment: %w", err)
		}

		if available-quantity == 0 {
			resource.Status = model.ResourceInUse
			if err := tx.Save(&resource).Error; err != nil {
				return fmt.Errorf("updating resource status: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return assignment, nil
}

// Return stamps returned_at and recomputes availability under the same lock:
// any positive available count flips the resource back to available, even
// while other assignments remain open. Status stays in_use only while every
// unit is checked out; this is deliberately not a last-return-wins rule.
func (r *ResourceRepository) Return(ctx context.Context, assignmentID uuid.UUID) (*model.ResourceAssignment, error) {
	var assignment model.ResourceAssignment

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&assignment, "id = ?", assignmentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrAssignmentNotFound
			}
			return fmt.Errorf("finding assignment: %w", err)
		}

		var resource model.Resource
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&resource, "id = ?", assignment.ResourceID).Error
		if err != nil {
			return fmt.Errorf("locking resource: %w", err)
		}

		now := time.Now().UTC()
		assignment.ReturnedAt = &now
		if err := tx.Save(&assignment).Error; err != nil {
			return fmt.Errorf("updating assignment: %w", err)
		}

		var active []*model.ResourceAssignment
		if err := tx.Where("resource_id = ? AND returned_at IS NULL", resource.ID).
			Find(&active).Error; err != nil {
			return fmt.Errorf("finding active assignments: %w", err)
		}

		if model.AvailableQuantity(&resource, active) > 0 && resource.Status == model.ResourceInUse {
			resource.Status = model.ResourceAvailable
			if err := tx.Save(&resource).Error; err != nil {
				return fmt.Errorf("updating resource status: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &assignment, nil
}

func (r *ResourceRepository) FindAssignment(ctx context.Context, assignmentID uuid.UUID) (*model.ResourceAssignment, error) {
	var assignment model.ResourceAssignment
	if err := r.db.WithContext(ctx).First(&assignment, "id = ?", assignmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAssignmentNotFound
		}
		return nil, fmt.Errorf("finding assignment: %w", err)
	}
	return &assignment, nil
}

func (r *ResourceRepository) ListAssignments(ctx context.Context, resourceID uuid.UUID, page Pagination) ([]*model.ResourceAssignment, error) {
	var assignments []*model.ResourceAssignment
	err := r.db.WithContext(ctx).
		Where("resource_id = ?", resourceID).
		Order("assigned_at DESC").
		Offset(page.Skip).Limit(page.limitOrDefault()).
		Find(&assignments).Error
	if err != nil {
		return nil, fmt.Errorf("listing assignments: %w", err)
	}
	return assignments, nil
}

func (r *ResourceRepository) ActiveAssignments(ctx context.Context, resourceID uuid.UUID) ([]*model.ResourceAssignment, error) {
	var assignments []*model.ResourceAssignment
	err := r.db.WithContext(ctx).
		Where("resource_id = ? AND returned_at IS NULL", resourceID).
		Find(&assignments).Error
	if err != nil {
		return nil, fmt.Errorf("finding active assignments: %w", err)
	}
	return assignments, nil
}
