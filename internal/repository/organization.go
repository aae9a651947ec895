// internal/repository/organization.go
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

type OrganizationRepositoryIface interface {
	CreateWithAdmin(ctx context.Context, org *model.Organization) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Organization, error)
	FindVisibleTo(ctx context.Context, userID uuid.UUID, visibility *model.Visibility, page Pagination) ([]*model.Organization, error)
	Update(ctx context.Context, org *model.Organization) error
	FindMembership(ctx context.Context, orgID, userID uuid.UUID) (*model.OrganizationMembership, error)
	CreateMembership(ctx context.Context, membership *model.OrganizationMembership) error
	UpdateMembership(ctx context.Context, membership *model.OrganizationMembership) error
	FindActiveMembers(ctx context.Context, orgID uuid.UUID, page Pagination) ([]*model.OrganizationMembership, error)
	FindTeams(ctx context.Context, orgID uuid.UUID) ([]model.Team, error)
	Stats(ctx context.Context, orgID uuid.UUID) (*model.OrganizationStats, error)
}

type OrganizationRepository struct {
	db *gorm.DB
}

func NewOrganizationRepository(db *gorm.DB) *OrganizationRepository {
	return &OrganizationRepository{db: db}
}

// CreateWithAdmin inserts the organization and the creator's active admin
// membership in one transaction. Neither row is visible without the other.
func (r *OrganizationRepository) CreateWithAdmin(ctx context.Context, org *model.Organization) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(org).Error; err != nil {
			return fmt.Errorf("creating organization: %w", err)
		}

		membership := &model.OrganizationMembership{
			UserID:         org.CreatedByID,
			OrganizationID: org.ID,
			Role:           model.OrgRoleAdmin,
			Status:         model.MembershipActive,
		}
		if err := tx.Create(membership).Error; err != nil {
			return fmt.Errorf("creating admin membership: %w", err)
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("transaction failed: %w", err)
	}
	return nil
}

func (r *OrganizationRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Organization, error) {
	var org model.Organization
	if err := r.db.WithContext(ctx).First(&org, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOrganizationNotFound
		}
		return nil, fmt.Errorf("finding organization: %w", err)
	}
	return &org, nil
}

// FindVisibleTo returns the union of public organizations and those the user
// holds an active membership in, optionally narrowed by visibility.
func (r *OrganizationRepository) FindVisibleTo(ctx context.Context, userID uuid.UUID, visibility *model.Visibility, page Pagination) ([]*model.Organization, error) {
	var orgs []*model.Organization
	query := r.db.WithContext(ctx).
		Distinct("organizations.*").
		Joins("LEFT JOIN organization_memberships ON organizations.id = organization_memberships.organization_id").
		Where("organizations.visibility = ? OR (organization_memberships.user_id = ? AND organization_memberships.status = ?)",
			model.VisibilityPublic, userID, model.MembershipActive)

	if visibility != nil {
		query = query.Where("organizations.visibility = ?", *visibility)
	}

	if err := query.Offset(page.Skip).Limit(page.limitOrDefault()).Find(&orgs).Error; err != nil {
		return nil, fmt.Errorf("finding visible organizations: %w", err)
	}
	return orgs, nil
}

func (r *OrganizationRepository) Update(ctx context.Context, org *model.Organization) error {
	if err := r.db.WithContext(ctx).Save(org).Error; err != nil {
		return fmt.Errorf("updating organization: %w", err)
	}
	return nil
}

func (r *OrganizationRepository) FindMembership(ctx context.Context, orgID, userID uuid.UUID) (*model.OrganizationMembership, error) {
	var membership model.OrganizationMembership
	err := r.db.WithContext(ctx).
		Where("organization_id = ? AND user_id = ?", orgID, userID).
		First(&membership).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrMembershipNotFound
		}
		return nil, fmt.Errorf("finding membership: %w", err)
	}
	return &membership, nil
}

func (r *OrganizationRepository) CreateMembership(ctx context.Context, membership *model.OrganizationMembership) error {
	if err := r.db.WithContext(ctx).Create(membership).Error; err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAlreadyMember
		}
		return fmt.Errorf("creating membership: %w", err)
	}
	return nil
}

func (r *OrganizationRepository) UpdateMembership(ctx context.Context, membership *model.OrganizationMembership) error {
	if err := r.db.WithContext(ctx).Save(membership).Error; err != nil {
		return fmt.Errorf("updating membership: %w", err)
	}
	return nil
}

func (r *OrganizationRepository) FindActiveMembers(ctx context.Context, orgID uuid.UUID, page Pagination) ([]*model.OrganizationMembership, error) {
	var memberships []*model.OrganizationMembership
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("organization_id = ? AND status = ?", orgID, model.MembershipActive).
		Offset(page.Skip).Limit(page.limitOrDefault()).
		Find(&memberships).Error
	if err != nil {
		return nil, fmt.Errorf("finding active members: %w", err)
	}
	return memberships, nil
}

func (r *OrganizationRepository) FindTeams(ctx context.Context, orgID uuid.UUID) ([]model.Team, error) {
	var teams []model.Team
	if err := r.db.WithContext(ctx).Where("organization_id = ?", orgID).Find(&teams).Error; err != nil {
		return nil, fmt.Errorf("finding organization teams: %w", err)
	}
	return teams, nil
}

// Stats gathers the aggregate counts for the organization detail view.
func (r *OrganizationRepository) Stats(ctx context.Context, orgID uuid.UUID) (*model.OrganizationStats, error) {
	stats := &model.OrganizationStats{}
	db := r.db.WithContext(ctx)

	if err := db.Model(&model.OrganizationMembership{}).
		Where("organization_id = ? AND status = ?", orgID, model.MembershipActive).
		Count(&stats.MemberCount).Error; err != nil {
		return nil, fmt.Errorf("counting members: %w", err)
	}
	if err := db.Model(&model.Team{}).
		Where("organization_id = ?", orgID).
		Count(&stats.TeamCount).Error; err != nil {
		return nil, fmt.Errorf("counting teams: %w", err)
	}
	if err := db.Model(&model.Resource{}).
		Where("organization_id = ?", orgID).
		Count(&stats.ResourceCount).Error; err != nil {
		return nil, fmt.Errorf("counting resources: %w", err)
	}
	if err := db.Model(&model.Incident{}).
		Where("organization_id = ? AND status IN ?", orgID, model.ActiveIncidentStatuses).
		Count(&stats.ActiveIncidents).Error; err != nil {
		return nil, fmt.Errorf("counting active incidents: %w", err)
	}

	return stats, nil
}
