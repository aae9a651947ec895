// internal/repository/team.go
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

type TeamRepositoryIface interface {
	CreateWithLeader(ctx context.Context, team *model.Team, leaderID uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Team, error)
	FindByOrganization(ctx context.Context, orgID uuid.UUID, status *model.TeamStatus, page Pagination) ([]*model.Team, error)
	Update(ctx context.Context, team *model.Team) error
	FindMembership(ctx context.Context, teamID, userID uuid.UUID) (*model.TeamMembership, error)
	CreateMembership(ctx context.Context, membership *model.TeamMembership) error
	UpdateMembership(ctx context.Context, membership *model.TeamMembership) error
	DeleteMembership(ctx context.Context, teamID, userID uuid.UUID) error
	FindMembers(ctx context.Context, teamID uuid.UUID) ([]*model.TeamMembership, error)
	FindResources(ctx context.Context, teamID uuid.UUID) ([]model.Resource, error)
	Stats(ctx context.Context, teamID uuid.UUID) (*model.TeamStats, error)
}

type TeamRepository struct {
	db *gorm.DB
}

func NewTeamRepository(db *gorm.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

// CreateWithLeader inserts the team and the creator's leader membership in one
// transaction, mirroring the organization bootstrap.
func (r *TeamRepository) CreateWithLeader(ctx context.Context, team *model.Team, leaderID uuid.UUID) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(team).Error; err != nil {
			return fmt.Errorf("creating team: %w", err)
		}

		membership := &model.TeamMembership{
			UserID:    leaderID,
			TeamID:    team.ID,
			Role:      model.TeamRoleLeader,
			AddedByID: leaderID,
		}
		if err := tx.Create(membership).Error; err != nil {
			return fmt.Errorf("creating leader membership: %w", err)
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("transaction failed: %w", err)
	}
	return nil
}

func (r *TeamRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Team, error) {
	var team model.Team
	if err := r.db.WithContext(ctx).First(&team, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTeamNotFound
		}
		return nil, fmt.Errorf("finding team: %w", err)
	}
	return &team, nil
}

func (r *TeamRepository) FindByOrganization(ctx context.Context, orgID uuid.UUID, status *model.TeamStatus, page Pagination) ([]*model.Team, error) {
	var teams []*model.Team
	query := r.db.WithContext(ctx).Where("organization_id = ?", orgID)
	if status != nil {
		query = query.Where("status = ?", *status)
	}
	if err := query.Offset(page.Skip).Limit(page.limitOrDefault()).Find(&teams).Error; err != nil {
		return nil, fmt.Errorf("finding organization teams: %w", err)
	}
	return teams, nil
}

func (r *TeamRepository) Update(ctx context.Context, team *model.Team) error {
	if err := r.db.WithContext(ctx).Save(team).Error; err != nil {
		return fmt.Errorf("updating team: %w", err)
	}
	return nil
}

func (r *TeamRepository) FindMembership(ctx context.Context, teamID, userID uuid.UUID) (*model.TeamMembership, error) {
	var membership model.TeamMembership
	err := r.db.WithContext(ctx).
		Where("team_id = ? AND user_id = ?", teamID, userID).
		First(&membership).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrMembershipNotFound
		}
		return nil, fmt.Errorf("finding team membership: %w", err)
	}
	return &membership, nil
}

func (r *TeamRepository) CreateMembership(ctx context.Context, membership *model.TeamMembership) error {
	if err := r.db.WithContext(ctx).Create(membership).Error; err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAlreadyMember
		}
		return fmt.Errorf("creating team membership: %w", err)
	}
	return nil
}

func (r *TeamRepository) UpdateMembership(ctx context.Context, membership *model.TeamMembership) error {
	if err := r.db.WithContext(ctx).Save(membership).Error; err != nil {
		return fmt.Errorf("updating team membership: %w", err)
	}
	return nil
}

func (r *TeamRepository) DeleteMembership(ctx context.Context, teamID, userID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("team_id = ? AND user_id = ?", teamID, userID).
		Delete(&model.TeamMembership{})
	if result.Error != nil {
		return fmt.Errorf("deleting team membership: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrMembershipNotFound
	}
	return nil
}

func (r *TeamRepository) FindMembers(ctx context.Context, teamID uuid.UUID) ([]*model.TeamMembership, error) {
	var memberships []*model.TeamMembership
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("team_id = ?", teamID).
		Find(&memberships).Error
	if err != nil {
		return nil, fmt.Errorf("finding team members: %w", err)
	}
	return memberships, nil
}

func (r *TeamRepository) FindResources(ctx context.Context, teamID uuid.UUID) ([]model.Resource, error) {
	var resources []model.Resource
	if err := r.db.WithContext(ctx).Where("team_id = ?", teamID).Find(&resources).Error; err != nil {
		return nil, fmt.Errorf("finding team resources: %w", err)
	}
	return resources, nil
}

func (r *TeamRepository) Stats(ctx context.Context, teamID uuid.UUID) (*model.TeamStats, error) {
	stats := &model.TeamStats{}
	db := r.db.WithContext(ctx)

	if err := db.Model(&model.TeamMembership{}).
		Where("team_id = ?", teamID).
		Count(&stats.MemberCount).Error; err != nil {
		return nil, fmt.Errorf("counting team members: %w", err)
	}
	if err := db.Model(&model.Incident{}).
		Where("assigned_team_id = ? AND status IN ?", teamID, model.ActiveIncidentStatuses).
		Count(&stats.ActiveIncidents).Error; err != nil {
		return nil, fmt.Errorf("counting active incidents: %w", err)
	}
	if err := db.Model(&model.Resource{}).
		Where("team_id = ?", teamID).
		Count(&stats.AssignedResources).Error; err != nil {
		return nil, fmt.Errorf("counting assigned resources: %w", err)
	}

	return stats, nil
}
