// internal/repository/user.go
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

type UserRepositoryIface interface {
	Create(ctx context.Context, user *model.User) error
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	Update(ctx context.Context, user *model.User) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOrgMemberships(ctx context.Context, userID uuid.UUID) ([]*model.OrganizationMembership, error)
	FindTeamMemberships(ctx context.Context, userID uuid.UUID) ([]*model.TeamMembership, error)
}

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	result := r.db.WithContext(ctx).Create(user)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("failed to create user: %w", result.Error)
	}
	return nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	result := r.db.WithContext(ctx).Where("email = ?", email).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", result.Error)
	}
	return &user, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var user model.User
	result := r.db.WithContext(ctx).First(&user, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", result.Error)
	}
	return &user, nil
}

func (r *UserRepository) Update(ctx context.Context, user *model.User) error {
	result := r.db.WithContext(ctx).Save(user)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("failed to update user: %w", result.Error)
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.User{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete user: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// FindOrgMemberships returns all of the user's organization memberships with
// the organization preloaded for the profile view.
func (r *UserRepository) FindOrgMemberships(ctx context.Context, userID uuid.UUID) ([]*model.OrganizationMembership, error) {
	var memberships []*model.OrganizationMembership
	result := r.db.WithContext(ctx).
		Preload("Organization").
		Where("user_id = ?", userID).
		Find(&memberships)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to find organization memberships: %w", result.Error)
	}
	return memberships, nil
}

func (r *UserRepository) FindTeamMemberships(ctx context.Context, userID uuid.UUID) ([]*model.TeamMembership, error) {
	var memberships []*model.TeamMembership
	result := r.db.WithContext(ctx).
		Preload("Team").
		Where("user_id = ?", userID).
		Find(&memberships)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to find team memberships: %w", result.Error)
	}
	return memberships, nil
}
