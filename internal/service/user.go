// internal/service/user.go
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/emresys/emre/internal/auth"
	"github.com/emresys/emre/internal/domain"
	"github.com/emresys/emre/internal/model"
	"github.com/emresys/emre/internal/repository"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type UserService struct {
	repo           repository.UserRepositoryIface
	passwordHasher *auth.PasswordHasher
	tokenManager   *auth.TokenManager
	validate       *validator.Validate
}

func NewUserService(
	repo repository.UserRepositoryIface,
	passwordHasher *auth.PasswordHasher,
	tokenManager *auth.TokenManager,
) *UserService {
	return &UserService{
		repo:           repo,
		passwordHasher: passwordHasher,
		tokenManager:   tokenManager,
		validate:       validator.New(),
	}
}

type RegisterInput struct {
	Email     string `json:"email" validate:"required,email"`
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name"`
	Password  string `json:"password" validate:"required,min=8"`
}

// Register creates a new active user with a hashed password.
func (s *UserService) Register(ctx context.Context, input RegisterInput) (*model.User, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, err)
	}

	existing, err := s.repo.FindByEmail(ctx, input.Email)
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	hashed, err := s.passwordHasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := &model.User{
		Email:          input.Email,
		FirstName:      input.FirstName,
		LastName:       input.LastName,
		HashedPassword: hashed,
		IsActive:       true,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}

	return user, nil
}

type LoginOutput struct {
	User  *model.User `json:"user"`
	Token string      `json:"token"`
}

// Authenticate verifies credentials and issues a token. Unknown emails and
// wrong passwords are indistinguishable to the caller.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*LoginOutput, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	verified, err := s.passwordHasher.Verify(password, user.HashedPassword)
	if err != nil || !verified {
		return nil, domain.ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, domain.ErrInactiveUser
	}

	token, err := s.tokenManager.Generate(user.ID)
	if err != nil {
		return nil, fmt.Errorf("generating token: %w", err)
	}

	return &LoginOutput{User: user, Token: token}, nil
}

// RefreshToken issues a fresh token for an already-authenticated user.
func (s *UserService) RefreshToken(ctx context.Context, userID uuid.UUID) (string, error) {
	token, err := s.tokenManager.Generate(userID)
	if err != nil {
		return "", fmt.Errorf("generating token: %w", err)
	}
	return token, nil
}

type UpdateProfileInput struct {
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Email     *string `json:"email,omitempty" validate:"omitempty,email"`
	Password  *string `json:"password,omitempty" validate:"omitempty,min=8"`
}

// UpdateProfile applies a partial update to the user's mutable fields,
// re-hashing the password when one is supplied.
func (s *UserService) UpdateProfile(ctx context.Context, userID uuid.UUID, input UpdateProfileInput) (*model.User, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, err)
	}

	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.FirstName != nil {
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
	}
	if input.Email != nil {
		user.Email = *input.Email
	}
	if input.Password != nil {
		hashed, err := s.passwordHasher.Hash(*input.Password)
		if err != nil {
			return nil, fmt.Errorf("hashing password: %w", err)
		}
		user.HashedPassword = hashed
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("updating user: %w", err)
	}

	return user, nil
}

// Profile assembles the user together with their organization and team
// memberships. A read-only aggregate, not a stored entity.
func (s *UserService) Profile(ctx context.Context, userID uuid.UUID) (*model.UserProfile, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	orgMemberships, err := s.repo.FindOrgMemberships(ctx, userID)
	if err != nil {
		return nil, err
	}

	teamMemberships, err := s.repo.FindTeamMemberships(ctx, userID)
	if err != nil {
		return nil, err
	}

	profile := &model.UserProfile{
		User:          *user,
		Organizations: make([]model.OrganizationMemberInfo, 0, len(orgMemberships)),
		Teams:         make([]model.TeamMemberInfo, 0, len(teamMemberships)),
	}

	for _, m := range orgMemberships {
		info := model.OrganizationMemberInfo{
			OrganizationID: m.OrganizationID,
			Role:           m.Role,
			Status:         m.Status,
			JoinDate:       m.JoinDate,
		}
		if m.Organization != nil {
			info.OrganizationName = m.Organization.Name
		}
		profile.Organizations = append(profile.Organizations, info)
	}

	for _, m := range teamMemberships {
		info := model.TeamMemberInfo{
			TeamID:   m.TeamID,
			Role:     m.Role,
			JoinDate: m.JoinDate,
		}
		if m.Team != nil {
			info.TeamName = m.Team.Name
			info.OrganizationID = m.Team.OrganizationID
		}
		profile.Teams = append(profile.Teams, info)
	}

	return profile, nil
}

// Delete removes a user record. Exposed for administrative tooling only;
// there is no HTTP route for it.
func (s *UserService) Delete(ctx context.Context, userID uuid.UUID) error {
	return s.repo.Delete(ctx, userID)
}
