// internal/service/team.go
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/emresys/emre/internal/authz"
	"github.com/emresys/emre/internal/domain"
	"github.com/emresys/emre/internal/model"
	"github.com/emresys/emre/internal/repository"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type TeamService struct {
	repo     repository.TeamRepositoryIface
	orgs     repository.OrganizationRepositoryIface
	guard    *authz.Guard
	validate *validator.Validate
}

func NewTeamService(
	repo repository.TeamRepositoryIface,
	orgs repository.OrganizationRepositoryIface,
	guard *authz.Guard,
) *TeamService {
	return &TeamService{
		repo:     repo,
		orgs:     orgs,
		guard:    guard,
		validate: validator.New(),
	}
}

type CreateTeamInput struct {
	Name           string           `json:"name" validate:"required"`
	OrganizationID uuid.UUID        `json:"organization_id" validate:"required"`
	Type           model.TeamType   `json:"type" validate:"required,oneof=response medical rescue logistics support"`
	Description    string           `json:"description"`
	GeographicArea string           `json:"geographic_area"`
	Status         model.TeamStatus `json:"status" validate:"omitempty,oneof=active inactive standby"`
}

// Create inserts the team and makes the creator its leader; both writes land
// in one transaction. Org admin only.
func (s *TeamService) Create(ctx context.Context, input CreateTeamInput, creatorID uuid.UUID) (*model.Team, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, err)
	}

	admin, err := s.guard.IsOrgAdmin(ctx, creatorID, input.OrganizationID)
	if err != nil {
		return nil, err
	}
	if !admin {
		return nil, domain.ErrForbidden
	}

	status := input.Status
	if status == "" {
		status = model.TeamStatusActive
	}

	team := &model.Team{
		Name:           input.Name,
		OrganizationID: input.OrganizationID,
		Type:           input.Type,
		Description:    input.Description,
		GeographicArea: input.GeographicArea,
		Status:         status,
	}

	if err := s.repo.CreateWithLeader(ctx, team, creatorID); err != nil {
		return nil, fmt.Errorf("creating team: %w", err)
	}

	return team, nil
}

// Get assembles the team detail view.
func (s *TeamService) Get(ctx context.Context, teamID uuid.UUID) (*model.TeamDetail, error) {
	team, err := s.repo.FindByID(ctx, teamID)
	if err != nil {
		return nil, err
	}

	members, err := s.repo.FindMembers(ctx, teamID)
	if err != nil {
		return nil, err
	}

	resources, err := s.repo.FindResources(ctx, teamID)
	if err != nil {
		return nil, err
	}

	stats, err := s.repo.Stats(ctx, teamID)
	if err != nil {
		return nil, err
	}

	org, err := s.orgs.FindByID(ctx, team.OrganizationID)
	if err != nil {
		return nil, err
	}

	detail := &model.TeamDetail{
		Team:             *team,
		Members:          make([]model.User, 0, len(members)),
		Resources:        resources,
		OrganizationName: org.Name,
		TeamStats:        *stats,
	}
	for _, m := range members {
		if m.User != nil {
			detail.Members = append(detail.Members, *m.User)
		}
	}

	return detail, nil
}

// ListByOrganization returns the organization's teams; requester must be an
// active org member.
func (s *TeamService) ListByOrganization(ctx context.Context, orgID, requesterID uuid.UUID, status *model.TeamStatus, page repository.Pagination) ([]*model.Team, error) {
	member, err := s.guard.IsOrgMember(ctx, requesterID, orgID)
	if err != nil {
		return nil, err
	}
	if !member {
		return nil, domain.ErrForbidden
	}

	return s.repo.FindByOrganization(ctx, orgID, status, page)
}

type UpdateTeamInput struct {
	Name           *string           `json:"name,omitempty"`
	Type           *model.TeamType   `json:"type,omitempty" validate:"omitempty,oneof=response medical rescue logistics support"`
	Description    *string           `json:"description,omitempty"`
	GeographicArea *string           `json:"geographic_area,omitempty"`
	Status         *model.TeamStatus `json:"status,omitempty" validate:"omitempty,oneof=active inactive standby"`
}

// Update applies a partial update. Team leader or org admin.
func (s *TeamService) Update(ctx context.Context, teamID uuid.UUID, input UpdateTeamInput, actorID uuid.UUID) (*model.Team, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, err)
	}

	team, err := s.repo.FindByID(ctx, teamID)
	if err != nil {
		return nil, err
	}

	allowed, err := s.guard.CanManageTeam(ctx, actorID, team)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, domain.ErrForbidden
	}

	if input.Name != nil {
		team.Name = *input.Name
	}
	if input.Type != nil {
		team.Type = *input.Type
	}
	if input.Description != nil {
		team.Description = *input.Description
	}
	if input.GeographicArea != nil {
		team.GeographicArea = *input.GeographicArea
	}
	if input.Status != nil {
		team.Status = *input.Status
	}

	if err := s.repo.Update(ctx, team); err != nil {
		return nil, err
	}

	return team, nil
}

// AddMember adds an active org member to the team. Team leader or org admin.
func (s *TeamService) AddMember(ctx context.Context, teamID, targetUserID uuid.UUID, role model.TeamRole, actorID uuid.UUID) (*model.TeamMembership, error) {
	if role == "" {
		role = model.TeamRoleMember
	}
	if role != model.TeamRoleLeader && role != model.TeamRoleMember && role != model.TeamRoleDispatcher {
		return nil, fmt.Errorf("%w: unknown role %q", domain.ErrInvalidInput, role)
	}

	team, err := s.repo.FindByID(ctx, teamID)
	if err != nil {
		return nil, err
	}

	allowed, err := s.guard.CanManageTeam(ctx, actorID, team)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, domain.ErrForbidden
	}

	orgMembership, err := s.orgs.FindMembership(ctx, team.OrganizationID, targetUserID)
	if err != nil {
		if errors.Is(err, domain.ErrMembershipNotFound) {
			return nil, domain.ErrNotOrgMember
		}
		return nil, err
	}
	if orgMembership.Status != model.MembershipActive {
		return nil, domain.ErrNotOrgMember
	}

	existing, err := s.repo.FindMembership(ctx, teamID, targetUserID)
	if err != nil && !errors.Is(err, domain.ErrMembershipNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrAlreadyMember
	}

	membership := &model.TeamMembership{
		UserID:    targetUserID,
		TeamID:    teamID,
		Role:      role,
		AddedByID: actorID,
	}

	if err := s.repo.CreateMembership(ctx, membership); err != nil {
		return nil, err
	}

	return membership, nil
}

// RemoveMember deletes the target's team membership. Team leader or org
// admin.
func (s *TeamService) RemoveMember(ctx context.Context, teamID, targetUserID, actorID uuid.UUID) error {
	team, err := s.repo.FindByID(ctx, teamID)
	if err != nil {
		return err
	}

	allowed, err := s.guard.CanManageTeam(ctx, actorID, team)
	if err != nil {
		return err
	}
	if !allowed {
		return domain.ErrForbidden
	}

	return s.repo.DeleteMembership(ctx, teamID, targetUserID)
}

// UpdateMemberRole changes a member's team role. Team leader only.
func (s *TeamService) UpdateMemberRole(ctx context.Context, teamID, targetUserID uuid.UUID, role model.TeamRole, actorID uuid.UUID) (*model.TeamMembership, error) {
	if role != model.TeamRoleLeader && role != model.TeamRoleMember && role != model.TeamRoleDispatcher {
		return nil, fmt.Errorf("%w: unknown role %q", domain.ErrInvalidInput, role)
	}

	leader, err := s.guard.IsTeamLeader(ctx, actorID, teamID)
	if err != nil {
		return nil, err
	}
	if !leader {
		return nil, domain.ErrForbidden
	}

	membership, err := s.repo.FindMembership(ctx, teamID, targetUserID)
	if err != nil {
		return nil, err
	}

	membership.Role = role
	if err := s.repo.UpdateMembership(ctx, membership); err != nil {
		return nil, err
	}

	return membership, nil
}
