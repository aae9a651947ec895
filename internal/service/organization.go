// internal/service/organization.go
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/emresys/emre/internal/authz"
	"github.com/emresys/emre/internal/domain"
	"github.com/emresys/emre/internal/model"
	"github.com/emresys/emre/internal/repository"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// ApprovalNotifier delivers a best-effort notification when a membership
// request is approved. Implemented by the email package; may be nil.
type ApprovalNotifier interface {
	MembershipApproved(ctx context.Context, to, firstName, orgName string) error
}

type OrganizationService struct {
	repo     repository.OrganizationRepositoryIface
	users    repository.UserRepositoryIface
	guard    *authz.Guard
	notifier ApprovalNotifier
	validate *validator.Validate
}

func NewOrganizationService(
	repo repository.OrganizationRepositoryIface,
	users repository.UserRepositoryIface,
	guard *authz.Guard,
	notifier ApprovalNotifier,
) *OrganizationService {
	return &OrganizationService{
		repo:     repo,
		users:    users,
		guard:    guard,
		notifier: notifier,
		validate: validator.New(),
	}
}

type CreateOrganizationInput struct {
	Name        string                 `json:"name" validate:"required"`
	Description string                 `json:"description"`
	Type        model.OrganizationType `json:"type" validate:"required,oneof=emergency_response resource_distribution volunteer_coordination disaster_relief"`
	Visibility  model.Visibility       `json:"visibility" validate:"omitempty,oneof=public private"`
	Region      string                 `json:"region" validate:"required"`
}

// Create inserts the organization and makes the creator its first admin
// member; the repository guarantees both writes land together.
func (s *OrganizationService) Create(ctx context.Context, input CreateOrganizationInput, creatorID uuid.UUID) (*model.Organization, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, err)
	}

	visibility := input.Visibility
	if visibility == "" {
		visibility = model.VisibilityPublic
	}

	org := &model.Organization{
		Name:        input.Name,
		Description: input.Description,
		Type:        input.Type,
		Visibility:  visibility,
		Region:      input.Region,
		CreatedByID: creatorID,
	}

	if err := s.repo.CreateWithAdmin(ctx, org); err != nil {
		return nil, fmt.Errorf("creating organization: %w", err)
	}

	return org, nil
}

// Get returns the organization detail view. Private organizations are only
// visible to active members.
func (s *OrganizationService) Get(ctx context.Context, orgID, requesterID uuid.UUID) (*model.OrganizationDetail, error) {
	org, err := s.repo.FindByID(ctx, orgID)
	if err != nil {
		return nil, err
	}

	if org.Visibility != model.VisibilityPublic {
		member, err := s.guard.IsOrgMember(ctx, requesterID, orgID)
		if err != nil {
			return nil, err
		}
		if !member {
			return nil, domain.ErrForbidden
		}
	}

	members, err := s.repo.FindActiveMembers(ctx, orgID, repository.Pagination{})
	if err != nil {
		return nil, err
	}

	teams, err := s.repo.FindTeams(ctx, orgID)
	if err != nil {
		return nil, err
	}

	stats, err := s.repo.Stats(ctx, orgID)
	if err != nil {
		return nil, err
	}

	detail := &model.OrganizationDetail{
		Organization:      *org,
		Members:           make([]model.UserWithOrgRole, 0, len(members)),
		Teams:             teams,
		OrganizationStats: *stats,
	}
	for _, m := range members {
		if m.User == nil {
			continue
		}
		detail.Members = append(detail.Members, model.UserWithOrgRole{
			User:             *m.User,
			OrganizationRole: m.Role,
		})
	}

	return detail, nil
}

type ListOrganizationsInput struct {
	Visibility *model.Visibility
	Page       repository.Pagination
}

// List returns the union of public organizations and those the requester is
// an active member of.
func (s *OrganizationService) List(ctx context.Context, requesterID uuid.UUID, input ListOrganizationsInput) ([]*model.Organization, error) {
	return s.repo.FindVisibleTo(ctx, requesterID, input.Visibility, input.Page)
}

type UpdateOrganizationInput struct {
	Name        *string                 `json:"name,omitempty"`
	Description *string                 `json:"description,omitempty"`
	Type        *model.OrganizationType `json:"type,omitempty" validate:"omitempty,oneof=emergency_response resource_distribution volunteer_coordination disaster_relief"`
	Visibility  *model.Visibility       `json:"visibility,omitempty" validate:"omitempty,oneof=public private"`
	Region      *string                 `json:"region,omitempty"`
}

func (s *OrganizationService) Update(ctx context.Context, orgID uuid.UUID, input UpdateOrganizationInput, actorID uuid.UUID) (*model.Organization, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, err)
	}

	org, err := s.repo.FindByID(ctx, orgID)
	if err != nil {
		return nil, err
	}

	admin, err := s.guard.IsOrgAdmin(ctx, actorID, orgID)
	if err != nil {
		return nil, err
	}
	if !admin {
		return nil, domain.ErrForbidden
	}

	if input.Name != nil {
		org.Name = *input.Name
	}
	if input.Description != nil {
		org.Description = *input.Description
	}
	if input.Type != nil {
		org.Type = *input.Type
	}
	if input.Visibility != nil {
		org.Visibility = *input.Visibility
	}
	if input.Region != nil {
		org.Region = *input.Region
	}

	if err := s.repo.Update(ctx, org); err != nil {
		return nil, err
	}

	return org, nil
}

// RequestMembership creates a pending membership for the user. Any existing
// membership row for the pair, whatever its status, is a conflict.
func (s *OrganizationService) RequestMembership(ctx context.Context, orgID, userID uuid.UUID) (*model.OrganizationMembership, error) {
	if _, err := s.repo.FindByID(ctx, orgID); err != nil {
		return nil, err
	}

	existing, err := s.repo.FindMembership(ctx, orgID, userID)
	if err != nil && !errors.Is(err, domain.ErrMembershipNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrAlreadyMember
	}

	membership := &model.OrganizationMembership{
		UserID:         userID,
		OrganizationID: orgID,
		Role:           model.OrgRoleMember,
		Status:         model.MembershipPending,
	}

	if err := s.repo.CreateMembership(ctx, membership); err != nil {
		return nil, err
	}

	return membership, nil
}

// ApproveMembership transitions a pending membership to active. Admin only.
func (s *OrganizationService) ApproveMembership(ctx context.Context, orgID, targetUserID, approverID uuid.UUID) error {
	admin, err := s.guard.IsOrgAdmin(ctx, approverID, orgID)
	if err != nil {
		return err
	}
	if !admin {
		return domain.ErrForbidden
	}

	membership, err := s.repo.FindMembership(ctx, orgID, targetUserID)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	membership.Status = model.MembershipActive
	membership.LastActive = &now

	if err := s.repo.UpdateMembership(ctx, membership); err != nil {
		return err
	}

	s.notifyApproval(ctx, orgID, targetUserID)
	return nil
}

// notifyApproval emails the approved member. Failures are logged and never
// bubble up into the request.
func (s *OrganizationService) notifyApproval(ctx context.Context, orgID, userID uuid.UUID) {
	if s.notifier == nil {
		return
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		slog.WarnContext(ctx, "approval notification skipped", "error", err)
		return
	}
	org, err := s.repo.FindByID(ctx, orgID)
	if err != nil {
		slog.WarnContext(ctx, "approval notification skipped", "error", err)
		return
	}

	if err := s.notifier.MembershipApproved(ctx, user.Email, user.FirstName, org.Name); err != nil {
		slog.WarnContext(ctx, "approval notification failed", "error", err, "user_id", userID)
	}
}

// UpdateMemberRole changes a member's organization role. Admin only.
func (s *OrganizationService) UpdateMemberRole(ctx context.Context, orgID, targetUserID uuid.UUID, role model.OrgRole, actorID uuid.UUID) (*model.OrganizationMembership, error) {
	if role != model.OrgRoleAdmin && role != model.OrgRoleMember {
		return nil, fmt.Errorf("%w: unknown role %q", domain.ErrInvalidInput, role)
	}

	admin, err := s.guard.IsOrgAdmin(ctx, actorID, orgID)
	if err != nil {
		return nil, err
	}
	if !admin {
		return nil, domain.ErrForbidden
	}

	membership, err := s.repo.FindMembership(ctx, orgID, targetUserID)
	if err != nil {
		return nil, err
	}

	membership.Role = role
	if err := s.repo.UpdateMembership(ctx, membership); err != nil {
		return nil, err
	}

	return membership, nil
}

// ListMembers returns the organization's active members with their roles.
// Private organizations require the requester to be an active member.
func (s *OrganizationService) ListMembers(ctx context.Context, orgID, requesterID uuid.UUID, page repository.Pagination) ([]model.UserWithOrgRole, error) {
	org, err := s.repo.FindByID(ctx, orgID)
	if err != nil {
		return nil, err
	}

	if org.Visibility != model.VisibilityPublic {
		member, err := s.guard.IsOrgMember(ctx, requesterID, orgID)
		if err != nil {
			return nil, err
		}
		if !member {
			return nil, domain.ErrForbidden
		}
	}

	members, err := s.repo.FindActiveMembers(ctx, orgID, page)
	if err != nil {
		return nil, err
	}

	out := make([]model.UserWithOrgRole, 0, len(members))
	for _, m := range members {
		if m.User == nil {
			continue
		}
		out = append(out, model.UserWithOrgRole{
			User:             *m.User,
			OrganizationRole: m.Role,
		})
	}
	return out, nil
}
