// internal/authz/guard.go

// Package authz holds the membership predicates every mutating operation is
// gated on. Predicates are pure reads; composition happens with plain boolean
// ORs at the call sites that need composite rules.
package authz

import (
	"context"
	"errors"
	"fmt"

	"github.com/emresys/emre/internal/domain"
	"github.com/emresys/emre/internal/model"
	"github.com/google/uuid"
)

// OrgMembershipFinder is satisfied by repository.OrganizationRepository.
type OrgMembershipFinder interface {
	FindMembership(ctx context.Context, orgID, userID uuid.UUID) (*model.OrganizationMembership, error)
}

// TeamMembershipFinder is satisfied by repository.TeamRepository.
type TeamMembershipFinder interface {
	FindMembership(ctx context.Context, teamID, userID uuid.UUID) (*model.TeamMembership, error)
}

type Guard struct {
	orgs  OrgMembershipFinder
	teams TeamMembershipFinder
}

func NewGuard(orgs OrgMembershipFinder, teams TeamMembershipFinder) *Guard {
	return &Guard{orgs: orgs, teams: teams}
}

// IsOrgAdmin reports whether the user holds an active admin membership in the
// organization.
func (g *Guard) IsOrgAdmin(ctx context.Context, userID, orgID uuid.UUID) (bool, error) {
	membership, err := g.orgs.FindMembership(ctx, orgID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrMembershipNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("checking org admin: %w", err)
	}
	return membership.Status == model.MembershipActive && membership.Role == model.OrgRoleAdmin, nil
}

// IsOrgMember reports whether the user holds an active membership of any role.
func (g *Guard) IsOrgMember(ctx context.Context, userID, orgID uuid.UUID) (bool, error) {
	membership, err := g.orgs.FindMembership(ctx, orgID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrMembershipNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("checking org membership: %w", err)
	}
	return membership.Status == model.MembershipActive, nil
}

func (g *Guard) IsTeamLeader(ctx context.Context, userID, teamID uuid.UUID) (bool, error) {
	membership, err := g.teams.FindMembership(ctx, teamID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrMembershipNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("checking team leader: %w", err)
	}
	return membership.Role == model.TeamRoleLeader, nil
}

// IsTeamDispatcher covers both leaders and dispatchers, the roles allowed to
// move resources.
func (g *Guard) IsTeamDispatcher(ctx context.Context, userID, teamID uuid.UUID) (bool, error) {
	membership, err := g.teams.FindMembership(ctx, teamID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrMembershipNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("checking team dispatcher: %w", err)
	}
	return membership.Role == model.TeamRoleLeader || membership.Role == model.TeamRoleDispatcher, nil
}

func (g *Guard) IsTeamMember(ctx context.Context, userID, teamID uuid.UUID) (bool, error) {
	_, err := g.teams.FindMembership(ctx, teamID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrMembershipNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("checking team membership: %w", err)
	}
	return true, nil
}

// CanUpdateIncident grants the incident's creator, any member of the assigned
// team, or an organization admin.
func (g *Guard) CanUpdateIncident(ctx context.Context, userID uuid.UUID, incident *model.Incident) (bool, error) {
	if incident.CreatedByID == userID {
		return true, nil
	}

	if incident.AssignedTeamID != nil {
		ok, err := g.IsTeamMember(ctx, userID, *incident.AssignedTeamID)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}

	return g.IsOrgAdmin(ctx, userID, incident.OrganizationID)
}

// CanManageResource grants the leader of the resource's team (when it has
// one) or an organization admin. Used for resource updates.
func (g *Guard) CanManageResource(ctx context.Context, userID uuid.UUID, resource *model.Resource) (bool, error) {
	if resource.TeamID != nil {
		ok, err := g.IsTeamLeader(ctx, userID, *resource.TeamID)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}

	return g.IsOrgAdmin(ctx, userID, resource.OrganizationID)
}

// CanDispatchResource grants the leader or dispatcher of the resource's team
// (when it has one) or an organization admin. Used for assign and return.
func (g *Guard) CanDispatchResource(ctx context.Context, userID uuid.UUID, resource *model.Resource) (bool, error) {
	if resource.TeamID != nil {
		ok, err := g.IsTeamDispatcher(ctx, userID, *resource.TeamID)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}

	return g.IsOrgAdmin(ctx, userID, resource.OrganizationID)
}

// CanManageTeam grants the team's leader or an admin of its organization.
func (g *Guard) CanManageTeam(ctx context.Context, userID uuid.UUID, team *model.Team) (bool, error) {
	ok, err := g.IsTeamLeader(ctx, userID, team.ID)
	if err != nil {
		return false, err
	}
	if ok {
		return true, nil
	}

	return g.IsOrgAdmin(ctx, userID, team.OrganizationID)
}
