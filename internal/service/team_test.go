package service_test

import (
	"context"
	"testing"

	"github.com/emresys/emre/internal/authz"
	"github.com/emresys/emre/internal/domain"
	"github.com/emresys/emre/internal/mocks"
	"github.com/emresys/emre/internal/model"
	"github.com/emresys/emre/internal/service"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTeamService(teams *mocks.MockTeamRepositoryIface, orgs *mocks.MockOrganizationRepositoryIface) *service.TeamService {
	return service.NewTeamService(teams, orgs, authz.NewGuard(orgs, teams))
}

func activeOrgMembership(orgID, userID uuid.UUID, role model.OrgRole) *model.OrganizationMembership {
	return &model.OrganizationMembership{
		UserID:         userID,
		OrganizationID: orgID,
		Role:           role,
		Status:         model.MembershipActive,
	}
}

func TestTeamCreate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	orgID := uuid.New()
	creatorID := uuid.New()

	t.Run("org admin creates team with creator as leader", func(t *testing.T) {
		teams := mocks.NewMockTeamRepositoryIface(ctrl)
		orgs := mocks.NewMockOrganizationRepositoryIface(ctrl)

		orgs.EXPECT().FindMembership(gomock.Any(), orgID, creatorID).
			Return(activeOrgMembership(orgID, creatorID, model.OrgRoleAdmin), nil)
		teams.EXPECT().CreateWithLeader(gomock.Any(), gomock.Any(), creatorID).DoAndReturn(
			func(_ context.Context, team *model.Team, _ uuid.UUID) error {
				assert.Equal(t, model.TeamStatusActive, team.Status)
				return nil
			})

		svc := newTeamService(teams, orgs)
		team, err := svc.Create(context.Background(), service.CreateTeamInput{
			Name:           "Alpha Rescue",
			OrganizationID: orgID,
			Type:           model.TeamTypeRescue,
		}, creatorID)
		require.NoError(t, err)
		assert.Equal(t, "Alpha Rescue", team.Name)
		assert.Equal(t, model.TeamStatusActive, team.Status)
	})

	t.Run("plain member cannot create", func(t *testing.T) {
		teams := mocks.NewMockTeamRepositoryIface(ctrl)
		orgs := mocks.NewMockOrganizationRepositoryIface(ctrl)

		orgs.EXPECT().FindMembership(gomock.Any(), orgID, creatorID).
			Return(activeOrgMembership(orgID, creatorID, model.OrgRoleMember), nil)

		svc := newTeamService(teams, orgs)
		_, err := svc.Create(context.Background(), service.CreateTeamInput{
			Name:           "Bravo",
			OrganizationID: orgID,
			Type:           model.TeamTypeResponse,
		}, creatorID)
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("rejects unknown type", func(t *testing.T) {
		svc := newTeamService(mocks.NewMockTeamRepositoryIface(ctrl), mocks.NewMockOrganizationRepositoryIface(ctrl))
		_, err := svc.Create(context.Background(), service.CreateTeamInput{
			Name:           "Charlie",
			OrganizationID: orgID,
			Type:           model.TeamType("aviation"),
		}, creatorID)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestTeamAddMember(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	orgID := uuid.New()
	teamID := uuid.New()
	leaderID := uuid.New()
	targetID := uuid.New()

	team := &model.Team{ID: teamID, OrganizationID: orgID, Name: "Alpha", Status: model.TeamStatusActive}
	leaderMembership := &model.TeamMembership{TeamID: teamID, UserID: leaderID, Role: model.TeamRoleLeader}

	t.Run("leader adds active org member with default role", func(t *testing.T) {
		teams := mocks.NewMockTeamRepositoryIface(ctrl)
		orgs := mocks.NewMockOrganizationRepositoryIface(ctrl)

		teams.EXPECT().FindByID(gomock.Any(), teamID).Return(team, nil)
		teams.EXPECT().FindMembership(gomock.Any(), teamID, leaderID).Return(leaderMembership, nil)
		orgs.EXPECT().FindMembership(gomock.Any(), orgID, targetID).
			Return(activeOrgMembership(orgID, targetID, model.OrgRoleMember), nil)
		teams.EXPECT().FindMembership(gomock.Any(), teamID, targetID).Return(nil, domain.ErrMembershipNotFound)
		teams.EXPECT().CreateMembership(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, m *model.TeamMembership) error {
				assert.Equal(t, model.TeamRoleMember, m.Role)
				assert.Equal(t, leaderID, m.AddedByID)
				return nil
			})

		svc := newTeamService(teams, orgs)
		membership, err := svc.AddMember(context.Background(), teamID, targetID, "", leaderID)
		require.NoError(t, err)
		assert.Equal(t, targetID, membership.UserID)
		assert.Equal(t, model.TeamRoleMember, membership.Role)
	})

	t.Run("target without org membership is rejected", func(t *testing.T) {
		teams := mocks.NewMockTeamRepositoryIface(ctrl)
		orgs := mocks.NewMockOrganizationRepositoryIface(ctrl)

		teams.EXPECT().FindByID(gomock.Any(), teamID).Return(team, nil)
		teams.EXPECT().FindMembership(gomock.Any(), teamID, leaderID).Return(leaderMembership, nil)
		orgs.EXPECT().FindMembership(gomock.Any(), orgID, targetID).Return(nil, domain.ErrMembershipNotFound)

		svc := newTeamService(teams, orgs)
		_, err := svc.AddMember(context.Background(), teamID, targetID, model.TeamRoleMember, leaderID)
		assert.ErrorIs(t, err, domain.ErrNotOrgMember)
	})

	t.Run("pending org membership is not enough", func(t *testing.T) {
		teams := mocks.NewMockTeamRepositoryIface(ctrl)
		orgs := mocks.NewMockOrganizationRepositoryIface(ctrl)

		pending := activeOrgMembership(orgID, targetID, model.OrgRoleMember)
		pending.Status = model.MembershipPending

		teams.EXPECT().FindByID(gomock.Any(), teamID).Return(team, nil)
		teams.EXPECT().FindMembership(gomock.Any(), teamID, leaderID).Return(leaderMembership, nil)
		orgs.EXPECT().FindMembership(gomock.Any(), orgID, targetID).Return(pending, nil)

		svc := newTeamService(teams, orgs)
		_, err := svc.AddMember(context.Background(), teamID, targetID, model.TeamRoleMember, leaderID)
		assert.ErrorIs(t, err, domain.ErrNotOrgMember)
	})

	t.Run("existing team member conflicts", func(t *testing.T) {
		teams := mocks.NewMockTeamRepositoryIface(ctrl)
		orgs := mocks.NewMockOrganizationRepositoryIface(ctrl)

		teams.EXPECT().FindByID(gomock.Any(), teamID).Return(team, nil)
		teams.EXPECT().FindMembership(gomock.Any(), teamID, leaderID).Return(leaderMembership, nil)
		orgs.EXPECT().FindMembership(gomock.Any(), orgID, targetID).
			Return(activeOrgMembership(orgID, targetID, model.OrgRoleMember), nil)
		teams.EXPECT().FindMembership(gomock.Any(), teamID, targetID).
			Return(&model.TeamMembership{TeamID: teamID, UserID: targetID, Role: model.TeamRoleMember}, nil)

		svc := newTeamService(teams, orgs)
		_, err := svc.AddMember(context.Background(), teamID, targetID, model.TeamRoleDispatcher, leaderID)
		assert.ErrorIs(t, err, domain.ErrAlreadyMember)
	})

	t.Run("plain team member cannot add", func(t *testing.T) {
		teams := mocks.NewMockTeamRepositoryIface(ctrl)
		orgs := mocks.NewMockOrganizationRepositoryIface(ctrl)

		actorID := uuid.New()
		teams.EXPECT().FindByID(gomock.Any(), teamID).Return(team, nil)
		teams.EXPECT().FindMembership(gomock.Any(), teamID, actorID).
			Return(&model.TeamMembership{TeamID: teamID, UserID: actorID, Role: model.TeamRoleMember}, nil)
		orgs.EXPECT().FindMembership(gomock.Any(), orgID, actorID).
			Return(activeOrgMembership(orgID, actorID, model.OrgRoleMember), nil)

		svc := newTeamService(teams, orgs)
		_, err := svc.AddMember(context.Background(), teamID, targetID, model.TeamRoleMember, actorID)
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})
}

func TestTeamRemoveMember(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	orgID := uuid.New()
	teamID := uuid.New()
	adminID := uuid.New()
	targetID := uuid.New()

	team := &model.Team{ID: teamID, OrganizationID: orgID, Name: "Alpha"}

	t.Run("org admin removes member", func(t *testing.T) {
		teams := mocks.NewMockTeamRepositoryIface(ctrl)
		orgs := mocks.NewMockOrganizationRepositoryIface(ctrl)

		teams.EXPECT().FindByID(gomock.Any(), teamID).Return(team, nil)
		teams.EXPECT().FindMembership(gomock.Any(), teamID, adminID).Return(nil, domain.ErrMembershipNotFound)
		orgs.EXPECT().FindMembership(gomock.Any(), orgID, adminID).
			Return(activeOrgMembership(orgID, adminID, model.OrgRoleAdmin), nil)
		teams.EXPECT().DeleteMembership(gomock.Any(), teamID, targetID).Return(nil)

		svc := newTeamService(teams, orgs)
		err := svc.RemoveMember(context.Background(), teamID, targetID, adminID)
		assert.NoError(t, err)
	})

	t.Run("outsider is forbidden", func(t *testing.T) {
		teams := mocks.NewMockTeamRepositoryIface(ctrl)
		orgs := mocks.NewMockOrganizationRepositoryIface(ctrl)

		outsiderID := uuid.New()
		teams.EXPECT().FindByID(gomock.Any(), teamID).Return(team, nil)
		teams.EXPECT().FindMembership(gomock.Any(), teamID, outsiderID).Return(nil, domain.ErrMembershipNotFound)
		orgs.EXPECT().FindMembership(gomock.Any(), orgID, outsiderID).Return(nil, domain.ErrMembershipNotFound)

		svc := newTeamService(teams, orgs)
		err := svc.RemoveMember(context.Background(), teamID, targetID, outsiderID)
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})
}

func TestTeamUpdateMemberRole(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	teamID := uuid.New()
	leaderID := uuid.New()
	targetID := uuid.New()

	t.Run("leader promotes member to dispatcher", func(t *testing.T) {
		teams := mocks.NewMockTeamRepositoryIface(ctrl)
		orgs := mocks.NewMockOrganizationRepositoryIface(ctrl)

		teams.EXPECT().FindMembership(gomock.Any(), teamID, leaderID).
			Return(&model.TeamMembership{TeamID: teamID, UserID: leaderID, Role: model.TeamRoleLeader}, nil)
		teams.EXPECT().FindMembership(gomock.Any(), teamID, targetID).
			Return(&model.TeamMembership{TeamID: teamID, UserID: targetID, Role: model.TeamRoleMember}, nil)
		teams.EXPECT().UpdateMembership(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, m *model.TeamMembership) error {
				assert.Equal(t, model.TeamRoleDispatcher, m.Role)
				return nil
			})

		svc := newTeamService(teams, orgs)
		membership, err := svc.UpdateMemberRole(context.Background(), teamID, targetID, model.TeamRoleDispatcher, leaderID)
		require.NoError(t, err)
		assert.Equal(t, model.TeamRoleDispatcher, membership.Role)
	})

	t.Run("dispatcher cannot change roles", func(t *testing.T) {
		teams := mocks.NewMockTeamRepositoryIface(ctrl)
		orgs := mocks.NewMockOrganizationRepositoryIface(ctrl)

		actorID := uuid.New()
		teams.EXPECT().FindMembership(gomock.Any(), teamID, actorID).
			Return(&model.TeamMembership{TeamID: teamID, UserID: actorID, Role: model.TeamRoleDispatcher}, nil)

		svc := newTeamService(teams, orgs)
		_, err := svc.UpdateMemberRole(context.Background(), teamID, targetID, model.TeamRoleMember, actorID)
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("rejects unknown role before lookups", func(t *testing.T) {
		svc := newTeamService(mocks.NewMockTeamRepositoryIface(ctrl), mocks.NewMockOrganizationRepositoryIface(ctrl))
		_, err := svc.UpdateMemberRole(context.Background(), teamID, targetID, model.TeamRole("captain"), leaderID)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestTeamGet(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	orgID := uuid.New()
	teamID := uuid.New()
	memberID := uuid.New()

	teams := mocks.NewMockTeamRepositoryIface(ctrl)
	orgs := mocks.NewMockOrganizationRepositoryIface(ctrl)

	teams.EXPECT().FindByID(gomock.Any(), teamID).
		Return(&model.Team{ID: teamID, OrganizationID: orgID, Name: "Alpha"}, nil)
	teams.EXPECT().FindMembers(gomock.Any(), teamID).Return([]*model.TeamMembership{
		{TeamID: teamID, UserID: memberID, Role: model.TeamRoleLeader, User: &model.User{ID: memberID, FirstName: "Dana"}},
	}, nil)
	teams.EXPECT().FindResources(gomock.Any(), teamID).Return([]model.Resource{
		{Name: "Pump Truck", Type: model.ResourceVehicle},
	}, nil)
	teams.EXPECT().Stats(gomock.Any(), teamID).
		Return(&model.TeamStats{MemberCount: 1, ActiveIncidents: 2, AssignedResources: 1}, nil)
	orgs.EXPECT().FindByID(gomock.Any(), orgID).
		Return(&model.Organization{ID: orgID, Name: "Coastal Relief"}, nil)

	svc := newTeamService(teams, orgs)
	detail, err := svc.Get(context.Background(), teamID)
	require.NoError(t, err)
	assert.Equal(t, "Coastal Relief", detail.OrganizationName)
	require.Len(t, detail.Members, 1)
	assert.Equal(t, "Dana", detail.Members[0].FirstName)
	assert.Equal(t, int64(2), detail.ActiveIncidents)
}
