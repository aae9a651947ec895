package service_test

import (
	"context"
	"testing"
	"time"

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

func newResourceService(resources *mocks.MockResourceRepositoryIface, incidents *mocks.MockIncidentRepositoryIface, orgs *mocks.MockOrganizationRepositoryIface, teams *mocks.MockTeamRepositoryIface) *service.ResourceService {
	return service.NewResourceService(resources, incidents, authz.NewGuard(orgs, teams))
}

func TestResourceCreate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	orgID := uuid.New()
	adminID := uuid.New()

	t.Run("org admin registers inventory with defaults", func(t *testing.T) {
		resources := mocks.NewMockResourceRepositoryIface(ctrl)
		orgs := mocks.NewMockOrganizationRepositoryIface(ctrl)

		orgs.EXPECT().FindMembership(gomock.Any(), orgID, adminID).
			Return(activeOrgMembership(orgID, adminID, model.OrgRoleAdmin), nil)
		resources.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, resource *model.Resource) error {
				assert.Equal(t, model.ResourceAvailable, resource.Status)
				assert.Equal(t, 1, resource.Quantity)
				assert.Equal(t, model.ConditionGood, resource.Condition)
				return nil
			})

		svc := newResourceService(resources, mocks.NewMockIncidentRepositoryIface(ctrl), orgs, mocks.NewMockTeamRepositoryIface(ctrl))
		resource, err := svc.Create(context.Background(), service.CreateResourceInput{
			Name:           "Pump Truck",
			Type:           model.ResourceVehicle,
			OrganizationID: orgID,
		}, adminID)
		require.NoError(t, err)
		assert.Equal(t, model.ResourceAvailable, resource.Status)
	})

	t.Run("plain member cannot add inventory", func(t *testing.T) {
		resources := mocks.NewMockResourceRepositoryIface(ctrl)
		orgs := mocks.NewMockOrganizationRepositoryIface(ctrl)

		orgs.EXPECT().FindMembership(gomock.Any(), orgID, adminID).
			Return(activeOrgMembership(orgID, adminID, model.OrgRoleMember), nil)

		svc := newResourceService(resources, mocks.NewMockIncidentRepositoryIface(ctrl), orgs, mocks.NewMockTeamRepositoryIface(ctrl))
		_, err := svc.Create(context.Background(), service.CreateResourceInput{
			Name:           "Pump Truck",
			Type:           model.ResourceVehicle,
			OrganizationID: orgID,
		}, adminID)
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})
}

func TestResourceUpdate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	orgID := uuid.New()
	resourceID := uuid.New()
	adminID := uuid.New()

	t.Run("patch keeps status untouched", func(t *testing.T) {
		resources := mocks.NewMockResourceRepositoryIface(ctrl)
		orgs := mocks.NewMockOrganizationRepositoryIface(ctrl)

		resources.EXPECT().FindByID(gomock.Any(), resourceID).Return(&model.Resource{
			ID:             resourceID,
			Name:           "Pump Truck",
			Status:         model.ResourceInUse,
			Quantity:       3,
			OrganizationID: orgID,
		}, nil)
		orgs.EXPECT().FindMembership(gomock.Any(), orgID, adminID).
			Return(activeOrgMembership(orgID, adminID, model.OrgRoleAdmin), nil)
		resources.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)

		svc := newResourceService(resources, mocks.NewMockIncidentRepositoryIface(ctrl), orgs, mocks.NewMockTeamRepositoryIface(ctrl))
		quantity := 5
		resource, err := svc.Update(context.Background(), resourceID, service.UpdateResourceInput{Quantity: &quantity}, adminID)
		require.NoError(t, err)
		assert.Equal(t, 5, resource.Quantity)
		assert.Equal(t, model.ResourceInUse, resource.Status)
	})

	t.Run("team leader may update a team resource", func(t *testing.T) {
		resources := mocks.NewMockResourceRepositoryIface(ctrl)
		teams := mocks.NewMockTeamRepositoryIface(ctrl)

		teamID := uuid.New()
		leaderID := uuid.New()
		resources.EXPECT().FindByID(gomock.Any(), resourceID).Return(&model.Resource{
			ID:             resourceID,
			Name:           "Pump Truck",
			OrganizationID: orgID,
			TeamID:         &teamID,
		}, nil)
		teams.EXPECT().FindMembership(gomock.Any(), teamID, leaderID).
			Return(&model.TeamMembership{TeamID: teamID, UserID: leaderID, Role: model.TeamRoleLeader}, nil)
		resources.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)

		svc := newResourceService(resources, mocks.NewMockIncidentRepositoryIface(ctrl), mocks.NewMockOrganizationRepositoryIface(ctrl), teams)
		name := "Pump Truck 2"
		resource, err := svc.Update(context.Background(), resourceID, service.UpdateResourceInput{Name: &name}, leaderID)
		require.NoError(t, err)
		assert.Equal(t, "Pump Truck 2", resource.Name)
	})
}

func TestResourceAssign(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	orgID := uuid.New()
	teamID := uuid.New()
	resourceID := uuid.New()
	incidentID := uuid.New()
	dispatcherID := uuid.New()

	teamResource := func() *model.Resource {
		return &model.Resource{
			ID:             resourceID,
			Name:           "Pump Truck",
			Status:         model.ResourceAvailable,
			Quantity:       3,
			OrganizationID: orgID,
			TeamID:         &teamID,
		}
	}
	dispatcherMembership := &model.TeamMembership{TeamID: teamID, UserID: dispatcherID, Role: model.TeamRoleDispatcher}

	t.Run("dispatcher checks out units, quantity defaults to 1", func(t *testing.T) {
		resources := mocks.NewMockResourceRepositoryIface(ctrl)
		incidents := mocks.NewMockIncidentRepositoryIface(ctrl)
		teams := mocks.NewMockTeamRepositoryIface(ctrl)

		resources.EXPECT().FindByID(gomock.Any(), resourceID).Return(teamResource(), nil)
		teams.EXPECT().FindMembership(gomock.Any(), teamID, dispatcherID).Return(dispatcherMembership, nil)
		incidents.EXPECT().FindByID(gomock.Any(), incidentID).Return(&model.Incident{ID: incidentID}, nil)
		resources.EXPECT().Assign(gomock.Any(), resourceID, incidentID, 1).
			Return(&model.ResourceAssignment{ResourceID: resourceID, IncidentID: incidentID, Quantity: 1}, nil)

		svc := newResourceService(resources, incidents, mocks.NewMockOrganizationRepositoryIface(ctrl), teams)
		assignment, err := svc.Assign(context.Background(), resourceID, service.AssignResourceInput{IncidentID: incidentID}, dispatcherID)
		require.NoError(t, err)
		assert.Equal(t, 1, assignment.Quantity)
	})

	t.Run("overcommit surfaces the repository conflict", func(t *testing.T) {
		resources := mocks.NewMockResourceRepositoryIface(ctrl)
		incidents := mocks.NewMockIncidentRepositoryIface(ctrl)
		teams := mocks.NewMockTeamRepositoryIface(ctrl)

		resources.EXPECT().FindByID(gomock.Any(), resourceID).Return(teamResource(), nil)
		teams.EXPECT().FindMembership(gomock.Any(), teamID, dispatcherID).Return(dispatcherMembership, nil)
		incidents.EXPECT().FindByID(gomock.Any(), incidentID).Return(&model.Incident{ID: incidentID}, nil)
		resources.EXPECT().Assign(gomock.Any(), resourceID, incidentID, 4).Return(nil, domain.ErrInsufficientQuantity)

		svc := newResourceService(resources, incidents, mocks.NewMockOrganizationRepositoryIface(ctrl), teams)
		_, err := svc.Assign(context.Background(), resourceID, service.AssignResourceInput{IncidentID: incidentID, Quantity: 4}, dispatcherID)
		assert.ErrorIs(t, err, domain.ErrInsufficientQuantity)
	})

	t.Run("unknown incident blocks the checkout", func(t *testing.T) {
		resources := mocks.NewMockResourceRepositoryIface(ctrl)
		incidents := mocks.NewMockIncidentRepositoryIface(ctrl)
		teams := mocks.NewMockTeamRepositoryIface(ctrl)

		resources.EXPECT().FindByID(gomock.Any(), resourceID).Return(teamResource(), nil)
		teams.EXPECT().FindMembership(gomock.Any(), teamID, dispatcherID).Return(dispatcherMembership, nil)
		incidents.EXPECT().FindByID(gomock.Any(), incidentID).Return(nil, domain.ErrIncidentNotFound)

		svc := newResourceService(resources, incidents, mocks.NewMockOrganizationRepositoryIface(ctrl), teams)
		_, err := svc.Assign(context.Background(), resourceID, service.AssignResourceInput{IncidentID: incidentID, Quantity: 1}, dispatcherID)
		assert.ErrorIs(t, err, domain.ErrIncidentNotFound)
	})

	t.Run("plain team member falls through to org check", func(t *testing.T) {
		resources := mocks.NewMockResourceRepositoryIface(ctrl)
		orgs := mocks.NewMockOrganizationRepositoryIface(ctrl)
		teams := mocks.NewMockTeamRepositoryIface(ctrl)

		memberID := uuid.New()
		resources.EXPECT().FindByID(gomock.Any(), resourceID).Return(teamResource(), nil)
		teams.EXPECT().FindMembership(gomock.Any(), teamID, memberID).
			Return(&model.TeamMembership{TeamID: teamID, UserID: memberID, Role: model.TeamRoleMember}, nil)
		orgs.EXPECT().FindMembership(gomock.Any(), orgID, memberID).
			Return(activeOrgMembership(orgID, memberID, model.OrgRoleMember), nil)

		svc := newResourceService(resources, mocks.NewMockIncidentRepositoryIface(ctrl), orgs, teams)
		_, err := svc.Assign(context.Background(), resourceID, service.AssignResourceInput{IncidentID: incidentID}, memberID)
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})
}

func TestResourceReturn(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	orgID := uuid.New()
	resourceID := uuid.New()
	assignmentID := uuid.New()
	adminID := uuid.New()

	t.Run("org admin returns an active assignment", func(t *testing.T) {
		resources := mocks.NewMockResourceRepositoryIface(ctrl)
		orgs := mocks.NewMockOrganizationRepositoryIface(ctrl)

		resources.EXPECT().FindAssignment(gomock.Any(), assignmentID).
			Return(&model.ResourceAssignment{ID: assignmentID, ResourceID: resourceID, Quantity: 2}, nil)
		resources.EXPECT().FindByID(gomock.Any(), resourceID).
			Return(&model.Resource{ID: resourceID, OrganizationID: orgID, Quantity: 3}, nil)
		orgs.EXPECT().FindMembership(gomock.Any(), orgID, adminID).
			Return(activeOrgMembership(orgID, adminID, model.OrgRoleAdmin), nil)
		returnedAt := time.Now().UTC()
		resources.EXPECT().Return(gomock.Any(), assignmentID).
			Return(&model.ResourceAssignment{ID: assignmentID, ResourceID: resourceID, Quantity: 2, ReturnedAt: &returnedAt}, nil)

		svc := newResourceService(resources, mocks.NewMockIncidentRepositoryIface(ctrl), orgs, mocks.NewMockTeamRepositoryIface(ctrl))
		assignment, err := svc.Return(context.Background(), resourceID, assignmentID, adminID)
		require.NoError(t, err)
		assert.NotNil(t, assignment.ReturnedAt)
	})

	t.Run("assignment belonging to another resource reads as missing", func(t *testing.T) {
		resources := mocks.NewMockResourceRepositoryIface(ctrl)

		resources.EXPECT().FindAssignment(gomock.Any(), assignmentID).
			Return(&model.ResourceAssignment{ID: assignmentID, ResourceID: uuid.New(), Quantity: 2}, nil)

		svc := newResourceService(resources, mocks.NewMockIncidentRepositoryIface(ctrl), mocks.NewMockOrganizationRepositoryIface(ctrl), mocks.NewMockTeamRepositoryIface(ctrl))
		_, err := svc.Return(context.Background(), resourceID, assignmentID, adminID)
		assert.ErrorIs(t, err, domain.ErrAssignmentNotFound)
	})

	t.Run("double return is rejected", func(t *testing.T) {
		resources := mocks.NewMockResourceRepositoryIface(ctrl)

		returnedAt := time.Now().UTC().Add(-time.Hour)
		resources.EXPECT().FindAssignment(gomock.Any(), assignmentID).
			Return(&model.ResourceAssignment{ID: assignmentID, ResourceID: resourceID, Quantity: 2, ReturnedAt: &returnedAt}, nil)

		svc := newResourceService(resources, mocks.NewMockIncidentRepositoryIface(ctrl), mocks.NewMockOrganizationRepositoryIface(ctrl), mocks.NewMockTeamRepositoryIface(ctrl))
		_, err := svc.Return(context.Background(), resourceID, assignmentID, adminID)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}
