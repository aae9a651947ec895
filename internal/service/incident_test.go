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

func newIncidentService(incidents *mocks.MockIncidentRepositoryIface, orgs *mocks.MockOrganizationRepositoryIface, teams *mocks.MockTeamRepositoryIface) *service.IncidentService {
	return service.NewIncidentService(incidents, authz.NewGuard(orgs, teams))
}

func TestIncidentCreate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	orgID := uuid.New()
	creatorID := uuid.New()

	t.Run("org member opens incident", func(t *testing.T) {
		incidents := mocks.NewMockIncidentRepositoryIface(ctrl)
		orgs := mocks.NewMockOrganizationRepositoryIface(ctrl)

		orgs.EXPECT().FindMembership(gomock.Any(), orgID, creatorID).
			Return(activeOrgMembership(orgID, creatorID, model.OrgRoleMember), nil)
		incidents.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, incident *model.Incident) error {
				assert.Equal(t, model.IncidentOpen, incident.Status)
				assert.Equal(t, creatorID, incident.CreatedByID)
				assert.Nil(t, incident.ResolvedAt)
				return nil
			})

		svc := newIncidentService(incidents, orgs, mocks.NewMockTeamRepositoryIface(ctrl))
		incident, err := svc.Create(context.Background(), service.CreateIncidentInput{
			Title:          "Flooding on Route 9",
			Type:           model.IncidentTypeEmergency,
			Priority:       model.PriorityHigh,
			OrganizationID: orgID,
		}, creatorID)
		require.NoError(t, err)
		assert.Equal(t, model.IncidentOpen, incident.Status)
	})

	t.Run("non-member is forbidden", func(t *testing.T) {
		incidents := mocks.NewMockIncidentRepositoryIface(ctrl)
		orgs := mocks.NewMockOrganizationRepositoryIface(ctrl)

		orgs.EXPECT().FindMembership(gomock.Any(), orgID, creatorID).Return(nil, domain.ErrMembershipNotFound)

		svc := newIncidentService(incidents, orgs, mocks.NewMockTeamRepositoryIface(ctrl))
		_, err := svc.Create(context.Background(), service.CreateIncidentInput{
			Title:          "Flooding on Route 9",
			Type:           model.IncidentTypeEmergency,
			Priority:       model.PriorityHigh,
			OrganizationID: orgID,
		}, creatorID)
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("rejects unknown priority", func(t *testing.T) {
		svc := newIncidentService(mocks.NewMockIncidentRepositoryIface(ctrl), mocks.NewMockOrganizationRepositoryIface(ctrl), mocks.NewMockTeamRepositoryIface(ctrl))
		_, err := svc.Create(context.Background(), service.CreateIncidentInput{
			Title:          "Flooding on Route 9",
			Type:           model.IncidentTypeEmergency,
			Priority:       model.IncidentPriority("urgent"),
			OrganizationID: orgID,
		}, creatorID)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestIncidentUpdate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	orgID := uuid.New()
	incidentID := uuid.New()
	creatorID := uuid.New()

	openIncident := func() *model.Incident {
		return &model.Incident{
			ID:             incidentID,
			Title:          "Flooding on Route 9",
			Status:         model.IncidentOpen,
			Priority:       model.PriorityHigh,
			OrganizationID: orgID,
			CreatedByID:    creatorID,
		}
	}

	t.Run("resolving stamps resolved_at once", func(t *testing.T) {
		incidents := mocks.NewMockIncidentRepositoryIface(ctrl)

		incidents.EXPECT().FindByID(gomock.Any(), incidentID).Return(openIncident(), nil)
		incidents.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)

		svc := newIncidentService(incidents, mocks.NewMockOrganizationRepositoryIface(ctrl), mocks.NewMockTeamRepositoryIface(ctrl))
		status := model.IncidentResolved
		incident, err := svc.Update(context.Background(), incidentID, service.UpdateIncidentInput{Status: &status}, creatorID)
		require.NoError(t, err)
		require.NotNil(t, incident.ResolvedAt)
		assert.WithinDuration(t, time.Now().UTC(), *incident.ResolvedAt, time.Minute)
	})

	t.Run("reopening keeps the original resolved_at", func(t *testing.T) {
		incidents := mocks.NewMockIncidentRepositoryIface(ctrl)

		resolvedAt := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
		resolved := openIncident()
		resolved.Status = model.IncidentResolved
		resolved.ResolvedAt = &resolvedAt

		incidents.EXPECT().FindByID(gomock.Any(), incidentID).Return(resolved, nil)
		incidents.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)

		svc := newIncidentService(incidents, mocks.NewMockOrganizationRepositoryIface(ctrl), mocks.NewMockTeamRepositoryIface(ctrl))
		status := model.IncidentOpen
		incident, err := svc.Update(context.Background(), incidentID, service.UpdateIncidentInput{Status: &status}, creatorID)
		require.NoError(t, err)
		assert.Equal(t, model.IncidentOpen, incident.Status)
		require.NotNil(t, incident.ResolvedAt)
		assert.Equal(t, resolvedAt, *incident.ResolvedAt)
	})

	t.Run("non-resolved transition leaves resolved_at unset", func(t *testing.T) {
		incidents := mocks.NewMockIncidentRepositoryIface(ctrl)

		incidents.EXPECT().FindByID(gomock.Any(), incidentID).Return(openIncident(), nil)
		incidents.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)

		svc := newIncidentService(incidents, mocks.NewMockOrganizationRepositoryIface(ctrl), mocks.NewMockTeamRepositoryIface(ctrl))
		status := model.IncidentInProgress
		incident, err := svc.Update(context.Background(), incidentID, service.UpdateIncidentInput{Status: &status}, creatorID)
		require.NoError(t, err)
		assert.Nil(t, incident.ResolvedAt)
	})

	t.Run("assigned team member may update", func(t *testing.T) {
		incidents := mocks.NewMockIncidentRepositoryIface(ctrl)
		teams := mocks.NewMockTeamRepositoryIface(ctrl)

		teamID := uuid.New()
		memberID := uuid.New()
		incident := openIncident()
		incident.AssignedTeamID = &teamID

		incidents.EXPECT().FindByID(gomock.Any(), incidentID).Return(incident, nil)
		teams.EXPECT().FindMembership(gomock.Any(), teamID, memberID).
			Return(&model.TeamMembership{TeamID: teamID, UserID: memberID, Role: model.TeamRoleMember}, nil)
		incidents.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)

		svc := newIncidentService(incidents, mocks.NewMockOrganizationRepositoryIface(ctrl), teams)
		priority := model.PriorityCritical
		updated, err := svc.Update(context.Background(), incidentID, service.UpdateIncidentInput{Priority: &priority}, memberID)
		require.NoError(t, err)
		assert.Equal(t, model.PriorityCritical, updated.Priority)
	})

	t.Run("outsider is forbidden", func(t *testing.T) {
		incidents := mocks.NewMockIncidentRepositoryIface(ctrl)
		orgs := mocks.NewMockOrganizationRepositoryIface(ctrl)

		outsiderID := uuid.New()
		incidents.EXPECT().FindByID(gomock.Any(), incidentID).Return(openIncident(), nil)
		orgs.EXPECT().FindMembership(gomock.Any(), orgID, outsiderID).Return(nil, domain.ErrMembershipNotFound)

		svc := newIncidentService(incidents, orgs, mocks.NewMockTeamRepositoryIface(ctrl))
		title := "Renamed"
		_, err := svc.Update(context.Background(), incidentID, service.UpdateIncidentInput{Title: &title}, outsiderID)
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})
}

func TestIncidentAddUpdate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	incidentID := uuid.New()
	authorID := uuid.New()

	t.Run("any active user may post, default type general", func(t *testing.T) {
		incidents := mocks.NewMockIncidentRepositoryIface(ctrl)

		incidents.EXPECT().FindByID(gomock.Any(), incidentID).Return(&model.Incident{ID: incidentID}, nil)
		incidents.EXPECT().CreateUpdate(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, update *model.IncidentUpdate) error {
				assert.Equal(t, model.UpdateGeneral, update.UpdateType)
				assert.Equal(t, authorID, update.UserID)
				return nil
			})

		svc := newIncidentService(incidents, mocks.NewMockOrganizationRepositoryIface(ctrl), mocks.NewMockTeamRepositoryIface(ctrl))
		update, err := svc.AddUpdate(context.Background(), incidentID, authorID, service.AddUpdateInput{
			Content: "Water level receding near the bridge.",
		})
		require.NoError(t, err)
		assert.Equal(t, model.UpdateGeneral, update.UpdateType)
	})

	t.Run("unknown incident", func(t *testing.T) {
		incidents := mocks.NewMockIncidentRepositoryIface(ctrl)
		incidents.EXPECT().FindByID(gomock.Any(), incidentID).Return(nil, domain.ErrIncidentNotFound)

		svc := newIncidentService(incidents, mocks.NewMockOrganizationRepositoryIface(ctrl), mocks.NewMockTeamRepositoryIface(ctrl))
		_, err := svc.AddUpdate(context.Background(), incidentID, authorID, service.AddUpdateInput{Content: "hello"})
		assert.ErrorIs(t, err, domain.ErrIncidentNotFound)
	})

	t.Run("empty content is rejected", func(t *testing.T) {
		svc := newIncidentService(mocks.NewMockIncidentRepositoryIface(ctrl), mocks.NewMockOrganizationRepositoryIface(ctrl), mocks.NewMockTeamRepositoryIface(ctrl))
		_, err := svc.AddUpdate(context.Background(), incidentID, authorID, service.AddUpdateInput{})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestIncidentGet(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	incidentID := uuid.New()
	incidents := mocks.NewMockIncidentRepositoryIface(ctrl)

	incidents.EXPECT().FindDetailByID(gomock.Any(), incidentID).Return(&model.Incident{
		ID:           incidentID,
		Title:        "Flooding on Route 9",
		Organization: &model.Organization{Name: "Coastal Relief"},
		AssignedTeam: &model.Team{Name: "Alpha Rescue"},
		Creator:      &model.User{FirstName: "Dana", LastName: "Reyes"},
	}, nil)
	incidents.EXPECT().ActiveAssignments(gomock.Any(), incidentID).Return([]model.ResourceAssignment{
		{IncidentID: incidentID, Quantity: 2},
	}, nil)

	svc := newIncidentService(incidents, mocks.NewMockOrganizationRepositoryIface(ctrl), mocks.NewMockTeamRepositoryIface(ctrl))
	detail, err := svc.Get(context.Background(), incidentID)
	require.NoError(t, err)
	assert.Equal(t, "Coastal Relief", detail.OrganizationName)
	assert.Equal(t, "Alpha Rescue", detail.AssignedTeamName)
	assert.Equal(t, "Dana Reyes", detail.CreatorName)
	require.Len(t, detail.AssignedResources, 1)
}
