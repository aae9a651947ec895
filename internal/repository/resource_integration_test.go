package repository_test

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/emresys/emre/internal/domain"
	"github.com/emresys/emre/internal/model"
	"github.com/emresys/emre/internal/repository"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// openTestDB connects to the database named by TEST_DATABASE_DSN. The
// database must already be migrated (run `emre migrate` against it); the test
// is skipped when the variable is unset.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		t.Skip("TEST_DATABASE_DSN not set; skipping database integration test")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	return db
}

func seedFixture(t *testing.T, db *gorm.DB) (*model.User, *model.Organization, *model.Incident) {
	t.Helper()

	user := &model.User{
		Email:          fmt.Sprintf("fixture-%s@example.org", uuid.NewString()),
		FirstName:      "Fixture",
		HashedPassword: "not-a-real-hash",
		IsActive:       true,
	}
	require.NoError(t, db.Create(user).Error)
	t.Cleanup(func() { db.Delete(user) })

	org := &model.Organization{
		Name:        "Fixture Org " + uuid.NewString(),
		Type:        model.OrgTypeDisasterRelief,
		Visibility:  model.VisibilityPublic,
		Region:      "Test Region",
		CreatedByID: user.ID,
	}
	require.NoError(t, db.Create(org).Error)
	t.Cleanup(func() { db.Delete(org) })

	incident := &model.Incident{
		Title:          "Fixture incident",
		Type:           model.IncidentTypeEmergency,
		Priority:       model.PriorityHigh,
		Status:         model.IncidentOpen,
		OrganizationID: org.ID,
		CreatedByID:    user.ID,
	}
	require.NoError(t, db.Create(incident).Error)
	t.Cleanup(func() { db.Delete(incident) })

	return user, org, incident
}

func TestResourceAssignReturnFlow(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	_, org, incident := seedFixture(t, db)
	repo := repository.NewResourceRepository(db)

	resource := &model.Resource{
		Name:           "Pump Truck",
		Type:           model.ResourceVehicle,
		Status:         model.ResourceAvailable,
		Quantity:       3,
		Condition:      model.ConditionGood,
		OrganizationID: org.ID,
	}
	require.NoError(t, repo.Create(ctx, resource))
	t.Cleanup(func() {
		db.Where("resource_id = ?", resource.ID).Delete(&model.ResourceAssignment{})
		db.Delete(resource)
	})

	// Two of three units out: still available.
	first, err := repo.Assign(ctx, resource.ID, incident.ID, 2)
	require.NoError(t, err)

	got, err := repo.FindByID(ctx, resource.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ResourceAvailable, got.Status)

	active, err := repo.ActiveAssignments(ctx, resource.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, model.AvailableQuantity(got, active))

	// Last unit out: in_use.
	_, err = repo.Assign(ctx, resource.ID, incident.ID, 1)
	require.NoError(t, err)

	got, err = repo.FindByID(ctx, resource.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ResourceInUse, got.Status)

	// Overcommit refused, availability unchanged.
	_, err = repo.Assign(ctx, resource.ID, incident.ID, 1)
	assert.ErrorIs(t, err, domain.ErrInsufficientQuantity)

	active, err = repo.ActiveAssignments(ctx, resource.ID)
	require.NoError(t, err)
	got, err = repo.FindByID(ctx, resource.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, model.AvailableQuantity(got, active))

	// Returning the first checkout restores two units and flips the status
	// back even though one unit is still out.
	returned, err := repo.Return(ctx, first.ID)
	require.NoError(t, err)
	require.NotNil(t, returned.ReturnedAt)

	got, err = repo.FindByID(ctx, resource.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ResourceAvailable, got.Status)

	active, err = repo.ActiveAssignments(ctx, resource.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, model.AvailableQuantity(got, active))

	history, err := repo.ListAssignments(ctx, resource.ID, repository.Pagination{})
	require.NoError(t, err)
	assert.Len(t, history, 2)
}

func TestResourceAssignUnknownResource(t *testing.T) {
	db := openTestDB(t)

	repo := repository.NewResourceRepository(db)
	_, err := repo.Assign(context.Background(), uuid.New(), uuid.New(), 1)
	assert.ErrorIs(t, err, domain.ErrResourceNotFound)
}
