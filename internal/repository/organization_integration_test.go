package repository_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/emresys/emre/internal/model"
	"github.com/emresys/emre/internal/repository"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedOrg(t *testing.T, db *gorm.DB, creatorID uuid.UUID, visibility model.Visibility) *model.Organization {
	t.Helper()

	org := &model.Organization{
		Name:        fmt.Sprintf("Visibility Org %s", uuid.NewString()),
		Type:        model.OrgTypeDisasterRelief,
		Visibility:  visibility,
		Region:      "Test Region",
		CreatedByID: creatorID,
	}
	require.NoError(t, db.Create(org).Error)
	t.Cleanup(func() {
		db.Where("organization_id = ?", org.ID).Delete(&model.OrganizationMembership{})
		db.Delete(org)
	})
	return org
}

func TestOrganizationListVisibility(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	owner, _, _ := seedFixture(t, db)
	requester := &model.User{
		Email:          fmt.Sprintf("requester-%s@example.org", uuid.NewString()),
		FirstName:      "Requester",
		HashedPassword: "not-a-real-hash",
		IsActive:       true,
	}
	require.NoError(t, db.Create(requester).Error)
	t.Cleanup(func() { db.Delete(requester) })

	publicOrg := seedOrg(t, db, owner.ID, model.VisibilityPublic)
	memberPrivate := seedOrg(t, db, owner.ID, model.VisibilityPrivate)
	outsiderPrivate := seedOrg(t, db, owner.ID, model.VisibilityPrivate)
	pendingPrivate := seedOrg(t, db, owner.ID, model.VisibilityPrivate)

	require.NoError(t, db.Create(&model.OrganizationMembership{
		UserID:         requester.ID,
		OrganizationID: memberPrivate.ID,
		Role:           model.OrgRoleMember,
		Status:         model.MembershipActive,
	}).Error)
	require.NoError(t, db.Create(&model.OrganizationMembership{
		UserID:         requester.ID,
		OrganizationID: pendingPrivate.ID,
		Role:           model.OrgRoleMember,
		Status:         model.MembershipPending,
	}).Error)

	repo := repository.NewOrganizationRepository(db)

	// Generous page so fixture rows from other runs cannot push ours out.
	listed, err := repo.FindVisibleTo(ctx, requester.ID, nil, repository.Pagination{Limit: 10000})
	require.NoError(t, err)

	ids := make(map[uuid.UUID]bool, len(listed))
	for _, org := range listed {
		ids[org.ID] = true
	}

	assert.True(t, ids[publicOrg.ID], "public organization should be listed")
	assert.True(t, ids[memberPrivate.ID], "private organization with active membership should be listed")
	assert.False(t, ids[outsiderPrivate.ID], "private organization without membership must not leak")
	assert.False(t, ids[pendingPrivate.ID], "pending membership does not reveal a private organization")

	// Visibility filter narrows the union without widening it.
	private := model.VisibilityPrivate
	listed, err = repo.FindVisibleTo(ctx, requester.ID, &private, repository.Pagination{Limit: 10000})
	require.NoError(t, err)

	ids = make(map[uuid.UUID]bool, len(listed))
	for _, org := range listed {
		require.Equal(t, model.VisibilityPrivate, org.Visibility)
		ids[org.ID] = true
	}
	assert.True(t, ids[memberPrivate.ID])
	assert.False(t, ids[outsiderPrivate.ID])
}
