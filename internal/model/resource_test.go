package model_test

import (
	"testing"
	"time"

	"github.com/emresys/emre/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestAvailableQuantity(t *testing.T) {
	now := time.Now()
	resource := &model.Resource{Quantity: 3}

	t.Run("no assignments", func(t *testing.T) {
		assert.Equal(t, 3, model.AvailableQuantity(resource, nil))
	})

	t.Run("active assignments subtract", func(t *testing.T) {
		assignments := []*model.ResourceAssignment{
			{Quantity: 2},
			{Quantity: 1},
		}
		assert.Equal(t, 0, model.AvailableQuantity(resource, assignments))
	})

	t.Run("returned assignments do not count", func(t *testing.T) {
		assignments := []*model.ResourceAssignment{
			{Quantity: 2, ReturnedAt: &now},
			{Quantity: 1},
		}
		assert.Equal(t, 2, model.AvailableQuantity(resource, assignments))
	})

	t.Run("overcommit yields negative", func(t *testing.T) {
		assignments := []*model.ResourceAssignment{
			{Quantity: 5},
		}
		assert.Equal(t, -2, model.AvailableQuantity(resource, assignments))
	})
}

func TestResourceAssignmentActive(t *testing.T) {
	now := time.Now()

	assert.True(t, (&model.ResourceAssignment{}).Active())
	assert.False(t, (&model.ResourceAssignment{ReturnedAt: &now}).Active())
}
