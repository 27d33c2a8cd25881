package service

import (
	"testing"

	"github.com/rookgm/cargolabel/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestCanIssueLabel(t *testing.T) {
	assert.True(t, CanIssueLabel(models.Order{Status: models.OrderStatusNew}))
	assert.True(t, CanIssueLabel(models.Order{Status: models.OrderStatusCanceled}))
	assert.False(t, CanIssueLabel(models.Order{Status: models.OrderStatusReady, TrackingNumber: "T1"}))
}

func TestCanCancelLabel(t *testing.T) {
	tests := []struct {
		name       string
		order      models.Order
		wantBulk   bool
		wantSingle bool
	}{
		{
			name:       "printed",
			order:      models.Order{Status: models.OrderStatusPrinted, TrackingNumber: "T1"},
			wantBulk:   true,
			wantSingle: true,
		},
		{
			name:       "ready",
			order:      models.Order{Status: models.OrderStatusReady, TrackingNumber: "T1"},
			wantBulk:   false,
			wantSingle: true,
		},
		{
			name:  "printed_without_tracking",
			order: models.Order{Status: models.OrderStatusPrinted},
		},
		{
			name:  "shipped",
			order: models.Order{Status: models.OrderStatusShipped, TrackingNumber: "T1"},
		},
		{
			name:  "new",
			order: models.Order{Status: models.OrderStatusNew},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantBulk, CanCancelLabel(tt.order, CancelScopeBulk))
			assert.Equal(t, tt.wantSingle, CanCancelLabel(tt.order, CancelScopeSingle))
		})
	}
}

func TestPartition(t *testing.T) {
	orders := []models.Order{
		{ID: "A", TrackingNumber: "T1"},
		{ID: "B"},
		{ID: "C"},
	}

	// one requested id does not exist
	eligible, skipped := partition(4, orders, CanIssueLabel)
	assert.Len(t, eligible, 2)
	assert.Equal(t, "B", eligible[0].ID)
	assert.Equal(t, "C", eligible[1].ID)
	assert.Equal(t, 2, skipped)
}

func TestUniqueIDs(t *testing.T) {
	assert.Equal(t, []string{"A", "B"}, uniqueIDs([]string{"A", "", "B", "A"}))
	assert.Empty(t, uniqueIDs(nil))
}
