package service

import (
	"testing"
	"time"

	"go-inventory-sheets/internal/model"
	"go-inventory-sheets/internal/syncer"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardSummary(t *testing.T) {
	f := newFixture(t)
	master := actor("1", model.RoleMaster)
	inv := NewInventoryService(f.items, f.audit, nil)
	for _, req := range []AddItemRequest{
		{Rack: "A", Shelf: "1", ItemName: "Bolts", Quantity: 10},
		{Rack: "A", Shelf: "1", ItemName: "Nuts", Quantity: 5},
		{Rack: "LB", Shelf: "3", ItemName: "Tape", Quantity: 1},
	} {
		_, err := inv.AddItem(master, &req)
		require.NoError(t, err)
	}

	last := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	syncs := NewSyncService(
		&fakeEngine{name: "inventory", info: syncer.Info{LastSync: &last}},
		&fakeEngine{name: "users"},
		nil,
	)

	summary := NewDashboardService(f.items, syncs, "Warehouse").GetSummary()
	assert.Equal(t, "Warehouse", summary.AppName)
	assert.Equal(t, 3, summary.TotalItems)
	assert.Equal(t, 16, summary.TotalQuantity)
	assert.Len(t, summary.Layout, 8)
	assert.Len(t, summary.Locations, 7*4+3)
	assert.Equal(t, LocationSummary{Rack: "A", Shelf: "1", ItemCount: 2, Quantity: 15}, summary.Locations[0])
	assert.Equal(t, LocationSummary{Rack: "LB", Shelf: "3", ItemCount: 1, Quantity: 1}, summary.Locations[len(summary.Locations)-1])
	assert.Equal(t, &last, summary.LastItemsSync)
	assert.Nil(t, summary.LastUsersSync)
}
