package service

import (
	"testing"

	"go-inventory-sheets/internal/model"
	"go-inventory-sheets/internal/store"
	"go-inventory-sheets/internal/ws"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddItem(t *testing.T) {
	f := newFixture(t)
	svc := NewInventoryService(f.items, f.audit, f.hub)
	editor := actor("7", model.RoleEditor)

	item, err := svc.AddItem(editor, &AddItemRequest{Rack: "A", Shelf: "1", ItemName: "  Hex Bolts  ", Quantity: 12})
	require.NoError(t, err)
	assert.Equal(t, "Hex Bolts", item.ItemName)
	assert.Equal(t, "7", item.CreatedBy)
	assert.Equal(t, "7", item.LastModifiedBy)

	logs := f.audit.List(store.AuditFilter{})
	require.Len(t, logs, 1)
	assert.Equal(t, model.ActionAdd, logs[0].Action)
	assert.Equal(t, `Added item "Hex Bolts" to A-1`, logs[0].Description)
	assert.Equal(t, "A-1", logs[0].ShelfLocation)
	assert.Equal(t, "12", logs[0].NewValue)
	assert.Equal(t, "user-7", logs[0].Username)

	events := f.hub.Events()
	require.Len(t, events, 1)
	assert.Equal(t, ws.TypeStockUpdate, events[0].Type)
	assert.Equal(t, "item_added", events[0].Action)
}

func TestAddItem_Rejections(t *testing.T) {
	f := newFixture(t)
	svc := NewInventoryService(f.items, f.audit, f.hub)
	editor := actor("7", model.RoleEditor)

	_, err := svc.AddItem(actor("8", model.RoleViewer), &AddItemRequest{Rack: "A", Shelf: "1", ItemName: "x", Quantity: 1})
	assert.ErrorIs(t, err, ErrPermissionDenied)
	assert.Contains(t, err.Error(), "You do not have permission to add items")

	_, err = svc.AddItem(nil, &AddItemRequest{Rack: "A", Shelf: "1", ItemName: "x"})
	assert.ErrorIs(t, err, ErrNotAuthenticated)

	_, err = svc.AddItem(editor, &AddItemRequest{Rack: "Z", Shelf: "1", ItemName: "x"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.AddItem(editor, &AddItemRequest{Rack: "LB", Shelf: "4", ItemName: "x"})
	assert.ErrorIs(t, err, ErrInvalidLocation)

	_, err = svc.AddItem(editor, &AddItemRequest{Rack: "A", Shelf: "1", ItemName: "   "})
	assert.ErrorIs(t, err, ErrItemNameRequired)

	_, err = svc.AddItem(editor, &AddItemRequest{Rack: "A", Shelf: "1", ItemName: "x", Quantity: -1})
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	assert.Empty(t, svc.ListItems())
	assert.Empty(t, f.audit.List(store.AuditFilter{}))
	assert.Empty(t, f.hub.Events())
}

func TestUpdateQuantity(t *testing.T) {
	f := newFixture(t)
	svc := NewInventoryService(f.items, f.audit, f.hub)
	master := actor("1", model.RoleMaster)
	editor := actor("7", model.RoleEditor)

	item, err := svc.AddItem(master, &AddItemRequest{Rack: "B", Shelf: "2", ItemName: "Tape", Quantity: 3})
	require.NoError(t, err)

	updated, err := svc.UpdateQuantity(editor, item.ID, 9)
	require.NoError(t, err)
	assert.Equal(t, 9, updated.Quantity)
	assert.Equal(t, "7", updated.LastModifiedBy)
	assert.Equal(t, "1", updated.CreatedBy)

	logs := f.audit.List(store.AuditFilter{Query: "updated quantity"})
	require.Len(t, logs, 1)
	assert.Equal(t, `Updated quantity for "Tape" on B-2`, logs[0].Description)
	assert.Equal(t, "3", logs[0].PreviousValue)
	assert.Equal(t, "9", logs[0].NewValue)

	_, err = svc.UpdateQuantity(editor, "missing", 1)
	assert.ErrorIs(t, err, ErrItemNotFound)
	_, err = svc.UpdateQuantity(editor, item.ID, -2)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
	_, err = svc.UpdateQuantity(actor("9", model.RoleViewer), item.ID, 1)
	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestDeleteItem(t *testing.T) {
	f := newFixture(t)
	svc := NewInventoryService(f.items, f.audit, f.hub)
	admin := actor("2", model.RoleAdmin)

	item, err := svc.AddItem(admin, &AddItemRequest{Rack: "LB", Shelf: "3", ItemName: "Glue", Quantity: 5})
	require.NoError(t, err)

	err = svc.DeleteItem(actor("7", model.RoleEditor), item.ID)
	assert.ErrorIs(t, err, ErrPermissionDenied)
	assert.Contains(t, err.Error(), "You do not have permission to delete items")

	require.NoError(t, svc.DeleteItem(admin, item.ID))
	_, err = svc.GetItem(item.ID)
	assert.ErrorIs(t, err, ErrItemNotFound)

	logs := f.audit.List(store.AuditFilter{Query: "deleted"})
	require.Len(t, logs, 1)
	assert.Equal(t, `Deleted item "Glue" from LB-3`, logs[0].Description)
	assert.Equal(t, "5", logs[0].PreviousValue)

	assert.ErrorIs(t, svc.DeleteItem(admin, item.ID), ErrItemNotFound)
}

func TestShelfItems(t *testing.T) {
	f := newFixture(t)
	svc := NewInventoryService(f.items, f.audit, nil)
	master := actor("1", model.RoleMaster)

	_, err := svc.AddItem(master, &AddItemRequest{Rack: "C", Shelf: "4", ItemName: "Nails", Quantity: 1})
	require.NoError(t, err)

	items, err := svc.ShelfItems("C", "4")
	require.NoError(t, err)
	assert.Len(t, items, 1)

	_, err = svc.ShelfItems("LB", "4")
	assert.ErrorIs(t, err, ErrInvalidLocation)
	_, err = svc.ShelfItems("H", "1")
	assert.ErrorIs(t, err, ErrInvalidLocation)
}

func TestSearch(t *testing.T) {
	f := newFixture(t)
	svc := NewInventoryService(f.items, f.audit, nil)
	master := actor("1", model.RoleMaster)
	for _, name := range []string{"Hex Bolts", "bolt cutter", "Tape"} {
		_, err := svc.AddItem(master, &AddItemRequest{Rack: "A", Shelf: "1", ItemName: name})
		require.NoError(t, err)
	}

	results := svc.Search("  BOLT ")
	require.Len(t, results, 2)
	assert.Equal(t, []Segment{{Text: "Hex "}, {Text: "Bolt", Match: true}, {Text: "s"}}, results[0].Highlights)
	assert.Equal(t, []Segment{{Text: "bolt", Match: true}, {Text: " cutter"}}, results[1].Highlights)

	assert.Empty(t, svc.Search(""))
	assert.Empty(t, svc.Search("   "))
	assert.Empty(t, svc.Search("glue"))
}

func TestHighlight(t *testing.T) {
	assert.Equal(t, []Segment{{Text: "AA", Match: true}, {Text: "aa", Match: true}, {Text: "b"}}, Highlight("AAaab", "aa"))
	assert.Equal(t, []Segment{{Text: "Tape"}}, Highlight("Tape", "x"))
	assert.Equal(t, []Segment{{Text: "Tape"}}, Highlight("Tape", ""))
	assert.Equal(t, []Segment{{Text: "a"}, {Text: "(b)", Match: true}}, Highlight("a(b)", "(B)"))
}
