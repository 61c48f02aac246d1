package store

import (
	"testing"
	"time"

	"go-inventory-sheets/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func day(d, h int) time.Time {
	return time.Date(2024, 6, d, h, 0, 0, 0, time.UTC)
}

func seedAudit(s AuditLogStore) {
	s.Create(model.AuditLog{Username: "admin", Action: model.ActionAdd, Description: `Added item "Bolts" to A-1`, ItemName: "Bolts", Timestamp: day(1, 8)})
	s.Create(model.AuditLog{Username: "kim", Action: model.ActionEdit, Description: `Updated quantity for "Tape" on B-2`, ItemName: "Tape", Timestamp: day(3, 23)})
	s.Create(model.AuditLog{Username: "admin", Action: model.ActionDelete, Description: `Deleted item "Glue" from C-3`, ItemName: "Glue", Timestamp: day(5, 0)})
}

func TestAuditLogStore_FilteredNewestFirst(t *testing.T) {
	s := NewAuditLogStore(newTestKV(t), zap.NewNop())
	seedAudit(s)

	logs := s.GetFiltered(AuditFilter{})
	require.Len(t, logs, 3)
	assert.Equal(t, "Glue", logs[0].ItemName)
	assert.Equal(t, "Bolts", logs[2].ItemName)
}

func TestAuditLogStore_DateBounds(t *testing.T) {
	s := NewAuditLogStore(newTestKV(t), zap.NewNop())
	seedAudit(s)

	// end is inclusive through the end of the day
	logs := s.GetFiltered(AuditFilter{Start: day(3, 15), End: day(3, 0)})
	require.Len(t, logs, 1)
	assert.Equal(t, "Tape", logs[0].ItemName)

	logs = s.GetFiltered(AuditFilter{Start: day(2, 0)})
	assert.Len(t, logs, 2)

	logs = s.GetFiltered(AuditFilter{End: day(4, 12)})
	assert.Len(t, logs, 2)
}

func TestAuditLogStore_Query(t *testing.T) {
	s := NewAuditLogStore(newTestKV(t), zap.NewNop())
	seedAudit(s)

	assert.Len(t, s.GetFiltered(AuditFilter{Query: "ADMIN"}), 2)
	assert.Len(t, s.GetFiltered(AuditFilter{Query: "tape"}), 1)

	logs := s.GetAll()
	_, ok := s.UpdateNotes(logs[0].ID, "counted twice")
	require.True(t, ok)
	found := s.GetFiltered(AuditFilter{Query: "Counted"})
	require.Len(t, found, 1)
	assert.Equal(t, "counted twice", found[0].Notes)
}

func TestAuditLogStore_UpdateNotesOnly(t *testing.T) {
	s := NewAuditLogStore(newTestKV(t), zap.NewNop())
	entry := s.Create(model.AuditLog{Username: "admin", Description: "x", Timestamp: day(1, 1)})
	assert.NotEmpty(t, entry.ID)
	assert.False(t, entry.CreatedAt.IsZero())

	updated, ok := s.UpdateNotes(entry.ID, "note")
	require.True(t, ok)
	assert.Equal(t, "note", updated.Notes)
	assert.Equal(t, entry.Description, updated.Description)
	assert.True(t, entry.Timestamp.Equal(updated.Timestamp))

	_, ok = s.UpdateNotes("missing", "note")
	assert.False(t, ok)
}
