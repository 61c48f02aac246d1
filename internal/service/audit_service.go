package service

import (
	"time"

	"go-inventory-sheets/internal/model"
	"go-inventory-sheets/internal/store"
)

// AuditMetadata is the optional detail attached to an audit entry.
type AuditMetadata struct {
	ShelfLocation string
	ItemName      string
	PreviousValue string
	NewValue      string
}

type AuditLogger interface {
	// Log appends an entry for actor. It never fails the calling operation.
	Log(actor model.User, action model.AuditAction, description string, meta *AuditMetadata)
	UpdateNotes(actor *model.User, id, notes string) (*model.AuditLog, error)
	List(filter store.AuditFilter) []model.AuditLog
}

type auditLogger struct {
	logs store.AuditLogStore
	now  func() time.Time
}

func NewAuditLogger(logs store.AuditLogStore) AuditLogger {
	return &auditLogger{logs: logs, now: time.Now}
}

func (a *auditLogger) Log(actor model.User, action model.AuditAction, description string, meta *AuditMetadata) {
	entry := model.AuditLog{
		UserID:      actor.ID,
		Username:    actor.Username,
		Action:      action,
		Description: description,
		Timestamp:   a.now().UTC(),
	}
	if meta != nil {
		entry.ShelfLocation = meta.ShelfLocation
		entry.ItemName = meta.ItemName
		entry.PreviousValue = meta.PreviousValue
		entry.NewValue = meta.NewValue
	}
	a.logs.Create(entry)
}

func (a *auditLogger) UpdateNotes(actor *model.User, id, notes string) (*model.AuditLog, error) {
	if actor == nil {
		return nil, ErrNotAuthenticated
	}
	entry, ok := a.logs.UpdateNotes(id, notes)
	if !ok {
		return nil, ErrLogNotFound
	}
	return entry, nil
}

func (a *auditLogger) List(filter store.AuditFilter) []model.AuditLog {
	return a.logs.GetFiltered(filter)
}
