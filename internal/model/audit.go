package model

import "time"

type AuditAction string

const (
	ActionAdd        AuditAction = "add"
	ActionEdit       AuditAction = "edit"
	ActionDelete     AuditAction = "delete"
	ActionImport     AuditAction = "import"
	ActionUserCreate AuditAction = "user_create"
	ActionUserEdit   AuditAction = "user_edit"
	ActionUserDelete AuditAction = "user_delete"
)

// AuditLog records one action. Username is copied at write time and Notes is
// the only field that changes after creation.
type AuditLog struct {
	ID            string      `json:"id"`
	UserID        string      `json:"userId"`
	Username      string      `json:"username"`
	Action        AuditAction `json:"action"`
	Description   string      `json:"description"`
	ShelfLocation string      `json:"shelfLocation,omitempty"`
	ItemName      string      `json:"itemName,omitempty"`
	PreviousValue string      `json:"previousValue,omitempty"`
	NewValue      string      `json:"newValue,omitempty"`
	Notes         string      `json:"notes,omitempty"`
	Timestamp     time.Time   `json:"timestamp"`
	CreatedAt     time.Time   `json:"createdAt"`
}
