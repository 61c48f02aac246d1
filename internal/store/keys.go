package store

import "github.com/google/uuid"

// Persistent keys. The names match the layout the data was first stored under.
const (
	KeyUsers         = "inventory_users"
	KeyUsersCache    = "inventory_users_cache"
	KeyItems         = "inventory_items"
	KeyItemsCache    = "inventory_items_cache"
	KeyAuditLogs     = "audit_logs"
	KeySessions      = "sessions"
	KeyLastItemsSync = "last_sheets_sync"
	KeyLastUsersSync = "last_users_sheets_sync"
)

func newID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
