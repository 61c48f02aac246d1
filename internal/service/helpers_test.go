package service

import (
	"sync"
	"testing"

	"go-inventory-sheets/internal/model"
	"go-inventory-sheets/internal/repository"
	"go-inventory-sheets/internal/store"
	"go-inventory-sheets/internal/ws"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestKV(t *testing.T) repository.KVRepository {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, repository.AutoMigrate(db))
	return repository.NewKVRepo(db)
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []ws.Event
}

func (p *recordingPublisher) Publish(ev ws.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
}

func (p *recordingPublisher) Events() []ws.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]ws.Event(nil), p.events...)
}

func actor(id string, role model.Role) *model.User {
	return &model.User{ID: id, Username: "user-" + id, Role: role, Permissions: model.PermissionsForRole(role)}
}

type fixture struct {
	kv       repository.KVRepository
	items    store.InventoryStore
	users    store.UserStore
	sessions store.SessionStore
	logs     store.AuditLogStore
	audit    AuditLogger
	hub      *recordingPublisher
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	kv := setupTestKV(t)
	log := zap.NewNop()
	users := store.NewUserStore(kv, false, log)
	logs := store.NewAuditLogStore(kv, log)
	return &fixture{
		kv:       kv,
		items:    store.NewInventoryStore(kv, false, log),
		users:    users,
		sessions: store.NewSessionStore(kv, users, log),
		logs:     logs,
		audit:    NewAuditLogger(logs),
		hub:      &recordingPublisher{},
	}
}

func intPtr(n int) *int       { return &n }
func strPtr(s string) *string { return &s }
