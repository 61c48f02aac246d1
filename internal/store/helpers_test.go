package store

import (
	"errors"
	"testing"

	"go-inventory-sheets/internal/repository"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestKV(t *testing.T) repository.KVRepository {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, repository.AutoMigrate(db))
	return repository.NewKVRepo(db)
}

// brokenKV fails every call.
type brokenKV struct{}

var errBroken = errors.New("storage unavailable")

func (brokenKV) Get(string, any) (bool, error) { return false, errBroken }
func (brokenKV) Set(string, any) error         { return errBroken }
func (brokenKV) WithLock(_ string, fn func() error) error {
	return fn()
}
