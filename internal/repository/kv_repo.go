package repository

import (
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// KVEntry is one persisted key. Value holds the JSON encoding of whatever the
// store keeps under Key.
type KVEntry struct {
	Key       string `gorm:"primaryKey;size:128"`
	Value     string `gorm:"type:text;not null"`
	UpdatedAt time.Time
}

func (KVEntry) TableName() string {
	return "kv_entries"
}

// KVRepository is the persistent key-value store behind every domain store.
type KVRepository interface {
	// Get decodes the value for key into dest. It reports false when the key is absent.
	Get(key string, dest any) (bool, error)
	Set(key string, value any) error
	// WithLock serializes read-modify-write sequences on key across every
	// user of the repository.
	WithLock(key string, fn func() error) error
}

type kvRepo struct {
	KeyLocks
	db *gorm.DB
}

func NewKVRepo(db *gorm.DB) KVRepository {
	return &kvRepo{db: db}
}

// AutoMigrate creates the kv_entries table.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&KVEntry{})
}

func (r *kvRepo) Get(key string, dest any) (bool, error) {
	var entry KVEntry
	if err := r.db.First(&entry, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("repository: get %s: %w", key, err)
	}
	if err := json.Unmarshal([]byte(entry.Value), dest); err != nil {
		return false, fmt.Errorf("repository: decode %s: %w", key, err)
	}
	return true, nil
}

func (r *kvRepo) Set(key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("repository: encode %s: %w", key, err)
	}
	entry := KVEntry{Key: key, Value: string(data), UpdatedAt: time.Now().UTC()}
	err = r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
	if err != nil {
		return fmt.Errorf("repository: set %s: %w", key, err)
	}
	return nil
}
