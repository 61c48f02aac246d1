package store

import (
	"go-inventory-sheets/internal/repository"

	"go.uber.org/zap"
)

// load reads key into dest and reports whether a value was found. Read errors
// are logged and treated as a missing value.
func load(kv repository.KVRepository, log *zap.Logger, key string, dest any) bool {
	ok, err := kv.Get(key, dest)
	if err != nil {
		log.Error("failed to read from store", zap.String("key", key), zap.Error(err))
		return false
	}
	return ok
}

// save writes value under key; failures are logged, not returned.
func save(kv repository.KVRepository, log *zap.Logger, key string, value any) {
	if err := kv.Set(key, value); err != nil {
		log.Error("failed to save to store", zap.String("key", key), zap.Error(err))
	}
}

// locked runs fn holding the key locks for keys, taken in the given order.
// Every read-modify-write of a key that a sync engine also writes goes
// through here.
func locked(kv repository.KVRepository, keys []string, fn func()) {
	if len(keys) == 0 {
		fn()
		return
	}
	_ = kv.WithLock(keys[0], func() error {
		locked(kv, keys[1:], fn)
		return nil
	})
}
