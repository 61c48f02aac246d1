package repository

import "sync"

// KeyLocks hands out one mutex per key. Get and Set do not take it; callers
// that read a key, change the value and write it back hold it for the whole
// sequence, as does anything that overwrites the key meanwhile.
type KeyLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func (k *KeyLocks) lockFor(key string) *sync.Mutex {
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.locks == nil {
		k.locks = make(map[string]*sync.Mutex)
	}
	l, ok := k.locks[key]
	if !ok {
		l = &sync.Mutex{}
		k.locks[key] = l
	}
	return l
}

// WithLock runs fn while holding the lock for key. It is not reentrant.
func (k *KeyLocks) WithLock(key string, fn func() error) error {
	l := k.lockFor(key)
	l.Lock()
	defer l.Unlock()
	return fn()
}
