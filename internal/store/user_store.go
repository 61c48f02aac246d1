package store

import (
	"sync"
	"time"

	"go-inventory-sheets/internal/model"
	"go-inventory-sheets/internal/repository"

	"go.uber.org/zap"
)

// UserUpdate holds the fields to change; nil fields are left as they are.
type UserUpdate struct {
	Username    *string
	Password    *string
	Email       *string
	Role        *model.Role
	Permissions *model.Permissions
}

type UserStore interface {
	GetAll() []model.User
	GetByID(id string) (*model.User, bool)
	GetByUsername(username string) (*model.User, bool)
	Create(user model.User) model.User
	Update(id string, upd UserUpdate) (*model.User, bool)
	Delete(id string) bool
	Authenticate(username, password string) (*model.User, bool)
}

// userStore reads the users cache when the users sheet is configured and the
// cache holds anything; otherwise the local list, seeded with the default
// master account. Writes go to the cache key when configured.
type userStore struct {
	kv         repository.KVRepository
	configured bool
	log        *zap.Logger
	now        func() time.Time
	mu         sync.Mutex
}

func NewUserStore(kv repository.KVRepository, usersSheetConfigured bool, log *zap.Logger) UserStore {
	return &userStore{
		kv:         kv,
		configured: usersSheetConfigured,
		log:        log.Named("store.users"),
		now:        time.Now,
	}
}

func (s *userStore) live() []model.User {
	var users []model.User
	load(s.kv, s.log, KeyUsers, &users)
	if len(users) == 0 {
		users = []model.User{model.DefaultMaster(s.now().UTC())}
		save(s.kv, s.log, KeyUsers, users)
	}
	return users
}

func (s *userStore) all() []model.User {
	if s.configured {
		var cached []model.User
		if load(s.kv, s.log, KeyUsersCache, &cached) && len(cached) > 0 {
			return cached
		}
	}
	return s.live()
}

// writeKey is where writes land; it is also the key the read side prefers.
func (s *userStore) writeKey() string {
	if s.configured {
		return KeyUsersCache
	}
	return KeyUsers
}

func (s *userStore) persist(users []model.User) {
	save(s.kv, s.log, s.writeKey(), users)
}

func (s *userStore) GetAll() []model.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.all()
}

func (s *userStore) GetByID(id string) (*model.User, bool) {
	for _, u := range s.GetAll() {
		if u.ID == id {
			return &u, true
		}
	}
	return nil, false
}

// GetByUsername matches case-sensitively.
func (s *userStore) GetByUsername(username string) (*model.User, bool) {
	for _, u := range s.GetAll() {
		if u.Username == username {
			return &u, true
		}
	}
	return nil, false
}

// Create assigns a new id and timestamps.
func (s *userStore) Create(user model.User) model.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now().UTC()
	user.ID = newID()
	user.CreatedAt = now
	user.UpdatedAt = now

	locked(s.kv, []string{s.writeKey()}, func() {
		s.persist(append(s.all(), user))
	})
	return user
}

func (s *userStore) Update(id string, upd UserUpdate) (*model.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var updated *model.User
	locked(s.kv, []string{s.writeKey()}, func() {
		users := s.all()
		for i := range users {
			if users[i].ID != id {
				continue
			}
			u := &users[i]
			if upd.Username != nil {
				u.Username = *upd.Username
			}
			if upd.Password != nil {
				u.Password = *upd.Password
			}
			if upd.Email != nil {
				u.Email = *upd.Email
			}
			if upd.Role != nil {
				u.Role = *upd.Role
			}
			if upd.Permissions != nil {
				u.Permissions = *upd.Permissions
			}
			u.UpdatedAt = s.now().UTC()
			s.persist(users)
			copied := *u
			updated = &copied
			return
		}
	})
	return updated, updated != nil
}

func (s *userStore) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := false
	locked(s.kv, []string{s.writeKey()}, func() {
		users := s.all()
		filtered := make([]model.User, 0, len(users))
		for _, u := range users {
			if u.ID != id {
				filtered = append(filtered, u)
			}
		}
		if len(filtered) == len(users) {
			return
		}
		s.persist(filtered)
		removed = true
	})
	return removed
}

func (s *userStore) Authenticate(username, password string) (*model.User, bool) {
	u, ok := s.GetByUsername(username)
	if !ok || !u.CheckPassword(password) {
		return nil, false
	}
	return u, true
}
