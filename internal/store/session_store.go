package store

import (
	"sync"
	"time"

	"go-inventory-sheets/internal/model"
	"go-inventory-sheets/internal/repository"

	"go.uber.org/zap"
)

type Session struct {
	UserID    string    `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}

// SessionStore maps session ids to user ids. Users are resolved on every
// lookup, so a deleted user ends the session.
type SessionStore interface {
	SetCurrentUser(sessionID string, user model.User)
	GetCurrentUser(sessionID string) (*model.User, bool)
	ClearCurrentUser(sessionID string)
}

type sessionStore struct {
	kv    repository.KVRepository
	users UserStore
	log   *zap.Logger
	mu    sync.Mutex
}

func NewSessionStore(kv repository.KVRepository, users UserStore, log *zap.Logger) SessionStore {
	return &sessionStore{kv: kv, users: users, log: log.Named("store.sessions")}
}

func (s *sessionStore) sessions() map[string]Session {
	sessions := map[string]Session{}
	load(s.kv, s.log, KeySessions, &sessions)
	if sessions == nil {
		sessions = map[string]Session{}
	}
	return sessions
}

func (s *sessionStore) SetCurrentUser(sessionID string, user model.User) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sessions := s.sessions()
	sessions[sessionID] = Session{UserID: user.ID, CreatedAt: time.Now().UTC()}
	save(s.kv, s.log, KeySessions, sessions)
}

func (s *sessionStore) GetCurrentUser(sessionID string) (*model.User, bool) {
	s.mu.Lock()
	sess, ok := s.sessions()[sessionID]
	s.mu.Unlock()
	if !ok {
		return nil, false
	}
	return s.users.GetByID(sess.UserID)
}

func (s *sessionStore) ClearCurrentUser(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sessions := s.sessions()
	if _, ok := sessions[sessionID]; !ok {
		return
	}
	delete(sessions, sessionID)
	save(s.kv, s.log, KeySessions, sessions)
}
