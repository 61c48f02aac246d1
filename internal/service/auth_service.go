package service

import (
	"time"

	"go-inventory-sheets/internal/metrics"
	"go-inventory-sheets/internal/model"
	"go-inventory-sheets/internal/store"

	"github.com/google/uuid"
)

type AuthService interface {
	Login(username, password string) (*LoginResponse, error)
	Logout(sessionID string)
	CurrentUser(sessionID string) (*model.User, error)
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token     string             `json:"token"`
	ExpiresAt time.Time          `json:"expiresAt"`
	User      model.UserResponse `json:"user"`
}

// TokenIssuer signs session tokens.
type TokenIssuer interface {
	GenerateToken(sessionID, userID, username, role string) (string, time.Time, error)
}

type authService struct {
	users    store.UserStore
	sessions store.SessionStore
	tokens   TokenIssuer
}

func NewAuthService(users store.UserStore, sessions store.SessionStore, tokens TokenIssuer) AuthService {
	return &authService{users: users, sessions: sessions, tokens: tokens}
}

func (s *authService) Login(username, password string) (*LoginResponse, error) {
	user, ok := s.users.Authenticate(username, password)
	if !ok {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return nil, ErrInvalidCredentials
	}

	sessionID := uuid.NewString()
	token, expiresAt, err := s.tokens.GenerateToken(sessionID, user.ID, user.Username, string(user.Role))
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return nil, err
	}
	s.sessions.SetCurrentUser(sessionID, *user)

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return &LoginResponse{Token: token, ExpiresAt: expiresAt, User: user.ToResponse()}, nil
}

func (s *authService) Logout(sessionID string) {
	s.sessions.ClearCurrentUser(sessionID)
}

// CurrentUser resolves the session's user; deleted users end the session.
func (s *authService) CurrentUser(sessionID string) (*model.User, error) {
	user, ok := s.sessions.GetCurrentUser(sessionID)
	if !ok {
		return nil, ErrNotAuthenticated
	}
	return user, nil
}
