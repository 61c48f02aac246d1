package service

import (
	"fmt"

	"go-inventory-sheets/internal/model"
	"go-inventory-sheets/internal/store"
	"go-inventory-sheets/internal/ws"
)

type UserService interface {
	ListUsers(actor *model.User) ([]model.UserResponse, error)
	GetUser(actor *model.User, id string) (*model.UserResponse, error)
	CreateUser(actor *model.User, req *CreateUserRequest) (*model.UserResponse, error)
	UpdateUser(actor *model.User, id string, req *UpdateUserRequest) (*model.UserResponse, error)
	DeleteUser(actor *model.User, id string) error
}

type CreateUserRequest struct {
	Username    string             `json:"username" validate:"required"`
	Password    string             `json:"password" validate:"required"`
	Email       string             `json:"email" validate:"required,email"`
	Role        string             `json:"role" validate:"required,role"`
	Permissions *model.Permissions `json:"permissions"`
}

// UpdateUserRequest changes only the fields that are set. An empty password
// keeps the current one.
type UpdateUserRequest struct {
	Username    *string            `json:"username,omitempty" validate:"omitempty,min=1"`
	Password    *string            `json:"password,omitempty"`
	Email       *string            `json:"email,omitempty" validate:"omitempty,email"`
	Role        *string            `json:"role,omitempty" validate:"omitempty,role"`
	Permissions *model.Permissions `json:"permissions,omitempty"`
}

const manageUsersDenied = "You do not have permission to manage users"

type userService struct {
	users         store.UserStore
	audit         AuditLogger
	wsHub         Publisher
	hashPasswords bool
}

func NewUserService(users store.UserStore, audit AuditLogger, hub Publisher, hashPasswords bool) UserService {
	return &userService{users: users, audit: audit, wsHub: publisherOrNop(hub), hashPasswords: hashPasswords}
}

func (s *userService) ListUsers(actor *model.User) ([]model.UserResponse, error) {
	if err := requirePermission(actor, model.PermManageUsers, manageUsersDenied); err != nil {
		return nil, err
	}
	users := s.users.GetAll()
	out := make([]model.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, u.ToResponse())
	}
	return out, nil
}

func (s *userService) GetUser(actor *model.User, id string) (*model.UserResponse, error) {
	if err := requirePermission(actor, model.PermManageUsers, manageUsersDenied); err != nil {
		return nil, err
	}
	u, ok := s.users.GetByID(id)
	if !ok {
		return nil, ErrUserNotFound
	}
	resp := u.ToResponse()
	return &resp, nil
}

func (s *userService) CreateUser(actor *model.User, req *CreateUserRequest) (*model.UserResponse, error) {
	// 1. Permission + validation
	if err := requirePermission(actor, model.PermManageUsers, manageUsersDenied); err != nil {
		return nil, err
	}
	if err := validate(req); err != nil {
		return nil, err
	}

	// 2. Unique username
	if _, exists := s.users.GetByUsername(req.Username); exists {
		return nil, ErrUsernameTaken
	}

	// 3. Permissions default to the role's set
	role := model.Role(req.Role)
	perms := model.PermissionsForRole(role)
	if req.Permissions != nil {
		perms = *req.Permissions
	}

	user := model.User{
		Username:    req.Username,
		Email:       req.Email,
		Role:        role,
		Permissions: perms,
	}
	if err := user.SetPassword(req.Password, s.hashPasswords); err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	// 4. Save, audit, notify
	created := s.users.Create(user)
	s.audit.Log(*actor, model.ActionUserCreate, "Created user "+created.Username, nil)
	s.publish("user_created", created)

	resp := created.ToResponse()
	return &resp, nil
}

func (s *userService) UpdateUser(actor *model.User, id string, req *UpdateUserRequest) (*model.UserResponse, error) {
	if err := requirePermission(actor, model.PermManageUsers, manageUsersDenied); err != nil {
		return nil, err
	}
	if err := validate(req); err != nil {
		return nil, err
	}

	current, ok := s.users.GetByID(id)
	if !ok {
		return nil, ErrUserNotFound
	}

	upd := store.UserUpdate{Email: req.Email, Permissions: req.Permissions}

	if req.Username != nil && *req.Username != current.Username {
		if other, exists := s.users.GetByUsername(*req.Username); exists && other.ID != id {
			return nil, ErrUsernameTaken
		}
		upd.Username = req.Username
	}

	if req.Role != nil {
		role := model.Role(*req.Role)
		upd.Role = &role
		// a role change without explicit permissions takes the role's set
		if role != current.Role && req.Permissions == nil {
			perms := model.PermissionsForRole(role)
			upd.Permissions = &perms
		}
	}

	if req.Password != nil && *req.Password != "" {
		var tmp model.User
		if err := tmp.SetPassword(*req.Password, s.hashPasswords); err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		upd.Password = &tmp.Password
	}

	updated, ok := s.users.Update(id, upd)
	if !ok {
		return nil, ErrUserNotFound
	}

	s.audit.Log(*actor, model.ActionUserEdit, "Updated user "+updated.Username, nil)
	s.publish("user_updated", *updated)

	resp := updated.ToResponse()
	return &resp, nil
}

func (s *userService) DeleteUser(actor *model.User, id string) error {
	if err := requirePermission(actor, model.PermManageUsers, manageUsersDenied); err != nil {
		return err
	}
	if id == actor.ID {
		return ErrCannotDeleteSelf
	}

	target, ok := s.users.GetByID(id)
	if !ok {
		return ErrUserNotFound
	}
	if target.Role == model.RoleMaster {
		return ErrCannotDeleteMaster
	}
	if !s.users.Delete(id) {
		return ErrUserNotFound
	}

	s.audit.Log(*actor, model.ActionUserDelete, "Deleted user "+target.Username, nil)
	s.publish("user_deleted", *target)
	return nil
}

func (s *userService) publish(action string, u model.User) {
	s.wsHub.Publish(ws.Event{Type: ws.TypeUserUpdate, Action: action, Payload: u.ToResponse()})
}
