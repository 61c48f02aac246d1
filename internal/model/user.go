package model

import (
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// User is an account. Role and Permissions are stored independently; see
// PermissionsForRole for the mapping applied when a role is assigned.
type User struct {
	ID          string      `json:"id"`
	Username    string      `json:"username"`
	Password    string      `json:"password"`
	Email       string      `json:"email"`
	Role        Role        `json:"role"`
	Permissions Permissions `json:"permissions"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// SetPassword stores password as a bcrypt hash when hash is set, otherwise as is.
func (u *User) SetPassword(password string, hash bool) error {
	if !hash {
		u.Password = password
		return nil
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashed)
	return nil
}

// CheckPassword compares against a bcrypt hash when one is stored and falls back
// to plain equality for passwords that came from the users sheet.
func (u *User) CheckPassword(password string) bool {
	if isBcryptHash(u.Password) {
		return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) == nil
	}
	return u.Password == password
}

func isBcryptHash(s string) bool {
	return len(s) == 60 && (strings.HasPrefix(s, "$2a$") || strings.HasPrefix(s, "$2b$") || strings.HasPrefix(s, "$2y$"))
}

// UserResponse is used for API responses (without the password)
type UserResponse struct {
	ID          string      `json:"id"`
	Username    string      `json:"username"`
	Email       string      `json:"email"`
	Role        Role        `json:"role"`
	Permissions Permissions `json:"permissions"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// ToResponse converts User to UserResponse
func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		Role:        u.Role,
		Permissions: u.Permissions,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

// DefaultMaster is seeded when no users exist.
func DefaultMaster(now time.Time) User {
	return User{
		ID:          "1",
		Username:    "admin",
		Password:    "admin123",
		Email:       "admin@inventory.com",
		Role:        RoleMaster,
		Permissions: PermissionsForRole(RoleMaster),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
