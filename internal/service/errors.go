package service

import (
	"errors"
	"fmt"
	"strings"

	"go-inventory-sheets/internal/model"
	"go-inventory-sheets/pkg/validator"
)

var (
	ErrPermissionDenied   = errors.New("permission denied")
	ErrNotAuthenticated   = errors.New("not authenticated")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrValidation         = errors.New("validation failed")

	ErrItemNotFound = errors.New("item not found")
	ErrUserNotFound = errors.New("user not found")
	ErrLogNotFound  = errors.New("audit log not found")

	ErrInvalidLocation    = errors.New("invalid shelf location")
	ErrInvalidQuantity    = errors.New("Please enter a valid quantity")
	ErrItemNameRequired   = errors.New("item name is required")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrCannotDeleteSelf   = errors.New("You cannot delete your own account")
	ErrCannotDeleteMaster = errors.New("master accounts cannot be deleted")
	ErrUnknownSyncDomain  = errors.New("unknown sync domain")
)

// requirePermission fails with ErrPermissionDenied carrying message when actor lacks perm.
func requirePermission(actor *model.User, perm model.Permission, message string) error {
	if actor == nil {
		return ErrNotAuthenticated
	}
	if !actor.Permissions.Has(perm) {
		return fmt.Errorf("%w: %s", ErrPermissionDenied, message)
	}
	return nil
}

func validate(req any) error {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return fmt.Errorf("%w: Field '%s' failed on tag '%s'", ErrValidation, firstErr.FailedField, firstErr.Tag)
	}
	return nil
}

// ImportError lists every row problem found in an import file. Nothing is
// imported when it is returned.
type ImportError struct {
	Errors []string
}

func (e *ImportError) Error() string {
	return "Import failed with errors:\n" + strings.Join(e.Errors, "\n")
}

func (e *ImportError) Unwrap() error {
	return ErrValidation
}
