package model

import "slices"

// Role is the coarse account level shown in user management.
type Role string

const (
	RoleMaster Role = "master"
	RoleAdmin  Role = "admin"
	RoleEditor Role = "editor"
	RoleViewer Role = "viewer"
)

var Roles = []Role{RoleMaster, RoleAdmin, RoleEditor, RoleViewer}

// ParseRole validates raw against the known roles.
func ParseRole(raw string) (Role, bool) {
	r := Role(raw)
	if slices.Contains(Roles, r) {
		return r, true
	}
	return "", false
}

// PermissionsForRole is the canonical permission set for a role.
// Unknown roles get no permissions.
func PermissionsForRole(role Role) Permissions {
	switch role {
	case RoleMaster:
		return Permissions{CanView: true, CanEdit: true, CanDelete: true, CanManageUsers: true}
	case RoleAdmin:
		return Permissions{CanView: true, CanEdit: true, CanDelete: true}
	case RoleEditor:
		return Permissions{CanView: true, CanEdit: true}
	case RoleViewer:
		return Permissions{CanView: true}
	default:
		return Permissions{}
	}
}
