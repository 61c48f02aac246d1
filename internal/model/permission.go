package model

// Permission names one of the four independent capability flags.
type Permission string

const (
	PermView        Permission = "view"
	PermEdit        Permission = "edit"
	PermDelete      Permission = "delete"
	PermManageUsers Permission = "manage_users"
)

type Permissions struct {
	CanView        bool `json:"canView"`
	CanEdit        bool `json:"canEdit"`
	CanDelete      bool `json:"canDelete"`
	CanManageUsers bool `json:"canManageUsers"`
}

// Has reports whether the flag for p is set.
func (p Permissions) Has(perm Permission) bool {
	switch perm {
	case PermView:
		return p.CanView
	case PermEdit:
		return p.CanEdit
	case PermDelete:
		return p.CanDelete
	case PermManageUsers:
		return p.CanManageUsers
	default:
		return false
	}
}
