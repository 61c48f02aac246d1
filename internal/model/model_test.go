package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRack(t *testing.T) {
	r, ok := ParseRack("LB")
	assert.True(t, ok)
	assert.Equal(t, RackLB, r)

	_, ok = ParseRack("Z")
	assert.False(t, ok)
	_, ok = ParseRack("a")
	assert.False(t, ok)
}

func TestParseShelf(t *testing.T) {
	tests := []struct {
		rack Rack
		raw  string
		ok   bool
	}{
		{RackA, "1", true},
		{RackA, "4", true},
		{RackA, "5", false},
		{RackLB, "3", true},
		{RackLB, "4", false},
		{Rack("Z"), "1", false},
		{RackG, "0", false},
	}
	for _, tt := range tests {
		_, ok := ParseShelf(tt.rack, tt.raw)
		assert.Equal(t, tt.ok, ok, "%s-%s", tt.rack, tt.raw)
	}
}

func TestLayout(t *testing.T) {
	layout := Layout()
	require.Len(t, layout, 8)
	assert.Equal(t, RackA, layout[0].Rack)
	assert.Len(t, layout[0].Shelves, 4)
	assert.Equal(t, RackLB, layout[7].Rack)
	assert.Len(t, layout[7].Shelves, 3)

	// callers must not be able to mutate the shared shelf lists
	layout[0].Shelves[0] = "9"
	assert.Equal(t, Shelf("1"), ShelvesFor(RackA)[0])
}

func TestPermissionsForRole(t *testing.T) {
	assert.Equal(t, Permissions{CanView: true, CanEdit: true, CanDelete: true, CanManageUsers: true}, PermissionsForRole(RoleMaster))
	assert.Equal(t, Permissions{CanView: true, CanEdit: true, CanDelete: true}, PermissionsForRole(RoleAdmin))
	assert.Equal(t, Permissions{CanView: true, CanEdit: true}, PermissionsForRole(RoleEditor))
	assert.Equal(t, Permissions{CanView: true}, PermissionsForRole(RoleViewer))
	assert.Equal(t, Permissions{}, PermissionsForRole(Role("guest")))
}

func TestPermissionsHas(t *testing.T) {
	p := PermissionsForRole(RoleEditor)
	assert.True(t, p.Has(PermView))
	assert.True(t, p.Has(PermEdit))
	assert.False(t, p.Has(PermDelete))
	assert.False(t, p.Has(PermManageUsers))
	assert.False(t, p.Has(Permission("other")))
}

func TestUserPassword(t *testing.T) {
	u := User{}
	require.NoError(t, u.SetPassword("secret", false))
	assert.Equal(t, "secret", u.Password)
	assert.True(t, u.CheckPassword("secret"))
	assert.False(t, u.CheckPassword("other"))

	require.NoError(t, u.SetPassword("secret", true))
	assert.NotEqual(t, "secret", u.Password)
	assert.True(t, u.CheckPassword("secret"))
	assert.False(t, u.CheckPassword("other"))
}

func TestDefaultMaster(t *testing.T) {
	now := time.Now()
	u := DefaultMaster(now)
	assert.Equal(t, "1", u.ID)
	assert.Equal(t, "admin", u.Username)
	assert.Equal(t, RoleMaster, u.Role)
	assert.True(t, u.Permissions.CanManageUsers)
	assert.Equal(t, "admin", u.ToResponse().Username)
}

func TestLocation(t *testing.T) {
	item := InventoryItem{Rack: RackLB, Shelf: "2"}
	assert.Equal(t, "LB-2", item.Location())
}
