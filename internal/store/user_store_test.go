package store

import (
	"testing"

	"go-inventory-sheets/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestUserStore_SeedsMaster(t *testing.T) {
	kv := newTestKV(t)
	s := NewUserStore(kv, false, zap.NewNop())

	users := s.GetAll()
	require.Len(t, users, 1)
	assert.Equal(t, "1", users[0].ID)
	assert.Equal(t, "admin", users[0].Username)
	assert.Equal(t, model.RoleMaster, users[0].Role)

	var live []model.User
	ok, err := kv.Get(KeyUsers, &live)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Len(t, live, 1)
}

func TestUserStore_CacheSelection(t *testing.T) {
	kv := newTestKV(t)
	s := NewUserStore(kv, true, zap.NewNop())

	// empty cache falls back to the seeded local list
	users := s.GetAll()
	require.Len(t, users, 1)
	assert.Equal(t, "admin", users[0].Username)

	require.NoError(t, kv.Set(KeyUsersCache, []model.User{
		{ID: "s1", Username: "sheet-user", Password: "pw", Role: model.RoleViewer},
	}))
	users = s.GetAll()
	require.Len(t, users, 1)
	assert.Equal(t, "sheet-user", users[0].Username)

	_, ok := s.GetByUsername("admin")
	assert.False(t, ok)
}

func TestUserStore_WritesFollowConfiguration(t *testing.T) {
	t.Run("configured writes cache", func(t *testing.T) {
		kv := newTestKV(t)
		s := NewUserStore(kv, true, zap.NewNop())
		created := s.Create(model.User{Username: "kim", Role: model.RoleEditor})

		var cache, live []model.User
		_, err := kv.Get(KeyUsersCache, &cache)
		require.NoError(t, err)
		_, err = kv.Get(KeyUsers, &live)
		require.NoError(t, err)

		assert.Len(t, cache, 2)
		assert.Equal(t, created.ID, cache[1].ID)
		assert.Len(t, live, 1, "local list only holds the seed")
	})

	t.Run("unconfigured writes live", func(t *testing.T) {
		kv := newTestKV(t)
		s := NewUserStore(kv, false, zap.NewNop())
		s.Create(model.User{Username: "kim"})

		var cache, live []model.User
		ok, err := kv.Get(KeyUsersCache, &cache)
		require.NoError(t, err)
		assert.False(t, ok)
		_, err = kv.Get(KeyUsers, &live)
		require.NoError(t, err)
		assert.Len(t, live, 2)
	})
}

func TestUserStore_CreateUpdateDelete(t *testing.T) {
	s := NewUserStore(newTestKV(t), false, zap.NewNop())

	created := s.Create(model.User{Username: "kim", Password: "pw", Role: model.RoleViewer})
	assert.NotEmpty(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)

	email := "kim@example.com"
	updated, ok := s.Update(created.ID, UserUpdate{Email: &email})
	require.True(t, ok)
	assert.Equal(t, email, updated.Email)
	assert.Equal(t, "kim", updated.Username)
	assert.False(t, updated.UpdatedAt.Before(created.UpdatedAt))

	_, ok = s.Update("missing", UserUpdate{Email: &email})
	assert.False(t, ok)

	assert.True(t, s.Delete(created.ID))
	assert.False(t, s.Delete(created.ID))
	_, ok = s.GetByID(created.ID)
	assert.False(t, ok)
}

func TestUserStore_Authenticate(t *testing.T) {
	s := NewUserStore(newTestKV(t), false, zap.NewNop())

	u, ok := s.Authenticate("admin", "admin123")
	require.True(t, ok)
	assert.Equal(t, "1", u.ID)

	_, ok = s.Authenticate("admin", "wrong")
	assert.False(t, ok)
	_, ok = s.Authenticate("Admin", "admin123")
	assert.False(t, ok, "usernames are case-sensitive")
}

func TestUserStore_StorageFailureFallsBackToSeed(t *testing.T) {
	s := NewUserStore(brokenKV{}, true, zap.NewNop())
	users := s.GetAll()
	require.Len(t, users, 1)
	assert.Equal(t, "admin", users[0].Username)
}
