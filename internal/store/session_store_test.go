package store

import (
	"testing"

	"go-inventory-sheets/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSessionStore(t *testing.T) {
	kv := newTestKV(t)
	users := NewUserStore(kv, false, zap.NewNop())
	sessions := NewSessionStore(kv, users, zap.NewNop())

	kim := users.Create(model.User{Username: "kim", Role: model.RoleViewer})
	sessions.SetCurrentUser("sess-1", kim)

	got, ok := sessions.GetCurrentUser("sess-1")
	require.True(t, ok)
	assert.Equal(t, "kim", got.Username)

	_, ok = sessions.GetCurrentUser("other")
	assert.False(t, ok)

	sessions.ClearCurrentUser("sess-1")
	_, ok = sessions.GetCurrentUser("sess-1")
	assert.False(t, ok)
}

func TestSessionStore_DeletedUser(t *testing.T) {
	kv := newTestKV(t)
	users := NewUserStore(kv, false, zap.NewNop())
	sessions := NewSessionStore(kv, users, zap.NewNop())

	kim := users.Create(model.User{Username: "kim"})
	sessions.SetCurrentUser("sess-1", kim)
	require.True(t, users.Delete(kim.ID))

	u, ok := sessions.GetCurrentUser("sess-1")
	assert.False(t, ok)
	assert.Nil(t, u)
}
