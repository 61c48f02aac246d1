package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go-inventory-sheets/internal/syncer"
	"go-inventory-sheets/internal/ws"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEngine struct {
	name      string
	err       error
	info      syncer.Info
	mu        sync.Mutex
	listeners []syncer.Listener
	syncs     int
}

func (e *fakeEngine) Name() string { return e.name }

func (e *fakeEngine) Sync(context.Context) error {
	e.mu.Lock()
	e.syncs++
	ls := append([]syncer.Listener(nil), e.listeners...)
	e.mu.Unlock()
	for _, l := range ls {
		l(syncer.State{Status: syncer.StatusSyncing})
	}
	return e.err
}

func (e *fakeEngine) Info() syncer.Info { return e.info }

func (e *fakeEngine) Subscribe(fn syncer.Listener) func() {
	e.mu.Lock()
	e.listeners = append(e.listeners, fn)
	e.mu.Unlock()
	fn(syncer.State{Status: syncer.StatusIdle})
	return func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		e.listeners = nil
	}
}

func TestSyncService_Trigger(t *testing.T) {
	last := time.Now().UTC()
	inv := &fakeEngine{name: "inventory", info: syncer.Info{Name: "inventory", Status: syncer.StatusSuccess, LastSync: &last}}
	users := &fakeEngine{name: "users", err: errors.New("users source not configured"), info: syncer.Info{Name: "users", Status: syncer.StatusError}}
	svc := NewSyncService(inv, users, nil)

	info, err := svc.Trigger(context.Background(), DomainInventory)
	require.NoError(t, err)
	assert.Equal(t, syncer.StatusSuccess, info.Status)
	assert.Equal(t, 1, inv.syncs)

	info, err = svc.Trigger(context.Background(), DomainUsers)
	require.Error(t, err)
	assert.Equal(t, syncer.StatusError, info.Status)

	_, err = svc.Trigger(context.Background(), "orders")
	assert.ErrorIs(t, err, ErrUnknownSyncDomain)

	status := svc.Status()
	assert.Equal(t, "inventory", status.Inventory.Name)
	assert.Equal(t, "users", status.Users.Name)
}

func TestSyncService_BroadcastTransitions(t *testing.T) {
	inv := &fakeEngine{name: "inventory"}
	users := &fakeEngine{name: "users"}
	hub := &recordingPublisher{}
	svc := NewSyncService(inv, users, hub)

	stop := svc.BroadcastTransitions()
	require.NoError(t, inv.Sync(context.Background()))

	events := hub.Events()
	require.Len(t, events, 3)
	assert.Equal(t, ws.TypeSyncStatus, events[2].Type)
	assert.Equal(t, "inventory", events[2].Action)
	assert.Equal(t, syncer.State{Status: syncer.StatusSyncing}, events[2].Payload)

	stop()
	require.NoError(t, inv.Sync(context.Background()))
	assert.Len(t, hub.Events(), 3)
}
