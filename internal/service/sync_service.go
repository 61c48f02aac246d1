package service

import (
	"context"

	"go-inventory-sheets/internal/syncer"
	"go-inventory-sheets/internal/ws"
)

// Sync domains accepted by Trigger.
const (
	DomainInventory = "inventory"
	DomainUsers     = "users"
)

// SyncEngine is the part of syncer.Engine the API needs; it does not depend
// on the record type.
type SyncEngine interface {
	Name() string
	Sync(ctx context.Context) error
	Info() syncer.Info
	Subscribe(fn syncer.Listener) func()
}

type SyncStatus struct {
	Inventory syncer.Info `json:"inventory"`
	Users     syncer.Info `json:"users"`
}

type SyncService interface {
	Status() SyncStatus
	Trigger(ctx context.Context, domain string) (syncer.Info, error)
	// BroadcastTransitions forwards every engine transition to the hub until
	// the returned func is called.
	BroadcastTransitions() (stop func())
}

type syncService struct {
	inventory SyncEngine
	users     SyncEngine
	wsHub     Publisher
}

func NewSyncService(inventory, users SyncEngine, hub Publisher) SyncService {
	return &syncService{inventory: inventory, users: users, wsHub: publisherOrNop(hub)}
}

func (s *syncService) Status() SyncStatus {
	return SyncStatus{Inventory: s.inventory.Info(), Users: s.users.Info()}
}

func (s *syncService) engine(domain string) (SyncEngine, error) {
	switch domain {
	case DomainInventory:
		return s.inventory, nil
	case DomainUsers:
		return s.users, nil
	default:
		return nil, ErrUnknownSyncDomain
	}
}

// Trigger runs one sync of domain and returns the resulting status. A sync
// failure is reported in the returned info as well as the error.
func (s *syncService) Trigger(ctx context.Context, domain string) (syncer.Info, error) {
	e, err := s.engine(domain)
	if err != nil {
		return syncer.Info{}, err
	}
	err = e.Sync(ctx)
	return e.Info(), err
}

func (s *syncService) BroadcastTransitions() func() {
	forward := func(e SyncEngine) func() {
		return e.Subscribe(func(st syncer.State) {
			s.wsHub.Publish(ws.Event{Type: ws.TypeSyncStatus, Action: e.Name(), Payload: st})
		})
	}
	stopInventory := forward(s.inventory)
	stopUsers := forward(s.users)
	return func() {
		stopInventory()
		stopUsers()
	}
}
