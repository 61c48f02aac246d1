package store

import (
	"strings"
	"sync"
	"time"

	"go-inventory-sheets/internal/model"
	"go-inventory-sheets/internal/repository"

	"go.uber.org/zap"
)

type ItemUpdate struct {
	Rack           *model.Rack
	Shelf          *model.Shelf
	ItemName       *string
	Quantity       *int
	LastModifiedBy *string
}

type InventoryStore interface {
	GetAll() []model.InventoryItem
	GetByID(id string) (*model.InventoryItem, bool)
	GetByShelf(rack model.Rack, shelf model.Shelf) []model.InventoryItem
	Search(query string) []model.InventoryItem
	Create(item model.InventoryItem) model.InventoryItem
	Update(id string, upd ItemUpdate) (*model.InventoryItem, bool)
	Delete(id string) bool
	BulkCreate(items []model.InventoryItem) []model.InventoryItem
}

// inventoryStore reads the sheet cache when the inventory sheet is configured
// and the local list otherwise. Every write goes to the local list, starting
// from whatever the read side returned.
type inventoryStore struct {
	kv         repository.KVRepository
	configured bool
	log        *zap.Logger
	now        func() time.Time
	mu         sync.Mutex
}

func NewInventoryStore(kv repository.KVRepository, inventorySheetConfigured bool, log *zap.Logger) InventoryStore {
	return &inventoryStore{
		kv:         kv,
		configured: inventorySheetConfigured,
		log:        log.Named("store.inventory"),
		now:        time.Now,
	}
}

func (s *inventoryStore) all() []model.InventoryItem {
	key := KeyItems
	if s.configured {
		key = KeyItemsCache
	}
	var items []model.InventoryItem
	load(s.kv, s.log, key, &items)
	if items == nil {
		items = []model.InventoryItem{}
	}
	return items
}

// writeKeys are locked around every write: the list a write starts from
// (the cache when configured) and the local list it saves to.
func (s *inventoryStore) writeKeys() []string {
	if s.configured {
		return []string{KeyItemsCache, KeyItems}
	}
	return []string{KeyItems}
}

func (s *inventoryStore) GetAll() []model.InventoryItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.all()
}

func (s *inventoryStore) GetByID(id string) (*model.InventoryItem, bool) {
	for _, item := range s.GetAll() {
		if item.ID == id {
			return &item, true
		}
	}
	return nil, false
}

func (s *inventoryStore) GetByShelf(rack model.Rack, shelf model.Shelf) []model.InventoryItem {
	out := []model.InventoryItem{}
	for _, item := range s.GetAll() {
		if item.Rack == rack && item.Shelf == shelf {
			out = append(out, item)
		}
	}
	return out
}

// Search matches query as a case-insensitive substring of the item name.
func (s *inventoryStore) Search(query string) []model.InventoryItem {
	q := strings.ToLower(query)
	out := []model.InventoryItem{}
	for _, item := range s.GetAll() {
		if strings.Contains(strings.ToLower(item.ItemName), q) {
			out = append(out, item)
		}
	}
	return out
}

func (s *inventoryStore) stamp(item model.InventoryItem) model.InventoryItem {
	now := s.now().UTC()
	item.ID = newID()
	item.CreatedAt = now
	item.UpdatedAt = now
	return item
}

func (s *inventoryStore) Create(item model.InventoryItem) model.InventoryItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	item = s.stamp(item)
	locked(s.kv, s.writeKeys(), func() {
		save(s.kv, s.log, KeyItems, append(s.all(), item))
	})
	return item
}

func (s *inventoryStore) BulkCreate(items []model.InventoryItem) []model.InventoryItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	created := make([]model.InventoryItem, 0, len(items))
	for _, item := range items {
		created = append(created, s.stamp(item))
	}
	locked(s.kv, s.writeKeys(), func() {
		save(s.kv, s.log, KeyItems, append(s.all(), created...))
	})
	return created
}

func (s *inventoryStore) Update(id string, upd ItemUpdate) (*model.InventoryItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var updated *model.InventoryItem
	locked(s.kv, s.writeKeys(), func() {
		items := s.all()
		for i := range items {
			if items[i].ID != id {
				continue
			}
			item := &items[i]
			if upd.Rack != nil {
				item.Rack = *upd.Rack
			}
			if upd.Shelf != nil {
				item.Shelf = *upd.Shelf
			}
			if upd.ItemName != nil {
				item.ItemName = *upd.ItemName
			}
			if upd.Quantity != nil {
				item.Quantity = *upd.Quantity
			}
			if upd.LastModifiedBy != nil {
				item.LastModifiedBy = *upd.LastModifiedBy
			}
			item.UpdatedAt = s.now().UTC()
			save(s.kv, s.log, KeyItems, items)
			copied := *item
			updated = &copied
			return
		}
	})
	return updated, updated != nil
}

func (s *inventoryStore) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := false
	locked(s.kv, s.writeKeys(), func() {
		items := s.all()
		filtered := make([]model.InventoryItem, 0, len(items))
		for _, item := range items {
			if item.ID != id {
				filtered = append(filtered, item)
			}
		}
		if len(filtered) == len(items) {
			return
		}
		save(s.kv, s.log, KeyItems, filtered)
		removed = true
	})
	return removed
}
