package service

import (
	"fmt"
	"strconv"
	"strings"

	"go-inventory-sheets/internal/metrics"
	"go-inventory-sheets/internal/model"
	"go-inventory-sheets/internal/store"
	"go-inventory-sheets/internal/ws"
)

type InventoryService interface {
	ListItems() []model.InventoryItem
	GetItem(id string) (*model.InventoryItem, error)
	ShelfItems(rack, shelf string) ([]model.InventoryItem, error)
	Search(query string) []SearchResult
	AddItem(actor *model.User, req *AddItemRequest) (*model.InventoryItem, error)
	UpdateQuantity(actor *model.User, id string, quantity int) (*model.InventoryItem, error)
	DeleteItem(actor *model.User, id string) error
}

type AddItemRequest struct {
	Rack     string `json:"rack" validate:"required,rack"`
	Shelf    string `json:"shelf" validate:"required"`
	ItemName string `json:"itemName"`
	Quantity int    `json:"quantity"`
}

type UpdateQuantityRequest struct {
	Quantity *int `json:"quantity" validate:"required"`
}

// Segment is a piece of an item name; Match marks the parts equal to the query.
type Segment struct {
	Text  string `json:"text"`
	Match bool   `json:"match"`
}

type SearchResult struct {
	Item       model.InventoryItem `json:"item"`
	Highlights []Segment           `json:"highlights"`
}

type inventoryService struct {
	items store.InventoryStore
	audit AuditLogger
	wsHub Publisher
}

func NewInventoryService(items store.InventoryStore, audit AuditLogger, hub Publisher) InventoryService {
	return &inventoryService{items: items, audit: audit, wsHub: publisherOrNop(hub)}
}

func parseLocation(rack, shelf string) (model.Rack, model.Shelf, error) {
	r, ok := model.ParseRack(rack)
	if !ok {
		return "", "", fmt.Errorf("%w: unknown rack %q", ErrInvalidLocation, rack)
	}
	s, ok := model.ParseShelf(r, shelf)
	if !ok {
		return "", "", fmt.Errorf("%w: shelf %q on rack %s must be %s", ErrInvalidLocation, shelf, r, model.ShelfRange(r))
	}
	return r, s, nil
}

func (s *inventoryService) ListItems() []model.InventoryItem {
	return s.items.GetAll()
}

func (s *inventoryService) GetItem(id string) (*model.InventoryItem, error) {
	item, ok := s.items.GetByID(id)
	if !ok {
		return nil, ErrItemNotFound
	}
	return item, nil
}

func (s *inventoryService) ShelfItems(rack, shelf string) ([]model.InventoryItem, error) {
	r, sh, err := parseLocation(rack, shelf)
	if err != nil {
		return nil, err
	}
	return s.items.GetByShelf(r, sh), nil
}

// Search returns items whose name contains the trimmed query, ignoring case.
// A blank query matches nothing.
func (s *inventoryService) Search(query string) []SearchResult {
	q := strings.TrimSpace(query)
	results := []SearchResult{}
	if q == "" {
		return results
	}
	for _, item := range s.items.Search(q) {
		results = append(results, SearchResult{Item: item, Highlights: Highlight(item.ItemName, q)})
	}
	return results
}

// Highlight splits text around case-insensitive occurrences of query, keeping
// the original casing of every segment.
func Highlight(text, query string) []Segment {
	if query == "" {
		return []Segment{{Text: text}}
	}
	lowerText := strings.ToLower(text)
	lowerQuery := strings.ToLower(query)
	// lowering may change byte lengths outside ASCII; fall back to no highlight
	if len(lowerText) != len(text) || len(lowerQuery) != len(query) {
		return []Segment{{Text: text}}
	}

	var segments []Segment
	rest := 0
	for {
		idx := strings.Index(lowerText[rest:], lowerQuery)
		if idx < 0 {
			break
		}
		start := rest + idx
		if start > rest {
			segments = append(segments, Segment{Text: text[rest:start]})
		}
		segments = append(segments, Segment{Text: text[start : start+len(query)], Match: true})
		rest = start + len(query)
	}
	if rest < len(text) {
		segments = append(segments, Segment{Text: text[rest:]})
	}
	if segments == nil {
		segments = []Segment{{Text: text}}
	}
	return segments
}

func (s *inventoryService) AddItem(actor *model.User, req *AddItemRequest) (*model.InventoryItem, error) {
	// 1. Permission
	if err := requirePermission(actor, model.PermEdit, "You do not have permission to add items"); err != nil {
		return nil, err
	}

	// 2. Validate request
	if err := validate(req); err != nil {
		return nil, err
	}
	rack, shelf, err := parseLocation(req.Rack, req.Shelf)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(req.ItemName)
	if name == "" {
		return nil, ErrItemNameRequired
	}
	if req.Quantity < 0 {
		return nil, ErrInvalidQuantity
	}

	// 3. Save
	item := s.items.Create(model.InventoryItem{
		Rack:           rack,
		Shelf:          shelf,
		ItemName:       name,
		Quantity:       req.Quantity,
		CreatedBy:      actor.ID,
		LastModifiedBy: actor.ID,
	})

	// 4. Audit + broadcast
	location := model.Location(rack, shelf)
	s.audit.Log(*actor, model.ActionAdd, fmt.Sprintf("Added item \"%s\" to %s", name, location), &AuditMetadata{
		ShelfLocation: location,
		ItemName:      name,
		NewValue:      strconv.Itoa(item.Quantity),
	})
	metrics.InventoryMutationsTotal.WithLabelValues(string(model.ActionAdd)).Inc()
	s.publish("item_added", actor, item)

	return &item, nil
}

func (s *inventoryService) UpdateQuantity(actor *model.User, id string, quantity int) (*model.InventoryItem, error) {
	if err := requirePermission(actor, model.PermEdit, "You do not have permission to edit items"); err != nil {
		return nil, err
	}
	if quantity < 0 {
		return nil, ErrInvalidQuantity
	}

	current, ok := s.items.GetByID(id)
	if !ok {
		return nil, ErrItemNotFound
	}

	updated, ok := s.items.Update(id, store.ItemUpdate{Quantity: &quantity, LastModifiedBy: &actor.ID})
	if !ok {
		return nil, ErrItemNotFound
	}

	location := current.Location()
	s.audit.Log(*actor, model.ActionEdit, fmt.Sprintf("Updated quantity for \"%s\" on %s", current.ItemName, location), &AuditMetadata{
		ShelfLocation: location,
		ItemName:      current.ItemName,
		PreviousValue: strconv.Itoa(current.Quantity),
		NewValue:      strconv.Itoa(quantity),
	})
	metrics.InventoryMutationsTotal.WithLabelValues(string(model.ActionEdit)).Inc()
	s.publish("item_updated", actor, *updated)

	return updated, nil
}

func (s *inventoryService) DeleteItem(actor *model.User, id string) error {
	if err := requirePermission(actor, model.PermDelete, "You do not have permission to delete items"); err != nil {
		return err
	}

	current, ok := s.items.GetByID(id)
	if !ok {
		return ErrItemNotFound
	}
	if !s.items.Delete(id) {
		return ErrItemNotFound
	}

	location := current.Location()
	s.audit.Log(*actor, model.ActionDelete, fmt.Sprintf("Deleted item \"%s\" from %s", current.ItemName, location), &AuditMetadata{
		ShelfLocation: location,
		ItemName:      current.ItemName,
		PreviousValue: strconv.Itoa(current.Quantity),
	})
	metrics.InventoryMutationsTotal.WithLabelValues(string(model.ActionDelete)).Inc()
	s.publish("item_deleted", actor, *current)

	return nil
}

func (s *inventoryService) publish(action string, actor *model.User, item model.InventoryItem) {
	s.wsHub.Publish(ws.Event{
		Type:   ws.TypeStockUpdate,
		Action: action,
		Payload: map[string]any{
			"item": item,
			"user": map[string]string{"id": actor.ID, "username": actor.Username},
		},
	})
}
