package service

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"go-inventory-sheets/internal/metrics"
	"go-inventory-sheets/internal/model"
	"go-inventory-sheets/internal/store"
	"go-inventory-sheets/internal/ws"

	"github.com/goccy/go-json"
)

type TransferService interface {
	// Import validates every record and creates all of them or none.
	Import(actor *model.User, payload []byte) (int, error)
	Export() []model.ExportRecord
}

type transferService struct {
	items store.InventoryStore
	audit AuditLogger
	wsHub Publisher
}

func NewTransferService(items store.InventoryStore, audit AuditLogger, hub Publisher) TransferService {
	return &transferService{items: items, audit: audit, wsHub: publisherOrNop(hub)}
}

// ExportFilename is the download name for an export taken at now.
func ExportFilename(now time.Time) string {
	return "inventory-export-" + now.UTC().Format("2006-01-02") + ".json"
}

func (s *transferService) Export() []model.ExportRecord {
	items := s.items.GetAll()
	out := make([]model.ExportRecord, 0, len(items))
	for _, item := range items {
		out = append(out, model.ExportRecord{
			Rack:  string(item.Rack),
			Shelf: string(item.Shelf),
			Item:  item.ItemName,
			Qty:   strconv.Itoa(item.Quantity),
		})
	}
	return out
}

func (s *transferService) Import(actor *model.User, payload []byte) (int, error) {
	if err := requirePermission(actor, model.PermEdit, "You do not have permission to import items"); err != nil {
		return 0, err
	}

	var doc any
	if err := json.Unmarshal(payload, &doc); err != nil {
		return 0, fmt.Errorf("%w: Error parsing JSON file: %v", ErrValidation, err)
	}
	rows, ok := doc.([]any)
	if !ok {
		return 0, fmt.Errorf("%w: Invalid file format: Expected an array of items", ErrValidation)
	}

	var errs []string
	valid := make([]model.InventoryItem, 0, len(rows))
	for i, raw := range rows {
		item, msg := parseImportRow(raw)
		if msg != "" {
			errs = append(errs, fmt.Sprintf("Row %d: %s", i+1, msg))
			continue
		}
		item.CreatedBy = actor.ID
		item.LastModifiedBy = actor.ID
		valid = append(valid, item)
	}
	if len(errs) > 0 {
		return 0, &ImportError{Errors: errs}
	}

	created := s.items.BulkCreate(valid)

	s.audit.Log(*actor, model.ActionImport, fmt.Sprintf("Imported %d items from JSON file", len(created)), nil)
	metrics.InventoryMutationsTotal.WithLabelValues(string(model.ActionImport)).Add(float64(len(created)))
	s.wsHub.Publish(ws.Event{
		Type:    ws.TypeStockUpdate,
		Action:  "items_imported",
		Payload: map[string]any{"count": len(created), "user": actor.Username},
	})

	return len(created), nil
}

// parseImportRow returns the item or a message describing the first problem.
// rack, shelf and item must be JSON strings; qty may be a string or a number.
func parseImportRow(raw any) (model.InventoryItem, string) {
	row, _ := raw.(map[string]any)

	qtyRaw, hasQty := row["qty"]
	if !present(row, "rack") || !present(row, "shelf") || !present(row, "item") || !hasQty {
		return model.InventoryItem{}, "Missing required fields"
	}

	rack, isText := row["rack"].(string)
	r, ok := model.ParseRack(rack)
	if !isText || !ok {
		return model.InventoryItem{}, fmt.Sprintf("Invalid rack \"%s\". Must be A-G or LB", scalarText(row["rack"]))
	}
	shelf, isText := row["shelf"].(string)
	sh, ok := model.ParseShelf(r, shelf)
	if !isText || !ok {
		return model.InventoryItem{}, fmt.Sprintf("Invalid shelf \"%s\" for rack \"%s\". Must be %s", scalarText(row["shelf"]), rack, model.ShelfRange(r))
	}
	name, isText := row["item"].(string)
	if !isText {
		return model.InventoryItem{}, fmt.Sprintf("Invalid item name \"%s\"", scalarText(row["item"]))
	}
	qtyText := scalarText(qtyRaw)
	qty, ok := parseLeadingInt(qtyText)
	if !ok || qty < 0 {
		return model.InventoryItem{}, fmt.Sprintf("Invalid quantity \"%s\"", qtyText)
	}

	return model.InventoryItem{Rack: r, Shelf: sh, ItemName: name, Quantity: qty}, ""
}

// present reports whether the field holds a value; absent, null, empty,
// false and zero all count as missing.
func present(row map[string]any, key string) bool {
	switch v := row[key].(type) {
	case nil:
		return false
	case string:
		return v != ""
	case bool:
		return v
	case float64:
		return v != 0
	default:
		return true
	}
}

func scalarText(v any) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	default:
		b, err := json.Marshal(x)
		if err != nil {
			return fmt.Sprint(x)
		}
		return string(b)
	}
}

// parseLeadingInt reads an optionally signed run of digits after leading
// whitespace and ignores anything that follows, so "12 boxes" is 12.
func parseLeadingInt(s string) (int, bool) {
	s = strings.TrimLeft(s, " \t\r\n")
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}
