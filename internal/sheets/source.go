package sheets

import (
	"context"

	"go-inventory-sheets/internal/metrics"
	"go-inventory-sheets/internal/model"
	"go-inventory-sheets/internal/syncer"

	"go.uber.org/zap"
)

// Header ranges probed by setup verification.
const (
	InventoryHeaderRange = "Inventory!A1:I1"
	UsersHeaderRange     = "Users!A1:K1"
)

var (
	_ syncer.Source[model.InventoryItem] = (*InventorySource)(nil)
	_ syncer.Source[model.User]          = (*UserSource)(nil)
)

// InventorySource feeds the inventory sync engine from one sheet range.
type InventorySource struct {
	client    *Client
	sheetID   string
	cellRange string
	log       *zap.Logger
}

func NewInventorySource(client *Client, sheetID, cellRange string, log *zap.Logger) *InventorySource {
	return &InventorySource{client: client, sheetID: sheetID, cellRange: cellRange, log: log.Named("sheets.inventory")}
}

func (s *InventorySource) Configured() bool {
	return s.client.HasAPIKey() && s.sheetID != ""
}

func (s *InventorySource) Fetch(ctx context.Context) ([]model.InventoryItem, error) {
	rows, err := s.client.Values(ctx, s.sheetID, s.cellRange)
	if err != nil {
		return nil, err
	}
	return decodeRows(rows, DecodeItem, "inventory", s.log), nil
}

// UserSource feeds the users sync engine.
type UserSource struct {
	client    *Client
	sheetID   string
	cellRange string
	log       *zap.Logger
}

func NewUserSource(client *Client, sheetID, cellRange string, log *zap.Logger) *UserSource {
	return &UserSource{client: client, sheetID: sheetID, cellRange: cellRange, log: log.Named("sheets.users")}
}

func (s *UserSource) Configured() bool {
	return s.client.HasAPIKey() && s.sheetID != ""
}

func (s *UserSource) Fetch(ctx context.Context) ([]model.User, error) {
	rows, err := s.client.Values(ctx, s.sheetID, s.cellRange)
	if err != nil {
		return nil, err
	}
	return decodeRows(rows, DecodeUser, "users", s.log), nil
}

// decodeRows keeps valid rows. Short rows are skipped silently, invalid ones
// are logged and counted.
func decodeRows[T any](rows [][]any, decode func([]any) Decoded[T], domain string, log *zap.Logger) []T {
	out := make([]T, 0, len(rows))
	for i, row := range rows {
		d := decode(row)
		switch d.Status {
		case RowValid:
			out = append(out, d.Value)
		case RowInvalid:
			// data starts on sheet row 2
			log.Warn("dropping invalid sheet row",
				zap.Int("row", i+2),
				zap.String("field", d.Field),
				zap.String("value", d.Raw),
			)
			metrics.SyncRowsDroppedTotal.WithLabelValues(domain, d.Field).Inc()
		}
	}
	return out
}
