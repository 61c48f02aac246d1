package sheets

import (
	"math"
	"strconv"
	"strings"
	"time"

	"go-inventory-sheets/internal/model"
)

// Column counts of the positional row layouts.
const (
	InventoryColumns = 9
	UserColumns      = 11
)

type RowStatus int

const (
	// RowAbsent means the row is too short to hold a record.
	RowAbsent RowStatus = iota
	RowValid
	// RowInvalid means a field failed to parse; Field and Raw say which.
	RowInvalid
)

func (s RowStatus) String() string {
	switch s {
	case RowValid:
		return "valid"
	case RowInvalid:
		return "invalid"
	default:
		return "absent"
	}
}

// Decoded is the result of decoding one row.
type Decoded[T any] struct {
	Status RowStatus
	Value  T
	Field  string
	Raw    string
}

func invalid[T any](field, raw string) Decoded[T] {
	return Decoded[T]{Status: RowInvalid, Field: field, Raw: raw}
}

// cell coerces a sheet value to text the way the values API renders it.
func cell(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case bool:
		if x {
			return "TRUE"
		}
		return "FALSE"
	case interface{ String() string }:
		return x.String()
	default:
		return ""
	}
}

func parseQuantity(raw string) (int, bool) {
	s := strings.TrimSpace(raw)
	if n, err := strconv.Atoi(s); err == nil {
		return n, n >= 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f < 0 || f != math.Trunc(f) || f > math.MaxInt32 {
		return 0, false
	}
	return int(f), true
}

// parseTime accepts RFC 3339 with or without fractional seconds; an empty cell is the zero time.
func parseTime(raw string) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, true
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, false
	}
	return t.UTC(), true
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func parseFlag(raw string) bool {
	return strings.EqualFold(strings.TrimSpace(raw), "TRUE")
}

func formatFlag(b bool) string {
	if b {
		return "TRUE"
	}
	return "FALSE"
}

// DecodeItem reads columns id, rack, shelf, item name, quantity, created-at,
// updated-at, created-by, last-modified-by.
func DecodeItem(row []any) Decoded[model.InventoryItem] {
	if len(row) < InventoryColumns {
		return Decoded[model.InventoryItem]{Status: RowAbsent}
	}
	c := make([]string, InventoryColumns)
	for i := range c {
		c[i] = cell(row[i])
	}

	rack, ok := model.ParseRack(c[1])
	if !ok {
		return invalid[model.InventoryItem]("rack", c[1])
	}
	shelf, ok := model.ParseShelf(rack, c[2])
	if !ok {
		return invalid[model.InventoryItem]("shelf", c[2])
	}
	qty, ok := parseQuantity(c[4])
	if !ok {
		return invalid[model.InventoryItem]("quantity", c[4])
	}
	createdAt, ok := parseTime(c[5])
	if !ok {
		return invalid[model.InventoryItem]("createdAt", c[5])
	}
	updatedAt, ok := parseTime(c[6])
	if !ok {
		return invalid[model.InventoryItem]("updatedAt", c[6])
	}

	return Decoded[model.InventoryItem]{
		Status: RowValid,
		Value: model.InventoryItem{
			ID:             c[0],
			Rack:           rack,
			Shelf:          shelf,
			ItemName:       c[3],
			Quantity:       qty,
			CreatedAt:      createdAt,
			UpdatedAt:      updatedAt,
			CreatedBy:      c[7],
			LastModifiedBy: c[8],
		},
	}
}

func EncodeItem(item model.InventoryItem) []any {
	return []any{
		item.ID,
		string(item.Rack),
		string(item.Shelf),
		item.ItemName,
		strconv.Itoa(item.Quantity),
		formatTime(item.CreatedAt),
		formatTime(item.UpdatedAt),
		item.CreatedBy,
		item.LastModifiedBy,
	}
}

// DecodeUser reads columns id, username, password, email, role, canView,
// canEdit, canDelete, canManageUsers, created-at, updated-at.
func DecodeUser(row []any) Decoded[model.User] {
	if len(row) < UserColumns {
		return Decoded[model.User]{Status: RowAbsent}
	}
	c := make([]string, UserColumns)
	for i := range c {
		c[i] = cell(row[i])
	}

	role, ok := model.ParseRole(c[4])
	if !ok {
		return invalid[model.User]("role", c[4])
	}
	createdAt, ok := parseTime(c[9])
	if !ok {
		return invalid[model.User]("createdAt", c[9])
	}
	updatedAt, ok := parseTime(c[10])
	if !ok {
		return invalid[model.User]("updatedAt", c[10])
	}

	return Decoded[model.User]{
		Status: RowValid,
		Value: model.User{
			ID:       c[0],
			Username: c[1],
			Password: c[2],
			Email:    c[3],
			Role:     role,
			Permissions: model.Permissions{
				CanView:        parseFlag(c[5]),
				CanEdit:        parseFlag(c[6]),
				CanDelete:      parseFlag(c[7]),
				CanManageUsers: parseFlag(c[8]),
			},
			CreatedAt: createdAt,
			UpdatedAt: updatedAt,
		},
	}
}

func EncodeUser(u model.User) []any {
	return []any{
		u.ID,
		u.Username,
		u.Password,
		u.Email,
		string(u.Role),
		formatFlag(u.Permissions.CanView),
		formatFlag(u.Permissions.CanEdit),
		formatFlag(u.Permissions.CanDelete),
		formatFlag(u.Permissions.CanManageUsers),
		formatTime(u.CreatedAt),
		formatTime(u.UpdatedAt),
	}
}
