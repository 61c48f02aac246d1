package model

import (
	"slices"
	"time"
)

// Rack is a physical storage rack. A-G carry four shelves, LB carries three.
type Rack string

const (
	RackA  Rack = "A"
	RackB  Rack = "B"
	RackC  Rack = "C"
	RackD  Rack = "D"
	RackE  Rack = "E"
	RackF  Rack = "F"
	RackG  Rack = "G"
	RackLB Rack = "LB"
)

// Racks lists every rack in display order.
var Racks = []Rack{RackA, RackB, RackC, RackD, RackE, RackF, RackG, RackLB}

// Shelf is a shelf number on a rack, kept as text ("1".."4").
type Shelf string

var (
	standardShelves = []Shelf{"1", "2", "3", "4"}
	lbShelves       = []Shelf{"1", "2", "3"}
)

// ParseRack validates raw against the known racks.
func ParseRack(raw string) (Rack, bool) {
	r := Rack(raw)
	if slices.Contains(Racks, r) {
		return r, true
	}
	return "", false
}

// ShelvesFor returns the shelves available on rack, or nil for an unknown rack.
func ShelvesFor(rack Rack) []Shelf {
	switch {
	case rack == RackLB:
		return lbShelves
	case slices.Contains(Racks, rack):
		return standardShelves
	default:
		return nil
	}
}

// ParseShelf validates raw as a shelf of rack.
func ParseShelf(rack Rack, raw string) (Shelf, bool) {
	s := Shelf(raw)
	if slices.Contains(ShelvesFor(rack), s) {
		return s, true
	}
	return "", false
}

// ShelfRange is the human readable range used in validation messages.
func ShelfRange(rack Rack) string {
	if rack == RackLB {
		return "1-3"
	}
	return "1-4"
}

// RackLayout is one rack and its shelves.
type RackLayout struct {
	Rack    Rack    `json:"rack"`
	Shelves []Shelf `json:"shelves"`
}

// Layout returns the whole warehouse grid.
func Layout() []RackLayout {
	layout := make([]RackLayout, 0, len(Racks))
	for _, r := range Racks {
		layout = append(layout, RackLayout{Rack: r, Shelves: slices.Clone(ShelvesFor(r))})
	}
	return layout
}

// InventoryItem is a named quantity stored on one shelf.
// CreatedBy and LastModifiedBy are user ids and may outlive the user.
type InventoryItem struct {
	ID             string    `json:"id"`
	Rack           Rack      `json:"rack"`
	Shelf          Shelf     `json:"shelf"`
	ItemName       string    `json:"itemName"`
	Quantity       int       `json:"quantity"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
	CreatedBy      string    `json:"createdBy"`
	LastModifiedBy string    `json:"lastModifiedBy"`
}

// Location renders the shelf coordinate, e.g. "A-1".
func (i *InventoryItem) Location() string {
	return Location(i.Rack, i.Shelf)
}

func Location(rack Rack, shelf Shelf) string {
	return string(rack) + "-" + string(shelf)
}

// ImportRecord is one entry of an import file. Export produces the same shape.
type ImportRecord struct {
	Rack  string `json:"rack"`
	Shelf string `json:"shelf"`
	Item  string `json:"item"`
	Qty   string `json:"qty"`
}

type ExportRecord = ImportRecord
