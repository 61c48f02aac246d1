package service

import (
	"time"

	"go-inventory-sheets/internal/model"
	"go-inventory-sheets/internal/store"
)

type LocationSummary struct {
	Rack      model.Rack  `json:"rack"`
	Shelf     model.Shelf `json:"shelf"`
	ItemCount int         `json:"itemCount"`
	Quantity  int         `json:"quantity"`
}

type DashboardSummary struct {
	AppName       string             `json:"appName"`
	TotalItems    int                `json:"totalItems"`
	TotalQuantity int                `json:"totalQuantity"`
	Locations     []LocationSummary  `json:"locations"`
	Layout        []model.RackLayout `json:"layout"`
	LastItemsSync *time.Time         `json:"lastInventorySync"`
	LastUsersSync *time.Time         `json:"lastUsersSync"`
}

type DashboardService interface {
	GetSummary() DashboardSummary
}

type dashboardService struct {
	items   store.InventoryStore
	sync    SyncService
	appName string
}

func NewDashboardService(items store.InventoryStore, sync SyncService, appName string) DashboardService {
	return &dashboardService{items: items, sync: sync, appName: appName}
}

// GetSummary reports per-shelf counts for every shelf in the layout, including empty ones.
func (s *dashboardService) GetSummary() DashboardSummary {
	items := s.items.GetAll()

	type key struct {
		rack  model.Rack
		shelf model.Shelf
	}
	counts := make(map[key]*LocationSummary)
	layout := model.Layout()
	locations := make([]LocationSummary, 0, 32)
	for _, r := range layout {
		for _, sh := range r.Shelves {
			locations = append(locations, LocationSummary{Rack: r.Rack, Shelf: sh})
		}
	}
	for i := range locations {
		counts[key{locations[i].Rack, locations[i].Shelf}] = &locations[i]
	}

	summary := DashboardSummary{AppName: s.appName, Layout: layout}
	for _, item := range items {
		summary.TotalItems++
		summary.TotalQuantity += item.Quantity
		if loc, ok := counts[key{item.Rack, item.Shelf}]; ok {
			loc.ItemCount++
			loc.Quantity += item.Quantity
		}
	}
	summary.Locations = locations

	status := s.sync.Status()
	summary.LastItemsSync = status.Inventory.LastSync
	summary.LastUsersSync = status.Users.LastSync
	return summary
}
