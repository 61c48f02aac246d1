package service

import (
	"context"
	"errors"
	"fmt"

	"go-inventory-sheets/internal/config"
	"go-inventory-sheets/internal/sheets"
)

// Prober checks that a sheet is reachable and has a header row.
type Prober interface {
	Probe(ctx context.Context, sheetID, headerRange string) error
}

type ConfigStatus struct {
	HasAPIKey         bool  `json:"hasApiKey"`
	HasSheetID        bool  `json:"hasSheetId"`
	HasUsersSheetID   bool  `json:"hasUsersSheetId"`
	IsConfigured      bool  `json:"isConfigured"`
	IsUsersConfigured bool  `json:"isUsersConfigured"`
	SyncIntervalMS    int64 `json:"syncIntervalMs"`
}

type CheckResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type VerifyResult struct {
	Inventory CheckResult `json:"inventory"`
	Users     CheckResult `json:"users"`
}

type SetupService interface {
	Status() ConfigStatus
	Verify(ctx context.Context) VerifyResult
}

const (
	inventoryHeaders = "ID, Rack, Shelf, Item Name, Quantity, Created At, Updated At, Created By, Last Modified By"
	userHeaders      = "ID, Username, Password, Email, Role, Can View, Can Edit, Can Delete, Can Manage Users, Created At, Updated At"
)

type setupService struct {
	cfg    config.SheetsConfig
	prober Prober
}

func NewSetupService(cfg config.SheetsConfig, prober Prober) SetupService {
	return &setupService{cfg: cfg, prober: prober}
}

func (s *setupService) Status() ConfigStatus {
	return ConfigStatus{
		HasAPIKey:         s.cfg.APIKey != "",
		HasSheetID:        s.cfg.InventorySheetID != "",
		HasUsersSheetID:   s.cfg.UsersSheetID != "",
		IsConfigured:      s.cfg.InventoryConfigured(),
		IsUsersConfigured: s.cfg.UsersConfigured(),
		SyncIntervalMS:    s.cfg.SyncInterval().Milliseconds(),
	}
}

func (s *setupService) Verify(ctx context.Context) VerifyResult {
	return VerifyResult{
		Inventory: s.check(ctx, s.cfg.InventorySheetID, sheets.InventoryHeaderRange, "Inventory", inventoryHeaders),
		Users:     s.check(ctx, s.cfg.UsersSheetID, sheets.UsersHeaderRange, "Users", userHeaders),
	}
}

func (s *setupService) check(ctx context.Context, sheetID, headerRange, tab, headers string) CheckResult {
	err := s.prober.Probe(ctx, sheetID, headerRange)
	var reqErr *sheets.RequestError
	switch {
	case err == nil:
		return CheckResult{Success: true, Message: "Successfully connected to Google Sheets!"}
	case errors.Is(err, sheets.ErrNotConfigured):
		return CheckResult{Message: "Google Sheets not configured"}
	case errors.Is(err, sheets.ErrMissingHeaders):
		return CheckResult{Message: fmt.Sprintf("Please add headers to the %s sheet: %s", tab, headers)}
	case errors.As(err, &reqErr):
		return CheckResult{Message: fmt.Sprintf("Invalid Sheet ID or API Key, or the %s sheet does not exist (HTTP %d)", tab, reqErr.StatusCode)}
	default:
		return CheckResult{Message: err.Error()}
	}
}
