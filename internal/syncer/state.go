package syncer

import "time"

type Status string

const (
	StatusIdle    Status = "idle"
	StatusSyncing Status = "syncing"
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// State is what listeners observe. Error is only set in the error state.
type State struct {
	Status   Status     `json:"status"`
	Error    string     `json:"error,omitempty"`
	LastSync *time.Time `json:"lastSync"`
}

// Info is the status summary exposed over the API.
type Info struct {
	Name       string     `json:"name"`
	Configured bool       `json:"configured"`
	Status     Status     `json:"status"`
	Error      string     `json:"error,omitempty"`
	LastSync   *time.Time `json:"lastSync"`
	Active     bool       `json:"active"`
}

// Listener receives state transitions. It runs on the goroutine that caused
// the transition and must not block for long.
type Listener func(State)
