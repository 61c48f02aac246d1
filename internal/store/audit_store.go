package store

import (
	"sort"
	"strings"
	"sync"
	"time"

	"go-inventory-sheets/internal/model"
	"go-inventory-sheets/internal/repository"

	"go.uber.org/zap"
)

// AuditFilter narrows GetFiltered. Start and End are calendar days; the time
// of day is ignored. Zero values disable the bound.
type AuditFilter struct {
	Start time.Time
	End   time.Time
	Query string
}

type AuditLogStore interface {
	GetAll() []model.AuditLog
	GetFiltered(f AuditFilter) []model.AuditLog
	Create(entry model.AuditLog) model.AuditLog
	UpdateNotes(id, notes string) (*model.AuditLog, bool)
}

type auditLogStore struct {
	kv  repository.KVRepository
	log *zap.Logger
	now func() time.Time
	mu  sync.Mutex
}

func NewAuditLogStore(kv repository.KVRepository, log *zap.Logger) AuditLogStore {
	return &auditLogStore{kv: kv, log: log.Named("store.audit"), now: time.Now}
}

func (s *auditLogStore) all() []model.AuditLog {
	var logs []model.AuditLog
	load(s.kv, s.log, KeyAuditLogs, &logs)
	if logs == nil {
		logs = []model.AuditLog{}
	}
	return logs
}

func (s *auditLogStore) GetAll() []model.AuditLog {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.all()
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// GetFiltered keeps entries from the start of Start through 23:59:59.999 of
// End whose description, username, item name or notes contain Query, newest first.
func (s *auditLogStore) GetFiltered(f AuditFilter) []model.AuditLog {
	logs := s.GetAll()

	var from, to time.Time
	if !f.Start.IsZero() {
		from = startOfDay(f.Start)
	}
	if !f.End.IsZero() {
		to = startOfDay(f.End).Add(24*time.Hour - time.Millisecond)
	}
	q := strings.ToLower(f.Query)

	out := make([]model.AuditLog, 0, len(logs))
	for _, l := range logs {
		if !from.IsZero() && l.Timestamp.Before(from) {
			continue
		}
		if !to.IsZero() && l.Timestamp.After(to) {
			continue
		}
		if q != "" && !matchesAudit(l, q) {
			continue
		}
		out = append(out, l)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	return out
}

func matchesAudit(l model.AuditLog, q string) bool {
	for _, field := range []string{l.Description, l.Username, l.ItemName, l.Notes} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

// Create assigns id and createdAt. Timestamp is kept as given.
func (s *auditLogStore) Create(entry model.AuditLog) model.AuditLog {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry.ID = newID()
	entry.CreatedAt = s.now().UTC()
	save(s.kv, s.log, KeyAuditLogs, append(s.all(), entry))
	return entry
}

func (s *auditLogStore) UpdateNotes(id, notes string) (*model.AuditLog, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	logs := s.all()
	for i := range logs {
		if logs[i].ID == id {
			logs[i].Notes = notes
			save(s.kv, s.log, KeyAuditLogs, logs)
			updated := logs[i]
			return &updated, true
		}
	}
	return nil, false
}
