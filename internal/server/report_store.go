package server

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/amiable-anand/Whatsapp-Chat-Analyzer/internal/domain"
)

// ReportStatus is the lifecycle state of an analysis run.
type ReportStatus string

const (
	ReportStatusPending    ReportStatus = "pending"
	ReportStatusProcessing ReportStatus = "processing"
	ReportStatusCompleted  ReportStatus = "completed"
	ReportStatusFailed     ReportStatus = "failed"
)

// ReportEntry is one analysis run keyed by its ID. Keying runs by ID keeps
// concurrent uploads fully independent; there is no process-wide "last
// result" slot.
type ReportEntry struct {
	ID           string
	Status       ReportStatus
	Report       *domain.Report
	ErrorMessage string
	CreatedAt    time.Time
	ExpiresAt    time.Time // for automatic cleanup
}

// ReportStore manages report entries. Safe for concurrent use.
type ReportStore struct {
	entries map[string]*ReportEntry
	mutex   sync.RWMutex
}

// NewReportStore creates an empty ReportStore.
func NewReportStore() *ReportStore {
	return &ReportStore{
		entries: make(map[string]*ReportEntry),
	}
}

// Create registers a new run with status 'pending'.
func (rs *ReportStore) Create(id string, ttl time.Duration) {
	rs.mutex.Lock()
	defer rs.mutex.Unlock()

	now := time.Now()
	rs.entries[id] = &ReportEntry{
		ID:        id,
		Status:    ReportStatusPending,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
}

// SetStatus updates the status of a run.
func (rs *ReportStore) SetStatus(id string, status ReportStatus) error {
	rs.mutex.Lock()
	defer rs.mutex.Unlock()

	entry, exists := rs.entries[id]
	if !exists {
		return fmt.Errorf("report %s not found", id)
	}
	entry.Status = status
	return nil
}

// SetReport attaches the finished report and marks the run 'completed'.
func (rs *ReportStore) SetReport(id string, report *domain.Report) error {
	rs.mutex.Lock()
	defer rs.mutex.Unlock()

	entry, exists := rs.entries[id]
	if !exists {
		return fmt.Errorf("report %s not found", id)
	}
	entry.Status = ReportStatusCompleted
	entry.Report = report
	return nil
}

// SetError records a failure and marks the run 'failed'.
func (rs *ReportStore) SetError(id string, errorMessage string) error {
	rs.mutex.Lock()
	defer rs.mutex.Unlock()

	entry, exists := rs.entries[id]
	if !exists {
		return fmt.Errorf("report %s not found", id)
	}
	entry.Status = ReportStatusFailed
	entry.ErrorMessage = errorMessage
	return nil
}

// Get returns a copy of the run with the given ID. Callers read the copy
// outside the lock, so writers updating the live entry never race with them.
func (rs *ReportStore) Get(id string) (*ReportEntry, error) {
	rs.mutex.RLock()
	defer rs.mutex.RUnlock()

	entry, exists := rs.entries[id]
	if !exists {
		return nil, fmt.Errorf("report %s not found", id)
	}
	entryCopy := *entry
	return &entryCopy, nil
}

// CleanupExpired removes expired runs.
func (rs *ReportStore) CleanupExpired() {
	rs.mutex.Lock()
	defer rs.mutex.Unlock()

	now := time.Now()
	for id, entry := range rs.entries {
		if now.After(entry.ExpiresAt) {
			delete(rs.entries, id)
		}
	}
}

// StartCleanupTicker periodically removes expired runs until the context
// is canceled.
func (rs *ReportStore) StartCleanupTicker(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				rs.CleanupExpired()
			}
		}
	}()
}
