// Package cache keeps finished reports keyed by the content hash of their
// source export, so re-uploading the same file skips the pipeline.
package cache

import (
	"context"
	"crypto/sha256"
	"fmt"
	"sync"
	"time"

	"github.com/amiable-anand/Whatsapp-Chat-Analyzer/internal/domain"
)

// Item is one cached report with its expiry.
type Item struct {
	Report    *domain.Report
	ExpiresAt time.Time
}

// Store manages cached reports. Safe for concurrent use.
type Store struct {
	items map[string]*Item
	mutex sync.RWMutex
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{
		items: make(map[string]*Item),
	}
}

// Get returns the cached report for a content hash, if still valid.
func (s *Store) Get(key string) (*domain.Report, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	item, exists := s.items[key]
	if !exists || time.Now().After(item.ExpiresAt) {
		return nil, false
	}
	return item.Report, true
}

// Put stores a report under a content hash with the given lifetime.
func (s *Store) Put(key string, report *domain.Report, ttl time.Duration) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.items[key] = &Item{
		Report:    report,
		ExpiresAt: time.Now().Add(ttl),
	}
}

// CleanupExpired removes expired entries.
func (s *Store) CleanupExpired() {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	now := time.Now()
	for key, item := range s.items {
		if now.After(item.ExpiresAt) {
			delete(s.items, key)
		}
	}
}

// StartCleanupTicker periodically removes expired entries until the
// context is canceled.
func (s *Store) StartCleanupTicker(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.CleanupExpired()
			}
		}
	}()
}

// ContentHash returns the SHA-256 hex digest of an export's content.
func ContentHash(data []byte) string {
	return fmt.Sprintf("%x", sha256.Sum256(data))
}
