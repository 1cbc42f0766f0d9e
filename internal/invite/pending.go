package invite

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const pendingKeyPrefix = "invite:pending:"

// PendingStore tracks admins whose invitation never left the building:
// the record persisted but dispatch failed. Markers let an operator
// re-dispatch without creating a duplicate record.
type PendingStore interface {
	Mark(ctx context.Context, adminID string) error
	Clear(ctx context.Context, adminID string) error
	List(ctx context.Context) ([]string, error)
}

// RedisPendingStore keeps markers in Redis with a retention TTL.
type RedisPendingStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisPendingStore builds the store.
func NewRedisPendingStore(client *redis.Client, ttl time.Duration) *RedisPendingStore {
	return &RedisPendingStore{client: client, ttl: ttl}
}

func (s *RedisPendingStore) Mark(ctx context.Context, adminID string) error {
	return s.client.Set(ctx, pendingKeyPrefix+adminID, time.Now().Format(time.RFC3339), s.ttl).Err()
}

func (s *RedisPendingStore) Clear(ctx context.Context, adminID string) error {
	return s.client.Del(ctx, pendingKeyPrefix+adminID).Err()
}

func (s *RedisPendingStore) List(ctx context.Context) ([]string, error) {
	var adminIDs []string
	iter := s.client.Scan(ctx, 0, pendingKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		adminIDs = append(adminIDs, strings.TrimPrefix(iter.Val(), pendingKeyPrefix))
	}
	return adminIDs, iter.Err()
}

// MemoryPendingStore is a map-backed PendingStore for tests and
// redis-less local runs.
type MemoryPendingStore struct {
	mu      sync.Mutex
	pending map[string]struct{}
}

// NewMemoryPendingStore builds an empty store.
func NewMemoryPendingStore() *MemoryPendingStore {
	return &MemoryPendingStore{pending: make(map[string]struct{})}
}

func (s *MemoryPendingStore) Mark(_ context.Context, adminID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending[adminID] = struct{}{}
	return nil
}

func (s *MemoryPendingStore) Clear(_ context.Context, adminID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pending, adminID)
	return nil
}

func (s *MemoryPendingStore) List(_ context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	adminIDs := make([]string, 0, len(s.pending))
	for adminID := range s.pending {
		adminIDs = append(adminIDs, adminID)
	}
	return adminIDs, nil
}
