// Package mocks provides function-field store mocks and an in-memory record
// store for domain tests.
package mocks

import (
	"context"
	"sync"

	shared "github.com/stridehq/stride/pkg"
	"github.com/stridehq/stride/pkg/types"
)

// --- Mock Activity Store ---

type MockActivityStore struct {
	GetActivitiesFunc func(ctx context.Context, filter shared.ActivityFilter) ([]types.ActivitySummary, error)
	GetActivityFunc   func(ctx context.Context, id string) (*types.ActivitySummary, error)
}

func (m *MockActivityStore) GetActivities(ctx context.Context, filter shared.ActivityFilter) ([]types.ActivitySummary, error) {
	if m.GetActivitiesFunc != nil {
		return m.GetActivitiesFunc(ctx, filter)
	}
	return nil, nil
}

func (m *MockActivityStore) GetActivity(ctx context.Context, id string) (*types.ActivitySummary, error) {
	if m.GetActivityFunc != nil {
		return m.GetActivityFunc(ctx, id)
	}
	return nil, shared.ErrNotFound
}

// --- Mock Stream Store ---

type MockStreamStore struct {
	GetTraceFunc func(ctx context.Context, activityID string) ([]types.StreamSample, error)
}

func (m *MockStreamStore) GetTrace(ctx context.Context, activityID string) ([]types.StreamSample, error) {
	if m.GetTraceFunc != nil {
		return m.GetTraceFunc(ctx, activityID)
	}
	return nil, nil
}

// --- In-Memory Record Store ---

// InMemoryRecordStore implements the conditional-upsert contract in memory.
// UpsertCalls counts every Upsert attempt, applied or not.
type InMemoryRecordStore struct {
	mu          sync.Mutex
	records     map[string]types.Record
	UpsertCalls int
}

func NewInMemoryRecordStore() *InMemoryRecordStore {
	return &InMemoryRecordStore{records: make(map[string]types.Record)}
}

func (s *InMemoryRecordStore) Get(ctx context.Context, targetKey string) (*types.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[targetKey]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (s *InMemoryRecordStore) Upsert(ctx context.Context, record types.Record) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.UpsertCalls++

	existing, ok := s.records[record.TargetKey]
	if ok && existing.TimeSeconds <= record.TimeSeconds {
		return false, nil
	}
	s.records[record.TargetKey] = record
	return true, nil
}

func (s *InMemoryRecordStore) Count(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records), nil
}
