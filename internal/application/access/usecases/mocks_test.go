package usecases

import (
	"context"
	"errors"
	"sync"

	"keygate/internal/domain/mirror"
)

type mockMirrorStore struct {
	WriteFunc   func(ctx context.Context, bucket mirror.Bucket, id uint, name string, rec mirror.Record) bool
	ReadFunc    func(ctx context.Context, bucket mirror.Bucket, id uint, name string) (*mirror.Snapshot, bool)
	DeleteFunc  func(ctx context.Context, bucket mirror.Bucket, id uint, name string) bool
	ListAllFunc func(ctx context.Context, bucket mirror.Bucket) []*mirror.Snapshot

	mu      sync.Mutex
	writes  int
	deletes int
}

func (m *mockMirrorStore) Write(ctx context.Context, bucket mirror.Bucket, id uint, name string, rec mirror.Record) bool {
	m.mu.Lock()
	m.writes++
	m.mu.Unlock()
	if m.WriteFunc != nil {
		return m.WriteFunc(ctx, bucket, id, name, rec)
	}
	return true
}

func (m *mockMirrorStore) Read(ctx context.Context, bucket mirror.Bucket, id uint, name string) (*mirror.Snapshot, bool) {
	if m.ReadFunc != nil {
		return m.ReadFunc(ctx, bucket, id, name)
	}
	return nil, false
}

func (m *mockMirrorStore) Delete(ctx context.Context, bucket mirror.Bucket, id uint, name string) bool {
	m.mu.Lock()
	m.deletes++
	m.mu.Unlock()
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, bucket, id, name)
	}
	return true
}

func (m *mockMirrorStore) ListAll(ctx context.Context, bucket mirror.Bucket) []*mirror.Snapshot {
	if m.ListAllFunc != nil {
		return m.ListAllFunc(ctx, bucket)
	}
	return nil
}

func (m *mockMirrorStore) Index(ctx context.Context, bucket mirror.Bucket) *mirror.Index {
	return &mirror.Index{}
}

func (m *mockMirrorStore) writeCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}

func (m *mockMirrorStore) deleteCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.deletes
}

type failingLocker struct{}

func (failingLocker) Acquire(ctx context.Context, key string) (func(), error) {
	return nil, errors.New("redis: connection refused")
}
