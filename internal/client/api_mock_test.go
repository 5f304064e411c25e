package client

import (
	"context"
	"sync"
)

// apiMock is a hand-written mock of API.
type apiMock struct {
	ListFunc   func(ctx context.Context) ([]Record, error)
	CreateFunc func(ctx context.Context, d Draft) (*Record, error)
	UpdateFunc func(ctx context.Context, id string, d Draft) (*Record, error)
	DeleteFunc func(ctx context.Context, id string) error

	mu          sync.RWMutex
	listCalls   int
	createCalls []Draft
	updateCalls []struct {
		ID    string
		Draft Draft
	}
	deleteCalls []string
}

func (m *apiMock) List(ctx context.Context) ([]Record, error) {
	if m.ListFunc == nil {
		panic("apiMock.ListFunc: method is nil but API.List was just called")
	}
	m.mu.Lock()
	m.listCalls++
	m.mu.Unlock()
	return m.ListFunc(ctx)
}

func (m *apiMock) Create(ctx context.Context, d Draft) (*Record, error) {
	if m.CreateFunc == nil {
		panic("apiMock.CreateFunc: method is nil but API.Create was just called")
	}
	m.mu.Lock()
	m.createCalls = append(m.createCalls, d)
	m.mu.Unlock()
	return m.CreateFunc(ctx, d)
}

func (m *apiMock) Update(ctx context.Context, id string, d Draft) (*Record, error) {
	if m.UpdateFunc == nil {
		panic("apiMock.UpdateFunc: method is nil but API.Update was just called")
	}
	m.mu.Lock()
	m.updateCalls = append(m.updateCalls, struct {
		ID    string
		Draft Draft
	}{id, d})
	m.mu.Unlock()
	return m.UpdateFunc(ctx, id, d)
}

func (m *apiMock) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc == nil {
		panic("apiMock.DeleteFunc: method is nil but API.Delete was just called")
	}
	m.mu.Lock()
	m.deleteCalls = append(m.deleteCalls, id)
	m.mu.Unlock()
	return m.DeleteFunc(ctx, id)
}

func (m *apiMock) ListCalls() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.listCalls
}

func (m *apiMock) CreateCalls() []Draft {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.createCalls
}

func (m *apiMock) UpdateCalls() []struct {
	ID    string
	Draft Draft
} {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.updateCalls
}

func (m *apiMock) DeleteCalls() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.deleteCalls
}
