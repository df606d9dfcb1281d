package sheets

import (
	"context"
	"sync"

	"github.com/gulshanb/expenseman/internal/service"
)

// MockFetcher is a mock implementation of service.TabFetcher for testing.
type MockFetcher struct {
	Tabs       map[string][][]string
	Errs       map[string]error
	TestResult service.TestResult
	FetchCalls []string
	mu         sync.Mutex
}

// NewMockFetcher creates a mock fetcher serving the given tab data.
func NewMockFetcher(tabs map[string][][]string) *MockFetcher {
	return &MockFetcher{
		Tabs:       tabs,
		Errs:       make(map[string]error),
		TestResult: service.TestResult{OK: true, Message: "mock connection ok"},
	}
}

// FetchTab implements service.TabFetcher.
func (m *MockFetcher) FetchTab(_ context.Context, tab string) ([][]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.FetchCalls = append(m.FetchCalls, tab)
	if err := m.Errs[tab]; err != nil {
		return nil, err
	}
	return m.Tabs[tab], nil
}

// TestConnection implements service.TabFetcher.
func (m *MockFetcher) TestConnection(_ context.Context) service.TestResult {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.TestResult
}

// SetError configures a per-tab fetch error.
func (m *MockFetcher) SetError(tab string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Errs[tab] = err
}

// CallCount returns how many fetches have been issued.
func (m *MockFetcher) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.FetchCalls)
}
