package testutil

import (
	"context"
	"sync"

	"github.com/ndewijer/Dollar-Trade-Tracker-Backend/internal/model"
)

// MockRemoteStore is an in-memory remotestore.Store for testing.
// It is safe for concurrent use since pushes run in parallel.
type MockRemoteStore struct {
	mu sync.Mutex

	// Records is returned by List.
	Records []model.Transaction
	// ListError is returned by List when set.
	ListError error
	// RejectAppend makes every Append fail.
	RejectAppend bool
	// RejectIDs makes Append fail for specific transaction IDs.
	RejectIDs map[string]bool

	// Appended records every transaction accepted by Append.
	Appended []model.Transaction
	// AppendCount tracks how many times Append was called.
	AppendCount int

	gate *appendGate
}

// appendGate holds one Append call open until released.
type appendGate struct {
	entered chan struct{}
	release chan struct{}
	once    sync.Once
}

// NewMockRemoteStore creates an empty mock store that accepts every append.
func NewMockRemoteStore() *MockRemoteStore {
	return &MockRemoteStore{RejectIDs: map[string]bool{}}
}

// List returns the configured records or error.
func (m *MockRemoteStore) List(_ context.Context) ([]model.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.ListError != nil {
		return nil, m.ListError
	}
	out := make([]model.Transaction, len(m.Records))
	copy(out, m.Records)
	return out, nil
}

// Append stores tx unless the mock is configured to reject it.
func (m *MockRemoteStore) Append(_ context.Context, tx model.Transaction) bool {
	m.mu.Lock()
	m.AppendCount++
	gate := m.gate
	m.gate = nil
	m.mu.Unlock()

	if gate != nil {
		close(gate.entered)
		<-gate.release
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.RejectAppend || m.RejectIDs[tx.ID] {
		return false
	}
	m.Appended = append(m.Appended, tx)
	return true
}

// WithRecords configures the history returned by List.
func (m *MockRemoteStore) WithRecords(records ...model.Transaction) *MockRemoteStore {
	m.Records = records
	return m
}

// WithListError configures List to fail.
func (m *MockRemoteStore) WithListError(err error) *MockRemoteStore {
	m.ListError = err
	return m
}

// Rejecting makes every Append fail.
func (m *MockRemoteStore) Rejecting() *MockRemoteStore {
	m.RejectAppend = true
	return m
}

// Accepting makes every Append succeed again.
func (m *MockRemoteStore) Accepting() *MockRemoteStore {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RejectAppend = false
	m.RejectIDs = map[string]bool{}
	return m
}

// HoldNextAppend makes the next Append block until release is called. entered
// is closed once that Append has started. Later calls are not held.
func (m *MockRemoteStore) HoldNextAppend() (entered <-chan struct{}, release func()) {
	g := &appendGate{entered: make(chan struct{}), release: make(chan struct{})}

	m.mu.Lock()
	m.gate = g
	m.mu.Unlock()

	return g.entered, func() { g.once.Do(func() { close(g.release) }) }
}

// AppendedIDs returns the IDs accepted so far, in call order.
func (m *MockRemoteStore) AppendedIDs() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	ids := make([]string, len(m.Appended))
	for i, tx := range m.Appended {
		ids[i] = tx.ID
	}
	return ids
}

// Calls returns how many times Append was called.
func (m *MockRemoteStore) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.AppendCount
}

// MockGenerator is a summary.Generator returning canned output.
type MockGenerator struct {
	Text       string
	Err        error
	LastPrompt string
}

// Generate records the prompt and returns the configured text or error.
func (g *MockGenerator) Generate(_ context.Context, prompt string) (string, error) {
	g.LastPrompt = prompt
	return g.Text, g.Err
}
