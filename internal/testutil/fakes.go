package testutil

import (
	"errors"
	"sync"

	"todoterm/internal/notify"
	"todoterm/internal/session"
)

// ErrNotFound is returned when a resource is not found.
var ErrNotFound = errors.New("not found")

// MemSession is an in-memory SessionStore for testing.
type MemSession struct {
	mu       sync.Mutex
	token    string
	snapshot []byte

	// ClearCalls counts how often the store was wiped.
	ClearCalls int
	// SnapshotWrites counts how often a snapshot was persisted.
	SnapshotWrites int
}

// NewMemSession creates a store holding the given credential.
// An empty token means signed out.
func NewMemSession(token string) *MemSession {
	return &MemSession{token: token}
}

func (m *MemSession) Credential() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.token == "" {
		return "", session.ErrNoCredential
	}
	return m.token, nil
}

func (m *MemSession) SetCredential(token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	return nil
}

func (m *MemSession) SaveSnapshot(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snapshot = append([]byte(nil), data...)
	m.SnapshotWrites++
	return nil
}

func (m *MemSession) Snapshot() ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshot, nil
}

func (m *MemSession) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	m.snapshot = nil
	m.ClearCalls++
	return nil
}

// FakeNavigator records go-to-authentication signals.
type FakeNavigator struct {
	mu    sync.Mutex
	Calls int
}

func (n *FakeNavigator) GotoLogin() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Calls++
}

// FakeNotifier records notices.
type FakeNotifier struct {
	mu      sync.Mutex
	Notices []notify.Notice
}

func (n *FakeNotifier) Notify(notice notify.Notice) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Notices = append(n.Notices, notice)
}
