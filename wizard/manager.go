package wizard

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned for unknown wizard ids.
var ErrNotFound = errors.New("wizard not found")

// Manager keeps the wizards of this process in memory, keyed by id.
type Manager struct {
	svc  DepositService
	opts Options

	wizards map[string]*Wizard
	mu      sync.RWMutex
}

// NewManager returns an empty manager. opts is the template for every wizard;
// CustomerKey is the fallback when Create gets none.
func NewManager(svc DepositService, opts Options) *Manager {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Manager{
		svc:     svc,
		opts:    opts,
		wizards: make(map[string]*Wizard),
	}
}

// Create starts a wizard for customerKey and loads its account catalog. A
// failed catalog load is returned along with the wizard, which stays usable.
func (m *Manager) Create(ctx context.Context, customerKey string) (*Wizard, error) {
	opts := m.opts
	if customerKey != "" {
		opts.CustomerKey = customerKey
	}
	w := New(uuid.NewString(), m.svc, opts)

	m.mu.Lock()
	m.wizards[w.ID()] = w
	m.mu.Unlock()

	if err := w.LoadAccounts(ctx); err != nil {
		return w, err
	}
	return w, nil
}

// Get retrieves an existing wizard.
func (m *Manager) Get(id string) (*Wizard, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	w, ok := m.wizards[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return w, nil
}

// Delete closes and removes a wizard.
func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	w, ok := m.wizards[id]
	delete(m.wizards, id)
	m.mu.Unlock()

	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	w.Close()
	return nil
}

// Len returns the number of live wizards.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.wizards)
}

// CleanupExpired closes wizards created more than maxAge ago.
func (m *Manager) CleanupExpired(maxAge time.Duration) int {
	now := m.opts.Now()

	m.mu.Lock()
	var expired []*Wizard
	for id, w := range m.wizards {
		if now.Sub(w.createdAt) > maxAge {
			expired = append(expired, w)
			delete(m.wizards, id)
		}
	}
	m.mu.Unlock()

	for _, w := range expired {
		w.Close()
	}
	return len(expired)
}

// CloseAll closes every wizard. Used on shutdown.
func (m *Manager) CloseAll() {
	m.mu.Lock()
	all := m.wizards
	m.wizards = make(map[string]*Wizard)
	m.mu.Unlock()

	for _, w := range all {
		w.Close()
	}
}
