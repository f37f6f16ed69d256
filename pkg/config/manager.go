package config

import (
	"fmt"
	"sort"
	"sync"
)

// Section is one named group of settings persisted through a Store.
type Section interface {
	ID() string
	Title() string
	Description() string

	// Data returns the section's settings as plain values
	Data() map[string]any

	// SetData applies settings; unknown keys are ignored
	SetData(data map[string]any) error

	Validate() error
	Reset()
}

// Manager binds registered sections to a Store.
type Manager struct {
	store    Store
	sections map[string]Section
	mu       sync.RWMutex
}

// NewManager creates a manager backed by store.
func NewManager(store Store) *Manager {
	return &Manager{
		store:    store,
		sections: make(map[string]Section),
	}
}

// RegisterSection adds a section. IDs must be unique.
func (m *Manager) RegisterSection(section Section) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.sections[section.ID()]; exists {
		return fmt.Errorf("section %q already registered", section.ID())
	}
	m.sections[section.ID()] = section
	return nil
}

// GetSection returns the section registered under id.
func (m *Manager) GetSection(id string) (Section, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	section, ok := m.sections[id]
	return section, ok
}

// GetSections returns every registered section ordered by ID.
func (m *Manager) GetSections() []Section {
	m.mu.RLock()
	defer m.mu.RUnlock()

	sections := make([]Section, 0, len(m.sections))
	for _, section := range m.sections {
		sections = append(sections, section)
	}
	sort.Slice(sections, func(i, j int) bool {
		return sections[i].ID() < sections[j].ID()
	})
	return sections
}

// LoadAll copies stored data into every section and validates it. A
// section whose stored data is invalid is reset to its defaults.
func (m *Manager) LoadAll() error {
	for _, section := range m.GetSections() {
		data, err := m.store.GetSection(section.ID())
		if err != nil {
			return fmt.Errorf("failed to load section %q: %w", section.ID(), err)
		}
		if len(data) == 0 {
			continue
		}
		if err := section.SetData(data); err != nil {
			return fmt.Errorf("failed to apply section %q: %w", section.ID(), err)
		}
		if err := section.Validate(); err != nil {
			section.Reset()
			return fmt.Errorf("invalid section %q: %w", section.ID(), err)
		}
	}
	return nil
}

// SaveAll validates every section and writes them to the store.
func (m *Manager) SaveAll() error {
	for _, section := range m.GetSections() {
		if err := section.Validate(); err != nil {
			return fmt.Errorf("invalid section %q: %w", section.ID(), err)
		}
		if err := m.store.SetSection(section.ID(), section.Data()); err != nil {
			return fmt.Errorf("failed to store section %q: %w", section.ID(), err)
		}
	}
	return m.store.Save()
}
