package config

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubSection is a minimal Section holding one string value.
type stubSection struct {
	id      string
	value   string
	invalid bool
	resets  int
}

func (s *stubSection) ID() string          { return s.id }
func (s *stubSection) Title() string       { return s.id }
func (s *stubSection) Description() string { return "" }

func (s *stubSection) Data() map[string]any {
	return map[string]any{"value": s.value}
}

func (s *stubSection) SetData(data map[string]any) error {
	if v, ok := data["value"].(string); ok {
		s.value = v
	}
	return nil
}

func (s *stubSection) Validate() error {
	if s.invalid || s.value == "bad" {
		return errors.New("bad value")
	}
	return nil
}

func (s *stubSection) Reset() {
	s.resets++
	s.value = ""
}

func newTestManager(t *testing.T) (*Manager, *FileStore) {
	t.Helper()
	store, err := NewFileStore(filepath.Join(t.TempDir(), "config.json"))
	require.NoError(t, err)
	return NewManager(store), store
}

func TestManager_RegisterSection(t *testing.T) {
	manager, _ := newTestManager(t)

	require.NoError(t, manager.RegisterSection(&stubSection{id: "b"}))
	require.NoError(t, manager.RegisterSection(&stubSection{id: "a"}))
	assert.Error(t, manager.RegisterSection(&stubSection{id: "a"}))

	sections := manager.GetSections()
	require.Len(t, sections, 2)
	assert.Equal(t, "a", sections[0].ID())
	assert.Equal(t, "b", sections[1].ID())

	_, ok := manager.GetSection("missing")
	assert.False(t, ok)
}

func TestManager_SaveAndLoad(t *testing.T) {
	manager, store := newTestManager(t)
	section := &stubSection{id: "stub", value: "hello"}
	require.NoError(t, manager.RegisterSection(section))
	require.NoError(t, manager.SaveAll())

	reloadedStore, err := NewFileStore(store.path)
	require.NoError(t, err)
	reloaded := NewManager(reloadedStore)
	fresh := &stubSection{id: "stub"}
	require.NoError(t, reloaded.RegisterSection(fresh))
	require.NoError(t, reloaded.LoadAll())

	assert.Equal(t, "hello", fresh.value)
}

func TestManager_LoadAllResetsInvalidSection(t *testing.T) {
	manager, store := newTestManager(t)
	require.NoError(t, store.SetSection("stub", map[string]any{"value": "bad"}))

	section := &stubSection{id: "stub"}
	require.NoError(t, manager.RegisterSection(section))

	err := manager.LoadAll()
	assert.ErrorContains(t, err, `invalid section "stub"`)
	assert.Equal(t, 1, section.resets)
	assert.Empty(t, section.value)
}

func TestManager_SaveAllRejectsInvalidSection(t *testing.T) {
	manager, store := newTestManager(t)
	require.NoError(t, manager.RegisterSection(&stubSection{id: "stub", invalid: true}))

	assert.Error(t, manager.SaveAll())

	data, err := store.GetSection("stub")
	require.NoError(t, err)
	assert.Empty(t, data)
}
