package action

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// ErrBindingNotFound is returned when a requested binding cannot be found.
var ErrBindingNotFound = errors.New("binding not found")

// Manager loads and holds action bindings from a directory of JSON
// manifests.
type Manager struct {
	bindingDir string
	bindings   map[string]*Binding
	mu         sync.RWMutex
}

// NewManager creates a new Manager rooted at the given directory.
func NewManager(bindingDir string) *Manager {
	return &Manager{
		bindingDir: bindingDir,
		bindings:   make(map[string]*Binding),
	}
}

// Discover scans the binding directory for *.json manifests and loads
// them, replacing any previously loaded set. A missing directory is
// not an error.
func (m *Manager) Discover() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.bindings = make(map[string]*Binding)

	info, err := os.Stat(m.bindingDir)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return nil
	}

	entries, err := os.ReadDir(m.bindingDir)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		path := filepath.Join(m.bindingDir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			continue // Skip bindings we can't read
		}

		var binding Binding
		if err := json.Unmarshal(data, &binding); err != nil {
			continue // Skip bindings with invalid JSON
		}
		if binding.Name == "" || binding.Command == "" {
			continue
		}
		binding.Path = path

		m.bindings[binding.Name] = &binding
	}

	return nil
}

// Get returns a binding by name.
func (m *Manager) Get(name string) (*Binding, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	binding, ok := m.bindings[name]
	if !ok {
		return nil, ErrBindingNotFound
	}

	return binding, nil
}

// List returns all loaded bindings.
func (m *Manager) List() []*Binding {
	m.mu.RLock()
	defer m.mu.RUnlock()

	bindings := make([]*Binding, 0, len(m.bindings))
	for _, b := range m.bindings {
		bindings = append(bindings, b)
	}

	return bindings
}

// BindingDir returns the binding directory path.
func (m *Manager) BindingDir() string {
	return m.bindingDir
}
