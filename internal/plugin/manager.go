package plugin

import (
	"fmt"
	"sort"
	"sync"

	"github.com/bethropolis/quicknotepad/internal/logger"
)

// Manager handles the registration, initialization, and lifecycle of plugins.
type Manager struct {
	mu          sync.RWMutex
	plugins     map[string]Plugin
	initialized []Plugin // in initialization order
}

// NewManager creates a new plugin manager.
func NewManager() *Manager {
	return &Manager{
		plugins: make(map[string]Plugin),
	}
}

// Register adds a plugin instance to the manager.
// This should be called before InitializePlugins.
func (m *Manager) Register(plugin Plugin) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	name := plugin.Name()
	if name == "" {
		return fmt.Errorf("plugin registration failed: plugin name cannot be empty")
	}
	if _, exists := m.plugins[name]; exists {
		return fmt.Errorf("plugin registration failed: plugin named '%s' already registered", name)
	}

	m.plugins[name] = plugin
	logger.DebugTagf("plugin", "Plugin Manager: Registered plugin '%s'", name)
	return nil
}

// InitializePlugins calls Initialize on every registered plugin in name
// order. A plugin that fails to initialize is logged and skipped at shutdown.
func (m *Manager) InitializePlugins(api EditorAPI) {
	m.mu.RLock()
	names := make([]string, 0, len(m.plugins))
	for name := range m.plugins {
		names = append(names, name)
	}
	m.mu.RUnlock()
	sort.Strings(names)

	logger.Debugf("Plugin Manager: Initializing %d plugins...", len(names))
	var ok []Plugin
	for _, name := range names {
		p, _ := m.GetPlugin(name)
		if err := p.Initialize(api); err != nil {
			logger.Errorf("Plugin Manager: initializing plugin '%s': %v", name, err)
			continue
		}
		ok = append(ok, p)
	}

	m.mu.Lock()
	m.initialized = ok
	m.mu.Unlock()
}

// ShutdownPlugins calls Shutdown on the initialized plugins in reverse order.
func (m *Manager) ShutdownPlugins() {
	m.mu.Lock()
	toShutdown := m.initialized
	m.initialized = nil
	m.mu.Unlock()

	for i := len(toShutdown) - 1; i >= 0; i-- {
		p := toShutdown[i]
		if err := p.Shutdown(); err != nil {
			logger.Errorf("Plugin Manager: shutting down plugin '%s': %v", p.Name(), err)
		}
	}
}

// GetPlugin returns a registered plugin by name.
func (m *Manager) GetPlugin(name string) (Plugin, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, exists := m.plugins[name]
	return p, exists
}
