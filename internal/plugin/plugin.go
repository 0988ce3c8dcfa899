// Package plugin defines the extension interface of the editor and the
// manager that runs plugins through their lifecycle.
package plugin

import (
	"github.com/bethropolis/quicknotepad/internal/event"
)

// EditorAPI is what plugins may do to the editor. Every method must be
// called on the UI goroutine; a plugin running its own goroutine uses Post.
type EditorAPI interface {
	// --- Active document (read-only) ---
	GetBufferLines() []string
	GetBufferFilePath() string
	IsBufferModified() bool

	// SaveBuffer writes the active document to its file.
	SaveBuffer() error

	// --- Event bus ---
	SubscribeEvent(eventType event.Type, handler event.Handler)

	// --- Status bar ---
	SetStatusMessage(format string, args ...interface{})
	SetDocumentStats(lines, chars, words int)

	// Post runs fn on the UI goroutine. It returns without running fn once
	// the editor is shutting down.
	Post(fn func())

	// GetPluginConfigValue reads key from the [plugins.<name>] config table.
	GetPluginConfigValue(pluginName, key string) (interface{}, bool)
}

// Plugin defines the interface that all plugins must implement.
type Plugin interface {
	// Name returns the unique identifier name of the plugin.
	Name() string

	// Initialize is called once on startup, on the UI goroutine.
	// Used for reading config and subscribing to events.
	Initialize(api EditorAPI) error

	// Shutdown is called once when the editor is closing.
	Shutdown() error
}
