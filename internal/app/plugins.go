package app

import (
	"github.com/bethropolis/quicknotepad/internal/logger"
	"github.com/bethropolis/quicknotepad/internal/plugin"
	"github.com/bethropolis/quicknotepad/plugins/autosave"
	"github.com/bethropolis/quicknotepad/plugins/wordcount"
)

// builtinPlugins are registered on every start.
func builtinPlugins() []plugin.Plugin {
	return []plugin.Plugin{
		wordcount.New(),
		autosave.New(),
	}
}

func (a *App) loadPlugins() {
	a.pluginManager = plugin.NewManager()
	for _, p := range builtinPlugins() {
		if err := a.pluginManager.Register(p); err != nil {
			logger.Warnf("App: %v", err)
		}
	}
	a.pluginManager.InitializePlugins(newEditorAPI(a))
}
