package app

import (
	"github.com/bethropolis/quicknotepad/internal/event"
	"github.com/bethropolis/quicknotepad/internal/plugin"
)

// Ensure editorAPI implements plugin.EditorAPI
var _ plugin.EditorAPI = (*editorAPI)(nil)

// editorAPI is the view of the App handed to plugins.
type editorAPI struct {
	app *App
}

func newEditorAPI(a *App) *editorAPI {
	return &editorAPI{app: a}
}

func (api *editorAPI) GetBufferLines() []string  { return api.app.editor.GetBuffer().Lines() }
func (api *editorAPI) GetBufferFilePath() string { return api.app.editor.GetBuffer().FilePath() }
func (api *editorAPI) IsBufferModified() bool    { return api.app.editor.IsModified() }

func (api *editorAPI) SaveBuffer() error {
	return api.app.editor.Save()
}

func (api *editorAPI) SubscribeEvent(eventType event.Type, handler event.Handler) {
	api.app.eventManager.Subscribe(eventType, handler)
}

func (api *editorAPI) SetStatusMessage(format string, args ...interface{}) {
	api.app.statusBar.SetTemporaryMessage(format, args...)
}

func (api *editorAPI) SetDocumentStats(lines, chars, words int) {
	api.app.statusBar.SetDocumentStats(lines, chars, words)
}

func (api *editorAPI) Post(fn func()) {
	api.app.post(fn)
}

func (api *editorAPI) GetPluginConfigValue(pluginName, key string) (interface{}, bool) {
	return api.app.cfg.PluginValue(pluginName, key)
}
