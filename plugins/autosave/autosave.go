// Package autosave periodically saves the active document when it has
// unsaved changes and a file name. It is off unless enabled in the
// [plugins.autosave] config table.
package autosave

import (
	"sync"
	"time"

	"github.com/bethropolis/quicknotepad/internal/logger"
	"github.com/bethropolis/quicknotepad/internal/plugin"
)

// Ensure AutoSave implements plugin.Plugin
var _ plugin.Plugin = (*AutoSave)(nil)

const (
	defaultEnabled  = false
	defaultInterval = 1 * time.Minute
)

// AutoSave plugin automatically saves modified buffers.
type AutoSave struct {
	api plugin.EditorAPI

	enabled  bool
	interval time.Duration

	stopChan chan struct{}
	wg       sync.WaitGroup
}

// New creates a new instance of the AutoSave plugin.
func New() *AutoSave {
	return &AutoSave{
		enabled:  defaultEnabled,
		interval: defaultInterval,
	}
}

// Name returns the unique name of the plugin.
func (p *AutoSave) Name() string {
	return "autosave"
}

// Initialize reads configuration and starts the auto-save loop if enabled.
func (p *AutoSave) Initialize(api plugin.EditorAPI) error {
	p.api = api
	p.enabled = p.boolOption("enabled", p.enabled)
	p.interval = p.durationOption("interval", p.interval)
	logger.Infof("%s initialized. Enabled: %v, Interval: %v", p.Name(), p.enabled, p.interval)

	if p.enabled {
		p.stopChan = make(chan struct{})
		p.wg.Add(1)
		go p.saverLoop(p.interval)
	}
	return nil
}

func (p *AutoSave) boolOption(key string, def bool) bool {
	v, ok := p.api.GetPluginConfigValue(p.Name(), key)
	if !ok {
		return def
	}
	b, isBool := v.(bool)
	if !isBool {
		logger.Warnf("%s: '%s' must be a boolean, got %T; using %v", p.Name(), key, v, def)
		return def
	}
	return b
}

// durationOption parses a Go duration string such as "30s" or "2m".
func (p *AutoSave) durationOption(key string, def time.Duration) time.Duration {
	v, ok := p.api.GetPluginConfigValue(p.Name(), key)
	if !ok {
		return def
	}
	str, isStr := v.(string)
	if !isStr {
		logger.Warnf("%s: '%s' must be a duration string, got %T; using %v", p.Name(), key, v, def)
		return def
	}
	d, err := time.ParseDuration(str)
	if err != nil || d <= 0 {
		logger.Warnf("%s: invalid '%s' %q; using %v", p.Name(), key, str, def)
		return def
	}
	return d
}

// Shutdown signals the saver goroutine to stop and waits for it.
func (p *AutoSave) Shutdown() error {
	if p.stopChan != nil {
		close(p.stopChan)
		p.wg.Wait()
		p.stopChan = nil
	}
	return nil
}

// saverLoop ticks on its own goroutine and hands each save to the UI goroutine.
func (p *AutoSave) saverLoop(interval time.Duration) {
	defer p.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			p.api.Post(p.saveIfModified)
		case <-p.stopChan:
			logger.Debugf("%s: Received stop signal, exiting saver loop.", p.Name())
			return
		}
	}
}

// saveIfModified saves the active document. Untitled documents are skipped.
func (p *AutoSave) saveIfModified() {
	if !p.api.IsBufferModified() {
		return
	}
	filePath := p.api.GetBufferFilePath()
	if filePath == "" {
		logger.Debugf("%s: Buffer is modified but has no name, skipping auto-save.", p.Name())
		return
	}
	if err := p.api.SaveBuffer(); err != nil {
		logger.Errorf("%s: saving '%s' failed: %v", p.Name(), filePath, err)
		p.api.SetStatusMessage("Auto-save failed: %v", err)
		return
	}
	logger.Infof("%s: saved '%s'", p.Name(), filePath)
	p.api.SetStatusMessage("Auto-saved %s", filePath)
}
