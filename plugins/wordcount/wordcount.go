// Package wordcount keeps the document statistics in the status bar current.
package wordcount

import (
	"strings"

	"github.com/bethropolis/quicknotepad/internal/event"
	"github.com/bethropolis/quicknotepad/internal/plugin"
	"github.com/bethropolis/quicknotepad/internal/utils"
)

// Ensure WordCount implements plugin.Plugin
var _ plugin.Plugin = (*WordCount)(nil)

// Stats describes a document.
type Stats struct {
	Lines int
	Chars int // grapheme clusters, line breaks excluded
	Words int
}

// WordCount recounts the active document whenever it changes.
type WordCount struct {
	api plugin.EditorAPI
}

// New creates a new instance of the WordCount plugin.
func New() *WordCount {
	return &WordCount{}
}

// Name returns the unique name of the plugin.
func (p *WordCount) Name() string {
	return "wordcount"
}

// Initialize subscribes to every event after which the active document
// may read differently.
func (p *WordCount) Initialize(api plugin.EditorAPI) error {
	p.api = api
	for _, t := range []event.Type{
		event.TypeAppReady,
		event.TypeBufferLoaded,
		event.TypeBufferModified,
		event.TypeTabSwitched,
	} {
		api.SubscribeEvent(t, p.recount)
	}
	p.update()
	return nil
}

// Shutdown performs cleanup (nothing needed for this simple plugin).
func (p *WordCount) Shutdown() error {
	return nil
}

func (p *WordCount) recount(event.Event) bool {
	p.update()
	return false
}

func (p *WordCount) update() {
	s := Count(p.api.GetBufferLines())
	p.api.SetDocumentStats(s.Lines, s.Chars, s.Words)
}

// Count computes the statistics of lines.
func Count(lines []string) Stats {
	s := Stats{Lines: len(lines)}
	for _, line := range lines {
		s.Chars += utils.GraphemeLen(line)
		s.Words += len(strings.Fields(line))
	}
	return s
}
