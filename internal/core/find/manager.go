// Package find implements case-insensitive literal search over a buffer.
package find

import (
	"strings"
	"sync"

	"github.com/rivo/uniseg"

	"github.com/bethropolis/quicknotepad/internal/buffer"
	"github.com/bethropolis/quicknotepad/internal/logger"
	"github.com/bethropolis/quicknotepad/internal/types"
)

// Match is one occurrence of the query, in grapheme units.
type Match struct {
	Line int
	Col  int
	Len  int
}

// Start returns the position of the first grapheme of the match.
func (m Match) Start() types.Position { return types.Position{Line: m.Line, Col: m.Col} }

// End returns the position just past the match.
func (m Match) End() types.Position { return types.Position{Line: m.Line, Col: m.Col + m.Len} }

// EditorInterface defines methods the find manager needs from the editor.
type EditorInterface interface {
	GetBuffer() buffer.Buffer
}

// Manager holds the active query, its matches and the current match.
type Manager struct {
	editor  EditorInterface
	mutex   sync.RWMutex
	query   string
	matches []Match
	current int
}

// NewManager creates a find manager.
func NewManager(editor EditorInterface) *Manager {
	return &Manager{editor: editor, current: -1}
}

// FindAll returns every occurrence of query in the buffer, case-insensitively.
// Overlapping occurrences are all reported.
func FindAll(buf buffer.Buffer, query string) []Match {
	if query == "" {
		return nil
	}
	needle := splitClusters(query)
	var matches []Match
	for i, line := range buf.Lines() {
		hay := splitClusters(line)
		for col := 0; col+len(needle) <= len(hay); col++ {
			if clustersEqualFold(hay[col:col+len(needle)], needle) {
				matches = append(matches, Match{Line: i, Col: col, Len: len(needle)})
			}
		}
	}
	return matches
}

func splitClusters(s string) []string {
	out := make([]string, 0, len(s))
	state := -1
	for len(s) > 0 {
		var cluster string
		cluster, s, _, state = uniseg.StepString(s, state)
		out = append(out, cluster)
	}
	return out
}

func clustersEqualFold(a, b []string) bool {
	for i := range a {
		if !strings.EqualFold(a[i], b[i]) {
			return false
		}
	}
	return true
}

// closest returns the index of the first match at or after pos, wrapping to 0.
func closest(matches []Match, pos types.Position) int {
	for i, m := range matches {
		if !m.Start().Less(pos) {
			return i
		}
	}
	return 0
}

// Search runs query against the buffer and makes the match closest to from
// (at or after it, wrapping) current. It returns the number of matches.
func (m *Manager) Search(query string, from types.Position) int {
	matches := FindAll(m.editor.GetBuffer(), query)

	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.query = query
	m.matches = matches
	m.current = -1
	if len(matches) > 0 {
		m.current = closest(matches, from)
	}
	logger.DebugTagf("find", "FindManager: %d matches for %q", len(matches), query)
	return len(matches)
}

// Refresh re-runs the active query, keeping the current match near from.
func (m *Manager) Refresh(from types.Position) int {
	m.mutex.RLock()
	query := m.query
	m.mutex.RUnlock()
	if query == "" {
		return 0
	}
	return m.Search(query, from)
}

func (m *Manager) step(delta int) (Match, bool) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	n := len(m.matches)
	if n == 0 {
		return Match{}, false
	}
	m.current = ((m.current+delta)%n + n) % n
	return m.matches[m.current], true
}

// Next advances to the following match, wrapping past the last one.
func (m *Manager) Next() (Match, bool) { return m.step(1) }

// Prev moves to the preceding match, wrapping past the first one.
func (m *Manager) Prev() (Match, bool) { return m.step(-1) }

// Current returns the current match, its 0-based index and the match count.
func (m *Manager) Current() (match Match, index, total int, ok bool) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	if m.current < 0 || m.current >= len(m.matches) {
		return Match{}, -1, len(m.matches), false
	}
	return m.matches[m.current], m.current, len(m.matches), true
}

// Query returns the active query.
func (m *Manager) Query() string {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return m.query
}

// Active reports whether a query is set.
func (m *Manager) Active() bool {
	return m.Query() != ""
}

// Clear drops the query and its matches.
func (m *Manager) Clear() {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if m.query != "" {
		logger.DebugTagf("find", "FindManager: cleared %q", m.query)
	}
	m.query = ""
	m.matches = nil
	m.current = -1
}

// HighlightRegions returns one region per match; the current match is
// marked HighlightSearchCurrent.
func (m *Manager) HighlightRegions() []types.HighlightRegion {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	regions := make([]types.HighlightRegion, 0, len(m.matches))
	for i, match := range m.matches {
		kind := types.HighlightSearch
		if i == m.current {
			kind = types.HighlightSearchCurrent
		}
		regions = append(regions, types.HighlightRegion{Start: match.Start(), End: match.End(), Type: kind})
	}
	return regions
}
