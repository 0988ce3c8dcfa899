// Package tabs multiplexes several documents over one editor. The editor
// always holds the active tab's live state; every switch stores it back
// into the tab slot before loading the target.
package tabs

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/bethropolis/quicknotepad/internal/buffer"
	"github.com/bethropolis/quicknotepad/internal/core"
	"github.com/bethropolis/quicknotepad/internal/core/history"
	"github.com/bethropolis/quicknotepad/internal/event"
	"github.com/bethropolis/quicknotepad/internal/logger"
	"github.com/bethropolis/quicknotepad/internal/types"
)

// DefaultMaxTabs is used when Options.MaxTabs is not positive.
const DefaultMaxTabs = 10

// ErrNoSuchTab is returned when a tab number does not name an open tab.
var ErrNoSuchTab = errors.New("tabs: no such tab")

// Host is the editor the active tab lives in.
type Host interface {
	State() core.State
	LoadState(s core.State)
}

// Tab is one open document.
type Tab struct {
	Buffer   buffer.Buffer
	FileType string
	Cursor   types.Position
	Scroll   int
	History  *history.Manager
}

// FilePath returns the file the tab is bound to, or "".
func (t *Tab) FilePath() string { return t.Buffer.FilePath() }

// Modified reports unsaved changes.
func (t *Tab) Modified() bool { return t.Buffer.IsModified() }

// Name is the label shown in the tab line.
func (t *Tab) Name() string {
	if p := t.FilePath(); p != "" {
		return filepath.Base(p)
	}
	return "untitled"
}

func (t *Tab) state() core.State {
	return core.State{Buffer: t.Buffer, Cursor: t.Cursor, Scroll: t.Scroll, History: t.History}
}

// Options configures a Manager.
type Options struct {
	MaxTabs int
	// SessionPath is where the tab session is persisted. Empty disables persistence.
	SessionPath string
	// NewHistory creates the history of a new tab.
	NewHistory func() *history.Manager
	Events     *event.Manager
}

// Manager owns the tab list and the active index.
type Manager struct {
	host        Host
	tabs        []*Tab
	active      int
	maxTabs     int
	sessionPath string
	newHistory  func() *history.Manager
	events      *event.Manager
}

// NewManager creates a manager whose single tab is the host's current document.
func NewManager(host Host, opts Options) *Manager {
	if opts.MaxTabs <= 0 {
		opts.MaxTabs = DefaultMaxTabs
	}
	if opts.NewHistory == nil {
		opts.NewHistory = func() *history.Manager { return history.NewManager(history.DefaultMaxHistory) }
	}
	m := &Manager{
		host:        host,
		maxTabs:     opts.MaxTabs,
		sessionPath: opts.SessionPath,
		newHistory:  opts.NewHistory,
		events:      opts.Events,
	}
	s := host.State()
	if s.History == nil {
		s.History = m.newHistory()
	}
	first := &Tab{Buffer: s.Buffer, Cursor: s.Cursor, Scroll: s.Scroll, History: s.History}
	first.FileType = DetectFileType(first.FilePath(), first.Buffer.Bytes())
	m.tabs = []*Tab{first}
	return m
}

// Tabs returns the open tabs in display order.
func (m *Manager) Tabs() []*Tab {
	out := make([]*Tab, len(m.tabs))
	copy(out, m.tabs)
	return out
}

func (m *Manager) Count() int { return len(m.tabs) }

func (m *Manager) MaxTabs() int { return m.maxTabs }

// ActiveIndex returns the 0-based index of the active tab.
func (m *Manager) ActiveIndex() int { return m.active }

// Current returns the active tab after syncing it with the editor.
func (m *Manager) Current() *Tab {
	m.stash()
	return m.tabs[m.active]
}

// stash copies the editor's live state into the active slot.
func (m *Manager) stash() {
	s := m.host.State()
	t := m.tabs[m.active]
	t.Buffer = s.Buffer
	t.Cursor = s.Cursor
	t.Scroll = s.Scroll
	t.History = s.History
}

// activate makes index the active tab and hands its state to the editor.
func (m *Manager) activate(index int) {
	m.active = index
	t := m.tabs[index]
	m.host.LoadState(t.state())
	logger.DebugTagf("tabs", "Tabs: switched to %d (%s)", index+1, t.Name())
	if m.events != nil {
		m.events.Dispatch(event.TypeTabSwitched, event.TabSwitchedData{Index: index, FilePath: t.FilePath()})
	}
	m.persist()
}

// SwitchTo activates tab number n, counted from 1.
func (m *Manager) SwitchTo(n int) error {
	if n < 1 || n > m.maxTabs || n > len(m.tabs) {
		return fmt.Errorf("%w: %d", ErrNoSuchTab, n)
	}
	m.stash()
	m.activate(n - 1)
	return nil
}

// insertFront puts t at index 0, evicting the last tab when the list is full.
func (m *Manager) insertFront(t *Tab) {
	if len(m.tabs) >= m.maxTabs {
		evicted := m.tabs[len(m.tabs)-1]
		if evicted.Modified() {
			logger.Warnf("Tabs: evicting '%s' with unsaved changes", evicted.Name())
		}
		m.tabs = m.tabs[:len(m.tabs)-1]
	}
	m.tabs = append([]*Tab{t}, m.tabs...)
}

// NewTab opens an empty untitled tab in front and activates it.
func (m *Manager) NewTab() {
	m.stash()
	m.insertFront(&Tab{Buffer: buffer.NewSliceBuffer(), History: m.newHistory()})
	m.activate(0)
}

// OpenFile focuses the tab already showing path, or loads path into a new
// tab in front. A path that does not exist opens as an empty document.
func (m *Manager) OpenFile(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve '%s': %w", path, err)
	}
	for i, t := range m.tabs {
		if t.FilePath() == abs {
			m.stash()
			m.activate(i)
			return nil
		}
	}
	tab, err := m.loadTab(abs)
	if err != nil {
		return err
	}
	m.stash()
	m.insertFront(tab)
	m.activate(0)
	return nil
}

func (m *Manager) loadTab(path string) (*Tab, error) {
	buf := buffer.NewSliceBuffer()
	if err := buf.Load(path); err != nil {
		return nil, fmt.Errorf("open '%s': %w", path, err)
	}
	return &Tab{
		Buffer:   buf,
		FileType: DetectFileType(path, buf.Bytes()),
		History:  m.newHistory(),
	}, nil
}

// Close removes the active tab. Closing the last tab leaves one empty tab.
func (m *Manager) Close() {
	closed := m.tabs[m.active]
	m.tabs = append(m.tabs[:m.active], m.tabs[m.active+1:]...)
	if len(m.tabs) == 0 {
		m.tabs = []*Tab{{Buffer: buffer.NewSliceBuffer(), History: m.newHistory()}}
	}
	logger.DebugTagf("tabs", "Tabs: closed '%s'", closed.Name())
	index := m.active
	if index >= len(m.tabs) {
		index = len(m.tabs) - 1
	}
	m.activate(index)
}

// RefreshFileType re-detects the active tab's type, e.g. after Save-As.
func (m *Manager) RefreshFileType() {
	t := m.Current()
	t.FileType = DetectFileType(t.FilePath(), t.Buffer.Bytes())
}

func (m *Manager) persist() {
	if m.sessionPath == "" {
		return
	}
	if err := m.SaveSession(); err != nil {
		logger.Warnf("Tabs: could not save session: %v", err)
	}
}
