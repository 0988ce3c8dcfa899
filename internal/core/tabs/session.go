package tabs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/bethropolis/quicknotepad/internal/buffer"
	"github.com/bethropolis/quicknotepad/internal/logger"
	"github.com/bethropolis/quicknotepad/internal/types"
)

type tabInfo struct {
	FilePath   string `toml:"file_path"`
	FileType   string `toml:"file_type"`
	Scroll     int    `toml:"scroll"`
	CursorLine int    `toml:"cursor_line"`
	CursorCol  int    `toml:"cursor_col"`
}

type session struct {
	ActiveTab int       `toml:"active_tab"`
	Tabs      []tabInfo `toml:"tabs"`
}

// SaveSession writes the open tabs to the session file.
func (m *Manager) SaveSession() error {
	if m.sessionPath == "" {
		return nil
	}
	m.stash()
	s := session{ActiveTab: m.active}
	for _, t := range m.tabs {
		s.Tabs = append(s.Tabs, tabInfo{
			FilePath:   t.FilePath(),
			FileType:   t.FileType,
			Scroll:     t.Scroll,
			CursorLine: t.Cursor.Line,
			CursorCol:  t.Cursor.Col,
		})
	}

	if err := os.MkdirAll(filepath.Dir(m.sessionPath), 0o755); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	f, err := os.Create(m.sessionPath)
	if err != nil {
		return fmt.Errorf("create session file: %w", err)
	}
	defer f.Close()
	if err := toml.NewEncoder(f).Encode(s); err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	logger.DebugTagf("tabs", "Tabs: saved session with %d tabs to %s", len(s.Tabs), m.sessionPath)
	return nil
}

// RestoreSession replaces the tab list with the saved session. A missing
// session file is not an error. Files that cannot be read come back as empty
// tabs. History always starts empty.
func (m *Manager) RestoreSession() error {
	if m.sessionPath == "" {
		return nil
	}
	var s session
	if _, err := toml.DecodeFile(m.sessionPath, &s); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read session '%s': %w", m.sessionPath, err)
	}
	if len(s.Tabs) == 0 {
		return nil
	}

	restored := make([]*Tab, 0, len(s.Tabs))
	for _, info := range s.Tabs {
		if len(restored) == m.maxTabs {
			break
		}
		tab := &Tab{Buffer: buffer.NewSliceBuffer(), History: m.newHistory()}
		if info.FilePath != "" {
			loaded, err := m.loadTab(info.FilePath)
			if err != nil {
				logger.Warnf("Tabs: could not restore '%s': %v", info.FilePath, err)
			} else {
				tab = loaded
				if info.FileType != "" {
					tab.FileType = info.FileType
				}
				tab.Cursor = types.Position{Line: info.CursorLine, Col: info.CursorCol}
				tab.Scroll = info.Scroll
			}
		}
		restored = append(restored, tab)
	}

	active := s.ActiveTab
	if active < 0 {
		active = 0
	}
	if active >= len(restored) {
		active = len(restored) - 1
	}
	m.tabs = restored
	logger.Infof("Tabs: restored %d tabs from %s", len(restored), m.sessionPath)
	m.activate(active)
	return nil
}
