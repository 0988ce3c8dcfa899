// Package modehandler routes key, mouse and paste events to the editor
// depending on whether a prompt or search is active.
package modehandler

import (
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/bethropolis/quicknotepad/internal/commands"
	"github.com/bethropolis/quicknotepad/internal/core"
	"github.com/bethropolis/quicknotepad/internal/core/tabs"
	"github.com/bethropolis/quicknotepad/internal/input"
	"github.com/bethropolis/quicknotepad/internal/logger"
	"github.com/bethropolis/quicknotepad/internal/statusbar"
)

// InputMode defines the different states for user input.
type InputMode int

const (
	ModeNormal InputMode = iota
	// ModePrompt collects a file name or search query in the status bar.
	ModePrompt
	// ModeSearchResults is entered after a search with matches; Up and Down
	// walk the matches until another key is pressed.
	ModeSearchResults
)

func (m InputMode) String() string {
	switch m {
	case ModePrompt:
		return "prompt"
	case ModeSearchResults:
		return "search-results"
	default:
		return "normal"
	}
}

// wheelLines is how far one mouse wheel step scrolls.
const wheelLines = 3

// ModeHandler manages input modes and the pending confirmations.
type ModeHandler struct {
	editor         *core.Editor
	tabs           *tabs.Manager
	inputProcessor *input.InputProcessor
	statusBar      *statusbar.StatusBar
	themes         commands.ThemeAPI
	quitSignal     chan<- struct{}

	currentMode  InputMode
	quitPending  bool
	closePending bool
	quitting     bool

	pasting  bool
	pasteBuf strings.Builder
}

// Config holds dependencies for the ModeHandler.
type Config struct {
	Editor         *core.Editor
	Tabs           *tabs.Manager
	InputProcessor *input.InputProcessor
	StatusBar      *statusbar.StatusBar
	Themes         commands.ThemeAPI // optional
	QuitSignal     chan<- struct{}   // closed once when the user quits
}

// New creates a new ModeHandler.
func New(cfg Config) *ModeHandler {
	if cfg.Editor == nil || cfg.Tabs == nil || cfg.InputProcessor == nil || cfg.StatusBar == nil || cfg.QuitSignal == nil {
		panic("modehandler.New: missing required dependencies in Config")
	}
	return &ModeHandler{
		editor:         cfg.Editor,
		tabs:           cfg.Tabs,
		inputProcessor: cfg.InputProcessor,
		statusBar:      cfg.StatusBar,
		themes:         cfg.Themes,
		quitSignal:     cfg.QuitSignal,
		currentMode:    ModeNormal,
	}
}

// GetCurrentMode returns the current input mode.
func (mh *ModeHandler) GetCurrentMode() InputMode {
	return mh.currentMode
}

// HandleKeyEvent processes a key and reports whether a redraw is needed.
// Keys arriving inside a bracketed paste are collected instead.
func (mh *ModeHandler) HandleKeyEvent(ev *tcell.EventKey) bool {
	if mh.pasting {
		mh.collectPaste(ev)
		return false
	}

	actionEvent := mh.inputProcessor.ProcessEvent(ev)
	logger.DebugTagf("input", "ModeHandler: %s mode, action %s", mh.currentMode, actionEvent.Action)

	switch mh.currentMode {
	case ModePrompt:
		return mh.handleActionPrompt(actionEvent)
	case ModeSearchResults:
		return mh.handleActionSearchResults(actionEvent)
	default:
		return mh.handleActionNormal(actionEvent)
	}
}

// HandlePasteEvent tracks the start and end of a bracketed paste. At the
// end the collected text goes into the prompt or the buffer as one edit.
func (mh *ModeHandler) HandlePasteEvent(ev *tcell.EventPaste) bool {
	if ev.Start() {
		mh.pasting = true
		mh.pasteBuf.Reset()
		return false
	}
	mh.pasting = false
	pasted := mh.pasteBuf.String()
	mh.pasteBuf.Reset()
	if pasted == "" {
		return false
	}

	if mh.currentMode == ModePrompt {
		if p := mh.statusBar.Prompt(); p != nil {
			p.Insert(strings.NewReplacer("\r", "", "\n", " ").Replace(pasted))
		}
		return true
	}
	if mh.currentMode == ModeSearchResults {
		mh.leaveSearchResults()
	}
	return mh.editor.InsertText(pasted)
}

func (mh *ModeHandler) collectPaste(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyRune:
		mh.pasteBuf.WriteRune(ev.Rune())
	case tcell.KeyEnter:
		mh.pasteBuf.WriteByte('\n')
	case tcell.KeyTab:
		mh.pasteBuf.WriteByte('\t')
	}
}

// HandleMouseEvent moves the cursor on a left click inside the text area
// and scrolls on the wheel. Mouse input is ignored while a prompt is open.
func (mh *ModeHandler) HandleMouseEvent(ev *tcell.EventMouse) bool {
	if mh.currentMode == ModePrompt {
		return false
	}
	buttons := ev.Buttons()
	x, y := ev.Position()
	_, rows := mh.editor.GetViewport()
	header := mh.editor.Settings().HeaderHeight

	switch {
	case buttons&tcell.WheelUp != 0:
		mh.editor.ScrollBy(-wheelLines)
	case buttons&tcell.WheelDown != 0:
		mh.editor.ScrollBy(wheelLines)
	case buttons&tcell.Button1 != 0:
		if y < header || y >= header+rows {
			return false
		}
		if mh.currentMode == ModeSearchResults {
			mh.leaveSearchResults()
		}
		mh.editor.ClickAt(x, y)
	default:
		return false
	}
	return true
}
