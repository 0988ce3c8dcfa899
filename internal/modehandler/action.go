package modehandler

import (
	"strings"

	"github.com/bethropolis/quicknotepad/internal/commands"
	"github.com/bethropolis/quicknotepad/internal/core"
	"github.com/bethropolis/quicknotepad/internal/input"
	"github.com/bethropolis/quicknotepad/internal/logger"
	"github.com/bethropolis/quicknotepad/internal/statusbar"
)

var movements = map[input.Action]core.Movement{
	input.ActionMoveLeft:     core.MoveLeft,
	input.ActionMoveRight:    core.MoveRight,
	input.ActionMoveUp:       core.MoveUp,
	input.ActionMoveDown:     core.MoveDown,
	input.ActionMovePageUp:   core.MovePageUp,
	input.ActionMovePageDown: core.MovePageDown,
	input.ActionMoveHome:     core.MoveLineStart,
	input.ActionMoveEnd:      core.MoveLineEnd,
	input.ActionMoveDocStart: core.MoveDocStart,
	input.ActionMoveDocEnd:   core.MoveDocEnd,
}

// handleActionNormal executes an action against the editor.
func (mh *ModeHandler) handleActionNormal(actionEvent input.ActionEvent) bool {
	if actionEvent.Action == input.ActionUnknown {
		return false
	}
	// A confirmation only holds for the key pressed right after the warning.
	if actionEvent.Action != input.ActionQuit {
		mh.quitPending = false
	}
	if actionEvent.Action != input.ActionCloseTab {
		mh.closePending = false
	}

	if m, ok := movements[actionEvent.Action]; ok {
		mh.editor.Move(m, actionEvent.Extend)
		return true
	}

	switch actionEvent.Action {
	case input.ActionQuit:
		mh.quit()
	case input.ActionSave:
		mh.save()
	case input.ActionSaveAs:
		mh.startPrompt(statusbar.PromptSaveAs, mh.editor.GetBuffer().FilePath())

	case input.ActionInsertRune:
		return mh.editor.InsertChar(string(actionEvent.Rune))
	case input.ActionInsertTab:
		return mh.editor.InsertTab()
	case input.ActionInsertNewLine:
		return mh.editor.InsertNewline()
	case input.ActionDeleteCharBackward:
		return mh.editor.Backspace()
	case input.ActionDeleteCharForward:
		return mh.editor.DeleteForward()

	case input.ActionUndo:
		if !mh.editor.Undo() {
			mh.statusBar.SetTemporaryMessage("Nothing to undo")
		}
	case input.ActionRedo:
		if !mh.editor.Redo() {
			mh.statusBar.SetTemporaryMessage("Nothing to redo")
		}
	case input.ActionCopy:
		switch {
		case !mh.editor.HasSelection():
			mh.statusBar.SetTemporaryMessage("Nothing selected")
		case mh.editor.Copy():
			mh.statusBar.SetTemporaryMessage("Copied")
		default:
			mh.statusBar.SetTemporaryMessage("Copy failed")
		}
	case input.ActionCut:
		switch {
		case !mh.editor.HasSelection():
			mh.statusBar.SetTemporaryMessage("Nothing selected")
		case mh.editor.Cut():
			mh.statusBar.SetTemporaryMessage("Cut")
		default:
			mh.statusBar.SetTemporaryMessage("Cut failed")
		}
	case input.ActionPaste:
		if !mh.editor.Paste() {
			mh.statusBar.SetTemporaryMessage("Clipboard is empty")
		}
	case input.ActionSelectAll:
		mh.editor.SelectAll()

	case input.ActionFind:
		mh.startPrompt(statusbar.PromptSearch, "")
	case input.ActionFindNext, input.ActionFindPrev:
		if !mh.editor.SearchActive() {
			mh.statusBar.SetTemporaryMessage("No active search")
			return true
		}
		mh.currentMode = ModeSearchResults
		mh.stepSearch(actionEvent.Action == input.ActionFindNext)
	case input.ActionCancel:
		mh.editor.ClearSearch()
		mh.editor.ClearSelection()
		mh.statusBar.SetHelp("")
		mh.statusBar.ResetTemporaryMessage()

	case input.ActionNewTab:
		mh.tabs.NewTab()
		mh.statusBar.SetTemporaryMessage("New tab")
	case input.ActionCloseTab:
		mh.closeTab()
	case input.ActionSwitchTab:
		if err := mh.tabs.SwitchTo(actionEvent.Tab); err != nil {
			mh.statusBar.SetTemporaryMessage("No tab %d", actionEvent.Tab)
		}
	case input.ActionToggleShortcuts:
		mh.toggleShortcuts()
	case input.ActionCycleTheme:
		if mh.themes == nil {
			mh.statusBar.SetTemporaryMessage("Themes are not available")
			return true
		}
		if err := commands.CycleTheme(mh.themes); err != nil {
			logger.Warnf("ModeHandler: %v", err)
		}

	default:
		logger.DebugTagf("input", "ModeHandler: unhandled action %s", actionEvent.Action)
		return false
	}
	return true
}

func (mh *ModeHandler) quit() {
	if mh.quitting {
		return
	}
	if !mh.quitPending && mh.anyModified() {
		mh.quitPending = true
		mh.statusBar.SetTemporaryMessage("Unsaved changes! Press Ctrl+Q again to quit")
		return
	}
	if err := mh.tabs.SaveSession(); err != nil {
		logger.Warnf("ModeHandler: could not save session: %v", err)
	}
	mh.quitting = true
	close(mh.quitSignal)
}

func (mh *ModeHandler) anyModified() bool {
	// Current stores the live editor state into its slot first.
	mh.tabs.Current()
	for _, t := range mh.tabs.Tabs() {
		if t.Modified() {
			return true
		}
	}
	return false
}

func (mh *ModeHandler) save() {
	if mh.editor.GetBuffer().FilePath() == "" {
		mh.startPrompt(statusbar.PromptSaveAs, "")
		return
	}
	if err := mh.editor.Save(); err != nil {
		logger.Errorf("ModeHandler: save failed: %v", err)
		mh.statusBar.SetTemporaryMessage("Save failed: %v", err)
		return
	}
	mh.statusBar.SetTemporaryMessage("Saved %s", mh.editor.GetBuffer().FilePath())
}

func (mh *ModeHandler) closeTab() {
	if !mh.closePending && mh.tabs.Current().Modified() {
		mh.closePending = true
		mh.statusBar.SetTemporaryMessage("Tab has unsaved changes! Press Ctrl+W again to close it")
		return
	}
	mh.closePending = false
	mh.tabs.Close()
}

func (mh *ModeHandler) toggleShortcuts() {
	if mh.statusBar.HelpVisible() {
		mh.statusBar.SetHelp("")
		return
	}
	var parts []string
	for _, s := range mh.inputProcessor.Shortcuts() {
		parts = append(parts, s.Keys+" "+s.Help)
	}
	mh.statusBar.ResetTemporaryMessage()
	mh.statusBar.SetHelp(strings.Join(parts, " | "))
}
