package modehandler

import (
	"path/filepath"
	"strings"

	"github.com/bethropolis/quicknotepad/internal/input"
	"github.com/bethropolis/quicknotepad/internal/logger"
	"github.com/bethropolis/quicknotepad/internal/statusbar"
)

var promptLabels = map[statusbar.PromptKind]string{
	statusbar.PromptSaveAs: "Save as: ",
	statusbar.PromptSearch: "Search: ",
}

func (mh *ModeHandler) startPrompt(kind statusbar.PromptKind, initial string) {
	mh.statusBar.SetHelp("")
	mh.statusBar.ResetTemporaryMessage()
	mh.statusBar.SetPrompt(statusbar.NewPrompt(kind, promptLabels[kind], initial))
	mh.currentMode = ModePrompt
}

func (mh *ModeHandler) endPrompt() {
	mh.statusBar.ClearPrompt()
	mh.currentMode = ModeNormal
}

// handleActionPrompt edits the prompt line. Nothing reaches the buffer
// until Enter, so Esc leaves the document and its history untouched.
func (mh *ModeHandler) handleActionPrompt(actionEvent input.ActionEvent) bool {
	p := mh.statusBar.Prompt()
	if p == nil {
		mh.currentMode = ModeNormal
		return mh.handleActionNormal(actionEvent)
	}

	switch actionEvent.Action {
	case input.ActionInsertRune:
		p.Insert(string(actionEvent.Rune))
	case input.ActionInsertTab:
		p.Insert("\t")
	case input.ActionDeleteCharBackward:
		p.Backspace()
	case input.ActionCancel:
		mh.endPrompt()
		mh.statusBar.SetTemporaryMessage("Cancelled")
	case input.ActionInsertNewLine:
		mh.endPrompt()
		mh.submitPrompt(p)
	case input.ActionQuit:
		mh.endPrompt()
		return mh.handleActionNormal(actionEvent)
	default:
		return false
	}
	return true
}

func (mh *ModeHandler) submitPrompt(p *statusbar.Prompt) {
	switch p.Kind {
	case statusbar.PromptSaveAs:
		mh.submitSaveAs(strings.TrimSpace(p.Value()))
	case statusbar.PromptSearch:
		mh.submitSearch(p.Value())
	}
}

func (mh *ModeHandler) submitSaveAs(name string) {
	if name == "" {
		mh.statusBar.SetTemporaryMessage("Cancelled")
		return
	}
	path, err := filepath.Abs(name)
	if err != nil {
		mh.statusBar.SetTemporaryMessage("Invalid file name: %v", err)
		return
	}
	if err := mh.editor.SaveAs(path); err != nil {
		logger.Errorf("ModeHandler: save as '%s' failed: %v", path, err)
		mh.statusBar.SetTemporaryMessage("Save failed: %v", err)
		return
	}
	mh.tabs.RefreshFileType()
	mh.statusBar.SetTemporaryMessage("Saved %s", path)
}

func (mh *ModeHandler) submitSearch(query string) {
	if query == "" {
		mh.editor.ClearSearch()
		mh.statusBar.SetTemporaryMessage("Cancelled")
		return
	}
	if mh.editor.Search(query) == 0 {
		mh.statusBar.SetTemporaryMessage("%s", mh.editor.SearchStatus())
		return
	}
	mh.currentMode = ModeSearchResults
	mh.showSearchStatus()
}

func (mh *ModeHandler) showSearchStatus() {
	mh.statusBar.SetTemporaryMessage("%s | Up/Down to navigate", mh.editor.SearchStatus())
}

func (mh *ModeHandler) stepSearch(forward bool) {
	if forward {
		mh.editor.FindNext()
	} else {
		mh.editor.FindPrev()
	}
	mh.showSearchStatus()
}

// leaveSearchResults drops the highlights but keeps the selected match.
func (mh *ModeHandler) leaveSearchResults() {
	mh.editor.ClearSearch()
	mh.statusBar.ResetTemporaryMessage()
	mh.currentMode = ModeNormal
}

// handleActionSearchResults walks the matches. Esc clears the search and
// selection; any other action ends the search and runs normally.
func (mh *ModeHandler) handleActionSearchResults(actionEvent input.ActionEvent) bool {
	switch actionEvent.Action {
	case input.ActionMoveDown, input.ActionFindNext:
		if !actionEvent.Extend {
			mh.stepSearch(true)
			return true
		}
	case input.ActionMoveUp, input.ActionFindPrev:
		if !actionEvent.Extend {
			mh.stepSearch(false)
			return true
		}
	case input.ActionCancel:
		mh.leaveSearchResults()
		mh.editor.ClearSelection()
		return true
	case input.ActionUnknown:
		return false
	}
	mh.leaveSearchResults()
	return mh.handleActionNormal(actionEvent)
}
