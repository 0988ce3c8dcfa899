package input

// Action represents a command or operation to be performed by the editor.
type Action int

const (
	ActionUnknown Action = iota
	ActionQuit
	ActionSave
	ActionSaveAs

	ActionMoveUp
	ActionMoveDown
	ActionMoveLeft
	ActionMoveRight
	ActionMovePageUp
	ActionMovePageDown
	ActionMoveHome
	ActionMoveEnd
	ActionMoveDocStart
	ActionMoveDocEnd

	ActionInsertRune
	ActionInsertTab
	ActionInsertNewLine
	ActionDeleteCharForward
	ActionDeleteCharBackward

	ActionUndo
	ActionRedo
	ActionCopy
	ActionCut
	ActionPaste
	ActionSelectAll

	ActionFind
	ActionFindNext
	ActionFindPrev
	ActionCancel

	ActionNewTab
	ActionCloseTab
	ActionSwitchTab
	ActionToggleShortcuts
	ActionCycleTheme
)

var actionNames = map[Action]string{
	ActionUnknown:            "unknown",
	ActionQuit:               "quit",
	ActionSave:               "save",
	ActionSaveAs:             "save-as",
	ActionMoveUp:             "move-up",
	ActionMoveDown:           "move-down",
	ActionMoveLeft:           "move-left",
	ActionMoveRight:          "move-right",
	ActionMovePageUp:         "page-up",
	ActionMovePageDown:       "page-down",
	ActionMoveHome:           "line-start",
	ActionMoveEnd:            "line-end",
	ActionMoveDocStart:       "doc-start",
	ActionMoveDocEnd:         "doc-end",
	ActionInsertRune:         "insert",
	ActionInsertTab:          "insert-tab",
	ActionInsertNewLine:      "newline",
	ActionDeleteCharForward:  "delete",
	ActionDeleteCharBackward: "backspace",
	ActionUndo:               "undo",
	ActionRedo:               "redo",
	ActionCopy:               "copy",
	ActionCut:                "cut",
	ActionPaste:              "paste",
	ActionSelectAll:          "select-all",
	ActionFind:               "find",
	ActionFindNext:           "find-next",
	ActionFindPrev:           "find-prev",
	ActionCancel:             "cancel",
	ActionNewTab:             "new-tab",
	ActionCloseTab:           "close-tab",
	ActionSwitchTab:          "switch-tab",
	ActionToggleShortcuts:    "toggle-shortcuts",
	ActionCycleTheme:         "cycle-theme",
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "unknown"
}

// ActionEvent is a decoded key press.
type ActionEvent struct {
	Action Action
	Rune   rune // ActionInsertRune
	Tab    int  // ActionSwitchTab, 1-based
	Extend bool // movement with Shift held grows the selection
}
