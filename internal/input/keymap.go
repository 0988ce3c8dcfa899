// Package input translates terminal key events into editor actions.
package input

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
)

// Binding ties one key combination to an action.
type Binding struct {
	Key    tcell.Key
	Mod    tcell.ModMask
	Rune   rune // only for Key == tcell.KeyRune
	Action Action
	Keys   string // how the combination is written in help output
	Help   string
}

// DefaultBindings is the built-in keymap.
var DefaultBindings = []Binding{
	{Key: tcell.KeyCtrlS, Action: ActionSave, Keys: "Ctrl+S", Help: "Save (asks for a name when untitled)"},
	{Key: tcell.KeyRune, Mod: tcell.ModAlt, Rune: 's', Action: ActionSaveAs, Keys: "Alt+S", Help: "Save as"},
	{Key: tcell.KeyCtrlQ, Action: ActionQuit, Keys: "Ctrl+Q", Help: "Quit"},
	{Key: tcell.KeyCtrlZ, Action: ActionUndo, Keys: "Ctrl+Z", Help: "Undo"},
	{Key: tcell.KeyCtrlY, Action: ActionRedo, Keys: "Ctrl+Y", Help: "Redo"},
	{Key: tcell.KeyCtrlC, Action: ActionCopy, Keys: "Ctrl+C", Help: "Copy selection"},
	{Key: tcell.KeyCtrlX, Action: ActionCut, Keys: "Ctrl+X", Help: "Cut selection"},
	{Key: tcell.KeyCtrlV, Action: ActionPaste, Keys: "Ctrl+V", Help: "Paste"},
	{Key: tcell.KeyCtrlA, Action: ActionSelectAll, Keys: "Ctrl+A", Help: "Select all"},
	{Key: tcell.KeyCtrlF, Action: ActionFind, Keys: "Ctrl+F", Help: "Search"},
	{Key: tcell.KeyF3, Action: ActionFindNext, Keys: "F3", Help: "Next match"},
	{Key: tcell.KeyF3, Mod: tcell.ModShift, Action: ActionFindPrev, Keys: "Shift+F3", Help: "Previous match"},
	{Key: tcell.KeyF15, Action: ActionFindPrev, Keys: "", Help: ""},
	{Key: tcell.KeyCtrlN, Action: ActionNewTab, Keys: "Ctrl+N", Help: "New tab"},
	{Key: tcell.KeyCtrlW, Action: ActionCloseTab, Keys: "Ctrl+W", Help: "Close tab"},
	{Key: tcell.KeyF1, Action: ActionToggleShortcuts, Keys: "F1", Help: "Show or hide this list"},
	{Key: tcell.KeyF2, Action: ActionCycleTheme, Keys: "F2", Help: "Next color theme"},
	{Key: tcell.KeyEscape, Action: ActionCancel, Keys: "Esc", Help: "Cancel prompt, clear search"},

	{Key: tcell.KeyUp, Action: ActionMoveUp, Keys: "Up", Help: "Move up"},
	{Key: tcell.KeyDown, Action: ActionMoveDown, Keys: "Down", Help: "Move down"},
	{Key: tcell.KeyLeft, Action: ActionMoveLeft, Keys: "Left", Help: "Move left"},
	{Key: tcell.KeyRight, Action: ActionMoveRight, Keys: "Right", Help: "Move right"},
	{Key: tcell.KeyPgUp, Action: ActionMovePageUp, Keys: "PgUp", Help: "Page up"},
	{Key: tcell.KeyPgDn, Action: ActionMovePageDown, Keys: "PgDn", Help: "Page down"},
	{Key: tcell.KeyHome, Action: ActionMoveHome, Keys: "Home", Help: "Start of line"},
	{Key: tcell.KeyEnd, Action: ActionMoveEnd, Keys: "End", Help: "End of line"},
	{Key: tcell.KeyHome, Mod: tcell.ModCtrl, Action: ActionMoveDocStart, Keys: "Ctrl+Home", Help: "Start of document"},
	{Key: tcell.KeyEnd, Mod: tcell.ModCtrl, Action: ActionMoveDocEnd, Keys: "Ctrl+End", Help: "End of document"},

	{Key: tcell.KeyEnter, Action: ActionInsertNewLine, Keys: "Enter", Help: "New line"},
	{Key: tcell.KeyTab, Action: ActionInsertTab, Keys: "Tab", Help: "Insert tab"},
	{Key: tcell.KeyBackspace, Action: ActionDeleteCharBackward, Keys: "Backspace", Help: "Delete before cursor"},
	{Key: tcell.KeyBackspace2, Action: ActionDeleteCharBackward},
	{Key: tcell.KeyDelete, Action: ActionDeleteCharForward, Keys: "Delete", Help: "Delete at cursor"},
}

type combo struct {
	key  tcell.Key
	mod  tcell.ModMask
	rune rune
}

// InputProcessor translates tcell events into ActionEvents.
type InputProcessor struct {
	bindings []Binding
	keymap   map[combo]Action
}

// NewInputProcessor creates a processor with the default bindings.
func NewInputProcessor() *InputProcessor {
	return NewInputProcessorWith(DefaultBindings)
}

// NewInputProcessorWith creates a processor for bindings. Later entries win
// over earlier ones for the same combination.
func NewInputProcessorWith(bindings []Binding) *InputProcessor {
	p := &InputProcessor{bindings: bindings, keymap: make(map[combo]Action, len(bindings))}
	for _, b := range bindings {
		r := rune(0)
		if b.Key == tcell.KeyRune {
			r = b.Rune
		}
		p.keymap[combo{key: b.Key, mod: b.Mod, rune: r}] = b.Action
	}
	return p
}

func isMovement(a Action) bool {
	return a >= ActionMoveUp && a <= ActionMoveDocEnd
}

// ProcessEvent maps a key event to an action. Unbound combinations give
// ActionUnknown.
func (p *InputProcessor) ProcessEvent(ev *tcell.EventKey) ActionEvent {
	key := ev.Key()
	mod := ev.Modifiers() & (tcell.ModCtrl | tcell.ModShift | tcell.ModAlt)
	r := rune(0)

	switch {
	case key == tcell.KeyRune:
		r = ev.Rune()
		// The rune already carries the shift state.
		mod &^= tcell.ModShift
		if mod == tcell.ModAlt && r >= '1' && r <= '9' {
			return ActionEvent{Action: ActionSwitchTab, Tab: int(r - '0')}
		}
	case key < tcell.KeyRune:
		// Control characters already imply Ctrl.
		mod &^= tcell.ModCtrl
	}

	if action, ok := p.keymap[combo{key: key, mod: mod, rune: r}]; ok {
		return ActionEvent{Action: action}
	}
	if mod&tcell.ModShift != 0 {
		if action, ok := p.keymap[combo{key: key, mod: mod &^ tcell.ModShift, rune: r}]; ok && isMovement(action) {
			return ActionEvent{Action: action, Extend: true}
		}
	}
	if key == tcell.KeyRune && mod == tcell.ModNone {
		return ActionEvent{Action: ActionInsertRune, Rune: r}
	}
	return ActionEvent{Action: ActionUnknown}
}

// Shortcut is one line of the key binding help.
type Shortcut struct {
	Keys string
	Help string
}

// Shortcuts lists the documented bindings of p in table order.
func (p *InputProcessor) Shortcuts() []Shortcut {
	var out []Shortcut
	for _, b := range p.bindings {
		if b.Keys == "" {
			continue
		}
		out = append(out, Shortcut{Keys: b.Keys, Help: b.Help})
	}
	out = append(out,
		Shortcut{Keys: "Shift+movement", Help: "Extend the selection"},
		Shortcut{Keys: "Alt+1..9", Help: "Switch to tab n"},
	)
	return out
}

// FormatShortcuts renders the help as aligned "keys  description" lines.
func FormatShortcuts(shortcuts []Shortcut) string {
	width := 0
	for _, s := range shortcuts {
		if len(s.Keys) > width {
			width = len(s.Keys)
		}
	}
	var b strings.Builder
	for _, s := range shortcuts {
		fmt.Fprintf(&b, "%-*s  %s\n", width, s.Keys, s.Help)
	}
	return b.String()
}
