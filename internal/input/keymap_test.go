package input

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
)

func TestProcessEvent(t *testing.T) {
	p := NewInputProcessor()
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want ActionEvent
	}{
		{"ctrl+s", tcell.NewEventKey(tcell.KeyCtrlS, 0, tcell.ModCtrl), ActionEvent{Action: ActionSave}},
		{"ctrl+s without mod bit", tcell.NewEventKey(tcell.KeyCtrlS, 0, tcell.ModNone), ActionEvent{Action: ActionSave}},
		{"ctrl+z", tcell.NewEventKey(tcell.KeyCtrlZ, 0, tcell.ModCtrl), ActionEvent{Action: ActionUndo}},
		{"ctrl+y", tcell.NewEventKey(tcell.KeyCtrlY, 0, tcell.ModCtrl), ActionEvent{Action: ActionRedo}},
		{"ctrl+f", tcell.NewEventKey(tcell.KeyCtrlF, 0, tcell.ModCtrl), ActionEvent{Action: ActionFind}},
		{"plain rune", tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModNone), ActionEvent{Action: ActionInsertRune, Rune: 'a'}},
		{"shifted rune", tcell.NewEventKey(tcell.KeyRune, 'A', tcell.ModShift), ActionEvent{Action: ActionInsertRune, Rune: 'A'}},
		{"alt+3", tcell.NewEventKey(tcell.KeyRune, '3', tcell.ModAlt), ActionEvent{Action: ActionSwitchTab, Tab: 3}},
		{"alt+0 unbound", tcell.NewEventKey(tcell.KeyRune, '0', tcell.ModAlt), ActionEvent{Action: ActionUnknown}},
		{"alt+s", tcell.NewEventKey(tcell.KeyRune, 's', tcell.ModAlt), ActionEvent{Action: ActionSaveAs}},
		{"left", tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), ActionEvent{Action: ActionMoveLeft}},
		{"shift+left", tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModShift), ActionEvent{Action: ActionMoveLeft, Extend: true}},
		{"ctrl+end", tcell.NewEventKey(tcell.KeyEnd, 0, tcell.ModCtrl), ActionEvent{Action: ActionMoveDocEnd}},
		{"ctrl+shift+home", tcell.NewEventKey(tcell.KeyHome, 0, tcell.ModCtrl|tcell.ModShift), ActionEvent{Action: ActionMoveDocStart, Extend: true}},
		{"f3", tcell.NewEventKey(tcell.KeyF3, 0, tcell.ModNone), ActionEvent{Action: ActionFindNext}},
		{"shift+f3", tcell.NewEventKey(tcell.KeyF3, 0, tcell.ModShift), ActionEvent{Action: ActionFindPrev}},
		{"shift+f1 is not movement", tcell.NewEventKey(tcell.KeyF1, 0, tcell.ModShift), ActionEvent{Action: ActionUnknown}},
		{"enter", tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), ActionEvent{Action: ActionInsertNewLine}},
		{"backspace", tcell.NewEventKey(tcell.KeyBackspace, 0, tcell.ModNone), ActionEvent{Action: ActionDeleteCharBackward}},
		{"backspace2", tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone), ActionEvent{Action: ActionDeleteCharBackward}},
		{"delete", tcell.NewEventKey(tcell.KeyDelete, 0, tcell.ModNone), ActionEvent{Action: ActionDeleteCharForward}},
		{"esc", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), ActionEvent{Action: ActionCancel}},
		{"ctrl+rune unbound", tcell.NewEventKey(tcell.KeyRune, 'k', tcell.ModCtrl), ActionEvent{Action: ActionUnknown}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.ProcessEvent(tt.ev); got != tt.want {
				t.Errorf("ProcessEvent() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestShortcutsListing(t *testing.T) {
	out := FormatShortcuts(NewInputProcessor().Shortcuts())
	for _, want := range []string{"Ctrl+S", "Shift+F3", "Alt+1..9", "Shift+movement"} {
		if !strings.Contains(out, want) {
			t.Errorf("shortcut listing lacks %q:\n%s", want, out)
		}
	}
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		if strings.HasPrefix(line, " ") {
			t.Errorf("undocumented binding leaked into listing: %q", line)
		}
	}
}

func TestActionString(t *testing.T) {
	if got := ActionFindPrev.String(); got != "find-prev" {
		t.Errorf("String() = %q", got)
	}
	if got := Action(999).String(); got != "unknown" {
		t.Errorf("String() = %q", got)
	}
}
