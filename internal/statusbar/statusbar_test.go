package statusbar

import (
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/bethropolis/quicknotepad/internal/theme"
	"github.com/bethropolis/quicknotepad/internal/types"
)

func newTestBar(now *time.Time) *StatusBar {
	sb := New(ConfigFromTheme(&theme.DevComfortDark, 4*time.Second))
	sb.now = func() time.Time { return *now }
	return sb
}

func TestDefaultText(t *testing.T) {
	now := time.Unix(0, 0)
	sb := newTestBar(&now)
	if got, want := sb.Text(), "[No Name] -- Line: 1, Col: 1"; got != want {
		t.Errorf("Text() = %q, want %q", got, want)
	}

	sb.SetFileInfo("main.go", "Go", true)
	sb.SetCursorInfo(types.Position{Line: 2, Col: 7})
	if got, want := sb.Text(), "main.go [Modified] -- Go -- Line: 3, Col: 8"; got != want {
		t.Errorf("Text() = %q, want %q", got, want)
	}
}

func TestTemporaryMessageExpires(t *testing.T) {
	now := time.Unix(0, 0)
	sb := newTestBar(&now)
	sb.SetFileInfo("a.txt", "", false)
	sb.SetTemporaryMessage("Saved %s", "a.txt")

	now = now.Add(4 * time.Second)
	if got := sb.Text(); got != "Saved a.txt" {
		t.Fatalf("Text() = %q, message should still show", got)
	}
	now = now.Add(time.Millisecond)
	if got := sb.Text(); !strings.HasPrefix(got, "a.txt") {
		t.Fatalf("Text() = %q, message should have expired", got)
	}
}

func TestPromptEditing(t *testing.T) {
	p := NewPrompt(PromptSaveAs, "Save as: ", "")
	if p.Backspace() {
		t.Error("Backspace on empty input should report false")
	}
	p.Insert("no")
	p.Insert("té")
	if !p.Backspace() {
		t.Fatal("Backspace() = false")
	}
	if got, want := p.Value(), "not"; got != want {
		t.Errorf("Value() = %q, want %q", got, want)
	}
	if got, want := p.Display(), "Save as: not"; got != want {
		t.Errorf("Display() = %q, want %q", got, want)
	}
}

func TestDrawPrompt(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatal(err)
	}
	defer screen.Fini()
	screen.SetSize(30, 3)

	now := time.Unix(0, 0)
	sb := newTestBar(&now)
	sb.SetTemporaryMessage("hidden by prompt")
	sb.SetPrompt(NewPrompt(PromptSearch, "Find: ", "日本"))

	x, ok := sb.Draw(screen, 30, 2)
	if !ok {
		t.Fatal("Draw should report the prompt cursor")
	}
	if x != 10 {
		t.Errorf("prompt cursor x = %d, want 10", x)
	}
	if got := readScreenLine(screen, 0, 2, 7); got != "Find: 日" {
		t.Errorf("row = %q", got)
	}

	sb.ClearPrompt()
	if _, ok := sb.Draw(screen, 30, 2); ok {
		t.Error("no prompt cursor after ClearPrompt")
	}
}

func readScreenLine(screen tcell.Screen, x, y, width int) string {
	var b strings.Builder
	for i := 0; i < width; i++ {
		ch, _, _, _ := screen.GetContent(x+i, y)
		b.WriteRune(ch)
	}
	return b.String()
}

func TestDrawRightHintAndHelp(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatal(err)
	}
	defer screen.Fini()
	screen.SetSize(100, 1)

	now := time.Unix(0, 0)
	sb := newTestBar(&now)
	sb.SetFileInfo("a.txt", "Text File", false)
	sb.SetDocumentStats(3, 42, 7)
	sb.Draw(screen, 100, 0)

	line := readScreenLine(screen, 0, 0, 100)
	if !strings.Contains(line, "Lines: 3 | Words: 7 | Chars: 42") {
		t.Errorf("status line %q lacks document stats", line)
	}
	if !strings.HasPrefix(line, "a.txt -- Text File") {
		t.Errorf("status line %q", line)
	}

	sb.SetHelp("Ctrl+S Save | Ctrl+Q Quit")
	if !sb.HelpVisible() || sb.Text() != "Ctrl+S Save | Ctrl+Q Quit" {
		t.Fatalf("help not shown: %q", sb.Text())
	}
	sb.SetHelp("")
	if sb.HelpVisible() {
		t.Fatal("help should be hidden")
	}
}
