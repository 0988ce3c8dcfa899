package app

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/bethropolis/quicknotepad/internal/config"
)

func newTestApp(t *testing.T, filePath string) (*App, tcell.SimulationScreen) {
	t.Helper()
	cfg := config.NewDefaultConfig()
	cfg.Editor.SessionFile = ""
	cfg.Editor.SystemClipboard = false
	sim := tcell.NewSimulationScreen("UTF-8")
	a, err := NewAppWithScreen(cfg, sim, filePath)
	if err != nil {
		t.Fatal(err)
	}
	sim.SetSize(60, 10)
	a.resize()
	return a, sim
}

func readScreenLine(s tcell.Screen, y, width int) string {
	var b strings.Builder
	for x := 0; x < width; x++ {
		ch, _, _, _ := s.GetContent(x, y)
		b.WriteRune(ch)
	}
	return strings.TrimRight(b.String(), " ")
}

func runApp(t *testing.T, a *App) <-chan error {
	t.Helper()
	errCh := make(chan error, 1)
	go func() { errCh <- a.Run() }()
	return errCh
}

func waitForExit(t *testing.T, errCh <-chan error) {
	t.Helper()
	select {
	case err := <-errCh:
		if err != nil {
			t.Fatalf("Run() = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("app did not quit")
	}
}

func TestDrawLayout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.txt")
	if err := os.WriteFile(path, []byte("hello\nworld\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	a, sim := newTestApp(t, path)
	defer a.tuiManager.Close()
	a.draw()

	if got := readScreenLine(sim, 0, 60); !strings.HasPrefix(got, " 1:a.txt") {
		t.Errorf("header = %q", got)
	}
	if got, want := readScreenLine(sim, 1, 60), "  1 hello"; got != want {
		t.Errorf("first text row = %q, want %q", got, want)
	}
	status := readScreenLine(sim, 9, 60)
	if !strings.HasPrefix(status, "a.txt") || !strings.Contains(status, "Line: 1, Col: 1") {
		t.Errorf("status = %q", status)
	}
	if x, y, visible := sim.GetCursor(); !visible || x != 4 || y != 1 {
		t.Errorf("cursor = (%d,%d,%v), want (4,1,true)", x, y, visible)
	}
}

func TestOpenGoFileIsHighlighted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "main.go")
	if err := os.WriteFile(path, []byte("package main\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	a, _ := newTestApp(t, path)
	defer a.tuiManager.Close()
	if len(a.editor.GetSyntaxHighlightsForLine(0)) == 0 {
		t.Error("opening a Go file should produce syntax highlights")
	}
}

func TestEditSaveQuit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(path, []byte("world\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	a, sim := newTestApp(t, path)
	errCh := runApp(t, a)

	for _, r := range "hello " {
		sim.InjectKey(tcell.KeyRune, r, tcell.ModNone)
	}
	sim.InjectKey(tcell.KeyCtrlS, 0, tcell.ModCtrl)
	sim.InjectKey(tcell.KeyCtrlQ, 0, tcell.ModCtrl)
	waitForExit(t, errCh)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := string(data), "hello world\n"; got != want {
		t.Errorf("file = %q, want %q", got, want)
	}
}

func TestQuitNeedsConfirmationWhenModified(t *testing.T) {
	a, sim := newTestApp(t, "")
	errCh := runApp(t, a)

	sim.InjectKey(tcell.KeyRune, 'x', tcell.ModNone)
	sim.InjectKey(tcell.KeyCtrlQ, 0, tcell.ModCtrl)
	select {
	case <-errCh:
		t.Fatal("a single Ctrl+Q with unsaved changes should not quit")
	case <-time.After(100 * time.Millisecond):
	}
	sim.InjectKey(tcell.KeyCtrlQ, 0, tcell.ModCtrl)
	waitForExit(t, errCh)
}
