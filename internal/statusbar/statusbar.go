// Package statusbar draws the bottom line of the editor: file info, cursor
// position, temporary messages and the input prompt.
package statusbar

import (
	"fmt"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/bethropolis/quicknotepad/internal/theme"
	"github.com/bethropolis/quicknotepad/internal/types"
)

// Config defines the appearance and behavior of the status bar.
type Config struct {
	StyleDefault   tcell.Style
	StyleModified  tcell.Style
	StyleMessage   tcell.Style
	StylePrompt    tcell.Style
	MessageTimeout time.Duration
}

// ConfigFromTheme takes the status bar styles from th.
func ConfigFromTheme(th *theme.Theme, timeout time.Duration) Config {
	return Config{
		StyleDefault:   th.GetStyle(theme.StyleStatusBar),
		StyleModified:  th.GetStyle(theme.StyleStatusBarModified),
		StyleMessage:   th.GetStyle(theme.StyleStatusBarMessage),
		StylePrompt:    th.GetStyle(theme.StyleStatusBarPrompt),
		MessageTimeout: timeout,
	}
}

// StatusBar represents the UI component for the status line.
type StatusBar struct {
	config Config
	mu     sync.RWMutex
	now    func() time.Time

	fileName   string
	fileType   string
	cursorPos  types.Position
	isModified bool

	lineCount int
	charCount int
	wordCount int

	tempMessage     string
	tempMessageTime time.Time

	prompt *Prompt
	help   string
}

// New creates a new StatusBar with the given configuration.
func New(config Config) *StatusBar {
	return &StatusBar{config: config, now: time.Now}
}

// SetConfig replaces the styles, e.g. after a theme change.
func (sb *StatusBar) SetConfig(config Config) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.config = config
}

// SetFileInfo updates the file name, type and modified flag.
func (sb *StatusBar) SetFileInfo(name, fileType string, modified bool) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.fileName = name
	sb.fileType = fileType
	sb.isModified = modified
}

// SetCursorInfo updates the cursor position shown.
func (sb *StatusBar) SetCursorInfo(pos types.Position) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.cursorPos = pos
}

// SetDocumentStats updates the counts shown on the right.
func (sb *StatusBar) SetDocumentStats(lines, chars, words int) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.lineCount = lines
	sb.charCount = chars
	sb.wordCount = words
}

// SetHelp shows a key binding summary in place of the file info. An empty
// string hides it.
func (sb *StatusBar) SetHelp(help string) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.help = help
}

// HelpVisible reports whether the key binding summary is shown.
func (sb *StatusBar) HelpVisible() bool {
	sb.mu.RLock()
	defer sb.mu.RUnlock()
	return sb.help != ""
}

// SetTemporaryMessage displays a message for the configured timeout.
func (sb *StatusBar) SetTemporaryMessage(format string, args ...interface{}) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.tempMessage = fmt.Sprintf(format, args...)
	sb.tempMessageTime = sb.now()
}

// ResetTemporaryMessage clears any temporary message being displayed.
func (sb *StatusBar) ResetTemporaryMessage() {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.tempMessage = ""
	sb.tempMessageTime = time.Time{}
}

// SetPrompt shows p instead of the file info until ClearPrompt. A nil p
// clears the prompt.
func (sb *StatusBar) SetPrompt(p *Prompt) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.prompt = p
}

// ClearPrompt hides the prompt.
func (sb *StatusBar) ClearPrompt() { sb.SetPrompt(nil) }

// Prompt returns the active prompt or nil.
func (sb *StatusBar) Prompt() *Prompt {
	sb.mu.RLock()
	defer sb.mu.RUnlock()
	return sb.prompt
}

// Text returns what the left side of the status line currently says,
// expiring an old temporary message first.
func (sb *StatusBar) Text() string {
	text, _, _ := sb.current()
	return text
}

// current picks the left text, its style and the right-aligned hint.
// Priority: prompt, temporary message, help, file info.
func (sb *StatusBar) current() (string, tcell.Style, string) {
	sb.mu.Lock()
	defer sb.mu.Unlock()

	if sb.prompt != nil {
		return sb.prompt.Display(), sb.config.StylePrompt, "Press Esc to cancel"
	}
	if !sb.tempMessageTime.IsZero() {
		if sb.now().Sub(sb.tempMessageTime) <= sb.config.MessageTimeout {
			return sb.tempMessage, sb.config.StyleMessage, ""
		}
		sb.tempMessage = ""
		sb.tempMessageTime = time.Time{}
	}
	if sb.help != "" {
		return sb.help, sb.config.StyleMessage, ""
	}
	style := sb.config.StyleDefault
	if sb.isModified {
		style = sb.config.StyleModified
	}
	right := fmt.Sprintf("Lines: %d | Words: %d | Chars: %d | F1 for shortcuts", sb.lineCount, sb.wordCount, sb.charCount)
	return sb.defaultText(), style, right
}

func (sb *StatusBar) defaultText() string {
	name := sb.fileName
	if name == "" {
		name = "[No Name]"
	}
	modified := ""
	if sb.isModified {
		modified = " [Modified]"
	}
	fileType := ""
	if sb.fileType != "" {
		fileType = " -- " + sb.fileType
	}
	return fmt.Sprintf("%s%s%s -- Line: %d, Col: %d",
		name, modified, fileType, sb.cursorPos.Line+1, sb.cursorPos.Col+1)
}

// Draw renders the status bar on row y. When a prompt is active it returns
// the screen column of the prompt cursor and true.
func (sb *StatusBar) Draw(screen tcell.Screen, width, y int) (int, bool) {
	if width <= 0 || y < 0 {
		return 0, false
	}
	text, style, right := sb.current()
	for x := 0; x < width; x++ {
		screen.SetContent(x, y, ' ', nil, style)
	}
	end := drawString(screen, 0, y, width, text, style)
	if right != "" {
		rightX := width - uniseg.StringWidth(right) - 1
		if rightX > end {
			drawString(screen, rightX, y, width, right, style)
		}
	}

	if sb.Prompt() == nil {
		return 0, false
	}
	if end >= width {
		end = width - 1
	}
	return end, true
}

// drawString draws text from column x, stopping before maxX. It returns the
// column after the last drawn cluster.
func drawString(screen tcell.Screen, x, y, maxX int, text string, style tcell.Style) int {
	gr := uniseg.NewGraphemes(text)
	for gr.Next() {
		w := gr.Width()
		if w < 1 {
			w = 1
		}
		if x+w > maxX {
			break
		}
		runes := gr.Runes()
		screen.SetContent(x, y, runes[0], runes[1:], style)
		x += w
	}
	return x
}
