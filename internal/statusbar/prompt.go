package statusbar

import (
	"github.com/bethropolis/quicknotepad/internal/utils"
)

// PromptKind says what a prompt's answer is used for.
type PromptKind int

const (
	PromptSaveAs PromptKind = iota
	PromptSearch
)

// Prompt is a one-line text input shown in the status bar. The cursor is
// always at the end of the input.
type Prompt struct {
	Kind  PromptKind
	Label string
	input string
}

// NewPrompt creates a prompt pre-filled with initial.
func NewPrompt(kind PromptKind, label, initial string) *Prompt {
	return &Prompt{Kind: kind, Label: label, input: initial}
}

// Insert appends text to the input.
func (p *Prompt) Insert(text string) { p.input += text }

// Backspace removes the last grapheme cluster. It reports false on empty input.
func (p *Prompt) Backspace() bool {
	n := utils.GraphemeLen(p.input)
	if n == 0 {
		return false
	}
	p.input = utils.GraphemeSlice(p.input, 0, n-1)
	return true
}

// Value returns the text typed so far.
func (p *Prompt) Value() string { return p.input }

// Display is the label followed by the input.
func (p *Prompt) Display() string { return p.Label + p.input }
