package tui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/bethropolis/quicknotepad/internal/buffer"
	"github.com/bethropolis/quicknotepad/internal/core/cursor"
	"github.com/bethropolis/quicknotepad/internal/logger"
	"github.com/bethropolis/quicknotepad/internal/theme"
	"github.com/bethropolis/quicknotepad/internal/types"
	"github.com/bethropolis/quicknotepad/internal/utils"
)

// View is what the renderer reads from the editor.
type View interface {
	GetBuffer() buffer.Buffer
	GetCursor() types.Position
	GetViewport() (int, int)
	GetSelection() (types.Position, types.Position, bool)
	GetHighlights() []types.HighlightRegion
	GetSyntaxHighlightsForLine(lineNum int) []types.StyledRange
	BufferToScreen(pos types.Position) (int, int, bool)
	Settings() cursor.Settings
}

// TabLabel is one entry of the header line.
type TabLabel struct {
	Name     string
	Modified bool
}

func drawText(s tcell.Screen, x, y, maxX int, text string, style tcell.Style) int {
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
		s.SetContent(x, y, runes[0], runes[1:], style)
		x += w
	}
	return x
}

// DrawHeader draws the tab line on row 0. Tabs are numbered from 1 to
// match the Alt+n shortcuts and marked with '*' when modified.
func DrawHeader(t *TUI, tabs []TabLabel, active int, th *theme.Theme) {
	width, _ := t.Size()
	headerStyle := th.GetStyle(theme.StyleHeader)
	for x := 0; x < width; x++ {
		t.screen.SetContent(x, 0, ' ', nil, headerStyle)
	}

	x := 0
	for i, tab := range tabs {
		style := th.GetStyle(theme.StyleTabInactive)
		if i == active {
			style = th.GetStyle(theme.StyleTabActive)
		}
		mark := ""
		if tab.Modified {
			mark = "*"
		}
		label := fmt.Sprintf(" %d:%s%s ", i+1, tab.Name, mark)
		next := drawText(t.screen, x, 0, width, label, style)
		if next == x || next >= width {
			break
		}
		x = next + 1
	}
}

// DrawBuffer draws the visible lines with their line numbers. Style
// precedence, lowest first: syntax, selection, search match, current match.
func DrawBuffer(t *TUI, v View, th *theme.Theme) {
	defaultStyle := th.GetStyle(theme.StyleDefault)
	marginStyle := th.GetStyle(theme.StyleMargin)
	marginCurrentStyle := th.GetStyle(theme.StyleMarginCurrent)
	selectionStyle := th.GetStyle(theme.StyleSelection)
	searchStyle := th.GetStyle(theme.StyleSearchHighlight)
	searchCurrentStyle := th.GetStyle(theme.StyleSearchCurrent)

	settings := v.Settings()
	width, _ := t.Size()
	top, rows := v.GetViewport()
	if rows <= 0 || width <= 0 {
		return
	}
	buf := v.GetBuffer()
	cursorLine := v.GetCursor().Line
	selStart, selEnd, selectionActive := v.GetSelection()

	searchByLine := make(map[int][]types.HighlightRegion)
	for _, h := range v.GetHighlights() {
		for line := h.Start.Line; line <= h.End.Line; line++ {
			if line >= top && line < top+rows {
				searchByLine[line] = append(searchByLine[line], h)
			}
		}
	}

	for row := 0; row < rows; row++ {
		screenY := settings.HeaderHeight + row
		lineIdx := top + row

		for x := 0; x < width; x++ {
			t.screen.SetContent(x, screenY, ' ', nil, defaultStyle)
		}
		if lineIdx >= buf.LineCount() {
			continue
		}

		if settings.MarginWidth > 1 {
			style := marginStyle
			if lineIdx == cursorLine {
				style = marginCurrentStyle
			}
			number := fmt.Sprintf("%*d", settings.MarginWidth-1, lineIdx+1)
			drawText(t.screen, 0, screenY, settings.MarginWidth-1, number, style)
		}

		text, err := buf.Line(lineIdx)
		if err != nil {
			logger.DebugTagf("tui", "DrawBuffer: line %d: %v", lineIdx, err)
			continue
		}
		syntax := v.GetSyntaxHighlightsForLine(lineIdx)
		search := searchByLine[lineIdx]

		visualX := 0
		col := 0
		rest := text
		state := -1
		for len(rest) > 0 {
			var cluster string
			cluster, rest, _, state = uniseg.StepString(rest, state)
			w := utils.CellWidth(cluster, visualX, settings.TabWidth)
			screenX := settings.MarginWidth + visualX
			if screenX+w > width {
				break
			}

			style := defaultStyle
			for _, r := range syntax {
				if col >= r.StartCol && col < r.EndCol {
					style = th.GetStyle(r.StyleName)
					break
				}
			}
			pos := types.Position{Line: lineIdx, Col: col}
			if selectionActive && pos.Within(selStart, selEnd) {
				style = selectionStyle
			}
			for _, h := range search {
				if !pos.Within(h.Start, h.End) {
					continue
				}
				if h.Type == types.HighlightSearchCurrent {
					style = searchCurrentStyle
					break
				}
				style = searchStyle
			}

			if cluster == "\t" {
				for i := 0; i < w; i++ {
					t.screen.SetContent(screenX+i, screenY, ' ', nil, style)
				}
			} else {
				runes := []rune(cluster)
				t.screen.SetContent(screenX, screenY, runes[0], runes[1:], style)
			}
			visualX += w
			col++
		}
	}
}

// DrawCursor places the terminal cursor at the editor cursor, hiding it
// when the cursor is scrolled out of view or past the right edge.
func DrawCursor(t *TUI, v View) {
	width, _ := t.Size()
	x, y, visible := v.BufferToScreen(v.GetCursor())
	if !visible || x >= width {
		t.screen.HideCursor()
		return
	}
	t.screen.ShowCursor(x, y)
}
