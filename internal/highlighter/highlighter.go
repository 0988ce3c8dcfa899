// Package highlighter computes per-line syntax styles. Files with a
// registered tree-sitter grammar are parsed (incrementally when an edited
// previous tree is supplied); everything else goes through a chroma lexer.
package highlighter

import (
	"context"
	"fmt"
	"strings"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/bethropolis/quicknotepad/internal/buffer"
	"github.com/bethropolis/quicknotepad/internal/highlighter/lang"
	"github.com/bethropolis/quicknotepad/internal/logger"
	"github.com/bethropolis/quicknotepad/internal/types"
	"github.com/bethropolis/quicknotepad/internal/utils"
)

// HighlightResult maps a line number to its styled ranges, in grapheme columns.
type HighlightResult map[int][]types.StyledRange

// Highlighter parses buffers and runs highlight queries. Compiled queries
// are cached per language.
type Highlighter struct {
	parser  *sitter.Parser
	mutex   sync.Mutex
	queries map[*lang.Language]*sitter.Query
}

// NewHighlighter creates a highlighter and registers the built-in grammars.
func NewHighlighter() *Highlighter {
	RegisterLanguages()
	return &Highlighter{
		parser:  sitter.NewParser(),
		queries: make(map[*lang.Language]*sitter.Query),
	}
}

// GetLanguage returns the tree-sitter language for filePath, or nil.
func (h *Highlighter) GetLanguage(filePath string) *lang.Language {
	return lang.GetForFile(filePath)
}

func (h *Highlighter) query(l *lang.Language) (*sitter.Query, error) {
	if q, ok := h.queries[l]; ok {
		return q, nil
	}
	src, err := l.GetQuery()
	if err != nil {
		return nil, err
	}
	q, err := sitter.NewQuery(src, l.TreeSitterLang)
	if err != nil {
		return nil, fmt.Errorf("compile %s query: %w", l.Name, err)
	}
	h.queries[l] = q
	return q, nil
}

// HighlightBuffer styles the whole buffer. oldTree, when non-nil, must
// already carry the edits made since it was parsed. The returned tree is
// nil for lexer-highlighted files.
func (h *Highlighter) HighlightBuffer(ctx context.Context, buf buffer.Buffer, filePath string, oldTree *sitter.Tree) (HighlightResult, *sitter.Tree, error) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if l := h.GetLanguage(filePath); l != nil {
		result, tree, err := h.highlightTreeSitter(ctx, buf, l, oldTree)
		if err == nil {
			return result, tree, nil
		}
		if ctx.Err() != nil {
			return nil, nil, err
		}
		logger.Warnf("HighlightBuffer: tree-sitter failed for %s, using lexer: %v", l.Name, err)
	}
	return highlightChroma(buf, filePath), nil, nil
}

func (h *Highlighter) highlightTreeSitter(ctx context.Context, buf buffer.Buffer, l *lang.Language, oldTree *sitter.Tree) (HighlightResult, *sitter.Tree, error) {
	q, err := h.query(l)
	if err != nil {
		return nil, nil, err
	}
	h.parser.SetLanguage(l.TreeSitterLang)
	tree, err := h.parser.ParseCtx(ctx, oldTree, buf.Bytes())
	if err != nil {
		return nil, nil, fmt.Errorf("parsing failed: %w", err)
	}

	qc := sitter.NewQueryCursor()
	defer qc.Close()
	qc.Exec(q, tree.RootNode())

	lines := buf.Lines()
	result := make(HighlightResult)
	for {
		match, ok := qc.NextMatch()
		if !ok {
			break
		}
		for _, capture := range match.Captures {
			style := captureNameToStyleName(q.CaptureNameForId(capture.Index))
			addSpan(result, lines, capture.Node.StartPoint(), capture.Node.EndPoint(), style)
		}
	}
	logger.DebugTagf("highlight", "HighlightBuffer: %s highlights on %d lines", l.Name, len(result))
	return result, tree, nil
}

// addSpan records a node spanning start..end (byte columns) as grapheme
// ranges, one per line it covers.
func addSpan(result HighlightResult, lines []string, start, end sitter.Point, style string) {
	for row := int(start.Row); row <= int(end.Row) && row < len(lines); row++ {
		text := lines[row]
		from, to := 0, utils.GraphemeLen(text)
		if row == int(start.Row) {
			from = utils.ByteOffsetToGrapheme(text, int(start.Column))
		}
		if row == int(end.Row) {
			to = utils.ByteOffsetToGrapheme(text, int(end.Column))
		}
		if to <= from {
			continue
		}
		result[row] = append(result[row], types.StyledRange{StartCol: from, EndCol: to, StyleName: style})
	}
}

// captureNameToStyleName maps "keyword.control" style capture names onto
// the theme's top-level style names.
func captureNameToStyleName(captureName string) string {
	captureName = strings.TrimPrefix(captureName, "@")
	if dot := strings.Index(captureName, "."); dot != -1 {
		return captureName[:dot]
	}
	return captureName
}
