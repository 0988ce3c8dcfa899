package highlighter

import (
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"

	"github.com/bethropolis/quicknotepad/internal/buffer"
	"github.com/bethropolis/quicknotepad/internal/logger"
	"github.com/bethropolis/quicknotepad/internal/types"
	"github.com/bethropolis/quicknotepad/internal/utils"
)

// tokenStyle maps a chroma token type onto a theme style name. Empty means unstyled.
func tokenStyle(t chroma.TokenType) string {
	switch {
	case t.InCategory(chroma.Comment):
		return "comment"
	case t == chroma.KeywordType:
		return "type"
	case t == chroma.KeywordConstant:
		return "constant"
	case t.InCategory(chroma.Keyword):
		return "keyword"
	case t.InSubCategory(chroma.LiteralString):
		return "string"
	case t.InSubCategory(chroma.LiteralNumber):
		return "number"
	case t == chroma.NameFunction || t == chroma.NameBuiltin:
		return "function"
	case t == chroma.NameClass || t == chroma.NameTag:
		return "type"
	case t == chroma.NameConstant:
		return "constant"
	case t.InCategory(chroma.Operator):
		return "operator"
	case t == chroma.GenericHeading || t == chroma.GenericSubheading:
		return "keyword"
	case t == chroma.GenericEmph || t == chroma.GenericStrong:
		return "string"
	}
	return ""
}

// highlightChroma tokenises the buffer with the lexer chroma picks for
// filePath. Unknown file types produce an empty result.
func highlightChroma(buf buffer.Buffer, filePath string) HighlightResult {
	result := make(HighlightResult)
	if filePath == "" {
		return result
	}
	lexer := lexers.Match(filepath.Base(filePath))
	if lexer == nil {
		return result
	}
	lexer = chroma.Coalesce(lexer)

	it, err := lexer.Tokenise(nil, strings.Join(buf.Lines(), "\n"))
	if err != nil {
		logger.Warnf("highlightChroma: tokenise '%s': %v", filePath, err)
		return result
	}

	line, col := 0, 0
	for tok := it(); tok != chroma.EOF; tok = it() {
		style := tokenStyle(tok.Type)
		parts := strings.Split(tok.Value, "\n")
		for i, part := range parts {
			if i > 0 {
				line++
				col = 0
			}
			n := utils.GraphemeLen(part)
			if style != "" && n > 0 {
				result[line] = append(result[line], types.StyledRange{StartCol: col, EndCol: col + n, StyleName: style})
			}
			col += n
		}
	}
	logger.DebugTagf("highlight", "highlightChroma: %s highlights on %d lines", lexer.Config().Name, len(result))
	return result
}
