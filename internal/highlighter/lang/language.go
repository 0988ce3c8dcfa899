package lang

import (
	"fmt"
	"io/fs"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/bethropolis/quicknotepad/internal/logger"
)

// QueryFS holds the highlight queries, laid out as queries/<QueryPath>/highlights.scm.
var QueryFS fs.FS

// Language is a tree-sitter grammar and the files it applies to.
type Language struct {
	Name           string
	TreeSitterLang *sitter.Language
	Extensions     []string
	// QueryPath is the directory under queries/ holding highlights.scm.
	QueryPath string
}

// GetQuery loads the highlight query source for the language.
func (l *Language) GetQuery() ([]byte, error) {
	if QueryFS == nil {
		return nil, fmt.Errorf("query filesystem not set")
	}
	if l.QueryPath == "" {
		return nil, fmt.Errorf("no query path for language %s", l.Name)
	}
	path := fmt.Sprintf("queries/%s/highlights.scm", l.QueryPath)
	query, err := fs.ReadFile(QueryFS, path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	logger.DebugTagf("highlight", "Loaded query %s for %s (%d bytes)", path, l.Name, len(query))
	return query, nil
}
