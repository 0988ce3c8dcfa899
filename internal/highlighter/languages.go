// internal/highlighter/languages.go
package highlighter

import (
	"embed"
	"sync"

	gosrc "github.com/smacker/go-tree-sitter/golang"
	pythonsrc "github.com/smacker/go-tree-sitter/python"

	"github.com/bethropolis/quicknotepad/internal/highlighter/lang"
	"github.com/bethropolis/quicknotepad/internal/logger"
)

//go:embed queries/*/*.scm
var embeddedQueries embed.FS

var registerOnce sync.Once

// RegisterLanguages installs the tree-sitter grammars. Safe to call repeatedly.
func RegisterLanguages() {
	registerOnce.Do(func() {
		lang.QueryFS = embeddedQueries

		lang.Register(&lang.Language{
			Name:           "Go",
			TreeSitterLang: gosrc.GetLanguage(),
			Extensions:     []string{".go"},
			QueryPath:      "go",
		})
		lang.Register(&lang.Language{
			Name:           "Python",
			TreeSitterLang: pythonsrc.GetLanguage(),
			Extensions:     []string{".py", ".pyw"},
			QueryPath:      "python",
		})

		logger.DebugTagf("highlight", "Registration complete. Registered %d languages.", len(lang.GetAll()))
	})
}
