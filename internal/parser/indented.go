package parser

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/pihapi/structgen/internal/plan"
	"github.com/pihapi/structgen/internal/safety"
)

// ParseIndented разбирает дерево, где вложенность задаётся отступами,
// а каталог отмечен "/" в конце строки.
//
// Отступ — число ведущих пробельных символов; табуляция считается одним
// символом, поэтому смешивать табы и пробелы не стоит.
func ParseIndented(text string) (*plan.Tree, error) {
	lines := splitLines(text)

	root := plan.NewTree()
	path := rootAncestors()

	for i, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		indent := indentOf(raw)

		isDir := strings.HasSuffix(line, "/")
		name := strings.TrimSuffix(line, "/")
		if err := safety.ValidateName(name); err != nil {
			return nil, &ParseError{Line: i + 1, Text: raw, Err: err}
		}

		path = path.above(indent)
		parent := descend(root, path.names())
		parent.Put(newNode(name, isDir))

		if isDir {
			path = path.push(indent, name)
		}
	}
	return root, nil
}

func indentOf(line string) int {
	trimmed := strings.TrimLeftFunc(line, unicode.IsSpace)
	return utf8.RuneCountInString(line) - utf8.RuneCountInString(trimmed)
}
