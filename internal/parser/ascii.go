package parser

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/pihapi/structgen/internal/plan"
	"github.com/pihapi/structgen/internal/safety"
)

// SyntheticRoot — имя корня, если первая строка не заканчивается на "/".
const SyntheticRoot = "root"

var (
	connector   = regexp.MustCompile(`[│├└](?:──|─)`)
	treeSummary = regexp.MustCompile(`^\d+ director(?:y|ies)(?:, \d+ files?)?$`)
)

// ParseASCII разбирает вывод утилиты tree (ветки ├── └── │).
// Первая строка — корень; возвращаются только его дети: они создаются
// прямо в каталоге назначения.
//
// Вложенность определяется колонкой, в которой стоит ветка: родитель —
// ближайший открытый каталог с веткой левее. Строка без ветки считается
// элементом верхнего уровня.
func ParseASCII(text string) (*plan.Tree, error) {
	lines := splitLines(text)

	first := -1
	for i, l := range lines {
		if strings.TrimSpace(l) != "" {
			first = i
			break
		}
	}
	if first == -1 {
		return plan.NewTree(), nil
	}

	// Первая строка без "/" — не корень, а обычный элемент под синтетическим корнем.
	rootLine := strings.TrimSpace(lines[first])
	start := first
	if strings.HasSuffix(rootLine, "/") {
		start = first + 1
	}

	root := plan.NewTree()
	path := rootAncestors()

	for i := start; i < len(lines); i++ {
		raw := lines[i]
		if strings.TrimSpace(raw) == "" || treeSummary.MatchString(strings.TrimSpace(raw)) {
			continue
		}

		column, content := splitBranch(raw)

		// Комментарий после "#" отбрасывается. Строка из одного комментария
		// узла не создаёт и стек не трогает.
		if idx := strings.Index(content, "#"); idx >= 0 {
			content = strings.TrimSpace(content[:idx])
			if content == "" {
				continue
			}
		}

		isDir := strings.HasSuffix(content, "/")
		name := strings.TrimSuffix(content, "/")
		if err := safety.ValidateName(name); err != nil {
			return nil, &ParseError{Line: i + 1, Text: raw, Err: err}
		}

		path = path.above(column)
		parent := descend(root, path.names())
		parent.Put(newNode(name, isDir))

		if isDir {
			path = path.push(column, name)
		}
	}
	return root, nil
}

// RootName возвращает имя корня ASCII-дерева (или SyntheticRoot).
func RootName(text string) string {
	lines := splitLines(text)
	for _, l := range lines {
		l = strings.TrimSpace(l)
		if l == "" {
			continue
		}
		if strings.HasSuffix(l, "/") {
			return strings.TrimSuffix(l, "/")
		}
		break
	}
	return SyntheticRoot
}

// splitBranch находит первую ветку вида "├──"/"└─"/"│─" и возвращает
// колонку (в символах), где она начинается, и текст после неё.
// Без ветки колонка 0, текст — вся строка.
func splitBranch(line string) (int, string) {
	loc := connector.FindStringIndex(line)
	if loc == nil {
		return 0, strings.TrimSpace(line)
	}
	return utf8.RuneCountInString(line[:loc[0]]), strings.TrimSpace(line[loc[1]:])
}
