package parser

import (
	"fmt"
	"io"
	"strings"

	"github.com/pihapi/structgen/internal/plan"
)

// Format — какой из двух форматов был распознан.
type Format string

const (
	FormatIndented Format = "Indented"
	FormatASCII    Format = "ASCII tree"
)

// ParseError — вход не удалось разобрать. Дерево при этом не возвращается.
type ParseError struct {
	Line int    // номер строки, с 1
	Text string // исходная строка
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("строка %d: %v", e.Line, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Detect выбирает формат: любая псевдографика tree означает ASCII-дерево.
func Detect(text string) Format {
	if strings.ContainsAny(text, "├└│─") {
		return FormatASCII
	}
	return FormatIndented
}

// Parse определяет формат и разбирает текст соответствующим парсером.
func Parse(text string) (*plan.Tree, Format, error) {
	format := Detect(text)
	var (
		t   *plan.Tree
		err error
	)
	switch format {
	case FormatASCII:
		t, err = ParseASCII(text)
	default:
		t, err = ParseIndented(text)
	}
	if err != nil {
		return nil, format, err
	}
	return t, format, nil
}

// ParseReader читает вход целиком (формат определяется по всему тексту) и разбирает его.
func ParseReader(r io.Reader) (*plan.Tree, Format, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, "", err
	}
	return Parse(string(data))
}

// splitLines режет уже прочитанный текст на строки без ограничения длины.
// "\r" в конце строки (Windows) отбрасывается.
func splitLines(text string) []string {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

// frame — открытый каталог на пути от корня: его отступ (или колонка ветки) и имя.
type frame struct {
	indent int
	name   string
}

// ancestors — путь от корня до текущего каталога. Первый элемент — страж
// с отступом -1. Значение не меняется на месте: каждая операция
// возвращает новый путь.
type ancestors []frame

func rootAncestors() ancestors {
	return ancestors{{indent: -1}}
}

// above оставляет только предков с отступом строго меньше indent.
func (a ancestors) above(indent int) ancestors {
	n := len(a)
	for n > 1 && indent <= a[n-1].indent {
		n--
	}
	return a[:n:n]
}

func (a ancestors) push(indent int, name string) ancestors {
	return append(a[:len(a):len(a)], frame{indent: indent, name: name})
}

// names — имена каталогов без стража.
func (a ancestors) names() []string {
	out := make([]string, 0, len(a)-1)
	for _, f := range a[1:] {
		out = append(out, f.name)
	}
	return out
}

// descend спускается от корня по пути. Отсутствующие промежуточные
// каталоги создаются, файл с тем же именем заменяется каталогом.
func descend(root *plan.Tree, path []string) *plan.Tree {
	cur := root
	for _, name := range path {
		n, ok := cur.Get(name)
		if !ok || !n.IsDir() {
			n = plan.NewDir(name)
			cur.Put(n)
		}
		cur = n.Children
	}
	return cur
}

func newNode(name string, dir bool) *plan.Node {
	if dir {
		return plan.NewDir(name)
	}
	return plan.NewFile(name)
}
