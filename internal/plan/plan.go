package plan

import (
	"errors"
	"strings"
)

// Kind — тип узла дерева.
type Kind int

const (
	File Kind = iota
	Dir
)

func (k Kind) String() string {
	if k == Dir {
		return "dir"
	}
	return "file"
}

// Node — один элемент дерева: файл или каталог.
// Children != nil тогда и только тогда, когда Kind == Dir.
type Node struct {
	Name     string // один сегмент пути, без слэшей (кроме комментариев)
	Kind     Kind
	Children *Tree
}

// NewFile создаёт файловый узел.
func NewFile(name string) *Node {
	return &Node{Name: name, Kind: File}
}

// NewDir создаёт каталог с (возможно пустым) списком детей.
func NewDir(name string, children ...*Node) *Node {
	t := NewTree()
	for _, c := range children {
		t.Put(c)
	}
	return &Node{Name: name, Kind: Dir, Children: t}
}

func (n *Node) IsDir() bool { return n.Kind == Dir }

// IsComment — строки вида "#..." остаются в дереве, но на диске не создаются.
func (n *Node) IsComment() bool { return strings.HasPrefix(n.Name, "#") }

// Tree — упорядоченное отображение имя -> узел.
// Порядок вставки сохраняется и задаёт порядок создания.
type Tree struct {
	names []string
	nodes map[string]*Node
}

func NewTree() *Tree {
	return &Tree{nodes: make(map[string]*Node)}
}

// Put добавляет узел. Повтор имени заменяет прежний узел на его же месте
// (без слияния детей).
func (t *Tree) Put(n *Node) {
	if _, ok := t.nodes[n.Name]; !ok {
		t.names = append(t.names, n.Name)
	}
	t.nodes[n.Name] = n
}

func (t *Tree) Get(name string) (*Node, bool) {
	if t == nil {
		return nil, false
	}
	n, ok := t.nodes[name]
	return n, ok
}

func (t *Tree) Len() int {
	if t == nil {
		return 0
	}
	return len(t.names)
}

// Names возвращает копию имён в порядке вставки.
func (t *Tree) Names() []string {
	if t == nil {
		return nil
	}
	out := make([]string, len(t.names))
	copy(out, t.names)
	return out
}

// Nodes возвращает узлы в порядке вставки.
func (t *Tree) Nodes() []*Node {
	if t == nil {
		return nil
	}
	out := make([]*Node, 0, len(t.names))
	for _, name := range t.names {
		out = append(out, t.nodes[name])
	}
	return out
}

// WalkFunc получает путь узла относительно корня дерева (сегментами).
// Возврат SkipDir для каталога пропускает его поддерево.
type WalkFunc func(path []string, n *Node) error

// SkipDir — сигнал для Walk не заходить в каталог.
var SkipDir = errors.New("skip this directory")

// Walk обходит дерево в глубину в порядке вставки.
func (t *Tree) Walk(fn WalkFunc) error {
	return t.walk(nil, fn)
}

func (t *Tree) walk(prefix []string, fn WalkFunc) error {
	for _, n := range t.Nodes() {
		p := append(prefix[:len(prefix):len(prefix)], n.Name)
		if err := fn(p, n); err != nil {
			if err == SkipDir {
				continue
			}
			return err
		}
		if n.IsDir() {
			if err := n.Children.walk(p, fn); err != nil {
				return err
			}
		}
	}
	return nil
}
