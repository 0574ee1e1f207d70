package plan

import (
	"strings"

	"gopkg.in/yaml.v2"
)

// RenderIndented печатает дерево в формате с отступами (4 пробела на уровень).
// Результат снова разбирается парсером в то же дерево.
func RenderIndented(t *Tree) string {
	var b strings.Builder
	_ = t.Walk(func(path []string, n *Node) error {
		b.WriteString(strings.Repeat("    ", len(path)-1))
		b.WriteString(n.Name)
		if n.IsDir() {
			b.WriteByte('/')
		}
		b.WriteByte('\n')
		return nil
	})
	return b.String()
}

// RenderASCII печатает дерево так, как это делает утилита tree.
func RenderASCII(root string, t *Tree) string {
	var b strings.Builder
	b.WriteString(strings.TrimSuffix(root, "/"))
	b.WriteString("/\n")
	renderASCII(&b, "", t)
	return b.String()
}

func renderASCII(b *strings.Builder, prefix string, t *Tree) {
	nodes := t.Nodes()
	for i, n := range nodes {
		last := i == len(nodes)-1
		branch, next := "├── ", "│   "
		if last {
			branch, next = "└── ", "    "
		}
		b.WriteString(prefix)
		b.WriteString(branch)
		b.WriteString(n.Name)
		if n.IsDir() {
			b.WriteByte('/')
			b.WriteByte('\n')
			renderASCII(b, prefix+next, n.Children)
			continue
		}
		b.WriteByte('\n')
	}
}

// MapSlice переводит дерево во вложенный yaml.MapSlice: каталог — отображение,
// файл — null. MapSlice сохраняет порядок ключей.
func (t *Tree) MapSlice() yaml.MapSlice {
	out := yaml.MapSlice{}
	for _, n := range t.Nodes() {
		var v interface{}
		if n.IsDir() {
			v = n.Children.MapSlice()
		}
		out = append(out, yaml.MapItem{Key: n.Name, Value: v})
	}
	return out
}

// RenderYAML сериализует дерево в YAML.
func RenderYAML(t *Tree) (string, error) {
	data, err := yaml.Marshal(t.MapSlice())
	if err != nil {
		return "", err
	}
	return string(data), nil
}
