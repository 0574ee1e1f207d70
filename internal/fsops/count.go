package fsops

import "github.com/pihapi/structgen/internal/plan"

// Stats — сколько элементов дерева будет создано на диске.
type Stats struct {
	Dirs     int
	Files    int
	Comments int // пропущенные комментарии (без учёта их поддеревьев)
}

// Total — число создаваемых элементов.
func (s Stats) Total() int { return s.Dirs + s.Files }

// Tally считает каталоги и файлы. Комментарий пропускается вместе со
// всем своим поддеревом, как и при создании.
func Tally(t *plan.Tree) Stats {
	var s Stats
	_ = t.Walk(func(_ []string, n *plan.Node) error {
		if n.IsComment() {
			s.Comments++
			return plan.SkipDir
		}
		if n.IsDir() {
			s.Dirs++
		} else {
			s.Files++
		}
		return nil
	})
	return s
}

// Count — число элементов, которые создаст Materialize. Ноль допустим.
func Count(t *plan.Tree) int {
	return Tally(t).Total()
}
