package safety

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// InvalidNameError — имя узла не годится для создания на диске.
type InvalidNameError struct {
	Name string
}

func (e *InvalidNameError) Error() string {
	if e.Name == "" {
		return "пустое имя"
	}
	return fmt.Sprintf("недопустимое имя %q: имя не должно содержать '/' или '\\'", e.Name)
}

var (
	ErrOutDirMissing = errors.New("каталог назначения не существует")
	ErrNotWritable   = errors.New("нет прав на запись")
	ErrEscapesRoot   = errors.New("попытка выхода за пределы корня")
)

// ValidateName проверяет, что имя — один непустой путь-сегмент без разделителей.
// Комментарии ("#...") могут содержать что угодно: на диске они не создаются.
func ValidateName(name string) error {
	if name == "" {
		return &InvalidNameError{Name: name}
	}
	if strings.HasPrefix(name, "#") {
		return nil
	}
	if strings.ContainsAny(name, `/\`) {
		return &InvalidNameError{Name: name}
	}
	return nil
}

// SafeJoin объединяет root и parts и убеждается, что результат остаётся внутри root.
func SafeJoin(root string, parts ...string) (string, error) {
	p := filepath.Join(append([]string{root}, parts...)...)
	cleanRoot := filepath.Clean(root)
	cleanP := filepath.Clean(p)

	rel, err := filepath.Rel(cleanRoot, cleanP)
	if err != nil {
		return "", err
	}
	relSl := filepath.ToSlash(rel)
	if relSl == ".." || strings.HasPrefix(relSl, "../") {
		return "", fmt.Errorf("%w: %s", ErrEscapesRoot, p)
	}
	return cleanP, nil
}
