package fsops

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/pihapi/structgen/internal/logging"
	"github.com/pihapi/structgen/internal/plan"
	"github.com/pihapi/structgen/internal/safety"
)

const (
	DefaultDirPerm  os.FileMode = 0o755
	DefaultFilePerm os.FileMode = 0o644
)

// Progress получает сообщение о созданном элементе и процент выполнения.
type Progress func(status string, percent float64)

// Options — параметры создания структуры на диске.
type Options struct {
	DryRun       bool // только сообщить, что будет создано
	KeepExisting bool // не усекать существующие файлы
	DirPerm      os.FileMode
	FilePerm     os.FileMode
	ExecGlobs    []string // файлы по этим шаблонам получают 0755
	DBMode0600   bool     // *.db/*.sqlite/*.sqlite3 получают 0600
	Progress     Progress // может быть nil
}

// ErrConflict — на месте каталога лежит файл или наоборот.
var ErrConflict = errors.New("конфликт типов")

// CreationError — не удалось создать элемент. Уже созданное остаётся на диске.
type CreationError struct {
	Op   string
	Path string
	Err  error
}

func (e *CreationError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *CreationError) Unwrap() error { return e.Err }

type materializer struct {
	base    string
	o       Options
	log     *zap.Logger
	total   int
	created int
}

// Materialize создаёт дерево t внутри base и возвращает число обработанных
// элементов. Каталоги создаются при отсутствии, файлы создаются пустыми
// (существующие усекаются, если не задан KeepExisting). Комментарии
// пропускаются вместе с поддеревом. Первая же ошибка прерывает обход.
func Materialize(ctx context.Context, base string, t *plan.Tree, o Options) (int, error) {
	if o.DirPerm == 0 {
		o.DirPerm = DefaultDirPerm
	}
	if o.FilePerm == 0 {
		o.FilePerm = DefaultFilePerm
	}
	m := &materializer{
		base:  base,
		o:     o,
		log:   logging.FromContext(ctx),
		total: Count(t),
	}

	err := t.Walk(func(path []string, n *plan.Node) error {
		if n.IsComment() {
			m.log.Debug("comment skipped", zap.String("name", n.Name))
			return plan.SkipDir
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		target, err := safety.SafeJoin(base, path...)
		if err != nil {
			return &CreationError{Op: "join", Path: filepath.Join(path...), Err: err}
		}

		var status string
		if n.IsDir() {
			status, err = m.ensureDir(target)
		} else {
			status, err = m.ensureFile(target)
		}
		if err != nil {
			return err
		}
		m.created++
		m.report(status)
		return nil
	})
	return m.created, err
}

func (m *materializer) report(status string) {
	if m.o.Progress == nil {
		return
	}
	percent := 100.0
	if m.total > 0 {
		percent = float64(m.created) / float64(m.total) * 100
	}
	m.o.Progress(status, percent)
}

func (m *materializer) ensureDir(path string) (string, error) {
	// Stat, а не Lstat: симлинк на существующий каталог годится как каталог
	info, err := os.Stat(path)
	switch {
	case err == nil && info.IsDir():
		// Каталог уже существует — ок
		m.log.Debug("dir exists", zap.String("path", path))
		return "Directory exists: " + path, nil

	case err == nil:
		return "", &CreationError{Op: "mkdir", Path: path, Err: fmt.Errorf("%w: по этому пути уже существует файл", ErrConflict)}

	case errors.Is(err, fs.ErrNotExist):
		if m.o.DryRun {
			return "mkdir -p " + path, nil
		}
		if err := os.MkdirAll(path, m.o.DirPerm); err != nil {
			return "", &CreationError{Op: "mkdir", Path: path, Err: err}
		}
		// MkdirAll учитывает umask, выставляем права явно
		if err := os.Chmod(path, m.o.DirPerm); err != nil {
			return "", &CreationError{Op: "chmod", Path: path, Err: err}
		}
		m.log.Debug("dir created", zap.String("path", path))
		return "Created directory: " + path, nil

	default:
		return "", &CreationError{Op: "stat", Path: path, Err: err}
	}
}

func (m *materializer) ensureFile(path string) (string, error) {
	// Готовим родительскую директорию
	if !m.o.DryRun {
		if err := os.MkdirAll(filepath.Dir(path), m.o.DirPerm); err != nil {
			return "", &CreationError{Op: "mkdir", Path: filepath.Dir(path), Err: err}
		}
	}

	mode := m.fileMode(path)

	info, err := os.Lstat(path)
	switch {
	case err == nil && info.IsDir():
		return "", &CreationError{Op: "create", Path: path, Err: fmt.Errorf("%w: по этому пути уже есть каталог", ErrConflict)}

	case err == nil:
		if m.o.KeepExisting {
			m.log.Debug("file exists, kept", zap.String("path", path))
			return "Kept existing file: " + path, nil
		}
		if m.o.DryRun {
			return "truncate " + path, nil
		}
		if err := touch(path, os.O_WRONLY|os.O_TRUNC, mode); err != nil {
			return "", &CreationError{Op: "truncate", Path: path, Err: err}
		}
		m.log.Debug("file truncated", zap.String("path", path))
		return "Created file: " + path, nil

	case errors.Is(err, fs.ErrNotExist):
		if m.o.DryRun {
			return "touch " + path, nil
		}
		if err := touch(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode); err != nil {
			return "", &CreationError{Op: "create", Path: path, Err: err}
		}
		m.log.Debug("file created", zap.String("path", path), zap.Stringer("mode", mode))
		return "Created file: " + path, nil

	default:
		return "", &CreationError{Op: "stat", Path: path, Err: err}
	}
}

func touch(path string, flag int, mode os.FileMode) error {
	f, err := os.OpenFile(path, flag, mode)
	if err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Chmod(path, mode)
}

func (m *materializer) fileMode(path string) os.FileMode {
	rel := path
	if r, err := filepath.Rel(m.base, path); err == nil {
		rel = r
	}
	relSl := filepath.ToSlash(rel)
	lower := strings.ToLower(relSl)

	if m.o.DBMode0600 && (strings.HasSuffix(lower, ".db") ||
		strings.HasSuffix(lower, ".sqlite") ||
		strings.HasSuffix(lower, ".sqlite3")) {
		return 0o600
	}

	// Исполняемые по glob
	for _, pat := range m.o.ExecGlobs {
		if ok, _ := filepath.Match(filepath.ToSlash(pat), relSl); ok {
			return 0o755
		}
	}
	return m.o.FilePerm
}
