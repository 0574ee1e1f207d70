package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/pihapi/structgen/internal/fsops"
	"github.com/pihapi/structgen/internal/logging"
	"github.com/pihapi/structgen/internal/metrics"
	"github.com/pihapi/structgen/internal/parser"
	"github.com/pihapi/structgen/internal/safety"
)

// ErrEmptyInput — во входе нет ни одной непустой строки.
var ErrEmptyInput = errors.New("пустое описание структуры")

// Options — все настройки запуска утилиты.
type Options struct {
	InPath       string    // путь к файлу или "-" для stdin
	Stdin        io.Reader // по умолчанию os.Stdin
	Stdout       io.Writer // сюда пишется прогресс, по умолчанию os.Stdout
	OutDir       string
	CreateOutDir bool // создать OutDir, если его нет
	DryRun       bool
	KeepExisting bool
	Quiet        bool
	DirPerm      os.FileMode
	FilePerm     os.FileMode
	ExecGlobs    []string
	DBMode0600   bool
	MetricsFile  string // пусто — метрики не пишутся
}

// Result — итог запуска.
type Result struct {
	Format  parser.Format
	Planned fsops.Stats
	Created int
	OutDir  string
}

// ReadInput читает описание структуры из файла или stdin.
func ReadInput(inPath string, stdin io.Reader) (string, error) {
	var r io.Reader
	if inPath == "-" || inPath == "" {
		r = stdin
		if r == nil {
			r = os.Stdin
		}
	} else {
		f, err := os.Open(inPath)
		if err != nil {
			return "", fmt.Errorf("не удалось открыть входной файл %q: %w", inPath, err)
		}
		defer f.Close()
		r = f
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("не удалось прочитать вход: %w", err)
	}
	return string(data), nil
}

// Run — главная функция приложения: читает вход, проверяет каталог
// назначения, парсит и создаёт структуру.
func Run(ctx context.Context, o Options) (res Result, err error) {
	ctx = logging.WithRunID(ctx, "")
	log := logging.FromContext(ctx)

	rec := metrics.New()
	defer func() {
		rec.RunFinished(string(res.Format), err)
		if o.MetricsFile == "" {
			return
		}
		if werr := rec.WriteFile(o.MetricsFile); werr != nil {
			log.Warn("metrics not written", zap.String("path", o.MetricsFile), zap.Error(werr))
		}
	}()

	stdout := o.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	say := func(format string, args ...interface{}) {
		if !o.Quiet {
			fmt.Fprintf(stdout, format+"\n", args...)
		}
	}

	// 1) Читаем вход.
	text, err := ReadInput(o.InPath, o.Stdin)
	if err != nil {
		return res, err
	}
	if strings.TrimSpace(text) == "" {
		return res, ErrEmptyInput
	}

	// 2) Каталог назначения: существует, доступен на запись (или создаём).
	outDir := o.OutDir
	if outDir == "" {
		outDir = "."
	}
	if abs, err := filepath.Abs(outDir); err == nil {
		outDir = abs
	}
	res.OutDir = outDir
	if !o.DryRun {
		created, err := safety.CheckOutDir(outDir, o.CreateOutDir, dirPerm(o))
		if err != nil {
			return res, err
		}
		if created {
			log.Info("output directory created", zap.String("path", outDir))
		}
	}

	// 3) Парсим дерево.
	start := time.Now()
	tree, format, err := parser.Parse(text)
	rec.ObserveParse(time.Since(start))
	res.Format = format
	if err != nil {
		return res, fmt.Errorf("ошибка парсинга структуры: %w", err)
	}
	res.Planned = fsops.Tally(tree)
	rec.SetPlanned(res.Planned.Dirs, res.Planned.Files)
	log.Info("tree parsed",
		zap.String("format", string(format)),
		zap.Int("dirs", res.Planned.Dirs),
		zap.Int("files", res.Planned.Files),
		zap.Int("comments", res.Planned.Comments),
	)
	say("Detected %s format. Creating structure...", format)

	// 4) Создаём.
	start = time.Now()
	res.Created, err = fsops.Materialize(ctx, outDir, tree, fsops.Options{
		DryRun:       o.DryRun,
		KeepExisting: o.KeepExisting,
		DirPerm:      o.DirPerm,
		FilePerm:     o.FilePerm,
		ExecGlobs:    o.ExecGlobs,
		DBMode0600:   o.DBMode0600,
		Progress: func(status string, percent float64) {
			say("[%3.0f%%] %s", percent, status)
		},
	})
	rec.ObserveCreate(res.Created, time.Since(start))
	if err != nil {
		log.Error("creation aborted", zap.Int("created", res.Created), zap.Error(err))
		return res, fmt.Errorf("не удалось создать структуру: %w", err)
	}
	log.Info("structure created", zap.String("out", outDir), zap.Int("created", res.Created))

	// 5) Готово.
	if o.DryRun {
		say("Dry-run: будет создано элементов: %d в %s", res.Created, outDir)
	} else {
		say("Готово: создано элементов: %d в %s", res.Created, outDir)
	}
	return res, nil
}

func dirPerm(o Options) os.FileMode {
	if o.DirPerm == 0 {
		return fsops.DefaultDirPerm
	}
	return o.DirPerm
}
