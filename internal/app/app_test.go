package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pihapi/structgen/internal/fsops"
	"github.com/pihapi/structgen/internal/parser"
	"github.com/pihapi/structgen/internal/safety"
)

const asciiInput = "project/\n" +
	"├── config.py   # Configuration settings\n" +
	"├── data/\n" +
	"│   └── .gitkeep\n" +
	"└── utils/\n" +
	"    └── logger.py\n"

func writeInput(t *testing.T, text string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "struct")
	require.NoError(t, os.WriteFile(path, []byte(text), 0o644))
	return path
}

func TestRunASCII(t *testing.T) {
	out := t.TempDir()
	metricsFile := filepath.Join(t.TempDir(), "structgen.prom")
	var stdout bytes.Buffer

	res, err := Run(context.Background(), Options{
		InPath:      writeInput(t, asciiInput),
		Stdout:      &stdout,
		OutDir:      out,
		MetricsFile: metricsFile,
	})
	require.NoError(t, err)
	assert.Equal(t, parser.FormatASCII, res.Format)
	assert.Equal(t, fsops.Stats{Dirs: 2, Files: 3}, res.Planned)
	assert.Equal(t, 5, res.Created)

	assert.FileExists(t, filepath.Join(out, "config.py"))
	assert.FileExists(t, filepath.Join(out, "data", ".gitkeep"))
	assert.FileExists(t, filepath.Join(out, "utils", "logger.py"))
	assert.NoDirExists(t, filepath.Join(out, "project"))

	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	require.Len(t, lines, 7)
	assert.Equal(t, "Detected ASCII tree format. Creating structure...", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "[ 20%] Created file: "), lines[1])
	assert.True(t, strings.HasPrefix(lines[5], "[100%] "), lines[5])
	assert.Contains(t, lines[6], "Готово")

	data, err := os.ReadFile(metricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "structgen_entries_created_total 5")
}

func TestRunStdinQuiet(t *testing.T) {
	out := t.TempDir()
	var stdout bytes.Buffer

	res, err := Run(context.Background(), Options{
		InPath: "-",
		Stdin:  strings.NewReader("project/\n    src/\n        main.py\n    README.md\n"),
		Stdout: &stdout,
		OutDir: out,
		Quiet:  true,
	})
	require.NoError(t, err)
	assert.Equal(t, parser.FormatIndented, res.Format)
	assert.Equal(t, 4, res.Created)
	assert.Empty(t, stdout.String())
	assert.FileExists(t, filepath.Join(out, "project", "src", "main.py"))
}

func TestRunParseError(t *testing.T) {
	out := t.TempDir()
	_, err := Run(context.Background(), Options{
		InPath: writeInput(t, "a/\n  b/c\n"),
		Stdout: &bytes.Buffer{},
		OutDir: out,
	})
	var perr *parser.ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 2, perr.Line)

	entries, err := os.ReadDir(out)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRunEmptyInput(t *testing.T) {
	_, err := Run(context.Background(), Options{
		InPath: writeInput(t, "\n   \n"),
		Stdout: &bytes.Buffer{},
		OutDir: t.TempDir(),
	})
	assert.ErrorIs(t, err, ErrEmptyInput)
}

func TestRunMissingInput(t *testing.T) {
	_, err := Run(context.Background(), Options{
		InPath: filepath.Join(t.TempDir(), "nope"),
		OutDir: t.TempDir(),
	})
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRunOutDir(t *testing.T) {
	in := writeInput(t, "a/\n  b\n")
	out := filepath.Join(t.TempDir(), "new")

	_, err := Run(context.Background(), Options{InPath: in, Stdout: &bytes.Buffer{}, OutDir: out})
	assert.ErrorIs(t, err, safety.ErrOutDirMissing)

	// dry-run каталог не требует и ничего не создаёт
	var stdout bytes.Buffer
	res, err := Run(context.Background(), Options{InPath: in, Stdout: &stdout, OutDir: out, DryRun: true})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Created)
	assert.NoDirExists(t, out)
	assert.Contains(t, stdout.String(), "Dry-run")

	res, err = Run(context.Background(), Options{InPath: in, Stdout: &bytes.Buffer{}, OutDir: out, CreateOutDir: true})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Created)
	assert.FileExists(t, filepath.Join(out, "a", "b"))
}

func TestRunCreationError(t *testing.T) {
	out := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(out, "a"), nil, 0o644))

	res, err := Run(context.Background(), Options{
		InPath: writeInput(t, "a/\n  b\n"),
		Stdout: &bytes.Buffer{},
		OutDir: out,
	})
	var cerr *fsops.CreationError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, 0, res.Created)
}

func TestReadInput(t *testing.T) {
	text, err := ReadInput("-", strings.NewReader("x\n"))
	require.NoError(t, err)
	assert.Equal(t, "x\n", text)

	text, err = ReadInput(writeInput(t, "y\n"), nil)
	require.NoError(t, err)
	assert.Equal(t, "y\n", text)
}
