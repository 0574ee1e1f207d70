package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pihapi/structgen/internal/plan"
	"github.com/pihapi/structgen/internal/safety"
)

func TestParseIndented(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "project example",
			in: "project/\n" +
				"    src/\n" +
				"        main.py\n" +
				"    README.md\n",
			want: "project/\n" +
				"    src/\n" +
				"        main.py\n" +
				"    README.md\n",
		},
		{
			name: "blank lines and several top-level entries",
			in:   "\n\na/\n\n  x\n\nb.txt\nc/\n",
			want: "a/\n    x\nb.txt\nc/\n",
		},
		{
			name: "dedent to an intermediate level",
			in:   "a/\n    b/\n        c\n  d\n",
			want: "a/\n    b/\n        c\n    d\n",
		},
		{
			name: "comment entries are kept",
			in:   "a/\n  # TODO: fill/in\n  #drafts/\n    x\n",
			want: "a/\n    # TODO: fill/in\n    #drafts/\n        x\n",
		},
		{
			name: "duplicate names: last write wins without merge",
			in:   "a/\n  x\nb\na/\n  y\n",
			want: "a/\n    y\nb\n",
		},
		{
			name: "tab counts as one character",
			in:   "a/\n\tb/\n  c\n",
			want: "a/\n    b/\n        c\n",
		},
		{
			name: "windows line endings",
			in:   "a/\r\n  b\r\n",
			want: "a/\n    b\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree, err := ParseIndented(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, plan.RenderIndented(tree))
		})
	}
}

func TestParseIndentedInvalidName(t *testing.T) {
	tests := []struct {
		in       string
		line     int
		wantName string
	}{
		{"a/\n  src/main.py\n", 2, "src/main.py"},
		{"a/\n\n  b/c/\n", 3, "b/c"},
		{`x\y`, 1, `x\y`},
		{"ok\n/\n", 2, ""},
	}
	for _, tt := range tests {
		tree, err := ParseIndented(tt.in)
		assert.Nil(t, tree)

		var perr *ParseError
		require.ErrorAs(t, err, &perr, tt.in)
		assert.Equal(t, tt.line, perr.Line)

		var nerr *safety.InvalidNameError
		require.ErrorAs(t, err, &nerr)
		assert.Equal(t, tt.wantName, nerr.Name)
		assert.Contains(t, err.Error(), "строка")
	}
}

func TestParseASCII(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "project example",
			in: "project/\n" +
				"├── a.py\n" +
				"└── sub/\n" +
				"    └── b.py\n",
			want: "a.py\nsub/\n    b.py\n",
		},
		{
			name: "siblings after a nested directory",
			in: "project/\n" +
				"├── config.py                    # Configuration settings\n" +
				"├── main.py                      # Entry point\n" +
				"├── data/\n" +
				"│   └── .gitkeep\n" +
				"└── utils/\n" +
				"    ├── __init__.py\n" +
				"    └── logger.py\n",
			want: "config.py\nmain.py\ndata/\n    .gitkeep\nutils/\n    __init__.py\n    logger.py\n",
		},
		{
			name: "deep nesting and return to the top",
			in: "p/\n" +
				"├── a/\n" +
				"│   ├── b/\n" +
				"│   │   └── c.txt\n" +
				"│   └── d.txt\n" +
				"└── e.txt\n",
			want: "a/\n    b/\n        c.txt\n    d.txt\ne.txt\n",
		},
		{
			name: "comment-only lines and tree summary are skipped",
			in: "p/\n" +
				"├── # generated\n" +
				"├── x/   # dir comment\n" +
				"│   └── y\n" +
				"└── z\n" +
				"\n" +
				"1 directory, 2 files\n",
			want: "x/\n    y\nz\n",
		},
		{
			name: "single dash connector",
			in:   "p/\n├─ a\n└─ b/\n   └─ c\n",
			want: "a\nb/\n    c\n",
		},
		{
			name: "synthetic root keeps the first line as an entry",
			in:   "readme.md\n├── a.py\n└── lib/\n",
			want: "readme.md\na.py\nlib/\n",
		},
		{
			name: "line without connector becomes a top-level entry",
			in:   "p/\n├── a/\n│   └── b\nstray.txt\n",
			want: "a/\n    b\nstray.txt\n",
		},
		{
			name: "leading blank lines before the root",
			in:   "\n\n  p/\n└── a\n",
			want: "a\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree, err := ParseASCII(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, plan.RenderIndented(tree))
		})
	}
}

func TestParseASCIINestsByBranchColumn(t *testing.T) {
	// y стоит в той же колонке, что и a/, значит это сосед a/, а не ребёнок
	tree, err := ParseASCII("p/\n├── a/\n│   └── x\n└── y\n")
	require.NoError(t, err)
	assert.Equal(t, "a/\n    x\ny\n", plan.RenderIndented(tree))
}

func TestParseASCIIEmpty(t *testing.T) {
	tree, err := ParseASCII("\n \n")
	require.NoError(t, err)
	assert.Equal(t, 0, tree.Len())

	tree, err = ParseASCII("project/\n")
	require.NoError(t, err)
	assert.Equal(t, 0, tree.Len())
}

func TestParseASCIIInvalidName(t *testing.T) {
	_, err := ParseASCII("p/\n├── ok\n└── bad\\name\n")

	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 3, perr.Line)

	var nerr *safety.InvalidNameError
	require.ErrorAs(t, err, &nerr)
	assert.Equal(t, `bad\name`, nerr.Name)
}

func TestRootName(t *testing.T) {
	assert.Equal(t, "project", RootName("\nproject/\n├── a\n"))
	assert.Equal(t, SyntheticRoot, RootName("project\n├── a\n"))
	assert.Equal(t, SyntheticRoot, RootName(""))
}

func TestDetect(t *testing.T) {
	assert.Equal(t, FormatIndented, Detect("a/\n  b\n"))
	assert.Equal(t, FormatIndented, Detect("a/\n|-- b\n"))
	for _, glyph := range []string{"├", "└", "│", "─"} {
		assert.Equal(t, FormatASCII, Detect("a/\n"+glyph+" b\n"), glyph)
	}
}

func TestParse(t *testing.T) {
	tree, format, err := Parse("project/\n    src/\n        main.py\n    README.md\n")
	require.NoError(t, err)
	assert.Equal(t, FormatIndented, format)
	assert.Equal(t, []string{"project"}, tree.Names())

	tree, format, err = Parse("project/\n├── a.py\n└── sub/\n    └── b.py\n")
	require.NoError(t, err)
	assert.Equal(t, FormatASCII, format)
	assert.Equal(t, []string{"a.py", "sub"}, tree.Names())

	tree, format, err = Parse("a/\n  b/c\n")
	assert.Nil(t, tree)
	assert.Equal(t, FormatIndented, format)
	var perr *ParseError
	assert.ErrorAs(t, err, &perr)
}

func TestParseVeryLongLine(t *testing.T) {
	long := strings.Repeat("x", 2<<20)
	tree, format, err := Parse("a/\n  " + long)
	require.NoError(t, err)
	assert.Equal(t, FormatIndented, format)

	a, ok := tree.Get("a")
	require.True(t, ok)
	_, ok = a.Children.Get(long)
	assert.True(t, ok)
}

func TestParseReader(t *testing.T) {
	tree, format, err := ParseReader(strings.NewReader("p/\n└── x\n"))
	require.NoError(t, err)
	assert.Equal(t, FormatASCII, format)
	assert.Equal(t, []string{"x"}, tree.Names())
}

func TestAncestorsAreNotSharedBetweenSteps(t *testing.T) {
	base := rootAncestors().push(0, "a")
	left := base.push(4, "b")
	right := base.push(4, "c")

	assert.Equal(t, []string{"a", "b"}, left.names())
	assert.Equal(t, []string{"a", "c"}, right.names())
	assert.Equal(t, []string{"a"}, left.above(4).names())
	assert.Empty(t, left.above(0).names())
}
