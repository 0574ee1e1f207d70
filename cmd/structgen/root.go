package main

import (
	"github.com/spf13/cobra"

	"github.com/pihapi/structgen/internal/config"
	"github.com/pihapi/structgen/internal/logging"
)

const formatHelp = `
Формат входного файла (определяется автоматически):

  С отступами — вложенность задаётся отступом, каталог отмечается "/":
    project/
        src/
            main.py
        README.md

  ASCII-дерево, как печатает tree. Первая строка — корень; создаются его дети:
    project/
    ├── config.py        # комментарии после # игнорируются
    ├── data/
    │   └── .gitkeep
    └── utils/
        └── logger.py

  Строки, начинающиеся с "#", — комментарии: на диске не создаются.
`

// globals — общие флаги и загруженные настройки.
type globals struct {
	cfg        *config.Config
	configPath string
	logFormat  string
	verbose    bool
	quiet      bool
}

func newRootCmd(version string) *cobra.Command {
	g := &globals{cfg: config.Default()}

	root := &cobra.Command{
		Use:           "structgen",
		Short:         "Создаёт структуру каталогов и файлов из текстового дерева",
		Long:          "structgen создаёт проектную структуру из текстового дерева (с отступами или в стиле tree).\n" + formatHelp,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return g.load(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logging.Sync()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&g.configPath, "config", "", "YAML-файл настроек (или $"+config.EnvConfigFile+")")
	pf.StringVar(&g.logFormat, "log-format", "", "Формат логов: console или json")
	pf.BoolVarP(&g.verbose, "verbose", "v", false, "Подробный вывод")
	pf.BoolVarP(&g.quiet, "quiet", "q", false, "Тихий режим (подавить обычные сообщения)")

	root.AddCommand(
		newCreateCmd(g),
		newParseCmd(g),
		newCountCmd(g),
		newVersionCmd(version),
	)
	return root
}

func (g *globals) load(cmd *cobra.Command) error {
	cfg, err := config.Load(g.configPath)
	if err != nil {
		return err
	}
	g.cfg = cfg

	level := cfg.LogLevel
	switch {
	case g.verbose:
		level = "debug"
	case g.quiet:
		level = "error"
	}
	if cmd.Flags().Changed("log-format") {
		cfg.LogFormat = g.logFormat
	}
	if err := logging.Init(logging.Config{Level: level, Format: cfg.LogFormat}); err != nil {
		return err
	}
	logging.S().Debugw("config loaded",
		"config", g.configPath,
		"out", cfg.OutDir,
		"level", level,
		"format", cfg.LogFormat,
	)
	return nil
}
