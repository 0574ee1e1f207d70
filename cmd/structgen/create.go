package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pihapi/structgen/internal/app"
	"github.com/pihapi/structgen/internal/config"
)

func newCreateCmd(g *globals) *cobra.Command {
	var (
		in, out, dperm, fperm, execGlob, metricsFile string
		dry, keep, mkdir, db0600                     bool
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Создать структуру на диске",
		Example: `  structgen create -i struct -o .
  cat struct | structgen create -i - -o ./dst -v
  structgen create -i struct --dry`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := g.cfg
			flags := cmd.Flags()

			// Флаг, заданный явно, сильнее настроек.
			if flags.Changed("out") {
				cfg.OutDir = out
			}
			if flags.Changed("dperm") {
				cfg.DirPerm = dperm
			}
			if flags.Changed("fperm") {
				cfg.FilePerm = fperm
			}
			if flags.Changed("exec-glob") {
				cfg.ExecGlobs = config.SplitGlobs(execGlob)
			}
			if flags.Changed("db-0600") {
				cfg.DBMode0600 = db0600
			}
			if flags.Changed("keep-existing") {
				cfg.KeepExisting = keep
			}
			if flags.Changed("metrics-file") {
				cfg.MetricsFile = metricsFile
			}

			dirMode, err := config.ParsePerm(cfg.DirPerm, 0o755)
			if err != nil {
				return fmt.Errorf("неверные права --dperm: %w", err)
			}
			fileMode, err := config.ParsePerm(cfg.FilePerm, 0o644)
			if err != nil {
				return fmt.Errorf("неверные права --fperm: %w", err)
			}

			_, err = app.Run(cmd.Context(), app.Options{
				InPath:       in,
				Stdin:        cmd.InOrStdin(),
				Stdout:       cmd.OutOrStdout(),
				OutDir:       cfg.OutDir,
				CreateOutDir: mkdir,
				DryRun:       dry,
				KeepExisting: cfg.KeepExisting,
				Quiet:        g.quiet,
				DirPerm:      dirMode,
				FilePerm:     fileMode,
				ExecGlobs:    cfg.ExecGlobs,
				DBMode0600:   cfg.DBMode0600,
				MetricsFile:  cfg.MetricsFile,
			})
			return err
		},
	}

	f := cmd.Flags()
	f.StringVarP(&in, "in", "i", "struct", "Путь к входному файлу со структурой ('-' для stdin)")
	f.StringVarP(&out, "out", "o", ".", "Каталог, внутри которого создаётся структура")
	f.BoolVar(&dry, "dry", false, "Dry-run: только показать, что будет создано")
	f.BoolVar(&keep, "keep-existing", false, "Не усекать уже существующие файлы")
	f.BoolVar(&mkdir, "mkdir", false, "Создать каталог назначения, если его нет")
	f.StringVar(&dperm, "dperm", "0755", "Права для каталогов (восьмерично)")
	f.StringVar(&fperm, "fperm", "0644", "Права для файлов (восьмерично)")
	f.StringVar(&execGlob, "exec-glob", "", "Glob-шаблоны исполняемых файлов через запятую, например \"*.sh,bin/*\"")
	f.BoolVar(&db0600, "db-0600", false, "Ставить 0600 на файлы *.db/*.sqlite/*.sqlite3")
	f.StringVar(&metricsFile, "metrics-file", "", "Записать метрики запуска в файл (формат Prometheus)")
	return cmd
}
