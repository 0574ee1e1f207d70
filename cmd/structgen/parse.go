package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pihapi/structgen/internal/app"
	"github.com/pihapi/structgen/internal/fsops"
	"github.com/pihapi/structgen/internal/parser"
	"github.com/pihapi/structgen/internal/plan"
)

func readTree(cmd *cobra.Command, in string) (*plan.Tree, parser.Format, string, error) {
	text, err := app.ReadInput(in, cmd.InOrStdin())
	if err != nil {
		return nil, "", "", err
	}
	t, format, err := parser.Parse(text)
	if err != nil {
		return nil, format, text, fmt.Errorf("ошибка парсинга структуры: %w", err)
	}
	return t, format, text, nil
}

func newParseCmd(g *globals) *cobra.Command {
	var in, output string

	cmd := &cobra.Command{
		Use:   "parse",
		Short: "Разобрать дерево и напечатать его без создания файлов",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, format, text, err := readTree(cmd, in)
			if err != nil {
				return err
			}
			if !g.quiet {
				cmd.PrintErrf("Detected %s format, %d items\n", format, fsops.Count(t))
			}

			switch output {
			case "tree":
				root := "."
				if format == parser.FormatASCII {
					root = parser.RootName(text)
				}
				fmt.Fprint(cmd.OutOrStdout(), plan.RenderASCII(root, t))
			case "indent":
				fmt.Fprint(cmd.OutOrStdout(), plan.RenderIndented(t))
			case "yaml":
				s, err := plan.RenderYAML(t)
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), s)
			default:
				return fmt.Errorf("неизвестный формат вывода %q (tree, indent, yaml)", output)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&in, "in", "i", "struct", "Путь к входному файлу со структурой ('-' для stdin)")
	cmd.Flags().StringVar(&output, "output", "tree", "Формат вывода: tree, indent или yaml")
	return cmd
}

func newCountCmd(g *globals) *cobra.Command {
	var in string

	cmd := &cobra.Command{
		Use:   "count",
		Short: "Напечатать число создаваемых элементов",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, _, _, err := readTree(cmd, in)
			if err != nil {
				return err
			}
			s := fsops.Tally(t)
			fmt.Fprintln(cmd.OutOrStdout(), s.Total())
			if g.verbose {
				cmd.PrintErrf("dirs: %d, files: %d, comments skipped: %d\n", s.Dirs, s.Files, s.Comments)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&in, "in", "i", "struct", "Путь к входному файлу со структурой ('-' для stdin)")
	return cmd
}
