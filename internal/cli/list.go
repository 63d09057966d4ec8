package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/stepviz/pkg/catalog"
	"github.com/matzehuels/stepviz/pkg/errors"
)

// Output formats shared by list and info.
const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

// listCommand creates the "list" command.
func (c *CLI) listCommand() *cobra.Command {
	var (
		category string
		format   string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List available algorithms",
		Example: `  stepviz list
  stepviz list --category trees
  stepviz list --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			descs := c.registry.List()
			if category != "" {
				cat, err := catalog.ParseCategory(category)
				if err != nil {
					return err
				}
				descs = c.registry.ByCategory(cat)
			}

			summaries := make([]catalog.Summary, len(descs))
			for i, d := range descs {
				summaries[i] = d.Summary()
			}
			return writeFormatted(cmd, format, summaries, func() string {
				return algorithmTable(descs)
			})
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "only list one category")
	cmd.Flags().StringVarP(&format, "format", "f", formatText, "output format: text, json or yaml")
	_ = cmd.RegisterFlagCompletionFunc("category", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		names := make([]string, len(catalog.Categories))
		for i, cat := range catalog.Categories {
			names[i] = string(cat)
		}
		return names, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

// algorithmTable renders descriptors as a bordered table.
func algorithmTable(descs []*catalog.Descriptor) string {
	rows := make([][]string, len(descs))
	for i, d := range descs {
		rows[i] = []string{d.ID, d.Name, string(d.Category), string(d.Difficulty), d.Complexity.Average}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("ID", "Name", "Category", "Level", "Average").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			base := lipgloss.NewStyle().Padding(0, 1)
			switch {
			case row == -1: // header
				return styleHeader.Padding(0, 1)
			case col == 0:
				return base.Foreground(colorCyan)
			case col >= 2:
				return base.Foreground(colorGray)
			}
			return base
		})
	return t.Render()
}

// writeFormatted encodes v as JSON or YAML, or prints text() for the text
// format.
func writeFormatted(cmd *cobra.Command, format string, v any, text func() string) error {
	w := cmd.OutOrStdout()
	switch strings.ToLower(format) {
	case formatText, "":
		fmt.Fprintln(w, text())
		return nil
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "unknown output format %q (want text, json or yaml)", format)
	}
}
