package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/yllada/ovpn-profile/parser"
)

func (c *CLI) optionsCommand() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "options",
		Short: "List the recognized OpenVPN options",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), optionsTable(parser.DefaultRegistry().Options(), all))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, "include options accepted but ignored")
	return cmd
}

func optionsTable(specs []parser.OptionSpec, all bool) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers("OPTION", "ARGUMENTS", "ARITY", "VALUES", "DESCRIPTION").
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	for _, spec := range specs {
		help := spec.Help
		switch spec.Group {
		case parser.GroupIgnored:
			if !all {
				continue
			}
			help = "(ignored) " + help
		case parser.GroupTechPreview:
			help = "(tech preview) " + help
		}
		t.Row("--"+spec.Name, spec.Metavar, spec.Arity.Describe(),
			strings.Join(spec.CompletionValues(), ","), help)
	}
	return t.Render()
}
