package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/yllada/ovpn-profile/common"
	"github.com/yllada/ovpn-profile/parser"
)

func (c *CLI) completionDataCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "completion-data",
		Short: "Print the option names and values used by shell completion",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data := parser.DefaultRegistry().Completion()
			out := cmd.OutOrStdout()

			switch format {
			case common.FormatJSON:
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(data)
			case common.FormatYAML:
				enc := yaml.NewEncoder(out)
				enc.SetIndent(2)
				if err := enc.Encode(data); err != nil {
					return err
				}
				return enc.Close()
			}
			return fmt.Errorf("unsupported format %q (use json or yaml)", format)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", common.FormatJSON, "output format: json or yaml")
	return cmd
}
