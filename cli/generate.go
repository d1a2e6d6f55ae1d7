package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yllada/ovpn-profile/common"
	"github.com/yllada/ovpn-profile/parser"
)

func (c *CLI) generateCommand() *cobra.Command {
	var (
		output string
		check  bool
	)

	cmd := &cobra.Command{
		Use:   "generate [flags] -- OPENVPN-OPTIONS...",
		Short: "Print the profile built from OpenVPN 2 options",
		Example: `  ovpn-profile generate -- --config client.ovpn
  ovpn-profile generate --check --output work.conf -- --client --remote vpn.example.org 1194 --ca ca.pem`,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := c.parse(args)
			if err != nil {
				return err
			}
			if check {
				if err := res.SanityCheck(); err != nil {
					return err
				}
			}

			profile := res.Generate()
			if output == "" {
				fmt.Fprintln(cmd.OutOrStdout(), profile)
				reportWarnings(cmd, res)
				return nil
			}

			if err := common.WriteFileAtomic(output, []byte(profile+"\n"), 0600); err != nil {
				return fmt.Errorf("writing %s: %w", output, err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "%s Profile written to %s\n", successStyle.Render("✓"), output)
			reportWarnings(cmd, res)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write the profile to `FILE` instead of stdout")
	cmd.Flags().BoolVar(&check, "check", false, "fail unless --client, --remote and --ca are present")
	return cmd
}

// reportWarnings summarizes the ignored options that were already logged.
func reportWarnings(cmd *cobra.Command, res *parser.Result) {
	if n := len(res.Warnings()); n > 0 {
		fmt.Fprintln(cmd.ErrOrStderr(),
			warningStyle.Render(fmt.Sprintf("%d option(s) not supported by OpenVPN 3 were ignored", n)))
	}
}
