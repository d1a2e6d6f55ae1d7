package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yllada/ovpn-profile/common"
	"github.com/yllada/ovpn-profile/vpn"
)

func (c *CLI) importCommand() *cobra.Command {
	var (
		name       string
		singleUse  bool
		persistent bool
	)

	cmd := &cobra.Command{
		Use:   "import [flags] -- OPENVPN-OPTIONS...",
		Short: "Import the profile into the OpenVPN 3 configuration manager",
		Example: `  ovpn-profile import -- --config client.ovpn
  ovpn-profile import --name work --persistent -- --config client.ovpn --profile-override dns-sync-lookup yes`,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := c.parse(args)
			if err != nil {
				return err
			}

			opts := vpn.ImportOptions{
				Name:       name,
				SingleUse:  c.cfg.SingleUse,
				Persistent: c.cfg.Persistent,
			}
			if cmd.Flags().Changed("single-use") {
				opts.SingleUse = singleUse
			}
			if cmd.Flags().Changed("persistent") {
				opts.Persistent = persistent
			}

			service, closeFn, err := c.connect()
			if err != nil {
				return err
			}
			defer closeFn()

			history := c.openHistory()
			if history != nil {
				defer history.Close()
			}

			rec, err := vpn.NewImporter(service, history).Import(cmd.Context(), res, opts)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s Imported %s as %s\n", successStyle.Render("✓"), rec.Name, rec.ObjectPath)
			reportWarnings(cmd, res)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "configuration name (default: the --config file name)")
	cmd.Flags().BoolVar(&singleUse, "single-use", false, "remove the configuration after its first session")
	cmd.Flags().BoolVar(&persistent, "persistent", false, "keep the configuration across reboots")
	return cmd
}

// openHistory opens the import history when enabled. Failures only
// disable recording.
func (c *CLI) openHistory() *vpn.History {
	if !c.cfg.HistoryEnabled {
		return nil
	}
	path, err := c.historyPath()
	if err != nil {
		common.LogWarn("Import history disabled: %v", err)
		return nil
	}
	h, err := vpn.OpenHistory(path)
	if err != nil {
		common.LogWarn("Import history disabled: %v", err)
		return nil
	}
	return h
}
