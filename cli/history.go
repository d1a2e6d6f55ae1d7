package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/yllada/ovpn-profile/vpn"
)

func (c *CLI) historyCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List imported profiles, most recent first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			h, err := c.history()
			if err != nil {
				return err
			}
			defer h.Close()

			records, err := h.List(cmd.Context(), limit)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(records) == 0 {
				fmt.Fprintln(out, "No profiles imported yet.")
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tOBJECT PATH\tIMPORTED\tSINGLE-USE\tPERSISTENT")
			fmt.Fprintln(w, "--\t----\t-----------\t--------\t----------\t----------")
			for _, rec := range records {
				// Truncate ID for display
				shortID := rec.ID
				if len(shortID) > 8 {
					shortID = shortID[:8]
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
					shortID, rec.Name, rec.ObjectPath,
					rec.ImportedAt.Local().Format("2006-01-02 15:04"),
					yesNo(rec.SingleUse), yesNo(rec.Persistent))
			}
			return w.Flush()
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "show at most `N` records (0 for all)")

	cmd.AddCommand(&cobra.Command{
		Use:   "delete ID",
		Short: "Remove a record from the history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := c.history()
			if err != nil {
				return err
			}
			defer h.Close()

			if err := h.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Deleted %s\n", successStyle.Render("✓"), args[0])
			return nil
		},
	})
	return cmd
}

func (c *CLI) history() (*vpn.History, error) {
	path, err := c.historyPath()
	if err != nil {
		return nil, err
	}
	return vpn.OpenHistory(path)
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
