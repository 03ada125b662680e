package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/brandhub/core/internal/app"
	"github.com/brandhub/core/internal/modules/brand/profile"
	"github.com/spf13/cobra"
)

var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "Inspect business profiles",
}

var profilesJSON bool

var profilesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List profiles, oldest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		return withStores(ctx, func(stores *app.Stores) error {
			items, err := profile.NewService(stores.Profiles, newLogger()).List(ctx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if profilesJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(items)
			}
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tNICHE\tPERSONAS\tUPDATED")
			for _, p := range items {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n",
					p.ID, p.BusinessName, p.Niche, len(p.Personas), p.UpdatedAt.Format("2006-01-02 15:04"))
			}
			return tw.Flush()
		})
	},
}

func init() {
	profilesListCmd.Flags().BoolVar(&profilesJSON, "json", false, "Print full profiles as JSON")
	profilesCmd.AddCommand(profilesListCmd)
}
