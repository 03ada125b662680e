package main

import (
	"fmt"
	"os"

	"github.com/brandhub/core/internal/app"
	"github.com/brandhub/core/internal/modules/brand/profile"
	"github.com/brandhub/core/internal/modules/campaign/campaign"
	"github.com/spf13/cobra"
)

var campaignsCmd = &cobra.Command{
	Use:   "campaigns",
	Short: "Inspect and export saved campaigns",
}

var (
	exportFormat string
	exportOutput string
)

var campaignsExportCmd = &cobra.Command{
	Use:   "export <campaign-id>",
	Short: "Render a campaign as markdown or HTML",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		return withStores(ctx, func(stores *app.Stores) error {
			log := newLogger()
			profiles := profile.NewService(stores.Profiles, log)
			doc, err := campaign.NewService(stores.Campaigns, profiles, log).Export(ctx, args[0], exportFormat)
			if err != nil {
				return err
			}
			if exportOutput == "" || exportOutput == "-" {
				_, err = fmt.Fprint(cmd.OutOrStdout(), doc)
				return err
			}
			return os.WriteFile(exportOutput, []byte(doc), 0o644)
		})
	},
}

var campaignsListCmd = &cobra.Command{
	Use:   "list <profile-id>",
	Short: "List a profile's campaigns, newest first",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		return withStores(ctx, func(stores *app.Stores) error {
			log := newLogger()
			svc := campaign.NewService(stores.Campaigns, profile.NewService(stores.Profiles, log), log)
			items, err := svc.ListByProfile(ctx, args[0])
			if err != nil {
				return err
			}
			for _, c := range items {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  %s\n", c.ID, c.CreatedAt.Format("2006-01-02"), c.Goal)
			}
			return nil
		})
	},
}

func init() {
	campaignsExportCmd.Flags().StringVarP(&exportFormat, "format", "f", campaign.FormatMarkdown, "markdown or html")
	campaignsExportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Write to a file instead of stdout")
	campaignsCmd.AddCommand(campaignsExportCmd, campaignsListCmd)
}
