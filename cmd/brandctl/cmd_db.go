package main

import (
	"fmt"

	"github.com/brandhub/core/internal/app"
	"github.com/brandhub/core/internal/modules/brand/profile"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStores(cmd.Context(), func(*app.Stores) error {
			fmt.Fprintln(cmd.OutOrStdout(), "schema is up to date")
			return nil
		})
	},
}

var seedForce bool

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Store the default Stack Creamery profile",
	Long: `Store the built-in default profile. Nothing is written when profiles
already exist, unless --force is given.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		return withStores(ctx, func(stores *app.Stores) error {
			svc := profile.NewService(stores.Profiles, newLogger())
			existing, err := svc.List(ctx)
			if err != nil {
				return err
			}
			if len(existing) > 0 && !seedForce {
				fmt.Fprintf(cmd.OutOrStdout(), "%d profile(s) exist, skipping seed\n", len(existing))
				return nil
			}
			saved, err := svc.Save(ctx, nil, profile.DefaultProfile())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %q (%s)\n", saved.BusinessName, saved.ID)
			return nil
		})
	},
}

func init() {
	seedCmd.Flags().BoolVar(&seedForce, "force", false, "Seed even when profiles exist")
}
