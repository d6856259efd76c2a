package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xanke/disney-sns/internal/database"
	"github.com/xanke/disney-sns/internal/seed"
)

var (
	seedPreset string
	seedClean  bool
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Fill the database with demo users, posts and activity",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		preset := seed.DefaultPreset()
		if seedPreset != "" {
			p, err := seed.LoadPreset(seedPreset)
			if err != nil {
				return err
			}
			preset = p
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cfg.IsProduction() {
			return fmt.Errorf("refusing to seed a production database")
		}
		db, err := database.Connect(cfg)
		if err != nil {
			return fmt.Errorf("connect database: %w", err)
		}

		if seedClean {
			if err := seed.ClearAll(db); err != nil {
				return fmt.Errorf("cleanup failed: %w", err)
			}
		}

		sum, err := seed.NewSeeder(db, preset).Run(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "seeded %d users, %d posts, %d views, %d likes, %d comments\n",
			sum.Users, sum.Posts, sum.Views, sum.Likes, sum.Comments)
		return nil
	},
}

func init() {
	seedCmd.Flags().StringVar(&seedPreset, "preset", "", "YAML preset file (see seed/default.yml)")
	seedCmd.Flags().BoolVar(&seedClean, "clean", false, "Delete existing rows first")
	rootCmd.AddCommand(seedCmd)
}
