package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/termfolio/internal/app"
)

var seedCmd = &cobra.Command{
	Use:   "seed <file>",
	Short: "Import portfolio content from YAML",
	Long: `Upsert projects, blog posts, assets, terminal commands, pages and
site settings from a YAML file. Records are matched by slug (or name for
commands), so seeding twice is harmless. The whole file is applied in one
transaction.

Examples:
  termfolio seed content/seed.yaml
  termfolio seed content/seed.yaml --db ./site.db`,
	Args: cobra.ExactArgs(1),
	RunE: runSeed,
}

func runSeed(cmd *cobra.Command, args []string) error {
	a, err := openApp(app.Options{})
	if err != nil {
		return err
	}
	defer a.Close()
	if a.Store == nil {
		return fmt.Errorf("content database is unavailable")
	}

	stats, err := a.Store.Seed(args[0])
	if err != nil {
		return err
	}
	a.Logger.Info("content seeded", "file", args[0], "records", stats.Total())

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Seeded %d records from %s\n", stats.Total(), args[0])
	fmt.Fprintf(out, "  projects: %d\n  posts:    %d\n  assets:   %d\n  commands: %d\n  pages:    %d\n  settings: %d\n",
		stats.Projects, stats.Posts, stats.Assets, stats.Commands, stats.Pages, stats.Settings)
	return nil
}
