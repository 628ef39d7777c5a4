package cmd

import (
	"fmt"

	"github.com/Zoetrophy/pervade/internal/config"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage pervade config profiles",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, used, err := config.LoadMerged(config.Options{
			IgnoreConfig: flagIgnoreConfig,
		})
		if err != nil {
			return err
		}

		if used == "" {
			used = "(default config in memory; run `pervade config init` to create one)"
		}
		fmt.Printf("Loaded config from:\n  %s\n\n", used)
		cfg.Print()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}
