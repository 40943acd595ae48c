package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/conneroisu/rulekit/internal/config"
)

// configCmd groups rules-configuration subcommands.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect or initialize the rules configuration",
}

// configShowCmd prints the effective rules configuration.
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective rules configuration",
	Long: `Show prints the rules configuration the engine would use: the
document at <templates>/rules.yaml when readable, otherwise the
built-in defaults.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		store := config.NewStore(newLogger())
		cfg := store.Load(viper.GetString("templates"))

		data, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("failed to render configuration: %w", err)
		}
		fmt.Print(string(data))
		return nil
	},
}

var configInitForce bool

// configInitCmd writes the built-in defaults as a starting document.
var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter rules.yaml into the template library",
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := viper.GetString("templates")
		path := filepath.Join(dir, config.FileName)

		if _, err := os.Stat(path); err == nil && !configInitForce {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}

		store := config.NewStore(newLogger())
		if err := store.Save(config.DefaultConfig(), dir); err != nil {
			return fmt.Errorf("failed to write configuration: %w", err)
		}
		fmt.Printf("Wrote %s\n", path)
		return nil
	},
}

func init() {
	configInitCmd.Flags().BoolVarP(&configInitForce, "force", "f", false, "overwrite an existing rules.yaml")
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}
