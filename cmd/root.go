package cmd

import (
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/conneroisu/rulekit/internal/logging"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "rulekit",
	Short: "Scaffold AI assistant rule documents for your stack",
	Long: `Rulekit assembles rule documents for AI coding assistants from a
layered template library and writes them into your project's
.cursor/rules/rules-kit directory, annotated with routing metadata.

Rules are composed from override tiers: a stack's base rules, plus
version-specific, architecture-specific, and feature-specific overlays,
plus shared global rules.

Quick Start:
  rulekit generate --stack laravel      Generate rules for a stack
  rulekit list                          List configured stacks
  rulekit interactive                   Guided generation
  rulekit watch --stack react           Regenerate on template changes`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Accept underscore spellings of flags (--log_level) for parity
	// with the environment variable names.
	rootCmd.SetGlobalNormalizationFunc(func(f *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .rulekit.yml)")
	rootCmd.PersistentFlags().StringP("templates", "t", "templates", "template library directory")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "text", "log format (text, json)")
	_ = viper.BindPFlag("templates", rootCmd.PersistentFlags().Lookup("templates"))
	_ = viper.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("log-format", rootCmd.PersistentFlags().Lookup("log-format"))
}

// initConfig wires viper: an explicit --config file wins, otherwise
// .rulekit.yml in the current directory is used when present. All keys
// can be overridden through RULEKIT_-prefixed environment variables.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else if envConfigFile := os.Getenv("RULEKIT_CONFIG_FILE"); envConfigFile != "" {
		viper.SetConfigFile(envConfigFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".rulekit")
	}

	viper.SetEnvPrefix("RULEKIT")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	// Missing or malformed app config degrades to defaults.
	_ = viper.ReadInConfig()
}

// newLogger builds the process logger from the effective configuration.
func newLogger() logging.Logger {
	return logging.NewLogger(&logging.LoggerConfig{
		Level:  logging.ParseLevel(viper.GetString("log-level")),
		Format: viper.GetString("log-format"),
		Output: os.Stderr,
	})
}
