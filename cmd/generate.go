package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/conneroisu/rulekit/internal/engine"
)

var (
	generateFlags  selectionFlags
	generateBackup bool
	generateDebug  bool
)

// generateCmd represents the generate command.
var generateCmd = &cobra.Command{
	Use:     "generate",
	Aliases: []string{"gen", "g"},
	Short:   "Generate rule documents for a stack",
	Long: `Generate composes rule documents for the selected stack from the
template library and writes them under <project>/.cursor/rules/rules-kit.

The framework version is sniffed from the project's manifest
(package.json or composer.json) unless --stack-version is given.
Unchanged outputs are skipped, so repeated runs are cheap.

Examples:
  rulekit generate --stack laravel
  rulekit generate --stack react --architecture atomic --state-management redux
  rulekit generate --stack angular --stack-version 17 --signals --project ./apps/web`,
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	addSelectionFlags(generateCmd, &generateFlags)
	generateCmd.Flags().BoolVar(&generateBackup, "backup", false, "back up existing outputs before overwriting")
	generateCmd.Flags().BoolVar(&generateDebug, "debug", false, "mark the run as a debug run")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	logger := newLogger()
	e := engine.New(viper.GetString("templates"), nil, nil, logger)

	opts := generateFlags.engineOptions()
	opts.Backup = generateBackup
	opts.Debug = generateDebug
	opts.OnProgress = func(completed int) {
		fmt.Printf("\rGenerating rules... %d", completed)
	}

	report, err := e.Generate(cmd.Context(), opts)
	if err != nil {
		return fmt.Errorf("failed to generate rules: %w", err)
	}
	fmt.Println()

	printReport(generateFlags.Stack, report)
	return nil
}

func printReport(stack string, report *engine.Report) {
	title := cases.Title(language.English).String(stack)

	if report.VersionRangeName != "" {
		fmt.Printf("%s %s (%s)\n", title, report.DetectedVersion, report.VersionRangeName)
	} else if report.DetectedVersion != "" {
		fmt.Printf("%s %s\n", title, report.DetectedVersion)
	} else {
		fmt.Println(title)
	}

	fmt.Printf("  %d rules: %d written, %d up to date", report.Outputs, report.Written, report.Skipped)
	if report.Failed > 0 {
		fmt.Printf(", %d failed", report.Failed)
	}
	fmt.Println()

	for _, err := range report.Errors {
		fmt.Printf("  warning: %v\n", err)
	}
}
