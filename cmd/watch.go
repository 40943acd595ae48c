package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/conneroisu/rulekit/internal/engine"
	"github.com/conneroisu/rulekit/internal/watcher"
)

var (
	watchFlags    selectionFlags
	watchDebounce time.Duration
)

// watchCmd represents the watch command.
var watchCmd = &cobra.Command{
	Use:     "watch",
	Aliases: []string{"w"},
	Short:   "Regenerate rules whenever the template library changes",
	Long: `Watch performs an initial generation, then observes the template
library and regenerates the same selection whenever a template or the
rules configuration changes. Press Ctrl+C to stop.

Examples:
  rulekit watch --stack react
  rulekit watch --stack angular --signals --project ./apps/web`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	addSelectionFlags(watchCmd, &watchFlags)
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", watcher.DefaultDebounce, "delay before regenerating after a change")
}

func runWatch(cmd *cobra.Command, args []string) error {
	logger := newLogger()
	templatesDir := viper.GetString("templates")
	e := engine.New(templatesDir, nil, nil, logger)
	opts := watchFlags.engineOptions()

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	regenerate := func() {
		report, err := e.Generate(ctx, opts)
		if err != nil {
			fmt.Fprintf(os.Stderr, "generation failed: %v\n", err)
			return
		}
		printReport(watchFlags.Stack, report)
	}

	regenerate()

	lw, err := watcher.New(watchDebounce)
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer lw.Close()

	if err := lw.AddRecursive(templatesDir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", templatesDir, err)
	}

	lw.AddHandler(func(events []watcher.ChangeEvent) {
		fmt.Printf("%d change(s) detected, regenerating...\n", len(events))
		e.Refresh()
		regenerate()
	})
	lw.Start(ctx)

	fmt.Printf("Watching %s for changes (Ctrl+C to stop)\n", templatesDir)
	<-ctx.Done()
	fmt.Println("\nStopped.")
	return nil
}
