package cmd

import (
	"github.com/spf13/cobra"

	"github.com/conneroisu/rulekit/internal/engine"
)

// selectionFlags holds the flags shared by every command that selects
// what to generate (generate, watch).
type selectionFlags struct {
	Stack           string
	Version         string
	Architecture    string
	StateManagement string
	Project         string
	Testing         bool
	Signals         bool
	NoGlobal        bool
}

// addSelectionFlags registers the shared selection flags on cmd and
// marks --stack required.
func addSelectionFlags(cmd *cobra.Command, flags *selectionFlags) {
	cmd.Flags().StringVarP(&flags.Stack, "stack", "s", "", "stack to generate rules for (required)")
	cmd.Flags().StringVar(&flags.Version, "stack-version", "", "framework version (default: sniffed from the project manifest)")
	cmd.Flags().StringVarP(&flags.Architecture, "architecture", "a", "", "architecture overlay to include")
	cmd.Flags().StringVar(&flags.StateManagement, "state-management", "", "state management overlay (react only)")
	cmd.Flags().StringVarP(&flags.Project, "project", "p", ".", "project path rules are generated into")
	cmd.Flags().BoolVar(&flags.Testing, "testing", false, "include the testing overlay (react, angular)")
	cmd.Flags().BoolVar(&flags.Signals, "signals", false, "include the signals overlay (angular)")
	cmd.Flags().BoolVar(&flags.NoGlobal, "no-global", false, "skip shared global rules")
	_ = cmd.MarkFlagRequired("stack")
}

// engineOptions translates the flag values into engine options.
func (f *selectionFlags) engineOptions() engine.Options {
	return engine.Options{
		Stack:           f.Stack,
		Version:         f.Version,
		Architecture:    f.Architecture,
		StateManagement: f.StateManagement,
		IncludeTesting:  f.Testing,
		IncludeSignals:  f.Signals,
		IncludeGlobal:   !f.NoGlobal,
		ProjectPath:     f.Project,
	}
}
