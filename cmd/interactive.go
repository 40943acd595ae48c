package cmd

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/conneroisu/rulekit/internal/config"
	"github.com/conneroisu/rulekit/internal/engine"
)

// interactiveCmd provides a guided generation flow.
var interactiveCmd = &cobra.Command{
	Use:     "interactive",
	Aliases: []string{"menu", "i"},
	Short:   "Guided rule generation",
	Long: `Interactive walks you through one generation run: it lists the
configured stacks, asks which overlays to include, and then composes
the rules without requiring you to remember flag names.`,
	RunE: runInteractive,
}

func init() {
	rootCmd.AddCommand(interactiveCmd)
}

func runInteractive(cmd *cobra.Command, args []string) error {
	logger := newLogger()
	templatesDir := viper.GetString("templates")
	e := engine.New(templatesDir, nil, nil, logger)
	cfg := e.Store().Load(templatesDir)

	reader := bufio.NewReader(os.Stdin)
	fmt.Println("=== Generate Rules ===")

	stack, err := promptStack(reader, cfg)
	if err != nil {
		return err
	}
	stackCfg, _ := cfg.Stack(stack)

	opts := engine.Options{
		Stack:         stack,
		IncludeGlobal: true,
	}

	fmt.Print("Framework version (press Enter to sniff from the project): ")
	opts.Version = readLine(reader)

	if len(stackCfg.Architectures) > 0 {
		archs := make([]string, 0, len(stackCfg.Architectures))
		for arch := range stackCfg.Architectures {
			archs = append(archs, arch)
		}
		sort.Strings(archs)
		fmt.Printf("Architecture [%s] (press Enter for none): ", strings.Join(archs, ", "))
		opts.Architecture = readLine(reader)
	}

	switch stack {
	case "react":
		fmt.Print("State management (redux, zustand, ...; press Enter for none): ")
		opts.StateManagement = readLine(reader)
		opts.IncludeTesting = promptYesNo(reader, "Include testing rules?")
	case "angular":
		opts.IncludeTesting = promptYesNo(reader, "Include testing rules?")
		opts.IncludeSignals = promptYesNo(reader, "Include signals rules?")
	}

	fmt.Print("Project path (press Enter for current directory): ")
	opts.ProjectPath = readLine(reader)
	if opts.ProjectPath == "" {
		opts.ProjectPath = "."
	}

	opts.Backup = promptYesNo(reader, "Back up existing rules before overwriting?")
	opts.OnProgress = func(completed int) {
		fmt.Printf("\rGenerating rules... %d", completed)
	}

	report, err := e.Generate(cmd.Context(), opts)
	if err != nil {
		return fmt.Errorf("failed to generate rules: %w", err)
	}
	fmt.Println()
	printReport(stack, report)
	return nil
}

func promptStack(reader *bufio.Reader, cfg *config.RuleConfig) (string, error) {
	names := cfg.StackNames()
	if len(names) == 0 {
		return "", fmt.Errorf("no stacks configured in the template library")
	}

	fmt.Println("Available stacks:")
	for i, name := range names {
		fmt.Printf("  %d. %s\n", i+1, name)
	}

	for {
		fmt.Printf("Stack (1-%d or name): ", len(names))
		input := readLine(reader)
		if input == "" {
			continue
		}
		for i, name := range names {
			if input == name || input == fmt.Sprintf("%d", i+1) {
				return name, nil
			}
		}
		fmt.Printf("Unknown stack '%s'.\n", input)
	}
}

func readLine(reader *bufio.Reader) string {
	line, _ := reader.ReadString('\n')
	return strings.TrimSpace(line)
}

func promptYesNo(reader *bufio.Reader, question string) bool {
	fmt.Printf("%s (y/N): ", question)
	answer := strings.ToLower(readLine(reader))
	return answer == "y" || answer == "yes"
}
