package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/conneroisu/rulekit/internal/config"
)

// listCmd represents the list command.
var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls", "l"},
	Short:   "List configured stacks and their overlays",
	Long: `List shows every stack in the rules configuration along with its
architectures and version ranges, so you can see what generate can
target.`,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	store := config.NewStore(newLogger())
	cfg := store.Load(viper.GetString("templates"))

	names := cfg.StackNames()
	if len(names) == 0 {
		fmt.Println("No stacks configured.")
		return nil
	}

	for _, name := range names {
		stack, _ := cfg.Stack(name)
		fmt.Println(name)

		if len(stack.Architectures) > 0 {
			archs := make([]string, 0, len(stack.Architectures))
			for arch := range stack.Architectures {
				archs = append(archs, arch)
			}
			sort.Strings(archs)
			fmt.Printf("  architectures: %s\n", strings.Join(archs, ", "))
		}

		if len(stack.VersionRanges) > 0 {
			keys := make([]string, 0, len(stack.VersionRanges))
			for key := range stack.VersionRanges {
				keys = append(keys, key)
			}
			sort.Strings(keys)
			parts := make([]string, 0, len(keys))
			for _, key := range keys {
				parts = append(parts, fmt.Sprintf("%s (%s)", key, stack.VersionRanges[key].Name))
			}
			fmt.Printf("  versions: %s\n", strings.Join(parts, ", "))
		}
	}

	if len(cfg.Global.Always) > 0 {
		fmt.Printf("\nalways applied: %s\n", strings.Join(cfg.Global.Always, ", "))
	}
	return nil
}
