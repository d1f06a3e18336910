package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/perinote/perinote/internal/core"
)

var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a default .perinote.yaml into a vault",
	Long: `Write a .perinote.yaml with the default settings into the given
directory (default: the current one). An existing config file is never
overwritten.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := "."
		if len(args) > 0 {
			dir = args[0]
		}
		target := filepath.Join(dir, ".perinote.yaml")

		if _, err := os.Stat(target); err == nil {
			return fmt.Errorf("%s already exists", target)
		}

		data, err := yaml.Marshal(core.DefaultSettings())
		if err != nil {
			return fmt.Errorf("marshaling default settings: %w", err)
		}
		if err := os.WriteFile(target, data, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", target, err)
		}

		fmt.Printf("Wrote %s\n", target)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
