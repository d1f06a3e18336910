package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/perinote/perinote/internal/core"
	"github.com/perinote/perinote/internal/vault"
	"github.com/perinote/perinote/pkg/models"
)

var statusFile string

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display a note's tasks grouped by state",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !Notes.Exists(statusFile) {
			return core.NotFoundError{Kind: "note", Name: statusFile}
		}
		text, err := Notes.Read(statusFile)
		if err != nil {
			return err
		}

		grouped := make(map[models.TaskState][]core.TaskLine)
		for _, line := range vault.NewBuffer(text).Lines() {
			if task, ok := core.ParseTaskLine(line); ok {
				grouped[task.State] = append(grouped[task.State], task)
			}
		}
		if len(grouped) == 0 {
			fmt.Println("No tasks found.")
			return nil
		}

		stateOrder := []models.TaskState{
			models.StateOpen,
			models.StateStarted,
			models.StateScheduled,
			models.StateMigrated,
			models.StateCompleted,
		}
		for _, state := range stateOrder {
			group, ok := grouped[state]
			if !ok {
				continue
			}
			fmt.Printf("== %s (%d) ==\n", state, len(group))
			for _, task := range group {
				fmt.Printf("  %s\n", task.Text)
			}
			fmt.Println()
		}
		return nil
	},
}

func init() {
	statusCmd.Flags().StringVar(&statusFile, "file", "", "Note to inspect (vault-relative path)")
	_ = statusCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(statusCmd)
}
