package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/perinote/perinote/internal/core"
	"github.com/perinote/perinote/internal/observability"
	"github.com/perinote/perinote/internal/vault"
)

var sweepFile string

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Move completed tasks from the task section to the done section",
	Long: `Relocate completed ([x]) task blocks from under the task heading to
the end of the done section within the same note, creating the done
heading if needed. Blocks move verbatim with their nested children.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !Notes.Exists(sweepFile) {
			return core.NotFoundError{Kind: "note", Name: sweepFile}
		}

		fromHeading := core.HeadingOrDefault(Settings.PeriodicTaskHeading)
		toHeading := core.HeadingOrDefault(Settings.LogHeading)
		if fromHeading == toHeading {
			return core.ValidationError{Reason: "task heading and done heading are identical"}
		}

		moved := 0
		err := Notes.ReadModifyWrite(sweepFile, func(old string) (string, error) {
			buf := vault.NewBuffer(old)
			lines, n := core.SweepCompleted(buf.Lines(), fromHeading, toHeading)
			moved = n
			buf.SetLines(lines)
			return buf.Text(), nil
		})
		if err != nil {
			return err
		}

		fmt.Println(summaryStyle.Render(fmt.Sprintf("%d completed task(s) moved", moved)))
		logEvent(observability.EventSweep, "INFO", "sweep", map[string]any{
			"file":  sweepFile,
			"moved": moved,
		})
		return nil
	},
}

func init() {
	sweepCmd.Flags().StringVar(&sweepFile, "file", "", "Note to sweep (vault-relative path)")
	_ = sweepCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(sweepCmd)
}
