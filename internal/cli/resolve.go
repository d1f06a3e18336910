package cli

import (
	"fmt"
	"path"

	"github.com/spf13/cobra"

	"github.com/perinote/perinote/internal/core"
	"github.com/perinote/perinote/pkg/models"
)

var (
	resolveFile   string
	resolveNext   bool
	resolveUp     bool
	resolveDown   bool
	resolveCreate bool
)

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Print the vault path of an adjacent periodic note",
	Long: `Resolve the note adjacent to a periodic note and print its
vault-relative path: --next for the following period, --up for the
enclosing one, --down for the contained one at today's date.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		id, ok := core.ParseBasename(path.Base(resolveFile))
		if !ok {
			return core.ValidationError{Reason: fmt.Sprintf("%s is not a periodic note", resolveFile)}
		}
		now, err := today()
		if err != nil {
			return err
		}

		var destID models.PeriodIdentity
		switch {
		case resolveNext:
			destID, err = core.NextPeriod(id)
		case resolveUp:
			destID, err = core.HigherPeriod(id, core.AnchorDate(id, Settings.PullUp, now))
		case resolveDown:
			destID, err = core.LowerPeriod(id, now)
		default:
			return core.ValidationError{Reason: "pass one of --next, --up, --down"}
		}
		if err != nil {
			return err
		}

		destPath := core.NotePath(destID, Settings)
		if resolveCreate {
			if err := Notes.Create(destPath); err != nil {
				return err
			}
		}
		fmt.Println(destPath)
		return nil
	},
}

func init() {
	resolveCmd.Flags().StringVar(&resolveFile, "file", "", "Periodic note (vault-relative path)")
	_ = resolveCmd.MarkFlagRequired("file")
	resolveCmd.Flags().BoolVar(&resolveNext, "next", false, "Resolve the next period")
	resolveCmd.Flags().BoolVar(&resolveUp, "up", false, "Resolve the enclosing period")
	resolveCmd.Flags().BoolVar(&resolveDown, "down", false, "Resolve the contained period at today")
	resolveCmd.Flags().BoolVar(&resolveCreate, "create", false, "Create the note if missing")
	rootCmd.AddCommand(resolveCmd)
}
