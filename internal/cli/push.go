package cli

import (
	"github.com/spf13/cobra"

	"github.com/perinote/perinote/internal/core"
	"github.com/perinote/perinote/internal/observability"
)

var (
	pushFile   string
	pushSel    selectionFlags
	pushCreate bool
)

var pushCmd = &cobra.Command{
	Use:   "push",
	Short: "Schedule tasks down into a more specific period",
	Long: `Schedule the selected task blocks into the note one period level
down, at the point today falls: a yearly note pushes into this month, a
monthly note into this week, a weekly note into today's daily note. Today
must lie inside the source note's period.

From a project note, push sends tasks to today's daily note instead. A
daily task there pre-declaring intent with a collector phrase and a link
to the project ("Push [[project]]") adopts the incoming tasks as children.

The source task is left behind marked scheduled ([<]); arrival at the
destination fulfils the commitment.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := loadSource(pushFile)
		if err != nil {
			return err
		}
		now, err := today()
		if err != nil {
			return err
		}

		dest := core.Destination{
			Heading: core.HeadingOrDefault(Settings.PeriodicTaskHeading),
		}
		if src.project != "" {
			// Project-task mode: target today's daily note, with
			// collector matching against this project.
			dest.Path = core.NotePath(core.DailyIdentity(now), Settings)
			dest.Project = src.project
		} else {
			if err := src.requirePeriodic(); err != nil {
				return err
			}
			destID, err := core.LowerPeriod(src.identity, now)
			if err != nil {
				return err
			}
			dest.Path = core.NotePath(destID, Settings)
		}
		return runTransfer(observability.EventPush, src, pushSel,
			core.ModeSchedule, fixedDestination(dest, pushCreate))
	},
}

func init() {
	pushCmd.Flags().StringVar(&pushFile, "file", "", "Source note (vault-relative path)")
	_ = pushCmd.MarkFlagRequired("file")
	addSelectionFlags(pushCmd, &pushSel)
	pushCmd.Flags().BoolVar(&pushCreate, "create", false, "Create the destination note if missing")
	rootCmd.AddCommand(pushCmd)
}
