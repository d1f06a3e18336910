package cli

import (
	"github.com/spf13/cobra"

	"github.com/perinote/perinote/internal/core"
	"github.com/perinote/perinote/internal/observability"
)

var (
	pullFile   string
	pullSel    selectionFlags
	pullCreate bool
)

var pullCmd = &cobra.Command{
	Use:   "pull",
	Short: "Schedule tasks up into a broader period",
	Long: `Schedule the selected task blocks into the note one period level
up: daily into weekly, weekly into monthly, monthly into yearly.

Which week or month the higher note resolves to is controlled by the
pull_up_anchor setting: "source" anchors on the source note's own period,
"today" on the current date.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := loadSource(pullFile)
		if err != nil {
			return err
		}
		if err := src.requirePeriodic(); err != nil {
			return err
		}
		now, err := today()
		if err != nil {
			return err
		}

		anchor := core.AnchorDate(src.identity, Settings.PullUp, now)
		destID, err := core.HigherPeriod(src.identity, anchor)
		if err != nil {
			return err
		}
		dest := core.Destination{
			Path:    core.NotePath(destID, Settings),
			Heading: core.HeadingOrDefault(Settings.PeriodicTaskHeading),
		}
		return runTransfer(observability.EventPull, src, pullSel,
			core.ModeSchedule, fixedDestination(dest, pullCreate))
	},
}

func init() {
	pullCmd.Flags().StringVar(&pullFile, "file", "", "Source note (vault-relative path)")
	_ = pullCmd.MarkFlagRequired("file")
	addSelectionFlags(pullCmd, &pullSel)
	pullCmd.Flags().BoolVar(&pullCreate, "create", false, "Create the destination note if missing")
	rootCmd.AddCommand(pullCmd)
}
