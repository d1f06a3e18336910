package cli

import (
	"github.com/spf13/cobra"

	"github.com/perinote/perinote/internal/core"
	"github.com/perinote/perinote/internal/observability"
)

var (
	migrateFile   string
	migrateSel    selectionFlags
	migrateCreate bool
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Move tasks forward to the next period's note",
	Long: `Move the selected task blocks into the note of the adjacent period.

A daily note migrates to the next day, except Sunday, which promotes into
the following week's note. A weekly note migrates to the next week, a
December monthly note into the next year. The source task is left behind
marked migrated ([>]); the destination copy arrives open, with started
progress reset.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := loadSource(migrateFile)
		if err != nil {
			return err
		}
		if err := src.requirePeriodic(); err != nil {
			return err
		}

		destID, err := core.NextPeriod(src.identity)
		if err != nil {
			return err
		}
		dest := core.Destination{
			Path:    core.NotePath(destID, Settings),
			Heading: core.HeadingOrDefault(Settings.PeriodicTaskHeading),
		}
		return runTransfer(observability.EventMigrate, src, migrateSel,
			core.ModeMigrate, fixedDestination(dest, migrateCreate))
	},
}

func init() {
	migrateCmd.Flags().StringVar(&migrateFile, "file", "", "Source note (vault-relative path)")
	_ = migrateCmd.MarkFlagRequired("file")
	addSelectionFlags(migrateCmd, &migrateSel)
	migrateCmd.Flags().BoolVar(&migrateCreate, "create", false, "Create the destination note if missing")
	rootCmd.AddCommand(migrateCmd)
}
