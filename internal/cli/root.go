package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var (
	appVersion = "dev"
	appCommit  = "none"
	appDate    = "unknown"
)

// SetVersionInfo sets the version information injected via ldflags.
func SetVersionInfo(version, commit, date string) {
	appVersion = version
	appCommit = commit
	appDate = date
}

var (
	vaultFlag string
	dateFlag  string
)

// Initialize wires the service instances for the given vault directory.
// Set by internal/app.go; it runs after flag parsing, once per invocation.
var Initialize func(vaultDir string) error

var rootCmd = &cobra.Command{
	Use:   "perinote",
	Short: "perinote - periodic journal companion for markdown vaults",
	Long: `perinote manages hierarchical periodic notes (daily, weekly, monthly,
yearly) in a markdown vault and moves task blocks between them.

Tasks migrate forward to the next period, get scheduled down into a more
specific period or up into a broader one, and file into linked project
notes. Moved blocks merge into their destination with deduplication
against tasks that are already there.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		switch cmd.Name() {
		case "version", "help", "completion", "init":
			return nil
		}
		if Initialize == nil {
			return nil
		}
		return Initialize(vaultFlag)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("perinote %s\ncommit: %s\nbuilt:  %s\n", appVersion, appCommit, appDate)
	},
}

// today returns the date all period arithmetic anchors on: the --date flag
// when set, otherwise the current day. Times are truncated to midnight UTC.
func today() (time.Time, error) {
	if dateFlag != "" {
		t, err := time.Parse("2006-01-02", dateFlag)
		if err != nil {
			return time.Time{}, fmt.Errorf("parsing --date %q: %w", dateFlag, err)
		}
		return t, nil
	}
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&vaultFlag, "vault", ".", "Vault root directory")
	rootCmd.PersistentFlags().StringVar(&dateFlag, "date", "", "Override today's date (YYYY-MM-DD)")
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
