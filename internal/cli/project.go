package cli

import (
	"path"

	"github.com/spf13/cobra"

	"github.com/perinote/perinote/internal/core"
	"github.com/perinote/perinote/internal/observability"
)

var (
	projectFile string
	projectSel  selectionFlags
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "File tasks into their linked project notes",
	Long: `Move the selected task blocks into the project notes they link to.

Each task resolves its own destination: the first wikilink on the task
line, or on an ancestor walking up the list tree, that points at a note
directly inside the projects root. Tasks without a resolvable project
link are skipped and left untouched; the rest of the selection proceeds.
Tasks bound for the same project note share one write.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := loadSource(projectFile)
		if err != nil {
			return err
		}

		index := core.BuildLineIndex(src.items)
		lines := src.buf.Lines()
		heading := core.HeadingOrDefault(Settings.ProjectTaskHeading)

		resolve := func(taskLine int) (core.Destination, error) {
			name, ok := core.FindProjectLinkInAncestors(
				taskLine, lines, index, src.path, Settings, Notes.ResolveLink)
			if !ok {
				return core.Destination{}, core.LinkError{Line: taskLine}
			}
			return core.Destination{
				Path:    path.Join(Settings.ProjectsRoot, name+".md"),
				Heading: heading,
			}, nil
		}
		return runTransfer(observability.EventProject, src, projectSel,
			core.ModeMigrate, resolve)
	},
}

func init() {
	projectCmd.Flags().StringVar(&projectFile, "file", "", "Source note (vault-relative path)")
	_ = projectCmd.MarkFlagRequired("file")
	addSelectionFlags(projectCmd, &projectSel)
	rootCmd.AddCommand(projectCmd)
}
