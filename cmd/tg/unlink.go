package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alfredjeanlab/todograph/internal/graph"
)

var unlinkCmd = &cobra.Command{
	Use:   "unlink <id> [<id>...]",
	Short: "Delete one or more relationships",
	Long: `Delete one or more relationships by id.

The batch is all-or-nothing: if any id does not exist the command fails,
names every missing id, and deletes nothing.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		// Report what was actually deleted: duplicate and blank arguments
		// collapse before the batch runs.
		ids := graph.NormalizeIDs(args)
		if err := graphSvc.Delete(cmd.Context(), ids); err != nil {
			return err
		}

		if prettyFlag {
			fmt.Printf("Deleted %d relationship(s)\n", len(ids))
			return nil
		}
		printResult(map[string]any{"deleted": ids})
		return nil
	},
}
