package main

import (
	"github.com/spf13/cobra"

	"github.com/alfredjeanlab/todograph/internal/graph"
	"github.com/alfredjeanlab/todograph/internal/model"
)

var relinkCmd = &cobra.Command{
	Use:   "relink <id>",
	Short: "Change a relationship's type or description",
	Long: `Change a relationship's type or description.

Writing the current value back is a no-op: nothing is persisted and the
updated timestamp is untouched.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		in := graph.UpdateInput{ID: args[0]}
		if cmd.Flags().Changed("type") {
			typ := model.RelationType(relinkType)
			in.Type = &typ
		}
		if cmd.Flags().Changed("desc") {
			in.Description = &relinkDesc
		}

		rel, err := graphSvc.Update(cmd.Context(), in)
		if err != nil {
			return err
		}

		if prettyFlag {
			printRelationshipTable(rel)
			return nil
		}
		printResult(rel)
		return nil
	},
}

var (
	relinkType string
	relinkDesc string
)

func init() {
	relinkCmd.Flags().StringVarP(&relinkType, "type", "t", "", "new relationship type")
	relinkCmd.Flags().StringVarP(&relinkDesc, "desc", "d", "", "new description (empty clears it)")
}
