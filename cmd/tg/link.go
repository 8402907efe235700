package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alfredjeanlab/todograph/internal/graph"
	"github.com/alfredjeanlab/todograph/internal/model"
)

var (
	linkType string
	linkDesc string
)

var linkCmd = &cobra.Command{
	Use:   "link <from-id> <to-id>",
	Short: "Create a typed relationship between two todos",
	Long: `Create a typed relationship between two todos.

The edge is rejected if either todo is missing, if an edge of the same type
already exists between the pair, or if a directional edge would close a cycle.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		rel, err := graphSvc.Create(cmd.Context(), graph.CreateInput{
			FromID:      args[0],
			ToID:        args[1],
			Type:        model.RelationType(linkType),
			Description: linkDesc,
		})
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

func init() {
	linkCmd.Flags().StringVarP(&linkType, "type", "t", string(model.RelDependsOn),
		fmt.Sprintf("relationship type (%s)", relationTypeList()))
	linkCmd.Flags().StringVarP(&linkDesc, "desc", "d", "", "optional description (max 500 chars)")
}
