package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alfredjeanlab/todograph/internal/model"
	"github.com/alfredjeanlab/todograph/internal/ui"
)

var (
	linksFrom      string
	linksTo        string
	linksInvolving string
	linksTypes     []string
	linksLimit     int
	linksOffset    int
)

var linksCmd = &cobra.Command{
	Use:   "links",
	Short: "List relationships",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		filter := model.RelationshipFilter{
			FromID:    linksFrom,
			ToID:      linksTo,
			Involving: linksInvolving,
			Limit:     linksLimit,
			Offset:    linksOffset,
		}
		for _, t := range linksTypes {
			typ := model.RelationType(t)
			if !typ.IsValid() {
				return model.NewValidationError("type", fmt.Sprintf("invalid value %q", t))
			}
			filter.Types = append(filter.Types, typ)
		}

		rels, total, err := graphSvc.List(cmd.Context(), filter)
		if err != nil {
			return err
		}
		if rels == nil {
			rels = []*model.Relationship{}
		}

		if prettyFlag {
			printRelationshipListTable(rels, total)
			return nil
		}
		printResult(map[string]any{
			"relationships": rels,
			"total":         total,
		})
		return nil
	},
}

func init() {
	linksCmd.Flags().StringVar(&linksFrom, "from", "", "filter by source todo id")
	linksCmd.Flags().StringVar(&linksTo, "to", "", "filter by target todo id")
	linksCmd.Flags().StringVar(&linksInvolving, "involving", "", "filter by todo id on either end")
	linksCmd.Flags().StringSliceVarP(&linksTypes, "type", "t", nil,
		fmt.Sprintf("filter by type, repeatable (%s)", relationTypeList()))
	linksCmd.Flags().IntVar(&linksLimit, "limit", 0, "maximum rows to return")
	linksCmd.Flags().IntVar(&linksOffset, "offset", 0, "rows to skip")
}

// relationTypeList renders the valid relation types for flag help text.
func relationTypeList() string {
	names := make([]string, len(model.RelationTypes))
	for i, t := range model.RelationTypes {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}

func printRelationshipTable(rel *model.Relationship) {
	fmt.Printf("ID:          %s\n", ui.RenderAccent(rel.ID))
	fmt.Printf("From:        %s\n", rel.FromID)
	fmt.Printf("To:          %s\n", rel.ToID)
	fmt.Printf("Type:        %s\n", rel.Type)
	if rel.Description != "" {
		fmt.Printf("Description: %s\n", rel.Description)
	}
	fmt.Printf("Created At:  %s\n", rel.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Printf("Updated At:  %s\n", rel.UpdatedAt.Format("2006-01-02 15:04:05"))
}

func printRelationshipListTable(rels []*model.Relationship, total int) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tFROM\tTO\tTYPE\tDESCRIPTION")
	for _, r := range rels {
		desc := r.Description
		if len(desc) > 40 {
			desc = desc[:37] + "..."
		}
		arrow := r.FromID
		if r.Type.Directional() {
			arrow = ui.RenderAccent(r.FromID)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			r.ID,
			arrow,
			r.ToID,
			r.Type,
			desc,
		)
	}
	w.Flush()
	fmt.Printf("\n%d relationships (%d total)\n", len(rels), total)
}
