package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/alfredjeanlab/todograph/internal/model"
	"github.com/alfredjeanlab/todograph/internal/ui"
)

var boardCmd = &cobra.Command{
	Use:   "board <command>",
	Short: "Inspect the whole board",
}

var boardHealthCmd = &cobra.Command{
	Use:   "health",
	Short: "Show dependency health across every relationship",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		health, err := graphSvc.Health(cmd.Context())
		if err != nil {
			return err
		}

		if prettyFlag {
			printHealthTable(health)
			return nil
		}
		printResult(health)
		return nil
	},
}

var boardStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show graph health plus todo roll-ups",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		status, err := graphSvc.Status(cmd.Context())
		if err != nil {
			return err
		}

		if prettyFlag {
			printHealthTable(status.Health)
			fmt.Println()
			printRollup("By status", statusKeys(status.ByStatus), func(k string) int {
				return status.ByStatus[model.TodoStatus(k)]
			})
			printRollup("By category", stringKeys(status.ByCategory), func(k string) int {
				return status.ByCategory[k]
			})
			return nil
		}
		printResult(status)
		return nil
	},
}

var boardSnapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Dump every todo and relationship",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		snapshot, err := graphSvc.Snapshot(cmd.Context())
		if err != nil {
			return err
		}

		if prettyFlag {
			printTodoListTable(snapshot.Todos, len(snapshot.Todos))
			fmt.Println()
			printRelationshipListTable(snapshot.Relationships, len(snapshot.Relationships))
			return nil
		}
		printResult(snapshot)
		return nil
	},
}

func init() {
	boardCmd.AddCommand(boardHealthCmd)
	boardCmd.AddCommand(boardStatusCmd)
	boardCmd.AddCommand(boardSnapshotCmd)
}

func printHealthTable(h *model.DependencyHealth) {
	fmt.Printf("Relationships: %d\n", h.TotalRelationships)
	for _, t := range model.RelationTypes {
		if n := h.ByType[t]; n > 0 {
			fmt.Printf("  %-12s %d\n", t, n)
		}
	}
	fmt.Printf("Dependent:     %d  %v\n", h.DependentCount, h.DependentTodos)
	fmt.Printf("Blocking:      %d  %v\n", h.BlockingCount, h.BlockingTodos)
	fmt.Printf("Blocked:       %d  %v\n", h.BlockedCount, h.BlockedTodos)
	if h.BrokenCount > 0 {
		fmt.Printf("%s\n", ui.RenderWarn(fmt.Sprintf("Broken:        %d", h.BrokenCount)))
		for _, b := range h.Broken {
			fmt.Printf("  %s (%s): missing %s %s\n",
				b.RelationshipID, b.Type, b.MissingEndpoint, b.MissingTodoID)
		}
	} else {
		fmt.Println("Broken:        0")
	}
}

func printRollup(title string, keys []string, count func(string) int) {
	if len(keys) == 0 {
		return
	}
	fmt.Println(title + ":")
	for _, k := range keys {
		fmt.Printf("  %-12s %d\n", k, count(k))
	}
}

func statusKeys(m map[model.TodoStatus]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, string(k))
	}
	sort.Strings(keys)
	return keys
}

func stringKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
