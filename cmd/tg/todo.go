package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/alfredjeanlab/todograph/internal/idgen"
	"github.com/alfredjeanlab/todograph/internal/model"
	"github.com/alfredjeanlab/todograph/internal/store"
	"github.com/alfredjeanlab/todograph/internal/ui"
)

var todoCmd = &cobra.Command{
	Use:   "todo <command>",
	Short: "Manage todos",
}

var (
	todoAddDesc     string
	todoAddPriority int
	todoAddCategory string
)

var todoAddCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Create a todo",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		title := strings.TrimSpace(args[0])
		if title == "" {
			return model.NewValidationError("title", "is required")
		}

		id, err := idgen.NewTodoID()
		if err != nil {
			return fmt.Errorf("generate id: %w", err)
		}
		now := time.Now().UTC()
		todo := &model.Todo{
			ID:          id,
			Title:       title,
			Description: strings.TrimSpace(todoAddDesc),
			Status:      model.TodoPending,
			Priority:    todoAddPriority,
			Category:    strings.TrimSpace(todoAddCategory),
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := appStore.CreateTodo(cmd.Context(), todo); err != nil {
			return fmt.Errorf("create todo: %w", err)
		}

		if prettyFlag {
			printTodoTable(todo)
			return nil
		}
		printResult(todo)
		return nil
	},
}

var (
	todoListStatus   []string
	todoListCategory string
	todoListSearch   string
	todoListLimit    int
	todoListOffset   int
)

var todoListCmd = &cobra.Command{
	Use:   "list",
	Short: "List todos",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		filter := model.TodoFilter{
			Category: todoListCategory,
			Search:   todoListSearch,
			Limit:    todoListLimit,
			Offset:   todoListOffset,
		}
		for _, s := range todoListStatus {
			status := model.TodoStatus(s)
			if !status.IsValid() {
				return model.NewValidationError("status", fmt.Sprintf("invalid value %q", s))
			}
			filter.Status = append(filter.Status, status)
		}

		todos, total, err := appStore.ListTodos(cmd.Context(), filter)
		if err != nil {
			return fmt.Errorf("list todos: %w", err)
		}
		if todos == nil {
			todos = []*model.Todo{}
		}

		if prettyFlag {
			printTodoListTable(todos, total)
			return nil
		}
		printResult(map[string]any{
			"todos": todos,
			"total": total,
		})
		return nil
	},
}

var todoShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a todo and its relationships",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := args[0]
		todo, err := appStore.GetTodo(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("get todo: %w", err)
		}
		if todo == nil {
			return &model.NotFoundError{Resource: "todo", IDs: []string{id}}
		}

		rels, _, err := graphSvc.List(cmd.Context(), model.RelationshipFilter{Involving: id})
		if err != nil {
			return err
		}
		if rels == nil {
			rels = []*model.Relationship{}
		}

		if prettyFlag {
			printTodoTable(todo)
			if len(rels) > 0 {
				fmt.Println()
				printRelationshipListTable(rels, len(rels))
			}
			return nil
		}
		printResult(map[string]any{
			"todo":          todo,
			"relationships": rels,
		})
		return nil
	},
}

var todoDoneCmd = &cobra.Command{
	Use:   "done <id>",
	Short: "Mark a todo as done",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := args[0]
		todo, err := appStore.GetTodo(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("get todo: %w", err)
		}
		if todo == nil {
			return &model.NotFoundError{Resource: "todo", IDs: []string{id}}
		}

		if todo.Status != model.TodoDone {
			now := time.Now().UTC()
			todo.Status = model.TodoDone
			todo.CompletedAt = &now
			todo.UpdatedAt = now
			if err := appStore.UpdateTodo(cmd.Context(), todo); err != nil {
				return fmt.Errorf("update todo: %w", err)
			}
		}

		if prettyFlag {
			printTodoTable(todo)
			return nil
		}
		printResult(todo)
		return nil
	},
}

var todoRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a todo and every relationship touching it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := args[0]
		todo, err := appStore.GetTodo(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("get todo: %w", err)
		}
		if todo == nil {
			return &model.NotFoundError{Resource: "todo", IDs: []string{id}}
		}

		err = appStore.RunInTransaction(cmd.Context(), func(tx store.Store) error {
			if err := tx.DeleteRelationshipsByTodo(cmd.Context(), id); err != nil {
				return fmt.Errorf("delete relationships for %s: %w", id, err)
			}
			if err := tx.DeleteTodo(cmd.Context(), id); err != nil {
				return fmt.Errorf("delete todo %s: %w", id, err)
			}
			return nil
		})
		if err != nil {
			return err
		}

		if prettyFlag {
			fmt.Printf("Deleted %s\n", id)
			return nil
		}
		printResult(map[string]any{"deleted": id})
		return nil
	},
}

func init() {
	todoAddCmd.Flags().StringVarP(&todoAddDesc, "desc", "d", "", "description")
	todoAddCmd.Flags().IntVarP(&todoAddPriority, "priority", "p", 0, "priority (higher is more urgent)")
	todoAddCmd.Flags().StringVarP(&todoAddCategory, "category", "c", "", "category")

	todoListCmd.Flags().StringSliceVarP(&todoListStatus, "status", "s", nil,
		"filter by status, repeatable (pending, in_progress, done)")
	todoListCmd.Flags().StringVarP(&todoListCategory, "category", "c", "", "filter by category")
	todoListCmd.Flags().StringVar(&todoListSearch, "search", "", "substring match on title/description")
	todoListCmd.Flags().IntVar(&todoListLimit, "limit", 0, "maximum rows to return")
	todoListCmd.Flags().IntVar(&todoListOffset, "offset", 0, "rows to skip")

	todoCmd.AddCommand(todoAddCmd)
	todoCmd.AddCommand(todoListCmd)
	todoCmd.AddCommand(todoShowCmd)
	todoCmd.AddCommand(todoDoneCmd)
	todoCmd.AddCommand(todoRmCmd)
}

func printTodoTable(t *model.Todo) {
	fmt.Printf("ID:          %s\n", ui.RenderAccent(t.ID))
	fmt.Printf("Title:       %s\n", t.Title)
	fmt.Printf("Status:      %s\n", renderStatus(t.Status))
	fmt.Printf("Priority:    %d\n", t.Priority)
	if t.Category != "" {
		fmt.Printf("Category:    %s\n", t.Category)
	}
	if t.Description != "" {
		fmt.Printf("Description: %s\n", t.Description)
	}
	fmt.Printf("Created At:  %s\n", t.CreatedAt.Format("2006-01-02 15:04:05"))
	if t.CompletedAt != nil {
		fmt.Printf("Done At:     %s\n", t.CompletedAt.Format("2006-01-02 15:04:05"))
	}
}

func printTodoListTable(todos []*model.Todo, total int) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSTATUS\tPRIORITY\tCATEGORY\tTITLE")
	for _, t := range todos {
		title := t.Title
		if len(title) > 50 {
			title = title[:47] + "..."
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n",
			t.ID,
			renderStatus(t.Status),
			t.Priority,
			t.Category,
			title,
		)
	}
	w.Flush()
	fmt.Printf("\n%d todos (%d total)\n", len(todos), total)
}

func renderStatus(s model.TodoStatus) string {
	switch s {
	case model.TodoDone:
		return ui.RenderMuted(string(s))
	case model.TodoInProgress:
		return ui.RenderWarn(string(s))
	default:
		return string(s)
	}
}
