package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/alfredjeanlab/todograph/internal/graph"
	"github.com/alfredjeanlab/todograph/internal/store"
	"github.com/alfredjeanlab/todograph/internal/store/postgres"
	"github.com/alfredjeanlab/todograph/internal/ui"
)

var (
	databaseURL string
	prettyFlag  bool

	appStore store.Store
	graphSvc *graph.Service
)

// storelessCommands run without a database connection.
var storelessCommands = map[string]bool{
	"serve":      true,
	"profile":    true,
	"watch":      true,
	"help":       true,
	"completion": true,
}

// commandGroup returns the name of the top-level subcommand cmd belongs to,
// or "" for the root itself. It walks parents without touching the root
// variable so it is safe to call from the root's own hooks.
func commandGroup(cmd *cobra.Command) string {
	if cmd.Parent() == nil {
		return ""
	}
	for cmd.Parent().Parent() != nil {
		cmd = cmd.Parent()
	}
	return cmd.Name()
}

func resolveDatabaseURL() (string, error) {
	if databaseURL != "" {
		return databaseURL, nil
	}
	if u := os.Getenv("TODOGRAPH_DATABASE_URL"); u != "" {
		return u, nil
	}
	if p, err := loadProfile(); err == nil && p.DatabaseURL != "" {
		return p.DatabaseURL, nil
	}
	return "", fmt.Errorf("no database configured: pass --db, set TODOGRAPH_DATABASE_URL, or run 'tg profile set'")
}

var rootCmd = &cobra.Command{
	Use:           "tg <command>",
	Short:         "Personal todo tracker with a typed relationship graph",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if !ui.ShouldUseColor() {
			ui.ForceNoColor()
		}
		group := commandGroup(cmd)
		if group == "" || storelessCommands[group] {
			return nil
		}

		url, err := resolveDatabaseURL()
		if err != nil {
			return err
		}
		st, err := postgres.New(url)
		if err != nil {
			return fmt.Errorf("connect to database: %w", err)
		}
		appStore = st
		graphSvc = graph.NewService(st)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if appStore != nil {
			appStore.Close()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&databaseURL, "db", "", "PostgreSQL connection URL")
	rootCmd.PersistentFlags().BoolVar(&prettyFlag, "pretty", false, "human-readable output instead of JSON")

	rootCmd.AddCommand(todoCmd)
	rootCmd.AddCommand(linkCmd)
	rootCmd.AddCommand(unlinkCmd)
	rootCmd.AddCommand(linksCmd)
	rootCmd.AddCommand(relinkCmd)
	rootCmd.AddCommand(boardCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(profileCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		printError(err)
		os.Exit(1)
	}
}
