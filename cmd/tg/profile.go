package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
)

// profile holds per-user defaults stored in a TOML file so the database URL
// does not have to be passed on every invocation.
type profile struct {
	DatabaseURL string `toml:"database_url"`
}

func profilePath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(dir, "todograph", "profile.toml"), nil
}

func loadProfile() (*profile, error) {
	path, err := profilePath()
	if err != nil {
		return nil, err
	}
	var p profile
	if _, err := toml.DecodeFile(path, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func saveProfile(p *profile) error {
	path, err := profilePath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("write profile: %w", err)
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(p)
}

var profileCmd = &cobra.Command{
	Use:   "profile <command>",
	Short: "Manage the stored connection profile",
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the stored profile",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := loadProfile()
		if err != nil {
			if os.IsNotExist(err) {
				printResult(&profile{})
				return nil
			}
			return err
		}
		printResult(p)
		return nil
	},
}

var profileSetDB string

var profileSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Store connection defaults",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := loadProfile()
		if err != nil {
			if !os.IsNotExist(err) {
				return err
			}
			p = &profile{}
		}
		if cmd.Flags().Changed("db") {
			p.DatabaseURL = profileSetDB
		}
		if err := saveProfile(p); err != nil {
			return err
		}
		printResult(p)
		return nil
	},
}

func init() {
	profileSetCmd.Flags().StringVar(&profileSetDB, "db", "", "PostgreSQL connection URL to store")

	profileCmd.AddCommand(profileShowCmd)
	profileCmd.AddCommand(profileSetCmd)
}
