package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/KeleWarg/design-theme-library/pkg/catalog"
	"github.com/KeleWarg/design-theme-library/pkg/store"
	"github.com/KeleWarg/design-theme-library/seeds"
)

var initSkipSeed bool

func init() {
	initCmd.Flags().BoolVar(&initSkipSeed, "no-seed", false, "skip loading the starter theme")
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a themelib workspace with a starter theme",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return executeInit(cmd.Context())
	},
}

const defaultConfigYAML = `# themelib workspace configuration
db: .themelib/library.db
project_name: ""
version: ""
`

func executeInit(ctx context.Context) error {
	path := dbPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create workspace directory: %w", err)
	}

	st, err := store.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open library database: %w", err)
	}
	defer st.Close()

	if !initSkipSeed {
		lib, _, err := catalog.LoadFromBytes(seeds.StarterJSON)
		if err != nil {
			return fmt.Errorf("failed to load starter theme: %w", err)
		}
		if err := st.ImportLibrary(ctx, lib); err != nil {
			return fmt.Errorf("failed to seed starter theme: %w", err)
		}
		color.Green("Seeded starter theme (%d themes, %d components)", len(lib.Themes), len(lib.Components))
	}

	if _, err := os.Stat(".themelib.yaml"); os.IsNotExist(err) {
		if err := os.WriteFile(".themelib.yaml", []byte(defaultConfigYAML), 0o644); err != nil {
			return fmt.Errorf("failed to write config file: %w", err)
		}
		fmt.Println("Created .themelib.yaml")
	}

	color.Green("Workspace initialized at %s", path)
	return nil
}
