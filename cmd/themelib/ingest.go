package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/KeleWarg/design-theme-library/pkg/catalog"
	"github.com/KeleWarg/design-theme-library/pkg/ingest"
	"github.com/KeleWarg/design-theme-library/pkg/store"
)

var (
	ingestThemeName string
	ingestDir       string
)

func init() {
	ingestCmd.Flags().StringVar(&ingestThemeName, "theme", "", "theme name for the ingested tokens (defaults to the file name)")
	ingestCmd.Flags().StringVar(&ingestDir, "dir", "", "discover and ingest every token file under a directory")
	rootCmd.AddCommand(ingestCmd)
}

var ingestCmd = &cobra.Command{
	Use:   "ingest [file|url]",
	Short: "Normalize a design token export into the library",
	Long: `Ingest reads a token export (DTCG, flat map, or Style Dictionary),
normalizes it into canonical tokens, and saves the result as a theme.

The source may be a local file, an http(s) URL, or, with --dir, a workspace
directory to scan for token files.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if ingestDir == "" && len(args) == 0 {
			return errors.New("provide a token file, a URL, or --dir")
		}
		source := ""
		if len(args) == 1 {
			source = args[0]
		}
		return executeIngest(cmd.Context(), source)
	},
}

func executeIngest(ctx context.Context, source string) error {
	st, err := store.Open(dbPath())
	if err != nil {
		return fmt.Errorf("failed to open library database: %w", err)
	}
	defer st.Close()

	if ingestDir != "" {
		if ingestThemeName != "" {
			return errors.New("--theme cannot be combined with --dir; theme names come from the file names")
		}
		files, err := ingest.DiscoverTokenFiles(ingestDir, nil, nil)
		if err != nil {
			return fmt.Errorf("failed to discover token files: %w", err)
		}
		if len(files) == 0 {
			fmt.Println("No token files found.")
			return nil
		}
		for _, file := range files {
			if err := ingestOne(ctx, st, file); err != nil {
				return err
			}
		}
		return nil
	}

	return ingestOne(ctx, st, source)
}

func ingestOne(ctx context.Context, st *store.Store, source string) error {
	var (
		res *ingest.Result
		err error
	)
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		res, err = ingest.FetchSource(source, ingest.DefaultFetchOptions())
	} else {
		res, err = ingest.ReadSource(source)
	}
	if err != nil {
		return err
	}

	name := ingestThemeName
	if name == "" {
		name = themeNameFromSource(source)
	}

	theme := &catalog.Theme{
		Name:   name,
		Slug:   catalog.Slugify(name),
		Tokens: res.Tokens,
	}
	// Re-ingesting the same source updates the existing theme in place.
	if existing, err := st.GetThemeBySlug(ctx, theme.Slug); err == nil {
		theme.ID = existing.ID
	}
	if err := st.SaveTheme(ctx, theme); err != nil {
		return fmt.Errorf("failed to save theme: %w", err)
	}

	color.Green("Ingested %q: %d tokens (%s format)", name, len(res.Tokens), res.Metadata.Format)
	for cat, n := range res.Metadata.Categories {
		fmt.Printf("  %-12s %d\n", cat, n)
	}
	if len(res.Errors) > 0 {
		color.Yellow("%d leaves could not be parsed:", len(res.Errors))
		for _, msg := range res.Errors {
			fmt.Printf("  - %s\n", msg)
		}
	}
	return nil
}

// themeNameFromSource derives a readable theme name from a file path or URL.
func themeNameFromSource(source string) string {
	base := filepath.Base(source)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	base = strings.TrimSuffix(base, ".tokens")
	if base == "" || base == "." {
		return "Imported"
	}
	return base
}
