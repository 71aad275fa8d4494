package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/go-resty/resty/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/KeleWarg/design-theme-library/pkg/export"
	"github.com/KeleWarg/design-theme-library/pkg/generate"
	"github.com/KeleWarg/design-theme-library/pkg/store"
	"github.com/KeleWarg/design-theme-library/pkg/util"
)

var (
	exportOut      string
	exportZip      string
	exportFormats  []string
	exportThemes   []string
	exportProject  string
	exportVersion  string
	exportMinify   bool
	exportLiterals bool
)

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "export", "output directory")
	exportCmd.Flags().StringVar(&exportZip, "zip", "", "write a zip archive instead of a directory")
	exportCmd.Flags().StringSliceVar(&exportFormats, "formats", nil, "format ids to generate (default full-package)")
	exportCmd.Flags().StringSliceVar(&exportThemes, "themes", nil, "theme ids or slugs to include (default all)")
	exportCmd.Flags().StringVar(&exportProject, "project", "", "project name stamped into generated files")
	exportCmd.Flags().StringVar(&exportVersion, "version", "", "package version")
	exportCmd.Flags().BoolVar(&exportMinify, "minify", false, "minify stylesheet output")
	exportCmd.Flags().BoolVar(&exportLiterals, "literals", false, "tailwind config uses literal values instead of var() references")
	rootCmd.AddCommand(exportCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Build an export package from the library",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return executeExport(cmd.Context())
	},
}

func executeExport(ctx context.Context) error {
	st, err := store.Open(dbPath())
	if err != nil {
		return fmt.Errorf("failed to open library database: %w", err)
	}
	defer st.Close()

	themeIDs, err := resolveExportThemes(ctx, st)
	if err != nil {
		return err
	}
	componentIDs, err := allComponentIDs(ctx, st)
	if err != nil {
		return err
	}

	project := exportProject
	if project == "" {
		project = viper.GetString("project_name")
	}
	pkgVersion := exportVersion
	if pkgVersion == "" {
		pkgVersion = viper.GetString("version")
	}

	logger := util.NewLogger(util.LoggerConfig{
		Level:  util.LevelWarn,
		Format: util.FormatText,
		Output: os.Stderr,
	})

	builder := export.NewBuilder(st, export.WithLogger(logger))
	result, err := builder.BuildPackage(ctx, export.Request{
		ThemeIDs:     themeIDs,
		ComponentIDs: componentIDs,
		Formats:      exportFormats,
		Options: generate.Options{
			ProjectName:      project,
			Version:          pkgVersion,
			GeneratedAt:      time.Now().UTC(),
			Minify:           exportMinify,
			UseLiteralValues: exportLiterals,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to build package: %w", err)
	}

	writer := export.NewWriter(
		export.WithWriterLogger(logger),
		export.WithAssetLoader(httpAssetLoader()),
	)

	if exportZip != "" {
		f, err := os.Create(exportZip)
		if err != nil {
			return fmt.Errorf("failed to create archive: %w", err)
		}
		defer f.Close()
		if err := writer.WriteArchive(ctx, result, f); err != nil {
			return err
		}
		color.Green("Wrote %d files to %s", result.FileCount, exportZip)
	} else {
		if err := writer.WriteDir(ctx, result, exportOut); err != nil {
			return err
		}
		color.Green("Wrote %d files to %s/", result.FileCount, exportOut)
	}

	for _, warn := range result.Warnings {
		color.Yellow("warning: %s", warn)
	}
	for _, msg := range result.Errors {
		color.Red("error: %s", msg)
	}
	return nil
}

// resolveExportThemes maps --themes slugs or ids to record ids, defaulting
// to every theme in the library.
func resolveExportThemes(ctx context.Context, st *store.Store) ([]string, error) {
	summaries, err := st.ListThemes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list themes: %w", err)
	}

	if len(exportThemes) == 0 {
		ids := make([]string, 0, len(summaries))
		for _, s := range summaries {
			ids = append(ids, s.ID)
		}
		return ids, nil
	}

	bySlug := make(map[string]string, len(summaries))
	byID := make(map[string]bool, len(summaries))
	for _, s := range summaries {
		bySlug[s.Slug] = s.ID
		byID[s.ID] = true
	}

	ids := make([]string, 0, len(exportThemes))
	for _, key := range exportThemes {
		switch {
		case byID[key]:
			ids = append(ids, key)
		case bySlug[key] != "":
			ids = append(ids, bySlug[key])
		default:
			return nil, fmt.Errorf("theme not found: %s", key)
		}
	}
	return ids, nil
}

func allComponentIDs(ctx context.Context, st *store.Store) ([]string, error) {
	comps, err := st.ListComponents(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("failed to list components: %w", err)
	}
	ids := make([]string, 0, len(comps))
	for _, c := range comps {
		ids = append(ids, c.ID)
	}
	return ids, nil
}

// httpAssetLoader downloads custom font files referenced by typefaces.
func httpAssetLoader() export.AssetLoader {
	client := resty.New().SetTimeout(30 * time.Second).SetRetryCount(2)
	return func(ctx context.Context, url string) ([]byte, error) {
		resp, err := client.R().SetContext(ctx).Get(url)
		if err != nil {
			return nil, fmt.Errorf("failed to download asset: %w", err)
		}
		if resp.IsError() {
			return nil, fmt.Errorf("failed to download asset: %s returned %s", url, resp.Status())
		}
		return resp.Body(), nil
	}
}
