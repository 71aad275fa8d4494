package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/KeleWarg/design-theme-library/pkg/catalog"
	"github.com/KeleWarg/design-theme-library/pkg/export"
	"github.com/KeleWarg/design-theme-library/pkg/mcp"
	"github.com/KeleWarg/design-theme-library/pkg/mcplog"
	"github.com/KeleWarg/design-theme-library/pkg/store"
	"github.com/KeleWarg/design-theme-library/pkg/util"
)

var (
	serveLibrary string
	serveLogPath string
)

func init() {
	serveCmd.Flags().StringVar(&serveLibrary, "library", "", "serve a library JSON file instead of the database")
	serveCmd.Flags().StringVar(&serveLogPath, "log", "", "append tool-call JSONL entries to this file")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the library over MCP on stdin/stdout",
	Long: `Serve exposes the library to MCP clients: theme and token queries,
component lookups, token search, and package building.

By default it serves the workspace database. Pass --library to serve a
standalone library JSON export instead; build_package is unavailable in
that mode since there is no record store behind it.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return executeServe(cmd.Context())
	},
}

func executeServe(ctx context.Context) error {
	logger, err := mcplog.NewLogger(serveLogPath)
	if err != nil {
		return fmt.Errorf("failed to open tool-call log: %w", err)
	}
	if logger != nil {
		defer logger.Close()
	}

	var (
		qs      *catalog.QueryService
		builder *export.Builder
	)

	if serveLibrary != "" {
		qs, err = catalog.LoadAndQuery(serveLibrary)
		if err != nil {
			return fmt.Errorf("failed to load library: %w", err)
		}
	} else {
		st, err := store.Open(dbPath())
		if err != nil {
			return fmt.Errorf("failed to open library database: %w", err)
		}
		defer st.Close()

		lib, err := st.ExportLibrary(ctx, viper.GetString("project_name"), viper.GetString("version"))
		if err != nil {
			return fmt.Errorf("failed to snapshot library: %w", err)
		}
		qs = catalog.NewQueryService(lib, lib.BuildIndex())

		slogger := util.NewLogger(util.LoggerConfig{
			Level:  util.LevelWarn,
			Format: util.FormatJSON,
			Output: os.Stderr,
		})
		builder = export.NewBuilder(st, export.WithLogger(slogger))
	}

	srv := mcp.NewServer(qs, builder, logger)
	return srv.ServeStdio()
}
