package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/KeleWarg/design-theme-library/pkg/ingest"
	"github.com/KeleWarg/design-theme-library/pkg/store"
	"github.com/KeleWarg/design-theme-library/pkg/util"
)

var watchDir string

func init() {
	watchCmd.Flags().StringVar(&watchDir, "dir", ".", "workspace directory to watch for token files")
	watchCmd.Flags().StringVarP(&exportOut, "out", "o", "export", "output directory re-exported on change")
	watchCmd.Flags().StringSliceVar(&exportFormats, "formats", nil, "format ids to generate (default full-package)")
	rootCmd.AddCommand(watchCmd)
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-ingest and re-export when token files change",
	Long: `Watch monitors a workspace for token export changes. When a token
file is written, it is re-ingested into the library and the export package
is rebuilt. Stop with Ctrl-C.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return executeWatch(cmd.Context())
	},
}

func executeWatch(ctx context.Context) error {
	logger := util.NewLogger(util.LoggerConfig{
		Level:  util.LevelInfo,
		Format: util.FormatText,
		Output: os.Stderr,
	})

	onChange := func(path string) {
		color.Cyan("Change detected: %s", path)

		st, err := store.Open(dbPath())
		if err != nil {
			logger.Error("failed to open library database", "error", err)
			return
		}
		if err := ingestOne(ctx, st, path); err != nil {
			st.Close()
			logger.Error("re-ingest failed", "file", path, "error", err)
			return
		}
		st.Close()

		if err := executeExport(ctx); err != nil {
			logger.Error("re-export failed", "error", err)
		}
	}

	watcher, err := ingest.NewWatcher(onChange, ingest.DefaultWatchOptions(), logger)
	if err != nil {
		return err
	}
	if err := watcher.Start(watchDir); err != nil {
		return err
	}
	defer watcher.Stop()

	fmt.Printf("Watching %s for token changes (Ctrl-C to stop)\n", watchDir)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sig:
	case <-ctx.Done():
	}
	return nil
}
