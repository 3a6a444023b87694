// Package cli exposes the launcher actions as cobra commands.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/launchpad/internal/app"
	"github.com/MrSnakeDoc/launchpad/internal/config"
	"github.com/MrSnakeDoc/launchpad/internal/logger"
)

// Command annotations read by setupApp.
const (
	annotationNoApp        = "launchpad:no-app"
	annotationNoAutoBackup = "launchpad:no-auto-backup"
)

var rootCmd = &cobra.Command{
	Use:               "launchpad",
	Short:             "Launch web browsers and keep bookmarks",
	Long:              "launchpad detects installed browsers, opens URLs with them and manages saved URLs, visit history and backups.",
	SilenceUsage:      true,
	PersistentPreRunE: setupApp,
	PersistentPostRun: closeApp,
}

var (
	// AppOptions is handed to app.New; tests replace the desktop hooks.
	AppOptions app.Options

	newApp = func(ctx context.Context, cfg *config.Config, log logger.Logger) (*app.App, error) {
		return app.New(ctx, cfg, log, AppOptions)
	}

	current *app.App
)

// Execute runs the command line.
func Execute() error {
	// PersistentPostRun is skipped when a command fails.
	defer closeApp(rootCmd, nil)
	return rootCmd.Execute()
}

// setupApp loads the configuration, builds the app and runs the auto
// backup check, as the host plugin did on every start.
func setupApp(cmd *cobra.Command, _ []string) error {
	if cmd.Annotations[annotationNoApp] != "" {
		return nil
	}

	cfg := config.Load()
	log := logger.New(cfg.LogLevel, cfg.PrettyLog)

	a, err := newApp(cmd.Context(), cfg, log)
	if err != nil {
		return fmt.Errorf("starting launchpad: %w", err)
	}
	current = a

	if cmd.Annotations[annotationNoAutoBackup] == "" {
		a.AutoBackup(cmd.Context())
	}
	return nil
}

func closeApp(_ *cobra.Command, _ []string) {
	if current == nil {
		return
	}
	current.Close()
	current = nil
}

func writeJSON(cmd *cobra.Command, v any) error {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling result: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonBytes)
	return nil
}

// backupPath accepts a backup path or a bare file name in the backup
// directory.
func backupPath(name string) string {
	if filepath.Base(name) == name {
		return filepath.Join(current.Backups.Dir(), name)
	}
	return name
}
