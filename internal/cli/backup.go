package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/launchpad/internal/backup"
	"github.com/MrSnakeDoc/launchpad/internal/domain"
	"github.com/MrSnakeDoc/launchpad/internal/utils"
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Create, inspect and restore backups of saved URLs and settings",
}

var backupCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a backup now",
	Args:  cobra.NoArgs,
	RunE:  backupCreateRun,
}

var backupListCmd = &cobra.Command{
	Use:   "list",
	Short: "List backups, newest first",
	Args:  cobra.NoArgs,
	RunE:  backupListRun,
}

var backupRestoreCmd = &cobra.Command{
	Use:   "restore <backup>",
	Short: "Restore a backup by file name or path",
	Args:  cobra.ExactArgs(1),
	RunE:  backupRestoreRun,
}

var backupDeleteCmd = &cobra.Command{
	Use:   "delete <backup>",
	Short: "Delete a backup",
	Args:  cobra.ExactArgs(1),
	RunE:  backupDeleteRun,
}

var backupCleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Delete all but the newest backups",
	Args:  cobra.NoArgs,
	RunE:  backupCleanupRun,
}

var backupAutoCmd = &cobra.Command{
	Use:         "auto",
	Short:       "Create a backup if auto backup is enabled and due",
	Args:        cobra.NoArgs,
	RunE:        backupAutoRun,
	Annotations: map[string]string{annotationNoAutoBackup: "true"},
}

var backupInfoCmd = &cobra.Command{
	Use:   "info <backup>",
	Short: "Show the details of a backup",
	Args:  cobra.ExactArgs(1),
	RunE:  backupInfoRun,
}

var backupImportCmd = &cobra.Command{
	Use:   "import <path>",
	Short: "Copy a backup file from anywhere into the backup directory",
	Args:  cobra.ExactArgs(1),
	RunE:  backupImportRun,
}

var backupEmergencyCmd = &cobra.Command{
	Use:   "emergency",
	Short: "Restore the newest backup",
	Args:  cobra.NoArgs,
	RunE:  backupEmergencyRun,
}

var (
	backupNoSettings bool
	backupListText   bool
	backupKeep       int
	backupRestore    bool
)

type backupCreated struct {
	Path string `json:"path"`
	Size string `json:"size"`
}

type emergencyResult struct {
	Backup domain.BackupInfo    `json:"backup"`
	Result backup.RestoreResult `json:"result"`
}

func init() {
	rootCmd.AddCommand(backupCmd)
	backupCmd.AddCommand(backupCreateCmd)
	backupCmd.AddCommand(backupListCmd)
	backupCmd.AddCommand(backupRestoreCmd)
	backupCmd.AddCommand(backupDeleteCmd)
	backupCmd.AddCommand(backupCleanupCmd)
	backupCmd.AddCommand(backupAutoCmd)
	backupCmd.AddCommand(backupInfoCmd)
	backupCmd.AddCommand(backupImportCmd)
	backupCmd.AddCommand(backupEmergencyCmd)

	for _, c := range []*cobra.Command{backupCreateCmd, backupRestoreCmd, backupEmergencyCmd, backupImportCmd} {
		c.Flags().BoolVar(&backupNoSettings, "no-settings", false, "Leave settings out")
	}
	backupListCmd.Flags().BoolVar(&backupListText, "text", false, "Print a table instead of JSON")
	backupCleanupCmd.Flags().IntVar(&backupKeep, "keep", 0, "Backups to keep (default: LAUNCHPAD_MAX_BACKUPS)")
	backupImportCmd.Flags().BoolVar(&backupRestore, "restore", false, "Restore the backup after importing it")
}

func backupCreateRun(cmd *cobra.Command, _ []string) error {
	path, err := current.Backups.CreateBackup(cmd.Context(), !backupNoSettings)
	if err != nil {
		return fmt.Errorf("creating backup: %w", err)
	}
	current.Metrics.RecordBackup("manual")
	return writeJSON(cmd, backupCreated{Path: path, Size: utils.FormatFileSize(utils.FileSize(path))})
}

func backupListRun(cmd *cobra.Command, _ []string) error {
	backups := current.Backups.ListBackups()
	if !backupListText {
		return writeJSON(cmd, backups)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tCREATED\tURLS\tSETTINGS\tSIZE")
	for _, b := range backups {
		fmt.Fprintf(w, "%s\t%s\t%d\t%t\t%s\n",
			b.Filename, utils.FormatDateTime(b.CreatedDate), b.URLCount, b.HasSettings, b.FileSize)
	}
	return w.Flush()
}

func backupRestoreRun(cmd *cobra.Command, args []string) error {
	res, err := current.Backups.RestoreBackup(cmd.Context(), backupPath(args[0]), !backupNoSettings)
	if err != nil {
		return fmt.Errorf("restoring backup %s: %w", args[0], err)
	}
	return writeJSON(cmd, res)
}

func backupDeleteRun(cmd *cobra.Command, args []string) error {
	path := backupPath(args[0])
	if err := current.Backups.DeleteBackup(path); err != nil {
		return fmt.Errorf("deleting backup %s: %w", args[0], err)
	}
	return writeJSON(cmd, map[string]string{"deleted": path})
}

func backupCleanupRun(cmd *cobra.Command, _ []string) error {
	keep := backupKeep
	if keep <= 0 {
		keep = current.Config().MaxBackups
	}
	n, err := current.Backups.CleanupOldBackups(keep)
	if err != nil {
		return fmt.Errorf("cleaning up backups: %w", err)
	}
	return writeJSON(cmd, map[string]int{"deleted": n})
}

func backupAutoRun(cmd *cobra.Command, _ []string) error {
	return writeJSON(cmd, map[string]bool{"created": current.AutoBackup(cmd.Context())})
}

func backupInfoRun(cmd *cobra.Command, args []string) error {
	detail, err := current.Backups.Inspect(backupPath(args[0]))
	if err != nil {
		return fmt.Errorf("reading backup %s: %w", args[0], err)
	}
	return writeJSON(cmd, detail)
}

func backupImportRun(cmd *cobra.Command, args []string) error {
	if backupRestore {
		res, err := current.Backups.RestoreFromFile(cmd.Context(), args[0], !backupNoSettings)
		if err != nil {
			return fmt.Errorf("restoring %s: %w", args[0], err)
		}
		return writeJSON(cmd, res)
	}

	path, err := current.Backups.ImportFromExternal(args[0])
	if err != nil {
		return fmt.Errorf("importing %s: %w", args[0], err)
	}
	return writeJSON(cmd, map[string]string{"imported": path})
}

func backupEmergencyRun(cmd *cobra.Command, _ []string) error {
	latest, res, err := current.Backups.EmergencyRestore(cmd.Context(), !backupNoSettings)
	if err != nil {
		return fmt.Errorf("emergency restore: %w", err)
	}
	return writeJSON(cmd, emergencyResult{Backup: latest, Result: res})
}
