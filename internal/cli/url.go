package cli

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/launchpad/internal/domain"
	"github.com/MrSnakeDoc/launchpad/internal/urls"
	"github.com/MrSnakeDoc/launchpad/internal/utils"
)

var urlCmd = &cobra.Command{
	Use:   "url",
	Short: "Manage saved URLs",
}

var urlSaveCmd = &cobra.Command{
	Use:   "save <name> <url>",
	Short: "Save a URL under a unique name",
	Args:  cobra.ExactArgs(2),
	RunE:  urlSaveRun,
}

var urlListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved URLs, most recently created first",
	Args:  cobra.NoArgs,
	RunE:  urlListRun,
}

var urlGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one saved URL",
	Args:  cobra.ExactArgs(1),
	RunE:  urlGetRun,
}

var urlUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Change the name, URL or description of a saved URL",
	Args:  cobra.ExactArgs(1),
	RunE:  urlUpdateRun,
}

var urlDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a saved URL, or all of them with --all",
	Args:  cobra.MaximumNArgs(1),
	RunE:  urlDeleteRun,
}

var urlSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search saved URLs by name, URL or description",
	Args:  cobra.ExactArgs(1),
	RunE:  urlSearchRun,
}

var urlStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show saved URL statistics",
	Args:  cobra.NoArgs,
	RunE:  urlStatsRun,
}

var urlTopCmd = &cobra.Command{
	Use:   "top",
	Short: "List the most opened saved URLs",
	Args:  cobra.NoArgs,
	RunE:  urlTopRun,
}

var urlExportCmd = &cobra.Command{
	Use:   "export [path]",
	Short: "Export saved URLs to a JSON file, by default in the profile directory",
	Args:  cobra.MaximumNArgs(1),
	RunE:  urlExportRun,
}

var urlImportCmd = &cobra.Command{
	Use:   "import <path>",
	Short: "Import saved URLs from an export file",
	Args:  cobra.ExactArgs(1),
	RunE:  urlImportRun,
}

var urlOpenCmd = &cobra.Command{
	Use:   "open <id> <executable>",
	Short: "Open a saved URL with the given browser executable",
	Args:  cobra.ExactArgs(2),
	RunE:  urlOpenRun,
}

var (
	urlDescription       string
	urlUpdateName        string
	urlUpdateURL         string
	urlUpdateDescription string
	urlDeleteAll         bool
	urlTopLimit          int
	urlImportReplace     bool
)

func init() {
	rootCmd.AddCommand(urlCmd)
	urlCmd.AddCommand(urlSaveCmd)
	urlCmd.AddCommand(urlListCmd)
	urlCmd.AddCommand(urlGetCmd)
	urlCmd.AddCommand(urlUpdateCmd)
	urlCmd.AddCommand(urlDeleteCmd)
	urlCmd.AddCommand(urlSearchCmd)
	urlCmd.AddCommand(urlStatsCmd)
	urlCmd.AddCommand(urlTopCmd)
	urlCmd.AddCommand(urlExportCmd)
	urlCmd.AddCommand(urlImportCmd)
	urlCmd.AddCommand(urlOpenCmd)

	urlSaveCmd.Flags().StringVar(&urlDescription, "description", "", "Description of the URL")
	urlUpdateCmd.Flags().StringVar(&urlUpdateName, "name", "", "New name")
	urlUpdateCmd.Flags().StringVar(&urlUpdateURL, "url", "", "New URL")
	urlUpdateCmd.Flags().StringVar(&urlUpdateDescription, "description", "", "New description")
	urlDeleteCmd.Flags().BoolVar(&urlDeleteAll, "all", false, "Delete every saved URL")
	urlTopCmd.Flags().IntVar(&urlTopLimit, "limit", urls.DefaultTopLimit, "Number of URLs to list")
	urlImportCmd.Flags().BoolVar(&urlImportReplace, "replace", false, "Replace the collection instead of merging")
}

func urlSaveRun(cmd *cobra.Command, args []string) error {
	url, err := current.Launcher.NormalizeURL(args[1])
	if err != nil {
		return fmt.Errorf("saving url: %w", err)
	}
	saved, err := current.URLs.Save(args[0], url, urlDescription)
	if err != nil {
		return fmt.Errorf("saving url: %w", err)
	}
	return writeJSON(cmd, saved)
}

func urlListRun(cmd *cobra.Command, _ []string) error {
	return writeJSON(cmd, current.URLs.All())
}

func urlGetRun(cmd *cobra.Command, args []string) error {
	u, err := current.URLs.Get(args[0])
	if err != nil {
		return fmt.Errorf("getting url %s: %w", args[0], err)
	}
	return writeJSON(cmd, u)
}

func urlUpdateRun(cmd *cobra.Command, args []string) error {
	var patch domain.URLPatch
	flags := cmd.Flags()
	if flags.Changed("name") {
		patch.Name = &urlUpdateName
	}
	if flags.Changed("url") {
		url, err := current.Launcher.NormalizeURL(urlUpdateURL)
		if err != nil {
			return fmt.Errorf("updating url %s: %w", args[0], err)
		}
		patch.URL = &url
	}
	if flags.Changed("description") {
		patch.Description = &urlUpdateDescription
	}
	if patch.IsEmpty() {
		return errors.New("nothing to update: pass --name, --url or --description")
	}

	u, err := current.URLs.Update(args[0], patch)
	if err != nil {
		return fmt.Errorf("updating url %s: %w", args[0], err)
	}
	return writeJSON(cmd, u)
}

func urlDeleteRun(cmd *cobra.Command, args []string) error {
	if urlDeleteAll {
		n, err := current.URLs.DeleteAll()
		if err != nil {
			return fmt.Errorf("deleting urls: %w", err)
		}
		return writeJSON(cmd, map[string]int{"deleted": n})
	}
	if len(args) == 0 {
		return errors.New("pass a saved URL id or --all")
	}
	if err := current.URLs.Delete(args[0]); err != nil {
		return fmt.Errorf("deleting url %s: %w", args[0], err)
	}
	return writeJSON(cmd, map[string]int{"deleted": 1})
}

func urlSearchRun(cmd *cobra.Command, args []string) error {
	return writeJSON(cmd, current.URLs.Search(args[0]))
}

func urlStatsRun(cmd *cobra.Command, _ []string) error {
	return writeJSON(cmd, current.URLs.Stats())
}

func urlTopRun(cmd *cobra.Command, _ []string) error {
	return writeJSON(cmd, current.URLs.MostAccessed(urlTopLimit))
}

func urlExportRun(cmd *cobra.Command, args []string) error {
	path := ""
	if len(args) > 0 {
		path = args[0]
	} else {
		name := utils.SanitizeFilename("saved_urls_export_" + utils.BackupTimestamp(utils.NowISO(time.Now())) + ".json")
		path = filepath.Join(current.Config().ProfileDir, name)
	}

	if err := current.URLs.Export(path); err != nil {
		return fmt.Errorf("exporting urls: %w", err)
	}
	return writeJSON(cmd, map[string]string{"exported": path})
}

func urlImportRun(cmd *cobra.Command, args []string) error {
	result, err := current.URLs.Import(args[0], !urlImportReplace)
	if err != nil {
		return fmt.Errorf("importing urls: %w", err)
	}
	return writeJSON(cmd, result)
}

func urlOpenRun(cmd *cobra.Command, args []string) error {
	u, err := current.Launcher.OpenSaved(cmd.Context(), args[0], args[1])
	if err != nil {
		return fmt.Errorf("opening url %s: %w", args[0], err)
	}
	return writeJSON(cmd, u)
}
