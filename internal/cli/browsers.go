package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/launchpad/internal/browser"
	"github.com/MrSnakeDoc/launchpad/internal/domain"
)

var browsersCmd = &cobra.Command{
	Use:   "browsers",
	Short: "List the browsers installed on this machine",
	Args:  cobra.NoArgs,
	RunE:  browsersRun,
}

var openCmd = &cobra.Command{
	Use:   "open <executable> [url]",
	Short: "Open a URL with the given browser executable",
	Long:  "Open a URL with the given browser executable. Without a URL the browser starts on its home page.",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  openRun,
}

var openDefaultCmd = &cobra.Command{
	Use:   "open-default <url>",
	Short: "Open a URL with the default browser",
	Args:  cobra.ExactArgs(1),
	RunE:  openDefaultRun,
}

var defaultBrowserCmd = &cobra.Command{
	Use:   "default-browser",
	Short: "Show the OS default browser",
	Args:  cobra.NoArgs,
	RunE:  defaultBrowserRun,
}

var openCustom bool

type launchResult struct {
	Browser string `json:"browser"`
	URL     string `json:"url"`
}

type defaultBrowserResult struct {
	ID      string              `json:"id"`
	Browser *domain.BrowserInfo `json:"browser"`
}

func init() {
	rootCmd.AddCommand(browsersCmd)
	rootCmd.AddCommand(openCmd)
	rootCmd.AddCommand(openDefaultCmd)
	rootCmd.AddCommand(defaultBrowserCmd)

	openCmd.Flags().BoolVar(&openCustom, "custom", false, "Treat the URL as typed by the user (add a scheme, validate)")
}

func browsersRun(cmd *cobra.Command, _ []string) error {
	found := current.Browsers.Installed(cmd.Context())
	if found == nil {
		found = []domain.BrowserInfo{}
	}
	return writeJSON(cmd, found)
}

func openRun(cmd *cobra.Command, args []string) error {
	exe := args[0]
	url := ""
	if len(args) > 1 {
		url = args[1]
	}

	if openCustom {
		opened, err := current.Launcher.OpenCustom(cmd.Context(), url, exe)
		if err != nil {
			return fmt.Errorf("opening %s: %w", url, err)
		}
		url = opened
	} else if err := current.Launcher.Open(cmd.Context(), exe, url); err != nil {
		return fmt.Errorf("opening %s: %w", exe, err)
	}

	return writeJSON(cmd, launchResult{
		Browser: browser.NameFor(current.Browsers.Installed(cmd.Context()), exe),
		URL:     url,
	})
}

func openDefaultRun(cmd *cobra.Command, args []string) error {
	url, err := current.Launcher.NormalizeURL(args[0])
	if err != nil {
		return fmt.Errorf("opening %s: %w", args[0], err)
	}
	used, err := current.Launcher.OpenDefault(cmd.Context(), url)
	if err != nil {
		return fmt.Errorf("opening %s: %w", url, err)
	}
	return writeJSON(cmd, launchResult{Browser: used.Name, URL: url})
}

func defaultBrowserRun(cmd *cobra.Command, _ []string) error {
	id := current.Browsers.DefaultBrowser(cmd.Context())
	result := defaultBrowserResult{ID: id}
	if b, ok := browser.MatchDefault(current.Browsers.Installed(cmd.Context()), id); ok {
		result.Browser = &b
	}
	return writeJSON(cmd, result)
}
