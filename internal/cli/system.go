package cli

import (
	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/launchpad/internal/utils"
	"github.com/MrSnakeDoc/launchpad/internal/version"
)

var netcheckCmd = &cobra.Command{
	Use:   "netcheck",
	Short: "Check that the network is reachable",
	Args:  cobra.NoArgs,
	RunE:  netcheckRun,
}

var sysinfoCmd = &cobra.Command{
	Use:   "sysinfo",
	Short: "Show the platform recorded in backups",
	Args:  cobra.NoArgs,
	RunE:  sysinfoRun,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the local HTTP API with the background jobs",
	Args:  cobra.NoArgs,
	RunE:  serveRun,
}

var versionCmd = &cobra.Command{
	Use:         "version",
	Short:       "Print the version",
	Args:        cobra.NoArgs,
	RunE:        versionRun,
	Annotations: map[string]string{annotationNoApp: "true"},
}

type netcheckResult struct {
	Address   string `json:"address"`
	Available bool   `json:"available"`
}

type versionInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version"`
}

func init() {
	rootCmd.AddCommand(netcheckCmd)
	rootCmd.AddCommand(sysinfoCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

func netcheckRun(cmd *cobra.Command, _ []string) error {
	cfg := current.Config()
	ok := utils.NetworkAvailable(cmd.Context(), cfg.NetworkProbeAddr, cfg.NetworkProbeTimeout)
	return writeJSON(cmd, netcheckResult{Address: cfg.NetworkProbeAddr, Available: ok})
}

func sysinfoRun(cmd *cobra.Command, _ []string) error {
	return writeJSON(cmd, utils.SystemInfo())
}

func serveRun(cmd *cobra.Command, _ []string) error {
	return current.Run(cmd.Context())
}

func versionRun(cmd *cobra.Command, _ []string) error {
	return writeJSON(cmd, versionInfo{
		Version:   version.Version,
		Commit:    version.Commit,
		BuildDate: version.BuildDate,
		GoVersion: version.GoVersion,
	})
}
