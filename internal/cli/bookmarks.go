package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/launchpad/internal/domain"
)

var bookmarksCmd = &cobra.Command{
	Use:   "bookmarks",
	Short: "Read and import desktop browser bookmarks",
}

var bookmarksListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the bookmarks of the installed browsers",
	Args:  cobra.NoArgs,
	RunE:  bookmarksListRun,
}

var bookmarksImportCmd = &cobra.Command{
	Use:   "import [index...]",
	Short: "Import bookmarks by their index in the list output, or all of them with --all",
	RunE:  bookmarksImportRun,
}

var bookmarksImportAll bool

func init() {
	rootCmd.AddCommand(bookmarksCmd)
	bookmarksCmd.AddCommand(bookmarksListCmd)
	bookmarksCmd.AddCommand(bookmarksImportCmd)

	bookmarksImportCmd.Flags().BoolVar(&bookmarksImportAll, "all", false, "Import every bookmark")
}

func bookmarksListRun(cmd *cobra.Command, _ []string) error {
	return writeJSON(cmd, current.Sources.All(cmd.Context()))
}

func bookmarksImportRun(cmd *cobra.Command, args []string) error {
	found := current.Sources.All(cmd.Context())

	var selection []domain.ImportedBookmark
	switch {
	case bookmarksImportAll:
		selection = found
	case len(args) == 0:
		return errors.New("pass bookmark indexes or --all")
	default:
		for _, a := range args {
			i, err := strconv.Atoi(a)
			if err != nil || i < 0 || i >= len(found) {
				return fmt.Errorf("invalid bookmark index %q: %d bookmarks found", a, len(found))
			}
			selection = append(selection, found[i])
		}
	}

	return writeJSON(cmd, current.Sources.Import(current.URLs, selection))
}
