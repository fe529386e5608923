package cli

import (
	"context"
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/quill-labs/aide-cli/internal/adapters/driving/watcher"
)

var watchCmd = &cobra.Command{
	Use:   "watch [directory]",
	Short: "Watch a directory and ingest dropped documents",
	Long: `Watches a directory and automatically adds .txt and .md files to
the knowledge base as they are created or modified. Runs until
interrupted.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if retrievalService == nil {
		return errors.New("retrieval service not configured")
	}

	dir := args[0]
	info, err := os.Stat(dir)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return errors.New("watch target must be a directory")
	}

	cmd.Printf("Watching %s (Ctrl+C to stop)\n", dir)

	w := watcher.New(retrievalService, dir)
	if err := w.Run(cmd.Context()); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
