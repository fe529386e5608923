package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/quill-labs/aide-cli/internal/core/domain"
)

var (
	addTitle  string
	addSource string
	addMeta   []string
)

var addCmd = &cobra.Command{
	Use:   "add [file...]",
	Short: "Add documents to the knowledge base",
	Long: `Add one or more text files to the knowledge base.

Each file is split into overlapping chunks, embedded, and indexed.
With no arguments, content is read from stdin (use --title to name it).

Metadata can be attached with repeated --meta key=value flags.`,
	RunE: runAdd,
}

func init() {
	addCmd.Flags().StringVarP(&addTitle, "title", "t", "", "document title (defaults to the file name)")
	addCmd.Flags().StringVarP(&addSource, "source", "s", "manual", "document source label")
	addCmd.Flags().StringArrayVarP(&addMeta, "meta", "m", nil, "metadata entry as key=value (repeatable)")
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	if retrievalService == nil {
		return errors.New("retrieval service not configured")
	}

	metadata, err := parseMetaFlags(addMeta)
	if err != nil {
		return err
	}

	if len(args) == 0 {
		content, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		title := addTitle
		if title == "" {
			title = "stdin"
		}
		return addDocument(cmd, title, string(content), metadata)
	}

	for _, path := range args {
		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		title := addTitle
		if title == "" {
			title = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		}
		if err := addDocument(cmd, title, string(content), metadata); err != nil {
			return err
		}
	}
	return nil
}

func addDocument(cmd *cobra.Command, title, content string, metadata domain.Metadata) error {
	chunks, err := retrievalService.Ingest(cmd.Context(), title, content, addSource, metadata)
	if err != nil {
		return fmt.Errorf("add %q: %w", title, err)
	}
	cmd.Printf("Added %q (%d chunks, index size %d)\n", title, chunks, retrievalService.IndexSize())
	return nil
}

// parseMetaFlags converts repeated key=value flags into metadata.
func parseMetaFlags(pairs []string) (domain.Metadata, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	metadata := make(domain.Metadata, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid --meta entry %q, expected key=value", pair)
		}
		metadata[key] = value
	}
	return metadata, nil
}
