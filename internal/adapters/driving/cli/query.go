package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quill-labs/aide-cli/internal/core/domain"
)

var (
	queryLimit    int
	queryMinScore float64
	queryJSON     bool
)

var queryCmd = &cobra.Command{
	Use:   "query [text]",
	Short: "Search the knowledge base",
	Long: `Performs a semantic similarity search over the indexed documents.
Results are ranked by relevance; entries below the relevance floor are
excluded.`,
	Args: cobra.ExactArgs(1),
	RunE: runQuery,
}

func init() {
	queryCmd.Flags().IntVarP(&queryLimit, "limit", "n", domain.DefaultTopK, "maximum number of results")
	queryCmd.Flags().Float64Var(&queryMinScore, "min-score", domain.DefaultMinScore, "relevance floor (exclusive)")
	queryCmd.Flags().BoolVar(&queryJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(queryCmd)
}

func runQuery(cmd *cobra.Command, args []string) error {
	if retrievalService == nil {
		return errors.New("retrieval service not configured")
	}

	results, err := retrievalService.Query(cmd.Context(), args[0], queryLimit, queryMinScore)
	if err != nil {
		if errors.Is(err, domain.ErrEmptyIndex) {
			cmd.Println("Knowledge base is empty. Add documents with 'aide add' first.")
			return nil
		}
		return fmt.Errorf("query failed: %w", err)
	}

	if queryJSON {
		return outputQueryJSON(cmd, results)
	}
	return outputQueryTable(cmd, results)
}

func outputQueryJSON(cmd *cobra.Command, results []domain.SearchResult) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputQueryTable(cmd *cobra.Command, results []domain.SearchResult) error {
	if len(results) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	cmd.Println("Results:")
	cmd.Println()
	for i := range results {
		cmd.Printf("  [%d] %s (%.3f)\n", i+1, results[i].Title, results[i].RelevanceScore)
		if results[i].Source != "" {
			cmd.Printf("      Source: %s\n", results[i].Source)
		}
		cmd.Printf("      %s\n", snippet(results[i].Content, 160))
		cmd.Println()
	}
	return nil
}

// snippet truncates content to at most n runes for table display.
func snippet(content string, n int) string {
	runes := []rune(content)
	if len(runes) <= n {
		return content
	}
	return string(runes[:n]) + "..."
}
