package cli

import (
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/quill-labs/aide-cli/internal/adapters/driving/tui"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive chat session",
	Long: `Launch the interactive chat interface.

Messages are classified by intent and routed to the matching handler:
knowledge questions are answered from the indexed documents, calendar
queries list upcoming events, email requests compose drafts, and
analysis requests produce structured summaries.

Controls:
  Enter        - Send message
  Esc / Ctrl+C - Quit`,
	RunE: runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, _ []string) error {
	if assistantService == nil {
		return errors.New("assistant not configured (set an API key with 'aide config set-key')")
	}

	// Panic recovery to get stack traces out of the alt screen
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in chat: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	return tui.Run(cmd.Context(), assistantService)
}
