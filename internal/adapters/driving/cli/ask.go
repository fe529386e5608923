package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var askCmd = &cobra.Command{
	Use:   "ask [message]",
	Short: "Ask the assistant a single question",
	Long: `Sends one message through the assistant: the message is classified
by intent (knowledge, calendar, email, analysis) and routed to the
matching handler. For an ongoing conversation use 'aide chat'.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	if assistantService == nil {
		return errors.New("assistant not configured (set an API key with 'aide config set-key')")
	}

	message := strings.Join(args, " ")
	reply, err := assistantService.Chat(cmd.Context(), message)
	if err != nil {
		return fmt.Errorf("ask failed: %w", err)
	}

	cmd.Println(reply)
	return nil
}
