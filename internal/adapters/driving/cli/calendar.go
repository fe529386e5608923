package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var calendarCmd = &cobra.Command{
	Use:   "calendar [query]",
	Short: "Check upcoming calendar events",
	Long: `Asks the assistant about your schedule. The time window is inferred
from the query: "today", "tomorrow", "this week", "next week", or
"this month". Defaults to the next 7 days.`,
	RunE: runCalendar,
}

func init() {
	rootCmd.AddCommand(calendarCmd)
}

func runCalendar(cmd *cobra.Command, args []string) error {
	if assistantService == nil {
		return errors.New("assistant not configured (set an API key with 'aide config set-key')")
	}

	query := "What's on my calendar this week?"
	if len(args) > 0 {
		query = strings.Join(args, " ")
	}

	reply, err := assistantService.Chat(cmd.Context(), query)
	if err != nil {
		return fmt.Errorf("calendar query failed: %w", err)
	}

	cmd.Println(reply)
	return nil
}
