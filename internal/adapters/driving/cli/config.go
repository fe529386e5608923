package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// Config keys for provider credentials.
const (
	keyOpenAI      = "openai.api_key"
	keyAnthropic   = "anthropic.api_key"
	keyGoogleToken = "google.access_token"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long:  `View and set configuration values stored in the aide config file.`,
	RunE:  runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

var configSetKeyCmd = &cobra.Command{
	Use:   "set-key [provider]",
	Short: "Set a provider API key",
	Long: `Sets the API key for a provider. The key is read from the terminal
without echo.

Providers:
  openai     - embeddings (required for the knowledge base)
  anthropic  - completions (required for chat, ask, calendar, email)
  google     - calendar and mail access token`,
	Args: cobra.ExactArgs(1),
	RunE: runConfigSetKey,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configSetKeyCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	cmd.Println("Configuration")
	cmd.Println("=============")
	cmd.Printf("  File: %s\n", configStore.Path())
	cmd.Println()

	for _, entry := range []struct{ label, key string }{
		{"OpenAI API key", keyOpenAI},
		{"Anthropic API key", keyAnthropic},
		{"Google access token", keyGoogleToken},
	} {
		value := configStore.GetString(entry.key)
		if value == "" {
			cmd.Printf("  %s: (not set)\n", entry.label)
		} else {
			cmd.Printf("  %s: %s\n", entry.label, maskSecret(value))
		}
	}
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	if err := configStore.Set(args[0], args[1]); err != nil {
		return fmt.Errorf("set %s: %w", args[0], err)
	}
	cmd.Printf("Set %s\n", args[0])
	return nil
}

func runConfigSetKey(cmd *cobra.Command, args []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	var key string
	switch args[0] {
	case "openai":
		key = keyOpenAI
	case "anthropic":
		key = keyAnthropic
	case "google":
		key = keyGoogleToken
	default:
		return fmt.Errorf("unknown provider %q (expected openai, anthropic, or google)", args[0])
	}

	cmd.Printf("Enter %s key: ", args[0])
	secret := readSecret()
	cmd.Println()

	if secret == "" {
		return errors.New("empty key, nothing stored")
	}

	if err := configStore.Set(key, secret); err != nil {
		return fmt.Errorf("store key: %w", err)
	}
	cmd.Printf("Stored %s key (%s)\n", args[0], maskSecret(secret))
	return nil
}

//nolint:errcheck // CLI helper, error ignored for UX
func readSecret() string {
	// Try to read without echo
	if term.IsTerminal(int(os.Stdin.Fd())) {
		secret, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err == nil {
			return strings.TrimSpace(string(secret))
		}
	}
	// Fallback to regular input
	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func maskSecret(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
