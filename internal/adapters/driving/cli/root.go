// Package cli provides the cobra command tree for the aide binary.
// Services are built lazily through the bootstrap hook once persistent
// flags are parsed, or injected directly with SetServices in tests.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/quill-labs/aide-cli/internal/core/ports/driven"
	"github.com/quill-labs/aide-cli/internal/core/ports/driving"
	"github.com/quill-labs/aide-cli/internal/logger"
)

// version is stamped by the release build.
var version = "0.1.0"

// Persistent flags.
var (
	verbose bool
	dataDir string
)

// Injected services. Commands check for nil and fail with a clear
// message rather than panic.
var (
	retrievalService driving.RetrievalService
	assistantService driving.Assistant
	configStore      driven.ConfigStore
)

// Services aggregates everything the command tree needs.
type Services struct {
	Retrieval driving.RetrievalService
	Assistant driving.Assistant
	Config    driven.ConfigStore
}

// bootstrap builds the services once flags are parsed. Set by main.
var bootstrap func(dataDir string) (Services, error)

// SetBootstrap registers the service factory. It runs once, after
// persistent flag parsing and before any command body.
func SetBootstrap(fn func(dataDir string) (Services, error)) {
	bootstrap = fn
}

// SetServices injects the application services directly.
func SetServices(s Services) {
	retrievalService = s.Retrieval
	assistantService = s.Assistant
	configStore = s.Config
}

var rootCmd = &cobra.Command{
	Use:   "aide",
	Short: "Personal knowledge assistant",
	Long: `aide is a personal knowledge assistant for the terminal.

Add documents to a local knowledge base, ask questions against it,
check your calendar, and compose email - all from one conversational
interface backed by semantic search.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		logger.SetVerbose(verbose)

		if bootstrap != nil && retrievalService == nil && assistantService == nil {
			services, err := bootstrap(dataDir)
			if err != nil {
				return err
			}
			SetServices(services)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "data directory (default ~/.aide)")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
