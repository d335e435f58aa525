package cmd

import (
	"fmt"
	"os"

	"github.com/kayz/slidesmith/internal/ai"
	"github.com/kayz/slidesmith/internal/compose"
	"github.com/kayz/slidesmith/internal/config"
	"github.com/kayz/slidesmith/internal/engine"
	"github.com/kayz/slidesmith/internal/logger"
	"github.com/kayz/slidesmith/internal/template"
	"github.com/kayz/slidesmith/internal/variant"
	"github.com/spf13/cobra"
)

var (
	logLevel  string
	assetsDir string
)

var rootCmd = &cobra.Command{
	Use:   "slidesmith",
	Short: "slidesmith slide content engine",
	Long: `slidesmith generates presentation-slide HTML from declarative layout
variants and a single consolidated model call.

Commands:
  slidesmith generate   Generate one slide from a variant
  slidesmith variants   List available layout variants
  slidesmith serve      Run the HTTP API server
  slidesmith mcp        Run as an MCP tool server`,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := logger.ParseLevel(logLevel)
		if err != nil {
			return err
		}
		logger.SetLevel(level)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "info",
		"Log level: trace, debug, info, warn, error, fatal, panic")
	rootCmd.PersistentFlags().StringVar(&assetsDir, "assets", "",
		"Root directory holding specs/ and templates/ (overrides config)")
}

// loadConfig reads the config file and applies command-line overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if assetsDir != "" {
		cfg.Assets.RootDir = assetsDir
	}
	if cfg.Logging.File != "" {
		if err := logger.SetFile(cfg.Logging.File); err != nil {
			logger.Warn("log file unavailable: %v", err)
		}
	}
	return cfg, nil
}

// buildEngine wires the stores, composer and engine from config. sink may be
// nil when no event consumer exists.
func buildEngine(cfg *config.Config, sink engine.EventSink) (*engine.Engine, *compose.Auditor) {
	auditor := compose.NewAuditor(cfg.Audit)
	specs := variant.NewStore(cfg.Assets.SpecsPath())
	templates := template.NewStore(cfg.Assets.TemplatesPath())
	composer := compose.NewComposer(auditor)
	return engine.New(specs, templates, composer, sink), auditor
}

// buildGenerateFunc constructs the generation collaborator from the model
// registry, falling back to the flat ai config section.
func buildGenerateFunc(cfg *config.Config) (engine.GenerateFunc, error) {
	registry, err := ai.LoadRegistry()
	if err != nil {
		registry, err = ai.SingleModelRegistry(cfg.AI)
		if err != nil {
			return nil, fmt.Errorf("no usable AI configuration: %w", err)
		}
	}
	client := ai.NewClient(registry)
	return client.Generate, nil
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
