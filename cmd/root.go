package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/s0up4200/mediabot/config"
	"github.com/s0up4200/mediabot/couchpotato"
)

var (
	cfgFile   string
	logLevel  string
	cfg       *config.Config
	logger    zerolog.Logger
	catalog   *couchpotato.Client
	formatter *couchpotato.SlackFormatter
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "mediabot",
	Short: "Relay Slack slash commands to CouchPotato",
	Long: `mediabot receives Slack slash commands, runs them against a CouchPotato
instance and posts the results back to Slack through an incoming webhook.

The same CouchPotato operations are available directly from the command line.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override the configured log level (debug, info, warn, error)")
}

// initializeApp loads the configuration and creates the CouchPotato client
func initializeApp(cmd *cobra.Command, args []string) error {
	// Load configuration
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Override log level from command line if specified
	if cmd.Flags().Changed("log-level") {
		cfg.Logging.Level = logLevel
	}

	// Setup logger
	logger = setupLogger(cfg.Logging)

	if !cfg.CouchPotato.HasSettings() {
		logger.Warn().Msg("couchpotato.host or couchpotato.apiKey not set, catalog commands will fail")
	}

	catalog = couchpotato.NewClient(
		cfg.CouchPotato.Host,
		cfg.CouchPotato.APIKey,
		logger,
		couchpotato.WithTimeout(cfg.CouchPotato.Timeout),
	)
	formatter = couchpotato.NewSlackFormatter()

	return nil
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	// Set log level
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	// Configure output format
	if cfg.Format == "json" {
		return zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	// Console format, colored only on a terminal
	tty := isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !cfg.Color || !tty,
	}

	return zerolog.New(output).With().Timestamp().Logger()
}
