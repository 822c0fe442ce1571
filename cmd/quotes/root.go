package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/jsamuelsen/quote-fetcher/internal/platform/config"
	"github.com/jsamuelsen/quote-fetcher/internal/platform/logging"
)

// rootOptions holds the persistent flags and the configuration they resolve to.
type rootOptions struct {
	configDir string
	profile   string
	logLevel  string

	cfg *config.Config
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "quotes",
		Short: "Fetch quotes for a topic from the remote quote service",
		Long: "quotes fetches a number of quotes for a topic from the remote quote service\n" +
			"and renders them as an ordered list, either once from the command line or\n" +
			"on demand over HTTP.",
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "version" {
				return nil
			}

			return opts.load()
		},
	}

	profile := os.Getenv("APP_ENVIRONMENT")
	if profile == "" {
		profile = "local"
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configDir, "config-dir", "configs", "Directory holding base.yaml and profile overrides.")
	flags.StringVar(&opts.profile, "profile", profile, "Configuration profile to load on top of base.yaml.")
	flags.StringVarP(&opts.logLevel, "log-level", "l", "", "Override the configured log level. One of: trace, debug, info, warn, error.")

	cmd.AddCommand(
		newFetchCmd(opts),
		newServeCmd(opts),
		newVersionCmd(),
	)

	return cmd
}

// load reads and validates configuration. Invalid configuration stops the
// command before anything is wired.
func (o *rootOptions) load() error {
	cfg, err := config.LoadFrom(o.configDir, o.profile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if o.logLevel != "" {
		cfg.Log.Level = o.logLevel
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	o.cfg = cfg

	return nil
}

// newLogger builds the process logger from configuration, writing to w.
func (o *rootOptions) newLogger(w io.Writer) *slog.Logger {
	logger := logging.NewWithWriter(&logging.Config{
		Level:   o.cfg.Log.Level,
		Format:  o.cfg.Log.Format,
		Service: o.cfg.App.Name,
		Version: o.cfg.App.Version,
		File: logging.FileConfig{
			Enabled:    o.cfg.Log.File.Enabled,
			Path:       o.cfg.Log.File.Path,
			MaxSizeMB:  o.cfg.Log.File.MaxSizeMB,
			MaxBackups: o.cfg.Log.File.MaxBackups,
			MaxAgeDays: o.cfg.Log.File.MaxAgeDays,
			Compress:   o.cfg.Log.File.Compress,
		},
	}, w)
	logging.SetDefault(logger)

	return logger
}
