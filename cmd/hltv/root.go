package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"hltv-parser/internal/client"
	"hltv-parser/internal/config"
	"hltv-parser/internal/fetcher"
	"hltv-parser/internal/observability"
)

const defaultConfigPath = "configs/config.yaml"

type options struct {
	configPath string
	output     string
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "hltv",
		Short:         "hltv reads HLTV match, team and list pages into structured records.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			switch opts.output {
			case "table", "yaml":
				return nil
			}
			return fmt.Errorf("--output must be 'table' or 'yaml', got %q", opts.output)
		},
	}
	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", defaultConfigPath, "path to the YAML config")
	root.PersistentFlags().StringVarP(&opts.output, "output", "o", "table", "output format: table or yaml")

	root.AddCommand(
		newMatchCmd(opts),
		newTeamCmd(opts),
		newUpcomingCmd(opts),
		newResultsCmd(opts),
		newConvertCmd(opts),
		newSyncCmd(opts),
	)
	return root
}

// loadConfig falls back to defaults when the default config file is absent.
// A missing file named with --config is an error.
func (o *options) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.LoadConfig(o.configPath)
	if err == nil {
		return cfg, nil
	}
	if !cmd.Flags().Changed("config") && errors.Is(err, fs.ErrNotExist) {
		return config.LoadDefaults()
	}
	return nil, err
}

func newLogger(cfg *config.Config) (*observability.Logger, error) {
	return observability.NewLogger(observability.Options{
		LogPath:    cfg.Observability.LogPath,
		LogLevel:   cfg.Observability.LogLevel,
		Console:    cfg.Observability.Console,
		MaxSizeMB:  cfg.Observability.MaxSizeMB,
		MaxBackups: cfg.Observability.MaxBackups,
		MaxAgeDays: cfg.Observability.MaxAgeDays,
	})
}

// session holds what the network commands share.
type session struct {
	cfg    *config.Config
	logger *observability.Logger
	source fetcher.Source
	client *client.Client
}

func (o *options) openSession(cmd *cobra.Command) (*session, error) {
	cfg, err := o.loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return nil, err
	}
	source := fetcher.New(cfg, logger)
	return &session{
		cfg:    cfg,
		logger: logger,
		source: source,
		client: client.New(source, cfg.BaseURL, logger),
	}, nil
}

func (s *session) Close() {
	if b, ok := s.source.(*fetcher.BrowserSource); ok {
		if err := b.Close(); err != nil {
			s.logger.Warn("browser close failed", "error", err)
		}
	}
	if err := s.logger.Close(); err != nil {
		fmt.Fprintln(os.Stderr, "log close:", err)
	}
}
