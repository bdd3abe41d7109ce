package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/harrison/fseq/internal/config"
	"github.com/harrison/fseq/internal/journal"
	"github.com/harrison/fseq/internal/logger"
	"github.com/harrison/fseq/internal/runner"
)

// loadConfig resolves the fseq home, loads the config file and applies the
// persistent flags on top of it.
func loadConfig(cmd *cobra.Command) (*config.Config, string, error) {
	home, err := config.GetFseqHome()
	if err != nil {
		return nil, "", err
	}

	configPath, _ := cmd.Flags().GetString("config")
	var cfg *config.Config
	if configPath != "" {
		cfg, err = config.LoadConfig(configPath)
		if err != nil {
			return nil, "", fmt.Errorf("failed to load config from %s: %w", configPath, err)
		}
	} else {
		cfg, err = config.LoadConfigFromHome(home)
		if err != nil {
			return nil, "", fmt.Errorf("failed to load config: %w", err)
		}
	}

	var tagPtr, logLevelPtr, logDirPtr *string
	var dryRunPtr, verbosePtr *bool
	if cmd.Flags().Changed("tag") {
		tag, _ := cmd.Flags().GetString("tag")
		tagPtr = &tag
	}
	if cmd.Flags().Changed("log-level") {
		level, _ := cmd.Flags().GetString("log-level")
		logLevelPtr = &level
	}
	if cmd.Flags().Changed("log-dir") {
		dir, _ := cmd.Flags().GetString("log-dir")
		logDirPtr = &dir
	}
	if cmd.Flags().Changed("noop") {
		noop, _ := cmd.Flags().GetBool("noop")
		dryRunPtr = &noop
	}
	if cmd.Flags().Changed("verbose") {
		verbose, _ := cmd.Flags().GetBool("verbose")
		verbosePtr = &verbose
	}

	cfg.MergeWithFlags(tagPtr, logLevelPtr, logDirPtr, dryRunPtr, verbosePtr)

	if err := cfg.Validate(); err != nil {
		return nil, "", fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, home, nil
}

// session is everything one invocation opens and must close again.
type session struct {
	runner  *runner.Runner
	closers []func() error
}

func (s *session) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
}

// openSession builds the runner for an invocation: console (and optionally
// file) logging, the run journal and directory locks, as configured.
func openSession(cmd *cobra.Command, cfg *config.Config, home string) (*session, error) {
	s := &session{}

	console := logger.NewConsoleLogger(cmd.OutOrStdout(), cfg.LogLevel)
	var log logger.Logger = console
	if cfg.LogDir != "" {
		fileLog, err := logger.NewFileLogger(cfg.LogDir, cfg.LogLevel)
		if err != nil {
			return nil, fmt.Errorf("failed to open run log: %w", err)
		}
		s.closers = append(s.closers, fileLog.Close)
		log = logger.NewMultiLogger(console, fileLog)
		console.LogDebug(fmt.Sprintf("writing run log to %s", fileLog.Path()))
	}

	opts := []runner.Option{runner.WithLogger(log)}

	if cfg.Journal.Enabled {
		store, err := journal.NewStore(cfg.JournalPath(home))
		if err != nil {
			// The journal is a record, not a precondition for renaming
			log.LogWarn(fmt.Sprintf("journal disabled: %v", err))
		} else {
			s.closers = append(s.closers, store.Close)
			opts = append(opts, runner.WithJournal(store))
		}
	}

	if cfg.LockDirs {
		locksDir, err := config.GetLocksDir(home)
		if err != nil {
			s.Close()
			return nil, err
		}
		opts = append(opts, runner.WithLocksDir(locksDir))
	}

	s.runner = runner.New(cfg, opts...)
	return s, nil
}

// signalContext cancels on Ctrl-C or SIGTERM. The executor finishes the
// rename in progress and stops before the next one.
func signalContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}
