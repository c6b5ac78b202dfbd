package main

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"secure-calculator/internal/auth"
	"secure-calculator/internal/calculator"
	"secure-calculator/internal/config"
)

var rootCmdPersistentFlags struct {
	ConfigFile string
	LogLevel   string
	LogFile    string
	Database   string
}

// cfg is loaded once per invocation in PersistentPreRunE.
var cfg *config.Config

func init() {
	rootCmd.PersistentFlags().StringVarP(&rootCmdPersistentFlags.ConfigFile, "config", "c", "", "Path to config file (default: search for config.yml in current dir and ~/.calc)")
	rootCmd.PersistentFlags().StringVar(&rootCmdPersistentFlags.LogLevel, "log-level", "", "Log level (debug, info, warn, error) - overrides config file setting")
	rootCmd.PersistentFlags().StringVar(&rootCmdPersistentFlags.LogFile, "log-file", "", "File to write logs to")
	rootCmd.PersistentFlags().StringVar(&rootCmdPersistentFlags.Database, "db", "", "Path to the SQLite store - overrides config file setting")
}

var rootCmd = &cobra.Command{
	Use:   "calc",
	Short: "calc is an arithmetic calculator with a local user store",
	Long:  `calc evaluates arithmetic and manages registered users in a local SQLite store. It can also serve both over an HTTP API.`,
	Example: `calc add 5 3
  calc divide 5 3
  calc subtract -- -5 3
  calc register alice --password 'Str0ng!Pw'
  calc --config config.yml serve`,
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		var err error
		cfg, err = config.Load(rootCmdPersistentFlags.ConfigFile)
		if err != nil {
			return err
		}
		if rootCmdPersistentFlags.Database != "" {
			cfg.Database.Path = rootCmdPersistentFlags.Database
		}
		level := cfg.LogLevel
		if rootCmdPersistentFlags.LogLevel != "" {
			level = rootCmdPersistentFlags.LogLevel
		}
		setLogLevel(level)
		logToFile(cmd.ErrOrStderr())
		return nil
	},
}

func setLogLevel(level string) {
	switch level {
	case "debug":
		log.SetLevel(log.DebugLevel)
	case "info":
		log.SetLevel(log.InfoLevel)
	case "warn":
		log.SetLevel(log.WarnLevel)
	case "error":
		log.SetLevel(log.ErrorLevel)
	default:
		log.Warnf("unknown log level %s, defaulting to info", level)
		log.SetLevel(log.InfoLevel)
	}
}

func logToFile(console io.Writer) {
	if rootCmdPersistentFlags.LogFile == "" {
		log.SetOutput(console)
		return
	}
	file, err := os.OpenFile(rootCmdPersistentFlags.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644) //nolint:gosec
	if err != nil {
		log.Errorf("failed to open log file: %v", err)
		return
	}
	log.SetOutput(io.MultiWriter(console, file))
	log.Debug("logging to both console and file", "file", rootCmdPersistentFlags.LogFile)
}

// openCalculator opens the configured store with the configured codec.
func openCalculator() (*calculator.Calculator, error) {
	codec, err := auth.CodecFor(cfg.Auth.PasswordScheme)
	if err != nil {
		return nil, err
	}
	return calculator.Open(cfg.Database.Path, calculator.WithPasswordCodec(codec))
}

func Execute() error {
	return rootCmd.ExecuteContext(context.Background())
}
