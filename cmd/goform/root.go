package main

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/reoring/goform/i18n"
	"github.com/reoring/goform/internal/config"
)

// errInvalid marks a run whose record failed validation. The report has
// already been printed, so Execute only sets the exit code.
var errInvalid = errors.New("record is invalid")

// app carries what every subcommand needs once flags and config are resolved.
type app struct {
	cfg    *config.Config
	logger zerolog.Logger
	now    func() time.Time
}

type rootFlags struct {
	config    string
	lang      string
	now       string
	logLevel  string
	logFormat string
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var (
		flags rootFlags
		a     app
	)
	rootCmd := &cobra.Command{
		Use:           "goform",
		Short:         "goform validates and submits signup form records",
		Long:          `goform loads a JSON or YAML record, validates it against the signup schema and drives it through the form controller.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, flags)
			if err != nil {
				return err
			}
			i18n.SetLanguage(cfg.Language)
			a.cfg = cfg
			a.logger = cfg.Logger(cmd.ErrOrStderr())
			a.now = cfg.Clock()
			return nil
		},
	}
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	// Persistent flags (available to all commands)
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flags.config, "config", "", "Path to a YAML config file")
	pf.StringVar(&flags.lang, "lang", "", "Message language (en, ja)")
	pf.StringVar(&flags.now, "now", "", "Fixed current time, RFC3339 or YYYY-MM-DD")
	pf.StringVar(&flags.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	pf.StringVar(&flags.logFormat, "log-format", "", "Log format (console, json)")

	rootCmd.AddCommand(newValidateCmd(&a), newSubmitCmd(&a))
	return rootCmd
}

// resolveConfig loads the config file and lets explicitly set flags win.
func resolveConfig(cmd *cobra.Command, flags rootFlags) (*config.Config, error) {
	cfg, err := config.LoadWithFallback(flags.config)
	if err != nil {
		return nil, err
	}
	pf := cmd.Flags()
	if pf.Changed("lang") {
		cfg.Language = flags.lang
	}
	if pf.Changed("now") {
		cfg.Now = flags.now
	}
	if pf.Changed("log-level") {
		cfg.Log.Level = flags.logLevel
	}
	if pf.Changed("log-format") {
		cfg.Log.Format = flags.logFormat
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid flags: %w", err)
	}
	return cfg, nil
}
