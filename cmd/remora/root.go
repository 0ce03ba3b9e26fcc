package main

import (
	"fmt"

	"github.com/dekarrin/remora/internal/config"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

var (
	cfgFile  string
	maxDepth int
	debug    bool

	logger *zap.Logger
	fs     = afero.NewOsFs()
)

var rootCmd = &cobra.Command{
	Use:           "remora",
	Short:         "remora - evaluate expressions with a table-driven LALR(1) parser",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if debug {
			logger, err = zap.NewDevelopment()
		} else {
			logger, err = zap.NewProduction()
		}
		if err != nil {
			errorf("could not create logger: %s", err)
			return err
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Log at debug level in a human-readable format")

	rootCmd.AddCommand(calcCmd)
	rootCmd.AddCommand(tablesCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads the settings file given with --config, if any, and applies
// the --max-depth flag over it if that flag was given.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg := config.Default()

	if cfgFile != "" {
		var err error
		cfg, err = config.Load(fs, cfgFile)
		if err != nil {
			return cfg, err
		}
		logger.Debug("loaded settings", zap.String("file", cfgFile))
	}

	if flagChanged(cmd.Flags(), "max-depth") {
		cfg.Parser.MaxStackDepth = maxDepth
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("settings: %w", err)
	}

	return cfg, nil
}

// flagChanged returns whether the named flag exists in flags and was set on
// the command line.
func flagChanged(flags *pflag.FlagSet, name string) bool {
	f := flags.Lookup(name)
	return f != nil && f.Changed
}
