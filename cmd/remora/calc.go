package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/dekarrin/remora"
	"github.com/dekarrin/remora/internal/calc"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	calcExpr    string
	calcTrace   bool
	forceDirect bool
)

var calcCmd = &cobra.Command{
	Use:   "calc",
	Short: "Evaluate expressions once or in an interactive session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			errorf("%s", err)
			returnCode = ExitInitError
			return err
		}

		opts := cfg.Parser
		if calcTrace {
			opts.Trace = func(s string) {
				fmt.Fprintf(os.Stderr, "  %s\n", s)
			}
		}

		if flagChanged(cmd.Flags(), "expr") {
			val, err := calc.Eval(calcExpr, opts)
			if err != nil {
				color.New(color.FgRed, color.Bold).Fprintln(os.Stderr, fullMessage(err))
				logger.Debug("evaluation failed", zap.String("expression", calcExpr), zap.Error(err))
				returnCode = ExitEvalError
				return err
			}
			fmt.Printf("%d\n", val)
			return nil
		}

		repl, err := remora.NewREPL(os.Stdin, os.Stdout, opts, forceDirect)
		if err != nil {
			logger.Error("could not start session", zap.Error(err))
			returnCode = ExitInitError
			return err
		}
		defer repl.Close()

		if err := repl.RunUntilQuit(); err != nil {
			logger.Error("session ended with error", zap.Error(err))
			returnCode = ExitInitError
			return err
		}
		return nil
	},
}

func init() {
	calcCmd.Flags().StringVarP(&calcExpr, "expr", "e", "", "Evaluate the given expression, print its value, and exit")
	calcCmd.Flags().BoolVar(&calcTrace, "trace", false, "Print each step the parser takes")
	calcCmd.Flags().IntVar(&maxDepth, "max-depth", 0, "Limit the parse stack to the given number of frames (0 for no limit)")
	calcCmd.Flags().StringVarP(&cfgFile, "config", "c", "", "Read settings from the given TOML or YAML file")
	calcCmd.Flags().BoolVarP(&forceDirect, "direct", "d", false, "Force reading directly from stdin instead of going through GNU readline where possible")
}

func fullMessage(err error) string {
	var fm interface{ FullMessage() string }
	if errors.As(err, &fm) {
		return fm.FullMessage()
	}
	return err.Error()
}
