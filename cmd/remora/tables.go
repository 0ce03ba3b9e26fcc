package main

import (
	"fmt"
	"os"

	"github.com/dekarrin/remora/internal/calc"
	"github.com/dekarrin/remora/lrtab"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var tablesCmd = &cobra.Command{
	Use:   "tables",
	Short: "Inspect, export, and convert parse tables",
}

var tablesDumpCmd = &cobra.Command{
	Use:   "dump [FILE]",
	Short: "Print parse tables as text",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tables := calc.Tables()

		if len(args) == 1 {
			f, err := lrtab.LoadFile(fs, args[0])
			if err != nil {
				return initFailed("could not load tables", err, zap.String("file", args[0]))
			}
			fmt.Printf("grammar: %s (format %s)\n", f.Grammar, f.Format)
			tables = &f.Tables
		}

		if err := lrtab.Dump(os.Stdout, tables); err != nil {
			return initFailed("could not dump tables", err)
		}
		return nil
	},
}

var tablesExportCmd = &cobra.Command{
	Use:   "export FILE",
	Short: "Write the calculator's parse tables to a file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f := lrtab.New(calc.GrammarName, *calc.Tables())

		if err := lrtab.SaveFile(fs, args[0], f); err != nil {
			return initFailed("could not export tables", err, zap.String("file", args[0]))
		}

		logger.Info("exported tables", zap.String("file", args[0]), zap.String("format", f.Format))
		return nil
	},
}

var tablesConvertCmd = &cobra.Command{
	Use:   "convert IN OUT",
	Short: "Convert a table file to another format",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := lrtab.Convert(fs, args[0], args[1]); err != nil {
			return initFailed("could not convert tables", err, zap.String("in", args[0]), zap.String("out", args[1]))
		}

		logger.Info("converted tables", zap.String("in", args[0]), zap.String("out", args[1]))
		return nil
	},
}

func init() {
	tablesCmd.AddCommand(tablesDumpCmd)
	tablesCmd.AddCommand(tablesExportCmd)
	tablesCmd.AddCommand(tablesConvertCmd)
}

// initFailed logs err with msg and marks the run as failed. It returns err so
// it can be returned from a RunE.
func initFailed(msg string, err error, fields ...zap.Field) error {
	logger.Error(msg, append(fields, zap.Error(err))...)
	returnCode = ExitInitError
	return err
}
