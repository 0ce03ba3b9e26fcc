/*
Remora evaluates arithmetic expressions with a table-driven LALR(1) parser and
works with the parse tables themselves.

Usage:

	remora [flags] COMMAND [args]

The commands are:

	calc
		Evaluate expressions. With -e/--expr, a single expression is evaluated
		and its value printed. Otherwise an interactive session is started that
		reads expressions until QUIT is entered or input ends.

	tables dump [FILE]
		Print the parse tables of the calculator grammar, or of the table file
		FILE if given.

	tables export FILE
		Write the parse tables of the calculator grammar to FILE. The format is
		chosen by extension: .toml, .yaml/.yml, or .lrt for binary.

	tables convert IN OUT
		Convert the table file IN to the format of OUT.

	serve
		Start an HTTP server that evaluates expressions and keeps a history of
		them.

	version
		Give the current version of remora and then exit.

Flags common to calc and serve:

	-c, --config FILE
		Read settings from the given TOML or YAML file. Flags given on the
		command line take precedence over settings in the file.

	--max-depth N
		Limit the parse stack to N frames. 0 means no limit.

The serve command also takes:

	-l, --listen LISTEN_ADDRESS
		Listen on the given address. Must be in BIND_ADDRESS:PORT or :PORT
		format. If not given, will default to the value of environment variable
		REMORA_LISTEN_ADDRESS, and if that is not given, will default to
		localhost:8080.

	--db DRIVER[:PARAMS]
		Use the given DB connection string. DRIVER must be one of the following:
		inmem, sqlite. inmem has no further params. sqlite needs the path to the
		data directory such as sqlite:path/to/db_dir. If not given, will default
		to the value of environment variable REMORA_DATABASE, and if that is not
		given, an in-memory database is used.
*/
package main

import (
	"fmt"
	"os"
)

const (

	// ExitSuccess indicates a successful program execution.
	ExitSuccess = iota

	// ExitEvalError indicates an unsuccessful program execution due to an
	// expression that could not be evaluated.
	ExitEvalError

	// ExitInitError indicates an unsuccessful program execution due to an issue
	// with the arguments, settings, or startup.
	ExitInitError
)

var returnCode = ExitSuccess

func main() {
	defer func() {
		if panicErr := recover(); panicErr != nil {
			// we are panicking, make sure we dont lose the panic just because
			// we checked
			panic(panicErr)
		} else {
			os.Exit(returnCode)
		}
	}()

	if err := rootCmd.Execute(); err != nil {
		if returnCode == ExitSuccess {
			returnCode = ExitInitError
		}
		return
	}
}

func errorf(format string, a ...interface{}) {
	fmt.Fprintf(os.Stderr, "ERROR: "+format+"\n", a...)
}
