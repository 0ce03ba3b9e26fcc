// Package remora contains a CLI-driven calculator that reads expressions and
// prints their values continuously until the user quits. Expressions are run
// through the table-driven parser in package parse.
package remora

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dekarrin/remora/internal/calc"
	"github.com/dekarrin/remora/internal/input"
	"github.com/dekarrin/remora/parse"
	"github.com/dekarrin/rosed"
	"github.com/fatih/color"
)

const (
	consoleOutputWidth = 80

	prompt = "> "
)

// REPL contains the things needed to evaluate expressions from an interactive
// shell attached to an input stream and an output stream.
type REPL struct {
	parser      *calc.Parser
	in          input.Reader
	out         *bufio.Writer
	forceDirect bool
	useReadline bool
	trace       bool
	running     bool

	errStyle   *color.Color
	traceStyle *color.Color
}

// NewREPL creates a new REPL ready to operate on the given input and output
// streams. It will immediately open a buffered reader on the input stream and a
// buffered writer on the output stream. Every expression is parsed by a single
// parser created with opts; if opts has a Trace listener it is replaced by one
// that writes trace lines to the output stream when tracing is on.
//
// If nil is given for the input stream, stdin is used. If nil is given for
// the output stream, stdout is used. Readline and colored output are only used
// when both streams are the standard ones and forceDirectInput is not set.
func NewREPL(inputStream io.Reader, outputStream io.Writer, opts parse.Options, forceDirectInput bool) (*REPL, error) {
	if inputStream == nil {
		inputStream = os.Stdin
	}
	if outputStream == nil {
		outputStream = os.Stdout
	}

	repl := &REPL{
		out:         bufio.NewWriter(outputStream),
		forceDirect: forceDirectInput,
		trace:       opts.Trace != nil,
		errStyle:    color.New(color.FgRed, color.Bold),
		traceStyle:  color.New(color.FgHiBlack),
	}

	repl.useReadline = !forceDirectInput && inputStream == os.Stdin && outputStream == os.Stdout

	opts.Trace = nil
	p, err := calc.NewParser(opts)
	if err != nil {
		return nil, fmt.Errorf("initializing parser: %w", err)
	}
	repl.parser = p
	repl.parser.RegisterTraceListener(repl.writeTrace)

	if repl.useReadline {
		repl.in, err = input.NewInteractiveReader(prompt)
		if err != nil {
			return nil, fmt.Errorf("initializing interactive-mode input reader: %w", err)
		}
	} else {
		repl.in = input.NewDirectReader(inputStream)
		repl.errStyle.DisableColor()
		repl.traceStyle.DisableColor()
	}

	return repl, nil
}

// Close closes all resources associated with the REPL, including any
// readline-related resources created for interactive mode.
func (repl *REPL) Close() error {
	if repl.running {
		return fmt.Errorf("cannot close a running REPL")
	}

	err := repl.in.Close()
	if err != nil {
		return fmt.Errorf("close expression reader: %w", err)
	}

	return nil
}

// Eval evaluates a single expression with the REPL's parser. The parser is
// reset after every failed evaluation so it can be used for the next one.
func (repl *REPL) Eval(expr string) (int64, error) {
	tokens, err := calc.Lex(expr)
	if err != nil {
		return 0, err
	}

	return repl.parser.Parse(tokens, calc.CodeOf)
}

// RunUntilQuit begins reading expressions from the input stream and writing
// their values to the output stream until QUIT is entered or input ends.
//
// Besides expressions, the following are understood (in any case):
//
//	QUIT  - end the session
//	TRACE - toggle printing of parser trace lines
//	HELP  - show this list
func (repl *REPL) RunUntilQuit() error {
	introMsg := "remora calculator\n"
	if repl.forceDirect {
		introMsg += "(direct input mode)\n"
	}
	introMsg += "=================\n"
	introMsg += "Enter an expression, or HELP for help.\n"

	if err := repl.write(introMsg); err != nil {
		return err
	}

	repl.running = true
	// so we dont have to remember to do this on every returned error condition
	defer func() {
		repl.running = false
	}()

	for repl.running {
		if !repl.useReadline {
			if err := repl.write(prompt); err != nil {
				return err
			}
		}

		line, err := repl.in.ReadExpression()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return fmt.Errorf("get user expression: %w", err)
		}

		switch strings.ToUpper(line) {
		case "QUIT":
			repl.running = false
			continue
		case "TRACE":
			repl.trace = !repl.trace
			state := "off"
			if repl.trace {
				state = "on"
			}
			if err := repl.write("Tracing is now " + state + "\n"); err != nil {
				return err
			}
			continue
		case "HELP":
			helpMsg := "Type an arithmetic expression using integers, + - * /, and parentheses to evaluate it. "
			helpMsg += "Type TRACE to toggle showing each step the parser takes, and QUIT to exit."
			helpMsg = rosed.Edit(helpMsg).Wrap(consoleOutputWidth).String()
			if err := repl.write(helpMsg + "\n"); err != nil {
				return err
			}
			continue
		}

		val, err := repl.Eval(line)
		if err != nil {
			if err := repl.write(repl.errStyle.Sprint(consoleMessage(err)) + "\n"); err != nil {
				return err
			}
			continue
		}

		if err := repl.write(fmt.Sprintf("%d\n", val)); err != nil {
			return err
		}
	}

	return repl.write("Goodbye\n")
}

func (repl *REPL) writeTrace(s string) {
	if !repl.trace {
		return
	}

	// trace output is best-effort; a failed write shows up on the next
	// regular write.
	repl.out.WriteString(repl.traceStyle.Sprint("  "+s) + "\n")
}

func (repl *REPL) write(s string) error {
	if _, err := repl.out.WriteString(s); err != nil {
		return fmt.Errorf("could not write output: %w", err)
	}
	if err := repl.out.Flush(); err != nil {
		return fmt.Errorf("could not flush output: %w", err)
	}
	return nil
}

// consoleMessage gives the message to show the user for an evaluation error.
// Errors that know their place in the expression show it with a cursor.
func consoleMessage(err error) string {
	var fullMessager interface{ FullMessage() string }
	if errors.As(err, &fullMessager) {
		return fullMessager.FullMessage()
	}

	return err.Error()
}
