// Package parse is a table-driven LALR(1) shift-reduce parsing engine. It is
// given compact tables produced by a grammar generator, along with the
// semantic actions of the grammar, and drives an explicit parse stack through
// shift, reduce, accept, and error transitions as tokens are fed to it.
//
// The engine does no lexing; callers classify tokens themselves and pass each
// one to Consume along with its code, then call EndParsing at the end of
// input.
package parse

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Options are the tunable settings of a Parser.
type Options struct {
	// MaxStackDepth is the maximum number of frames the parse stack may hold,
	// including the initial frame. 0 means unbounded.
	MaxStackDepth int `toml:"max_stack_depth" yaml:"max_stack_depth"`

	// Trace, if set, receives a human-readable line for every step the
	// parser takes.
	Trace func(s string) `toml:"-" yaml:"-"`
}

// Parser parses a stream of tokens using the tables of a single grammar. A
// Parser is not safe for concurrent use, but any number of Parsers may share
// the same Grammar.
type Parser[T any, C TokenCode, S any, R any] struct {
	g        Grammar[T, C, S, R]
	tables   *Tables
	stack    stack[S]
	maxDepth int
	trace    func(s string)
	id       uuid.UUID
}

// New creates a new Parser for the given grammar, ready to receive its first
// token. The grammar's tables are validated first; if they are invalid, the
// returned error wraps ErrInvalidTables.
func New[T any, C TokenCode, S any, R any](g Grammar[T, C, S, R], opts Options) (*Parser[T, C, S, R], error) {
	if g.Tables == nil {
		return nil, errors.New("grammar has no tables")
	}
	if g.Symbol == nil || g.Action == nil || g.Result == nil {
		return nil, errors.New("grammar must give Symbol, Action, and Result functions")
	}
	if opts.MaxStackDepth < 0 {
		return nil, fmt.Errorf("max stack depth must be non-negative; got %d", opts.MaxStackDepth)
	}
	if err := g.Tables.Validate(); err != nil {
		return nil, err
	}

	p := &Parser[T, C, S, R]{
		g:        g,
		tables:   g.Tables,
		maxDepth: opts.MaxStackDepth,
		trace:    opts.Trace,
		id:       uuid.New(),
	}
	p.stack.push(Frame[S]{})

	return p, nil
}

// ID returns the unique ID of this Parser instance.
func (p *Parser[T, C, S, R]) ID() uuid.UUID {
	return p.id
}

// RegisterTraceListener sets the function that receives trace lines. Passing
// nil turns tracing off.
func (p *Parser[T, C, S, R]) RegisterTraceListener(listener func(s string)) {
	p.trace = listener
}

// SetMaxStackDepth sets the maximum number of frames the parse stack may hold.
// 0 means unbounded. Lowering the limit below the current depth does not
// remove any frames; the next shift will fail instead.
func (p *Parser[T, C, S, R]) SetMaxStackDepth(n int) {
	if n < 0 {
		n = 0
	}
	p.maxDepth = n
}

// Depth returns the number of frames on the parse stack, including the initial
// frame.
func (p *Parser[T, C, S, R]) Depth() int {
	return p.stack.len()
}

// Frames returns a copy of the parse stack, bottom first.
func (p *Parser[T, C, S, R]) Frames() []Frame[S] {
	return p.stack.copy()
}

// Consume feeds the next token to the parser. Any reduces that the token makes
// possible are performed, and then the token is shifted.
//
// If tok has no legal action, a *SyntaxError is returned. If shifting it would
// exceed the maximum stack depth, a *StackOverflowError is returned. An error
// from a semantic action is returned unchanged. After an error, the parser
// must be Reset before it is used again.
func (p *Parser[T, C, S, R]) Consume(tok T, code C) error {
	la := int(code)
	p.notifyInput(la)

	for {
		act := p.tables.FindShiftAction(p.stack.peek(0).State, la, p.notifySubstitution)

		switch {
		case act <= p.tables.MaxShiftReduce:
			return p.shift(act, la, tok)
		case act >= p.tables.MinReduce && act <= p.tables.MaxReduce:
			_, accepted, err := p.reduce(act - p.tables.MinReduce)
			if err != nil {
				return err
			}
			if accepted {
				panic("parse: grammar accepted before end of input")
			}
		case act == p.tables.ErrorAction:
			p.notifyTrace("Syntax error on %s", p.tables.SymbolName(la))
			return p.tables.syntaxErrorAt(tok, la, p.stack.peek(0).State)
		default:
			panic(fmt.Sprintf("parse: unexpected action code %d for %s", act, p.tables.SymbolName(la)))
		}
	}
}

// EndParsing signals the end of input. Any remaining reduces are performed
// and the result of the parse is returned.
//
// If the input ended before a complete parse, ErrUnexpectedEnd is returned. An
// error from a semantic action is returned unchanged.
func (p *Parser[T, C, S, R]) EndParsing() (R, error) {
	var zero R

	p.notifyInput(0)

	for p.stack.len() > 0 {
		act := p.tables.FindShiftAction(p.stack.peek(0).State, 0, p.notifySubstitution)

		switch {
		case act <= p.tables.MaxShiftReduce:
			panic(fmt.Sprintf("parse: shift action %d on end of input", act))
		case act >= p.tables.MinReduce && act <= p.tables.MaxReduce:
			result, accepted, err := p.reduce(act - p.tables.MinReduce)
			if err != nil {
				return zero, err
			}
			if accepted {
				return p.g.Result(result), nil
			}
		case act == p.tables.ErrorAction:
			p.notifyTrace("Unexpected end of input")
			return zero, ErrUnexpectedEnd
		default:
			panic(fmt.Sprintf("parse: unexpected action code %d on end of input", act))
		}
	}

	panic("parse: stack emptied without accepting")
}

// Reset discards everything on the parse stack but the initial frame, so that
// the Parser can be given a new input.
func (p *Parser[T, C, S, R]) Reset() {
	p.notifyTrace("Reset")
	if p.stack.len() == 0 {
		p.stack.push(Frame[S]{})
	} else {
		p.stack.pop(p.stack.len() - 1)
	}
	p.notifyStack()
}

// Parse consumes every token in tokens and then ends parsing. The code of each
// token is given by codeOf. If any error occurs, the parser is Reset before it
// is returned.
func (p *Parser[T, C, S, R]) Parse(tokens []T, codeOf func(T) C) (R, error) {
	var zero R

	for i := range tokens {
		if err := p.Consume(tokens[i], codeOf(tokens[i])); err != nil {
			p.Reset()
			return zero, err
		}
	}

	result, err := p.EndParsing()
	if err != nil {
		p.Reset()
		return zero, err
	}
	return result, nil
}

// shift pushes tok as a frame for the terminal code. A shift-reduce action is
// moved into the reduce range so that the next lookup on the new frame
// reduces.
func (p *Parser[T, C, S, R]) shift(act, code int, tok T) error {
	if p.maxDepth > 0 && p.stack.len() >= p.maxDepth {
		p.notifyTrace("Stack overflow")
		return &StackOverflowError{Limit: p.maxDepth}
	}

	p.notifyShift(code, act)

	p.stack.push(Frame[S]{
		State: p.translate(act),
		Code:  code,
		Value: p.g.Symbol(tok),
	})
	p.notifyStack()

	return nil
}

// reduce applies the given rule. If the reduce produces the start symbol and
// the grammar accepts, the value produced is returned with accepted set to
// true.
func (p *Parser[T, C, S, R]) reduce(rule int) (result S, accepted bool, err error) {
	if rule < 0 || rule >= len(p.tables.Rules) {
		panic(fmt.Sprintf("parse: reduce by undefined rule %d", rule))
	}
	info := p.tables.Rules[rule]

	if info.RHSLength >= p.stack.len() {
		panic(fmt.Sprintf("parse: stack underflow reducing [%s]: need %d frames above initial, have %d", p.tables.RuleString(rule), info.RHSLength, p.stack.len()-1))
	}

	produced, err := p.g.Action(rule, p.stack.top(info.RHSLength))
	if err != nil {
		return result, false, err
	}

	returnState := p.stack.peek(info.RHSLength).State
	act := p.tables.FindReduceAction(returnState, info.LHS)
	if act == p.tables.ErrorAction {
		panic(fmt.Sprintf("parse: goto from state %d on %s is an error", returnState, p.tables.SymbolName(info.LHS)))
	}

	p.notifyReduce(rule, act)
	p.stack.pop(info.RHSLength)

	if act == p.tables.AcceptAction {
		p.notifyStack()
		return produced, true, nil
	}

	if act > p.tables.MaxShiftReduce {
		panic(fmt.Sprintf("parse: goto from state %d on %s is not a state: %d", returnState, p.tables.SymbolName(info.LHS), act))
	}

	p.stack.push(Frame[S]{
		State: p.translate(act),
		Code:  info.LHS,
		Value: produced,
	})
	p.notifyStack()

	return result, false, nil
}

// translate converts a shift or shift-reduce action into the state stored in a
// frame.
func (p *Parser[T, C, S, R]) translate(act int) int {
	if act > p.tables.MaxShift {
		return act + p.tables.MinReduce - p.tables.MinShiftReduce
	}
	return act
}
