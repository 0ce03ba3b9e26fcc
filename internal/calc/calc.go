// Package calc is a grammar unit for integer arithmetic expressions. It has
// the token codes, lexer, parser tables, and semantic actions needed to
// evaluate expressions with a parse.Parser.
//
// The grammar is:
//
//	root ::= expr
//	expr ::= expr PLUS expr
//	expr ::= expr MINUS expr
//	expr ::= expr TIMES expr
//	expr ::= expr DIVIDE expr
//	expr ::= LPAREN expr RPAREN
//	expr ::= NUM
//
// TIMES and DIVIDE bind tighter than PLUS and MINUS, and all four operators
// are left-associative. Arithmetic is on int64 and wraps on overflow.
package calc

import (
	"fmt"

	"github.com/dekarrin/remora/lrtab"
	"github.com/dekarrin/remora/parse"
)

// GrammarName is the name the calculator's tables are saved under.
const GrammarName = "calc"

const (
	ruleRoot = iota
	ruleAdd
	ruleSubtract
	ruleMultiply
	ruleDivide
	ruleGroup
	ruleNum
)

// Value is the semantic value of every symbol on the calculator's parse stack.
type Value struct {
	N int64

	// Tok is the token of a terminal, or the leftmost token of a non-terminal.
	Tok Token
}

// Layout returns the state-by-state form of the calculator's parser tables.
func Layout() lrtab.Layout {
	operand := func(gotoExpr lrtab.ActionSpec) lrtab.State {
		return lrtab.State{
			Shifts: map[int]lrtab.ActionSpec{
				int(LParen): lrtab.Shift(2),
				int(Num):    lrtab.ShiftReduce(ruleNum),
			},
			Gotos: map[int]lrtab.ActionSpec{symExpr: gotoExpr},
		}
	}

	return lrtab.Layout{
		Symbols:       symbolNames,
		TerminalCount: int(Num) + 1,
		Rules: []lrtab.Rule{
			ruleRoot:     {LHS: symRoot, RHSLength: 1, Text: "root ::= expr"},
			ruleAdd:      {LHS: symExpr, RHSLength: 3, Text: "expr ::= expr PLUS expr"},
			ruleSubtract: {LHS: symExpr, RHSLength: 3, Text: "expr ::= expr MINUS expr"},
			ruleMultiply: {LHS: symExpr, RHSLength: 3, Text: "expr ::= expr TIMES expr"},
			ruleDivide:   {LHS: symExpr, RHSLength: 3, Text: "expr ::= expr DIVIDE expr"},
			ruleGroup:    {LHS: symExpr, RHSLength: 3, Text: "expr ::= LPAREN expr RPAREN"},
			ruleNum:      {LHS: symExpr, RHSLength: 1, Text: "expr ::= NUM"},
		},
		States: []lrtab.State{
			// 0: start
			{
				Shifts: map[int]lrtab.ActionSpec{
					int(LParen): lrtab.Shift(2),
					int(Num):    lrtab.ShiftReduce(ruleNum),
				},
				Gotos: map[int]lrtab.ActionSpec{
					symExpr: lrtab.Shift(1),
					symRoot: lrtab.Accept,
				},
			},
			// 1: root ::= expr . and expr ::= expr . OP expr
			{
				Shifts: map[int]lrtab.ActionSpec{
					int(End):    lrtab.Reduce(ruleRoot),
					int(Plus):   lrtab.Shift(3),
					int(Minus):  lrtab.Shift(4),
					int(Times):  lrtab.Shift(5),
					int(Divide): lrtab.Shift(6),
				},
			},
			// 2: expr ::= LPAREN . expr RPAREN
			operand(lrtab.Shift(7)),
			// 3: expr ::= expr PLUS . expr
			operand(lrtab.Shift(8)),
			// 4: expr ::= expr MINUS . expr
			operand(lrtab.Shift(9)),
			// 5: expr ::= expr TIMES . expr
			operand(lrtab.ShiftReduce(ruleMultiply)),
			// 6: expr ::= expr DIVIDE . expr
			operand(lrtab.ShiftReduce(ruleDivide)),
			// 7: expr ::= LPAREN expr . RPAREN
			{
				Shifts: map[int]lrtab.ActionSpec{
					int(RParen): lrtab.ShiftReduce(ruleGroup),
					int(Plus):   lrtab.Shift(3),
					int(Minus):  lrtab.Shift(4),
					int(Times):  lrtab.Shift(5),
					int(Divide): lrtab.Shift(6),
				},
			},
			// 8: expr ::= expr PLUS expr .
			{
				Shifts: map[int]lrtab.ActionSpec{
					int(Times):  lrtab.Shift(5),
					int(Divide): lrtab.Shift(6),
				},
				Default: lrtab.Reduce(ruleAdd),
			},
			// 9: expr ::= expr MINUS expr .
			{
				Shifts: map[int]lrtab.ActionSpec{
					int(Times):  lrtab.Shift(5),
					int(Divide): lrtab.Shift(6),
				},
				Default: lrtab.Reduce(ruleSubtract),
			},
		},
	}
}

var tables = mustPack()

func mustPack() *parse.Tables {
	t, err := lrtab.Pack(Layout())
	if err != nil {
		panic(fmt.Sprintf("calc: packing tables: %v", err))
	}
	return &t
}

// Tables returns the calculator's parser tables. They are shared and must not
// be modified.
func Tables() *parse.Tables {
	return tables
}

// Grammar returns the calculator grammar.
func Grammar() parse.Grammar[Token, Code, Value, int64] {
	return parse.Grammar[Token, Code, Value, int64]{
		Tables: tables,
		Symbol: func(tok Token) Value {
			return Value{N: tok.Value, Tok: tok}
		},
		Action: action,
		Result: func(sym Value) int64 {
			return sym.N
		},
	}
}

func action(rule int, rhs []Frame) (Value, error) {
	switch rule {
	case ruleRoot, ruleNum:
		return rhs[0].Value, nil
	case ruleGroup:
		return Value{N: rhs[1].Value.N, Tok: rhs[0].Value.Tok}, nil
	case ruleAdd:
		return Value{N: rhs[0].Value.N + rhs[2].Value.N, Tok: rhs[0].Value.Tok}, nil
	case ruleSubtract:
		return Value{N: rhs[0].Value.N - rhs[2].Value.N, Tok: rhs[0].Value.Tok}, nil
	case ruleMultiply:
		return Value{N: rhs[0].Value.N * rhs[2].Value.N, Tok: rhs[0].Value.Tok}, nil
	case ruleDivide:
		if rhs[2].Value.N == 0 {
			return Value{}, &DivideByZeroError{position: positionOf(rhs[1].Value.Tok)}
		}
		return Value{N: rhs[0].Value.N / rhs[2].Value.N, Tok: rhs[0].Value.Tok}, nil
	default:
		return Value{}, fmt.Errorf("no action for rule %d", rule)
	}
}

// Frame is a frame of the calculator's parse stack.
type Frame = parse.Frame[Value]

// Parser is a parser for calculator expressions.
type Parser = parse.Parser[Token, Code, Value, int64]

// NewParser returns a new Parser for calculator expressions.
func NewParser(opts parse.Options) (*Parser, error) {
	return parse.New(Grammar(), opts)
}

// Eval lexes and evaluates the expression s.
func Eval(s string, opts parse.Options) (int64, error) {
	tokens, err := Lex(s)
	if err != nil {
		return 0, err
	}

	p, err := NewParser(opts)
	if err != nil {
		return 0, err
	}

	return p.Parse(tokens, CodeOf)
}
