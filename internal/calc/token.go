package calc

import "fmt"

// Code is the code of a calculator terminal. Each Code is also the symbol code
// of the terminal in the calculator's parser tables.
type Code int

const (
	End Code = iota
	Plus
	Minus
	Times
	Divide
	LParen
	RParen
	Num
)

// symbol codes of the non-terminals, which follow the terminals.
const (
	symExpr = int(Num) + 1 + iota
	symRoot
)

var symbolNames = []string{"$", "PLUS", "MINUS", "TIMES", "DIVIDE", "LPAREN", "RPAREN", "NUM", "expr", "root"}

func (c Code) String() string {
	if c >= 0 && int(c) < len(symbolNames) {
		return symbolNames[c]
	}
	return fmt.Sprintf("Code(%d)", int(c))
}

// Token is a lexed token of a calculator expression.
type Token struct {
	Code   Code
	Lexeme string

	// Value is the value of a Num token. It is 0 for all other tokens.
	Value int64

	line     int
	pos      int
	fullLine string
}

// Line returns the 1-indexed line the token is on.
func (tok Token) Line() int {
	return tok.line
}

// LinePos returns the 1-indexed position of the token's first character within
// its line.
func (tok Token) LinePos() int {
	return tok.pos
}

// FullLine returns the text of the line the token is on.
func (tok Token) FullLine() string {
	return tok.fullLine
}

func (tok Token) String() string {
	return fmt.Sprintf("(%d:%d %s %q)", tok.line, tok.pos, tok.Code, tok.Lexeme)
}

// CodeOf returns the code of tok.
func CodeOf(tok Token) Code {
	return tok.Code
}
