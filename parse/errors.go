package parse

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dekarrin/remora/internal/util"
)

var (
	// ErrSyntax is matched by errors.Is for every *SyntaxError.
	ErrSyntax = errors.New("syntax error")

	// ErrUnexpectedEnd is returned by EndParsing when the input ends before a
	// complete parse.
	ErrUnexpectedEnd = errors.New("unexpected end of input")

	// ErrStackOverflow is matched by errors.Is for every *StackOverflowError.
	ErrStackOverflow = errors.New("parser stack overflow")
)

// Positioned is implemented by tokens that know where in the source text they
// came from. A SyntaxError on a Positioned token includes its position.
type Positioned interface {
	// Line returns the 1-indexed line the token is on.
	Line() int

	// LinePos returns the 1-indexed character position of the token within
	// its line.
	LinePos() int

	// FullLine returns the complete text of the line the token is on.
	FullLine() string
}

// SyntaxError is returned by Consume when the token given has no legal action
// in the current state.
type SyntaxError struct {
	// Token is the token that was given to Consume.
	Token any

	// Code is the symbol code of Token.
	Code int

	// Symbol is the name of the symbol of Token.
	Symbol string

	// State is the state the parser was in when it received Token.
	State int

	// Expected is the names of the terminals that would have been accepted in
	// State.
	Expected []string

	// line that error occured on, 1-indexed. 0 if the token does not carry a
	// position.
	line       int
	pos        int
	sourceLine string
}

func (se *SyntaxError) Error() string {
	msg := fmt.Sprintf("unexpected %s", se.Symbol)
	if len(se.Expected) > 0 {
		msg += "; expected " + util.MakeTextList(se.Expected, "or")
	}

	if se.line == 0 {
		return fmt.Sprintf("syntax error: %s", msg)
	}
	return fmt.Sprintf("syntax error: around line %d, char %d: %s", se.line, se.pos, msg)
}

// Is returns whether target is ErrSyntax.
func (se *SyntaxError) Is(target error) bool {
	return target == ErrSyntax
}

// Line returns the line the error occured on. Lines are 1-indexed. This will
// return 0 if the token did not carry a position.
func (se *SyntaxError) Line() int {
	return se.line
}

// Position returns the character position that the error occured on.
// Character positions are 1-indexed. This will return 0 if the token did not
// carry a position.
func (se *SyntaxError) Position() int {
	return se.pos
}

// FullMessage shows the complete message of the error string along with the
// offending line and a cursor to the problem position in a formatted way.
func (se *SyntaxError) FullMessage() string {
	errMsg := se.Error()

	if se.line != 0 && se.sourceLine != "" {
		errMsg = se.SourceLineWithCursor() + "\n" + errMsg
	}

	return errMsg
}

// SourceLineWithCursor returns the offending source line and directly under
// it a cursor showing where the error occured.
//
// Returns a blank string if the token did not carry its source line.
func (se *SyntaxError) SourceLineWithCursor() string {
	if se.sourceLine == "" || se.pos < 1 {
		return ""
	}

	cursorLine := strings.Repeat(" ", se.pos-1) + "^"

	return se.sourceLine + "\n" + cursorLine
}

// StackOverflowError is returned when a push would make the parse stack deeper
// than the configured limit.
type StackOverflowError struct {
	Limit int
}

func (soe *StackOverflowError) Error() string {
	return fmt.Sprintf("parser stack overflow: depth limit of %d reached", soe.Limit)
}

// Is returns whether target is ErrStackOverflow.
func (soe *StackOverflowError) Is(target error) bool {
	return target == ErrStackOverflow
}

func (t *Tables) syntaxErrorAt(tok any, code, state int) *SyntaxError {
	se := &SyntaxError{
		Token:  tok,
		Code:   code,
		Symbol: t.SymbolName(code),
		State:  state,
	}

	for _, term := range t.expectedTerminals(state) {
		se.Expected = append(se.Expected, t.SymbolName(term))
	}

	if p, ok := tok.(Positioned); ok {
		se.line = p.Line()
		se.pos = p.LinePos()
		se.sourceLine = p.FullLine()
	}

	return se
}
