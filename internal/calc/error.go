package calc

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrDivideByZero is matched by errors.Is for every *DivideByZeroError.
	ErrDivideByZero = errors.New("division by zero")

	// ErrBadToken is matched by errors.Is for every *LexError.
	ErrBadToken = errors.New("bad token")
)

// position is the place in the source that an error occured.
type position struct {
	// line that error occured on, 1-indexed.
	line int

	// position in line of error, 1-indexed.
	pos        int
	sourceLine string
}

func positionOf(tok Token) position {
	return position{line: tok.line, pos: tok.pos, sourceLine: tok.fullLine}
}

// Line returns the line the error occured on. Lines are 1-indexed.
func (p position) Line() int {
	return p.line
}

// Position returns the character position that the error occured on.
// Character positions are 1-indexed.
func (p position) Position() int {
	return p.pos
}

// SourceLineWithCursor returns the source offending code on one line and
// directly under it a cursor showing where the error occured.
func (p position) SourceLineWithCursor() string {
	if p.sourceLine == "" {
		return ""
	}

	return p.sourceLine + "\n" + strings.Repeat(" ", p.pos-1) + "^"
}

func (p position) fullMessage(msg string) string {
	if cursor := p.SourceLineWithCursor(); cursor != "" {
		return cursor + "\n" + msg
	}
	return msg
}

// LexError is returned by Lex when the input contains text that is not a
// token.
type LexError struct {
	position
	message string
}

func (le *LexError) Error() string {
	return fmt.Sprintf("around line %d, char %d: %s", le.line, le.pos, le.message)
}

// Is returns whether target is ErrBadToken.
func (le *LexError) Is(target error) bool {
	return target == ErrBadToken
}

// FullMessage shows the complete message of the error string along with the
// offending line and a cursor to the problem position.
func (le *LexError) FullMessage() string {
	return le.fullMessage(le.Error())
}

// DivideByZeroError is returned when an expression divides by zero.
type DivideByZeroError struct {
	position
}

func (dze *DivideByZeroError) Error() string {
	return fmt.Sprintf("around line %d, char %d: division by zero", dze.line, dze.pos)
}

// Is returns whether target is ErrDivideByZero.
func (dze *DivideByZeroError) Is(target error) bool {
	return target == ErrDivideByZero
}

// FullMessage shows the complete message of the error string along with the
// offending line and a cursor to the division operator.
func (dze *DivideByZeroError) FullMessage() string {
	return dze.fullMessage(dze.Error())
}
