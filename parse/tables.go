package parse

import (
	"errors"
	"fmt"

	"github.com/dekarrin/rosed"
)

// ErrInvalidTables is the error that Tables.Validate wraps when the tables
// break one of their structural invariants.
var ErrInvalidTables = errors.New("invalid parser tables")

// RuleInfo gives the parts of a grammar rule that are needed at parse time.
type RuleInfo struct {
	// LHS is the symbol code of the non-terminal that the rule produces.
	LHS int

	// RHSLength is the number of symbols on the right-hand side of the rule.
	RHSLength int
}

// Tables are the compacted LALR(1) tables that drive a Parser. They are
// produced once by a generator, are never modified after being built, and may
// be shared by any number of Parsers at the same time.
//
// Action codes are a single integer space split into ranges:
//
//	[0, MaxShift]                      shift to the given state
//	[MinShiftReduce, MaxShiftReduce]   shift, then reduce by rule (code - MinShiftReduce)
//	ErrorAction                        syntax error
//	AcceptAction                       parse complete
//	NoAction                           unused slot
//	[MinReduce, MaxReduce]             reduce by rule (code - MinReduce)
//
// The Action and Lookahead slices are indexed together. The actions for a
// state are found by adding a symbol code to that state's offset; the slot is
// only a hit if Lookahead holds the same symbol code.
type Tables struct {
	// InvalidSymbol is the code that marks an unused Lookahead slot. No real
	// symbol has this code.
	InvalidSymbol int

	// NumStates is the number of states in the automaton.
	NumStates int

	// TerminalCount is the number of terminal symbols, including the
	// end-of-input symbol which always has code 0. Terminals have codes
	// [0, TerminalCount) and non-terminals have codes from TerminalCount up.
	TerminalCount int

	MaxShift       int
	MinShiftReduce int
	MaxShiftReduce int
	ErrorAction    int
	AcceptAction   int
	NoAction       int
	MinReduce      int
	MaxReduce      int

	Action    []int
	Lookahead []int

	// ShiftOffset holds, for each state, the offset into Action at which
	// terminal lookups for that state start. A state whose offset is
	// ShiftUseDefault (or that has no entry) always takes its default action.
	ShiftOffset     []int
	ShiftUseDefault int
	ShiftOffsetMin  int
	ShiftOffsetMax  int

	// ReduceOffset holds, for each state, the offset into Action at which goto
	// lookups on non-terminals start.
	ReduceOffset     []int
	ReduceUseDefault int
	ReduceOffsetMin  int
	ReduceOffsetMax  int

	// Default is the action taken in each state when lookup of the lookahead
	// misses.
	Default []int

	// Fallback maps a terminal code to a more general terminal code to retry a
	// failed lookup with. 0 means no fallback. A fallback's own entry must be
	// 0.
	Fallback []int

	// Wildcard is the terminal that any non-end-of-input lookahead may match
	// as a last resort. It is only used if HasWildcard is true.
	Wildcard    int
	HasWildcard bool

	Rules []RuleInfo

	// SymbolNames and RuleText are used only for diagnostics.
	SymbolNames []string
	RuleText    []string
}

// SymbolCount returns the number of symbols, terminal and non-terminal, that
// the tables know about.
func (t *Tables) SymbolCount() int {
	if len(t.SymbolNames) > 0 {
		return len(t.SymbolNames)
	}

	// without names, the best we can do is the highest code that is used
	// anywhere.
	count := t.TerminalCount
	for i := range t.Rules {
		if t.Rules[i].LHS+1 > count {
			count = t.Rules[i].LHS + 1
		}
	}
	return count
}

// SymbolName returns the diagnostic name of the symbol with the given code.
func (t *Tables) SymbolName(code int) string {
	if code >= 0 && code < len(t.SymbolNames) {
		return t.SymbolNames[code]
	}
	return fmt.Sprintf("#%d", code)
}

// RuleString returns the diagnostic text of the given rule.
func (t *Tables) RuleString(rule int) string {
	if rule >= 0 && rule < len(t.RuleText) {
		return t.RuleText[rule]
	}
	return fmt.Sprintf("rule %d", rule)
}

// Validate checks that the tables are internally consistent. It returns an
// error that wraps ErrInvalidTables describing the first problem found, or nil
// if the tables can be used.
//
// Among other things, this checks that no fallback symbol itself has a
// fallback, so that resolving a fallback takes at most one step.
func (t *Tables) Validate() error {
	if t.NumStates < 1 {
		return invalidf("must have at least one state")
	}
	if t.TerminalCount < 1 {
		return invalidf("must have at least the end-of-input terminal")
	}

	if t.MaxShift < t.NumStates-1 {
		return invalidf("MaxShift %d cannot address all %d states", t.MaxShift, t.NumStates)
	}
	if !(t.MaxShift < t.MinShiftReduce &&
		t.MinShiftReduce <= t.MaxShiftReduce+1 &&
		t.MaxShiftReduce < t.MinReduce &&
		t.MinReduce <= t.MaxReduce) {
		return invalidf("action ranges out of order: shift <= %d < shift-reduce [%d, %d] < reduce [%d, %d]",
			t.MaxShift, t.MinShiftReduce, t.MaxShiftReduce, t.MinReduce, t.MaxReduce)
	}
	if t.MaxReduce-t.MinReduce+1 != len(t.Rules) {
		return invalidf("reduce range covers %d rules but %d rules are defined", t.MaxReduce-t.MinReduce+1, len(t.Rules))
	}

	special := map[int]string{t.ErrorAction: "ErrorAction", t.AcceptAction: "AcceptAction", t.NoAction: "NoAction"}
	if len(special) != 3 {
		return invalidf("ErrorAction, AcceptAction, and NoAction must be distinct")
	}
	for code, name := range special {
		if code <= t.MaxShift || (code >= t.MinShiftReduce && code <= t.MaxShiftReduce) || (code >= t.MinReduce && code <= t.MaxReduce) {
			return invalidf("%s code %d overlaps a shift or reduce range", name, code)
		}
	}

	symCount := t.SymbolCount()
	if t.InvalidSymbol >= 0 && t.InvalidSymbol < symCount {
		return invalidf("InvalidSymbol %d is the code of a real symbol", t.InvalidSymbol)
	}

	if len(t.Lookahead) != len(t.Action) {
		return invalidf("lookahead table has %d entries but action table has %d", len(t.Lookahead), len(t.Action))
	}
	for i := range t.Action {
		if t.Lookahead[i] == t.InvalidSymbol {
			continue
		}
		if t.Lookahead[i] < 0 || t.Lookahead[i] >= symCount {
			return invalidf("lookahead[%d] = %d is not a symbol", i, t.Lookahead[i])
		}
		if t.Decode(t.Action[i]).Type == ActionNone && t.Action[i] != t.NoAction {
			return invalidf("action[%d] = %d is not a valid action code", i, t.Action[i])
		}
	}

	if len(t.ShiftOffset) > t.NumStates {
		return invalidf("shift offset table has %d entries for %d states", len(t.ShiftOffset), t.NumStates)
	}
	for s, off := range t.ShiftOffset {
		if off == t.ShiftUseDefault {
			continue
		}
		if off < t.ShiftOffsetMin || off > t.ShiftOffsetMax {
			return invalidf("shift offset %d for state %d is outside [%d, %d]", off, s, t.ShiftOffsetMin, t.ShiftOffsetMax)
		}
	}
	if len(t.ReduceOffset) > t.NumStates {
		return invalidf("reduce offset table has %d entries for %d states", len(t.ReduceOffset), t.NumStates)
	}
	for s, off := range t.ReduceOffset {
		if off == t.ReduceUseDefault {
			continue
		}
		if off < t.ReduceOffsetMin || off > t.ReduceOffsetMax {
			return invalidf("reduce offset %d for state %d is outside [%d, %d]", off, s, t.ReduceOffsetMin, t.ReduceOffsetMax)
		}
	}

	if len(t.Default) != t.NumStates {
		return invalidf("default table has %d entries for %d states", len(t.Default), t.NumStates)
	}
	for s, code := range t.Default {
		if t.Decode(code).Type == ActionNone {
			return invalidf("default action %d for state %d is not a valid action code", code, s)
		}
	}

	if len(t.Fallback) > t.TerminalCount {
		return invalidf("fallback table has %d entries for %d terminals", len(t.Fallback), t.TerminalCount)
	}
	for sym, fb := range t.Fallback {
		if fb == 0 {
			continue
		}
		if fb < 0 || fb >= t.TerminalCount {
			return invalidf("fallback for %s is %d, which is not a terminal", t.SymbolName(sym), fb)
		}
		if fb == sym {
			return invalidf("%s falls back to itself", t.SymbolName(sym))
		}
		if fb < len(t.Fallback) && t.Fallback[fb] != 0 {
			return invalidf("fallback chain %s => %s => %s is longer than one step",
				t.SymbolName(sym), t.SymbolName(fb), t.SymbolName(t.Fallback[fb]))
		}
	}

	if t.HasWildcard && (t.Wildcard <= 0 || t.Wildcard >= t.TerminalCount) {
		return invalidf("wildcard %d is not a terminal other than end-of-input", t.Wildcard)
	}

	for r, info := range t.Rules {
		if info.LHS < t.TerminalCount || info.LHS >= symCount {
			return invalidf("rule %d produces %d, which is not a non-terminal", r, info.LHS)
		}
		if info.RHSLength < 0 {
			return invalidf("rule %d has negative right-hand side length", r)
		}
	}
	if len(t.RuleText) > 0 && len(t.RuleText) != len(t.Rules) {
		return invalidf("rule text given for %d rules but %d rules are defined", len(t.RuleText), len(t.Rules))
	}

	return nil
}

func invalidf(format string, a ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidTables, fmt.Sprintf(format, a...))
}

// String gives a table of every state's action on each terminal and goto on
// each non-terminal. Error actions are left blank.
func (t *Tables) String() string {
	symCount := t.SymbolCount()

	data := [][]string{}

	headers := []string{"S", "|"}
	for term := 0; term < t.TerminalCount; term++ {
		headers = append(headers, fmt.Sprintf("A:%s", t.SymbolName(term)))
	}
	headers = append(headers, "|")
	for nt := t.TerminalCount; nt < symCount; nt++ {
		headers = append(headers, fmt.Sprintf("G:%s", t.SymbolName(nt)))
	}
	data = append(data, headers)

	for state := 0; state < t.NumStates; state++ {
		row := []string{fmt.Sprintf("%d", state), "|"}

		for term := 0; term < t.TerminalCount; term++ {
			row = append(row, t.Decode(t.FindShiftAction(state, term, nil)).Short())
		}

		row = append(row, "|")

		for nt := t.TerminalCount; nt < symCount; nt++ {
			cell := ""
			if code, ok := t.probeReduce(state, nt); ok {
				cell = t.Decode(code).Short()
			}
			row = append(row, cell)
		}

		data = append(data, row)
	}

	return rosed.
		Edit("").
		InsertTableOpts(0, data, 10, rosed.Options{
			TableHeaders:             true,
			NoTrailingLineSeparators: true,
		}).
		String()
}
