package lrtab

import (
	"fmt"

	"github.com/dekarrin/remora/internal/util"
	"github.com/dekarrin/remora/parse"
)

type actionKind int

const (
	kindError actionKind = iota
	kindShift
	kindShiftReduce
	kindReduce
	kindAccept
)

// ActionSpec is an action in a Layout. The zero value is the error action.
type ActionSpec struct {
	kind actionKind
	n    int
}

// Shift is the action that shifts and goes to the given state. In a goto, it
// is the state to go to.
func Shift(state int) ActionSpec {
	return ActionSpec{kind: kindShift, n: state}
}

// ShiftReduce is the action that shifts and then immediately reduces by the
// given rule. In a goto, it is a goto to a state whose only action is to
// reduce by the rule.
func ShiftReduce(rule int) ActionSpec {
	return ActionSpec{kind: kindShiftReduce, n: rule}
}

// Reduce is the action that reduces by the given rule.
func Reduce(rule int) ActionSpec {
	return ActionSpec{kind: kindReduce, n: rule}
}

var (
	// Accept is the action that ends a parse successfully. It is only valid as
	// the goto on the start symbol.
	Accept = ActionSpec{kind: kindAccept}

	// Error is the action that reports a syntax error.
	Error = ActionSpec{kind: kindError}
)

func (as ActionSpec) String() string {
	switch as.kind {
	case kindShift:
		return fmt.Sprintf("shift %d", as.n)
	case kindShiftReduce:
		return fmt.Sprintf("shift-reduce %d", as.n)
	case kindReduce:
		return fmt.Sprintf("reduce %d", as.n)
	case kindAccept:
		return "accept"
	default:
		return "error"
	}
}

// Rule is a grammar rule in a Layout.
type Rule struct {
	// LHS is the symbol code of the non-terminal the rule produces.
	LHS int

	// RHSLength is the number of symbols on the right-hand side.
	RHSLength int

	// Text is a human-readable form of the rule, such as "expr ::= NUM".
	Text string
}

// State is one state of the automaton in a Layout.
type State struct {
	// Shifts gives the action for each terminal that the state has an action
	// for.
	Shifts map[int]ActionSpec

	// Gotos gives the goto for each non-terminal that the state has a goto
	// for.
	Gotos map[int]ActionSpec

	// Default is the action taken on any terminal not in Shifts.
	Default ActionSpec
}

// Layout describes parser tables one state at a time. Pack turns it into the
// compact tables used by package parse.
type Layout struct {
	// Symbols is the name of each symbol; its index is the symbol's code.
	// Terminals come first, starting with the end-of-input symbol at code 0.
	Symbols []string

	// TerminalCount is the number of terminals at the start of Symbols.
	TerminalCount int

	Rules  []Rule
	States []State

	// Fallback maps terminals to the terminal to retry with when they have no
	// action.
	Fallback map[int]int

	Wildcard    int
	HasWildcard bool
}

// Codes returns the action code boundaries that Pack uses for the layout.
// States take codes [0, n), shift-reduce actions take [n, n+R), then come
// the error, accept, and no-action codes, and finally reduce actions take the
// next R codes.
func (lay Layout) Codes() (maxShift, minShiftReduce, maxShiftReduce, errAct, acceptAct, noAct, minReduce, maxReduce int) {
	n := len(lay.States)
	r := len(lay.Rules)

	maxShift = n - 1
	minShiftReduce = n
	maxShiftReduce = n + r - 1
	errAct = n + r
	acceptAct = n + r + 1
	noAct = n + r + 2
	minReduce = n + r + 3
	maxReduce = n + 2*r + 2
	return
}

// Pack compacts the layout into parser tables. Each state's actions are placed
// into a shared action table at the first offset where none of its entries
// collide with an entry already placed, and where no symbol the state lacks an
// entry for would find another state's entry by mistake.
//
// The returned tables are validated before being returned.
func Pack(lay Layout) (parse.Tables, error) {
	if len(lay.States) < 1 {
		return parse.Tables{}, fmt.Errorf("layout has no states")
	}
	if len(lay.Rules) < 1 {
		return parse.Tables{}, fmt.Errorf("layout has no rules")
	}
	if lay.TerminalCount < 1 || lay.TerminalCount > len(lay.Symbols) {
		return parse.Tables{}, fmt.Errorf("terminal count %d out of range for %d symbols", lay.TerminalCount, len(lay.Symbols))
	}

	t := parse.Tables{
		InvalidSymbol: len(lay.Symbols),
		NumStates:     len(lay.States),
		TerminalCount: lay.TerminalCount,
		SymbolNames:   append([]string(nil), lay.Symbols...),
		Wildcard:      lay.Wildcard,
		HasWildcard:   lay.HasWildcard,
	}
	t.MaxShift, t.MinShiftReduce, t.MaxShiftReduce, t.ErrorAction, t.AcceptAction, t.NoAction, t.MinReduce, t.MaxReduce = lay.Codes()

	for _, r := range lay.Rules {
		t.Rules = append(t.Rules, parse.RuleInfo{LHS: r.LHS, RHSLength: r.RHSLength})
		t.RuleText = append(t.RuleText, r.Text)
	}

	if len(lay.Fallback) > 0 {
		t.Fallback = make([]int, lay.TerminalCount)
		for from, to := range lay.Fallback {
			if from <= 0 || from >= lay.TerminalCount {
				return parse.Tables{}, fmt.Errorf("fallback from %d: not a terminal other than end-of-input", from)
			}
			t.Fallback[from] = to
		}
	}

	p := &packer{invalid: t.InvalidSymbol, noAction: t.NoAction, used: map[int]bool{}}

	t.ShiftOffset = make([]int, len(lay.States))
	t.ReduceOffset = make([]int, len(lay.States))
	t.Default = make([]int, len(lay.States))
	shiftPlaced := make([]bool, len(lay.States))
	gotoPlaced := make([]bool, len(lay.States))

	for s, st := range lay.States {
		var err error

		t.Default[s], err = lay.encode(st.Default, t)
		if err != nil {
			return parse.Tables{}, fmt.Errorf("state %d: default: %w", s, err)
		}
		if st.Default.kind == kindAccept {
			return parse.Tables{}, fmt.Errorf("state %d: default: accept is only valid as a goto", s)
		}

		if len(st.Shifts) > 0 {
			row := map[int]int{}
			for _, sym := range util.OrderedKeys(st.Shifts) {
				if sym < 0 || sym >= lay.TerminalCount {
					return parse.Tables{}, fmt.Errorf("state %d: shift on %d: not a terminal", s, sym)
				}
				act := st.Shifts[sym]
				if act.kind == kindAccept {
					return parse.Tables{}, fmt.Errorf("state %d: shift on %s: accept is only valid as a goto", s, lay.Symbols[sym])
				}
				row[sym], err = lay.encode(act, t)
				if err != nil {
					return parse.Tables{}, fmt.Errorf("state %d: shift on %s: %w", s, lay.Symbols[sym], err)
				}
			}
			t.ShiftOffset[s] = p.place(row)
			shiftPlaced[s] = true
		}

		if len(st.Gotos) > 0 {
			row := map[int]int{}
			for _, sym := range util.OrderedKeys(st.Gotos) {
				if sym < lay.TerminalCount || sym >= len(lay.Symbols) {
					return parse.Tables{}, fmt.Errorf("state %d: goto on %d: not a non-terminal", s, sym)
				}
				act := st.Gotos[sym]
				if act.kind == kindReduce || act.kind == kindError {
					return parse.Tables{}, fmt.Errorf("state %d: goto on %s: %s is not a valid goto", s, lay.Symbols[sym], act)
				}
				row[sym], err = lay.encode(act, t)
				if err != nil {
					return parse.Tables{}, fmt.Errorf("state %d: goto on %s: %w", s, lay.Symbols[sym], err)
				}
			}
			t.ReduceOffset[s] = p.place(row)
			gotoPlaced[s] = true
		}
	}

	t.Action = p.action
	t.Lookahead = p.lookahead

	t.ShiftOffsetMin, t.ShiftOffsetMax, t.ShiftUseDefault = offsetBounds(t.ShiftOffset, shiftPlaced)
	t.ReduceOffsetMin, t.ReduceOffsetMax, t.ReduceUseDefault = offsetBounds(t.ReduceOffset, gotoPlaced)

	if err := t.Validate(); err != nil {
		return parse.Tables{}, err
	}

	return t, nil
}

// encode converts an ActionSpec into an action code for tables laid out by
// Codes.
func (lay Layout) encode(as ActionSpec, t parse.Tables) (int, error) {
	switch as.kind {
	case kindError:
		return t.ErrorAction, nil
	case kindAccept:
		return t.AcceptAction, nil
	case kindShift:
		if as.n < 0 || as.n >= len(lay.States) {
			return 0, fmt.Errorf("no state %d", as.n)
		}
		return as.n, nil
	case kindShiftReduce:
		if as.n < 0 || as.n >= len(lay.Rules) {
			return 0, fmt.Errorf("no rule %d", as.n)
		}
		return t.MinShiftReduce + as.n, nil
	case kindReduce:
		if as.n < 0 || as.n >= len(lay.Rules) {
			return 0, fmt.Errorf("no rule %d", as.n)
		}
		return t.MinReduce + as.n, nil
	default:
		return 0, fmt.Errorf("unknown action kind %d", as.kind)
	}
}

// offsetBounds sets every offset that was not placed to the use-default value
// and returns the bounds of the placed offsets along with the use-default
// value, which is always below the minimum.
func offsetBounds(offsets []int, placed []bool) (min, max, useDefault int) {
	first := true
	for i, off := range offsets {
		if !placed[i] {
			continue
		}
		if first || off < min {
			min = off
		}
		if first || off > max {
			max = off
		}
		first = false
	}

	useDefault = min - 1
	for i := range offsets {
		if !placed[i] {
			offsets[i] = useDefault
		}
	}

	return min, max, useDefault
}

// packer places rows into a growing action table.
type packer struct {
	action    []int
	lookahead []int
	invalid   int
	noAction  int

	// used holds every offset that has been given to a row. No two rows share
	// an offset, so a probe on a symbol a row lacks can never land on another
	// row's entry for that same symbol.
	used map[int]bool
}

// place finds the first offset at which every entry of row lands on a free
// slot, writes the row there, and returns the offset.
func (p *packer) place(row map[int]int) int {
	syms := util.OrderedKeys(row)
	minSym := syms[0]

	for off := -minSym; ; off++ {
		if p.used[off] || !p.fits(off, syms) {
			continue
		}

		for _, sym := range syms {
			p.grow(off + sym + 1)
			p.action[off+sym] = row[sym]
			p.lookahead[off+sym] = sym
		}
		p.used[off] = true
		return off
	}
}

func (p *packer) fits(off int, syms []int) bool {
	for _, sym := range syms {
		i := off + sym
		if i < len(p.lookahead) && p.lookahead[i] != p.invalid {
			return false
		}
	}
	return true
}

func (p *packer) grow(size int) {
	for len(p.action) < size {
		p.action = append(p.action, p.noAction)
		p.lookahead = append(p.lookahead, p.invalid)
	}
}
