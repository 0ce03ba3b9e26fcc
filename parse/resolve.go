package parse

import "fmt"

// Substitution is a change of lookahead that FindShiftAction made while
// looking for an action. It is reported to the observer passed to
// FindShiftAction.
type Substitution struct {
	// Wildcard is true if the lookahead was matched against the wildcard
	// symbol, and false if it was replaced by its fallback.
	Wildcard bool

	From int
	To   int
}

// FindShiftAction returns the raw action code to take in the given state when
// the next symbol is the terminal la. If the state is itself an action code
// that falls in the reduce range, it is returned unchanged; this is how a
// shift-reduce code pushed onto the stack triggers its reduce.
//
// If la has no entry for the state, its fallback is tried, then the wildcard
// symbol if la is not the end-of-input symbol, and finally the state's default
// action is returned. Each substitution is reported to obs if it is not nil.
//
// This panics if a fallback is found to itself have a fallback.
func (t *Tables) FindShiftAction(state, la int, obs func(Substitution)) int {
	if state >= t.MinReduce {
		return state
	}

	if state < 0 || state >= t.NumStates {
		panic(fmt.Sprintf("parse: state %d is out of range [0, %d)", state, t.NumStates))
	}

	if state >= len(t.ShiftOffset) || t.ShiftOffset[state] == t.ShiftUseDefault {
		return t.Default[state]
	}

	offset := t.ShiftOffset[state]
	for {
		i := offset + la
		if t.hit(i, la) {
			return t.Action[i]
		}

		if la > 0 && la < len(t.Fallback) && t.Fallback[la] != 0 {
			fb := t.Fallback[la]
			if fb < len(t.Fallback) && t.Fallback[fb] != 0 {
				panic(fmt.Sprintf("parse: fallback %s => %s has its own fallback %s", t.SymbolName(la), t.SymbolName(fb), t.SymbolName(t.Fallback[fb])))
			}
			if obs != nil {
				obs(Substitution{From: la, To: fb})
			}
			la = fb
			continue
		}

		if t.HasWildcard && la > 0 {
			j := i - la + t.Wildcard
			if t.hit(j, t.Wildcard) {
				if obs != nil {
					obs(Substitution{Wildcard: true, From: la, To: t.Wildcard})
				}
				return t.Action[j]
			}
		}

		return t.Default[state]
	}
}

// FindReduceAction returns the raw action code for the goto taken from state
// on the non-terminal lhs after a reduce. The tables must have an entry for
// every goto that a correct parse can reach; a miss panics.
func (t *Tables) FindReduceAction(state, lhs int) int {
	code, ok := t.probeReduce(state, lhs)
	if !ok {
		panic(fmt.Sprintf("parse: no goto from state %d on %s", state, t.SymbolName(lhs)))
	}
	return code
}

func (t *Tables) probeReduce(state, lhs int) (int, bool) {
	if state < 0 || state >= len(t.ReduceOffset) || t.ReduceOffset[state] == t.ReduceUseDefault {
		return 0, false
	}
	i := t.ReduceOffset[state] + lhs
	if !t.hit(i, lhs) {
		return 0, false
	}
	return t.Action[i], true
}

// hit returns whether slot i of the action table is the entry for sym.
func (t *Tables) hit(i, sym int) bool {
	return i >= 0 && i < len(t.Action) && t.Lookahead[i] == sym
}

// expectedTerminals gives the codes of every terminal that has an entry of its
// own in the given state, in code order.
func (t *Tables) expectedTerminals(state int) []int {
	if state < 0 || state >= len(t.ShiftOffset) || t.ShiftOffset[state] == t.ShiftUseDefault {
		return nil
	}

	var expected []int
	for term := 0; term < t.TerminalCount; term++ {
		i := t.ShiftOffset[state] + term
		if t.hit(i, term) && t.Decode(t.Action[i]).Type != ActionError {
			expected = append(expected, term)
		}
	}
	return expected
}
