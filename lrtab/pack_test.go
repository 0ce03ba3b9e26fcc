package lrtab

import (
	"testing"

	"github.com/dekarrin/remora/parse"
	"github.com/stretchr/testify/assert"
)

// numLayout is the grammar:
//
//	root ::= expr
//	expr ::= NUM
func numLayout() Layout {
	return Layout{
		Symbols:       []string{"$", "NUM", "expr", "root"},
		TerminalCount: 2,
		Rules: []Rule{
			{LHS: 3, RHSLength: 1, Text: "root ::= expr"},
			{LHS: 2, RHSLength: 1, Text: "expr ::= NUM"},
		},
		States: []State{
			{
				Shifts: map[int]ActionSpec{1: ShiftReduce(1)},
				Gotos:  map[int]ActionSpec{2: Shift(1), 3: Accept},
			},
			{
				Shifts: map[int]ActionSpec{0: Reduce(0)},
			},
		},
	}
}

// keywordLayout is the grammar:
//
//	root ::= expr
//	expr ::= NUM
//	expr ::= ANY
//
// with KW falling back to NUM and ANY as the wildcard.
func keywordLayout() Layout {
	return Layout{
		Symbols:       []string{"$", "NUM", "KW", "ANY", "expr", "root"},
		TerminalCount: 4,
		Rules: []Rule{
			{LHS: 5, RHSLength: 1, Text: "root ::= expr"},
			{LHS: 4, RHSLength: 1, Text: "expr ::= NUM"},
			{LHS: 4, RHSLength: 1, Text: "expr ::= ANY"},
		},
		States: []State{
			{
				Shifts: map[int]ActionSpec{1: ShiftReduce(1), 3: ShiftReduce(2)},
				Gotos:  map[int]ActionSpec{4: Shift(1), 5: Accept},
			},
			{
				Shifts: map[int]ActionSpec{0: Reduce(0)},
			},
		},
		Fallback:    map[int]int{2: 1},
		Wildcard:    3,
		HasWildcard: true,
	}
}

func Test_Layout_Codes(t *testing.T) {
	assert := assert.New(t)

	maxShift, minSR, maxSR, errAct, accAct, noAct, minR, maxR := numLayout().Codes()

	assert.Equal(1, maxShift)
	assert.Equal(2, minSR)
	assert.Equal(3, maxSR)
	assert.Equal(4, errAct)
	assert.Equal(5, accAct)
	assert.Equal(6, noAct)
	assert.Equal(7, minR)
	assert.Equal(8, maxR)
}

func Test_Pack(t *testing.T) {
	assert := assert.New(t)

	actual, err := Pack(numLayout())
	if !assert.NoError(err) {
		return
	}

	expect := parse.Tables{
		InvalidSymbol:    4,
		NumStates:        2,
		TerminalCount:    2,
		MaxShift:         1,
		MinShiftReduce:   2,
		MaxShiftReduce:   3,
		ErrorAction:      4,
		AcceptAction:     5,
		NoAction:         6,
		MinReduce:        7,
		MaxReduce:        8,
		Action:           []int{3, 7, 1, 5},
		Lookahead:        []int{1, 0, 2, 3},
		ShiftOffset:      []int{-1, 1},
		ShiftUseDefault:  -2,
		ShiftOffsetMin:   -1,
		ShiftOffsetMax:   1,
		ReduceOffset:     []int{0, -1},
		ReduceUseDefault: -1,
		ReduceOffsetMin:  0,
		ReduceOffsetMax:  0,
		Default:          []int{4, 4},
		Rules:            []parse.RuleInfo{{LHS: 3, RHSLength: 1}, {LHS: 2, RHSLength: 1}},
		SymbolNames:      []string{"$", "NUM", "expr", "root"},
		RuleText:         []string{"root ::= expr", "expr ::= NUM"},
	}

	assert.Equal(expect, actual)
}

func Test_Pack_Lookups(t *testing.T) {
	tables, err := Pack(keywordLayout())
	if !assert.NoError(t, err) {
		return
	}

	testCases := []struct {
		name   string
		state  int
		la     int
		expect parse.Action
	}{
		{name: "shift-reduce on NUM", state: 0, la: 1, expect: parse.Action{Type: parse.ActionShiftReduce, Code: 3, Rule: 1}},
		{name: "KW falls back to NUM", state: 0, la: 2, expect: parse.Action{Type: parse.ActionShiftReduce, Code: 3, Rule: 1}},
		{name: "shift-reduce on ANY", state: 0, la: 3, expect: parse.Action{Type: parse.ActionShiftReduce, Code: 4, Rule: 2}},
		{name: "end of input in start state", state: 0, la: 0, expect: parse.Action{Type: parse.ActionError, Code: 5}},
		{name: "reduce on end of input", state: 1, la: 0, expect: parse.Action{Type: parse.ActionReduce, Code: 8, Rule: 0}},
		{name: "missing entry takes default", state: 1, la: 1, expect: parse.Action{Type: parse.ActionError, Code: 5}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			actual := tables.Decode(tables.FindShiftAction(tc.state, tc.la, nil))
			assert.Equal(t, tc.expect, actual)
		})
	}

	assert.Equal(t, 1, tables.FindReduceAction(0, 4))
	assert.Equal(t, tables.AcceptAction, tables.FindReduceAction(0, 5))
}

func Test_Pack_Errors(t *testing.T) {
	testCases := []struct {
		name   string
		modify func(lay *Layout)
	}{
		{
			name:   "no states",
			modify: func(lay *Layout) { lay.States = nil },
		},
		{
			name:   "no rules",
			modify: func(lay *Layout) { lay.Rules = nil },
		},
		{
			name:   "terminal count too high",
			modify: func(lay *Layout) { lay.TerminalCount = 5 },
		},
		{
			name:   "shift on non-terminal",
			modify: func(lay *Layout) { lay.States[1].Shifts[2] = Shift(0) },
		},
		{
			name:   "goto on terminal",
			modify: func(lay *Layout) { lay.States[1].Gotos = map[int]ActionSpec{1: Shift(0)} },
		},
		{
			name:   "accept as shift",
			modify: func(lay *Layout) { lay.States[1].Shifts[1] = Accept },
		},
		{
			name:   "accept as default",
			modify: func(lay *Layout) { lay.States[1].Default = Accept },
		},
		{
			name:   "reduce as goto",
			modify: func(lay *Layout) { lay.States[0].Gotos[2] = Reduce(1) },
		},
		{
			name:   "shift to missing state",
			modify: func(lay *Layout) { lay.States[0].Shifts[1] = Shift(2) },
		},
		{
			name:   "reduce by missing rule",
			modify: func(lay *Layout) { lay.States[1].Shifts[0] = Reduce(2) },
		},
		{
			name:   "fallback from end of input",
			modify: func(lay *Layout) { lay.Fallback = map[int]int{0: 1} },
		},
		{
			name:   "fallback to itself",
			modify: func(lay *Layout) { lay.Fallback = map[int]int{1: 1} },
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			lay := numLayout()
			tc.modify(&lay)

			_, err := Pack(lay)

			assert.Error(t, err)
		})
	}
}

func Test_ActionSpec_String(t *testing.T) {
	testCases := []struct {
		spec   ActionSpec
		expect string
	}{
		{spec: Shift(3), expect: "shift 3"},
		{spec: ShiftReduce(2), expect: "shift-reduce 2"},
		{spec: Reduce(1), expect: "reduce 1"},
		{spec: Accept, expect: "accept"},
		{spec: Error, expect: "error"},
		{spec: ActionSpec{}, expect: "error"},
	}

	for _, tc := range testCases {
		t.Run(tc.expect, func(t *testing.T) {
			assert.Equal(t, tc.expect, tc.spec.String())
		})
	}
}
