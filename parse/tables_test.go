package parse

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Tables_Decode(t *testing.T) {
	tables := sumTables(false)

	testCases := []struct {
		name   string
		code   int
		expect Action
		short  string
	}{
		{name: "shift", code: 3, expect: Action{Type: ActionShift, Code: 3, State: 3}, short: "s3"},
		{name: "shift to 0", code: 0, expect: Action{Type: ActionShift, Code: 0, State: 0}, short: "s0"},
		{name: "shift-reduce", code: 6, expect: Action{Type: ActionShiftReduce, Code: 6, Rule: 1}, short: "s/r1"},
		{name: "error", code: 8, expect: Action{Type: ActionError, Code: 8}, short: ""},
		{name: "accept", code: 9, expect: Action{Type: ActionAccept, Code: 9}, short: "acc"},
		{name: "no action", code: 10, expect: Action{Type: ActionNone, Code: 10}, short: ""},
		{name: "reduce", code: 13, expect: Action{Type: ActionReduce, Code: 13, Rule: 2}, short: "r2"},
		{name: "past reduce range", code: 14, expect: Action{Type: ActionNone, Code: 14}, short: ""},
		{name: "negative", code: -1, expect: Action{Type: ActionNone, Code: -1}, short: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			actual := tables.Decode(tc.code)

			assert.Equal(tc.expect, actual)
			assert.Equal(tc.short, actual.Short())
		})
	}
}

func Test_Tables_Validate(t *testing.T) {
	testCases := []struct {
		name      string
		modify    func(tables *Tables)
		expectErr bool
	}{
		{name: "valid", modify: func(tables *Tables) {}},
		{name: "no states", modify: func(tables *Tables) { tables.NumStates = 0 }, expectErr: true},
		{name: "overlapping ranges", modify: func(tables *Tables) { tables.MinShiftReduce = 4 }, expectErr: true},
		{name: "rule count mismatch", modify: func(tables *Tables) { tables.Rules = tables.Rules[:2] }, expectErr: true},
		{name: "accept is error", modify: func(tables *Tables) { tables.AcceptAction = tables.ErrorAction }, expectErr: true},
		{name: "special code in reduce range", modify: func(tables *Tables) { tables.NoAction = 12 }, expectErr: true},
		{name: "invalid symbol is real", modify: func(tables *Tables) { tables.InvalidSymbol = 2 }, expectErr: true},
		{name: "lookahead length mismatch", modify: func(tables *Tables) { tables.Lookahead = tables.Lookahead[1:] }, expectErr: true},
		{name: "bad action code", modify: func(tables *Tables) { tables.Action[2] = 99 }, expectErr: true},
		{name: "shift offset out of range", modify: func(tables *Tables) { tables.ShiftOffset[1] = 500 }, expectErr: true},
		{name: "reduce offset out of range", modify: func(tables *Tables) { tables.ReduceOffset[0] = -3 }, expectErr: true},
		{name: "default missing", modify: func(tables *Tables) { tables.Default = tables.Default[:4] }, expectErr: true},
		{name: "default is no-action", modify: func(tables *Tables) { tables.Default[0] = tables.NoAction }, expectErr: true},
		{name: "fallback to non-terminal", modify: func(tables *Tables) { tables.Fallback = []int{0, 3} }, expectErr: true},
		{name: "fallback to self", modify: func(tables *Tables) { tables.Fallback = []int{0, 1} }, expectErr: true},
		{name: "one-step fallback", modify: func(tables *Tables) { tables.Fallback = []int{0, 2, 0} }},
		{name: "two-step fallback", modify: func(tables *Tables) { tables.Fallback = []int{0, 2, 1} }, expectErr: true},
		{name: "wildcard is end of input", modify: func(tables *Tables) { tables.HasWildcard = true; tables.Wildcard = 0 }, expectErr: true},
		{name: "wildcard is terminal", modify: func(tables *Tables) { tables.HasWildcard = true; tables.Wildcard = 1 }},
		{name: "rule produces terminal", modify: func(tables *Tables) { tables.Rules[1].LHS = 1 }, expectErr: true},
		{name: "rule text mismatch", modify: func(tables *Tables) { tables.RuleText = tables.RuleText[:1] }, expectErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)
			tables := sumTables(false)
			tc.modify(tables)

			err := tables.Validate()

			if tc.expectErr {
				assert.ErrorIs(err, ErrInvalidTables)
				return
			}
			assert.NoError(err)
		})
	}
}

func Test_Tables_FindShiftAction(t *testing.T) {
	testCases := []struct {
		name        string
		tables      *Tables
		state       int
		la          int
		expect      int
		expectSubst []Substitution
	}{
		{name: "direct hit", tables: sumTables(false), state: 0, la: sumNum, expect: 2},
		{name: "miss gives default", tables: sumTables(false), state: 0, la: sumPlus, expect: 8},
		{name: "use-default state", tables: sumTables(false), state: 2, la: sumNum, expect: 13},
		{name: "reduce code as state", tables: sumTables(false), state: 12, la: sumNum, expect: 12},
		{
			name:        "fallback hit",
			tables:      keywordTables(),
			state:       0,
			la:          kwKeyword,
			expect:      1,
			expectSubst: []Substitution{{From: kwKeyword, To: kwID}},
		},
		{
			name:        "fallback miss gives default",
			tables:      keywordTables(),
			state:       2,
			la:          kwKeyword,
			expect:      5,
			expectSubst: []Substitution{{From: kwKeyword, To: kwID}},
		},
		{
			name:        "wildcard hit",
			tables:      wildcardTables(),
			state:       1,
			la:          wcB,
			expect:      2,
			expectSubst: []Substitution{{Wildcard: true, From: wcB, To: wcAny}},
		},
		{name: "wildcard skipped on end of input", tables: wildcardTables(), state: 1, la: wcEnd, expect: 6},
		{name: "wildcard miss gives default", tables: wildcardTables(), state: 0, la: wcB, expect: 6},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)
			var subs []Substitution

			actual := tc.tables.FindShiftAction(tc.state, tc.la, func(s Substitution) { subs = append(subs, s) })

			assert.Equal(tc.expect, actual)
			assert.Equal(tc.expectSubst, subs)
		})
	}
}

func Test_Tables_FindShiftAction_FallbackOfFallbackPanics(t *testing.T) {
	tables := keywordTables()
	tables.Fallback = []int{0, kwKeyword, kwID}

	assert.Panics(t, func() {
		tables.FindShiftAction(0, kwKeyword, nil)
	})
}

func Test_Tables_FindShiftAction_NilObserver(t *testing.T) {
	assert.Equal(t, 1, keywordTables().FindShiftAction(0, kwKeyword, nil))
}

func Test_Tables_FindReduceAction(t *testing.T) {
	assert := assert.New(t)
	tables := sumTables(false)

	assert.Equal(1, tables.FindReduceAction(0, sumExpr))
	assert.Equal(tables.AcceptAction, tables.FindReduceAction(0, sumRoot))
	assert.Equal(4, tables.FindReduceAction(3, sumExpr))

	assert.Panics(func() { tables.FindReduceAction(3, sumRoot) })
	assert.Panics(func() { tables.FindReduceAction(1, sumExpr) })
}

func Test_Tables_String(t *testing.T) {
	assert := assert.New(t)

	actual := sumTables(false).String()
	lines := strings.Split(actual, "\n")

	// header, separator, and one row per state
	assert.Len(lines, 7)
	assert.Contains(lines[0], "A:PLUS")
	assert.Contains(lines[0], "G:root")
	assert.Contains(lines[2], "s2")
	assert.Contains(lines[2], "acc")
	assert.Contains(lines[3], "r0")
	assert.Contains(lines[3], "s3")
	assert.Contains(lines[6], "r1")
}

func Test_Tables_SymbolName(t *testing.T) {
	assert := assert.New(t)
	tables := sumTables(false)

	assert.Equal("expr", tables.SymbolName(sumExpr))
	assert.Equal("#22", tables.SymbolName(22))
	assert.Equal("expr ::= NUM", tables.RuleString(2))
	assert.Equal("rule 9", tables.RuleString(9))
}
