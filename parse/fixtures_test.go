package parse

import "fmt"

// tableRow is one state of a test automaton. Tables built from rows use the
// simplest possible layout: every state gets its own block of the action
// table, one slot per symbol.
type tableRow struct {
	actions map[int]int
	gotos   map[int]int
	dflt    int
}

// buildTables lays out rows without any compaction. States with no actions or
// no gotos are given the use-default offset.
func buildTables(base Tables, rows []tableRow) *Tables {
	t := base
	nsym := len(t.SymbolNames)

	t.NumStates = len(rows)
	t.InvalidSymbol = nsym
	t.ShiftUseDefault = -1000
	t.ReduceUseDefault = -1000
	t.ShiftOffsetMin = 0
	t.ReduceOffsetMin = 0
	t.ShiftOffsetMax = nsym * (len(rows) - 1)
	t.ReduceOffsetMax = nsym * (len(rows) - 1)

	t.Action = make([]int, nsym*len(rows))
	t.Lookahead = make([]int, nsym*len(rows))
	for i := range t.Action {
		t.Action[i] = t.NoAction
		t.Lookahead[i] = t.InvalidSymbol
	}

	t.ShiftOffset = make([]int, len(rows))
	t.ReduceOffset = make([]int, len(rows))
	t.Default = make([]int, len(rows))

	for s, r := range rows {
		off := s * nsym

		t.Default[s] = r.dflt

		t.ShiftOffset[s] = t.ShiftUseDefault
		if len(r.actions) > 0 {
			t.ShiftOffset[s] = off
		}
		for sym, act := range r.actions {
			t.Action[off+sym] = act
			t.Lookahead[off+sym] = sym
		}

		t.ReduceOffset[s] = t.ReduceUseDefault
		if len(r.gotos) > 0 {
			t.ReduceOffset[s] = off
		}
		for sym, act := range r.gotos {
			t.Action[off+sym] = act
			t.Lookahead[off+sym] = sym
		}
	}

	return &t
}

const (
	sumEnd  = 0
	sumPlus = 1
	sumNum  = 2
	sumExpr = 3
	sumRoot = 4
)

// sumTables gives the tables for:
//
//	root ::= expr
//	expr ::= expr PLUS expr
//	expr ::= NUM
//
// with PLUS left-associative. If compactNum is set, shifts of NUM are
// shift-reduce actions.
func sumTables(compactNum bool) *Tables {
	base := Tables{
		TerminalCount:  3,
		MaxShift:       4,
		MinShiftReduce: 5,
		MaxShiftReduce: 7,
		ErrorAction:    8,
		AcceptAction:   9,
		NoAction:       10,
		MinReduce:      11,
		MaxReduce:      13,
		Rules: []RuleInfo{
			{LHS: sumRoot, RHSLength: 1},
			{LHS: sumExpr, RHSLength: 3},
			{LHS: sumExpr, RHSLength: 1},
		},
		SymbolNames: []string{"$", "PLUS", "NUM", "expr", "root"},
		RuleText: []string{
			"root ::= expr",
			"expr ::= expr PLUS expr",
			"expr ::= NUM",
		},
	}

	shiftNum := 2
	if compactNum {
		shiftNum = base.MinShiftReduce + 2
	}

	return buildTables(base, []tableRow{
		{actions: map[int]int{sumNum: shiftNum}, gotos: map[int]int{sumExpr: 1, sumRoot: base.AcceptAction}, dflt: base.ErrorAction},
		{actions: map[int]int{sumEnd: base.MinReduce + 0, sumPlus: 3}, dflt: base.ErrorAction},
		{dflt: base.MinReduce + 2},
		{actions: map[int]int{sumNum: shiftNum}, gotos: map[int]int{sumExpr: 4}, dflt: base.ErrorAction},
		{dflt: base.MinReduce + 1},
	})
}

const (
	kwEnd     = 0
	kwID      = 1
	kwKeyword = 2
	kwX       = 3
	kwRoot    = 4
)

// keywordTables gives the tables for:
//
//	root ::= x
//	x ::= ID
//
// where KEYWORD falls back to ID.
func keywordTables() *Tables {
	base := Tables{
		TerminalCount:  3,
		MaxShift:       2,
		MinShiftReduce: 3,
		MaxShiftReduce: 4,
		ErrorAction:    5,
		AcceptAction:   6,
		NoAction:       7,
		MinReduce:      8,
		MaxReduce:      9,
		Fallback:       []int{0, 0, kwID},
		Rules: []RuleInfo{
			{LHS: kwRoot, RHSLength: 1},
			{LHS: kwX, RHSLength: 1},
		},
		SymbolNames: []string{"$", "ID", "KEYWORD", "x", "root"},
		RuleText:    []string{"root ::= x", "x ::= ID"},
	}

	return buildTables(base, []tableRow{
		{actions: map[int]int{kwID: 1}, gotos: map[int]int{kwX: 2, kwRoot: base.AcceptAction}, dflt: base.ErrorAction},
		{dflt: base.MinReduce + 1},
		{actions: map[int]int{kwEnd: base.MinReduce + 0}, dflt: base.ErrorAction},
	})
}

const (
	wcEnd  = 0
	wcA    = 1
	wcB    = 2
	wcAny  = 3
	wcS    = 4
	wcRoot = 5
)

// wildcardTables gives the tables for:
//
//	root ::= s
//	s ::= A ANY
//
// where ANY is the wildcard.
func wildcardTables() *Tables {
	base := Tables{
		TerminalCount:  4,
		MaxShift:       3,
		MinShiftReduce: 4,
		MaxShiftReduce: 5,
		ErrorAction:    6,
		AcceptAction:   7,
		NoAction:       8,
		MinReduce:      9,
		MaxReduce:      10,
		Wildcard:       wcAny,
		HasWildcard:    true,
		Rules: []RuleInfo{
			{LHS: wcRoot, RHSLength: 1},
			{LHS: wcS, RHSLength: 2},
		},
		SymbolNames: []string{"$", "A", "B", "ANY", "s", "root"},
		RuleText:    []string{"root ::= s", "s ::= A ANY"},
	}

	return buildTables(base, []tableRow{
		{actions: map[int]int{wcA: 1}, gotos: map[int]int{wcS: 3, wcRoot: base.AcceptAction}, dflt: base.ErrorAction},
		{actions: map[int]int{wcAny: 2}, dflt: base.ErrorAction},
		{dflt: base.MinReduce + 1},
		{actions: map[int]int{wcEnd: base.MinReduce + 0}, dflt: base.ErrorAction},
	})
}

type testCode int

type testToken struct {
	code testCode
	val  int
	text string

	// position; zero line means no position is known.
	line int
	pos  int
	full string
}

func (tok testToken) String() string {
	return fmt.Sprintf("%d %q", tok.code, tok.text)
}

// positionedToken is a testToken that reports its position.
type positionedToken struct {
	testToken
}

func (tok positionedToken) Line() int        { return tok.line }
func (tok positionedToken) LinePos() int     { return tok.pos }
func (tok positionedToken) FullLine() string { return tok.full }

func num(v int) testToken {
	return testToken{code: sumNum, val: v, text: fmt.Sprintf("%d", v)}
}

func plus() testToken {
	return testToken{code: sumPlus, text: "+"}
}

func tokenCode(tok testToken) testCode {
	return tok.code
}

// sumGrammar gives a grammar over the given tables whose semantic actions add
// values. If failWith is non-nil, the action for failRule fails with it.
func sumGrammar(tables *Tables, failRule int, failWith error) Grammar[testToken, testCode, int, int] {
	return Grammar[testToken, testCode, int, int]{
		Tables: tables,
		Symbol: func(tok testToken) int { return tok.val },
		Action: func(rule int, rhs []Frame[int]) (int, error) {
			if failWith != nil && rule == failRule {
				return 0, failWith
			}
			switch rule {
			case 1:
				return rhs[0].Value + rhs[2].Value, nil
			default:
				return rhs[0].Value, nil
			}
		},
		Result: func(sym int) int { return sym },
	}
}

// firstValueGrammar gives a grammar over the given tables where every rule
// produces the value of the first symbol of its right-hand side.
func firstValueGrammar(tables *Tables) Grammar[testToken, testCode, int, int] {
	return Grammar[testToken, testCode, int, int]{
		Tables: tables,
		Symbol: func(tok testToken) int { return tok.val },
		Action: func(rule int, rhs []Frame[int]) (int, error) {
			return rhs[0].Value, nil
		},
		Result: func(sym int) int { return sym },
	}
}

// traceRecorder collects trace lines.
type traceRecorder struct {
	lines []string
}

func (tr *traceRecorder) record(s string) {
	tr.lines = append(tr.lines, s)
}
