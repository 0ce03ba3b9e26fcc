package lrtab

import "github.com/dekarrin/remora/parse"

// marshaledFile is the top-level structure of a table file in the text
// formats.
type marshaledFile struct {
	Format  string          `toml:"format" yaml:"format"`
	Grammar string          `toml:"grammar" yaml:"grammar"`
	Tables  marshaledTables `toml:"tables" yaml:"tables"`
}

type marshaledTables struct {
	InvalidSymbol int              `toml:"invalid_symbol" yaml:"invalid_symbol"`
	NumStates     int              `toml:"num_states" yaml:"num_states"`
	TerminalCount int              `toml:"terminal_count" yaml:"terminal_count"`
	Symbols       []string         `toml:"symbols" yaml:"symbols"`
	Codes         marshaledCodes   `toml:"codes" yaml:"codes"`
	Action        []int            `toml:"action" yaml:"action,flow"`
	Lookahead     []int            `toml:"lookahead" yaml:"lookahead,flow"`
	Shift         marshaledOffsets `toml:"shift" yaml:"shift"`
	Reduce        marshaledOffsets `toml:"reduce" yaml:"reduce"`
	Default       []int            `toml:"default" yaml:"default,flow"`
	Fallback      []int            `toml:"fallback,omitempty" yaml:"fallback,flow,omitempty"`
	Wildcard      *int             `toml:"wildcard,omitempty" yaml:"wildcard,omitempty"`
	Rules         []marshaledRule  `toml:"rule" yaml:"rules"`
}

type marshaledCodes struct {
	MaxShift       int `toml:"max_shift" yaml:"max_shift"`
	MinShiftReduce int `toml:"min_shift_reduce" yaml:"min_shift_reduce"`
	MaxShiftReduce int `toml:"max_shift_reduce" yaml:"max_shift_reduce"`
	Error          int `toml:"error" yaml:"error"`
	Accept         int `toml:"accept" yaml:"accept"`
	NoAction       int `toml:"no_action" yaml:"no_action"`
	MinReduce      int `toml:"min_reduce" yaml:"min_reduce"`
	MaxReduce      int `toml:"max_reduce" yaml:"max_reduce"`
}

type marshaledOffsets struct {
	Offsets    []int `toml:"offsets" yaml:"offsets,flow"`
	UseDefault int   `toml:"use_default" yaml:"use_default"`
	Min        int   `toml:"min" yaml:"min"`
	Max        int   `toml:"max" yaml:"max"`
}

type marshaledRule struct {
	LHS       int    `toml:"lhs" yaml:"lhs"`
	RHSLength int    `toml:"rhs_length" yaml:"rhs_length"`
	Text      string `toml:"text,omitempty" yaml:"text,omitempty"`
}

func marshalTables(t parse.Tables) marshaledTables {
	mt := marshaledTables{
		InvalidSymbol: t.InvalidSymbol,
		NumStates:     t.NumStates,
		TerminalCount: t.TerminalCount,
		Symbols:       t.SymbolNames,
		Codes: marshaledCodes{
			MaxShift:       t.MaxShift,
			MinShiftReduce: t.MinShiftReduce,
			MaxShiftReduce: t.MaxShiftReduce,
			Error:          t.ErrorAction,
			Accept:         t.AcceptAction,
			NoAction:       t.NoAction,
			MinReduce:      t.MinReduce,
			MaxReduce:      t.MaxReduce,
		},
		Action:    t.Action,
		Lookahead: t.Lookahead,
		Shift: marshaledOffsets{
			Offsets:    t.ShiftOffset,
			UseDefault: t.ShiftUseDefault,
			Min:        t.ShiftOffsetMin,
			Max:        t.ShiftOffsetMax,
		},
		Reduce: marshaledOffsets{
			Offsets:    t.ReduceOffset,
			UseDefault: t.ReduceUseDefault,
			Min:        t.ReduceOffsetMin,
			Max:        t.ReduceOffsetMax,
		},
		Default:  t.Default,
		Fallback: t.Fallback,
		Rules:    make([]marshaledRule, len(t.Rules)),
	}

	if t.HasWildcard {
		w := t.Wildcard
		mt.Wildcard = &w
	}

	for i := range t.Rules {
		mt.Rules[i] = marshaledRule{LHS: t.Rules[i].LHS, RHSLength: t.Rules[i].RHSLength}
		if i < len(t.RuleText) {
			mt.Rules[i].Text = t.RuleText[i]
		}
	}

	return mt
}

func (mt marshaledTables) toTables() parse.Tables {
	t := parse.Tables{
		InvalidSymbol:    mt.InvalidSymbol,
		NumStates:        mt.NumStates,
		TerminalCount:    mt.TerminalCount,
		MaxShift:         mt.Codes.MaxShift,
		MinShiftReduce:   mt.Codes.MinShiftReduce,
		MaxShiftReduce:   mt.Codes.MaxShiftReduce,
		ErrorAction:      mt.Codes.Error,
		AcceptAction:     mt.Codes.Accept,
		NoAction:         mt.Codes.NoAction,
		MinReduce:        mt.Codes.MinReduce,
		MaxReduce:        mt.Codes.MaxReduce,
		Action:           mt.Action,
		Lookahead:        mt.Lookahead,
		ShiftOffset:      mt.Shift.Offsets,
		ShiftUseDefault:  mt.Shift.UseDefault,
		ShiftOffsetMin:   mt.Shift.Min,
		ShiftOffsetMax:   mt.Shift.Max,
		ReduceOffset:     mt.Reduce.Offsets,
		ReduceUseDefault: mt.Reduce.UseDefault,
		ReduceOffsetMin:  mt.Reduce.Min,
		ReduceOffsetMax:  mt.Reduce.Max,
		Default:          mt.Default,
		SymbolNames:      mt.Symbols,
	}

	if len(mt.Fallback) > 0 {
		t.Fallback = mt.Fallback
	}

	if mt.Wildcard != nil {
		t.Wildcard = *mt.Wildcard
		t.HasWildcard = true
	}

	if len(mt.Rules) > 0 {
		t.Rules = make([]parse.RuleInfo, len(mt.Rules))
	}
	haveText := false
	for i := range mt.Rules {
		t.Rules[i] = parse.RuleInfo{LHS: mt.Rules[i].LHS, RHSLength: mt.Rules[i].RHSLength}
		if mt.Rules[i].Text != "" {
			haveText = true
		}
	}
	if haveText {
		t.RuleText = make([]string, len(mt.Rules))
		for i := range mt.Rules {
			t.RuleText[i] = mt.Rules[i].Text
		}
	}

	return t
}
