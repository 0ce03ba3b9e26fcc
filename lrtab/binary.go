package lrtab

import (
	"fmt"

	"github.com/dekarrin/rezi"
	"github.com/dekarrin/remora/parse"
)

// magic begins every binary table file.
const magic = "LRTAB"

// MarshalBinary encodes the file in the compact binary format.
func (f File) MarshalBinary() ([]byte, error) {
	var data []byte

	data = append(data, rezi.EncString(magic)...)
	data = append(data, rezi.EncString(f.marshal().Format)...)
	data = append(data, rezi.EncString(f.Grammar)...)
	data = append(data, encTables(f.Tables)...)

	return data, nil
}

// UnmarshalBinary decodes the file from the compact binary format.
func (f *File) UnmarshalBinary(data []byte) error {
	var err error
	var n int
	var m string

	m, n, err = rezi.DecString(data)
	if err != nil {
		return fmt.Errorf("header: %w", err)
	}
	if m != magic {
		return ErrBadMagic
	}
	data = data[n:]

	f.Format, n, err = rezi.DecString(data)
	if err != nil {
		return fmt.Errorf("format: %w", err)
	}
	data = data[n:]

	f.Grammar, n, err = rezi.DecString(data)
	if err != nil {
		return fmt.Errorf("grammar: %w", err)
	}
	data = data[n:]

	f.Tables, _, err = decTables(data)
	if err != nil {
		return fmt.Errorf("tables: %w", err)
	}

	return nil
}

func encTables(t parse.Tables) []byte {
	var data []byte

	for _, v := range []int{
		t.InvalidSymbol, t.NumStates, t.TerminalCount,
		t.MaxShift, t.MinShiftReduce, t.MaxShiftReduce,
		t.ErrorAction, t.AcceptAction, t.NoAction,
		t.MinReduce, t.MaxReduce,
		t.ShiftUseDefault, t.ShiftOffsetMin, t.ShiftOffsetMax,
		t.ReduceUseDefault, t.ReduceOffsetMin, t.ReduceOffsetMax,
		t.Wildcard,
	} {
		data = append(data, rezi.EncInt(v)...)
	}
	data = append(data, rezi.EncBool(t.HasWildcard)...)

	for _, sl := range [][]int{
		t.Action, t.Lookahead,
		t.ShiftOffset, t.ReduceOffset,
		t.Default, t.Fallback,
	} {
		data = append(data, encIntSlice(sl)...)
	}

	data = append(data, rezi.EncInt(len(t.Rules))...)
	for i := range t.Rules {
		data = append(data, rezi.EncInt(t.Rules[i].LHS)...)
		data = append(data, rezi.EncInt(t.Rules[i].RHSLength)...)
	}

	data = append(data, encStringSlice(t.SymbolNames)...)
	data = append(data, encStringSlice(t.RuleText)...)

	return data
}

func decTables(data []byte) (parse.Tables, int, error) {
	var t parse.Tables
	var total int

	for _, dest := range []*int{
		&t.InvalidSymbol, &t.NumStates, &t.TerminalCount,
		&t.MaxShift, &t.MinShiftReduce, &t.MaxShiftReduce,
		&t.ErrorAction, &t.AcceptAction, &t.NoAction,
		&t.MinReduce, &t.MaxReduce,
		&t.ShiftUseDefault, &t.ShiftOffsetMin, &t.ShiftOffsetMax,
		&t.ReduceUseDefault, &t.ReduceOffsetMin, &t.ReduceOffsetMax,
		&t.Wildcard,
	} {
		v, n, err := rezi.DecInt(data[total:])
		if err != nil {
			return t, total, err
		}
		*dest = v
		total += n
	}

	hasWildcard, n, err := rezi.DecBool(data[total:])
	if err != nil {
		return t, total, err
	}
	t.HasWildcard = hasWildcard
	total += n

	for _, dest := range []*[]int{
		&t.Action, &t.Lookahead,
		&t.ShiftOffset, &t.ReduceOffset,
		&t.Default, &t.Fallback,
	} {
		sl, n, err := decIntSlice(data[total:])
		if err != nil {
			return t, total, err
		}
		*dest = sl
		total += n
	}

	ruleCount, n, err := rezi.DecInt(data[total:])
	if err != nil {
		return t, total, err
	}
	total += n
	if ruleCount < 0 {
		return t, total, fmt.Errorf("rule count is negative")
	}
	if ruleCount > len(data)-total {
		return t, total, fmt.Errorf("rule count %d is more than the remaining data can hold", ruleCount)
	}
	if ruleCount > 0 {
		t.Rules = make([]parse.RuleInfo, ruleCount)
	}
	for i := 0; i < ruleCount; i++ {
		t.Rules[i].LHS, n, err = rezi.DecInt(data[total:])
		if err != nil {
			return t, total, err
		}
		total += n
		t.Rules[i].RHSLength, n, err = rezi.DecInt(data[total:])
		if err != nil {
			return t, total, err
		}
		total += n
	}

	t.SymbolNames, n, err = decStringSlice(data[total:])
	if err != nil {
		return t, total, err
	}
	total += n

	t.RuleText, n, err = decStringSlice(data[total:])
	if err != nil {
		return t, total, err
	}
	total += n

	return t, total, nil
}

func encIntSlice(sl []int) []byte {
	data := rezi.EncInt(len(sl))
	for _, v := range sl {
		data = append(data, rezi.EncInt(v)...)
	}
	return data
}

// decIntSlice decodes a slice of ints. A slice with no elements is decoded as
// nil.
func decIntSlice(data []byte) ([]int, int, error) {
	count, total, err := rezi.DecInt(data)
	if err != nil {
		return nil, 0, err
	}
	if count < 0 {
		return nil, total, fmt.Errorf("slice length is negative")
	}
	// every element takes at least one byte
	if count > len(data)-total {
		return nil, total, fmt.Errorf("slice length %d is more than the remaining data can hold", count)
	}

	var sl []int
	if count > 0 {
		sl = make([]int, count)
	}
	for i := 0; i < count; i++ {
		v, n, err := rezi.DecInt(data[total:])
		if err != nil {
			return nil, total, fmt.Errorf("element %d: %w", i, err)
		}
		sl[i] = v
		total += n
	}

	return sl, total, nil
}

func encStringSlice(sl []string) []byte {
	data := rezi.EncInt(len(sl))
	for _, s := range sl {
		data = append(data, rezi.EncString(s)...)
	}
	return data
}

// decStringSlice decodes a slice of strings. A slice with no elements is
// decoded as nil.
func decStringSlice(data []byte) ([]string, int, error) {
	count, total, err := rezi.DecInt(data)
	if err != nil {
		return nil, 0, err
	}
	if count < 0 {
		return nil, total, fmt.Errorf("slice length is negative")
	}
	// every element takes at least one byte
	if count > len(data)-total {
		return nil, total, fmt.Errorf("slice length %d is more than the remaining data can hold", count)
	}

	var sl []string
	if count > 0 {
		sl = make([]string, count)
	}
	for i := 0; i < count; i++ {
		s, n, err := rezi.DecString(data[total:])
		if err != nil {
			return nil, total, fmt.Errorf("element %d: %w", i, err)
		}
		sl[i] = s
		total += n
	}

	return sl, total, nil
}
