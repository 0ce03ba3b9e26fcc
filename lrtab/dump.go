package lrtab

import (
	"fmt"
	"io"

	"github.com/dekarrin/remora/parse"
	"github.com/dekarrin/rosed"
)

// Dump writes a human-readable description of the tables to w: a summary of
// their size, the grammar's rules, and the full table of actions and gotos of
// every state.
func Dump(w io.Writer, t *parse.Tables) error {
	summary := fmt.Sprintf("%d states, %d symbols (%d terminals), %d rules, %d action slots\n",
		t.NumStates, t.SymbolCount(), t.TerminalCount, len(t.Rules), len(t.Action))

	if t.HasWildcard {
		summary += fmt.Sprintf("wildcard: %s\n", t.SymbolName(t.Wildcard))
	}
	for sym, fb := range t.Fallback {
		if fb != 0 {
			summary += fmt.Sprintf("fallback: %s => %s\n", t.SymbolName(sym), t.SymbolName(fb))
		}
	}

	data := [][]string{{"Rule", "LHS", "Length", "Text"}}
	for r, info := range t.Rules {
		data = append(data, []string{
			fmt.Sprintf("%d", r),
			t.SymbolName(info.LHS),
			fmt.Sprintf("%d", info.RHSLength),
			t.RuleString(r),
		})
	}

	rules := rosed.Edit("").
		InsertTableOpts(0, data, 80, rosed.Options{
			TableHeaders:             true,
			NoTrailingLineSeparators: true,
		}).
		String()

	if _, err := fmt.Fprintf(w, "%s\n%s\n\n%s\n", summary, rules, t.String()); err != nil {
		return err
	}

	return nil
}
