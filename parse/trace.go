package parse

import (
	"fmt"
	"strings"
)

func (p *Parser[T, C, S, R]) notifyTraceFn(fn func() string) {
	if p.trace != nil {
		p.trace(fn())
	}
}

func (p *Parser[T, C, S, R]) notifyTrace(fmtStr string, args ...interface{}) {
	p.notifyTraceFn(func() string { return fmt.Sprintf(fmtStr, args...) })
}

func (p *Parser[T, C, S, R]) notifyInput(code int) {
	p.notifyTraceFn(func() string { return "Input: " + p.tables.SymbolName(code) })
}

func (p *Parser[T, C, S, R]) notifySubstitution(sub Substitution) {
	p.notifyTraceFn(func() string {
		kind := "Fallback"
		if sub.Wildcard {
			kind = "Wildcard"
		}
		return fmt.Sprintf("%s: %s => %s", kind, p.tables.SymbolName(sub.From), p.tables.SymbolName(sub.To))
	})
}

func (p *Parser[T, C, S, R]) notifyShift(code, act int) {
	p.notifyTraceFn(func() string {
		return fmt.Sprintf("Shift: %s, %s", p.tables.SymbolName(code), p.describeGoto(act))
	})
}

func (p *Parser[T, C, S, R]) notifyReduce(rule, act int) {
	p.notifyTraceFn(func() string {
		if act == p.tables.AcceptAction {
			return fmt.Sprintf("Reduce: [%s], accept", p.tables.RuleString(rule))
		}
		return fmt.Sprintf("Reduce: [%s], %s", p.tables.RuleString(rule), p.describeGoto(act))
	})
}

func (p *Parser[T, C, S, R]) describeGoto(act int) string {
	if act > p.tables.MaxShift {
		return fmt.Sprintf("then reduce by rule %d", act-p.tables.MinShiftReduce)
	}
	return fmt.Sprintf("go to state %d", act)
}

func (p *Parser[T, C, S, R]) notifyStack() {
	p.notifyTraceFn(func() string {
		var sb strings.Builder
		sb.WriteString("Stack: [")
		// the initial frame holds no symbol
		for i := 1; i < len(p.stack.frames); i++ {
			if i > 1 {
				sb.WriteRune(' ')
			}
			sb.WriteString(p.tables.SymbolName(p.stack.frames[i].Code))
		}
		sb.WriteRune(']')
		return sb.String()
	})
}
