package parse

import "fmt"

// ActionType is the kind of action that a raw action code from a Tables
// represents.
type ActionType int

const (
	ActionShift ActionType = iota
	ActionShiftReduce
	ActionReduce
	ActionAccept
	ActionError
	ActionNone
)

func (at ActionType) String() string {
	switch at {
	case ActionShift:
		return "shift"
	case ActionShiftReduce:
		return "shift-reduce"
	case ActionReduce:
		return "reduce"
	case ActionAccept:
		return "accept"
	case ActionError:
		return "error"
	case ActionNone:
		return "none"
	default:
		return fmt.Sprintf("ActionType(%d)", int(at))
	}
}

// Action is a decoded action code. Tables store actions as plain integers
// partitioned into ranges; Decode turns one into an Action.
type Action struct {
	Type ActionType

	// Code is the raw action code that was decoded.
	Code int

	// State is the state to go to. It is used only when Type is ActionShift.
	State int

	// Rule is the number of the rule to reduce by. It is used when Type is
	// ActionShiftReduce or ActionReduce.
	Rule int
}

func (act Action) String() string {
	switch act.Type {
	case ActionAccept:
		return "ACTION<accept>"
	case ActionError:
		return "ACTION<error>"
	case ActionShift:
		return fmt.Sprintf("ACTION<shift %d>", act.State)
	case ActionShiftReduce:
		return fmt.Sprintf("ACTION<shift-reduce %d>", act.Rule)
	case ActionReduce:
		return fmt.Sprintf("ACTION<reduce %d>", act.Rule)
	default:
		return "ACTION<none>"
	}
}

// Short gives the compact form of the action used in table dumps: "s3" for a
// shift to state 3, "s/r4" for a shift followed immediately by a reduce of rule
// 4, "r4" for a reduce of rule 4, "acc" for accept, and an empty string for
// error and no-action.
func (act Action) Short() string {
	switch act.Type {
	case ActionAccept:
		return "acc"
	case ActionShift:
		return fmt.Sprintf("s%d", act.State)
	case ActionShiftReduce:
		return fmt.Sprintf("s/r%d", act.Rule)
	case ActionReduce:
		return fmt.Sprintf("r%d", act.Rule)
	default:
		return ""
	}
}

// Decode classifies the raw action code into an Action.
func (t *Tables) Decode(code int) Action {
	act := Action{Code: code, Type: ActionNone}

	switch {
	case code < 0:
		// not a valid code; leave as none
	case code <= t.MaxShift:
		act.Type = ActionShift
		act.State = code
	case code >= t.MinShiftReduce && code <= t.MaxShiftReduce:
		act.Type = ActionShiftReduce
		act.Rule = code - t.MinShiftReduce
	case code == t.ErrorAction:
		act.Type = ActionError
	case code == t.AcceptAction:
		act.Type = ActionAccept
	case code >= t.MinReduce && code <= t.MaxReduce:
		act.Type = ActionReduce
		act.Rule = code - t.MinReduce
	}

	return act
}
