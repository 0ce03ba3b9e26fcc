package parse

// TokenCode is the constraint for the type that a grammar uses for its
// terminal codes. A token code converts directly to the symbol code of the
// terminal it names.
type TokenCode interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 | ~uint8 | ~uint16 | ~uint32
}

// Grammar is everything a Parser needs to know about a particular grammar. A
// grammar unit builds one of these once and passes it to New for each Parser
// it wants.
//
// T is the type of tokens passed to Consume, C is the type of their codes, S
// is the type of the semantic value carried by every frame of the stack, and R
// is the type of the final result of a parse.
type Grammar[T any, C TokenCode, S any, R any] struct {
	Tables *Tables

	// Symbol converts a token into the semantic value that is pushed when the
	// token is shifted.
	Symbol func(tok T) S

	// Action runs the semantic action for rule. It is given the frames of the
	// rule's right-hand side, leftmost first, while they are still on the
	// stack, and returns the value of the rule's left-hand side. A non-nil
	// error aborts the parse and is returned as-is to the caller.
	Action func(rule int, rhs []Frame[S]) (S, error)

	// Result extracts the final result from the value of the start symbol.
	Result func(sym S) R
}
