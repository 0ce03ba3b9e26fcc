package parse

// Frame is one entry of the parse stack.
type Frame[S any] struct {
	// State is the automaton state the parser moved to when this frame was
	// pushed. It may be a shift-reduce code translated into the reduce range,
	// in which case the frame is reduced before any other symbol is read.
	State int

	// Code is the symbol code of the terminal or non-terminal on this frame.
	Code int

	// Value is the semantic value of the symbol.
	Value S
}

// stack is the parse stack. Frame 0 is the initial frame and is only ever
// removed by a reduce that accepts.
type stack[S any] struct {
	frames []Frame[S]
}

func (st *stack[S]) push(f Frame[S]) {
	st.frames = append(st.frames, f)
}

// pop removes the top n frames.
func (st *stack[S]) pop(n int) {
	var zero Frame[S]
	for i := len(st.frames) - n; i < len(st.frames); i++ {
		// clear the popped frames so their values can be collected
		st.frames[i] = zero
	}
	st.frames = st.frames[:len(st.frames)-n]
}

// peek returns the frame n below the top; peek(0) is the top frame.
func (st *stack[S]) peek(n int) Frame[S] {
	return st.frames[len(st.frames)-1-n]
}

// top returns the top n frames, in stack order.
func (st *stack[S]) top(n int) []Frame[S] {
	return st.frames[len(st.frames)-n:]
}

func (st *stack[S]) len() int {
	return len(st.frames)
}

func (st *stack[S]) copy() []Frame[S] {
	cp := make([]Frame[S], len(st.frames))
	copy(cp, st.frames)
	return cp
}
