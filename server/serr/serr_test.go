package serr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Error_Error(t *testing.T) {
	testCases := []struct {
		name   string
		err    Error
		expect string
	}{
		{name: "message only", err: New("bad thing"), expect: "bad thing"},
		{name: "cause only", err: New("", ErrNotFound), expect: ErrNotFound.Error()},
		{name: "message and cause", err: New("get evaluation", ErrNotFound), expect: "get evaluation: " + ErrNotFound.Error()},
		{name: "empty", err: Error{}, expect: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expect, tc.err.Error())
		})
	}
}

func Test_Error_Is(t *testing.T) {
	assert := assert.New(t)

	dbErr := fmt.Errorf("disk on fire")
	err := WrapDB("could not save", dbErr)

	assert.ErrorIs(err, ErrDB)
	assert.ErrorIs(err, dbErr)
	assert.NotErrorIs(err, ErrNotFound)
	assert.ErrorIs(err, WrapDB("could not save", dbErr))
	assert.Equal("could not save: disk on fire", err.Error())
}

type positionedError struct{ line int }

func (pe *positionedError) Error() string { return "positioned" }

func Test_Error_As(t *testing.T) {
	assert := assert.New(t)

	err := error(New("evaluate", &positionedError{line: 3}, ErrEvaluation))

	var pe *positionedError
	if assert.True(errors.As(err, &pe)) {
		assert.Equal(3, pe.line)
	}
	assert.ErrorIs(err, ErrEvaluation)
}
