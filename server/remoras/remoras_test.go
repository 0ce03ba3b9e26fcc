package remoras

import (
	"context"
	"errors"
	"testing"

	"github.com/dekarrin/remora/internal/calc"
	"github.com/dekarrin/remora/parse"
	"github.com/dekarrin/remora/server/dao/inmem"
	"github.com/dekarrin/remora/server/serr"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newTestService() Service {
	return Service{DB: inmem.NewDatastore()}
}

func Test_Service_Evaluate(t *testing.T) {
	testCases := []struct {
		name        string
		expr        string
		trace       bool
		maxDepth    int
		expect      int64
		expectTrace bool
		expectIs    []error
	}{
		{name: "simple", expr: "2 + 3 * 4", expect: 14},
		{name: "with trace", expr: "1 + 2", trace: true, expect: 3, expectTrace: true},
		{name: "blank", expr: "  \n", expectIs: []error{serr.ErrBadArgument}},
		{name: "syntax error", expr: "1 2", expectIs: []error{serr.ErrEvaluation, parse.ErrSyntax}},
		{name: "divide by zero", expr: "1 / 0", expectIs: []error{serr.ErrEvaluation, calc.ErrDivideByZero}},
		{name: "bad token", expr: "1 & 2", expectIs: []error{serr.ErrEvaluation, calc.ErrBadToken}},
		{name: "stack overflow", expr: "((((1))))", maxDepth: 4, expectIs: []error{serr.ErrEvaluation, parse.ErrStackOverflow}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)
			svc := newTestService()
			svc.Parser.MaxStackDepth = tc.maxDepth

			actual, err := svc.Evaluate(context.Background(), tc.expr, tc.trace)
			if tc.expectIs != nil {
				for _, target := range tc.expectIs {
					assert.ErrorIs(err, target)
				}

				all, _ := svc.GetAllEvaluations(context.Background())
				assert.Empty(all)
				return
			}
			if !assert.NoError(err) {
				return
			}

			assert.Equal(tc.expect, actual.Result)
			assert.Equal(tc.expr, actual.Expression)
			if tc.expectTrace {
				assert.NotEmpty(actual.Trace)
				assert.Equal("Input: NUM", actual.Trace[0])
			} else {
				assert.Empty(actual.Trace)
			}
		})
	}
}

func Test_Service_Evaluate_KeepsSyntaxPosition(t *testing.T) {
	assert := assert.New(t)
	svc := newTestService()

	_, err := svc.Evaluate(context.Background(), "1 +\n+", false)

	var synErr *parse.SyntaxError
	if assert.True(errors.As(err, &synErr)) {
		assert.Equal(2, synErr.Line())
		assert.Equal(1, synErr.Position())
	}
}

func Test_Service_GetEvaluation(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	svc := newTestService()

	created, err := svc.Evaluate(ctx, "6 / 3", false)
	require.NoError(t, err)

	actual, err := svc.GetEvaluation(ctx, created.ID.String())
	assert.NoError(err)
	assert.Equal(created, actual)

	_, err = svc.GetEvaluation(ctx, "not-an-id")
	assert.ErrorIs(err, serr.ErrBadArgument)

	_, err = svc.GetEvaluation(ctx, uuid.NewString())
	assert.ErrorIs(err, serr.ErrNotFound)
}

func Test_Service_DeleteEvaluation(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	svc := newTestService()

	created, err := svc.Evaluate(ctx, "9", false)
	require.NoError(t, err)

	deleted, err := svc.DeleteEvaluation(ctx, created.ID.String())
	assert.NoError(err)
	assert.Equal(created.ID, deleted.ID)

	_, err = svc.DeleteEvaluation(ctx, created.ID.String())
	assert.ErrorIs(err, serr.ErrNotFound)
}

func Test_Service_Evaluate_LogsParserID(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	core, logs := observer.New(zapcore.DebugLevel)
	svc := newTestService()
	svc.Log = zap.New(core)

	_, err := svc.Evaluate(ctx, "1 + 2", false)
	require.NoError(t, err)
	firstRun := logs.TakeAll()

	_, err = svc.Evaluate(ctx, "1 +", false)
	require.Error(t, err)
	secondRun := logs.TakeAll()

	parserIDs := func(entries []observer.LoggedEntry) map[string]bool {
		ids := map[string]bool{}
		for _, e := range entries {
			id, ok := e.ContextMap()["parser"].(string)
			if assert.True(ok, "entry %q has no parser ID", e.Message) {
				ids[id] = true
			}
		}
		return ids
	}

	// every step of one evaluation is logged under one parser ID
	firstIDs := parserIDs(firstRun)
	secondIDs := parserIDs(secondRun)
	assert.Len(firstIDs, 1)
	assert.Len(secondIDs, 1)
	assert.NotEqual(firstIDs, secondIDs)

	var steps []string
	for _, e := range firstRun {
		if e.Message == "parse step" {
			steps = append(steps, e.ContextMap()["step"].(string))
		}
	}
	if assert.NotEmpty(steps) {
		assert.Equal("Input: NUM", steps[0])
	}
	assert.Equal("expression evaluated", firstRun[len(firstRun)-1].Message)
	assert.Equal("expression not evaluated", secondRun[len(secondRun)-1].Message)
}
