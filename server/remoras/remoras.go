// Package remoras has services for interacting with the remora server backend
// decoupled from the API that accesses it.
package remoras

import (
	"context"
	"errors"
	"strings"

	"github.com/dekarrin/remora/internal/calc"
	"github.com/dekarrin/remora/parse"
	"github.com/dekarrin/remora/server/dao"
	"github.com/dekarrin/remora/server/serr"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Service is a service for evaluating expressions and keeping a history of
// them. It performs the actions requested and makes calls to server
// persistence to preserve the backend state.
//
// The zero-value of Service is not ready to be used; assign a valid DAO store
// to DB before attempting to use it.
type Service struct {

	// DB is the persistence store of the service.
	DB dao.Store

	// Parser holds the settings every evaluation's parser is created with. Its
	// Trace listener is ignored; traces are captured per evaluation.
	Parser parse.Options

	// Log receives a line per evaluation, and at debug level a line per parse
	// step. Every line carries the ID of the parser that did the evaluation.
	// If nil, nothing is logged.
	Log *zap.Logger
}

func (svc Service) logger() *zap.Logger {
	if svc.Log == nil {
		return zap.NewNop()
	}
	return svc.Log
}

// Evaluate parses and evaluates expr and stores the outcome. If trace is set,
// every trace line the parser emits is kept with the stored Evaluation.
// Expressions that fail to evaluate are not stored.
//
// The returned error, if non-nil, will return true for various calls to
// errors.Is depending on what caused the error. If expr is blank, it will
// match serr.ErrBadArgument. If expr could not be evaluated, it will match
// serr.ErrEvaluation as well as the error the parser gave, which can be
// examined with errors.As. If the error occured due to an unexpected problem
// with the DB, it will match serr.ErrDB.
func (svc Service) Evaluate(ctx context.Context, expr string, trace bool) (dao.Evaluation, error) {
	if strings.TrimSpace(expr) == "" {
		return dao.Evaluation{}, serr.New("expression cannot be blank", serr.ErrBadArgument)
	}

	tokens, err := calc.Lex(expr)
	if err != nil {
		svc.logger().Debug("expression not evaluated", zap.Error(err))
		return dao.Evaluation{}, serr.New("", err, serr.ErrEvaluation)
	}

	opts := svc.Parser
	opts.Trace = nil
	p, err := calc.NewParser(opts)
	if err != nil {
		return dao.Evaluation{}, serr.New("could not create parser", err)
	}
	log := svc.logger().With(zap.Stringer("parser", p.ID()))

	var lines []string
	debug := log.Core().Enabled(zapcore.DebugLevel)
	if trace || debug {
		p.RegisterTraceListener(func(s string) {
			if trace {
				lines = append(lines, s)
			}
			if debug {
				log.Debug("parse step", zap.String("step", s))
			}
		})
	}

	result, err := p.Parse(tokens, calc.CodeOf)
	if err != nil {
		log.Debug("expression not evaluated", zap.Error(err))
		return dao.Evaluation{}, serr.New("", err, serr.ErrEvaluation)
	}
	log.Debug("expression evaluated", zap.Int64("result", result))

	ev, err := svc.DB.Evaluations().Create(ctx, dao.Evaluation{
		Expression: expr,
		Result:     result,
		Trace:      lines,
	})
	if err != nil {
		if errors.Is(err, dao.ErrConstraintViolation) {
			return dao.Evaluation{}, serr.New("an evaluation with that ID already exists", serr.ErrAlreadyExists)
		}
		return dao.Evaluation{}, serr.WrapDB("could not store evaluation", err)
	}

	return ev, nil
}

// GetAllEvaluations returns all evaluations currently in persistence, oldest
// first.
func (svc Service) GetAllEvaluations(ctx context.Context) ([]dao.Evaluation, error) {
	evs, err := svc.DB.Evaluations().GetAll(ctx)
	if err != nil {
		return nil, serr.WrapDB("", err)
	}

	return evs, nil
}

// GetEvaluation returns the evaluation with the given ID.
//
// The returned error, if non-nil, will return true for various calls to
// errors.Is depending on what caused the error. If no evaluation with that ID
// exists, it will match serr.ErrNotFound. If the error occured due to an
// unexpected problem with the DB, it will match serr.ErrDB. Finally, if there
// is an issue with one of the arguments, it will match serr.ErrBadArgument.
func (svc Service) GetEvaluation(ctx context.Context, id string) (dao.Evaluation, error) {
	uuidID, err := uuid.Parse(id)
	if err != nil {
		return dao.Evaluation{}, serr.New("ID is not valid", serr.ErrBadArgument)
	}

	ev, err := svc.DB.Evaluations().GetByID(ctx, uuidID)
	if err != nil {
		if errors.Is(err, dao.ErrNotFound) {
			return dao.Evaluation{}, serr.ErrNotFound
		}
		return dao.Evaluation{}, serr.WrapDB("could not get evaluation", err)
	}

	return ev, nil
}

// DeleteEvaluation deletes the evaluation with the given ID. It returns the
// deleted evaluation just after it was deleted.
//
// The returned error, if non-nil, will return true for various calls to
// errors.Is depending on what caused the error. If no evaluation with that ID
// exists, it will match serr.ErrNotFound. If the error occured due to an
// unexpected problem with the DB, it will match serr.ErrDB. Finally, if there
// is an issue with one of the arguments, it will match serr.ErrBadArgument.
func (svc Service) DeleteEvaluation(ctx context.Context, id string) (dao.Evaluation, error) {
	uuidID, err := uuid.Parse(id)
	if err != nil {
		return dao.Evaluation{}, serr.New("ID is not valid", serr.ErrBadArgument)
	}

	ev, err := svc.DB.Evaluations().Delete(ctx, uuidID)
	if err != nil {
		if errors.Is(err, dao.ErrNotFound) {
			return dao.Evaluation{}, serr.ErrNotFound
		}
		return dao.Evaluation{}, serr.WrapDB("could not delete evaluation", err)
	}

	return ev, nil
}
