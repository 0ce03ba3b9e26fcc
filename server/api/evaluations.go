package api

import (
	"errors"
	"net/http"

	"github.com/dekarrin/remora/internal/util"
	"github.com/dekarrin/remora/server/result"
	"github.com/dekarrin/remora/server/serr"
)

// maxLoggedExpr is the longest an expression can be before it is cut short in
// log messages.
const maxLoggedExpr = 64

// positioned is implemented by evaluation errors that know where in the
// expression they occured.
type positioned interface {
	Line() int
	Position() int
}

// HTTPCreateEvaluation returns a HandlerFunc that evaluates an expression and
// stores the result.
func (api API) HTTPCreateEvaluation() http.HandlerFunc {
	return api.httpEndpoint(api.epCreateEvaluation)
}

// POST /evaluations: evaluate an expression.
func (api API) epCreateEvaluation(req *http.Request) result.Result {
	var evalReq EvaluationRequest
	err := parseJSON(req, &evalReq)
	if err != nil {
		return result.BadRequest(err.Error(), err.Error())
	}

	ev, err := api.Backend.Evaluate(req.Context(), evalReq.Expression, evalReq.Trace)
	if err != nil {
		if errors.Is(err, serr.ErrEvaluation) {
			var line, pos int
			var posErr positioned
			if errors.As(err, &posErr) {
				line, pos = posErr.Line(), posErr.Position()
			}
			return result.BadExpression(err.Error(), line, pos, "evaluate %q: %s", util.TruncateWithEllipses(evalReq.Expression, maxLoggedExpr), err.Error())
		} else if errors.Is(err, serr.ErrBadArgument) {
			return result.BadRequest(err.Error(), err.Error())
		}
		return result.InternalServerError(err.Error())
	}

	return result.Created(evaluationModel(ev), "evaluation %s created", ev.ID)
}

// HTTPGetAllEvaluations returns a HandlerFunc that retrieves every stored
// evaluation.
func (api API) HTTPGetAllEvaluations() http.HandlerFunc {
	return api.httpEndpoint(api.epGetAllEvaluations)
}

// GET /evaluations: get all evaluations.
func (api API) epGetAllEvaluations(req *http.Request) result.Result {
	evs, err := api.Backend.GetAllEvaluations(req.Context())
	if err != nil {
		return result.InternalServerError(err.Error())
	}

	resp := make([]EvaluationModel, len(evs))
	for i := range evs {
		resp[i] = evaluationModel(evs[i])
	}

	return result.OK(resp, "got all evaluations")
}

// HTTPGetEvaluation returns a HandlerFunc that retrieves a single evaluation.
// The ID of the evaluation must be in the "id" URL parameter.
func (api API) HTTPGetEvaluation() http.HandlerFunc {
	return api.httpEndpoint(api.epGetEvaluation)
}

// GET /evaluations/{id}: get a single evaluation.
func (api API) epGetEvaluation(req *http.Request) result.Result {
	id := requireIDParam(req)

	ev, err := api.Backend.GetEvaluation(req.Context(), id.String())
	if err != nil {
		if errors.Is(err, serr.ErrNotFound) {
			return result.NotFound()
		}
		return result.InternalServerError("retrieve evaluation %s: %s", id, err.Error())
	}

	return result.OK(evaluationModel(ev), "got evaluation %s", id)
}

// HTTPDeleteEvaluation returns a HandlerFunc that deletes a single
// evaluation. The ID of the evaluation must be in the "id" URL parameter.
func (api API) HTTPDeleteEvaluation() http.HandlerFunc {
	return api.httpEndpoint(api.epDeleteEvaluation)
}

// DELETE /evaluations/{id}: delete a single evaluation.
func (api API) epDeleteEvaluation(req *http.Request) result.Result {
	id := requireIDParam(req)

	ev, err := api.Backend.DeleteEvaluation(req.Context(), id.String())
	if err != nil {
		if errors.Is(err, serr.ErrNotFound) {
			return result.NotFound()
		}
		return result.InternalServerError("delete evaluation %s: %s", id, err.Error())
	}

	return result.OK(evaluationModel(ev), "deleted evaluation %s", id)
}
