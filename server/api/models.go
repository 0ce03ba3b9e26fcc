package api

import (
	"time"

	"github.com/dekarrin/remora/server/dao"
)

// InfoModel is the body of a response to GET /info.
type InfoModel struct {
	Version struct {
		Remora      string `json:"remora"`
		TableFormat string `json:"table_format"`
	} `json:"version"`

	// Grammar is the number of states, symbols, and rules of the grammar that
	// evaluations are parsed with.
	Grammar struct {
		States  int `json:"states"`
		Symbols int `json:"symbols"`
		Rules   int `json:"rules"`
	} `json:"grammar"`
}

// EvaluationRequest is the body of a request to POST /evaluations.
type EvaluationRequest struct {
	Expression string `json:"expression"`
	Trace      bool   `json:"trace"`
}

// EvaluationModel is a stored evaluation as returned by the API.
type EvaluationModel struct {
	URI        string   `json:"uri"`
	ID         string   `json:"id"`
	Expression string   `json:"expression"`
	Result     int64    `json:"result"`
	Trace      []string `json:"trace,omitempty"`
	Created    string   `json:"created"`
}

func evaluationModel(ev dao.Evaluation) EvaluationModel {
	return EvaluationModel{
		URI:        PathPrefix + "/evaluations/" + ev.ID.String(),
		ID:         ev.ID.String(),
		Expression: ev.Expression,
		Result:     ev.Result,
		Trace:      ev.Trace,
		Created:    ev.Created.Format(time.RFC3339),
	}
}
