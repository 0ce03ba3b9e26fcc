// Package dao provides data access objects for use in the remora server.
package dao

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Store holds all the repositories.
type Store interface {
	Evaluations() EvaluationRepository
	Close() error
}

// EvaluationRepository stores the history of evaluated expressions.
type EvaluationRepository interface {
	// Create creates a new Evaluation. All attributes except for auto-generated
	// fields are taken from the provided Evaluation.
	Create(ctx context.Context, ev Evaluation) (Evaluation, error)
	GetByID(ctx context.Context, id uuid.UUID) (Evaluation, error)

	// GetAll returns every stored Evaluation, oldest first.
	GetAll(ctx context.Context) ([]Evaluation, error)
	Delete(ctx context.Context, id uuid.UUID) (Evaluation, error)
	Close() error
}

// Evaluation is a single expression that was run through the parser along with
// what came out of it.
type Evaluation struct {
	ID         uuid.UUID
	Expression string
	Result     int64

	// Trace is every trace line emitted by the parser while evaluating. It is
	// empty unless tracing was requested.
	Trace   []string
	Created time.Time
}
