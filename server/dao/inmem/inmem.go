// Package inmem provides a dao.Store that keeps everything in memory. Nothing
// survives a restart.
package inmem

import (
	"github.com/dekarrin/remora/server/dao"
)

type store struct {
	evals *InMemoryEvaluationsRepository
}

func NewDatastore() dao.Store {
	return &store{
		evals: NewEvaluationsRepository(),
	}
}

func (s *store) Evaluations() dao.EvaluationRepository {
	return s.evals
}

func (s *store) Close() error {
	return s.evals.Close()
}
