package inmem

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dekarrin/remora/server/dao"
	"github.com/google/uuid"
)

func NewEvaluationsRepository() *InMemoryEvaluationsRepository {
	return &InMemoryEvaluationsRepository{
		evals: make(map[uuid.UUID]dao.Evaluation),
	}
}

type InMemoryEvaluationsRepository struct {
	mtx   sync.RWMutex
	evals map[uuid.UUID]dao.Evaluation

	// insertion order, for GetAll.
	order []uuid.UUID
}

func (imer *InMemoryEvaluationsRepository) Close() error {
	return nil
}

func (imer *InMemoryEvaluationsRepository) Create(ctx context.Context, ev dao.Evaluation) (dao.Evaluation, error) {
	newUUID, err := uuid.NewRandom()
	if err != nil {
		return dao.Evaluation{}, fmt.Errorf("could not generate ID: %w", err)
	}

	ev.ID = newUUID
	ev.Created = time.Now()
	ev.Trace = copyTrace(ev.Trace)

	imer.mtx.Lock()
	defer imer.mtx.Unlock()

	if _, ok := imer.evals[ev.ID]; ok {
		return dao.Evaluation{}, dao.ErrConstraintViolation
	}

	imer.evals[ev.ID] = ev
	imer.order = append(imer.order, ev.ID)

	return ev, nil
}

func (imer *InMemoryEvaluationsRepository) GetAll(ctx context.Context) ([]dao.Evaluation, error) {
	imer.mtx.RLock()
	defer imer.mtx.RUnlock()

	all := make([]dao.Evaluation, len(imer.order))
	for i := range imer.order {
		all[i] = imer.evals[imer.order[i]]
	}

	return all, nil
}

func (imer *InMemoryEvaluationsRepository) GetByID(ctx context.Context, id uuid.UUID) (dao.Evaluation, error) {
	imer.mtx.RLock()
	defer imer.mtx.RUnlock()

	ev, ok := imer.evals[id]
	if !ok {
		return dao.Evaluation{}, dao.ErrNotFound
	}

	return ev, nil
}

func (imer *InMemoryEvaluationsRepository) Delete(ctx context.Context, id uuid.UUID) (dao.Evaluation, error) {
	imer.mtx.Lock()
	defer imer.mtx.Unlock()

	ev, ok := imer.evals[id]
	if !ok {
		return dao.Evaluation{}, dao.ErrNotFound
	}

	delete(imer.evals, id)
	for i := range imer.order {
		if imer.order[i] == id {
			imer.order = append(imer.order[:i], imer.order[i+1:]...)
			break
		}
	}

	return ev, nil
}

func copyTrace(trace []string) []string {
	if len(trace) == 0 {
		return nil
	}
	cp := make([]string, len(trace))
	copy(cp, trace)
	return cp
}
