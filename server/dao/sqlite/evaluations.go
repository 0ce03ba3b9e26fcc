package sqlite

import (
	"context"
	"database/sql"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/dekarrin/remora/server/dao"
	"github.com/dekarrin/rezi"
	"github.com/google/uuid"
)

// NewEvaluationsDBConn opens the database file at file and returns an
// EvaluationsDB that uses it alone.
func NewEvaluationsDBConn(file string) (*EvaluationsDB, error) {
	repo := &EvaluationsDB{}

	var err error
	repo.db, err = sql.Open("sqlite", file)
	if err != nil {
		return nil, wrapDBError(err)
	}

	return repo, repo.init()
}

type EvaluationsDB struct {
	db *sql.DB
}

func (repo *EvaluationsDB) init() error {
	stmt := `CREATE TABLE IF NOT EXISTS evaluations (
		id TEXT NOT NULL PRIMARY KEY,
		expression TEXT NOT NULL,
		result INTEGER NOT NULL,
		trace TEXT NOT NULL,
		created INTEGER NOT NULL
	);`
	_, err := repo.db.Exec(stmt)
	if err != nil {
		return wrapDBError(err)
	}
	return nil
}

func (repo *EvaluationsDB) Create(ctx context.Context, ev dao.Evaluation) (dao.Evaluation, error) {
	newUUID, err := uuid.NewRandom()
	if err != nil {
		return dao.Evaluation{}, fmt.Errorf("could not generate ID: %w", err)
	}

	stmt, err := repo.db.Prepare(`INSERT INTO evaluations (id, expression, result, trace, created) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return dao.Evaluation{}, wrapDBError(err)
	}
	defer stmt.Close()

	now := time.Now()

	_, err = stmt.ExecContext(ctx, newUUID.String(), ev.Expression, ev.Result, encTrace(ev.Trace), now.Unix())
	if err != nil {
		return dao.Evaluation{}, wrapDBError(err)
	}

	return repo.GetByID(ctx, newUUID)
}

func (repo *EvaluationsDB) GetAll(ctx context.Context) ([]dao.Evaluation, error) {
	rows, err := repo.db.QueryContext(ctx, `SELECT id, expression, result, trace, created FROM evaluations ORDER BY created, rowid;`)
	if err != nil {
		return nil, wrapDBError(err)
	}
	defer rows.Close()

	var all []dao.Evaluation

	for rows.Next() {
		var ev dao.Evaluation
		var id string
		var trace string
		var created int64
		err = rows.Scan(
			&id,
			&ev.Expression,
			&ev.Result,
			&trace,
			&created,
		)
		if err != nil {
			return nil, wrapDBError(err)
		}

		ev.ID, err = uuid.Parse(id)
		if err != nil {
			return all, fmt.Errorf("stored UUID %q is invalid", id)
		}
		ev.Trace, err = decTrace(trace)
		if err != nil {
			return all, fmt.Errorf("stored trace for %s is invalid: %w", id, err)
		}
		ev.Created = time.Unix(created, 0)

		all = append(all, ev)
	}

	if err := rows.Err(); err != nil {
		return all, wrapDBError(err)
	}

	return all, nil
}

func (repo *EvaluationsDB) GetByID(ctx context.Context, id uuid.UUID) (dao.Evaluation, error) {
	ev := dao.Evaluation{
		ID: id,
	}
	var trace string
	var created int64

	row := repo.db.QueryRowContext(ctx, `SELECT expression, result, trace, created FROM evaluations WHERE id = ?;`,
		id.String(),
	)
	err := row.Scan(
		&ev.Expression,
		&ev.Result,
		&trace,
		&created,
	)
	if err != nil {
		return ev, wrapDBError(err)
	}

	ev.Trace, err = decTrace(trace)
	if err != nil {
		return ev, fmt.Errorf("stored trace for %s is invalid: %w", id, err)
	}
	ev.Created = time.Unix(created, 0)

	return ev, nil
}

func (repo *EvaluationsDB) Delete(ctx context.Context, id uuid.UUID) (dao.Evaluation, error) {
	curVal, err := repo.GetByID(ctx, id)
	if err != nil {
		return curVal, err
	}

	res, err := repo.db.ExecContext(ctx, `DELETE FROM evaluations WHERE id = ?`, id.String())
	if err != nil {
		return curVal, wrapDBError(err)
	}
	rowsAff, err := res.RowsAffected()
	if err != nil {
		return curVal, wrapDBError(err)
	}
	if rowsAff < 1 {
		return curVal, dao.ErrNotFound
	}

	return curVal, nil
}

func (repo *EvaluationsDB) Close() error {
	return repo.db.Close()
}

// encTrace gives the REZI encoding of the trace lines as base64 text.
func encTrace(trace []string) string {
	data := rezi.EncInt(len(trace))
	for i := range trace {
		data = append(data, rezi.EncString(trace[i])...)
	}
	return base64.StdEncoding.EncodeToString(data)
}

func decTrace(s string) ([]string, error) {
	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, err
	}

	count, n, err := rezi.DecInt(data)
	if err != nil {
		return nil, fmt.Errorf("line count: %w", err)
	}
	data = data[n:]

	if count == 0 {
		return nil, nil
	}

	trace := make([]string, count)
	for i := 0; i < count; i++ {
		trace[i], n, err = rezi.DecString(data)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i, err)
		}
		data = data[n:]
	}

	return trace, nil
}
