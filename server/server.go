// Package server provides an HTTP REST server that evaluates calculator
// expressions and keeps a history of them.
//
//	POST   /api/v1/evaluations       - evaluate an expression and store it
//	GET    /api/v1/evaluations       - get all stored evaluations
//	GET    /api/v1/evaluations/{id}  - get a stored evaluation
//	DELETE /api/v1/evaluations/{id}  - delete a stored evaluation
//	GET    /api/v1/info              - get version info on the server
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/dekarrin/remora/server/api"
	"github.com/dekarrin/remora/server/dao"
	"github.com/dekarrin/remora/server/remoras"
	"go.uber.org/zap"
)

// RemoraServer is an HTTP REST server that evaluates expressions. The
// zero-value of a RemoraServer should not be used directly; call New() to get
// one ready for use.
type RemoraServer struct {
	router http.Handler
	db     dao.Store
	log    *zap.Logger

	srv *http.Server
}

// New creates a new RemoraServer using the given configuration. Every request
// it handles is logged to log; if log is nil, nothing is logged.
func New(cfg Config, log *zap.Logger) (*RemoraServer, error) {
	cfg = cfg.FillDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	if log == nil {
		log = zap.NewNop()
	}

	db, err := cfg.DB.Connect()
	if err != nil {
		return nil, err
	}

	rs := &RemoraServer{
		db:  db,
		log: log,
	}

	a := api.API{
		Backend: remoras.Service{
			DB:     db,
			Parser: cfg.Parser,
			Log:    log,
		},
		Log: log,
	}
	rs.router = newRouter(a)
	rs.srv = &http.Server{Handler: rs.router}

	return rs, nil
}

// Handler returns the handler that serves every route of the server.
func (rs *RemoraServer) Handler() http.Handler {
	return rs.router
}

// ServeForever begins listening on the given address for HTTP REST client
// requests. It does not return until the server is shut down with Close or
// fails, and returns nil if it was shut down.
func (rs *RemoraServer) ServeForever(listenAddress string) error {
	l, err := net.Listen("tcp", listenAddress)
	if err != nil {
		return err
	}

	rs.log.Info("listening", zap.String("address", l.Addr().String()))
	err = rs.srv.Serve(l)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Close stops the server, waiting up to timeout for in-flight requests to
// finish, and then closes the database.
func (rs *RemoraServer) Close(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	err := rs.srv.Shutdown(ctx)

	if dbErr := rs.db.Close(); dbErr != nil {
		if err != nil {
			err = fmt.Errorf("%s\nadditionally: %w", err.Error(), dbErr)
		} else {
			err = fmt.Errorf("close db: %w", dbErr)
		}
	}

	return err
}
