package server

import (
	"fmt"
	"os"
	"strings"

	"github.com/dekarrin/remora/parse"
	"github.com/dekarrin/remora/server/dao"
	"github.com/dekarrin/remora/server/dao/inmem"
	"github.com/dekarrin/remora/server/dao/sqlite"
)

// DBType is the engine behind a Database.
type DBType string

func (dbt DBType) String() string {
	return string(dbt)
}

const (
	DatabaseNone     DBType = "none"
	DatabaseSQLite   DBType = "sqlite"
	DatabaseInMemory DBType = "inmem"
)

// ParseDBType gives the DBType named by s. Case is ignored, and "none" is not
// accepted.
func ParseDBType(s string) (DBType, error) {
	for _, dbt := range []DBType{DatabaseSQLite, DatabaseInMemory} {
		if strings.EqualFold(s, dbt.String()) {
			return dbt, nil
		}
	}
	return DatabaseNone, fmt.Errorf("DB type not one of 'sqlite' or 'inmem': %q", s)
}

// Database says where evaluation history is kept.
type Database struct {
	// Type is the engine to use.
	Type DBType

	// DataDir is the directory the database files go in. Only SQLite uses it.
	DataDir string
}

// Connect opens the configured store. For SQLite, the data directory is
// created if it does not yet exist.
func (db Database) Connect() (dao.Store, error) {
	if err := db.Validate(); err != nil {
		return nil, err
	}

	if db.Type == DatabaseInMemory {
		return inmem.NewDatastore(), nil
	}

	if err := os.MkdirAll(db.DataDir, 0770); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	store, err := sqlite.NewDatastore(db.DataDir)
	if err != nil {
		return nil, fmt.Errorf("initialize sqlite: %w", err)
	}
	return store, nil
}

// Validate returns an error if db names an engine that cannot be connected to
// or is missing a setting its engine needs.
func (db Database) Validate() error {
	switch db.Type {
	case DatabaseInMemory:
		return nil
	case DatabaseSQLite:
		if db.DataDir == "" {
			return fmt.Errorf("DataDir not set to path")
		}
		return nil
	case DatabaseNone:
		return fmt.Errorf("'none' DB is not valid")
	default:
		return fmt.Errorf("unknown database type: %q", db.Type.String())
	}
}

// ParseDBConnString parses a connection string of the form "ENGINE" or
// "ENGINE:PARAMS". "inmem" takes no params; "sqlite:DIR" keeps its data in
// DIR.
func ParseDBConnString(s string) (Database, error) {
	engine, params, _ := strings.Cut(s, ":")
	params = strings.TrimSpace(params)

	dbt, err := ParseDBType(strings.TrimSpace(engine))
	if err != nil {
		return Database{}, fmt.Errorf("unsupported DB engine: %w", err)
	}

	db := Database{Type: dbt}
	if dbt == DatabaseInMemory && params != "" {
		return Database{}, fmt.Errorf("unsupported param(s) for in-memory DB engine: %s", params)
	}
	if dbt == DatabaseSQLite {
		if params == "" {
			return Database{}, fmt.Errorf("sqlite DB engine requires path to data directory after ':'")
		}
		db.DataDir = params
	}

	return db, nil
}

// Config holds everything needed to start a RemoraServer.
type Config struct {
	// DB is where evaluations are kept. Defaults to an in-memory store.
	DB Database

	// Parser is the settings every evaluation is parsed with. Its Trace
	// listener is ignored.
	Parser parse.Options
}

// FillDefaults returns a copy of cfg with unset values set to their defaults.
func (cfg Config) FillDefaults() Config {
	if cfg.DB.Type == "" || cfg.DB.Type == DatabaseNone {
		cfg.DB = Database{Type: DatabaseInMemory}
	}
	return cfg
}

// Validate returns an error if cfg has an invalid field. Unset values are
// invalid; call Validate on the return value of FillDefaults if defaults are
// wanted.
func (cfg Config) Validate() error {
	if err := cfg.DB.Validate(); err != nil {
		return fmt.Errorf("db: %w", err)
	}
	if cfg.Parser.MaxStackDepth < 0 {
		return fmt.Errorf("parser: max stack depth must be non-negative; got %d", cfg.Parser.MaxStackDepth)
	}
	return nil
}
