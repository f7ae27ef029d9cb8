package db

import (
	"database/sql"

	"github.com/davemarr/asset-inventory/internal/config"
	_ "github.com/lib/pq"
)

// Connect opens the Postgres pool described by cfg and verifies it with a ping.
func Connect(cfg config.Config) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(cfg.DBMaxOpenConns)
	db.SetMaxIdleConns(cfg.DBMaxIdleConns)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}
