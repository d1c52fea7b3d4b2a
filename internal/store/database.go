package store

import (
	"context"
	"database/sql"
	"log"
	"runtime"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/irfanbayu/keydash/internal/settings"
)

func InitDatabase(readonly bool) *sql.DB {
	db, err := sql.Open("sqlite", settings.Settings.SQLiteDbString(readonly))
	if err != nil {
		log.Fatal("fatal error opening sqlite database:", err)
	}

	if readonly {
		db.SetMaxOpenConns(max(4, runtime.NumCPU()))
	} else {
		if _, err := db.Exec("PRAGMA temp_store=memory"); err != nil {
			log.Fatal(err)
		}
		if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
			log.Fatal(err)
		}
		db.SetMaxOpenConns(1)
	}

	return db
}

func InitPostgresPool(ctx context.Context) *pgxpool.Pool {
	pool, err := pgxpool.New(ctx, settings.Settings.PostgresURL)
	if err != nil {
		log.Fatal("fatal error opening postgres pool:", err)
	}
	if err := pool.Ping(ctx); err != nil {
		log.Fatal("fatal error pinging postgres:", err)
	}
	return pool
}

// InitPostgresMigrationDB opens a database/sql handle over the pgx stdlib
// driver. Goose only speaks database/sql, so migrations use this handle
// while the store itself runs on the pool.
func InitPostgresMigrationDB() *sql.DB {
	db, err := sql.Open("pgx", settings.Settings.PostgresURL)
	if err != nil {
		log.Fatal("fatal error opening postgres database:", err)
	}
	return db
}
