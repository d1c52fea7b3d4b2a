package store

import (
	"database/sql"
	"log"

	assets "github.com/irfanbayu/keydash"
	"github.com/pressly/goose/v3"
)

// RunMigrations applies the embedded goose migrations for the given dialect
// ("sqlite" or "postgres").
func RunMigrations(db *sql.DB, dialect string) {
	goose.SetBaseFS(assets.MigrationsFS)
	if err := goose.SetDialect(dialect); err != nil {
		log.Fatal(err)
	}
	if err := goose.Up(db, "migrations/"+dialect); err != nil {
		log.Fatal(err)
	}
}
