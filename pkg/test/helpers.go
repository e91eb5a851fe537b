package test

import (
	"fmt"
	"log"

	"github.com/google/uuid"

	"todoapi/internal/adapter/database"
)

// InitTestDB opens a private in-memory sqlite database with the schema
// applied. The pool is pinned to one connection that never expires, so the
// database lives as long as the returned handle.
func InitTestDB() *database.DB {
	db, err := database.Open(database.Options{
		URL:             fmt.Sprintf("sqlite:file:%s?mode=memory&cache=shared", uuid.NewString()),
		ServiceName:     "todoapi-test",
		MaxOpenConns:    1,
		MaxIdleConns:    1,
		ConnMaxLifetime: 0,
		LogLevel:        "off",
	})

	if err != nil {
		log.Fatal(err)
	}

	if err := database.RunMigrations(db); err != nil {
		log.Fatal(err)
	}

	return db
}
