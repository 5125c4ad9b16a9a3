package database

import (
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

var DB *sql.DB

// InitDB opens the sqlite database and creates the collections table. The
// database is a key-value store of named JSON-encoded collections; the
// application loads every collection at startup and writes a collection back
// after each mutation.
func InitDB() error {
	var dbPath string
	if p := os.Getenv("TRACKHUB_DB"); p != "" {
		dbPath = p
	} else if os.Getenv("TEST_DB") == "1" {
		// Shared cache so every pooled connection sees the same in-memory DB
		dbPath = "file::memory:?cache=shared"
	} else {
		dbPath = filepath.Join(".", "trackhub.db")
	}

	var err error
	// Connection parameters to better handle interleaved requests
	sep := "?"
	if strings.Contains(dbPath, "?") {
		sep = "&"
	}
	dsn := dbPath + sep + "_journal=WAL&_timeout=10000&_busy_timeout=10000"
	DB, err = sql.Open("sqlite3", dsn)
	if err != nil {
		return err
	}

	DB.SetMaxOpenConns(5)
	DB.SetMaxIdleConns(5)
	DB.SetConnMaxLifetime(time.Minute * 5)

	if _, err = DB.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		return err
	}
	if _, err = DB.Exec("PRAGMA busy_timeout=5000;"); err != nil {
		return err
	}

	if err = DB.Ping(); err != nil {
		return err
	}

	createCollectionsTable := `
	CREATE TABLE IF NOT EXISTS collections (
		name TEXT PRIMARY KEY,
		data TEXT NOT NULL,
		updated_at DATETIME NOT NULL
	);
	`
	if _, err = DB.Exec(createCollectionsTable); err != nil {
		return err
	}

	return nil
}
