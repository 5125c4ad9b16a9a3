package database

import (
	"database/sql"
	"fmt"
	"time"
)

// SaveCollection upserts the JSON-encoded payload of a named collection.
func SaveCollection(name, data string) error {
	_, err := DB.Exec(`
		INSERT INTO collections (name, data, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at
	`, name, data, time.Now())
	if err != nil {
		return fmt.Errorf("failed to save collection %s: %w", name, err)
	}
	return nil
}

// LoadCollection returns the JSON payload of a named collection. The boolean
// is false when the collection has never been saved.
func LoadCollection(name string) (string, bool, error) {
	var data string
	err := DB.QueryRow(`
		SELECT data FROM collections WHERE name = ?
	`, name).Scan(&data)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to load collection %s: %w", name, err)
	}
	return data, true, nil
}

// ListCollections returns the names of every stored collection.
func ListCollections() ([]string, error) {
	rows, err := DB.Query(`SELECT name FROM collections ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list collections: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan collection name: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}
