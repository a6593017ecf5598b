package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

type dialect int

const (
	dialectSQLite dialect = iota
	dialectPostgres
)

// applyMigrations runs every *.sql file in dir, in name order, that has not
// been recorded in schema_migrations yet. A missing dir is not an error.
func applyMigrations(db *sql.DB, dir string, d dialect) error {
	if err := ensureMigrationsTable(db, d); err != nil {
		return err
	}
	applied, err := loadAppliedMigrations(db)
	if err != nil {
		return err
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read migrations: %w", err)
	}
	files := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasSuffix(name, ".sql") {
			files = append(files, filepath.Join(dir, name))
		}
	}
	if len(files) == 0 {
		return nil
	}
	sort.Strings(files)
	for _, path := range files {
		filename := filepath.Base(path)
		if applied[filename] {
			continue
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", path, err)
		}
		if strings.TrimSpace(string(content)) == "" {
			continue
		}
		if err := applyMigration(db, d, filename, string(content)); err != nil {
			return fmt.Errorf("apply migration %s: %w", path, err)
		}
	}
	return nil
}

func ensureMigrationsTable(db *sql.DB, d dialect) error {
	ddl := `
CREATE TABLE IF NOT EXISTS schema_migrations (
  filename TEXT PRIMARY KEY,
  installed_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`
	if d == dialectSQLite {
		ddl = `
CREATE TABLE IF NOT EXISTS schema_migrations (
  filename TEXT PRIMARY KEY,
  installed_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);`
	}
	_, err := db.Exec(ddl)
	if err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}
	return nil
}

func loadAppliedMigrations(db *sql.DB) (map[string]bool, error) {
	rows, err := db.Query(`SELECT filename FROM schema_migrations`)
	if err != nil {
		return nil, fmt.Errorf("load schema_migrations: %w", err)
	}
	defer rows.Close()

	applied := map[string]bool{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan schema_migrations: %w", err)
		}
		applied[name] = true
	}
	return applied, nil
}

func applyMigration(db *sql.DB, d dialect, filename, sqlContent string) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin migration tx: %w", err)
	}
	if _, err := tx.Exec(sqlContent); err != nil {
		_ = tx.Rollback()
		return err
	}
	insert := `INSERT INTO schema_migrations (filename) VALUES ($1)`
	if d == dialectSQLite {
		insert = `INSERT INTO schema_migrations (filename) VALUES (?)`
	}
	if _, err := tx.Exec(insert, filename); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit migration tx: %w", err)
	}
	return nil
}
