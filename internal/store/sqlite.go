package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"shuttle-app/internal/model"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

type SQLiteStore struct {
	db *sql.DB
}

type SQLiteOptions struct {
	MigrationsDir string
}

func NewSQLiteStore(path string, opts SQLiteOptions) (*SQLiteStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("sqlite path is required")
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	migrationsDir := strings.TrimSpace(opts.MigrationsDir)
	if migrationsDir == "" {
		migrationsDir = "migrations"
	}
	if err := applyMigrations(db, migrationsDir, dialectSQLite); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) ListSessions() []model.Session {
	rows, err := s.db.Query(`SELECT id, settings_json, key_hash, created_at, updated_at, finished_at FROM sessions`)
	if err != nil {
		return nil
	}
	defer rows.Close()

	sessions := []model.Session{}
	for rows.Next() {
		session, err := scanSQLiteSessionRow(rows)
		if err != nil {
			continue
		}
		sessions = append(sessions, session)
	}
	sort.Slice(sessions, func(i, j int) bool { return sessions[i].CreatedAt.After(sessions[j].CreatedAt) })
	return sessions
}

func (s *SQLiteStore) GetSession(id string) (model.Session, bool) {
	row := s.db.QueryRow(`SELECT id, settings_json, key_hash, created_at, updated_at, finished_at FROM sessions WHERE id = ?`, id)
	session, err := scanSQLiteSessionRow(row)
	if err != nil {
		return model.Session{}, false
	}
	return session, true
}

func (s *SQLiteStore) CreateSession(session model.Session) (model.Session, error) {
	if session.ID == "" {
		session.ID = uuid.NewString()
	}
	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now()
	}
	if session.UpdatedAt.IsZero() {
		session.UpdatedAt = session.CreatedAt
	}
	settingsJSON, err := json.Marshal(session.Settings)
	if err != nil {
		return model.Session{}, fmt.Errorf("encode settings: %w", err)
	}
	_, err = s.db.Exec(`INSERT INTO sessions (id, settings_json, key_hash, created_at, updated_at, finished_at) VALUES (?,?,?,?,?,?)`,
		session.ID, string(settingsJSON), session.KeyHash, timeValueString(session.CreatedAt), timeValueString(session.UpdatedAt), timePtrValueString(session.FinishedAt),
	)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "unique") {
			return model.Session{}, errors.New("session already exists")
		}
		return model.Session{}, err
	}
	return session, nil
}

func (s *SQLiteStore) UpdateSession(session model.Session) error {
	settingsJSON, err := json.Marshal(session.Settings)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	res, err := s.db.Exec(`UPDATE sessions SET settings_json = ?, updated_at = ?, finished_at = ? WHERE id = ?`,
		string(settingsJSON), timeValueString(time.Now()), timePtrValueString(session.FinishedAt), session.ID,
	)
	if err != nil {
		return err
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		return ErrSessionNotFound
	}
	return nil
}

func (s *SQLiteStore) FinishSession(id string) error {
	now := time.Now()
	res, err := s.db.Exec(`UPDATE sessions SET finished_at = ?, updated_at = ? WHERE id = ?`,
		timeValueString(now), timeValueString(now), id,
	)
	if err != nil {
		return err
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		return ErrSessionNotFound
	}
	return nil
}

func scanSQLiteSessionRow(scanner interface{ Scan(dest ...any) error }) (model.Session, error) {
	var session model.Session
	var settingsJSON sql.NullString
	var createdAt, updatedAt, finishedAt sql.NullString
	if err := scanner.Scan(
		&session.ID,
		&settingsJSON,
		&session.KeyHash,
		&createdAt,
		&updatedAt,
		&finishedAt,
	); err != nil {
		return model.Session{}, err
	}
	if createdAt.Valid {
		if parsed, ok := parseTimeString(createdAt.String); ok {
			session.CreatedAt = parsed
		}
	}
	if updatedAt.Valid {
		if parsed, ok := parseTimeString(updatedAt.String); ok {
			session.UpdatedAt = parsed
		}
	}
	if finishedAt.Valid {
		if parsed, ok := parseTimeString(finishedAt.String); ok {
			session.FinishedAt = &parsed
		}
	}
	if settingsJSON.Valid && strings.TrimSpace(settingsJSON.String) != "" {
		if err := json.Unmarshal([]byte(settingsJSON.String), &session.Settings); err != nil {
			return model.Session{}, fmt.Errorf("decode settings: %w", err)
		}
	}
	return session, nil
}

func timeValueString(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.Format(time.RFC3339Nano)
}

func timePtrValueString(t *time.Time) any {
	if t == nil || t.IsZero() {
		return nil
	}
	return t.Format(time.RFC3339Nano)
}

func parseTimeString(value string) (time.Time, bool) {
	if strings.TrimSpace(value) == "" {
		return time.Time{}, false
	}
	if parsed, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return parsed, true
	}
	if parsed, err := time.Parse(time.RFC3339, value); err == nil {
		return parsed, true
	}
	return time.Time{}, false
}
