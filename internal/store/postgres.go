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
	_ "github.com/jackc/pgx/v5/stdlib"
)

type PostgresStore struct {
	db *sql.DB
}

type PostgresOptions struct {
	MigrationsDir string
}

func NewPostgresStore(dsn string, opts PostgresOptions) (*PostgresStore, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, errors.New("postgres dsn is required")
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	migrationsDir := strings.TrimSpace(opts.MigrationsDir)
	if migrationsDir == "" {
		migrationsDir = "migrations/postgres"
	}
	if err := applyMigrations(db, migrationsDir, dialectPostgres); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &PostgresStore{db: db}, nil
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}

func (s *PostgresStore) ListSessions() []model.Session {
	rows, err := s.db.Query(`SELECT id, settings_json, key_hash, created_at, updated_at, finished_at FROM sessions`)
	if err != nil {
		return nil
	}
	defer rows.Close()

	sessions := []model.Session{}
	for rows.Next() {
		session, err := scanSessionRow(rows)
		if err != nil {
			continue
		}
		sessions = append(sessions, session)
	}
	sort.Slice(sessions, func(i, j int) bool { return sessions[i].CreatedAt.After(sessions[j].CreatedAt) })
	return sessions
}

func (s *PostgresStore) GetSession(id string) (model.Session, bool) {
	row := s.db.QueryRow(`SELECT id, settings_json, key_hash, created_at, updated_at, finished_at FROM sessions WHERE id = $1`, id)
	session, err := scanSessionRow(row)
	if err != nil {
		return model.Session{}, false
	}
	return session, true
}

func (s *PostgresStore) CreateSession(session model.Session) (model.Session, error) {
	if session.ID == "" {
		session.ID = uuid.NewString()
	}
	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now()
	}
	if session.UpdatedAt.IsZero() {
		session.UpdatedAt = session.CreatedAt
	}
	_, err := s.db.Exec(`INSERT INTO sessions (id, settings_json, key_hash, created_at, updated_at, finished_at) VALUES ($1,$2,$3,$4,$5,$6)`,
		session.ID, toJSON(session.Settings), session.KeyHash, timeValuePtr(session.CreatedAt), timeValuePtr(session.UpdatedAt), timePtrValue(session.FinishedAt),
	)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "unique") || strings.Contains(strings.ToLower(err.Error()), "duplicate") {
			return model.Session{}, errors.New("session already exists")
		}
		return model.Session{}, err
	}
	return session, nil
}

func (s *PostgresStore) UpdateSession(session model.Session) error {
	res, err := s.db.Exec(`UPDATE sessions SET settings_json = $1, updated_at = $2, finished_at = $3 WHERE id = $4`,
		toJSON(session.Settings), time.Now(), timePtrValue(session.FinishedAt), session.ID,
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

func (s *PostgresStore) FinishSession(id string) error {
	res, err := s.db.Exec(`UPDATE sessions SET finished_at = now(), updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		return ErrSessionNotFound
	}
	return nil
}

func scanSessionRow(scanner interface{ Scan(dest ...any) error }) (model.Session, error) {
	var session model.Session
	var settingsJSON []byte
	var createdAt, updatedAt, finishedAt sql.NullTime
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
		session.CreatedAt = createdAt.Time
	}
	if updatedAt.Valid {
		session.UpdatedAt = updatedAt.Time
	}
	if finishedAt.Valid {
		finished := finishedAt.Time
		session.FinishedAt = &finished
	}
	if len(settingsJSON) > 0 {
		if err := json.Unmarshal(settingsJSON, &session.Settings); err != nil {
			return model.Session{}, fmt.Errorf("decode settings: %w", err)
		}
	}
	return session, nil
}

func timeValuePtr(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t
}

func timePtrValue(t *time.Time) any {
	if t == nil || t.IsZero() {
		return nil
	}
	return *t
}

func toJSON(v any) []byte {
	if v == nil {
		return []byte("null")
	}
	data, err := json.Marshal(v)
	if err != nil {
		return []byte("null")
	}
	return data
}
