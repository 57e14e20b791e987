package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"gatehouse/internal/visitor/models"
	id "gatehouse/pkg/domain"
	"gatehouse/pkg/platform/sentinel"
)

// PostgresStore persists visitor records in PostgreSQL.
// Execute serializes same-key writers with SELECT ... FOR UPDATE.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed visitor store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// EnsureSchema creates the visitors table if it does not exist.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS visitors (
	id                 UUID PRIMARY KEY,
	name               TEXT NOT NULL,
	birthdate          TEXT NOT NULL DEFAULT '',
	sex                TEXT NOT NULL DEFAULT '',
	address            TEXT NOT NULL DEFAULT '',
	contact            TEXT NOT NULL DEFAULT '',
	relationship       TEXT NOT NULL DEFAULT '',
	visited_person_id    UUID NOT NULL,
	visited_person_name  TEXT NOT NULL DEFAULT '',
	window_state       TEXT NOT NULL,
	time_in            TEXT NOT NULL DEFAULT '',
	time_out           TEXT NOT NULL DEFAULT '',
	date_visited       DATE,
	last_visit_date    DATE,
	status             TEXT NOT NULL,
	violation_type     TEXT NOT NULL DEFAULT '',
	violation_details  TEXT NOT NULL DEFAULT '',
	created_at         TIMESTAMPTZ NOT NULL,
	updated_at         TIMESTAMPTZ NOT NULL
)`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("ensure visitors schema: %w", err)
	}
	return nil
}

const visitorColumns = `id, name, birthdate, sex, address, contact, relationship,
	visited_person_id, visited_person_name, window_state, time_in, time_out,
	date_visited, last_visit_date, status, violation_type, violation_details,
	created_at, updated_at`

// Create persists a new record, rejecting duplicate ids.
func (s *PostgresStore) Create(ctx context.Context, record *models.VisitorRecord) error {
	const q = `INSERT INTO visitors (` + visitorColumns + `)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19)`
	_, err := s.db.ExecContext(ctx, q,
		uuid.UUID(record.ID),
		record.Profile.Name,
		record.Profile.Birthdate,
		record.Profile.Sex,
		record.Profile.Address,
		record.Profile.Contact,
		record.Relationship,
		uuid.UUID(record.VisitedPersonID),
		record.VisitedPersonName,
		string(record.Window),
		record.TimeIn,
		record.TimeOut,
		nullTime(record.DateVisited),
		nullTime(record.LastVisitDate),
		string(record.Status),
		record.ViolationType,
		record.ViolationDetails,
		record.CreatedAt,
		record.UpdatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return fmt.Errorf("visitor %s already registered: %w", record.ID, sentinel.ErrConflict)
		}
		return fmt.Errorf("create visitor: %w", err)
	}
	return nil
}

// FindByID retrieves one record.
func (s *PostgresStore) FindByID(ctx context.Context, visitorID id.VisitorID) (*models.VisitorRecord, error) {
	const q = `SELECT ` + visitorColumns + ` FROM visitors WHERE id = $1`
	record, err := scanVisitor(s.db.QueryRowContext(ctx, q, uuid.UUID(visitorID)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("visitor not found: %w", sentinel.ErrNotFound)
		}
		return nil, fmt.Errorf("find visitor by id: %w", err)
	}
	return record, nil
}

// List returns all records ordered by registration time.
func (s *PostgresStore) List(ctx context.Context) ([]*models.VisitorRecord, error) {
	const q = `SELECT ` + visitorColumns + ` FROM visitors ORDER BY created_at`
	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list visitors: %w", err)
	}
	defer rows.Close()

	var records []*models.VisitorRecord
	for rows.Next() {
		record, err := scanVisitor(rows)
		if err != nil {
			return nil, fmt.Errorf("scan visitor: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list visitors: %w", err)
	}
	return records, nil
}

// Execute atomically validates and mutates a record, holding a row lock
// (FOR UPDATE) across both steps.
func (s *PostgresStore) Execute(ctx context.Context, visitorID id.VisitorID, validate func(*models.VisitorRecord) error, mutate func(*models.VisitorRecord)) (*models.VisitorRecord, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin visitor execute tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback() //nolint:errcheck // rollback after commit is a no-op
	}()

	const q = `SELECT ` + visitorColumns + ` FROM visitors WHERE id = $1 FOR UPDATE`
	record, err := scanVisitor(tx.QueryRowContext(ctx, q, uuid.UUID(visitorID)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find visitor for execute: %w", err)
	}

	if err := validate(record); err != nil {
		return nil, err
	}

	mutate(record)
	if err := updateVisitor(ctx, tx, record); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit visitor execute: %w", err)
	}
	return record, nil
}

func updateVisitor(ctx context.Context, tx *sql.Tx, record *models.VisitorRecord) error {
	const q = `UPDATE visitors SET
		name = $2, birthdate = $3, sex = $4, address = $5, contact = $6,
		relationship = $7, visited_person_id = $8, visited_person_name = $9,
		window_state = $10, time_in = $11, time_out = $12, date_visited = $13,
		last_visit_date = $14, status = $15, violation_type = $16,
		violation_details = $17, updated_at = $18
		WHERE id = $1`
	_, err := tx.ExecContext(ctx, q,
		uuid.UUID(record.ID),
		record.Profile.Name,
		record.Profile.Birthdate,
		record.Profile.Sex,
		record.Profile.Address,
		record.Profile.Contact,
		record.Relationship,
		uuid.UUID(record.VisitedPersonID),
		record.VisitedPersonName,
		string(record.Window),
		record.TimeIn,
		record.TimeOut,
		nullTime(record.DateVisited),
		nullTime(record.LastVisitDate),
		string(record.Status),
		record.ViolationType,
		record.ViolationDetails,
		record.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update visitor: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanVisitor(row rowScanner) (*models.VisitorRecord, error) {
	var (
		record      models.VisitorRecord
		visitorID   uuid.UUID
		visitedID   uuid.UUID
		window      string
		status      string
		dateVisited sql.NullTime
		lastVisit   sql.NullTime
	)
	err := row.Scan(
		&visitorID,
		&record.Profile.Name,
		&record.Profile.Birthdate,
		&record.Profile.Sex,
		&record.Profile.Address,
		&record.Profile.Contact,
		&record.Relationship,
		&visitedID,
		&record.VisitedPersonName,
		&window,
		&record.TimeIn,
		&record.TimeOut,
		&dateVisited,
		&lastVisit,
		&status,
		&record.ViolationType,
		&record.ViolationDetails,
		&record.CreatedAt,
		&record.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	record.ID = id.VisitorID(visitorID)
	record.VisitedPersonID = id.DetaineeID(visitedID)
	record.Window = models.WindowState(window)
	record.Status = models.ApprovalStatus(status)
	if dateVisited.Valid {
		d := models.DateOnly(dateVisited.Time)
		record.DateVisited = &d
	}
	if lastVisit.Valid {
		d := models.DateOnly(lastVisit.Time)
		record.LastVisitDate = &d
	}
	return &record, nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

var _ VisitorStore = (*PostgresStore)(nil)
