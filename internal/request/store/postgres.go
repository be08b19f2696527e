package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"sourcing/internal/platform/postgres"
	"sourcing/internal/request/models"
	id "sourcing/pkg/domain"
	"sourcing/pkg/platform/sentinel"
	"sourcing/pkg/platform/tx"
)

// PostgresStore persists requests in PostgreSQL. Built with NewPostgresTx it
// runs every statement inside the caller's transaction.
type PostgresStore struct {
	db tx.Executor
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func NewPostgresTx(t *sql.Tx) *PostgresStore {
	return &PostgresStore{db: t}
}

const requestColumns = `id, user_id, company_id, data_type, reporting_period, state, priority,
	admin_comment, data_sourcing_id, created_at, last_modified_at`

func (s *PostgresStore) Create(ctx context.Context, req *models.Request, entry models.RequestStateHistoryEntry) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO data_requests (`+requestColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		uuid.UUID(req.ID), uuid.UUID(req.UserID), req.CompanyID, req.DataType, req.ReportingPeriod,
		string(req.State), string(req.Priority), nullString(req.AdminComment), nullSourcingID(req.DataSourcingID),
		req.CreatedAt, req.LastModifiedAt,
	)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return fmt.Errorf("insert request %s: %w", req.ID, sentinel.ErrConflict)
		}
		return fmt.Errorf("insert request: %w", err)
	}
	return s.appendHistory(ctx, entry)
}

func (s *PostgresStore) Update(ctx context.Context, req *models.Request, entry models.RequestStateHistoryEntry) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE data_requests
		SET state = $2, priority = $3, admin_comment = $4, data_sourcing_id = $5, last_modified_at = $6
		WHERE id = $1`,
		uuid.UUID(req.ID), string(req.State), string(req.Priority), nullString(req.AdminComment),
		nullSourcingID(req.DataSourcingID), req.LastModifiedAt,
	)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return fmt.Errorf("update request %s: %w", req.ID, sentinel.ErrConflict)
		}
		return fmt.Errorf("update request: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update request rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("request %s: %w", req.ID, sentinel.ErrNotFound)
	}
	return s.appendHistory(ctx, entry)
}

func (s *PostgresStore) appendHistory(ctx context.Context, entry models.RequestStateHistoryEntry) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO request_state_history (request_id, state, admin_comment, recorded_at)
		VALUES ($1, $2, $3, $4)`,
		uuid.UUID(entry.RequestID), string(entry.State), nullString(entry.AdminComment), entry.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("append request history: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, requestID id.RequestID) (*models.Request, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+requestColumns+` FROM data_requests WHERE id = $1`, uuid.UUID(requestID))
	req, err := scanRequest(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find request: %w", err)
	}
	return req, nil
}

func (s *PostgresStore) ListByUser(ctx context.Context, userID id.UserID) ([]*models.Request, error) {
	return s.list(ctx, `SELECT `+requestColumns+` FROM data_requests WHERE user_id = $1 ORDER BY created_at DESC`, uuid.UUID(userID))
}

func (s *PostgresStore) ListByDataSourcing(ctx context.Context, sourcingID id.DataSourcingID) ([]*models.Request, error) {
	return s.list(ctx, `SELECT `+requestColumns+` FROM data_requests WHERE data_sourcing_id = $1 ORDER BY created_at`, uuid.UUID(sourcingID))
}

func (s *PostgresStore) list(ctx context.Context, query string, args ...any) ([]*models.Request, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list requests: %w", err)
	}
	defer rows.Close()

	out := make([]*models.Request, 0)
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("scan request: %w", err)
		}
		out = append(out, req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate requests: %w", err)
	}
	return out, nil
}

// FindNonFinal matches all dimensions in one round trip by joining against
// the unnested triples.
func (s *PostgresStore) FindNonFinal(ctx context.Context, userID id.UserID, dims []models.DataDimension) (models.DimensionSet, error) {
	found := models.NewDimensionSet()
	if len(dims) == 0 {
		return found, nil
	}
	companies, dataTypes, periods := models.DimensionColumns(dims)
	rows, err := s.db.QueryContext(ctx, `
		SELECT DISTINCT r.company_id, r.data_type, r.reporting_period
		FROM data_requests r
		JOIN unnest($2::text[], $3::text[], $4::text[]) AS d(company_id, data_type, reporting_period)
			ON r.company_id = d.company_id
			AND r.data_type = d.data_type
			AND r.reporting_period = d.reporting_period
		WHERE r.user_id = $1 AND r.state IN ('Open', 'Processing')`,
		uuid.UUID(userID), pq.Array(companies), pq.Array(dataTypes), pq.Array(periods),
	)
	if err != nil {
		return nil, fmt.Errorf("find non-final requests: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var d models.DataDimension
		if err := rows.Scan(&d.CompanyID, &d.DataType, &d.ReportingPeriod); err != nil {
			return nil, fmt.Errorf("scan dimension: %w", err)
		}
		found.Add(d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate dimensions: %w", err)
	}
	return found, nil
}

func (s *PostgresStore) ListHistory(ctx context.Context, requestID id.RequestID) ([]models.RequestStateHistoryEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT state, admin_comment, recorded_at
		FROM request_state_history
		WHERE request_id = $1
		ORDER BY recorded_at, id`, uuid.UUID(requestID))
	if err != nil {
		return nil, fmt.Errorf("list request history: %w", err)
	}
	defer rows.Close()

	out := make([]models.RequestStateHistoryEntry, 0)
	for rows.Next() {
		var (
			state   string
			comment sql.NullString
			at      time.Time
		)
		if err := rows.Scan(&state, &comment, &at); err != nil {
			return nil, fmt.Errorf("scan request history: %w", err)
		}
		out = append(out, models.RequestStateHistoryEntry{
			RequestID:    requestID,
			State:        models.RequestState(state),
			AdminComment: stringPtr(comment),
			Timestamp:    at.UTC(),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate request history: %w", err)
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRequest(row scanner) (*models.Request, error) {
	var (
		reqID, userID     uuid.UUID
		state, priority   string
		comment           sql.NullString
		sourcingID        uuid.NullUUID
		created, modified time.Time
		req               models.Request
	)
	if err := row.Scan(&reqID, &userID, &req.CompanyID, &req.DataType, &req.ReportingPeriod,
		&state, &priority, &comment, &sourcingID, &created, &modified); err != nil {
		return nil, err
	}
	req.ID = id.RequestID(reqID)
	req.UserID = id.UserID(userID)
	req.State = models.RequestState(state)
	req.Priority = models.RequestPriority(priority)
	req.AdminComment = stringPtr(comment)
	if sourcingID.Valid {
		dsID := id.DataSourcingID(sourcingID.UUID)
		req.DataSourcingID = &dsID
	}
	req.CreatedAt = created.UTC()
	req.LastModifiedAt = modified.UTC()
	return &req, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func stringPtr(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}

func nullSourcingID(dsID *id.DataSourcingID) uuid.NullUUID {
	if dsID == nil {
		return uuid.NullUUID{}
	}
	return uuid.NullUUID{UUID: uuid.UUID(*dsID), Valid: true}
}
