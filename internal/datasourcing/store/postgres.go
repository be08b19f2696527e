package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"sourcing/internal/platform/postgres"
	"sourcing/internal/request/models"
	id "sourcing/pkg/domain"
	"sourcing/pkg/platform/sentinel"
	"sourcing/pkg/platform/tx"
)

// PostgresStore persists data sourcings in PostgreSQL.
type PostgresStore struct {
	db tx.Executor
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// NewPostgresTx binds the store to an open transaction.
func NewPostgresTx(t *sql.Tx) *PostgresStore {
	return &PostgresStore{db: t}
}

const sourcingColumns = `id, company_id, data_type, reporting_period, state, last_modified_at`

func (s *PostgresStore) Create(ctx context.Context, ds *models.DataSourcing, entry models.DataSourcingStateHistoryEntry) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO data_sourcings (`+sourcingColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		uuid.UUID(ds.ID), ds.CompanyID, ds.DataType, ds.ReportingPeriod, string(ds.State), ds.LastModifiedAt,
	)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return fmt.Errorf("insert data sourcing for %s: %w", ds.Dimension(), sentinel.ErrConflict)
		}
		return fmt.Errorf("insert data sourcing: %w", err)
	}
	return s.appendHistory(ctx, entry)
}

func (s *PostgresStore) Update(ctx context.Context, ds *models.DataSourcing, entry models.DataSourcingStateHistoryEntry) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE data_sourcings SET state = $2, last_modified_at = $3 WHERE id = $1`,
		uuid.UUID(ds.ID), string(ds.State), ds.LastModifiedAt,
	)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return fmt.Errorf("update data sourcing %s: %w", ds.ID, sentinel.ErrConflict)
		}
		return fmt.Errorf("update data sourcing: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update data sourcing rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("data sourcing %s: %w", ds.ID, sentinel.ErrNotFound)
	}
	return s.appendHistory(ctx, entry)
}

func (s *PostgresStore) appendHistory(ctx context.Context, entry models.DataSourcingStateHistoryEntry) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO data_sourcing_state_history (data_sourcing_id, state, recorded_at)
		VALUES ($1, $2, $3)`,
		uuid.UUID(entry.DataSourcingID), string(entry.State), entry.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("append data sourcing history: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, sourcingID id.DataSourcingID) (*models.DataSourcing, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+sourcingColumns+` FROM data_sourcings WHERE id = $1`, uuid.UUID(sourcingID))
	return scanSourcing(row)
}

func (s *PostgresStore) FindActiveByDimension(ctx context.Context, dim models.DataDimension) (*models.DataSourcing, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+sourcingColumns+` FROM data_sourcings
		WHERE company_id = $1 AND data_type = $2 AND reporting_period = $3
			AND state NOT IN ('Done', 'NonSourceable')`,
		dim.CompanyID, dim.DataType, dim.ReportingPeriod,
	)
	return scanSourcing(row)
}

func (s *PostgresStore) ListHistory(ctx context.Context, sourcingID id.DataSourcingID) ([]models.DataSourcingStateHistoryEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT state, recorded_at
		FROM data_sourcing_state_history
		WHERE data_sourcing_id = $1
		ORDER BY recorded_at, id`, uuid.UUID(sourcingID))
	if err != nil {
		return nil, fmt.Errorf("list data sourcing history: %w", err)
	}
	defer rows.Close()

	out := make([]models.DataSourcingStateHistoryEntry, 0)
	for rows.Next() {
		var (
			state string
			at    time.Time
		)
		if err := rows.Scan(&state, &at); err != nil {
			return nil, fmt.Errorf("scan data sourcing history: %w", err)
		}
		out = append(out, models.DataSourcingStateHistoryEntry{
			DataSourcingID: sourcingID,
			State:          models.DataSourcingState(state),
			Timestamp:      at.UTC(),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate data sourcing history: %w", err)
	}
	return out, nil
}

func scanSourcing(row *sql.Row) (*models.DataSourcing, error) {
	var (
		dsID     uuid.UUID
		state    string
		modified time.Time
		ds       models.DataSourcing
	)
	err := row.Scan(&dsID, &ds.CompanyID, &ds.DataType, &ds.ReportingPeriod, &state, &modified)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan data sourcing: %w", err)
	}
	ds.ID = id.DataSourcingID(dsID)
	ds.State = models.DataSourcingState(state)
	ds.LastModifiedAt = modified.UTC()
	return &ds, nil
}
