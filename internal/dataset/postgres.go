package dataset

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"sourcing/internal/request/models"
	"sourcing/pkg/platform/tx"
)

// PostgresCatalog reads the datasets table.
type PostgresCatalog struct {
	db tx.Executor
}

func NewPostgresCatalog(db *sql.DB) *PostgresCatalog {
	return &PostgresCatalog{db: db}
}

// FindActive matches every dimension in one query against the unnested
// triples.
func (c *PostgresCatalog) FindActive(ctx context.Context, dims []models.DataDimension) (models.DimensionSet, error) {
	found := models.NewDimensionSet()
	if len(dims) == 0 {
		return found, nil
	}
	companies, dataTypes, periods := models.DimensionColumns(dims)
	rows, err := c.db.QueryContext(ctx, `
		SELECT DISTINCT ds.company_id, ds.data_type, ds.reporting_period
		FROM datasets ds
		JOIN unnest($1::text[], $2::text[], $3::text[]) AS d(company_id, data_type, reporting_period)
			ON ds.company_id = d.company_id
			AND ds.data_type = d.data_type
			AND ds.reporting_period = d.reporting_period
		WHERE ds.active`,
		pq.Array(companies), pq.Array(dataTypes), pq.Array(periods),
	)
	if err != nil {
		return nil, fmt.Errorf("find active datasets: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var d models.DataDimension
		if err := rows.Scan(&d.CompanyID, &d.DataType, &d.ReportingPeriod); err != nil {
			return nil, fmt.Errorf("scan dataset dimension: %w", err)
		}
		found.Add(d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate dataset dimensions: %w", err)
	}
	return found, nil
}

// Publish records an active dataset for dim.
func (c *PostgresCatalog) Publish(ctx context.Context, dim models.DataDimension, publishedAt time.Time) error {
	_, err := c.db.ExecContext(ctx, `
		INSERT INTO datasets (id, company_id, data_type, reporting_period, active, published_at)
		VALUES ($1, $2, $3, $4, TRUE, $5)`,
		uuid.New(), dim.CompanyID, dim.DataType, dim.ReportingPeriod, publishedAt,
	)
	if err != nil {
		return fmt.Errorf("publish dataset: %w", err)
	}
	return nil
}

// Retire deactivates every dataset of dim.
func (c *PostgresCatalog) Retire(ctx context.Context, dim models.DataDimension) error {
	_, err := c.db.ExecContext(ctx, `
		UPDATE datasets SET active = FALSE
		WHERE company_id = $1 AND data_type = $2 AND reporting_period = $3`,
		dim.CompanyID, dim.DataType, dim.ReportingPeriod,
	)
	if err != nil {
		return fmt.Errorf("retire dataset: %w", err)
	}
	return nil
}
