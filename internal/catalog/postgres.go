package catalog

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"sourcing/pkg/platform/tx"
)

// PostgresDirectory resolves identifiers against the companies and
// company_identifiers tables.
type PostgresDirectory struct {
	db tx.Executor
}

func NewPostgresDirectory(db *sql.DB) *PostgresDirectory {
	return &PostgresDirectory{db: db}
}

func (d *PostgresDirectory) Resolve(ctx context.Context, identifiers []string) (map[string]string, error) {
	out := make(map[string]string, len(identifiers))
	if len(identifiers) == 0 {
		return out, nil
	}
	rows, err := d.db.QueryContext(ctx, `
		SELECT id, id FROM companies WHERE id = ANY($1)
		UNION
		SELECT identifier, company_id FROM company_identifiers WHERE identifier = ANY($1)`,
		pq.Array(identifiers),
	)
	if err != nil {
		return nil, fmt.Errorf("resolve company identifiers: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var ident, companyID string
		if err := rows.Scan(&ident, &companyID); err != nil {
			return nil, fmt.Errorf("scan company identifier: %w", err)
		}
		out[ident] = companyID
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate company identifiers: %w", err)
	}
	return out, nil
}

// AddCompany inserts a company and its aliases. It seeds local databases and
// integration tests.
func (d *PostgresDirectory) AddCompany(ctx context.Context, companyID, name string, aliases ...string) error {
	if _, err := d.db.ExecContext(ctx,
		`INSERT INTO companies (id, name) VALUES ($1, $2) ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name`,
		companyID, name); err != nil {
		return fmt.Errorf("insert company: %w", err)
	}
	for _, alias := range aliases {
		if _, err := d.db.ExecContext(ctx, `
			INSERT INTO company_identifiers (identifier, company_id) VALUES ($1, $2)
			ON CONFLICT (identifier) DO UPDATE SET company_id = EXCLUDED.company_id`,
			alias, companyID); err != nil {
			return fmt.Errorf("insert company identifier: %w", err)
		}
	}
	return nil
}
