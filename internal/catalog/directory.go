// Package catalog validates the identifiers of a bulk request: company
// identifiers against the company directory, data types against the
// configured frameworks, and reporting periods against a year window.
package catalog

import (
	"context"
	"sync"
)

// CompanyDirectory resolves raw company identifiers (company ids, LEIs, ISINs
// and similar) to canonical company ids. Unknown identifiers are absent from
// the result.
type CompanyDirectory interface {
	Resolve(ctx context.Context, identifiers []string) (map[string]string, error)
}

// InMemoryDirectory is a CompanyDirectory for local runs and tests.
type InMemoryDirectory struct {
	mu          sync.RWMutex
	identifiers map[string]string
}

func NewInMemoryDirectory() *InMemoryDirectory {
	return &InMemoryDirectory{identifiers: make(map[string]string)}
}

// AddCompany registers companyID and every alias that resolves to it. The
// company id always resolves to itself.
func (d *InMemoryDirectory) AddCompany(companyID string, aliases ...string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.identifiers[companyID] = companyID
	for _, alias := range aliases {
		d.identifiers[alias] = companyID
	}
}

func (d *InMemoryDirectory) Resolve(ctx context.Context, identifiers []string) (map[string]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make(map[string]string, len(identifiers))
	for _, ident := range identifiers {
		if companyID, ok := d.identifiers[ident]; ok {
			out[ident] = companyID
		}
	}
	return out, nil
}
