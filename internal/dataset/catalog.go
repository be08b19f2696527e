// Package dataset answers which dimensions are already covered by an active
// published dataset.
package dataset

import (
	"context"
	"sync"

	"sourcing/internal/request/models"
)

// InMemoryCatalog holds the active datasets in process.
type InMemoryCatalog struct {
	mu     sync.RWMutex
	active models.DimensionSet
}

func NewInMemoryCatalog(dims ...models.DataDimension) *InMemoryCatalog {
	return &InMemoryCatalog{active: models.NewDimensionSet(dims...)}
}

// Publish marks dim as having an active dataset.
func (c *InMemoryCatalog) Publish(dim models.DataDimension) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.active.Add(dim)
}

// Retire removes the active dataset of dim.
func (c *InMemoryCatalog) Retire(dim models.DataDimension) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.active, dim)
}

// FindActive returns the members of dims with an active dataset.
func (c *InMemoryCatalog) FindActive(ctx context.Context, dims []models.DataDimension) (models.DimensionSet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	found := models.NewDimensionSet()
	for _, d := range dims {
		if c.active.Contains(d) {
			found.Add(d)
		}
	}
	return found, nil
}
