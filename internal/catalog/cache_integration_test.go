//go:build integration

package catalog_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"sourcing/internal/catalog"
	"sourcing/pkg/testutil/containers"
)

// countingDirectory records how many identifiers reached the backing
// directory.
type countingDirectory struct {
	catalog.CompanyDirectory
	lookups atomic.Int64
}

func (d *countingDirectory) Resolve(ctx context.Context, identifiers []string) (map[string]string, error) {
	d.lookups.Add(int64(len(identifiers)))
	return d.CompanyDirectory.Resolve(ctx, identifiers)
}

type CachedDirectorySuite struct {
	suite.Suite
	redis   *containers.RedisContainer
	backing *countingDirectory
	cached  *catalog.CachedDirectory
}

func TestCachedDirectorySuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(CachedDirectorySuite))
}

func (s *CachedDirectorySuite) SetupSuite() {
	s.redis = containers.GetManager().GetRedis(s.T())
}

func (s *CachedDirectorySuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
	dir := catalog.NewInMemoryDirectory()
	dir.AddCompany("c-acme", "LEI-ACME")
	s.backing = &countingDirectory{CompanyDirectory: dir}
	s.cached = catalog.NewCachedDirectory(s.backing, s.redis.Client, time.Minute, nil)
}

func (s *CachedDirectorySuite) TestSecondLookupIsServedFromRedis() {
	ctx := context.Background()
	idents := []string{"LEI-ACME", "unknown"}

	first, err := s.cached.Resolve(ctx, idents)
	s.Require().NoError(err)
	s.Equal(map[string]string{"LEI-ACME": "c-acme"}, first)
	s.Equal(int64(2), s.backing.lookups.Load())

	second, err := s.cached.Resolve(ctx, idents)
	s.Require().NoError(err)
	s.Equal(first, second)
	s.Equal(int64(2), s.backing.lookups.Load(), "hits and negative entries come from the cache")

	ttl, err := s.redis.Client.TTL(ctx, "catalog:company:LEI-ACME").Result()
	s.Require().NoError(err)
	s.Greater(ttl, time.Duration(0))
}

func (s *CachedDirectorySuite) TestPartialHits() {
	ctx := context.Background()
	_, err := s.cached.Resolve(ctx, []string{"LEI-ACME"})
	s.Require().NoError(err)

	out, err := s.cached.Resolve(ctx, []string{"LEI-ACME", "c-acme"})
	s.Require().NoError(err)
	s.Equal(map[string]string{"LEI-ACME": "c-acme", "c-acme": "c-acme"}, out)
	s.Equal(int64(2), s.backing.lookups.Load())
}
