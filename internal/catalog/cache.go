package catalog

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"sourcing/pkg/requestcontext"
)

const companyKeyPrefix = "catalog:company:"

// unknownCompany marks an identifier the directory could not resolve, so
// repeated misses do not reach the directory until the entry expires.
const unknownCompany = "-"

// CachedDirectory puts a Redis cache in front of another directory. Redis
// failures degrade to direct lookups.
type CachedDirectory struct {
	next   CompanyDirectory
	client redis.Cmdable
	ttl    time.Duration
	logger *slog.Logger
}

func NewCachedDirectory(next CompanyDirectory, client redis.Cmdable, ttl time.Duration, logger *slog.Logger) *CachedDirectory {
	if logger == nil {
		logger = slog.Default()
	}
	return &CachedDirectory{next: next, client: client, ttl: ttl, logger: logger}
}

func (d *CachedDirectory) Resolve(ctx context.Context, identifiers []string) (map[string]string, error) {
	out := make(map[string]string, len(identifiers))
	if len(identifiers) == 0 {
		return out, nil
	}

	misses := identifiers
	keys := make([]string, len(identifiers))
	for i, ident := range identifiers {
		keys[i] = companyKeyPrefix + ident
	}
	cached, err := d.client.MGet(ctx, keys...).Result()
	if err != nil {
		d.logger.WarnContext(ctx, "company cache read failed",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
	} else {
		misses = make([]string, 0, len(identifiers))
		for i, v := range cached {
			s, ok := v.(string)
			switch {
			case !ok:
				misses = append(misses, identifiers[i])
			case s != unknownCompany:
				out[identifiers[i]] = s
			}
		}
	}
	if len(misses) == 0 {
		return out, nil
	}

	resolved, err := d.next.Resolve(ctx, misses)
	if err != nil {
		return nil, err
	}

	pipe := d.client.Pipeline()
	for _, ident := range misses {
		companyID, ok := resolved[ident]
		if ok {
			out[ident] = companyID
		} else {
			companyID = unknownCompany
		}
		pipe.Set(ctx, companyKeyPrefix+ident, companyID, d.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		d.logger.WarnContext(ctx, "company cache write failed",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
	}
	return out, nil
}
