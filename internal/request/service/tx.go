package service

import (
	"context"
	"hash/fnv"
	"sync"
	"time"

	"sourcing/internal/request/models"
	id "sourcing/pkg/domain"
	dErrors "sourcing/pkg/domain-errors"
)

// Stores are the stores a transaction callback may use. Inside RunInTx they
// are bound to the transaction.
type Stores struct {
	Requests  RequestStore
	Sourcings SourcingStore
}

// StoreTx provides a transactional boundary for request and data-sourcing
// mutations. Implementations may wrap a database transaction or, in-memory,
// a sharded lock.
type StoreTx interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context, stores Stores) error) error
}

// numTxShards spreads unrelated transactions over independent locks. The
// shard is picked from the key set with WithTxKey.
const numTxShards = 128

const defaultTxTimeout = 5 * time.Second

type shardedTx struct {
	shards  [numTxShards]sync.Mutex
	stores  Stores
	timeout time.Duration
}

// NewShardedTx serializes transactions that share a key over in-memory stores.
// Stores that can undo their writes (see requestUndoer, sourcingUndoer) are
// rolled back when the callback fails.
func NewShardedTx(stores Stores, timeout time.Duration) StoreTx {
	return &shardedTx{stores: stores, timeout: timeout}
}

func (t *shardedTx) RunInTx(ctx context.Context, fn func(ctx context.Context, stores Stores) error) error {
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}

	timeout := t.timeout
	if timeout == 0 {
		timeout = defaultTxTimeout
	}
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	shard := selectShard(ctx)
	t.shards[shard].Lock()
	defer t.shards[shard].Unlock()

	// Waiting for the lock may have used up the deadline.
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}

	var undo undoLog
	if err := fn(ctx, undo.bind(t.stores)); err != nil {
		undo.rollback()
		return err
	}
	return nil
}

// requestUndoer and sourcingUndoer revert single writes of the in-memory
// stores.
type requestUndoer interface {
	UndoCreate(requestID id.RequestID)
	UndoUpdate(previous *models.Request)
}

type sourcingUndoer interface {
	UndoCreate(sourcingID id.DataSourcingID)
	UndoUpdate(previous *models.DataSourcing)
}

// undoLog collects the inverse of every write made in one transaction.
type undoLog struct {
	steps []func()
}

func (l *undoLog) push(step func()) { l.steps = append(l.steps, step) }

// rollback applies the inverses newest first.
func (l *undoLog) rollback() {
	for i := len(l.steps) - 1; i >= 0; i-- {
		l.steps[i]()
	}
	l.steps = nil
}

// bind wraps the stores that support undo so their writes are recorded.
func (l *undoLog) bind(stores Stores) Stores {
	if u, ok := stores.Requests.(requestUndoer); ok {
		stores.Requests = undoRequests{RequestStore: stores.Requests, undoer: u, log: l}
	}
	if u, ok := stores.Sourcings.(sourcingUndoer); ok {
		stores.Sourcings = undoSourcings{SourcingStore: stores.Sourcings, undoer: u, log: l}
	}
	return stores
}

type undoRequests struct {
	RequestStore
	undoer requestUndoer
	log    *undoLog
}

func (u undoRequests) Create(ctx context.Context, req *models.Request, entry models.RequestStateHistoryEntry) error {
	if err := u.RequestStore.Create(ctx, req, entry); err != nil {
		return err
	}
	requestID := req.ID
	u.log.push(func() { u.undoer.UndoCreate(requestID) })
	return nil
}

func (u undoRequests) Update(ctx context.Context, req *models.Request, entry models.RequestStateHistoryEntry) error {
	previous, err := u.RequestStore.FindByID(ctx, req.ID)
	if err != nil {
		return err
	}
	if err := u.RequestStore.Update(ctx, req, entry); err != nil {
		return err
	}
	u.log.push(func() { u.undoer.UndoUpdate(previous) })
	return nil
}

type undoSourcings struct {
	SourcingStore
	undoer sourcingUndoer
	log    *undoLog
}

func (u undoSourcings) Create(ctx context.Context, ds *models.DataSourcing, entry models.DataSourcingStateHistoryEntry) error {
	if err := u.SourcingStore.Create(ctx, ds, entry); err != nil {
		return err
	}
	sourcingID := ds.ID
	u.log.push(func() { u.undoer.UndoCreate(sourcingID) })
	return nil
}

func (u undoSourcings) Update(ctx context.Context, ds *models.DataSourcing, entry models.DataSourcingStateHistoryEntry) error {
	previous, err := u.SourcingStore.FindByID(ctx, ds.ID)
	if err != nil {
		return err
	}
	if err := u.SourcingStore.Update(ctx, ds, entry); err != nil {
		return err
	}
	u.log.push(func() { u.undoer.UndoUpdate(previous) })
	return nil
}

type txKeyCtx struct{}

// WithTxKey sets the key that picks the in-memory lock shard. Bulk requests
// key by user, transitions by dimension.
func WithTxKey(ctx context.Context, key string) context.Context {
	return context.WithValue(ctx, txKeyCtx{}, key)
}

func selectShard(ctx context.Context) int {
	key, ok := ctx.Value(txKeyCtx{}).(string)
	if !ok || key == "" {
		return 0
	}
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return int(h.Sum32() % numTxShards)
}
