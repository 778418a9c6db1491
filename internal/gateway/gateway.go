// ABOUTME: Persistence gateway: typed reading collections over a key-value store.
// ABOUTME: Serialises writers per key and reports unreadable collections as diagnostics.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/harperreed/healthlog/internal/kv"
	"github.com/harperreed/healthlog/internal/logging"
)

var (
	// ErrStorageWrite wraps failures from the underlying store's Set.
	ErrStorageWrite = errors.New("storage write failed")

	// ErrStorageRead wraps store read failures that block a mutation.
	ErrStorageRead = errors.New("storage read failed")
)

// CorruptSuffix is appended to a key to preserve an unparsable blob
// before it is overwritten.
const CorruptSuffix = ".corrupt"

// DiagnosticKind classifies a read-side problem.
type DiagnosticKind string

const (
	// DiagnosticRead means the store returned an error other than not-found.
	DiagnosticRead DiagnosticKind = "read"
	// DiagnosticDecode means the stored blob was not a valid collection.
	DiagnosticDecode DiagnosticKind = "decode"
)

// Diagnostic records a collection that was treated as empty, or had
// records dropped, because it could not be read. One Diagnostic is kept per
// key and kind; Count is how often it occurred and Err and At are the latest.
type Diagnostic struct {
	Key   string
	Kind  DiagnosticKind
	Err   error
	At    time.Time
	Count int
}

type diagKey struct {
	key  string
	kind DiagnosticKind
}

// Gateway owns the store, the per-key write locks, and the diagnostics log.
type Gateway struct {
	store  kv.Store
	logger *zap.Logger

	locksMu sync.Mutex
	locks   map[string]*sync.Mutex

	diagMu  sync.Mutex
	diags   []Diagnostic
	diagIdx map[diagKey]int

	// OnDiagnostic, if set, is called the first time each key and kind is
	// reported.
	OnDiagnostic func(Diagnostic)
}

// New creates a gateway over store. A nil logger disables logging.
func New(store kv.Store, logger *zap.Logger) *Gateway {
	return &Gateway{
		store:   store,
		logger:  logging.OrNop(logger).Named(logging.NameGateway),
		locks:   make(map[string]*sync.Mutex),
		diagIdx: make(map[diagKey]int),
	}
}

// Diagnostics returns the recorded diagnostics in order of first occurrence.
func (g *Gateway) Diagnostics() []Diagnostic {
	g.diagMu.Lock()
	defer g.diagMu.Unlock()
	return append([]Diagnostic(nil), g.diags...)
}

func (g *Gateway) report(key string, kind DiagnosticKind, err error) {
	now := time.Now()
	k := diagKey{key: key, kind: kind}

	g.diagMu.Lock()
	if i, ok := g.diagIdx[k]; ok {
		g.diags[i].Err = err
		g.diags[i].At = now
		g.diags[i].Count++
		g.diagMu.Unlock()
		g.logger.Debug("collection still unreadable", zap.String("key", key), zap.String("kind", string(kind)))
		return
	}
	d := Diagnostic{Key: key, Kind: kind, Err: err, At: now, Count: 1}
	g.diagIdx[k] = len(g.diags)
	g.diags = append(g.diags, d)
	hook := g.OnDiagnostic
	g.diagMu.Unlock()

	g.logger.Warn("collection unreadable, treating as empty",
		zap.String("key", key),
		zap.String("kind", string(kind)),
		zap.Error(err),
	)
	if hook != nil {
		hook(d)
	}
}

func (g *Gateway) lockFor(key string) *sync.Mutex {
	g.locksMu.Lock()
	defer g.locksMu.Unlock()

	l, ok := g.locks[key]
	if !ok {
		l = &sync.Mutex{}
		g.locks[key] = l
	}
	return l
}

// Collection is a typed view of the ordered list stored under one key.
type Collection[T any] struct {
	g   *Gateway
	key string
}

// NewCollection returns the collection stored under key.
func NewCollection[T any](g *Gateway, key string) *Collection[T] {
	return &Collection[T]{g: g, key: key}
}

// Key returns the storage key.
func (c *Collection[T]) Key() string {
	return c.key
}

// loadResult separates a clean load from the two failure shapes.
type loadResult[T any] struct {
	items   []T
	raw     []byte
	corrupt bool
	readErr error
}

func (c *Collection[T]) load(ctx context.Context) loadResult[T] {
	data, err := c.g.store.Get(ctx, c.key)
	if errors.Is(err, kv.ErrNotFound) {
		return loadResult[T]{}
	}
	if err != nil {
		c.g.report(c.key, DiagnosticRead, err)
		return loadResult[T]{readErr: err}
	}
	if len(data) == 0 {
		return loadResult[T]{}
	}

	items, nulls, err := decode[T](data)
	if err != nil {
		c.g.report(c.key, DiagnosticDecode, err)
		return loadResult[T]{raw: data, corrupt: true}
	}
	if nulls > 0 {
		// Keep the readable records; the next write preserves the original.
		c.g.report(c.key, DiagnosticDecode, fmt.Errorf("%w: %d", errNullRecords, nulls))
		return loadResult[T]{items: items, raw: data, corrupt: true}
	}
	return loadResult[T]{items: items}
}

var errNullRecords = errors.New("null records dropped")

var jsonNull = []byte("null")

// decode parses a JSON array element by element, skipping null elements.
func decode[T any](data []byte) ([]T, int, error) {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, 0, err
	}

	items := make([]T, 0, len(raws))
	nulls := 0
	for i, raw := range raws {
		if bytes.Equal(bytes.TrimSpace(raw), jsonNull) {
			nulls++
			continue
		}
		var item T
		if err := json.Unmarshal(raw, &item); err != nil {
			return nil, 0, fmt.Errorf("record %d: %w", i, err)
		}
		items = append(items, item)
	}
	return items, nulls, nil
}

// Load returns the stored collection in storage order. Missing keys and
// unreadable collections both yield an empty slice; the latter are recorded
// as diagnostics.
func (c *Collection[T]) Load(ctx context.Context) []T {
	return c.load(ctx).items
}

// Mutate loads the collection, applies fn, and stores the result while
// holding this key's lock. If fn returns an error nothing is stored.
//
// A collection that failed to decode is preserved under key+CorruptSuffix
// and then replaced. A collection that could not be read at all is not
// overwritten; Mutate returns ErrStorageRead instead.
func (c *Collection[T]) Mutate(ctx context.Context, fn func([]T) ([]T, error)) error {
	lock := c.g.lockFor(c.key)
	lock.Lock()
	defer lock.Unlock()

	res := c.load(ctx)
	if res.readErr != nil {
		return fmt.Errorf("%w: %s: %w", ErrStorageRead, c.key, res.readErr)
	}

	next, err := fn(res.items)
	if err != nil {
		return err
	}

	if next == nil {
		next = []T{}
	}
	data, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", c.key, err)
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	if res.corrupt {
		if err := c.g.store.Set(ctx, c.key+CorruptSuffix, res.raw); err != nil {
			return fmt.Errorf("%w: preserve %s: %w", ErrStorageWrite, c.key, err)
		}
		c.g.logger.Warn("preserved unreadable collection", zap.String("key", c.key+CorruptSuffix))
	}

	if err := c.g.store.Set(ctx, c.key, data); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrStorageWrite, c.key, err)
	}
	return nil
}
