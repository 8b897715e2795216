package pipeline

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"iter"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/funcstructs/pkg/cache"
	"github.com/matzehuels/funcstructs/pkg/core/partition"
	"github.com/matzehuels/funcstructs/pkg/core/rootedtree"
	"github.com/matzehuels/funcstructs/pkg/core/seq"
	fsio "github.com/matzehuels/funcstructs/pkg/io"
	"github.com/matzehuels/funcstructs/pkg/observability"
)

// ctxCheckInterval is how many items a walk produces between cancellation
// checks.
const ctxCheckInterval = 1024

// Runner executes enumerations and counts with caching.
// Both CLI and API use it so they share caching and logging behavior.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Items returns the lazy sequence selected by opts, without limit or
// cancellation. For FormatParents the items carry parent arrays instead of
// level sequences. FormatBrackets has no item form; callers get the level
// sequences.
func Items(opts Options) (iter.Seq[seq.Item], error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	if opts.Kind == KindPartitions {
		return partition.Enumerate(opts.N, opts.L)
	}
	if opts.Format != FormatParents {
		return rootedtree.Enumerate(opts.N)
	}
	if _, err := rootedtree.NewEnumerator(opts.N); err != nil {
		return nil, err
	}
	return func(yield func(seq.Item) bool) {
		e, _ := rootedtree.NewEnumerator(opts.N)
		for e.Next() {
			it := seq.Item{Index: e.Index(), View: seq.NewView(e.Tree().Parents())}
			if !yield(it) {
				return
			}
		}
	}, nil
}

// bounded wraps items with a limit and cancellation checks. After the
// sequence is drained, truncated reports whether the limit cut it short and
// err holds the context error that stopped it, if any.
type bounded struct {
	ctx       context.Context
	items     iter.Seq[seq.Item]
	limit     int
	count     int
	truncated bool
	err       error
}

func (b *bounded) all(yield func(seq.Item) bool) {
	for it := range b.items {
		if b.limit > 0 && b.count == b.limit {
			b.truncated = true
			return
		}
		if b.count%ctxCheckInterval == 0 {
			if err := b.ctx.Err(); err != nil {
				b.err = err
				return
			}
		}
		b.count++
		if !yield(it) {
			return
		}
	}
}

// Enumerate writes the objects selected by opts to w in opts.Format. It
// stops early when opts.Limit items have been written or ctx is canceled;
// cancellation is reported as an error alongside the partial stats.
func (r *Runner) Enumerate(ctx context.Context, opts Options, w io.Writer) (Stats, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return Stats{}, fmt.Errorf("invalid options: %w", err)
	}
	stats := Stats{RunID: uuid.NewString()}
	logger := r.Logger.With("run", stats.RunID, "kind", opts.Kind)

	items, err := Items(opts)
	if err != nil {
		return stats, err
	}
	src := &bounded{ctx: ctx, items: items, limit: opts.Limit}

	hooks := observability.Enumeration()
	hooks.OnEnumerateStart(ctx, opts.Kind, opts.N, opts.L)
	logger.Debug("enumerating", "n", opts.N, "l", opts.L, "format", opts.Format, "limit", opts.Limit)
	start := time.Now()

	switch opts.Format {
	case FormatJSON:
		stats.Items, err = fsio.WriteJSONLines(w, opts.RecordKind(), src.all)
	case FormatBrackets:
		stats.Items, err = writeBrackets(ctx, w, opts)
		src.truncated = opts.Limit > 0 && stats.Items == opts.Limit && stats.Items < rootedtree.Count(opts.N)
	default:
		stats.Items, err = fsio.WriteText(w, src.all)
	}
	if err == nil {
		err = src.err
	}
	stats.Truncated = src.truncated
	stats.Duration = time.Since(start)
	hooks.OnEnumerateComplete(ctx, opts.Kind, stats.Items, stats.Duration, err)

	if err != nil {
		logger.Warn("enumeration stopped", "items", stats.Items, "err", err)
		return stats, err
	}
	logger.Info("enumerated", "n", opts.N, "l", opts.L, "items", stats.Items,
		"truncated", stats.Truncated, "duration", stats.Duration)
	return stats, nil
}

// writeBrackets writes the nested-bracket form of each tree.
func writeBrackets(ctx context.Context, w io.Writer, opts Options) (int, error) {
	e, err := rootedtree.NewEnumerator(opts.N)
	if err != nil {
		return 0, err
	}
	bw := bufio.NewWriter(w)
	n := 0
	for e.Next() {
		if opts.Limit > 0 && n == opts.Limit {
			break
		}
		if n%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				_ = bw.Flush()
				return n, err
			}
		}
		if _, err := fmt.Fprintln(bw, e.Tree().Brackets()); err != nil {
			return n, err
		}
		n++
	}
	return n, bw.Flush()
}

// Walk counts the objects selected by opts by running the successor to the
// end, checking ctx periodically.
func Walk(ctx context.Context, opts Options) (int, error) {
	opts.Format = FormatText
	opts.Limit = 0
	items, err := Items(opts)
	if err != nil {
		return 0, err
	}
	src := &bounded{ctx: ctx, items: items}
	for range src.all {
	}
	return src.count, src.err
}

// Formula returns the closed-form count for kind: the rooted tree numbers
// (A000081) or p(n, l).
func Formula(kind string, n, l int) (int, error) {
	if err := ValidateParams(kind, n, l); err != nil {
		return 0, err
	}
	if kind == KindTrees {
		return rootedtree.Count(n), nil
	}
	return partition.Count(n, l), nil
}

// countEntry is the cached form of a verification count.
type countEntry struct {
	Count int `json:"count"`
}

// Count walks the successor for opts and compares the result with the
// closed-form count. Walk results are cached under the keyer's count key.
func (r *Runner) Count(ctx context.Context, opts Options) (CountResult, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return CountResult{}, fmt.Errorf("invalid options: %w", err)
	}
	res := CountResult{Kind: opts.Kind, N: opts.N, L: opts.L}
	res.Formula, _ = Formula(opts.Kind, opts.N, opts.L)

	key := r.Keyer.CountKey(opts.Kind, opts.Params()...)
	start := time.Now()

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			var e countEntry
			if err := json.Unmarshal(data, &e); err == nil {
				observability.Cache().OnCacheHit(ctx, "count")
				res.Count = e.Count
				res.CacheHit = true
				res.Duration = time.Since(start)
				return res, nil
			}
		} else if err != nil {
			r.Logger.Warn("cache read failed", "key", key, "err", err)
		}
		observability.Cache().OnCacheMiss(ctx, "count")
	}

	hooks := observability.Enumeration()
	hooks.OnEnumerateStart(ctx, opts.Kind, opts.N, opts.L)
	count, err := Walk(ctx, opts)
	res.Duration = time.Since(start)
	hooks.OnEnumerateComplete(ctx, opts.Kind, count, res.Duration, err)
	if err != nil {
		return res, err
	}
	res.Count = count

	if data, err := json.Marshal(countEntry{Count: count}); err == nil {
		if err := r.Cache.Set(ctx, key, data, cache.TTLCount); err != nil {
			r.Logger.Warn("cache write failed", "key", key, "err", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "count", len(data))
		}
	}

	r.Logger.Debug("counted", "kind", opts.Kind, "n", opts.N, "l", opts.L,
		"count", count, "formula", res.Formula, "duration", res.Duration)
	return res, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
