package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"runtime"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/funcstructs/pkg/cache"
	fserrors "github.com/matzehuels/funcstructs/pkg/errors"
	"github.com/matzehuels/funcstructs/pkg/observability"
)

// CensusRow is one cell of a count table.
type CensusRow struct {
	N       int `json:"n"`
	L       int `json:"l,omitempty"`
	Count   int `json:"count"`
	Formula int `json:"formula"`
}

// Census is a table of verification counts for every size up to Max.
type Census struct {
	Kind     string        `json:"kind"`
	Max      int           `json:"max"`
	Rows     []CensusRow   `json:"rows"`
	CacheHit bool          `json:"cache_hit"`
	Duration time.Duration `json:"duration_ns"`
}

// Verified reports whether every row matches its closed-form count.
func (c *Census) Verified() bool {
	for _, r := range c.Rows {
		if r.Count != r.Formula {
			return false
		}
	}
	return true
}

// censusCells lists the parameter pairs of a census: n = 1..max for trees,
// and every (n, l) with 1 <= l <= n <= max for partitions.
func censusCells(kind string, max int) [][2]int {
	var cells [][2]int
	for n := 1; n <= max; n++ {
		if kind == KindTrees {
			cells = append(cells, [2]int{n, 0})
			continue
		}
		for l := 1; l <= n; l++ {
			cells = append(cells, [2]int{n, l})
		}
	}
	return cells
}

// Census counts every size up to max by walking the successor. Each cell
// runs its own enumerator, at most workers at a time (GOMAXPROCS when
// workers <= 0). Individual cells go through [Runner.Count] and its cache;
// the whole table is cached as well.
func (r *Runner) Census(ctx context.Context, kind string, max, workers int) (*Census, error) {
	kind = strings.ToLower(kind)
	if err := ValidateKind(kind); err != nil {
		return nil, err
	}
	if max < 1 {
		return nil, fserrors.New(fserrors.ErrCodeInvalidSize, "census needs a positive maximum, got %d", max)
	}
	if err := ValidateParams(kind, max, 1); err != nil {
		return nil, err
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	start := time.Now()
	key := r.Keyer.CensusKey(kind, max)
	if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
		var c Census
		if err := json.Unmarshal(data, &c); err == nil && len(c.Rows) > 0 {
			observability.Cache().OnCacheHit(ctx, "census")
			c.CacheHit = true
			c.Duration = time.Since(start)
			return &c, nil
		}
	}
	observability.Cache().OnCacheMiss(ctx, "census")

	cells := censusCells(kind, max)
	rows := make([]CensusRow, len(cells))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, cell := range cells {
		g.Go(func() error {
			res, err := r.Count(gctx, Options{Kind: kind, N: cell[0], L: cell[1], Logger: r.Logger})
			if err != nil {
				return fmt.Errorf("census %s n=%d l=%d: %w", kind, cell[0], cell[1], err)
			}
			rows[i] = CensusRow{N: res.N, L: res.L, Count: res.Count, Formula: res.Formula}
			return nil
		})
	}
	err := g.Wait()
	duration := time.Since(start)
	observability.Enumeration().OnCensusComplete(ctx, kind, max, duration, err)
	if err != nil {
		return nil, err
	}

	c := &Census{Kind: kind, Max: max, Rows: rows, Duration: duration}
	if data, err := json.Marshal(c); err == nil {
		if err := r.Cache.Set(ctx, key, data, cache.TTLCensus); err == nil {
			observability.Cache().OnCacheSet(ctx, "census", len(data))
		}
	}
	r.Logger.Info("census complete", "kind", kind, "max", max, "cells", len(rows),
		"workers", workers, "duration", duration)
	return c, nil
}
