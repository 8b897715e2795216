package pipeline

import (
	"context"
	"iter"

	"github.com/matzehuels/funcstructs/pkg/core/seq"
	fserrors "github.com/matzehuels/funcstructs/pkg/errors"
	fsio "github.com/matzehuels/funcstructs/pkg/io"
)

// CheckResult describes a verified JSON Lines listing.
type CheckResult struct {
	Kind    string `json:"kind"`
	N       int    `json:"n"`
	L       int    `json:"l,omitempty"`
	Records int    `json:"records"`
	// Complete is set when the listing ends with the last object of its
	// enumeration.
	Complete bool `json:"complete"`
}

// Check verifies that records is a prefix of an enumeration: one kind and
// size throughout, indexes 1, 2, ... and every sequence equal to the object
// the successor produces at that position. The size is taken from the first
// record. Mismatches fail with INVALID_INPUT naming the record.
func Check(ctx context.Context, records iter.Seq2[fsio.Record, error]) (CheckResult, error) {
	var (
		res  CheckResult
		next func() (seq.Item, bool)
		stop func()
	)
	defer func() {
		if stop != nil {
			stop()
		}
	}()

	for rec, err := range records {
		if err != nil {
			return res, err
		}
		if res.Records%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return res, err
			}
		}
		if next == nil {
			opts := optionsFor(rec)
			items, err := Items(opts)
			if err != nil {
				return res, fserrors.Wrap(fserrors.ErrCodeInvalidInput, err, "record 1")
			}
			res.Kind, res.N, res.L = opts.Kind, opts.N, opts.L
			next, stop = iter.Pull(items)
		}

		res.Records++
		if kind := optionsFor(rec).Kind; kind != res.Kind {
			return res, fserrors.New(fserrors.ErrCodeInvalidInput, "record %d: kind %s after %s", res.Records, kind, res.Kind)
		}
		if rec.Index != res.Records {
			return res, fserrors.New(fserrors.ErrCodeInvalidInput, "record %d: index %d out of order", res.Records, rec.Index)
		}
		want, ok := next()
		if !ok {
			return res, fserrors.New(fserrors.ErrCodeInvalidInput, "record %d: enumeration has only %d objects", res.Records, res.Records-1)
		}
		if !want.Equal(rec.Seq) {
			return res, fserrors.New(fserrors.ErrCodeInvalidInput, "record %d: got %v, want %s", res.Records, rec.Seq, want)
		}
	}

	if next != nil {
		_, more := next()
		res.Complete = !more
	}
	return res, nil
}

// optionsFor derives the enumeration a record belongs to.
func optionsFor(rec fsio.Record) Options {
	if rec.Kind == fsio.KindTree {
		return Options{Kind: KindTrees, N: len(rec.Seq)}
	}
	sum := 0
	for _, x := range rec.Seq {
		sum += x
	}
	return Options{Kind: KindPartitions, N: sum, L: len(rec.Seq)}
}
