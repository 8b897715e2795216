package io

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"iter"
	"os"

	"github.com/matzehuels/funcstructs/pkg/core/partition"
	"github.com/matzehuels/funcstructs/pkg/core/rootedtree"
	fserrors "github.com/matzehuels/funcstructs/pkg/errors"
)

// maxLine bounds a single JSON Lines record.
const maxLine = 1 << 20

// ReadJSONLines decodes records from r, one per line. Blank lines are
// skipped.
//
// Every record is validated: the kind must be "tree" or "partition" and the
// sequence must be a valid level sequence or partition respectively. The
// sequence stops at the first error, which is yielded with its line number
// and an INVALID_INPUT code (or the validation code from the core packages).
// ReadJSONLines does not close r.
func ReadJSONLines(r io.Reader) iter.Seq2[Record, error] {
	return func(yield func(Record, error) bool) {
		sc := bufio.NewScanner(r)
		sc.Buffer(make([]byte, 0, 64*1024), maxLine)
		line := 0
		for sc.Scan() {
			line++
			raw := bytes.TrimSpace(sc.Bytes())
			if len(raw) == 0 {
				continue
			}
			var rec Record
			if err := json.Unmarshal(raw, &rec); err != nil {
				yield(Record{}, fserrors.Wrap(fserrors.ErrCodeInvalidInput, err, "line %d: decode record", line))
				return
			}
			if err := validate(rec); err != nil {
				yield(Record{}, fmt.Errorf("line %d: %w", line, err))
				return
			}
			if !yield(rec, nil) {
				return
			}
		}
		if err := sc.Err(); err != nil {
			yield(Record{}, fserrors.Wrap(fserrors.ErrCodeInvalidInput, err, "line %d: read", line+1))
		}
	}
}

// ImportJSONLines reads every record of the JSON Lines file at path.
func ImportJSONLines(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	var out []Record
	for rec, err := range ReadJSONLines(f) {
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		out = append(out, rec)
	}
	return out, nil
}

func validate(rec Record) error {
	if rec.Index < 1 {
		return fserrors.New(fserrors.ErrCodeInvalidInput, "index must be positive, got %d", rec.Index)
	}
	switch rec.Kind {
	case KindTree:
		return rootedtree.Validate(rec.Seq)
	case KindPartition:
		return partition.Validate(rec.Seq)
	default:
		return fserrors.New(fserrors.ErrCodeInvalidKind, "unknown record kind %q", rec.Kind)
	}
}
