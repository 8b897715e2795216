package io

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"iter"
	"os"

	"github.com/matzehuels/funcstructs/pkg/core/seq"
)

// Record kinds.
const (
	KindTree      = "tree"
	KindPartition = "partition"
)

// Record is one line of JSON Lines output.
type Record struct {
	Kind  string `json:"kind"`
	Index int    `json:"index"`
	Seq   []int  `json:"seq"`
}

// WriteText writes each item's bracketed form on its own line and returns
// the number of items written.
func WriteText(w io.Writer, items iter.Seq[seq.Item]) (int, error) {
	bw := bufio.NewWriter(w)
	n := 0
	for it := range items {
		if _, err := fmt.Fprintln(bw, it.View); err != nil {
			return n, fmt.Errorf("write item %d: %w", it.Index, err)
		}
		n++
	}
	if err := bw.Flush(); err != nil {
		return n, fmt.Errorf("flush: %w", err)
	}
	return n, nil
}

// WriteJSONLines writes one [Record] of the given kind per item and returns
// the number of items written.
func WriteJSONLines(w io.Writer, kind string, items iter.Seq[seq.Item]) (int, error) {
	bw := bufio.NewWriter(w)
	enc := json.NewEncoder(bw)
	n := 0
	rec := Record{Kind: kind}
	for it := range items {
		rec.Index = it.Index
		rec.Seq = it.Clone()
		if err := enc.Encode(rec); err != nil {
			return n, fmt.Errorf("encode item %d: %w", it.Index, err)
		}
		n++
	}
	if err := bw.Flush(); err != nil {
		return n, fmt.Errorf("flush: %w", err)
	}
	return n, nil
}

// ExportJSONLines writes items to a JSON Lines file at path.
// This is a convenience wrapper around [WriteJSONLines] for file-based output.
func ExportJSONLines(path, kind string, items iter.Seq[seq.Item]) (int, error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("create %s: %w", path, err)
	}
	n, err := WriteJSONLines(f, kind, items)
	if cerr := f.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("close %s: %w", path, cerr)
	}
	return n, err
}
