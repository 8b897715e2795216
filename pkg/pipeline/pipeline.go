// Package pipeline drives the enumerators for the CLI and the HTTP API.
//
// The core packages only expose lazy sequences. This package adds what a
// front end needs around them: option validation, output formats, item
// limits, cancellation, verification counts with caching, and parallel
// count tables.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	stats, err := runner.Enumerate(ctx, pipeline.Options{
//	    Kind:   pipeline.KindPartitions,
//	    N:      10,
//	    L:      4,
//	    Format: pipeline.FormatJSON,
//	}, os.Stdout)
//
// Count by walking the successor, with the result cached:
//
//	res, err := runner.Count(ctx, pipeline.Options{Kind: pipeline.KindTrees, N: 12})
//	fmt.Println(res.Count, res.Formula)
package pipeline

import (
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/funcstructs/pkg/core/rootedtree"
	fserrors "github.com/matzehuels/funcstructs/pkg/errors"
	fsio "github.com/matzehuels/funcstructs/pkg/io"
)

// =============================================================================
// Kinds and Formats
// =============================================================================

// Object kinds.
const (
	KindTrees      = "trees"
	KindPartitions = "partitions"
)

// Output formats.
const (
	FormatText     = "text"     // bracketed sequence per line
	FormatJSON     = "json"     // JSON Lines records
	FormatBrackets = "brackets" // nested brackets, trees only
	FormatParents  = "parents"  // parent array, trees only
)

// DefaultFormat is the output format used when none is given.
const DefaultFormat = FormatText

// ValidKinds lists the supported object kinds.
var ValidKinds = []string{KindTrees, KindPartitions}

// ValidFormats lists the supported output formats.
var ValidFormats = []string{FormatText, FormatJSON, FormatBrackets, FormatParents}

// treeOnlyFormats can only render rooted trees.
var treeOnlyFormats = map[string]bool{
	FormatBrackets: true,
	FormatParents:  true,
}

// =============================================================================
// Options
// =============================================================================

// Options selects what to enumerate and how to write it.
// This struct supports JSON serialization for API requests.
type Options struct {
	Kind   string `json:"kind"`
	N      int    `json:"n"`
	L      int    `json:"l,omitempty"` // partitions only
	Limit  int    `json:"limit,omitempty"`
	Format string `json:"format,omitempty"`

	// Refresh skips cache lookups but still stores fresh results.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Stats describes a finished enumeration.
type Stats struct {
	RunID    string
	Items    int
	Duration time.Duration
	// Truncated is set when Limit stopped the run before the last object.
	Truncated bool
}

// CountResult is the outcome of a verification count.
type CountResult struct {
	Kind     string        `json:"kind"`
	N        int           `json:"n"`
	L        int           `json:"l,omitempty"`
	Count    int           `json:"count"`
	Formula  int           `json:"formula"`
	CacheHit bool          `json:"cache_hit"`
	Duration time.Duration `json:"duration_ns"`
}

// Verified reports whether walking the successor produced exactly the
// closed-form count.
func (r CountResult) Verified() bool { return r.Count == r.Formula }

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateKind checks that kind is a supported object kind.
func ValidateKind(kind string) error {
	return fserrors.ValidateChoice(fserrors.ErrCodeInvalidKind, "kind", kind, ValidKinds...)
}

// ValidateFormat checks that format is a supported output format.
func ValidateFormat(format string) error {
	return fserrors.ValidateChoice(fserrors.ErrCodeInvalidFormat, "format", format, ValidFormats...)
}

// ValidateParams checks the size parameters for kind. Tree sizes stop at
// rootedtree.MaxCountSize, the last n whose count fits in an int.
func ValidateParams(kind string, n, l int) error {
	switch kind {
	case KindTrees:
		if n > rootedtree.MaxCountSize {
			return fserrors.New(fserrors.ErrCodeInvalidSize, "trees on %d nodes cannot be counted (max %d)", n, rootedtree.MaxCountSize)
		}
		return fserrors.ValidateTreeSize(n)
	case KindPartitions:
		return fserrors.ValidatePartitionArgs(n, l)
	}
	return ValidateKind(kind)
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults normalizes kind and format, applies defaults and
// checks every field. It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	o.Kind = strings.ToLower(o.Kind)
	if err := ValidateKind(o.Kind); err != nil {
		return err
	}
	if o.Format == "" {
		o.Format = DefaultFormat
	}
	o.Format = strings.ToLower(o.Format)
	if err := ValidateFormat(o.Format); err != nil {
		return err
	}
	if o.Kind != KindTrees && treeOnlyFormats[o.Format] {
		return fserrors.New(fserrors.ErrCodeInvalidFormat, "format %q only applies to trees", o.Format)
	}
	if o.Kind == KindTrees {
		o.L = 0
	}
	if err := ValidateParams(o.Kind, o.N, o.L); err != nil {
		return err
	}
	if err := fserrors.ValidateLimit(o.Limit); err != nil {
		return err
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// Params returns the size parameters used in cache keys and hooks.
func (o *Options) Params() []int {
	if o.Kind == KindTrees {
		return []int{o.N}
	}
	return []int{o.N, o.L}
}

// RecordKind maps the option kind to the JSON Lines record kind.
func (o *Options) RecordKind() string {
	if o.Kind == KindTrees {
		return fsio.KindTree
	}
	return fsio.KindPartition
}
