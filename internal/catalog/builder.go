package catalog

import (
	"context"
	"fmt"
	"sort"

	"github.com/dpatil-neu/skycatalog/internal/logging"
)

// Lister is the single object-storage capability the builder needs: list the
// immediate child path segments under a prefix.
type Lister interface {
	ListPrefixes(ctx context.Context, bucket, prefix string) ([]string, error)
}

// Builder walks a bucket's delimiter hierarchy and flattens it into records.
type Builder struct {
	store  Lister
	bucket string
	logger logging.Logger
}

func NewBuilder(store Lister, bucket string, logger logging.Logger) *Builder {
	return &Builder{
		store:  store,
		bucket: bucket,
		logger: logger.With("module", "catalog_builder", "bucket", bucket),
	}
}

// Build traverses the hierarchy depth-first, children in lexical order, and
// returns one record per full-depth path. IDs are dense, start at 1 and
// follow traversal order; they are not stable across rebuilds. A branch with
// no children simply contributes no records.
//
// The output is a pure function of current remote state, so rebuilding
// against an unchanged bucket yields the same value tuples.
func (b *Builder) Build(ctx context.Context, schema Schema) ([]Record, error) {

	depth := schema.Depth()
	if depth == 0 {
		return nil, fmt.Errorf("schema %q has no fields", schema.Dataset)
	}

	roots := schema.Roots
	if len(roots) == 0 {
		discovered, err := b.store.ListPrefixes(ctx, b.bucket, "")
		if err != nil {
			return nil, fmt.Errorf("discovering top level: %w", err)
		}
		roots = discovered
	}
	roots = append([]string(nil), roots...)
	sort.Strings(roots)

	var records []Record

	var walk func(prefix string, values []string) error
	walk = func(prefix string, values []string) error {
		if len(values) == depth {
			records = append(records, Record{
				ID:     int64(len(records) + 1),
				Values: append([]string(nil), values...),
			})
			return nil
		}

		children, err := b.store.ListPrefixes(ctx, b.bucket, prefix)
		if err != nil {
			return fmt.Errorf("listing %q: %w", prefix, err)
		}
		sort.Strings(children)

		for _, child := range children {
			if err := walk(prefix+child+"/", append(values, child)); err != nil {
				return err
			}
		}
		return nil
	}

	for _, root := range roots {
		if err := walk(root+"/", []string{root}); err != nil {
			return nil, err
		}
	}

	b.logger.Info(ctx, "catalog build finished",
		"dataset", schema.Dataset, "records", len(records))

	return records, nil
}
