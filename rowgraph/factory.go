package rowgraph

import "sync"

// SourceFactory produces a fresh RowStream on each call. Graph sources are
// factories, not streams, so the same named source can be re-run
// independently across repeated or concurrent Graph.Run calls.
//
// Adapted from stream_factory_prototype.go's StreamFactory[T]/
// NewSliceFactory/CachedFactory, specialized from a generic Stream[T] to
// RowStream and folded into the rowgraph package proper (the original was
// a package-main demo file, not importable).
type SourceFactory func() RowStream

// SliceFactory returns a SourceFactory that replays a copy of rows on
// every call, so no two streams it produces can observe each other's
// consumption.
func SliceFactory(rows []Row) SourceFactory {
	frozen := make([]Row, len(rows))
	copy(frozen, rows)
	return func() RowStream {
		cp := make([]Row, len(frozen))
		copy(cp, frozen)
		return FromSlice(cp)
	}
}

// CachedFactory memoizes the rows produced by the first call to base, then
// serves every subsequent call (including concurrent ones) a fresh stream
// over that cached slice, without re-running base. Mirrors
// stream_factory_prototype.go's CachedFactory[T], which memoizes via
// sync.Once around an expensive upstream Stream[T].
func CachedFactory(base SourceFactory) SourceFactory {
	var once sync.Once
	var cached []Row
	var cacheErr error
	return func() RowStream {
		once.Do(func() {
			cached, cacheErr = Collect(base())
		})
		if cacheErr != nil {
			return func() (Row, error) { return Row{}, cacheErr }
		}
		cp := make([]Row, len(cached))
		copy(cp, cached)
		return FromSlice(cp)
	}
}

// RowBuilder is a fluent constructor for test and example data, mirroring
// stream_factory_prototype.go's RecordBuilder.
type RowBuilder struct {
	row Row
}

// NewRowBuilder starts a fresh RowBuilder.
func NewRowBuilder() *RowBuilder {
	return &RowBuilder{row: Row{}}
}

// Set assigns a column and returns the builder for chaining.
func (b *RowBuilder) Set(col string, v any) *RowBuilder {
	b.row[col] = v
	return b
}

// Build returns the constructed row.
func (b *RowBuilder) Build() Row {
	return b.row
}
