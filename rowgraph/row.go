package rowgraph

import "fmt"

// Row is a finite mapping from column name to value. Values are opaque and
// heterogeneous — the closed set this engine understands natively is
// string, int64, float64, bool, and [2]float64 (a (lon, lat) geo pair) —
// but any comparable Go value can ride along in a column the engine never
// sorts, groups, or joins on.
//
// Rows are cheap-to-copy values. Operators never mutate a Row they
// received; Copy (or building a fresh Row literal) is how a mapper
// produces a changed row.
type Row map[string]any

// NewRow returns an empty row, ready for Set chaining during construction.
func NewRow() Row {
	return Row{}
}

// Get returns the value at col and whether it was present.
func (r Row) Get(col string) (any, bool) {
	v, ok := r[col]
	return v, ok
}

// GetOr returns the value at col, or def if absent.
func (r Row) GetOr(col string, def any) any {
	if v, ok := r[col]; ok {
		return v
	}
	return def
}

// Has reports whether col is present in r.
func (r Row) Has(col string) bool {
	_, ok := r[col]
	return ok
}

// Set mutates r in place and returns it, for fluent construction of a row
// a mapper is building fresh (never call this on a row received as input —
// copy it first).
func (r Row) Set(col string, v any) Row {
	r[col] = v
	return r
}

// Keys returns the column names of r, in no particular order.
func (r Row) Keys() []string {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	return keys
}

// Copy returns a shallow copy of r, safe for a mapper to mutate.
func (r Row) Copy() Row {
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Equal reports whether two rows have the same column set and, for every
// shared column, equal values under Go's == where the underlying values
// are comparable (geo pairs compare component-wise).
func (r Row) Equal(other Row) bool {
	if len(r) != len(other) {
		return false
	}
	for k, v := range r {
		ov, ok := other[k]
		if !ok || !valuesEqual(v, ov) {
			return false
		}
	}
	return true
}

func valuesEqual(a, b any) bool {
	switch av := a.(type) {
	case [2]float64:
		bv, ok := b.([2]float64)
		return ok && av == bv
	default:
		return a == b
	}
}

// KeyTuple extracts the ordered projection of r onto keys, for use as a
// sort/group/join key. A missing column yields a nil slot rather than an
// error — comparison of a missing key is spec-undefined but must stay
// consistent within one sort/group/join call, which compareValues
// guarantees by treating nil as sorting before any present value.
func (r Row) KeyTuple(keys []string) []any {
	tuple := make([]any, len(keys))
	for i, k := range keys {
		tuple[i] = r[k]
	}
	return tuple
}

// compareValues returns -1, 0, or 1 for a compared to b. int64 and float64
// coerce to a common type for comparison; any other mismatched pair, or any
// type this engine doesn't natively understand, falls back to a
// deterministic comparison of their fmt.Sprintf("%v", ...) forms. A nil
// value (missing column) always sorts before a non-nil one.
func compareValues(a, b any) int {
	if a == nil && b == nil {
		return 0
	}
	if a == nil {
		return -1
	}
	if b == nil {
		return 1
	}

	if af, aok := asFloat(a); aok {
		if bf, bok := asFloat(b); bok {
			switch {
			case af < bf:
				return -1
			case af > bf:
				return 1
			default:
				return 0
			}
		}
	}

	if as, aok := a.(string); aok {
		if bs, bok := b.(string); bok {
			switch {
			case as < bs:
				return -1
			case as > bs:
				return 1
			default:
				return 0
			}
		}
	}

	if ab, aok := a.(bool); aok {
		if bb, bok := b.(bool); bok {
			switch {
			case !ab && bb:
				return -1
			case ab && !bb:
				return 1
			default:
				return 0
			}
		}
	}

	as := fmt.Sprintf("%v", a)
	bs := fmt.Sprintf("%v", b)
	switch {
	case as < bs:
		return -1
	case as > bs:
		return 1
	default:
		return 0
	}
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int64:
		return float64(n), true
	case int:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

// compareKeyTuples lexicographically compares two key tuples produced by
// Row.KeyTuple, following original_source/lib/operations.py's
// compare_key_values: the first differing component decides the order;
// equal-length equal tuples compare equal.
func compareKeyTuples(a, b []any) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if c := compareValues(a[i], b[i]); c != 0 {
			return c
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	default:
		return 0
	}
}
