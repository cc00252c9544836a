package rowgraph

import "testing"

func TestRowCopyIsIndependent(t *testing.T) {
	r := Row{"a": int64(1)}
	c := r.Copy()
	c["a"] = int64(2)
	if r["a"] != int64(1) {
		t.Fatalf("original row mutated via copy: %v", r)
	}
}

func TestRowEqual(t *testing.T) {
	a := Row{"x": int64(1), "y": "hi"}
	b := Row{"x": int64(1), "y": "hi"}
	c := Row{"x": int64(2), "y": "hi"}
	if !a.Equal(b) {
		t.Fatalf("expected %v to equal %v", a, b)
	}
	if a.Equal(c) {
		t.Fatalf("expected %v to not equal %v", a, c)
	}
}

func TestKeyTupleMissingKey(t *testing.T) {
	r := Row{"a": int64(1)}
	tuple := r.KeyTuple([]string{"a", "b"})
	if tuple[0] != int64(1) || tuple[1] != nil {
		t.Fatalf("unexpected key tuple: %v", tuple)
	}
}

func TestCompareValuesNumericCoercion(t *testing.T) {
	if compareValues(int64(1), float64(1.0)) != 0 {
		t.Fatalf("expected int64(1) == float64(1.0)")
	}
	if compareValues(int64(1), float64(2.0)) >= 0 {
		t.Fatalf("expected int64(1) < float64(2.0)")
	}
}

func TestCompareValuesNilSortsFirst(t *testing.T) {
	if compareValues(nil, int64(-1000)) >= 0 {
		t.Fatalf("expected nil to sort before any present value")
	}
	if compareValues(int64(-1000), nil) <= 0 {
		t.Fatalf("expected nil to sort before any present value")
	}
}

func TestCompareKeyTuplesLexicographic(t *testing.T) {
	a := []any{int64(1), "a"}
	b := []any{int64(1), "b"}
	if compareKeyTuples(a, b) >= 0 {
		t.Fatalf("expected [1,a] < [1,b]")
	}
	if compareKeyTuples(a, a) != 0 {
		t.Fatalf("expected equal tuples to compare equal")
	}
}
