package rowgraph

import "testing"

func TestMergeMatchedRowsSuffixesCollidingColumns(t *testing.T) {
	a := Row{"k": "x", "v": int64(1)}
	b := Row{"k": "x", "v": int64(2)}
	merged := mergeMatchedRows(a, b, []string{"k"}, "_1", "_2")
	if merged["k"] != "x" {
		t.Fatalf("expected key column preserved unsuffixed: %v", merged)
	}
	if merged["v_1"] != int64(1) || merged["v_2"] != int64(2) {
		t.Fatalf("expected colliding column suffixed both sides: %v", merged)
	}
	if _, ok := merged["v"]; ok {
		t.Fatalf("expected no unsuffixed v in merged row: %v", merged)
	}
}

func TestMergeMatchedRowsNoCollision(t *testing.T) {
	a := Row{"k": "x", "a_only": int64(1)}
	b := Row{"k": "x", "b_only": int64(2)}
	merged := mergeMatchedRows(a, b, []string{"k"}, "_1", "_2")
	if merged["a_only"] != int64(1) || merged["b_only"] != int64(2) {
		t.Fatalf("expected non-colliding columns copied through unchanged: %v", merged)
	}
}

func TestLeftJoinerEmitsUnmatchedLeft(t *testing.T) {
	left := FromSlice([]Row{{"k": int64(1), "l": "L1"}, {"k": int64(2), "l": "L2"}})
	right := FromSlice([]Row{{"k": int64(1), "r": "R1"}})
	out, err := Collect(ApplyJoin(NewLeftJoinerDefault(), []string{"k"}, left, right))
	if err != nil {
		t.Fatalf("join: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 rows (1 matched + 1 left-only), got %d: %v", len(out), out)
	}
}

func TestRightJoinerEmitsUnmatchedRight(t *testing.T) {
	left := FromSlice([]Row{{"k": int64(1), "l": "L1"}})
	right := FromSlice([]Row{{"k": int64(1), "r": "R1"}, {"k": int64(2), "r": "R2"}})
	out, err := Collect(ApplyJoin(NewRightJoinerDefault(), []string{"k"}, left, right))
	if err != nil {
		t.Fatalf("join: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 rows (1 matched + 1 right-only), got %d: %v", len(out), out)
	}
}

func TestInnerJoinerSuppressesUnmatched(t *testing.T) {
	left := FromSlice([]Row{{"k": int64(1)}, {"k": int64(2)}})
	right := FromSlice([]Row{{"k": int64(2)}, {"k": int64(3)}})
	out, err := Collect(ApplyJoin(NewInnerJoinerDefault(), []string{"k"}, left, right))
	if err != nil {
		t.Fatalf("join: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("expected 1 matched row, got %d: %v", len(out), out)
	}
}
