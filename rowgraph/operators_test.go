package rowgraph

import "testing"

func TestMapDoublesRowCount(t *testing.T) {
	input := FromSlice([]Row{{"n": int64(1)}, {"n": int64(2)}})
	dup := MapperFunc(func(r Row) ([]Row, error) {
		return []Row{r.Copy(), r.Copy()}, nil
	})
	out, err := Collect(Map(dup)(input))
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if len(out) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(out))
	}
}

func TestMapDoesNotMutateInput(t *testing.T) {
	input := FromSlice([]Row{{"n": int64(1)}})
	addField := MapperFunc(func(r Row) ([]Row, error) {
		out := r.Copy()
		out["extra"] = true
		return []Row{out}, nil
	})
	out, err := Collect(Map(addField)(input))
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if _, ok := out[0].Get("extra"); !ok {
		t.Fatalf("expected extra field on output row")
	}
}

func TestReduceEchoesGroupKeys(t *testing.T) {
	rows := []Row{
		{"k": "a", "v": int64(1)},
		{"k": "a", "v": int64(2)},
		{"k": "b", "v": int64(3)},
	}
	out, err := Collect(Reduce(Count("n"), []string{"k"})(FromSlice(rows)))
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(out))
	}
	if out[0]["k"] != "a" || out[0]["n"] != int64(2) {
		t.Errorf("unexpected group a result: %v", out[0])
	}
	if out[1]["k"] != "b" || out[1]["n"] != int64(1) {
		t.Errorf("unexpected group b result: %v", out[1])
	}
}

func TestApplyJoinInnerSubsumedByOuter(t *testing.T) {
	left := func() RowStream {
		return FromSlice([]Row{{"k": int64(1), "l": "L1"}, {"k": int64(2), "l": "L2"}})
	}
	right := func() RowStream {
		return FromSlice([]Row{{"k": int64(1), "r": "R1"}, {"k": int64(3), "r": "R3"}})
	}

	inner, err := Collect(ApplyJoin(NewInnerJoinerDefault(), []string{"k"}, left(), right()))
	if err != nil {
		t.Fatalf("inner join: %v", err)
	}
	outer, err := Collect(ApplyJoin(NewOuterJoinerDefault(), []string{"k"}, left(), right()))
	if err != nil {
		t.Fatalf("outer join: %v", err)
	}

	if len(inner) != 1 {
		t.Fatalf("expected 1 inner-joined row, got %d: %v", len(inner), inner)
	}
	if len(outer) != 3 {
		t.Fatalf("expected 3 outer-joined rows, got %d: %v", len(outer), outer)
	}

	for _, row := range inner {
		found := false
		for _, other := range outer {
			if row.Equal(other) {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("inner-join row %v not found among outer-join rows", row)
		}
	}
}

func TestApplyJoinSymmetricRowCount(t *testing.T) {
	left := func() RowStream {
		return FromSlice([]Row{{"k": int64(1), "l": "L1"}, {"k": int64(2), "l": "L2"}})
	}
	right := func() RowStream {
		return FromSlice([]Row{{"k": int64(1), "r": "R1"}, {"k": int64(3), "r": "R3"}})
	}

	ab, err := Collect(ApplyJoin(NewOuterJoinerDefault(), []string{"k"}, left(), right()))
	if err != nil {
		t.Fatalf("a-b join: %v", err)
	}
	ba, err := Collect(ApplyJoin(NewOuterJoinerDefault(), []string{"k"}, right(), left()))
	if err != nil {
		t.Fatalf("b-a join: %v", err)
	}
	if len(ab) != len(ba) {
		t.Fatalf("expected symmetric row count, got %d vs %d", len(ab), len(ba))
	}
}
