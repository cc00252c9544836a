package rowgraph

import "testing"

func reduceAll(r Reducer, keys []string, rows []Row) ([]Row, error) {
	return Collect(Reduce(r, keys)(FromSlice(rows)))
}

func TestSumSingleKeyEcho(t *testing.T) {
	rows := []Row{
		{"k1": "a", "k2": "x", "v": int64(1)},
		{"k1": "a", "k2": "x", "v": int64(2)},
	}
	out, err := reduceAll(Sum("v"), []string{"k1", "k2"}, rows)
	if err != nil {
		t.Fatalf("reduce: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("expected 1 row (single group), got %d", len(out))
	}
	if _, ok := out[0].Get("k2"); ok {
		t.Fatalf("Sum must echo only the first key column, found k2 in %v", out[0])
	}
	if out[0]["k1"] != "a" || out[0]["v"] != int64(3) {
		t.Fatalf("unexpected sum result: %v", out[0])
	}
}

func TestMeanEchoesAllKeys(t *testing.T) {
	rows := []Row{
		{"k1": "a", "k2": "x", "v": 2.0},
		{"k1": "a", "k2": "x", "v": 4.0},
	}
	out, err := reduceAll(Mean("v"), []string{"k1", "k2"}, rows)
	if err != nil {
		t.Fatalf("reduce: %v", err)
	}
	if out[0]["k1"] != "a" || out[0]["k2"] != "x" || out[0]["v"] != 3.0 {
		t.Fatalf("unexpected mean result: %v", out[0])
	}
}

func TestTermFrequencyPreservesFirstOccurrenceOrder(t *testing.T) {
	rows := []Row{
		{"doc": "d1", "w": "b"},
		{"doc": "d1", "w": "a"},
		{"doc": "d1", "w": "b"},
	}
	out, err := reduceAll(TermFrequency("w", ""), []string{"doc"}, rows)
	if err != nil {
		t.Fatalf("reduce: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 distinct words, got %d", len(out))
	}
	if out[0]["w"] != "b" || out[1]["w"] != "a" {
		t.Fatalf("expected first-occurrence order [b a], got %v, %v", out[0]["w"], out[1]["w"])
	}
	if out[0]["tf"] != 2.0/3.0 {
		t.Fatalf("unexpected tf for b: %v", out[0]["tf"])
	}
}

func TestTopNLargestAndSmallest(t *testing.T) {
	rows := []Row{
		{"k": "g", "v": int64(5)},
		{"k": "g", "v": int64(1)},
		{"k": "g", "v": int64(9)},
		{"k": "g", "v": int64(3)},
	}
	largest, err := reduceAll(TopN("v", 2, true), []string{"k"}, rows)
	if err != nil {
		t.Fatalf("reduce: %v", err)
	}
	if len(largest) != 2 || largest[0]["v"] != int64(9) || largest[1]["v"] != int64(5) {
		t.Fatalf("unexpected top-2 largest: %v", largest)
	}

	smallest, err := reduceAll(TopN("v", 2, false), []string{"k"}, rows)
	if err != nil {
		t.Fatalf("reduce: %v", err)
	}
	if len(smallest) != 2 || smallest[0]["v"] != int64(1) || smallest[1]["v"] != int64(3) {
		t.Fatalf("unexpected top-2 smallest: %v", smallest)
	}
}

func TestTopNMissingColumnIsSchemaError(t *testing.T) {
	rows := []Row{{"k": "g", "other": int64(1)}}
	_, err := reduceAll(TopN("v", 1, true), []string{"k"}, rows)
	if err == nil {
		t.Fatalf("expected schema error for missing top-n column")
	}
}

func TestFirstReducerLeavesRestForAdvance(t *testing.T) {
	rows := []Row{
		{"k": "a", "v": int64(1)},
		{"k": "a", "v": int64(2)},
		{"k": "b", "v": int64(3)},
	}
	out, err := reduceAll(FirstReducer(), []string{"k"}, rows)
	if err != nil {
		t.Fatalf("reduce: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 rows (one per group), got %d", len(out))
	}
	if out[0]["v"] != int64(1) || out[1]["v"] != int64(3) {
		t.Fatalf("unexpected first-reducer results: %v", out)
	}
}
