package recipes

import (
	"testing"

	"github.com/rowgraph/rowgraph/rowgraph"
)

func TestWordCount(t *testing.T) {
	docs := []rowgraph.Row{
		{"text": "hello, hello world"},
		{"text": "world says hello"},
	}
	g := WordCount("docs", "text", "count")
	out, err := g.Run(map[string]rowgraph.SourceFactory{"docs": rowgraph.SliceFactory(docs)})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	counts := make(map[string]int64)
	for _, row := range out {
		counts[row["text"].(string)] = row["count"].(int64)
	}

	if counts["hello"] != 3 {
		t.Errorf("expected hello=3, got %d", counts["hello"])
	}
	if counts["world"] != 2 {
		t.Errorf("expected world=2, got %d", counts["world"])
	}
	if counts["says"] != 1 {
		t.Errorf("expected says=1, got %d", counts["says"])
	}

	// Output must be sorted by (count, text) ascending.
	for i := 1; i < len(out); i++ {
		prevCount := out[i-1]["count"].(int64)
		curCount := out[i]["count"].(int64)
		if prevCount > curCount {
			t.Fatalf("expected ascending count order, got %v then %v", prevCount, curCount)
		}
	}
}
