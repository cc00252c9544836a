package recipes

import (
	"testing"

	"github.com/rowgraph/rowgraph/rowgraph"
)

func TestInvertedIndexTopNPerWord(t *testing.T) {
	docs := []rowgraph.Row{
		{"doc_id": "1", "text": "hello world hello again"},
		{"doc_id": "2", "text": "world says hello to the world"},
		{"doc_id": "3", "text": "completely different content here entirely"},
	}
	g := InvertedIndex("docs", "doc_id", "text", "tf_idf")
	out, err := g.Run(map[string]rowgraph.SourceFactory{"docs": rowgraph.SliceFactory(docs)})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	perDoc := make(map[string]int)
	perWord := make(map[string]int)
	for _, row := range out {
		doc := row["doc_id"].(string)
		perDoc[doc]++
		perWord[row["text"].(string)]++
		if _, ok := row["tf_idf"]; !ok {
			t.Errorf("row missing tf_idf: %v", row)
		}
	}
	for word, n := range perWord {
		if n > 3 {
			t.Errorf("word %q has %d rows, expected at most 3 (TopN)", word, n)
		}
	}
	if len(perDoc) == 0 {
		t.Fatalf("expected at least one document in output")
	}
}
