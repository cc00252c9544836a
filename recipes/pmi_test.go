package recipes

import (
	"testing"

	"github.com/rowgraph/rowgraph/rowgraph"
)

func TestPMITopNPerDocumentAndWordLength(t *testing.T) {
	docs := []rowgraph.Row{
		{"doc_id": "1", "text": "hello world hello world hello world programming programming"},
		{"doc_id": "2", "text": "short ab cd hello world hello world testing testing"},
	}
	g := PMI("docs", "doc_id", "text", "pmi")
	out, err := g.Run(map[string]rowgraph.SourceFactory{"docs": rowgraph.SliceFactory(docs)})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	perDoc := make(map[string]int)
	for _, row := range out {
		doc := row["doc_id"].(string)
		perDoc[doc]++
		word := row["text"].(string)
		if len(word) <= 4 {
			t.Errorf("expected only words longer than 4 chars, got %q", word)
		}
	}
	for doc, n := range perDoc {
		if n > 10 {
			t.Errorf("doc %q has %d rows, expected at most 10 (TopN)", doc, n)
		}
	}
}
