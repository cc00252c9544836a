// Package recipes contains concrete row-graph pipelines built from
// rowgraph's stock operators, mirroring the four worked examples of
// original_source/graphs.py.
package recipes

import "github.com/rowgraph/rowgraph/rowgraph"

// WordCount builds a graph that counts occurrences of each distinct
// word in textColumn across all input rows, sorted by count then word.
func WordCount(inputName, textColumn, countColumn string) *rowgraph.Graph {
	return rowgraph.FromIter(inputName).
		Map(rowgraph.FilterPunctuation(textColumn)).
		Map(rowgraph.LowerCase(textColumn)).
		Map(rowgraph.Split(textColumn, "")).
		Sort([]string{textColumn}).
		Reduce(rowgraph.Count(countColumn), []string{textColumn}).
		Sort([]string{countColumn, textColumn})
}

// WordCountFromFile is WordCount reading its input from a file via parser.
func WordCountFromFile(path string, parser func(string) (rowgraph.Row, error), textColumn, countColumn string) *rowgraph.Graph {
	return rowgraph.FromFile(path, parser).
		Map(rowgraph.FilterPunctuation(textColumn)).
		Map(rowgraph.LowerCase(textColumn)).
		Map(rowgraph.Split(textColumn, "")).
		Sort([]string{textColumn}).
		Reduce(rowgraph.Count(countColumn), []string{textColumn}).
		Sort([]string{countColumn, textColumn})
}
