package recipes

import "github.com/rowgraph/rowgraph/rowgraph"

// wordsFilter keeps (doc, word) groups whose word is longer than 4
// characters and occurs more than once in the document, matching
// original_source/graphs.py's pmi_graph words_filter closure.
func wordsFilter(textColumn, countColumn string) func(rowgraph.Row) bool {
	return func(row rowgraph.Row) bool {
		text, _ := row.GetOr(textColumn, "").(string)
		count, _ := row.GetOr(countColumn, int64(0)).(int64)
		return len(text) > 4 && count > 1
	}
}

// PMI builds a graph giving, for every document, the top 10 words ranked
// by pointwise mutual information with that document.
func PMI(inputName, docColumn, textColumn, resultColumn string) *rowgraph.Graph {
	const countColumn = "words_amount"

	graph1 := rowgraph.FromIter(inputName).
		Map(rowgraph.FilterPunctuation(textColumn)).
		Map(rowgraph.LowerCase(textColumn)).
		Map(rowgraph.Split(textColumn, "")).
		Sort([]string{docColumn, textColumn})

	filterGraph := graph1.
		Reduce(rowgraph.Count(countColumn), []string{docColumn, textColumn}).
		Map(rowgraph.Filter(wordsFilter(textColumn, countColumn)))

	filteredGraph := graph1.Join(rowgraph.NewInnerJoinerDefault(), filterGraph, []string{docColumn, textColumn})

	const frequencyColumn = "words_frequency"
	graph2 := filteredGraph.
		Reduce(rowgraph.TermFrequency(textColumn, frequencyColumn), nil).
		Sort([]string{textColumn})

	const suffixEnc, suffixAll = "", "_overall"

	return filteredGraph.Sort([]string{docColumn}).
		Reduce(rowgraph.TermFrequency(textColumn, frequencyColumn), []string{docColumn}).
		Sort([]string{textColumn}).
		Join(rowgraph.NewInnerJoiner(suffixEnc, suffixAll), graph2, []string{textColumn}).
		Map(rowgraph.InverseFrequency(frequencyColumn+suffixEnc, frequencyColumn+suffixAll, resultColumn)).
		Sort([]string{docColumn, resultColumn}).
		Reduce(rowgraph.TopN(resultColumn, 10, true), []string{docColumn}).
		Map(rowgraph.Project([]string{docColumn, textColumn, resultColumn}))
}

// PMIFromFile is PMI reading its input from a file.
func PMIFromFile(path string, parser func(string) (rowgraph.Row, error), docColumn, textColumn, resultColumn string) *rowgraph.Graph {
	const countColumn = "words_amount"

	graph1 := rowgraph.FromFile(path, parser).
		Map(rowgraph.FilterPunctuation(textColumn)).
		Map(rowgraph.LowerCase(textColumn)).
		Map(rowgraph.Split(textColumn, "")).
		Sort([]string{docColumn, textColumn})

	filterGraph := graph1.
		Reduce(rowgraph.Count(countColumn), []string{docColumn, textColumn}).
		Map(rowgraph.Filter(wordsFilter(textColumn, countColumn)))

	filteredGraph := graph1.Join(rowgraph.NewInnerJoinerDefault(), filterGraph, []string{docColumn, textColumn})

	const frequencyColumn = "words_frequency"
	graph2 := filteredGraph.
		Reduce(rowgraph.TermFrequency(textColumn, frequencyColumn), nil).
		Sort([]string{textColumn})

	const suffixEnc, suffixAll = "", "_overall"

	return filteredGraph.Sort([]string{docColumn}).
		Reduce(rowgraph.TermFrequency(textColumn, frequencyColumn), []string{docColumn}).
		Sort([]string{textColumn}).
		Join(rowgraph.NewInnerJoiner(suffixEnc, suffixAll), graph2, []string{textColumn}).
		Map(rowgraph.InverseFrequency(frequencyColumn+suffixEnc, frequencyColumn+suffixAll, resultColumn)).
		Sort([]string{docColumn, resultColumn}).
		Reduce(rowgraph.TopN(resultColumn, 10, true), []string{docColumn}).
		Map(rowgraph.Project([]string{docColumn, textColumn, resultColumn}))
}
