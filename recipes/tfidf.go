package recipes

import "github.com/rowgraph/rowgraph/rowgraph"

// InvertedIndex builds a graph computing TF-IDF for every (word, document)
// pair, keeping for every word the 3 documents with the highest TF-IDF.
func InvertedIndex(inputName, docColumn, textColumn, resultColumn string) *rowgraph.Graph {
	graph1 := rowgraph.FromIter(inputName).
		Map(rowgraph.FilterPunctuation(textColumn)).
		Map(rowgraph.LowerCase(textColumn)).
		Map(rowgraph.Split(textColumn, ""))

	const countColumn = "docs_amount"
	graph2 := rowgraph.FromIter(inputName).
		Sort([]string{docColumn}).
		Reduce(rowgraph.Count(countColumn), nil)

	const suffixEnc, suffixAll = "", "_overall"
	idfGraph := graph1.Sort([]string{docColumn, textColumn}).
		Reduce(rowgraph.FirstReducer(), []string{docColumn, textColumn}).
		Sort([]string{textColumn}).
		Reduce(rowgraph.Count(countColumn), []string{textColumn}).
		Join(rowgraph.NewInnerJoiner(suffixEnc, suffixAll), graph2, nil).
		Map(rowgraph.InverseFrequency(countColumn+suffixAll, countColumn+suffixEnc, "idf"))

	const tfCol, idfCol = "tf", "idf"
	return graph1.Sort([]string{docColumn}).
		Reduce(rowgraph.TermFrequency(textColumn, tfCol), []string{docColumn}).
		Sort([]string{textColumn}).
		Join(rowgraph.NewInnerJoinerDefault(), idfGraph, []string{textColumn}).
		Map(rowgraph.Product([]string{tfCol, idfCol}, resultColumn)).
		Reduce(rowgraph.TopN(resultColumn, 3, true), []string{textColumn}).
		Sort([]string{docColumn}).
		Map(rowgraph.Project([]string{docColumn, textColumn, resultColumn}))
}

// InvertedIndexFromFile is InvertedIndex reading its input from a file.
func InvertedIndexFromFile(path string, parser func(string) (rowgraph.Row, error), docColumn, textColumn, resultColumn string) *rowgraph.Graph {
	graph1 := rowgraph.FromFile(path, parser).
		Map(rowgraph.FilterPunctuation(textColumn)).
		Map(rowgraph.LowerCase(textColumn)).
		Map(rowgraph.Split(textColumn, ""))

	const countColumn = "docs_amount"
	graph2 := rowgraph.FromFile(path, parser).
		Sort([]string{docColumn}).
		Reduce(rowgraph.Count(countColumn), nil)

	const suffixEnc, suffixAll = "", "_overall"
	idfGraph := graph1.Sort([]string{docColumn, textColumn}).
		Reduce(rowgraph.FirstReducer(), []string{docColumn, textColumn}).
		Sort([]string{textColumn}).
		Reduce(rowgraph.Count(countColumn), []string{textColumn}).
		Join(rowgraph.NewInnerJoiner(suffixEnc, suffixAll), graph2, nil).
		Map(rowgraph.InverseFrequency(countColumn+suffixAll, countColumn+suffixEnc, "idf"))

	const tfCol, idfCol = "tf", "idf"
	return graph1.Sort([]string{docColumn}).
		Reduce(rowgraph.TermFrequency(textColumn, tfCol), []string{docColumn}).
		Sort([]string{textColumn}).
		Join(rowgraph.NewInnerJoinerDefault(), idfGraph, []string{textColumn}).
		Map(rowgraph.Product([]string{tfCol, idfCol}, resultColumn)).
		Reduce(rowgraph.TopN(resultColumn, 3, true), []string{textColumn}).
		Sort([]string{docColumn}).
		Map(rowgraph.Project([]string{docColumn, textColumn, resultColumn}))
}
