package rowgraph

import (
	"bufio"
	"fmt"
	"os"
)

// stage is one link of a Graph's operator chain. Plain stages (map,
// reduce, sort) carry only a transducer. A join stage additionally
// carries the other graph to run, since it needs the same inputs map
// the containing graph's Run was given — mirroring
// original_source/lib/graph.py's operations_lst, where a join stage is
// represented as a (joinOp, otherGraph) tuple and run() passes its own
// kwargs through to otherGraph.run() on every invocation.
type stage struct {
	transduce func(RowStream) RowStream
	joinWith  *Graph
	joinKeys  []string
	joiner    Joiner
}

// Graph is an immutable, lazily-evaluated row pipeline: each chaining
// method (Map, Reduce, Sort, Join) returns a new Graph with one more
// stage appended, leaving the receiver untouched — copy-on-append
// semantics grounded on graph.py's Graph.copy/map/reduce/sort/join.
type Graph struct {
	sourceName string
	isFile     bool
	filePath   string
	parser     func(string) (Row, error)
	stages     []stage
}

// FromIter constructs a graph whose input is supplied at Run time under
// the given name.
func FromIter(name string) *Graph {
	return &Graph{sourceName: name}
}

// FromFile constructs a graph that reads rows from a file, parsing each
// line with parser. File-format parsing is left to the caller; FromFile
// only wires a line scanner to whatever parser it's given.
func FromFile(path string, parser func(string) (Row, error)) *Graph {
	return &Graph{isFile: true, filePath: path, parser: parser}
}

func (g *Graph) copy() *Graph {
	out := &Graph{
		sourceName: g.sourceName,
		isFile:     g.isFile,
		filePath:   g.filePath,
		parser:     g.parser,
		stages:     make([]stage, len(g.stages), len(g.stages)+1),
	}
	copy(out.stages, g.stages)
	return out
}

// Map appends a map stage.
func (g *Graph) Map(m Mapper) *Graph {
	out := g.copy()
	out.stages = append(out.stages, stage{transduce: Map(m)})
	return out
}

// Reduce appends a group-and-reduce stage.
func (g *Graph) Reduce(r Reducer, keys []string) *Graph {
	out := g.copy()
	out.stages = append(out.stages, stage{transduce: Reduce(r, keys)})
	return out
}

// Sort appends an external-sort stage.
func (g *Graph) Sort(keys []string, opts ...SortOption) *Graph {
	out := g.copy()
	out.stages = append(out.stages, stage{transduce: NewSort(keys, opts...)})
	return out
}

// Join appends a merge-join stage against another, independently-sourced
// graph. The other graph is re-run, from scratch, every time this graph
// runs — there is no sub-graph memoization, matching graph.py's run()
// calling join_graph.run() unconditionally on every invocation of the
// containing graph.
func (g *Graph) Join(j Joiner, other *Graph, keys []string) *Graph {
	out := g.copy()
	out.stages = append(out.stages, stage{joinWith: other, joinKeys: keys, joiner: j})
	return out
}

// Run executes the graph to completion and materializes the result,
// matching graph.py's run() default (return_lst=True).
func (g *Graph) Run(inputs map[string]SourceFactory) ([]Row, error) {
	s, err := g.runStream(inputs)
	if err != nil {
		return nil, err
	}
	return Collect(s)
}

// runStream executes the graph but returns a lazy RowStream instead of
// materializing, matching graph.py's run(return_lst=False) path used
// internally when one graph is run as another's join source.
func (g *Graph) runStream(inputs map[string]SourceFactory) (RowStream, error) {
	source, err := g.source(inputs)
	if err != nil {
		return nil, err
	}
	s := source
	for _, st := range g.stages {
		if st.joinWith != nil {
			right, err := st.joinWith.runStream(inputs)
			if err != nil {
				return nil, err
			}
			s = ApplyJoin(st.joiner, st.joinKeys, s, right)
			continue
		}
		s = st.transduce(s)
	}
	return s, nil
}

func (g *Graph) source(inputs map[string]SourceFactory) (RowStream, error) {
	if g.isFile {
		return fileRowStream(g.filePath, g.parser)
	}
	factory, ok := inputs[g.sourceName]
	if !ok {
		return nil, fmt.Errorf("graph input %q: %w", g.sourceName, ErrMissingSource)
	}
	return factory(), nil
}

// fileRowStream lazily scans path line by line, parsing each line with
// parser, mirroring graph.py's graph_from_file generator.
func fileRowStream(path string, parser func(string) (Row, error)) (RowStream, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open graph input file %q: %w", path, err)
	}
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)
	done := false
	return func() (Row, error) {
		if done {
			return Row{}, EOS
		}
		if !scanner.Scan() {
			done = true
			file.Close()
			if err := scanner.Err(); err != nil {
				return Row{}, fmt.Errorf("read graph input file %q: %w", path, err)
			}
			return Row{}, EOS
		}
		row, err := parser(scanner.Text())
		if err != nil {
			return Row{}, fmt.Errorf("parse graph input file %q: %w: %v", path, ErrParse, err)
		}
		return row, nil
	}, nil
}
