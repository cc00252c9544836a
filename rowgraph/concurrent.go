package rowgraph

import "golang.org/x/sync/errgroup"

// RunJob pairs one graph with the inputs it should run against, for use
// with RunMany.
type RunJob struct {
	Graph  *Graph
	Inputs map[string]SourceFactory
}

// RunMany runs several independent graphs concurrently: distinct Graph
// values (or the same Graph run against independent SourceFactory values)
// may execute concurrently since a Graph carries no mutable state of its
// own. Results are returned in the same order as jobs; the first error
// encountered is returned once every run has finished. The other runs are
// not cancelled.
func RunMany(jobs []RunJob) ([][]Row, error) {
	results := make([][]Row, len(jobs))
	var g errgroup.Group
	for i, job := range jobs {
		i, job := i, job
		g.Go(func() error {
			rows, err := job.Graph.Run(job.Inputs)
			if err != nil {
				return err
			}
			results[i] = rows
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
