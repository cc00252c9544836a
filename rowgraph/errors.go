package rowgraph

import "errors"

// EOS is returned by a RowStream once it is exhausted. Consumers compare
// against it with errors.Is; it is never wrapped with additional context
// since reaching end-of-stream is not itself a failure.
var EOS = errors.New("rowgraph: end of stream")

// Fatal error kinds, per the error-handling design: source resolution,
// schema violations the mapper/reducer didn't special-case, parser
// failures on file sources, and sort spill I/O failures.
var (
	ErrMissingSource = errors.New("rowgraph: missing source")
	ErrSchema        = errors.New("rowgraph: schema error")
	ErrParse         = errors.New("rowgraph: parse error")
	ErrSortIO        = errors.New("rowgraph: sort spill I/O error")
)
