package rowgraph

// RowStream is a single-pass, pull-based, lazily produced sequence of
// rows. Each call returns the next row, or (Row{}, EOS) once exhausted, or
// (Row{}, err) on failure. A RowStream must not be consumed twice — once a
// call returns EOS or an error it must keep returning it.
//
// This is a hand-written pull-based state object, narrowed from a fully
// generic Stream[T] down to the one element type this engine ever
// streams.
type RowStream func() (Row, error)

// FromSlice returns a RowStream that yields the given rows in order, then
// EOS. The stream reads the slice lazily, so the caller must not modify it
// while the stream is in use; see SliceFactory for the
// fresh-stream-per-call factory wrapper.
func FromSlice(rows []Row) RowStream {
	i := 0
	return func() (Row, error) {
		if i >= len(rows) {
			return Row{}, EOS
		}
		row := rows[i]
		i++
		return row, nil
	}
}

// Empty returns a RowStream that is immediately exhausted.
func Empty() RowStream {
	return func() (Row, error) { return Row{}, EOS }
}

// Collect fully drains s into a slice. Used by the materializing Run and by
// operators (TopN, a join's right-hand group) that are documented to hold
// one group in memory.
func Collect(s RowStream) ([]Row, error) {
	var out []Row
	for {
		row, err := s()
		if err == EOS {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		out = append(out, row)
	}
}

// ForEach pulls every row from s, calling fn on each, stopping early if fn
// returns an error.
func ForEach(s RowStream, fn func(Row) error) error {
	for {
		row, err := s()
		if err == EOS {
			return nil
		}
		if err != nil {
			return err
		}
		if err := fn(row); err != nil {
			return err
		}
	}
}
