package rowgraph

// Mapper produces zero or more rows from one input row. Implementations
// must not mutate the row they receive. Mappers with a documented default
// (FilterPunctuation, LowerCase, Split) substitute the empty string for a
// missing column; all other mappers return ErrSchema.
type Mapper interface {
	Map(row Row) ([]Row, error)
}

// MapperFunc adapts a plain function to Mapper.
type MapperFunc func(Row) ([]Row, error)

// Map implements Mapper.
func (f MapperFunc) Map(row Row) ([]Row, error) { return f(row) }

// Reducer consumes one group's row-stream (and the key-tuple column
// names it was grouped by) and produces zero or more rows. A reducer need
// not fully consume its group — the grouping iterator drains whatever is
// left on Advance.
type Reducer interface {
	Reduce(keys []string, group RowStream) ([]Row, error)
}

// Joiner implements one merge-join strategy. left is streamed row by row;
// right has already been materialized by the Join operator into a slice
// so each matching group on the right can be replayed against every
// matching row on the left. leftPresent and rightPresent signal whether
// this call represents a real matched pair or one side standing in for a
// missing match, in place of a magic empty-row sentinel.
type Joiner interface {
	Join(keys []string, left RowStream, leftPresent bool, right []Row, rightPresent bool) ([]Row, error)
}

// Map wraps a Mapper into a RowStream transducer.
func Map(m Mapper) func(RowStream) RowStream {
	return func(input RowStream) RowStream {
		var pending []Row
		idx := 0
		return func() (Row, error) {
			for idx >= len(pending) {
				row, err := input()
				if err != nil {
					return Row{}, err
				}
				out, err := m.Map(row)
				if err != nil {
					return Row{}, err
				}
				pending, idx = out, 0
			}
			row := pending[idx]
			idx++
			return row, nil
		}
	}
}

// Reduce wraps a Reducer into a RowStream transducer over groups of input
// sharing keys.
func Reduce(r Reducer, keys []string) func(RowStream) RowStream {
	return func(input RowStream) RowStream {
		var gi *GroupIterator
		var pending []Row
		idx := 0
		initialized := false
		var initErr error

		return func() (Row, error) {
			if !initialized {
				initialized = true
				gi, initErr = NewGroupIterator(input, keys)
			}
			if initErr != nil {
				return Row{}, initErr
			}
			for idx >= len(pending) {
				groupKeys, ok := gi.CurrentKeys()
				if !ok {
					return Row{}, EOS
				}
				_ = groupKeys
				group := gi.CurrentGroup()
				out, err := r.Reduce(keys, group)
				if err != nil {
					return Row{}, err
				}
				if err := gi.Advance(); err != nil {
					return Row{}, err
				}
				pending, idx = out, 0
			}
			row := pending[idx]
			idx++
			return row, nil
		}
	}
}

// ApplyJoin drives the merge-join state machine over two streams already
// sorted ascending on keys, invoking j for every matched, left-only, or
// right-only group.
func ApplyJoin(j Joiner, keys []string, left, right RowStream) RowStream {
	var pending []Row
	idx := 0
	initialized := false
	var initErr error
	var lgi, rgi *GroupIterator
	leftDone, rightDone := false, false

	advanceBoth := func() ([]Row, error) {
		lk, lok := lgi.CurrentKeys()
		rk, rok := rgi.CurrentKeys()
		if !lok {
			leftDone = true
		}
		if !rok {
			rightDone = true
		}
		if lok && rok {
			switch compareKeyTuples(lk, rk) {
			case 0:
				rightRows, err := Collect(rgi.CurrentGroup())
				if err != nil {
					return nil, err
				}
				out, err := j.Join(keys, lgi.CurrentGroup(), true, rightRows, true)
				if err != nil {
					return nil, err
				}
				if err := lgi.Advance(); err != nil {
					return nil, err
				}
				if err := rgi.Advance(); err != nil {
					return nil, err
				}
				return out, nil
			case -1:
				out, err := j.Join(keys, lgi.CurrentGroup(), true, nil, false)
				if err != nil {
					return nil, err
				}
				if err := lgi.Advance(); err != nil {
					return nil, err
				}
				return out, nil
			default:
				rightRows, err := Collect(rgi.CurrentGroup())
				if err != nil {
					return nil, err
				}
				out, err := j.Join(keys, Empty(), false, rightRows, true)
				if err != nil {
					return nil, err
				}
				if err := rgi.Advance(); err != nil {
					return nil, err
				}
				return out, nil
			}
		}
		if lok {
			out, err := j.Join(keys, lgi.CurrentGroup(), true, nil, false)
			if err != nil {
				return nil, err
			}
			if err := lgi.Advance(); err != nil {
				return nil, err
			}
			return out, nil
		}
		if rok {
			rightRows, err := Collect(rgi.CurrentGroup())
			if err != nil {
				return nil, err
			}
			out, err := j.Join(keys, Empty(), false, rightRows, true)
			if err != nil {
				return nil, err
			}
			if err := rgi.Advance(); err != nil {
				return nil, err
			}
			return out, nil
		}
		return nil, EOS
	}

	return func() (Row, error) {
		if !initialized {
			initialized = true
			lgi, initErr = NewGroupIterator(left, keys)
			if initErr == nil {
				rgi, initErr = NewGroupIterator(right, keys)
			}
		}
		if initErr != nil {
			return Row{}, initErr
		}
		for idx >= len(pending) {
			if leftDone && rightDone {
				return Row{}, EOS
			}
			out, err := advanceBoth()
			if err == EOS {
				return Row{}, EOS
			}
			if err != nil {
				return Row{}, err
			}
			pending, idx = out, 0
		}
		row := pending[idx]
		idx++
		return row, nil
	}
}
