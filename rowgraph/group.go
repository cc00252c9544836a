package rowgraph

// GroupIterator turns a stream already sorted on keys into a sequence of
// per-key-tuple sub-streams. It is a direct translation of
// original_source/lib/groups.py's GroupsCreator: seed the first row, hold
// the row that first breaks the current key tuple as the seed of the next
// group, and never buffer more than that one peeked row.
//
// GroupIterator is deliberately its own implementation rather than a
// buffering map-based group-by (accumulating per-group state in a map, or
// collecting the entire input first): neither honors the O(1)-plus-one-
// peek-row memory bound required here.
type GroupIterator struct {
	upstream RowStream
	keys     []string

	currentKeys []any
	pending     Row
	hasPending  bool
	done        bool

	groupLive  bool // current group's sub-stream hasn't been fully drained
	groupEnded bool // current group's sub-stream reached its end (EOS or a key change)
}

// NewGroupIterator constructs a GroupIterator over upstream, grouped by
// keys. It immediately pulls one row from upstream to seed the first
// group, matching GroupsCreator's constructor.
func NewGroupIterator(upstream RowStream, keys []string) (*GroupIterator, error) {
	g := &GroupIterator{upstream: upstream, keys: keys}
	if err := g.seed(); err != nil {
		return nil, err
	}
	return g, nil
}

// seed pulls the next row from upstream to become the next group's first
// row, or marks the iterator done on EOS.
func (g *GroupIterator) seed() error {
	row, err := g.upstream()
	if err == EOS {
		g.done = true
		g.hasPending = false
		return nil
	}
	if err != nil {
		return err
	}
	g.pending = row
	g.hasPending = true
	g.currentKeys = row.KeyTuple(g.keys)
	return nil
}

// CurrentKeys returns the key tuple of the group currently being produced,
// and false if no more groups remain.
func (g *GroupIterator) CurrentKeys() ([]any, bool) {
	if g.done && !g.hasPending {
		return nil, false
	}
	return g.currentKeys, true
}

// CurrentGroup returns a lazy RowStream over the rows sharing CurrentKeys.
// It must be consumed (fully, or via Advance) before the next call to
// CurrentGroup is meaningful; calling CurrentGroup again before Advance
// returns a stream continuing from wherever the previous one left off,
// since both read from the same GroupIterator state.
func (g *GroupIterator) CurrentGroup() RowStream {
	keys := g.currentKeys
	started := false
	return func() (Row, error) {
		if !started {
			started = true
			if g.hasPending {
				row := g.pending
				g.hasPending = false
				g.groupLive = true
				return row, nil
			}
		}
		if g.done {
			g.groupLive = false
			g.groupEnded = true
			return Row{}, EOS
		}
		row, err := g.upstream()
		if err == EOS {
			g.done = true
			g.groupLive = false
			g.groupEnded = true
			return Row{}, EOS
		}
		if err != nil {
			return Row{}, err
		}
		rowKeys := row.KeyTuple(g.keys)
		if compareKeyTuples(rowKeys, keys) != 0 {
			g.pending = row
			g.hasPending = true
			g.currentKeys = rowKeys
			g.groupLive = false
			g.groupEnded = true
			return Row{}, EOS
		}
		return row, nil
	}
}

// Advance exhausts whatever remains of the current group (if its stream
// wasn't fully drained by the caller — e.g. FirstReducer stops after one
// row, or an inner joiner never pulls an unmatched group) and repositions
// onto the next group.
func (g *GroupIterator) Advance() error {
	if !g.groupEnded && g.hasPending && !g.groupLive {
		// The group's stream was never pulled: drop its seed row and
		// drain the rest of it below.
		g.hasPending = false
		g.groupLive = true
	}
	g.groupEnded = false
	if g.groupLive {
		group := g.currentGroupContinuation()
		if _, err := Collect(group); err != nil {
			return err
		}
	}
	return nil
}

// currentGroupContinuation resumes draining the live group without
// replaying the already-consumed pending row.
func (g *GroupIterator) currentGroupContinuation() RowStream {
	keys := g.currentKeys
	return func() (Row, error) {
		if g.done {
			g.groupLive = false
			return Row{}, EOS
		}
		row, err := g.upstream()
		if err == EOS {
			g.done = true
			g.groupLive = false
			return Row{}, EOS
		}
		if err != nil {
			return Row{}, err
		}
		rowKeys := row.KeyTuple(g.keys)
		if compareKeyTuples(rowKeys, keys) != 0 {
			g.pending = row
			g.hasPending = true
			g.currentKeys = rowKeys
			g.groupLive = false
			return Row{}, EOS
		}
		return row, nil
	}
}
