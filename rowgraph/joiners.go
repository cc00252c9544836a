package rowgraph

// mergeJoiner implements all four merge-join strategies (inner, left,
// right, outer) as one parametrized type: requireLeft/requireRight gate
// whether a one-sided group is suppressed.
// When both sides are present every strategy behaves identically — the
// Cartesian product of the two groups, merged row by row — which is why
// original_source/lib/operations.py's four Joiner subclasses only ever
// differ in their sentinel checks, never in their merge logic; this type
// collapses that observation into one implementation instead of four.
type mergeJoiner struct {
	requireLeft  bool
	requireRight bool
	suffixA      string
	suffixB      string
}

// NewInnerJoiner emits only when both sides have a matching group.
func NewInnerJoiner(suffixA, suffixB string) Joiner {
	return mergeJoiner{requireLeft: true, requireRight: true, suffixA: suffixA, suffixB: suffixB}
}

// NewInnerJoinerDefault uses the Python original's default suffixes "_1"/"_2".
func NewInnerJoinerDefault() Joiner { return NewInnerJoiner("_1", "_2") }

// NewLeftJoiner emits every left row, joined with the right side when
// present and with absent-right semantics otherwise.
func NewLeftJoiner(suffixA, suffixB string) Joiner {
	return mergeJoiner{requireLeft: true, requireRight: false, suffixA: suffixA, suffixB: suffixB}
}

func NewLeftJoinerDefault() Joiner { return NewLeftJoiner("_1", "_2") }

// NewRightJoiner emits every right row, joined with the left side when
// present and with absent-left semantics otherwise.
func NewRightJoiner(suffixA, suffixB string) Joiner {
	return mergeJoiner{requireLeft: false, requireRight: true, suffixA: suffixA, suffixB: suffixB}
}

func NewRightJoinerDefault() Joiner { return NewRightJoiner("_1", "_2") }

// NewOuterJoiner emits every row from both sides, matched where keys
// align and with absent-counterpart semantics otherwise.
func NewOuterJoiner(suffixA, suffixB string) Joiner {
	return mergeJoiner{requireLeft: false, requireRight: false, suffixA: suffixA, suffixB: suffixB}
}

func NewOuterJoinerDefault() Joiner { return NewOuterJoiner("_1", "_2") }

func (j mergeJoiner) Join(keys []string, left RowStream, leftPresent bool, right []Row, rightPresent bool) ([]Row, error) {
	if !leftPresent && j.requireLeft {
		return nil, nil
	}
	if !rightPresent && j.requireRight {
		return nil, nil
	}

	if leftPresent && rightPresent {
		var out []Row
		for {
			a, err := left()
			if err == EOS {
				break
			}
			if err != nil {
				return nil, err
			}
			for _, b := range right {
				out = append(out, mergeMatchedRows(a, b, keys, j.suffixA, j.suffixB))
			}
		}
		return out, nil
	}

	if leftPresent {
		var out []Row
		for {
			a, err := left()
			if err == EOS {
				break
			}
			if err != nil {
				return nil, err
			}
			out = append(out, a.Copy())
		}
		return out, nil
	}

	// rightPresent only.
	out := make([]Row, 0, len(right))
	for _, b := range right {
		out = append(out, b.Copy())
	}
	return out, nil
}

// mergeMatchedRows merges two rows known to share values for keys,
// disambiguating colliding non-key columns with suffixA/suffixB. Grounded
// on original_source/lib/operations.py's merge_two_dicts_by_keys, minus
// the "empty row" swap branch — that branch existed only to handle a
// one-element sentinel for a missing side, which this implementation
// never constructs; the split between mergeMatchedRows and the plain
// a.Copy()/b.Copy() one-sided cases above uses an explicit present/absent
// flag instead of a sentinel row.
func mergeMatchedRows(a, b Row, keys []string, suffixA, suffixB string) Row {
	isKey := make(map[string]bool, len(keys))
	for _, k := range keys {
		isKey[k] = true
	}

	merged := make(Row, len(a)+len(b))
	for col, v := range a {
		if _, collide := b[col]; collide && !isKey[col] {
			merged[col+suffixA] = v
			merged[col+suffixB] = b[col]
		} else {
			merged[col] = v
		}
	}
	for col, v := range b {
		if _, placed := merged[col]; placed {
			continue
		}
		if _, placedSuffixed := merged[col+suffixB]; placedSuffixed {
			continue
		}
		merged[col] = v
	}
	return merged
}
