package rowgraph

import (
	"container/heap"
	"fmt"
)

// FirstReducer yields only the first row of the group.
func FirstReducer() Reducer {
	return ReducerFunc(func(keys []string, group RowStream) ([]Row, error) {
		row, err := group()
		if err == EOS {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		return []Row{row}, nil
	})
}

// ReducerFunc adapts a plain function to Reducer.
type ReducerFunc func(keys []string, group RowStream) ([]Row, error)

// Reduce implements Reducer.
func (f ReducerFunc) Reduce(keys []string, group RowStream) ([]Row, error) { return f(keys, group) }

func keyColumns(first Row, keys []string) Row {
	out := make(Row, len(keys))
	for _, k := range keys {
		out[k] = first[k]
	}
	return out
}

// Count consumes the group, yielding one row with the key columns plus
// out = <group size>.
func Count(out string) Reducer {
	return ReducerFunc(func(keys []string, group RowStream) ([]Row, error) {
		var first Row
		var count int64
		for {
			row, err := group()
			if err == EOS {
				break
			}
			if err != nil {
				return nil, err
			}
			if count == 0 {
				first = row
			}
			count++
		}
		if count == 0 {
			return nil, nil
		}
		result := keyColumns(first, keys)
		result[out] = count
		return []Row{result}, nil
	})
}

// Sum yields one row with the first key column and the sum of col. This
// narrow single-key contract is preserved deliberately rather than
// generalized to multi-key sums.
func Sum(col string) Reducer {
	return ReducerFunc(func(keys []string, group RowStream) ([]Row, error) {
		var first Row
		var sum float64
		isFloat := false
		count := 0
		for {
			row, err := group()
			if err == EOS {
				break
			}
			if err != nil {
				return nil, err
			}
			if count == 0 {
				first = row
			}
			count++
			v, ok := row.Get(col)
			if !ok {
				return nil, schemaErrorf("sum column %q", col)
			}
			f, wasFloat, err := numericValue(v)
			if err != nil {
				return nil, err
			}
			isFloat = isFloat || wasFloat
			sum += f
		}
		if count == 0 {
			return nil, nil
		}
		result := Row{}
		if len(keys) > 0 {
			result[keys[0]] = first[keys[0]]
		}
		if isFloat {
			result[col] = sum
		} else {
			result[col] = int64(sum)
		}
		return []Row{result}, nil
	})
}

// Mean yields one row with all key columns plus the arithmetic mean of
// col.
func Mean(col string) Reducer {
	return ReducerFunc(func(keys []string, group RowStream) ([]Row, error) {
		var first Row
		var sum float64
		count := 0
		for {
			row, err := group()
			if err == EOS {
				break
			}
			if err != nil {
				return nil, err
			}
			if count == 0 {
				first = row
			}
			count++
			v, ok := row.Get(col)
			if !ok {
				return nil, schemaErrorf("mean column %q", col)
			}
			f, _, err := numericValue(v)
			if err != nil {
				return nil, err
			}
			sum += f
		}
		if count == 0 {
			return nil, nil
		}
		result := keyColumns(first, keys)
		result[col] = sum / float64(count)
		return []Row{result}, nil
	})
}

// TermFrequency counts occurrences of each distinct value of wordsCol
// within the group, emitting one row per distinct word with the key
// columns, wordsCol = word, out = count/group_size. out defaults to "tf"
// when empty.
func TermFrequency(wordsCol, out string) Reducer {
	if out == "" {
		out = "tf"
	}
	return ReducerFunc(func(keys []string, group RowStream) ([]Row, error) {
		var first Row
		total := 0
		counts := make(map[any]int64)
		order := make([]any, 0)
		for {
			row, err := group()
			if err == EOS {
				break
			}
			if err != nil {
				return nil, err
			}
			if total == 0 {
				first = row
			}
			total++
			word, ok := row.Get(wordsCol)
			if !ok {
				return nil, schemaErrorf("term frequency column %q", wordsCol)
			}
			if _, seen := counts[word]; !seen {
				order = append(order, word)
			}
			counts[word]++
		}
		if total == 0 {
			return nil, nil
		}
		results := make([]Row, 0, len(order))
		for _, word := range order {
			r := keyColumns(first, keys)
			r[wordsCol] = word
			r[out] = float64(counts[word]) / float64(total)
			results = append(results, r)
		}
		return results, nil
	})
}

// TopN emits the n rows of the group with the largest values of col when
// largest is true, or the n smallest when false. Ties are broken by
// arrival order, stably. largest replaces original_source/lib/operations.py's
// confusingly-named ascending=True ("n largest") boolean, keeping the
// observed behavior under a clearer name.
func TopN(col string, n int, largest bool) Reducer {
	return ReducerFunc(func(keys []string, group RowStream) ([]Row, error) {
		rows, err := Collect(group)
		if err != nil {
			return nil, err
		}
		if len(rows) == 0 {
			return nil, nil
		}
		for _, r := range rows {
			if !r.Has(col) {
				return nil, schemaErrorf("top-n column %q", col)
			}
		}
		return topN(rows, col, n, largest)
	})
}

// topNItem pairs a row with its arrival index for a stable tie-break.
type topNItem struct {
	row   Row
	value any
	index int
}

// boundedHeap is a fixed-capacity min/max-heap (depending on keepLargest)
// used to select the top n items in one O(len*log n) pass, mirroring the
// algorithmic shape of Python's heapq.nlargest/nsmallest while being
// spelled with container/heap.
type boundedHeap struct {
	items       []topNItem
	keepLargest bool
}

func (h *boundedHeap) Len() int { return len(h.items) }
func (h *boundedHeap) Less(i, j int) bool {
	c := compareValues(h.items[i].value, h.items[j].value)
	if c == 0 {
		// Among equal values the later arrival is the weaker one, so it is
		// evicted first and earlier arrivals are kept.
		return h.items[i].index > h.items[j].index
	}
	if h.keepLargest {
		return c < 0 // min-heap: smallest-of-the-kept-largest sits at the root, evicted first
	}
	return c > 0 // max-heap: largest-of-the-kept-smallest sits at the root, evicted first
}
func (h *boundedHeap) Swap(i, j int) { h.items[i], h.items[j] = h.items[j], h.items[i] }
func (h *boundedHeap) Push(x any)    { h.items = append(h.items, x.(topNItem)) }
func (h *boundedHeap) Pop() any {
	old := h.items
	n := len(old)
	item := old[n-1]
	h.items = old[:n-1]
	return item
}

func topN(rows []Row, col string, n int, largest bool) ([]Row, error) {
	if n <= 0 {
		return nil, nil
	}
	h := &boundedHeap{keepLargest: largest}
	for i, r := range rows {
		v, _ := r.Get(col)
		item := topNItem{row: r, value: v, index: i}
		if h.Len() < n {
			heap.Push(h, item)
			continue
		}
		// Compare the candidate against the current root (the weakest
		// kept item); replace it if the candidate is stronger.
		root := h.items[0]
		replace := false
		c := compareValues(item.value, root.value)
		if largest {
			replace = c > 0
		} else {
			replace = c < 0
		}
		if replace {
			h.items[0] = item
			heap.Fix(h, 0)
		}
	}

	kept := make([]topNItem, len(h.items))
	copy(kept, h.items)
	// Sort kept items by descending "strength" (largest first for
	// largest=true, smallest first for largest=false), ties broken by
	// original arrival order, matching heapq.nlargest/nsmallest's output
	// order.
	for i := 1; i < len(kept); i++ {
		j := i
		for j > 0 && itemStronger(kept[j], kept[j-1], largest) {
			kept[j], kept[j-1] = kept[j-1], kept[j]
			j--
		}
	}

	out := make([]Row, len(kept))
	for i, item := range kept {
		out[i] = item.row
	}
	return out, nil
}

// itemStronger reports whether a ranks ahead of b in the output ordering.
func itemStronger(a, b topNItem, largest bool) bool {
	c := compareValues(a.value, b.value)
	if c == 0 {
		return a.index < b.index
	}
	if largest {
		return c > 0
	}
	return c < 0
}

func schemaErrorf(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrSchema)...)
}
