package rowgraph

import (
	"container/heap"
	"fmt"
	"os"
	"runtime"
	"sort"

	msgpack "gopkg.in/vmihailenco/msgpack.v2"
)

// defaultChunkSize mirrors pkg/stream/processor.go's default BatchSize
// convention as a reasonable default resident-rows bound for the
// external sort.
const defaultChunkSize = 100000

// SortOption configures NewSort, following the functional-options idiom
// used elsewhere for source configuration (CSVSource.WithHeaders,
// JSONSource.WithFormat).
type SortOption func(*sortConfig)

type sortConfig struct {
	chunkSize int
	tempDir   string
}

// WithChunkSize bounds the number of rows held resident per in-memory
// chunk before it is sorted and (if more than one chunk is needed)
// spilled to a temporary run file.
func WithChunkSize(n int) SortOption {
	return func(c *sortConfig) { c.chunkSize = n }
}

// WithTempDir selects the directory spill run files are created in
// (os.TempDir() by default).
func WithTempDir(dir string) SortOption {
	return func(c *sortConfig) { c.tempDir = dir }
}

// NewSort returns a transducer that stably sorts a row stream ascending by
// keys: chunks of bounded size are sorted in memory and spilled to
// temporary files, then k-way merged; a single chunk skips spilling
// entirely.
func NewSort(keys []string, opts ...SortOption) func(RowStream) RowStream {
	cfg := sortConfig{chunkSize: defaultChunkSize, tempDir: ""}
	for _, opt := range opts {
		opt(&cfg)
	}

	return func(input RowStream) RowStream {
		var merged RowStream
		var built bool
		var buildErr error

		return func() (Row, error) {
			if !built {
				built = true
				merged, buildErr = buildSortedStream(input, keys, cfg)
			}
			if buildErr != nil {
				return Row{}, buildErr
			}
			return merged()
		}
	}
}

func buildSortedStream(input RowStream, keys []string, cfg sortConfig) (RowStream, error) {
	var runs []*sortRun
	var firstChunk []Row

	for {
		chunk, err := readChunk(input, cfg.chunkSize)
		if err != nil {
			closeRuns(runs)
			return nil, err
		}
		if len(chunk) == 0 {
			break
		}
		stableSortRows(chunk, keys)

		if firstChunk == nil && len(runs) == 0 {
			// Tentatively hold the first chunk in memory; if a second
			// chunk shows up we'll spill this one too.
			firstChunk = chunk
			if len(chunk) < cfg.chunkSize {
				// Input exhausted within one chunk: skip spilling
				// entirely.
				break
			}
			continue
		}

		if firstChunk != nil {
			run, err := spillRun(firstChunk, cfg.tempDir, len(runs))
			if err != nil {
				closeRuns(runs)
				return nil, err
			}
			runs = append(runs, run)
			firstChunk = nil
		}

		run, err := spillRun(chunk, cfg.tempDir, len(runs))
		if err != nil {
			closeRuns(runs)
			return nil, err
		}
		runs = append(runs, run)
	}

	if len(runs) == 0 {
		// Everything fit in firstChunk (possibly nil/empty input).
		return FromSlice(firstChunk), nil
	}

	if firstChunk != nil {
		run, err := spillRun(firstChunk, cfg.tempDir, len(runs))
		if err != nil {
			closeRuns(runs)
			return nil, err
		}
		runs = append(runs, run)
	}

	return kWayMerge(runs, keys), nil
}

// readChunk pulls up to n rows from input, returning fewer than n (or
// zero) exactly when input is exhausted.
func readChunk(input RowStream, n int) ([]Row, error) {
	chunk := make([]Row, 0, n)
	for len(chunk) < n {
		row, err := input()
		if err == EOS {
			return chunk, nil
		}
		if err != nil {
			return nil, err
		}
		chunk = append(chunk, row)
	}
	return chunk, nil
}

func stableSortRows(rows []Row, keys []string) {
	sort.SliceStable(rows, func(i, j int) bool {
		return compareKeyTuples(rows[i].KeyTuple(keys), rows[j].KeyTuple(keys)) < 0
	})
}

// sortRun is one spilled, already-sorted chunk, serialized to a temp file
// via msgpack rather than encoding/gob, since gob's stream-level type
// registration doesn't suit the per-row heterogeneous column types a Row
// can carry.
type sortRun struct {
	id   int
	path string
	file *os.File
	dec  *msgpack.Decoder
}

// wireField is one column of one spilled row, tagged by kind so the
// decoder can reconstruct the exact Go type (including the [2]float64 geo
// pair, which msgpack would otherwise decode generically as []interface{}
// if left to a bare map[string]any round trip).
type wireField struct {
	Name string  `msgpack:"n"`
	Kind uint8   `msgpack:"k"`
	I    int64   `msgpack:"i"`
	F    float64 `msgpack:"f"`
	S    string  `msgpack:"s"`
	Lon  float64 `msgpack:"lon"`
	Lat  float64 `msgpack:"lat"`
	B    bool    `msgpack:"b"`
}

const (
	kindInt uint8 = iota
	kindFloat
	kindString
	kindBool
	kindGeo
	kindOther
)

func rowToWire(row Row) []wireField {
	fields := make([]wireField, 0, len(row))
	for name, v := range row {
		f := wireField{Name: name}
		switch val := v.(type) {
		case int64:
			f.Kind, f.I = kindInt, val
		case int:
			f.Kind, f.I = kindInt, int64(val)
		case float64:
			f.Kind, f.F = kindFloat, val
		case string:
			f.Kind, f.S = kindString, val
		case bool:
			f.Kind, f.B = kindBool, val
		case [2]float64:
			f.Kind, f.Lon, f.Lat = kindGeo, val[0], val[1]
		default:
			f.Kind, f.S = kindOther, fmt.Sprintf("%v", val)
		}
		fields = append(fields, f)
	}
	return fields
}

func wireToRow(fields []wireField) Row {
	row := make(Row, len(fields))
	for _, f := range fields {
		switch f.Kind {
		case kindInt:
			row[f.Name] = f.I
		case kindFloat:
			row[f.Name] = f.F
		case kindString, kindOther:
			row[f.Name] = f.S
		case kindBool:
			row[f.Name] = f.B
		case kindGeo:
			row[f.Name] = [2]float64{f.Lon, f.Lat}
		}
	}
	return row
}

func spillRun(rows []Row, tempDir string, id int) (*sortRun, error) {
	file, err := os.CreateTemp(tempDir, "rowgraph-sort-run-*")
	if err != nil {
		return nil, fmt.Errorf("create sort spill file: %w: %v", ErrSortIO, err)
	}
	enc := msgpack.NewEncoder(file)
	for _, row := range rows {
		if err := enc.Encode(rowToWire(row)); err != nil {
			file.Close()
			os.Remove(file.Name())
			return nil, fmt.Errorf("write sort spill file: %w: %v", ErrSortIO, err)
		}
	}
	if _, err := file.Seek(0, 0); err != nil {
		file.Close()
		os.Remove(file.Name())
		return nil, fmt.Errorf("rewind sort spill file: %w: %v", ErrSortIO, err)
	}
	run := &sortRun{id: id, path: file.Name(), file: file, dec: msgpack.NewDecoder(file)}
	runtime.SetFinalizer(run, func(r *sortRun) { r.close() })
	return run, nil
}

func (r *sortRun) next() (Row, bool, error) {
	var fields []wireField
	if err := r.dec.Decode(&fields); err != nil {
		return Row{}, false, nil // EOF or any decode failure at end-of-run ends the run
	}
	return wireToRow(fields), true, nil
}

func (r *sortRun) close() {
	if r.file != nil {
		r.file.Close()
		os.Remove(r.path)
		r.file = nil
	}
}

func closeRuns(runs []*sortRun) {
	for _, r := range runs {
		r.close()
	}
}

// heapItem is one run's current peeked row, ordered by key tuple then by
// run id to preserve stability across runs — shaped after the
// container/heap-based k-way mergers in segmentio/parquet-go,
// grafana/tempo's vendored copy, and cockroach's distsqlrun sorter
// family.
type heapItem struct {
	row    Row
	keys   []any
	runIdx int
}

type runHeap []heapItem

func (h runHeap) Len() int { return len(h) }
func (h runHeap) Less(i, j int) bool {
	if c := compareKeyTuples(h[i].keys, h[j].keys); c != 0 {
		return c < 0
	}
	return h[i].runIdx < h[j].runIdx
}
func (h runHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *runHeap) Push(x any)        { *h = append(*h, x.(heapItem)) }
func (h *runHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// kWayMerge returns a RowStream performing the final merge of already
// internally-sorted runs, cleaning up every run's temp file once the
// merge is fully consumed or abandoned.
func kWayMerge(runs []*sortRun, keys []string) RowStream {
	h := &runHeap{}
	heap.Init(h)
	exhausted := make([]bool, len(runs))

	fill := func(idx int) error {
		row, ok, err := runs[idx].next()
		if err != nil {
			return err
		}
		if !ok {
			exhausted[idx] = true
			runs[idx].close()
			return nil
		}
		heap.Push(h, heapItem{row: row, keys: row.KeyTuple(keys), runIdx: idx})
		return nil
	}

	started := false
	done := false

	return func() (Row, error) {
		if done {
			return Row{}, EOS
		}
		if !started {
			started = true
			for i := range runs {
				if err := fill(i); err != nil {
					closeRuns(runs)
					done = true
					return Row{}, err
				}
			}
		}
		if h.Len() == 0 {
			done = true
			closeRuns(runs)
			return Row{}, EOS
		}
		top := heap.Pop(h).(heapItem)
		if err := fill(top.runIdx); err != nil {
			closeRuns(runs)
			done = true
			return Row{}, err
		}
		return top.row, nil
	}
}
