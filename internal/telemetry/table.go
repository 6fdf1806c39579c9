package telemetry

// Row maps channel name to value. Columns that were absent or unreadable
// in the source are simply not present.
type Row map[Channel]float64

// Table is an ordered, read-only sequence of rows.
type Table struct {
	columns []Channel
	rows    []Row
}

// NewTable builds a table from rows. columns records which tracked
// channels the source declared.
func NewTable(columns []Channel, rows []Row) *Table {
	return &Table{columns: columns, rows: rows}
}

// Empty returns a table with zero rows and zero columns.
func Empty() *Table {
	return &Table{}
}

// Len returns the row count.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.rows)
}

// Columns returns the tracked channels present in the source header.
func (t *Table) Columns() []Channel {
	if t == nil {
		return nil
	}
	out := make([]Channel, len(t.columns))
	copy(out, t.columns)
	return out
}

// Value returns the value of ch at row i. It reports ErrChannelMissing
// (as *ChannelMissingError) when the row has no value for ch.
func (t *Table) Value(i int, ch Channel) (float64, error) {
	if i < 0 || i >= t.Len() {
		return 0, &ChannelMissingError{Row: i, Channel: ch}
	}
	v, ok := t.rows[i][ch]
	if !ok {
		return 0, &ChannelMissingError{Row: i, Channel: ch}
	}
	return v, nil
}

// Sample reads every tracked channel of row i in Channels order. The first
// missing channel aborts the read.
func (t *Table) Sample(i int) ([NumChannels]float64, error) {
	var out [NumChannels]float64
	for k, ch := range Channels {
		v, err := t.Value(i, ch)
		if err != nil {
			return out, err
		}
		out[k] = v
	}
	return out, nil
}
