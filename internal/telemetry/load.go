package telemetry

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
	"strconv"
	"strings"
)

// Load reads the telemetry CSV at path once. It never returns a nil table:
// an absent file yields an empty table with ErrSourceMissing, and an
// unreadable one yields an empty table with a *ParseError. Both conditions
// are meant to be logged, not to stop startup.
func Load(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Empty(), fmt.Errorf("%w: %s", ErrSourceMissing, path)
		}
		return Empty(), &ParseError{Path: path, Err: err}
	}
	defer f.Close()

	t, err := Parse(f)
	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) {
			pe.Path = path
			return Empty(), pe
		}
		return Empty(), &ParseError{Path: path, Err: err}
	}
	return t, nil
}

// Parse reads a header row followed by data rows. Header names are matched
// exactly after trimming; columns that are not tracked channels are
// ignored. Empty, non-numeric or non-finite cells leave the channel absent
// for that row.
func Parse(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, &ParseError{Err: errors.New("no header row")}
	}
	if err != nil {
		return nil, csvError(err)
	}

	// column index -> channel for tracked columns only
	index := make(map[int]Channel, NumChannels)
	var columns []Channel
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		ch := Channel(name)
		if ch.Index() < 0 {
			continue
		}
		if _, dup := findColumn(columns, ch); dup {
			continue
		}
		index[i] = ch
		columns = append(columns, ch)
	}

	var rows []Row
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, csvError(err)
		}
		row := make(Row, len(index))
		for i, ch := range index {
			if i >= len(rec) {
				continue
			}
			if v, ok := parseCell(rec[i]); ok {
				row[ch] = v
			}
		}
		rows = append(rows, row)
	}

	return NewTable(columns, rows), nil
}

func parseCell(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func findColumn(cols []Channel, ch Channel) (int, bool) {
	for i, c := range cols {
		if c == ch {
			return i, true
		}
	}
	return -1, false
}

func csvError(err error) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return &ParseError{Line: pe.Line, Err: pe.Err}
	}
	return &ParseError{Err: err}
}
