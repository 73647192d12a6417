package lossrate

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strings"
)

// LossRateTable is a header plus string cells. Columns other than the
// endpoint columns are carried through untouched.
type LossRateTable struct {
	Header []string
	Rows   [][]string
}

func ReadLossRateTable(r io.Reader) (*LossRateTable, error) {
	cr := csv.NewReader(r)
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read loss rate table: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("failed to read loss rate table: %w", io.ErrUnexpectedEOF)
	}
	header := records[0]
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
	return &LossRateTable{Header: header, Rows: records[1:]}, nil
}

func ReadLossRateTableFile(path string) (*LossRateTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open loss rate table: %w", err)
	}
	defer f.Close()
	return ReadLossRateTable(f)
}

func (t *LossRateTable) Len() int {
	return len(t.Rows)
}

func (t *LossRateTable) Column(name string) (int, bool) {
	for i, h := range t.Header {
		if h == name {
			return i, true
		}
	}
	return -1, false
}

// Float returns the cell as a number, NaN when empty or not numeric.
func (t *LossRateTable) Float(row int, name string) (float64, error) {
	c, ok := t.Column(name)
	if !ok {
		return math.NaN(), fmt.Errorf("%w: %q", ErrMissingColumn, name)
	}
	return parseFloat(t.Rows[row][c]), nil
}

func (t *LossRateTable) Clone() *LossRateTable {
	ret := &LossRateTable{Header: append([]string(nil), t.Header...), Rows: make([][]string, len(t.Rows))}
	for i := range t.Rows {
		ret.Rows[i] = append([]string(nil), t.Rows[i]...)
	}
	return ret
}

// SetColumn overwrites the column when present, appends it otherwise.
func (t *LossRateTable) SetColumn(name string, values []string) {
	c, ok := t.Column(name)
	if !ok {
		t.Header = append(t.Header, name)
		for i := range t.Rows {
			t.Rows[i] = append(t.Rows[i], values[i])
		}
		return
	}
	for i := range t.Rows {
		t.Rows[i][c] = values[i]
	}
}

// Adjust interpolates every measurement between its 0% and 100% sand
// endpoints at fraction and returns the table with the derived columns.
func (t *LossRateTable) Adjust(fraction float64) (*LossRateTable, error) {
	for _, m := range Measurements {
		for _, name := range []string{m.Sand0, m.Sand100} {
			if _, ok := t.Column(name); !ok {
				return nil, fmt.Errorf("%w: %q", ErrMissingColumn, name)
			}
		}
	}

	ret := t.Clone()
	for _, m := range Measurements {
		values := make([]string, t.Len())
		for i := range t.Rows {
			v0, _ := t.Float(i, m.Sand0)
			v1, _ := t.Float(i, m.Sand100)
			values[i] = formatFloat(Lerp(v0, v1, fraction))
		}
		ret.SetColumn(m.Output, values)
	}
	return ret, nil
}

// Round rounds every float column to places. A column is a float column
// when each non-empty cell parses as a number and it is not integer-only.
func (t *LossRateTable) Round(places int32) *LossRateTable {
	ret := t.Clone()
	for c := range ret.Header {
		if !ret.floatColumn(c) {
			continue
		}
		for i := range ret.Rows {
			ret.Rows[i][c] = formatFloat(Round(parseFloat(ret.Rows[i][c]), places))
		}
	}
	return ret
}

func (t *LossRateTable) floatColumn(c int) bool {
	ints, empty := true, false
	for i := range t.Rows {
		s := strings.TrimSpace(t.Rows[i][c])
		if s == "" {
			empty = true
			continue
		}
		if !isFloat(s) {
			return false
		}
		if !isInt(s) {
			ints = false
		}
	}
	return !ints || empty
}

func (t *LossRateTable) Write(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Header); err != nil {
		return fmt.Errorf("failed to write loss rate table: %w", err)
	}
	if err := cw.WriteAll(t.Rows); err != nil {
		return fmt.Errorf("failed to write loss rate table: %w", err)
	}
	return nil
}

func (t *LossRateTable) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create loss rate table: %w", err)
	}
	if err := t.Write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// AdjustFile reads the table at in, adjusts it at fraction, rounds it and
// writes it to out.
func AdjustFile(in, out string, fraction float64, places int32) (*LossRateTable, error) {
	t, err := ReadLossRateTableFile(in)
	if err != nil {
		return nil, err
	}
	adjusted, err := t.Adjust(fraction)
	if err != nil {
		return nil, err
	}
	adjusted = adjusted.Round(places)
	if err := adjusted.WriteFile(out); err != nil {
		return nil, err
	}
	return adjusted, nil
}
