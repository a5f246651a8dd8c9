package zipcode

import (
	"bufio"
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
)

// Record is one row of the reference table.
type Record struct {
	Code              string
	City              string
	StateAbbreviation string
	StateName         string
}

// Dataset is an immutable ZIP code index. It is safe for concurrent reads.
type Dataset struct {
	records map[string]Record
}

// NewDataset indexes records by code. The first record for a code wins.
func NewDataset(records []Record) *Dataset {
	d := &Dataset{records: make(map[string]Record, len(records))}
	for _, rec := range records {
		d.add(rec)
	}
	return d
}

// Lookup returns the record for code. The code is not normalised.
func (d *Dataset) Lookup(code string) (Record, bool) {
	rec, ok := d.records[code]
	return rec, ok
}

// Size returns the number of indexed codes.
func (d *Dataset) Size() int {
	return len(d.records)
}

// IsComplete reports whether the dataset is large enough to be the full US
// table rather than a sample.
func (d *Dataset) IsComplete() bool {
	return d.Size() >= CompleteDatasetMinRecords
}

// add stores rec unless its code is already present.
func (d *Dataset) add(rec Record) bool {
	if _, exists := d.records[rec.Code]; exists {
		return false
	}
	d.records[rec.Code] = rec
	return true
}

type columnIndex struct {
	zip, city, stateID, stateName int
}

func (c columnIndex) max() int {
	return max(c.zip, c.city, c.stateID, c.stateName)
}

// ParseDataset reads a reference table whose header names the zip, city,
// state_id and state_name columns. Columns are located by name, rows too
// short to hold them are skipped and codes that are not 5 characters long
// are ignored.
func ParseDataset(ctx context.Context, r io.Reader) (*Dataset, error) {
	br, err := skipByteOrderMark(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read zip code header: %w", err)
	}

	reader := csv.NewReader(br)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.ReuseRecord = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return NewDataset(nil), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read zip code header: %w", err)
	}

	cols, err := indexColumns(header)
	if err != nil {
		return nil, err
	}

	d := &Dataset{records: make(map[string]Record, 42_000)}
	minFields := cols.max() + 1

	rowCount := 0
	for {
		if rowCount%10_000 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		fields, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				continue
			}
			return nil, fmt.Errorf("failed to read zip code row: %w", err)
		}
		rowCount++

		if len(fields) < minFields {
			continue
		}

		code := fields[cols.zip]
		if len(code) != 5 {
			continue
		}

		d.add(Record{
			Code:              code,
			City:              fields[cols.city],
			StateAbbreviation: fields[cols.stateID],
			StateName:         fields[cols.stateName],
		})
	}

	return d, nil
}

func indexColumns(header []string) (columnIndex, error) {
	cols := columnIndex{zip: -1, city: -1, stateID: -1, stateName: -1}

	for i, name := range header {
		switch name {
		case "zip":
			cols.zip = setOnce(cols.zip, i)
		case "city":
			cols.city = setOnce(cols.city, i)
		case "state_id":
			cols.stateID = setOnce(cols.stateID, i)
		case "state_name":
			cols.stateName = setOnce(cols.stateName, i)
		}
	}

	if cols.zip < 0 || cols.city < 0 || cols.stateID < 0 || cols.stateName < 0 {
		return cols, ErrMissingColumns
	}
	return cols, nil
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// skipByteOrderMark drops a leading UTF-8 BOM so the first header field is
// tokenised as a quoted field.
func skipByteOrderMark(r io.Reader) (*bufio.Reader, error) {
	br := bufio.NewReader(r)
	prefix, err := br.Peek(len(utf8BOM))
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	if bytes.Equal(prefix, utf8BOM) {
		if _, err := br.Discard(len(utf8BOM)); err != nil {
			return nil, err
		}
	}
	return br, nil
}

// setOnce keeps the first index seen for a repeated header name.
func setOnce(current, i int) int {
	if current >= 0 {
		return current
	}
	return i
}
