package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// ChunkReader streams a delimited file in bounded batches of raw records. The
// header is read once at construction, byte-order marks and surrounding
// whitespace are stripped from the column names, and the required columns are
// verified up front so a malformed file fails before anything is inserted.
type ChunkReader struct {
	reader    *csv.Reader
	chunkSize int
	columns   map[string]int
}

func NewChunkReader(r io.Reader, chunkSize int) (*ChunkReader, error) {
	csvReader := csv.NewReader(r)
	csvReader.FieldsPerRecord = -1

	header, err := csvReader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		columns[name] = i
	}

	var missing []string
	for _, required := range requiredColumns {
		if _, ok := columns[required]; !ok {
			missing = append(missing, required)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingColumnsError{Columns: missing}
	}

	return &ChunkReader{
		reader:    csvReader,
		chunkSize: chunkSize,
		columns:   columns,
	}, nil
}

// Columns returns the normalized header name to field index mapping.
func (cr *ChunkReader) Columns() map[string]int {
	return cr.columns
}

// Next returns up to chunkSize raw records. It returns io.EOF once the input
// is exhausted; a non-empty final batch is returned with a nil error.
func (cr *ChunkReader) Next() ([][]string, error) {
	records := make([][]string, 0, cr.chunkSize)
	for len(records) < cr.chunkSize {
		record, err := cr.reader.Read()
		if err == io.EOF {
			if len(records) == 0 {
				return nil, io.EOF
			}
			return records, nil
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv record: %w", err)
		}
		records = append(records, record)
	}
	return records, nil
}
