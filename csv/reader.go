package csv

import (
	"encoding/csv"
	"errors"
	"io"

	"hermannm.dev/wrap"
)

type Reader struct {
	inner      *csv.Reader
	currentRow int
}

func NewReader(csvFile io.ReadSeeker, maxLinesToCheckForDelimiter int) (*Reader, error) {
	delimiter, err := DeduceFieldDelimiter(
		csvFile,
		maxLinesToCheckForDelimiter,
		DefaultDelimitersToCheck,
	)
	if err != nil {
		return nil, wrap.Error(err, "failed to deduce CSV field delimiter")
	}

	return &Reader{inner: newInnerReader(csvFile, delimiter), currentRow: 0}, nil
}

func newInnerReader(csvFile io.Reader, delimiter rune) *csv.Reader {
	reader := csv.NewReader(csvFile)
	reader.Comma = delimiter
	// Rows with missing or extra fields are handled when building the dataset.
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	return reader
}

func (reader *Reader) Delimiter() rune {
	return reader.inner.Comma
}

func (reader *Reader) ReadRow() (row []string, rowNumber int, done bool, err error) {
	reader.currentRow++

	row, err = reader.inner.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, 0, true, nil
		} else {
			return nil, 0, false, err
		}
	}

	return row, reader.currentRow, false, nil
}

func (reader *Reader) ReadHeaderRow() (row []string, err error) {
	row, rowNumber, done, err := reader.ReadRow()
	if done {
		return nil, errors.New("csv file ended before header row")
	}
	if err != nil {
		return nil, err
	}
	if rowNumber != 1 {
		return nil, errors.New("tried to read header row after reading previous rows")
	}
	return row, nil
}
