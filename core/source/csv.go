package source

import (
	"encoding/csv"
	"errors"
	"io"
	"strconv"
	"strings"

	"library-ingest/core/reconcile"
)

// Columns is the expected input column order.
var Columns = []string{"author_id", "author_pen_name", "book_id", "book_name"}

// CSVReader decodes input rows. The first record is always discarded as a
// header; its content is not inspected.
type CSVReader struct {
	r             *csv.Reader
	headerSkipped bool
}

// NewCSVReader wraps r.
func NewCSVReader(r io.Reader) *CSVReader {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	return &CSVReader{r: cr}
}

// Read returns the next row or io.EOF.
func (c *CSVReader) Read() (reconcile.Row, error) {
	if !c.headerSkipped {
		c.headerSkipped = true
		if _, err := c.next(); err != nil {
			return reconcile.Row{}, err
		}
	}

	record, err := c.next()
	if err != nil {
		return reconcile.Row{}, err
	}
	line, _ := c.r.FieldPos(0)

	if len(record) < len(Columns) {
		return reconcile.Row{}, reconcile.ParseErrorf(line, "expected %d fields, got %d", len(Columns), len(record))
	}

	authorID, err := parseID(record[0])
	if err != nil {
		return reconcile.Row{}, reconcile.ParseErrorf(line, "author_id %q is not an integer", record[0])
	}
	bookID, err := parseID(record[2])
	if err != nil {
		return reconcile.Row{}, reconcile.ParseErrorf(line, "book_id %q is not an integer", record[2])
	}

	return reconcile.Row{
		AuthorID: authorID,
		PenName:  record[1],
		BookID:   bookID,
		BookName: record[3],
	}, nil
}

// next reads one record, classifying malformed CSV as a parse error.
func (c *CSVReader) next() ([]string, error) {
	record, err := c.r.Read()
	if err == nil || errors.Is(err, io.EOF) {
		return record, err
	}

	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return nil, &reconcile.Error{Kind: reconcile.KindParse, Line: pe.Line, Err: pe.Err}
	}
	return nil, reconcile.NewError(reconcile.KindConnectivity, "read input", err)
}

func parseID(field string) (int64, error) {
	return strconv.ParseInt(strings.TrimSpace(field), 10, 64)
}
