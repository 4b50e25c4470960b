package library

import (
	"encoding/csv"
	"fmt"
	"io"
	"math/rand"
	"strconv"

	"library-ingest/core/source"
)

// NewRand returns a generator source for Generate.
func NewRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// Generate writes a header and n rows in the input column order. Row i has
// author_id = book_id = i, a pen name drawn from Author_1..Author_n and a
// title drawn from Book_1..Book_n.
func Generate(w io.Writer, n int, rnd *rand.Rand) error {
	if n < 0 {
		return fmt.Errorf("record count must not be negative, got %d", n)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(source.Columns); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i := 1; i <= n; i++ {
		id := strconv.Itoa(i)
		record := []string{
			id,
			"Author_" + strconv.Itoa(rnd.Intn(n)+1),
			id,
			"Book_" + strconv.Itoa(rnd.Intn(n)+1),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush sample: %w", err)
	}
	return nil
}
