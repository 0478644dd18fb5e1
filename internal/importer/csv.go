package importer

import (
	"context"
	"encoding/csv"
	"io"
	"strings"

	"github.com/rotisserie/eris"
)

// StreamCSV reads CSV rows from r and sends them, trimmed, to a channel.
// Both channels are closed when processing completes.
func StreamCSV(ctx context.Context, r io.Reader, delimiter rune) (<-chan []string, <-chan error) {
	rowCh := make(chan []string, 64)
	errCh := make(chan error, 1)

	go func() {
		defer close(rowCh)
		defer close(errCh)

		reader := csv.NewReader(r)
		if delimiter != 0 {
			reader.Comma = delimiter
		}
		reader.FieldsPerRecord = -1 // allow variable fields
		reader.LazyQuotes = true

		for {
			if ctx.Err() != nil {
				errCh <- eris.Wrap(ctx.Err(), "importer: csv context cancelled")
				return
			}

			record, err := reader.Read()
			if err == io.EOF {
				return
			}
			if err != nil {
				errCh <- eris.Wrap(err, "importer: csv read row")
				return
			}

			for i, field := range record {
				record[i] = strings.TrimSpace(field)
			}

			select {
			case rowCh <- record:
			case <-ctx.Done():
				errCh <- eris.Wrap(ctx.Err(), "importer: csv context cancelled")
				return
			}
		}
	}()

	return rowCh, errCh
}

// ReadCSV collects every row streamed from r.
func ReadCSV(ctx context.Context, r io.Reader, opts Options) ([][]string, error) {
	rowCh, errCh := StreamCSV(ctx, r, opts.Delimiter)

	var rows [][]string
	for row := range rowCh {
		rows = append(rows, row)
	}
	for err := range errCh {
		if err != nil {
			return nil, err
		}
	}
	return rows, nil
}
