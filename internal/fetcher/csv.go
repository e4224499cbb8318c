package fetcher

import (
	"context"
	"encoding/csv"
	"io"
	"strings"

	"github.com/rotisserie/eris"
)

// CSVOptions configures EachCSVRow.
type CSVOptions struct {
	Delimiter rune // default ','
	HasHeader bool // skip the first row
	Comment   rune // comment character (0 = none)
	TrimSpace bool
}

// EachCSVRow reads r row by row and calls fn with the 1-based line number of
// each data row. Rows may have differing field counts. A non-nil error from
// fn stops iteration and is returned as is. The row slice is reused between
// calls, so fn must copy anything it keeps.
func EachCSVRow(ctx context.Context, r io.Reader, opts CSVOptions, fn func(line int, row []string) error) error {
	reader := csv.NewReader(r)
	if opts.Delimiter != 0 {
		reader.Comma = opts.Delimiter
	}
	reader.Comment = opts.Comment
	reader.FieldsPerRecord = -1
	reader.ReuseRecord = true

	skipHeader := opts.HasHeader
	for {
		if err := ctx.Err(); err != nil {
			return eris.Wrap(err, "csv: context cancelled")
		}

		record, err := reader.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return eris.Wrap(err, "csv: read row")
		}
		if skipHeader {
			skipHeader = false
			continue
		}

		if opts.TrimSpace {
			for i, field := range record {
				record[i] = strings.TrimSpace(field)
			}
		}

		line, _ := reader.FieldPos(0)
		if err := fn(line, record); err != nil {
			return err
		}
	}
}
