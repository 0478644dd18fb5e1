// Package importer reads production histories from XLSX and CSV files into
// model.ProductionRecord series and flags their active points.
package importer

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/decline-cli/internal/model"
)

// DefaultActivePoints is the number of trailing rows flagged active on import.
const DefaultActivePoints = 11

var (
	// ErrNoData is returned when a file holds no data row after the header.
	ErrNoData = eris.New("importer: file must contain at least one row of data")
	// ErrUnsupportedFile is returned for extensions other than .xlsx and .csv.
	ErrUnsupportedFile = eris.New("importer: unsupported file type")
)

// Options configures how rows map onto production records.
type Options struct {
	SheetIndex   int    // xlsx only; default 0
	SheetName    string // xlsx only; overrides SheetIndex
	Delimiter    rune   // csv only; default ','
	HasHeader    bool
	YearColumn   int
	OilColumn    int
	LiquidColumn int
	ActiveColumn int // -1 flags the last ActivePoints rows instead
	ActivePoints int
}

// DefaultOptions returns the standard layout: a header row followed by
// year, oil and liquid columns, with the last 11 rows active.
func DefaultOptions() Options {
	return Options{
		HasHeader:    true,
		YearColumn:   0,
		OilColumn:    1,
		LiquidColumn: 2,
		ActiveColumn: -1,
		ActivePoints: DefaultActivePoints,
	}
}

// Load reads the production history stored at path.
func Load(ctx context.Context, path string, opts Options) ([]model.ProductionRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "importer: open %s", path)
	}
	defer f.Close()

	records, err := LoadReader(ctx, filepath.Base(path), f, opts)
	if err != nil {
		return nil, err
	}

	zap.L().Info("importer: production history loaded",
		zap.String("path", path),
		zap.Int("records", len(records)),
		zap.Int("active", len(model.ActiveRecords(records))),
	)
	return records, nil
}

// LoadReader reads a production history from r. The file name selects the
// format by extension.
func LoadReader(ctx context.Context, name string, r io.Reader, opts Options) ([]model.ProductionRecord, error) {
	var rows [][]string
	switch ext := strings.ToLower(filepath.Ext(name)); ext {
	case ".xlsx":
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, eris.Wrap(err, "importer: read xlsx")
		}
		rows, err = ReadXLSX(data, opts)
		if err != nil {
			return nil, err
		}
	case ".csv":
		var err error
		rows, err = ReadCSV(ctx, r, opts)
		if err != nil {
			return nil, err
		}
	default:
		return nil, eris.Wrapf(ErrUnsupportedFile, "%q", ext)
	}

	return Parse(rows, opts)
}
