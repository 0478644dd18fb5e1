package importer

import (
	"github.com/sells-group/decline-cli/internal/model"
)

// SetActiveLast returns a copy of series with the last n records flagged
// active and every other record inactive. n <= 0 deactivates everything;
// n beyond the series length activates everything.
func SetActiveLast(series []model.ProductionRecord, n int) []model.ProductionRecord {
	if series == nil {
		return nil
	}
	out := make([]model.ProductionRecord, len(series))
	cutoff := len(series) - n
	for i, r := range series {
		r.ActivePoint = model.InactiveFlag
		if n > 0 && i >= cutoff {
			r.ActivePoint = model.ActiveFlag
		}
		out[i] = r
	}
	return out
}
