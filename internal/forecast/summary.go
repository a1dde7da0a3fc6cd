package forecast

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/hydrosim/hydrosim-cli/internal/dataset"
)

// GrowthSummary compares the last observed leaf count with the forecast peak.
type GrowthSummary struct {
	Percentage    float64   `json:"percentage"`
	LastLeafCount float64   `json:"last_leaf_count"`
	PeakLeafCount float64   `json:"peak_leaf_count"`
	PeakAt        time.Time `json:"peak_at"`
	Horizon       int       `json:"horizon"`
	// HasBaseline is false when the last observed leaf count is zero and
	// Percentage carries no ratio.
	HasBaseline bool `json:"has_baseline"`
}

// Summarize computes (peak - last) / last * 100. A zero baseline yields +Inf
// for a positive peak and 0 when the peak is zero too.
func Summarize(series dataset.Series, fc Forecast) (GrowthSummary, error) {
	last, ok := series.Last()
	if !ok {
		return GrowthSummary{}, ErrEmptySeries
	}
	peak, ok := fc.Peak()
	if !ok {
		return GrowthSummary{}, ErrEmptyForecast
	}

	summary := GrowthSummary{
		LastLeafCount: last.LeafCount,
		PeakLeafCount: peak.Yhat,
		PeakAt:        peak.Timestamp,
		Horizon:       len(fc),
		HasBaseline:   last.LeafCount != 0,
	}

	switch {
	case summary.HasBaseline:
		summary.Percentage = (peak.Yhat - last.LeafCount) / last.LeafCount * 100
	case peak.Yhat > 0:
		summary.Percentage = math.Inf(1)
	default:
		summary.Percentage = 0
	}
	return summary, nil
}

func (s GrowthSummary) Narrative() string {
	var b strings.Builder
	b.WriteString("Lettuce leaf growth forecast\n\n")
	if s.HasBaseline {
		fmt.Fprintf(&b, "Based on the growth simulation, the leaf count is expected to change by %.2f%% from the last observed count of %.0f leaves.\n", s.Percentage, s.LastLeafCount)
	} else {
		b.WriteString("The last observation has no leaves yet, so growth cannot be expressed as a percentage.\n")
	}
	fmt.Fprintf(&b, "By day %d the plant is predicted to reach %.0f leaves.\n", s.Horizon, s.PeakLeafCount)
	b.WriteString("Keep the environment stable so this growth can be reached.")
	return b.String()
}
