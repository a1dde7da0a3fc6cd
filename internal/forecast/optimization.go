package forecast

import (
	"fmt"
	"math"
	"time"

	"github.com/hydrosim/hydrosim-cli/internal/dataset"
	"gonum.org/v1/gonum/stat"
)

// Range is an inclusive optimal interval.
type Range struct {
	Low  float64
	High float64
}

func (r Range) Contains(v float64) bool {
	return v >= r.Low && v <= r.High
}

// OptimalRanges holds the growing conditions lettuce does best in.
var OptimalRanges = map[string]Range{
	"temperature": {25, 28},
	"humidity":    {50, 70},
	"light":       {1000, 4000},
	"pH":          {6.0, 7.0},
	"EC":          {1200, 1800},
	"TDS":         {560, 840},
	"WaterTemp":   {25, 28},
}

// JoinedRow pairs an observation with the forecast point at the same timestamp.
type JoinedRow struct {
	Observation dataset.Observation
	Point       Point
}

// Join keeps the timestamps present in both the series and the forecast, in series order.
func Join(series dataset.Series, fc Forecast) []JoinedRow {
	points := make(map[time.Time]Point, len(fc))
	for _, p := range fc {
		points[p.Timestamp.UTC()] = p
	}

	var rows []JoinedRow
	for _, o := range series {
		if p, ok := points[o.Timestamp.UTC()]; ok {
			rows = append(rows, JoinedRow{Observation: o, Point: p})
		}
	}
	return rows
}

type column struct {
	name  string
	value func(JoinedRow) float64
}

var joinedColumns = []column{
	{"LeafCount", func(r JoinedRow) float64 { return r.Observation.LeafCount }},
	{"hole", func(r JoinedRow) float64 { return r.Observation.Hole }},
	{"temperature", func(r JoinedRow) float64 { return r.Observation.Temperature }},
	{"humidity", func(r JoinedRow) float64 { return r.Observation.Humidity }},
	{"light", func(r JoinedRow) float64 { return r.Observation.Light }},
	{"pH", func(r JoinedRow) float64 { return r.Observation.PH }},
	{"EC", func(r JoinedRow) float64 { return r.Observation.EC }},
	{"TDS", func(r JoinedRow) float64 { return r.Observation.TDS }},
	{"WaterTemp", func(r JoinedRow) float64 { return r.Observation.WaterTemp }},
	{"yhat", func(r JoinedRow) float64 { return r.Point.Yhat }},
	{"yhat_lower", func(r JoinedRow) float64 { return r.Point.YhatLower }},
	{"yhat_upper", func(r JoinedRow) float64 { return r.Point.YhatUpper }},
}

// Verdict is the optimization result for one column.
type Verdict struct {
	Feature string  `json:"feature"`
	Mean    float64 `json:"mean"`
	Optimal bool    `json:"optimal"`
}

func (v Verdict) Status() string {
	if v.Optimal {
		return "optimal"
	}
	return "needs attention"
}

func (v Verdict) String() string {
	if v.Optimal {
		return fmt.Sprintf("Average %s is in ideal condition at %.2f. This supports optimal growth.", v.Feature, v.Mean)
	}
	return fmt.Sprintf("Average %s is recorded at %.2f. It needs attention to reach conditions that better support growth.", v.Feature, v.Mean)
}

// CheckOptimization averages every column of the joined frame and compares it with OptimalRanges.
func CheckOptimization(rows []JoinedRow) ([]Verdict, error) {
	if len(rows) == 0 {
		return nil, ErrEmptyFrame
	}

	verdicts := make([]Verdict, 0, len(joinedColumns))
	values := make([]float64, len(rows))
	for _, c := range joinedColumns {
		for i, r := range rows {
			values[i] = c.value(r)
		}
		mean := math.Round(stat.Mean(values, nil)*100) / 100
		verdicts = append(verdicts, CheckMean(c.name, mean))
	}
	return verdicts, nil
}

// CheckMean classifies a precomputed mean. Features without a range are always optimal.
func CheckMean(feature string, mean float64) Verdict {
	r, ok := OptimalRanges[feature]
	if !ok {
		return Verdict{Feature: feature, Mean: mean, Optimal: true}
	}
	return Verdict{Feature: feature, Mean: mean, Optimal: r.Contains(mean)}
}
