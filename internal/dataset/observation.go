package dataset

import "time"

// Record is one raw csv row. Datetime, Day and Time are kept as text because
// the timestamp can come from either the datetime column or the day/time pair.
type Record struct {
	Datetime    string  `csv:"datetime"`
	Day         string  `csv:"day"`
	Time        string  `csv:"time"`
	LeafCount   float64 `csv:"LeafCount"`
	Hole        float64 `csv:"hole"`
	Temperature float64 `csv:"temperature"`
	Humidity    float64 `csv:"humidity"`
	Light       float64 `csv:"light"`
	PH          float64 `csv:"pH"`
	EC          float64 `csv:"EC"`
	TDS         float64 `csv:"TDS"`
	WaterTemp   float64 `csv:"WaterTemp"`

	Timestamp time.Time `csv:"-"`
	// Row is the 1-based data row in the source file.
	Row int `csv:"-"`
	// Missing lists the numeric columns left blank (or NaN) in this row.
	Missing []string `csv:"-"`
}

// Table is a parsed csv file: the header as written plus its rows.
type Table struct {
	Header  []string
	Records []*Record

	normalized bool
}

func (t *Table) HasColumn(name string) bool {
	for _, h := range t.Header {
		if h == name {
			return true
		}
	}
	return false
}

// Observation is a single sensor sample in the canonical schema.
type Observation struct {
	Timestamp   time.Time `csv:"datetime" json:"datetime"`
	LeafCount   float64   `csv:"LeafCount" json:"leaf_count"`
	Hole        float64   `csv:"hole" json:"hole"`
	Temperature float64   `csv:"temperature" json:"temperature"`
	Humidity    float64   `csv:"humidity" json:"humidity"`
	Light       float64   `csv:"light" json:"light"`
	PH          float64   `csv:"pH" json:"ph"`
	EC          float64   `csv:"EC" json:"ec"`
	TDS         float64   `csv:"TDS" json:"tds"`
	WaterTemp   float64   `csv:"WaterTemp" json:"water_temp"`
}

// Series is a list of observations sorted ascending by timestamp.
type Series []Observation

func (s Series) Last() (Observation, bool) {
	if len(s) == 0 {
		return Observation{}, false
	}
	return s[len(s)-1], true
}

// UniqueDays counts the distinct calendar days covered by the series.
func (s Series) UniqueDays() int {
	days := make(map[string]struct{})
	for _, o := range s {
		days[o.Timestamp.Format("2006-01-02")] = struct{}{}
	}
	return len(days)
}

func (s Series) LeafCounts() []float64 {
	values := make([]float64, len(s))
	for i, o := range s {
		values[i] = o.LeafCount
	}
	return values
}
