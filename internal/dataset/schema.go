package dataset

import "sort"

// RequiredColumns is the canonical column set, in output order.
var RequiredColumns = []string{
	"datetime",
	"LeafCount",
	"hole",
	"temperature",
	"humidity",
	"light",
	"pH",
	"EC",
	"TDS",
	"WaterTemp",
}

// Project reduces a normalized table to the canonical series.
func Project(t *Table) (Series, error) {
	if t == nil {
		return nil, ErrEmptyDataset
	}
	for _, column := range RequiredColumns {
		if !t.HasColumn(column) {
			return nil, &MissingColumnError{Column: column}
		}
	}
	if !t.normalized {
		return nil, ErrNotNormalized
	}
	if err := checkMissing(t.Records); err != nil {
		return nil, err
	}

	series := make(Series, 0, len(t.Records))
	for _, r := range t.Records {
		series = append(series, Observation{
			Timestamp:   r.Timestamp,
			LeafCount:   r.LeafCount,
			Hole:        r.Hole,
			Temperature: r.Temperature,
			Humidity:    r.Humidity,
			Light:       r.Light,
			PH:          r.PH,
			EC:          r.EC,
			TDS:         r.TDS,
			WaterTemp:   r.WaterTemp,
		})
	}
	return series, nil
}

// Preprocess runs Normalize then Project.
func Preprocess(t *Table) (Series, error) {
	normalized, err := Normalize(t)
	if err != nil {
		return nil, err
	}
	return Project(normalized)
}

func checkMissing(records []*Record) error {
	var missing []*Record
	for _, r := range records {
		if len(r.Missing) > 0 {
			missing = append(missing, r)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	sort.Slice(missing, func(i, j int) bool { return missing[i].Row < missing[j].Row })

	err := &MissingValueError{}
	for _, r := range missing {
		for _, column := range r.Missing {
			err.Rows = append(err.Rows, r.Row)
			err.Columns = append(err.Columns, column)
		}
	}
	return err
}
