package dataset

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Epoch is day 1 of a planting when the input only carries day/time columns.
var Epoch = time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC)

// maxDay bounds day values so the derived timestamp stays representable.
const maxDay = 100000

var datetimeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02 15:04",
	"2006-01-02",
	"2006/01/02 15:04:05",
	"01/02/2006 15:04",
}

// Normalize builds the timestamp of every record, drops repeated
// (day, time, leaf count) triples and sorts the rows by timestamp.
// The input table is left untouched.
func Normalize(t *Table) (*Table, error) {
	if t == nil || len(t.Records) == 0 {
		return nil, ErrEmptyDataset
	}

	header := append([]string(nil), t.Header...)
	records := make([]*Record, len(t.Records))
	for i, r := range t.Records {
		c := *r
		records[i] = &c
	}

	var keys []dedupKey
	var err error
	if t.HasColumn("datetime") {
		keys, err = parseDatetimeColumn(records)
	} else {
		if !t.HasColumn("day") {
			return nil, &MissingColumnError{Column: "day"}
		}
		if !t.HasColumn("time") {
			return nil, &MissingColumnError{Column: "time"}
		}
		keys, err = deriveFromDayAndTime(records)
		header = append(header, "datetime")
	}
	if err != nil {
		return nil, err
	}

	records = dropDuplicates(records, keys)
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Timestamp.Before(records[j].Timestamp)
	})

	return &Table{Header: header, Records: records, normalized: true}, nil
}

type dedupKey struct {
	day       int
	clock     string
	leafCount float64
}

func dropDuplicates(records []*Record, keys []dedupKey) []*Record {
	seen := make(map[dedupKey]struct{}, len(records))
	out := records[:0]
	for i, r := range records {
		if _, ok := seen[keys[i]]; ok {
			continue
		}
		seen[keys[i]] = struct{}{}
		out = append(out, r)
	}
	return out
}

func parseDatetimeColumn(records []*Record) ([]dedupKey, error) {
	parseErr := &DateTimeParseError{}
	keys := make([]dedupKey, len(records))
	for i, r := range records {
		ts, ok := parseDatetime(r.Datetime)
		if !ok {
			parseErr.Rows = append(parseErr.Rows, i+1)
			parseErr.Values = append(parseErr.Values, r.Datetime)
			continue
		}
		r.Timestamp = ts
		// Calendar days since the unix epoch identify the day for deduplication.
		day := int(time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, time.UTC).Unix() / 86400)
		keys[i] = dedupKey{day: day, clock: ts.Format("15:04:05"), leafCount: r.LeafCount}
	}
	if len(parseErr.Rows) > 0 {
		return nil, parseErr
	}
	return keys, nil
}

func parseDatetime(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range datetimeLayouts {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

func deriveFromDayAndTime(records []*Record) ([]dedupKey, error) {
	parseErr := &DateTimeParseError{}
	keys := make([]dedupKey, len(records))
	for i, r := range records {
		day, err := parseDay(r.Day)
		if err != nil {
			parseErr.Rows = append(parseErr.Rows, i+1)
			parseErr.Values = append(parseErr.Values, r.Day)
			continue
		}
		hour, minute, err := ParseClock(r.Time)
		if err != nil {
			parseErr.Rows = append(parseErr.Rows, i+1)
			parseErr.Values = append(parseErr.Values, r.Time)
			continue
		}
		r.Timestamp = Epoch.AddDate(0, 0, day-1).Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
		keys[i] = dedupKey{day: day, clock: fmt.Sprintf("%02d:%02d:00", hour, minute), leafCount: r.LeafCount}
	}
	if len(parseErr.Rows) > 0 {
		return nil, parseErr
	}
	return keys, nil
}

// parseDay accepts whole days from 1 written either as "3" or "3.0".
func parseDay(value string) (int, error) {
	value = strings.TrimSpace(value)
	if day, err := strconv.Atoi(value); err == nil {
		if day < 1 || day > maxDay {
			return 0, fmt.Errorf("day %d out of range", day)
		}
		return day, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid day %q", value)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) || f < 1 || f > maxDay {
		return 0, fmt.Errorf("invalid day %q", value)
	}
	return int(f), nil
}

// ParseClock reads fractional hours where the decimals are minutes:
// 14.3 and 14.30 both mean 14:30, 9.05 means 09:05.
func ParseClock(value string) (int, int, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid time %q", value)
	}
	formatted := strconv.FormatFloat(f, 'f', 2, 64)
	parts := strings.SplitN(formatted, ".", 2)
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid time %q", value)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid time %q", value)
	}
	if hour < 0 || hour > 23 || minute > 59 || f < 0 {
		return 0, 0, fmt.Errorf("time %q out of range", value)
	}
	return hour, minute, nil
}
