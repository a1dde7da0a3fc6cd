package pattern

import (
	"bytes"
	"context"
	"fmt"

	"github.com/gocarina/gocsv"
	"github.com/hydrosim/hydrosim-cli/internal/dataset"
)

// Sample is one labelled row of the pattern dataset.
type Sample struct {
	Temperature float64 `csv:"temperature"`
	Humidity    float64 `csv:"humidity"`
	Light       float64 `csv:"light"`
	PH          float64 `csv:"pH"`
	EC          float64 `csv:"EC"`
	TDS         float64 `csv:"TDS"`
	WaterTemp   float64 `csv:"WaterTemp"`
	Pattern     int     `csv:"Pattern"`
}

func (s Sample) Reading() Reading {
	return Reading{
		Temperature: s.Temperature,
		Humidity:    s.Humidity,
		Light:       s.Light,
		PH:          s.PH,
		EC:          s.EC,
		TDS:         s.TDS,
		WaterTemp:   s.WaterTemp,
	}
}

func ParseDataset(data []byte) ([]Sample, error) {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))

	var samples []Sample
	if err := gocsv.UnmarshalBytes(data, &samples); err != nil {
		return nil, fmt.Errorf("error unmarshalling pattern dataset: %w", err)
	}
	if len(samples) == 0 {
		return nil, dataset.ErrEmptyDataset
	}
	return samples, nil
}

// FetchDataset downloads the labelled pattern dataset.
func FetchDataset(ctx context.Context, fetcher *dataset.Fetcher, url string) ([]Sample, error) {
	data, err := fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch pattern dataset: %w", err)
	}
	return ParseDataset(data)
}
