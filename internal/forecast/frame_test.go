package forecast

import (
	"errors"
	"testing"
	"time"

	"github.com/hydrosim/hydrosim-cli/internal/dataset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSeries() dataset.Series {
	start := time.Date(2024, 7, 1, 14, 30, 0, 0, time.UTC)
	return dataset.Series{
		{Timestamp: start, LeafCount: 10, Hole: 1, Temperature: 25, Humidity: 60, Light: 2000, PH: 6.5, EC: 1400, TDS: 700, WaterTemp: 26},
		{Timestamp: start.AddDate(0, 0, 1), LeafCount: 12, Hole: 1, Temperature: 26, Humidity: 62, Light: 2100, PH: 6.4, EC: 1450, TDS: 710, WaterTemp: 26.5},
		{Timestamp: start.AddDate(0, 0, 2), LeafCount: 15, Hole: 2, Temperature: 27, Humidity: 64, Light: 2200, PH: 6.3, EC: 1500, TDS: 720, WaterTemp: 27},
	}
}

func TestBuildFutureFrameCarriesLastRowForward(t *testing.T) {
	series := testSeries()
	last := series[len(series)-1]

	frame, err := BuildFutureFrame(series, 5, DefaultFrameConfig())
	require.NoError(t, err)
	require.Len(t, frame, 5)

	for i, row := range frame {
		assert.Equal(t, last.Timestamp.AddDate(0, 0, i), row.Timestamp)
		assert.Equal(t, FutureRow{
			Timestamp:   row.Timestamp,
			Hole:        last.Hole,
			Temperature: last.Temperature,
			Humidity:    last.Humidity,
			Light:       last.Light,
			PH:          last.PH,
			EC:          last.EC,
			TDS:         last.TDS,
			WaterTemp:   last.WaterTemp,
			Cap:         18,
		}, row)
	}
}

func TestBuildFutureFrameIsDeterministic(t *testing.T) {
	a, err := BuildFutureFrame(testSeries(), 7, DefaultFrameConfig())
	require.NoError(t, err)
	b, err := BuildFutureFrame(testSeries(), 7, DefaultFrameConfig())
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestBuildFutureFrameValidatesInput(t *testing.T) {
	_, err := BuildFutureFrame(nil, 5, DefaultFrameConfig())
	assert.ErrorIs(t, err, ErrEmptySeries)

	_, err = BuildFutureFrame(testSeries(), 0, DefaultFrameConfig())
	assert.ErrorIs(t, err, ErrInvalidHorizon)

	_, err = BuildFutureFrame(testSeries(), 41, DefaultFrameConfig())
	assert.ErrorIs(t, err, ErrInvalidHorizon)

	frame, err := BuildFutureFrame(testSeries(), 12, FrameConfig{MaxHorizon: 12, Capacity: 20})
	require.NoError(t, err)
	assert.Equal(t, 20.0, frame[0].Cap)
}

func TestHorizonRange(t *testing.T) {
	h, err := HorizonRange(5, 40)
	require.NoError(t, err)
	assert.Equal(t, Horizon{Min: 1, Max: 35, Default: 5}, h)
	assert.True(t, h.Contains(35))
	assert.False(t, h.Contains(36))
	assert.False(t, h.Contains(0))

	h, err = HorizonRange(25, 40)
	require.NoError(t, err)
	assert.Equal(t, Horizon{Min: 1, Max: 15, Default: 15}, h)

	_, err = HorizonRange(40, 40)
	assert.True(t, errors.Is(err, ErrNoHorizonLeft))

	_, err = HorizonRange(0, 40)
	assert.ErrorIs(t, err, ErrEmptySeries)
}
