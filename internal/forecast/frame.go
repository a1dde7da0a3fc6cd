package forecast

import (
	"fmt"
	"time"

	"github.com/hydrosim/hydrosim-cli/internal/dataset"
)

// FrameConfig carries the limits the future frame is built with.
type FrameConfig struct {
	MaxHorizon int
	Capacity   float64
}

func DefaultFrameConfig() FrameConfig {
	return FrameConfig{
		MaxHorizon: 40,
		Capacity:   18,
	}
}

// FutureRow is one day of model input. Exogenous values are the last observed ones.
type FutureRow struct {
	Timestamp   time.Time `json:"ds"`
	Hole        float64   `json:"hole"`
	Temperature float64   `json:"temperature"`
	Humidity    float64   `json:"humidity"`
	Light       float64   `json:"light"`
	PH          float64   `json:"pH"`
	EC          float64   `json:"EC"`
	TDS         float64   `json:"TDS"`
	WaterTemp   float64   `json:"WaterTemp"`
	Cap         float64   `json:"cap"`
}

type FutureFrame []FutureRow

// BuildFutureFrame returns horizon daily rows starting at the last observed
// timestamp, each carrying the last observation's environment unchanged.
func BuildFutureFrame(series dataset.Series, horizon int, cfg FrameConfig) (FutureFrame, error) {
	last, ok := series.Last()
	if !ok {
		return nil, ErrEmptySeries
	}
	if horizon < 1 || (cfg.MaxHorizon > 0 && horizon > cfg.MaxHorizon) {
		return nil, fmt.Errorf("%w: %d (allowed 1..%d)", ErrInvalidHorizon, horizon, cfg.MaxHorizon)
	}

	frame := make(FutureFrame, horizon)
	for i := range frame {
		frame[i] = FutureRow{
			Timestamp:   last.Timestamp.AddDate(0, 0, i),
			Hole:        last.Hole,
			Temperature: last.Temperature,
			Humidity:    last.Humidity,
			Light:       last.Light,
			PH:          last.PH,
			EC:          last.EC,
			TDS:         last.TDS,
			WaterTemp:   last.WaterTemp,
			Cap:         cfg.Capacity,
		}
	}
	return frame, nil
}

// Horizon is the range of forecast lengths a series allows, plus a suggested default.
type Horizon struct {
	Min     int
	Max     int
	Default int
}

// HorizonRange bounds the forecast by the days left in a maxDay-long cycle
// once uniqueDays have already been observed.
func HorizonRange(uniqueDays, maxDay int) (Horizon, error) {
	if uniqueDays < 1 {
		return Horizon{}, ErrEmptySeries
	}
	remaining := maxDay - uniqueDays
	if remaining < 1 {
		return Horizon{}, fmt.Errorf("%w: %d days observed, cycle is %d days", ErrNoHorizonLeft, uniqueDays, maxDay)
	}
	return Horizon{
		Min:     1,
		Max:     remaining,
		Default: min(uniqueDays, remaining),
	}, nil
}

// Contains reports whether days is an allowed horizon.
func (h Horizon) Contains(days int) bool {
	return days >= h.Min && days <= h.Max
}
