package forecast

import (
	"context"
	"time"

	"gonum.org/v1/gonum/floats"
)

// Point is one forecasted day.
type Point struct {
	Timestamp time.Time `csv:"ds" json:"ds"`
	Yhat      float64   `csv:"yhat" json:"yhat"`
	YhatLower float64   `csv:"yhat_lower" json:"yhat_lower"`
	YhatUpper float64   `csv:"yhat_upper" json:"yhat_upper"`
}

type Forecast []Point

// Peak returns the point with the highest estimate; ties keep the earliest.
func (f Forecast) Peak() (Point, bool) {
	if len(f) == 0 {
		return Point{}, false
	}
	return f[floats.MaxIdx(f.Yhat())], true
}

func (f Forecast) Yhat() []float64 {
	values := make([]float64, len(f))
	for i, p := range f {
		values[i] = p.Yhat
	}
	return values
}

// Model is a pretrained forecaster.
type Model interface {
	Predict(ctx context.Context, frame FutureFrame) (Forecast, error)
}

// Run predicts once and clips every estimate at zero since leaf counts cannot be negative.
func Run(ctx context.Context, model Model, frame FutureFrame) (Forecast, error) {
	predicted, err := model.Predict(ctx, frame)
	if err != nil {
		return nil, &ForecastError{Err: err}
	}

	out := make(Forecast, len(predicted))
	for i, p := range predicted {
		out[i] = Point{
			Timestamp: p.Timestamp,
			Yhat:      max(p.Yhat, 0),
			YhatLower: max(p.YhatLower, 0),
			YhatUpper: max(p.YhatUpper, 0),
		}
	}
	return out, nil
}
