package forecast

import (
	"errors"
	"fmt"
)

var (
	ErrEmptySeries    = errors.New("series has no observations")
	ErrInvalidHorizon = errors.New("invalid forecast horizon")
	ErrNoHorizonLeft  = errors.New("no forecast days left in the growing cycle")
	ErrEmptyForecast  = errors.New("forecast has no points")
	ErrEmptyFrame     = errors.New("series and forecast share no timestamps")
)

// ForecastError wraps a failure raised by the underlying model.
type ForecastError struct {
	Err error
}

func (e *ForecastError) Error() string {
	return fmt.Sprintf("forecast model failed: %v", e.Err)
}

func (e *ForecastError) Unwrap() error {
	return e.Err
}
