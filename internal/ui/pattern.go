package ui

import (
	"context"
	"fmt"

	"github.com/hydrosim/hydrosim-cli/internal/delivery"
	"github.com/hydrosim/hydrosim-cli/internal/pattern"
)

// PredictPattern handles the UI for the growth pattern prediction
func PredictPattern(ctx context.Context, svc *delivery.Service) {
	reading, err := ReadReading()
	if err != nil {
		PrintError(err.Error())
		return
	}

	prediction, err := svc.PredictPattern(ctx, reading)
	if err != nil {
		PrintError(err.Error())
		return
	}
	PrintSuccess(fmt.Sprintf("Predicted pattern: %s", prediction.Label))
	if prediction.Image != "" {
		fmt.Printf("Illustration: %s\n", prediction.Image)
	}
}

// ReadReading asks for each environment value, offering the defaults.
func ReadReading() (pattern.Reading, error) {
	r := pattern.DefaultReading()
	fields := []struct {
		prompt string
		value  *float64
	}{
		{"Temperature ", &r.Temperature},
		{"Humidity ", &r.Humidity},
		{"Light ", &r.Light},
		{"pH ", &r.PH},
		{"EC ", &r.EC},
		{"TDS ", &r.TDS},
		{"Water temperature ", &r.WaterTemp},
	}
	for _, f := range fields {
		v, err := ReadFloat(f.prompt, *f.value)
		if err != nil {
			return pattern.Reading{}, err
		}
		*f.value = v
	}
	return r, nil
}
