package forecast

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/hydrosim/hydrosim-cli/internal/dataset"
)

// Regressor is a standardized linear effect of one environmental feature.
type Regressor struct {
	Coef float64 `json:"coef"`
	Mean float64 `json:"mean"`
	Std  float64 `json:"std"`
}

// GrowthModel is a capacity-bounded logistic trend plus additive regressors,
// persisted as JSON by the training notebook:
//
//	yhat(t) = cap / (1 + exp(-k*(d(t) - m))) + sum(coef * (x - mean) / std)
//
// where d(t) is days since Origin. Bounds are yhat -/+ IntervalZ*Sigma.
type GrowthModel struct {
	Version    string               `json:"version"`
	Origin     time.Time            `json:"origin"`
	K          float64              `json:"k"`
	M          float64              `json:"m"`
	Sigma      float64              `json:"sigma"`
	IntervalZ  float64              `json:"interval_z"`
	Regressors map[string]Regressor `json:"regressors"`
}

var regressorValues = map[string]func(FutureRow) float64{
	"hole":        func(r FutureRow) float64 { return r.Hole },
	"temperature": func(r FutureRow) float64 { return r.Temperature },
	"humidity":    func(r FutureRow) float64 { return r.Humidity },
	"light":       func(r FutureRow) float64 { return r.Light },
	"pH":          func(r FutureRow) float64 { return r.PH },
	"EC":          func(r FutureRow) float64 { return r.EC },
	"TDS":         func(r FutureRow) float64 { return r.TDS },
	"WaterTemp":   func(r FutureRow) float64 { return r.WaterTemp },
}

func LoadGrowthModel(path string) (*GrowthModel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read model file: %w", err)
	}

	var model GrowthModel
	if err := json.Unmarshal(data, &model); err != nil {
		return nil, fmt.Errorf("failed to unmarshal model: %w", err)
	}
	if err := model.validate(); err != nil {
		return nil, fmt.Errorf("invalid model %s: %w", path, err)
	}

	log.Printf("Loaded growth model %s from %s", model.Version, path)
	return &model, nil
}

func (m *GrowthModel) validate() error {
	if m.Sigma < 0 || m.IntervalZ < 0 {
		return fmt.Errorf("interval parameters must not be negative")
	}
	for name, r := range m.Regressors {
		if _, ok := regressorValues[name]; !ok {
			return fmt.Errorf("unknown regressor %q", name)
		}
		if r.Std <= 0 {
			return fmt.Errorf("regressor %q has non-positive std", name)
		}
	}
	return nil
}

func (m *GrowthModel) Predict(ctx context.Context, frame FutureFrame) (Forecast, error) {
	names := make([]string, 0, len(m.Regressors))
	for name := range m.Regressors {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make(Forecast, 0, len(frame))
	for _, row := range frame {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if row.Cap <= 0 {
			return nil, fmt.Errorf("capacity must be positive, got %v", row.Cap)
		}

		days := row.Timestamp.Sub(m.Origin).Hours() / 24
		yhat := row.Cap / (1 + math.Exp(-m.K*(days-m.M)))
		for _, name := range names {
			r := m.Regressors[name]
			yhat += r.Coef * (regressorValues[name](row) - r.Mean) / r.Std
		}

		width := m.IntervalZ * m.Sigma
		out = append(out, Point{
			Timestamp: row.Timestamp,
			Yhat:      yhat,
			YhatLower: yhat - width,
			YhatUpper: yhat + width,
		})
	}
	return out, nil
}

// SampleGrowthModel is a reasonable lettuce model used when no trained model is available.
func SampleGrowthModel() *GrowthModel {
	return &GrowthModel{
		Version:   "sample-1",
		Origin:    dataset.Epoch,
		K:         0.18,
		M:         14,
		Sigma:     1.3,
		IntervalZ: 1.2816,
		Regressors: map[string]Regressor{
			"temperature": {Coef: 0.15, Mean: 26, Std: 1.5},
			"humidity":    {Coef: -0.1, Mean: 65, Std: 8},
			"light":       {Coef: 0.2, Mean: 2500, Std: 1200},
			"WaterTemp":   {Coef: 0.1, Mean: 25, Std: 1.5},
		},
	}
}

// WriteSampleGrowthModel writes SampleGrowthModel to path.
func WriteSampleGrowthModel(path string) error {
	data, err := json.MarshalIndent(SampleGrowthModel(), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal model: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return fmt.Errorf("failed to create model folder: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write model file: %w", err)
	}

	log.Printf("Created sample growth model at %s", path)
	return nil
}
