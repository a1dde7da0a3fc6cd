package delivery

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/hydrosim/hydrosim-cli/internal/cache"
	"github.com/hydrosim/hydrosim-cli/internal/dataset"
	"github.com/hydrosim/hydrosim-cli/internal/forecast"
	"github.com/hydrosim/hydrosim-cli/internal/ml"
	"github.com/hydrosim/hydrosim-cli/internal/pattern"
	"github.com/hydrosim/hydrosim-cli/internal/properties"
	"golang.org/x/sync/errgroup"
)

const modelCacheName = "models"

// Service runs the forecasting pipeline against a forecaster and a pattern classifier.
type Service struct {
	Model      forecast.Model
	Classifier pattern.Classifier
	Frame      forecast.FrameConfig
	MaxDay     int

	closer io.Closer
}

// Report is everything one forecast run produces.
type Report struct {
	Series   dataset.Series
	Frame    forecast.FutureFrame
	Forecast forecast.Forecast
	Summary  forecast.GrowthSummary
	Verdicts []forecast.Verdict
	Horizon  forecast.Horizon
}

func NewService(model forecast.Model, classifier pattern.Classifier) *Service {
	return &Service{
		Model:      model,
		Classifier: classifier,
		Frame: forecast.FrameConfig{
			MaxHorizon: properties.MaxDay(),
			Capacity:   properties.Capacity(),
		},
		MaxDay: properties.MaxDay(),
	}
}

// LoadService uses the remote model server when MODEL_GRPC_ADDR is set.
// Otherwise the growth model is read from disk (a sample one is written when
// missing) while the pattern model is trained, both in parallel.
func LoadService(ctx context.Context) (*Service, error) {
	if addr := properties.ModelGrpcAddr(); addr != "" {
		client, err := ml.NewClient(addr)
		if err != nil {
			return nil, err
		}
		log.Printf("Using remote models at %s", addr)
		s := NewService(client.Forecaster(), client.Classifier())
		s.closer = client
		return s, nil
	}

	var (
		growthModel  *forecast.GrowthModel
		patternModel *pattern.CentroidModel
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		m, err := loadGrowthModel(properties.ForecastModelPath())
		if err != nil {
			return err
		}
		growthModel = m
		return nil
	})
	g.Go(func() error {
		store := cache.NewFileCache[*pattern.CentroidModel](modelCacheName, 0)
		m, err := pattern.LoadOrTrain(gctx, dataset.NewFetcher(gctx), properties.PatternDatasetURL(), store, pattern.DefaultTrainConfig())
		if err != nil {
			return err
		}
		patternModel = m
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load models: %w", err)
	}

	return NewService(growthModel, patternModel), nil
}

// ClearCaches removes downloaded datasets and trained pattern models so the
// next run fetches and trains again.
func ClearCaches() error {
	if err := cache.NewFileCache[[]byte](dataset.CacheName, 0).Clear(); err != nil {
		return err
	}
	if err := cache.NewFileCache[*pattern.CentroidModel](modelCacheName, 0).Clear(); err != nil {
		return err
	}
	log.Printf("Cleared caches under %s", properties.DataPath("cache"))
	return nil
}

func loadGrowthModel(path string) (*forecast.GrowthModel, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := forecast.WriteSampleGrowthModel(path); err != nil {
			return nil, err
		}
	}
	return forecast.LoadGrowthModel(path)
}

func (s *Service) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}

// Forecast reads a sensor csv and forecasts horizon days. A zero horizon uses
// the suggested default for the series.
func (s *Service) Forecast(ctx context.Context, r io.Reader, horizon int) (*Report, error) {
	table, err := dataset.ReadCSV(r)
	if err != nil {
		return nil, err
	}
	return s.ForecastTable(ctx, table, horizon)
}

func (s *Service) ForecastFile(ctx context.Context, path string, horizon int) (*Report, error) {
	table, err := dataset.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return s.ForecastTable(ctx, table, horizon)
}

// ForecastURL downloads a sensor csv and forecasts it.
func (s *Service) ForecastURL(ctx context.Context, fetcher *dataset.Fetcher, url string, horizon int) (*Report, error) {
	table, err := fetcher.FetchTable(ctx, url)
	if err != nil {
		return nil, err
	}
	return s.ForecastTable(ctx, table, horizon)
}

func (s *Service) ForecastTable(ctx context.Context, table *dataset.Table, horizon int) (*Report, error) {
	series, err := dataset.Preprocess(table)
	if err != nil {
		return nil, err
	}

	bounds, err := forecast.HorizonRange(series.UniqueDays(), s.MaxDay)
	if err != nil {
		return nil, err
	}
	if horizon == 0 {
		horizon = bounds.Default
	}
	if !bounds.Contains(horizon) {
		return nil, fmt.Errorf("%w: %d (allowed %d..%d)", forecast.ErrInvalidHorizon, horizon, bounds.Min, bounds.Max)
	}

	frame, err := forecast.BuildFutureFrame(series, horizon, s.Frame)
	if err != nil {
		return nil, err
	}

	fc, err := forecast.Run(ctx, s.Model, frame)
	if err != nil {
		return nil, err
	}

	summary, err := forecast.Summarize(series, fc)
	if err != nil {
		return nil, err
	}

	verdicts, err := forecast.CheckOptimization(forecast.Join(series, fc))
	if err != nil {
		return nil, err
	}

	return &Report{
		Series:   series,
		Frame:    frame,
		Forecast: fc,
		Summary:  summary,
		Verdicts: verdicts,
		Horizon:  bounds,
	}, nil
}

func (s *Service) PredictPattern(ctx context.Context, reading pattern.Reading) (pattern.Prediction, error) {
	return pattern.Classify(ctx, s.Classifier, reading)
}
