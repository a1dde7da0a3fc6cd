package pattern

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"math/rand"
	"sort"

	"github.com/hydrosim/hydrosim-cli/internal/cache"
	"github.com/hydrosim/hydrosim-cli/internal/dataset"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

var ErrNotEnoughSamples = errors.New("pattern dataset needs at least two samples")

type TrainConfig struct {
	TestRatio float64
	Seed      int64
}

func DefaultTrainConfig() TrainConfig {
	return TrainConfig{TestRatio: 0.2, Seed: 42}
}

// CentroidModel classifies a reading by the nearest class centroid in
// standardized feature space.
type CentroidModel struct {
	Features  []string    `json:"features"`
	Mean      []float64   `json:"mean"`
	Std       []float64   `json:"std"`
	Classes   []int       `json:"classes"`
	Centroids [][]float64 `json:"centroids"`
	Accuracy  float64     `json:"accuracy"`
	TrainSize int         `json:"train_size"`
	TestSize  int         `json:"test_size"`
}

// Train shuffles with cfg.Seed, holds out ceil(n*TestRatio) samples and fits
// the centroids on the rest. Accuracy is measured on the held-out samples.
func Train(samples []Sample, cfg TrainConfig) (*CentroidModel, error) {
	if len(samples) < 2 {
		return nil, ErrNotEnoughSamples
	}

	train, test := split(samples, cfg)

	model := &CentroidModel{
		Features:  append([]string(nil), Features...),
		Mean:      make([]float64, len(Features)),
		Std:       make([]float64, len(Features)),
		TrainSize: len(train),
		TestSize:  len(test),
	}

	column := make([]float64, len(train))
	for f := range Features {
		for i, s := range train {
			column[i] = s.Reading().Values()[f]
		}
		mean, std := stat.MeanStdDev(column, nil)
		if std == 0 || math.IsNaN(std) {
			std = 1
		}
		model.Mean[f] = mean
		model.Std[f] = std
	}

	sums := make(map[int][]float64)
	counts := make(map[int]float64)
	for _, s := range train {
		v := model.standardize(s.Reading())
		if _, ok := sums[s.Pattern]; !ok {
			sums[s.Pattern] = make([]float64, len(v))
		}
		floats.Add(sums[s.Pattern], v)
		counts[s.Pattern]++
	}

	for class := range sums {
		model.Classes = append(model.Classes, class)
	}
	sort.Ints(model.Classes)
	for _, class := range model.Classes {
		centroid := sums[class]
		floats.Scale(1/counts[class], centroid)
		model.Centroids = append(model.Centroids, centroid)
	}

	correct := 0
	for _, s := range test {
		if model.nearest(s.Reading()) == s.Pattern {
			correct++
		}
	}
	model.Accuracy = float64(correct) / float64(len(test))

	log.Printf("Pattern model trained on %d samples, accuracy %.2f on %d held-out samples", len(train), model.Accuracy, len(test))
	return model, nil
}

func split(samples []Sample, cfg TrainConfig) ([]Sample, []Sample) {
	testSize := int(math.Ceil(float64(len(samples))*cfg.TestRatio - 1e-9))
	testSize = max(1, min(testSize, len(samples)-1))

	rng := rand.New(rand.NewSource(cfg.Seed))
	perm := rng.Perm(len(samples))

	test := make([]Sample, 0, testSize)
	train := make([]Sample, 0, len(samples)-testSize)
	for i, idx := range perm {
		if i < testSize {
			test = append(test, samples[idx])
		} else {
			train = append(train, samples[idx])
		}
	}
	return train, test
}

func (m *CentroidModel) standardize(r Reading) []float64 {
	v := r.Values()
	for i := range v {
		v[i] = (v[i] - m.Mean[i]) / m.Std[i]
	}
	return v
}

// nearest returns the closest class; ties go to the lowest class value.
func (m *CentroidModel) nearest(r Reading) int {
	v := m.standardize(r)
	best, bestDist := 0, math.Inf(1)
	for i, c := range m.Centroids {
		d := floats.Distance(v, c, 2)
		if d < bestDist {
			best, bestDist = i, d
		}
	}
	return m.Classes[best]
}

func (m *CentroidModel) Predict(ctx context.Context, reading Reading) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if len(m.Centroids) == 0 {
		return 0, errors.New("pattern model has no centroids")
	}
	return m.nearest(reading), nil
}

// usable reports whether a cached model still matches the current feature set.
func (m *CentroidModel) usable() bool {
	if m == nil || len(m.Centroids) == 0 || len(m.Centroids) != len(m.Classes) {
		return false
	}
	n := len(Features)
	if len(m.Features) != n || len(m.Mean) != n || len(m.Std) != n {
		return false
	}
	for i, f := range Features {
		if m.Features[i] != f {
			return false
		}
	}
	for _, c := range m.Centroids {
		if len(c) != n {
			return false
		}
	}
	return true
}

// LoadOrTrain returns the cached model for url, training and caching a new
// one when none is stored.
func LoadOrTrain(ctx context.Context, fetcher *dataset.Fetcher, url string, store cache.CacheService[*CentroidModel], cfg TrainConfig) (*CentroidModel, error) {
	key := store.GenerateKey(url, cfg.TestRatio, cfg.Seed)
	if model, ok := store.Get(key); ok {
		if model.usable() {
			log.Printf("Loaded cached pattern model (accuracy %.2f)", model.Accuracy)
			return model, nil
		}
		log.Printf("Discarding unusable cached pattern model")
		if err := store.Delete(key); err != nil {
			log.Printf("Warning: %v", err)
		}
	}

	samples, err := FetchDataset(ctx, fetcher, url)
	if err != nil {
		return nil, err
	}
	model, err := Train(samples, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to train pattern model: %w", err)
	}
	if err := store.Set(key, model); err != nil {
		log.Printf("Warning: failed to cache pattern model: %v", err)
	}
	return model, nil
}
