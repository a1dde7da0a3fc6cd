package pattern

import (
	"context"
	"fmt"
)

// Pattern is the growth pattern class a classifier predicts.
type Pattern int

const (
	Normal Pattern = 1
	Ideal  Pattern = 2
	Over   Pattern = 3
)

func (p Pattern) Label() string {
	switch p {
	case Normal:
		return "Pattern 1: Normal"
	case Ideal:
		return "Pattern 2: Ideal"
	case Over:
		return "Pattern 3: Over"
	default:
		return "Unknown Pattern"
	}
}

// Image is the illustration file name for the pattern, empty when unknown.
func (p Pattern) Image() string {
	switch p {
	case Normal:
		return "normal.png"
	case Ideal:
		return "optimal.png"
	case Over:
		return "over.png"
	default:
		return ""
	}
}

// Reading is one set of environmental measurements.
type Reading struct {
	Temperature float64 `json:"temperature"`
	Humidity    float64 `json:"humidity"`
	Light       float64 `json:"light"`
	PH          float64 `json:"pH"`
	EC          float64 `json:"EC"`
	TDS         float64 `json:"TDS"`
	WaterTemp   float64 `json:"WaterTemp"`
}

// Features lists the reading columns in the order classifiers consume them.
var Features = []string{"temperature", "humidity", "light", "pH", "EC", "TDS", "WaterTemp"}

func (r Reading) Values() []float64 {
	return []float64{r.Temperature, r.Humidity, r.Light, r.PH, r.EC, r.TDS, r.WaterTemp}
}

// DefaultReading holds the values the input form starts with.
func DefaultReading() Reading {
	return Reading{
		Temperature: 25.9,
		Humidity:    84,
		Light:       10870,
		PH:          6.6,
		EC:          983,
		TDS:         493,
		WaterTemp:   26.3,
	}
}

// Classifier is a pretrained pattern model returning the raw class value.
type Classifier interface {
	Predict(ctx context.Context, reading Reading) (int, error)
}

type Prediction struct {
	Pattern Pattern `json:"pattern"`
	Label   string  `json:"label"`
	Image   string  `json:"image,omitempty"`
}

// Classify runs the classifier once. Class values outside the known patterns
// map to "Unknown Pattern" rather than an error.
func Classify(ctx context.Context, classifier Classifier, reading Reading) (Prediction, error) {
	value, err := classifier.Predict(ctx, reading)
	if err != nil {
		return Prediction{}, fmt.Errorf("pattern classifier failed: %w", err)
	}
	p := Pattern(value)
	return Prediction{Pattern: p, Label: p.Label(), Image: p.Image()}, nil
}
