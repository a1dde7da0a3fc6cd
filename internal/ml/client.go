package ml

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/hydrosim/hydrosim-cli/internal/forecast"
	"github.com/hydrosim/hydrosim-cli/internal/pattern"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	ForecastPredictMethod = "/hydrosim.model.v1.ForecastService/Predict"
	PatternPredictMethod  = "/hydrosim.model.v1.PatternService/Predict"

	defaultTimeout = 2 * time.Minute
)

// Client talks to a model server exchanging structpb payloads, so no
// generated stubs are needed on either side.
type Client struct {
	conn    *grpc.ClientConn
	Timeout time.Duration
}

func NewClient(addr string, opts ...grpc.DialOption) (*Client, error) {
	dialOpts := append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultCallOptions(
			grpc.MaxCallRecvMsgSize(10*1024*1024),
			grpc.MaxCallSendMsgSize(10*1024*1024),
		),
	}, opts...)

	conn, err := grpc.NewClient(addr, dialOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to gRPC server: %w", err)
	}
	return &Client{conn: conn, Timeout: defaultTimeout}, nil
}

func (c *Client) Close() error {
	return c.conn.Close()
}

func (c *Client) invoke(ctx context.Context, method string, req *structpb.Struct) (*structpb.Struct, error) {
	ctx, cancel := context.WithTimeout(ctx, c.Timeout)
	defer cancel()

	resp := &structpb.Struct{}
	if err := c.conn.Invoke(ctx, method, req, resp); err != nil {
		return nil, fmt.Errorf("error calling %s: %w", method, err)
	}
	return resp, nil
}

// Forecaster exposes the remote forecast service as a forecast.Model.
func (c *Client) Forecaster() forecast.Model {
	return remoteForecaster{c}
}

// Classifier exposes the remote pattern service as a pattern.Classifier.
func (c *Client) Classifier() pattern.Classifier {
	return remoteClassifier{c}
}

type remoteForecaster struct {
	client *Client
}

func (r remoteForecaster) Predict(ctx context.Context, frame forecast.FutureFrame) (forecast.Forecast, error) {
	req, err := structpb.NewStruct(map[string]interface{}{
		"rows": convertToFrameRows(frame),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode future frame: %w", err)
	}

	resp, err := r.client.invoke(ctx, ForecastPredictMethod, req)
	if err != nil {
		return nil, err
	}
	return convertToForecast(resp)
}

func convertToFrameRows(frame forecast.FutureFrame) []interface{} {
	rows := make([]interface{}, 0, len(frame))
	for _, row := range frame {
		rows = append(rows, map[string]interface{}{
			"ds":          row.Timestamp.Format(time.RFC3339),
			"hole":        row.Hole,
			"temperature": row.Temperature,
			"humidity":    row.Humidity,
			"light":       row.Light,
			"pH":          row.PH,
			"EC":          row.EC,
			"TDS":         row.TDS,
			"WaterTemp":   row.WaterTemp,
			"cap":         row.Cap,
		})
	}
	return rows
}

func convertToForecast(resp *structpb.Struct) (forecast.Forecast, error) {
	list := resp.GetFields()["forecast"].GetListValue()
	if list == nil {
		return nil, fmt.Errorf("response has no forecast list")
	}

	var fc forecast.Forecast
	for i, v := range list.GetValues() {
		fields := v.GetStructValue().GetFields()
		ds, err := time.Parse(time.RFC3339, fields["ds"].GetStringValue())
		if err != nil {
			return nil, fmt.Errorf("forecast row %d: invalid ds: %w", i, err)
		}
		fc = append(fc, forecast.Point{
			Timestamp: ds,
			Yhat:      fields["yhat"].GetNumberValue(),
			YhatLower: fields["yhat_lower"].GetNumberValue(),
			YhatUpper: fields["yhat_upper"].GetNumberValue(),
		})
	}
	return fc, nil
}

type remoteClassifier struct {
	client *Client
}

func (r remoteClassifier) Predict(ctx context.Context, reading pattern.Reading) (int, error) {
	values := reading.Values()
	fields := make(map[string]interface{}, len(values))
	for i, name := range pattern.Features {
		fields[name] = values[i]
	}
	req, err := structpb.NewStruct(map[string]interface{}{"reading": fields})
	if err != nil {
		return 0, fmt.Errorf("failed to encode reading: %w", err)
	}

	resp, err := r.client.invoke(ctx, PatternPredictMethod, req)
	if err != nil {
		return 0, err
	}
	v, ok := resp.GetFields()["pattern"]
	if !ok {
		return 0, fmt.Errorf("response has no pattern")
	}
	n, ok := v.GetKind().(*structpb.Value_NumberValue)
	if !ok {
		return 0, fmt.Errorf("response pattern is not a number: %v", v.AsInterface())
	}
	if n.NumberValue != math.Trunc(n.NumberValue) || math.IsInf(n.NumberValue, 0) {
		return 0, fmt.Errorf("response pattern is not a whole number: %v", n.NumberValue)
	}
	return int(n.NumberValue), nil
}
