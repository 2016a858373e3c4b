package aws

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	cwtypes "github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
)

// Metrics wraps a CloudWatch client and a namespace. All counters are
// best-effort; callers log failures and move on.
type Metrics struct {
	CloudWatch CloudWatchAPI
	Namespace  string
}

// NewMetrics returns a Metrics emitter bound to a namespace.
func NewMetrics(cwClient CloudWatchAPI, namespace string) *Metrics {
	return &Metrics{
		CloudWatch: cwClient,
		Namespace:  namespace,
	}
}

// Count emits a single count metric with optional dimensions.
func (m *Metrics) Count(ctx context.Context, name string, value float64, dimensions map[string]string) error {
	datum := cwtypes.MetricDatum{
		MetricName: awsString(name),
		Value:      &value,
		Unit:       cwtypes.StandardUnitCount,
		Timestamp:  awsTime(time.Now().UTC()),
	}
	for k, v := range dimensions {
		datum.Dimensions = append(datum.Dimensions, cwtypes.Dimension{
			Name:  awsString(k),
			Value: awsString(v),
		})
	}

	_, err := m.CloudWatch.PutMetricData(ctx, &cloudwatch.PutMetricDataInput{
		Namespace:  &m.Namespace,
		MetricData: []cwtypes.MetricDatum{datum},
	})
	if err != nil {
		return fmt.Errorf("put metric data: %w", err)
	}
	return nil
}

// OrderPlaced records one placed order, tagged by how it was extracted.
func (m *Metrics) OrderPlaced(ctx context.Context, aiProcessed bool) error {
	source := "heuristic"
	if aiProcessed {
		source = "ai"
	}
	return m.Count(ctx, "OrdersPlaced", 1, map[string]string{"Source": source})
}

// QueryDispatched records one natural-language query routed to a function.
func (m *Metrics) QueryDispatched(ctx context.Context, function string) error {
	return m.Count(ctx, "QueriesDispatched", 1, map[string]string{"Function": function})
}

// OrderAcknowledged records one order event consumed by the worker.
func (m *Metrics) OrderAcknowledged(ctx context.Context, outcome string) error {
	return m.Count(ctx, "OrdersAcknowledged", 1, map[string]string{"Outcome": outcome})
}

func awsTime(t time.Time) *time.Time { return &t }
