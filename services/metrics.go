// File: services/metrics.go
package services

import (
	"sync"
	"time"

	"gig-web/logger"
	"gig-web/models"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/cloudwatch"
	"github.com/aws/aws-sdk-go/service/cloudwatch/cloudwatchiface"
)

// Metrics receives API and submission outcomes.
type Metrics interface {
	RecordAPICall(op string, elapsed time.Duration, err error)
	RecordSubmission(mode models.FormMode, success bool)
}

// NoopMetrics discards everything.
type NoopMetrics struct{}

func (NoopMetrics) RecordAPICall(string, time.Duration, error) {}
func (NoopMetrics) RecordSubmission(models.FormMode, bool) {}

// CloudWatch batching limits.
const (
	cloudWatchQueueSize  = 256
	cloudWatchBatchSize  = 20
	cloudWatchFlushEvery = 5 * time.Second
)

// CloudWatchMetrics queues datums and publishes them in batches from a
// background goroutine, so request handlers never wait on CloudWatch.
// Call Close on shutdown to flush what is queued.
type CloudWatchMetrics struct {
	client    cloudwatchiface.CloudWatchAPI
	namespace string

	mu     sync.RWMutex
	closed bool
	queue  chan *cloudwatch.MetricDatum
	done   chan struct{}
}

// NewCloudWatchMetrics builds a publisher from the default AWS session chain.
func NewCloudWatchMetrics(namespace string) (*CloudWatchMetrics, error) {
	sess, err := session.NewSession()
	if err != nil {
		return nil, err
	}
	return NewCloudWatchMetricsWithClient(cloudwatch.New(sess), namespace), nil
}

// NewCloudWatchMetricsWithClient uses an existing CloudWatch client.
func NewCloudWatchMetricsWithClient(client cloudwatchiface.CloudWatchAPI, namespace string) *CloudWatchMetrics {
	return newCloudWatchMetrics(client, namespace, cloudWatchFlushEvery)
}

func newCloudWatchMetrics(client cloudwatchiface.CloudWatchAPI, namespace string, flushEvery time.Duration) *CloudWatchMetrics {
	m := &CloudWatchMetrics{
		client:    client,
		namespace: namespace,
		queue:     make(chan *cloudwatch.MetricDatum, cloudWatchQueueSize),
		done:      make(chan struct{}),
	}
	go m.run(flushEvery)
	return m
}

// RecordAPICall publishes latency and, on failure, an error count for op.
func (m *CloudWatchMetrics) RecordAPICall(op string, elapsed time.Duration, err error) {
	dims := []*cloudwatch.Dimension{{Name: aws.String("Operation"), Value: aws.String(op)}}
	m.enqueue("APILatencyMs", float64(elapsed.Milliseconds()), cloudwatch.StandardUnitMilliseconds, dims)
	if err != nil {
		m.enqueue("APIErrors", 1, cloudwatch.StandardUnitCount, dims)
	}
}

// RecordSubmission counts form submissions by mode and outcome.
func (m *CloudWatchMetrics) RecordSubmission(mode models.FormMode, success bool) {
	outcome := "failure"
	if success {
		outcome = "success"
	}
	m.enqueue("GigSubmissions", 1, cloudwatch.StandardUnitCount, []*cloudwatch.Dimension{
		{Name: aws.String("Mode"), Value: aws.String(string(mode))},
		{Name: aws.String("Outcome"), Value: aws.String(outcome)},
	})
}

// Close stops accepting datums and waits until the queue is published.
func (m *CloudWatchMetrics) Close() error {
	m.mu.Lock()
	if !m.closed {
		m.closed = true
		close(m.queue)
	}
	m.mu.Unlock()
	<-m.done
	return nil
}

// -----------------------------------------------------------
// internal helpers to package up CloudWatch calls
// -----------------------------------------------------------
func (m *CloudWatchMetrics) enqueue(name string, value float64, unit string, dims []*cloudwatch.Dimension) {
	datum := &cloudwatch.MetricDatum{
		MetricName: aws.String(name),
		Dimensions: dims,
		Timestamp:  aws.Time(time.Now()),
		Value:      aws.Float64(value),
		Unit:       aws.String(unit),
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return
	}
	select {
	case m.queue <- datum:
	default:
		logger.Warn.Printf("[putMetric] CloudWatch queue full, dropping %s", name)
	}
}

func (m *CloudWatchMetrics) run(flushEvery time.Duration) {
	defer close(m.done)

	ticker := time.NewTicker(flushEvery)
	defer ticker.Stop()

	batch := make([]*cloudwatch.MetricDatum, 0, cloudWatchBatchSize)
	for {
		select {
		case datum, ok := <-m.queue:
			if !ok {
				m.putMetrics(batch)
				return
			}
			batch = append(batch, datum)
			if len(batch) == cloudWatchBatchSize {
				m.putMetrics(batch)
				batch = make([]*cloudwatch.MetricDatum, 0, cloudWatchBatchSize)
			}
		case <-ticker.C:
			if len(batch) > 0 {
				m.putMetrics(batch)
				batch = make([]*cloudwatch.MetricDatum, 0, cloudWatchBatchSize)
			}
		}
	}
}

func (m *CloudWatchMetrics) putMetrics(batch []*cloudwatch.MetricDatum) {
	if len(batch) == 0 {
		return
	}
	_, err := m.client.PutMetricData(&cloudwatch.PutMetricDataInput{
		Namespace:  aws.String(m.namespace),
		MetricData: batch,
	})
	if err != nil {
		logger.Error.Printf("[putMetric] CloudWatch publish of %d datums failed: %v", len(batch), err)
	}
}
