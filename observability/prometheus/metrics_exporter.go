package prometheus

import (
	"errors"
	"fmt"
	"time"

	"github.com/zackorenberg/JAM-tboard/core"
	prom "github.com/prometheus/client_golang/prometheus"
)

// ExporterOptions controls collector configuration.
type ExporterOptions struct {
	DurationBuckets []float64
}

// MetricsExporter adapts core.Metrics to Prometheus collectors.
type MetricsExporter struct {
	taskDurationSeconds *prom.HistogramVec
	taskPanicTotal      *prom.CounterVec
	taskRejectedTotal   *prom.CounterVec
	queueDepth          *prom.GaugeVec
	concurrentTasks     prom.Gauge
	remoteRoundTrip     *prom.HistogramVec
}

var _ core.Metrics = (*MetricsExporter)(nil)

// NewMetricsExporter creates and registers Prometheus collectors for core.Metrics.
func NewMetricsExporter(namespace string, reg prom.Registerer, opts ExporterOptions) (*MetricsExporter, error) {
	if namespace == "" {
		namespace = "tboard"
	}
	if reg == nil {
		reg = prom.DefaultRegisterer
	}
	buckets := opts.DurationBuckets
	if len(buckets) == 0 {
		buckets = prom.DefBuckets
	}

	durationVec := prom.NewHistogramVec(prom.HistogramOpts{
		Namespace: namespace,
		Name:      "task_duration_seconds",
		Help:      "Task resume duration in seconds.",
		Buckets:   buckets,
	}, []string{"class"})
	panicVec := prom.NewCounterVec(prom.CounterOpts{
		Namespace: namespace,
		Name:      "task_panic_total",
		Help:      "Total number of task panics.",
	}, []string{"task"})
	rejectedVec := prom.NewCounterVec(prom.CounterOpts{
		Namespace: namespace,
		Name:      "task_rejected_total",
		Help:      "Total number of rejected tasks.",
	}, []string{"reason"})
	queueDepthVec := prom.NewGaugeVec(prom.GaugeOpts{
		Namespace: namespace,
		Name:      "queue_depth",
		Help:      "Current ready-queue depth.",
	}, []string{"queue"})
	concurrentGauge := prom.NewGauge(prom.GaugeOpts{
		Namespace: namespace,
		Name:      "concurrent_tasks",
		Help:      "Current number of admitted, not-yet-completed tasks.",
	})
	remoteVec := prom.NewHistogramVec(prom.HistogramOpts{
		Namespace: namespace,
		Name:      "remote_round_trip_seconds",
		Help:      "Remote-task round trip duration in seconds.",
		Buckets:   buckets,
	}, []string{"blocking"})

	var err error
	if durationVec, err = registerCollector(reg, durationVec); err != nil {
		return nil, err
	}
	if panicVec, err = registerCollector(reg, panicVec); err != nil {
		return nil, err
	}
	if rejectedVec, err = registerCollector(reg, rejectedVec); err != nil {
		return nil, err
	}
	if queueDepthVec, err = registerCollector(reg, queueDepthVec); err != nil {
		return nil, err
	}
	if concurrentGauge, err = registerCollector(reg, concurrentGauge); err != nil {
		return nil, err
	}
	if remoteVec, err = registerCollector(reg, remoteVec); err != nil {
		return nil, err
	}

	return &MetricsExporter{
		taskDurationSeconds: durationVec,
		taskPanicTotal:      panicVec,
		taskRejectedTotal:   rejectedVec,
		queueDepth:          queueDepthVec,
		concurrentTasks:     concurrentGauge,
		remoteRoundTrip:     remoteVec,
	}, nil
}

// RecordTaskDuration records how long a task's single resume took.
func (m *MetricsExporter) RecordTaskDuration(class core.TaskClass, duration time.Duration) {
	if m == nil {
		return
	}
	m.taskDurationSeconds.WithLabelValues(class.String()).Observe(duration.Seconds())
}

// RecordTaskPanic records that a task panicked during execution.
func (m *MetricsExporter) RecordTaskPanic(taskName string) {
	if m == nil {
		return
	}
	m.taskPanicTotal.WithLabelValues(normalizeLabel(taskName, "unknown")).Inc()
}

// RecordQueueDepth records a ready queue's current depth.
func (m *MetricsExporter) RecordQueueDepth(queueName string, depth int) {
	if m == nil {
		return
	}
	m.queueDepth.WithLabelValues(normalizeLabel(queueName, "unknown")).Set(float64(depth))
}

// RecordTaskRejected records an admission-denied TaskCreate.
func (m *MetricsExporter) RecordTaskRejected(reason string) {
	if m == nil {
		return
	}
	m.taskRejectedTotal.WithLabelValues(normalizeLabel(reason, "unknown")).Inc()
}

// RecordConcurrent records the board's current concurrent-task count.
func (m *MetricsExporter) RecordConcurrent(count int) {
	if m == nil {
		return
	}
	m.concurrentTasks.Set(float64(count))
}

// RecordRemoteRoundTrip records a completed remote-task round trip.
func (m *MetricsExporter) RecordRemoteRoundTrip(blocking bool, duration time.Duration) {
	if m == nil {
		return
	}
	m.remoteRoundTrip.WithLabelValues(boolLabel(blocking)).Observe(duration.Seconds())
}

func normalizeLabel(v string, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

func boolLabel(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

func registerCollector[T prom.Collector](reg prom.Registerer, collector T) (T, error) {
	err := reg.Register(collector)
	if err == nil {
		return collector, nil
	}

	var alreadyRegisteredErr prom.AlreadyRegisteredError
	if errors.As(err, &alreadyRegisteredErr) {
		existing, ok := alreadyRegisteredErr.ExistingCollector.(T)
		if !ok {
			return collector, fmt.Errorf("collector type mismatch for %T", collector)
		}
		return existing, nil
	}

	return collector, err
}
