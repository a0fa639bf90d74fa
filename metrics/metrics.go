// Package metrics aggregates per-run counters and optionally delivers
// them to a Prometheus Pushgateway.
package metrics

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"

	"github.com/rnatools/rfamtype/classify"
)

// Summary aggregates the counters of one classification run.
type Summary struct {
	// RunID tags the run in logs and in the metrics grouping.
	RunID string

	// Started is when the run began.
	Started time.Time

	// Duration is the wall-clock runtime, set by Finish.
	Duration time.Duration

	// Families is the number of families that produced a result row.
	Families int

	// Labelled counts results carrying at least one label.
	Labelled int

	// Unlabelled counts fallback results.
	Unlabelled int

	// Faults counts families skipped for data-integrity problems.
	Faults int

	// ByMethod breaks results down by the cascade method that won.
	ByMethod map[classify.Method]int
}

// NewSummary starts a summary for one run.
func NewSummary(runID string) *Summary {
	return &Summary{
		RunID:    runID,
		Started:  time.Now(),
		ByMethod: make(map[classify.Method]int),
	}
}

// Observe records one classification result.
func (s *Summary) Observe(res classify.Result) {
	s.Families++
	s.ByMethod[res.Method]++
	if len(res.Types) > 0 {
		s.Labelled++
	} else {
		s.Unlabelled++
	}
}

// ObserveFault records one skipped family.
func (s *Summary) ObserveFault() {
	s.Faults++
}

// Finish stamps the run duration.
func (s *Summary) Finish() {
	s.Duration = time.Since(s.Started)
}

// Log writes the run summary at info level, with a per-method
// breakdown in priority order.
func (s *Summary) Log(logger *slog.Logger) {
	methods := make([]any, 0, len(classify.Methods()))
	for _, m := range classify.Methods() {
		methods = append(methods, slog.Int(string(m), s.ByMethod[m]))
	}

	logger.Info("classification run complete",
		slog.String("run_id", s.RunID),
		slog.Int("families", s.Families),
		slog.Int("labelled", s.Labelled),
		slog.Int("unlabelled", s.Unlabelled),
		slog.Int("faults", s.Faults),
		slog.Duration("duration", s.Duration),
		slog.Group("methods", methods...))
}

// Pusher delivers run summaries to a Prometheus Pushgateway. Pushing is
// best effort: the caller treats failures as warnings, never as run
// failures.
type Pusher struct {
	gateway string
	job     string
}

// NewPusher creates a Pusher for the gateway base URL under the given
// job name.
func NewPusher(gateway, job string) (*Pusher, error) {
	if gateway == "" {
		return nil, fmt.Errorf("gateway URL is required")
	}
	if job == "" {
		return nil, fmt.Errorf("job name is required")
	}
	return &Pusher{gateway: gateway, job: job}, nil
}

// Push converts the summary into counters and gauges and pushes them
// grouped by run id, replacing any previous push for the same group.
func (p *Pusher) Push(s *Summary) error {
	reg := prometheus.NewRegistry()

	families := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "rfamtype_families_classified_total",
		Help: "Families classified in the run, by cascade method.",
	}, []string{"method"})
	faults := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "rfamtype_faults_total",
		Help: "Families skipped because of data-integrity faults.",
	})
	labelled := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "rfamtype_families_labelled_total",
		Help: "Families that received at least one label.",
	})
	duration := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "rfamtype_run_duration_seconds",
		Help: "Wall-clock duration of the run.",
	})
	reg.MustRegister(families, faults, labelled, duration)

	for method, n := range s.ByMethod {
		families.WithLabelValues(string(method)).Add(float64(n))
	}
	faults.Add(float64(s.Faults))
	labelled.Add(float64(s.Labelled))
	duration.Set(s.Duration.Seconds())

	err := push.New(p.gateway, p.job).
		Gatherer(reg).
		Grouping("run_id", s.RunID).
		Push()
	if err != nil {
		return fmt.Errorf("pushing metrics to %s: %w", p.gateway, err)
	}
	return nil
}
