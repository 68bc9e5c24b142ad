package observability

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/aretw0/blockyard/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the engine's Prometheus collectors.
type Metrics struct {
	gatherer  prometheus.Gatherer
	Mutations *prometheus.CounterVec
	Drags     *prometheus.CounterVec
	Evals     *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them on reg.
func NewMetrics(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		gatherer: reg,
		Mutations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "blockyard_tree_mutations_total",
				Help: "Total number of structural tree mutations",
			},
			[]string{"type", "kind"},
		),
		Drags: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "blockyard_drag_sessions_total",
				Help: "Finished drag sessions by origin and outcome",
			},
			[]string{"origin", "outcome"},
		),
		Evals: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "blockyard_eval_duration_seconds",
				Help: "Duration of block behavior runs",
			},
			[]string{"script", "error"},
		),
	}
	reg.MustRegister(m.Mutations, m.Drags, m.Evals)
	return m
}

// Hooks returns lifecycle hooks that record into the collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	mutation := func(_ context.Context, e *domain.MutationEvent) {
		m.Mutations.WithLabelValues(string(e.Type), string(e.Kind)).Inc()
	}
	finished := func(_ context.Context, e *domain.DragEvent) {
		m.Drags.WithLabelValues(e.OriginKind, e.Outcome).Inc()
	}
	return domain.LifecycleHooks{
		OnInsert:     mutation,
		OnRemove:     mutation,
		OnRelocate:   mutation,
		OnDrop:       finished,
		OnDragCancel: finished,
		OnEvaluate: func(_ context.Context, e *domain.EvalEvent) {
			m.Evals.WithLabelValues(e.ScriptRef, strconv.FormatBool(e.IsError)).Observe(e.Duration.Seconds())
		},
	}
}

// WriteSummary prints every non-zero counter and histogram count, one per
// line, sorted by name.
func (m *Metrics) WriteSummary(w io.Writer) error {
	families, err := m.gatherer.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}
	var lines []string
	for _, mf := range families {
		for _, metric := range mf.GetMetric() {
			var labels []string
			for _, l := range metric.GetLabel() {
				labels = append(labels, l.GetName()+"="+l.GetValue())
			}
			name := mf.GetName() + "{" + strings.Join(labels, ",") + "}"
			switch {
			case metric.GetCounter() != nil:
				lines = append(lines, fmt.Sprintf("%s %g", name, metric.GetCounter().GetValue()))
			case metric.GetHistogram() != nil:
				lines = append(lines, fmt.Sprintf("%s count=%d", name, metric.GetHistogram().GetSampleCount()))
			}
		}
	}
	sort.Strings(lines)
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
