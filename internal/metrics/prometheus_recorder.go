package metrics

import (
	"fmt"
	"sync"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "cryogeo"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	once          sync.Once
	reg           *prom.Registry
	buildDuration *prom.HistogramVec
	builders      *prom.CounterVec
	volumes       prom.Gauge
	placements    prom.Gauge
	overlaps      prom.Gauge
}

// NewPrometheusRecorder constructs and registers the metrics on reg, or on a
// fresh registry when reg is nil.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{reg: reg}
	pr.once.Do(func() {
		pr.buildDuration = prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "builder_duration_seconds",
			Help:      "Time spent in a builder's Build call",
			Buckets:   prom.ExponentialBuckets(1e-5, 4, 10),
		}, []string{"kind"})
		pr.builders = prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "builders_total",
			Help:      "Constructed builders by kind and outcome",
		}, []string{"kind", "result"})
		pr.volumes = prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "volumes",
			Help:      "Volumes registered in the last assembly",
		})
		pr.placements = prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "placements",
			Help:      "Placements in the last assembled tree",
		})
		pr.overlaps = prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "overlaps",
			Help:      "Overlaps and extrusions found by the last verification",
		})
		reg.MustRegister(pr.buildDuration, pr.builders, pr.volumes, pr.placements, pr.overlaps)
	})
	return pr
}

// Registry returns the registry the metrics live on.
func (p *PrometheusRecorder) Registry() *prom.Registry {
	if p == nil {
		return nil
	}
	return p.reg
}

func (p *PrometheusRecorder) ObserveBuild(kind string, d time.Duration) {
	if p == nil || p.buildDuration == nil {
		return
	}
	p.buildDuration.WithLabelValues(kind).Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncBuilder(kind string, result ResultLabel) {
	if p == nil || p.builders == nil {
		return
	}
	p.builders.WithLabelValues(kind, string(result)).Inc()
}

func (p *PrometheusRecorder) SetVolumes(n int) {
	if p == nil || p.volumes == nil {
		return
	}
	p.volumes.Set(float64(n))
}

func (p *PrometheusRecorder) SetPlacements(n int) {
	if p == nil || p.placements == nil {
		return
	}
	p.placements.Set(float64(n))
}

func (p *PrometheusRecorder) SetOverlaps(n int) {
	if p == nil || p.overlaps == nil {
		return
	}
	p.overlaps.Set(float64(n))
}

// WriteTextfile dumps every metric in the text exposition format, atomically
// replacing path.
func (p *PrometheusRecorder) WriteTextfile(path string) error {
	if p == nil || p.reg == nil {
		return nil
	}
	if err := prom.WriteToTextfile(path, p.reg); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", path, err)
	}
	return nil
}
