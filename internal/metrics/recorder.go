package metrics

import "time"

// ResultLabel enumerates builder construction outcomes for counters.
type ResultLabel string

const (
	ResultSuccess ResultLabel = "success"
	ResultFailed  ResultLabel = "failed"
)

// Recorder defines observability hooks for an assembly run.
type Recorder interface {
	ObserveBuild(kind string, d time.Duration)
	IncBuilder(kind string, result ResultLabel)
	SetVolumes(n int)
	SetPlacements(n int)
	SetOverlaps(n int)
}

// NoopRecorder is a Recorder that does nothing (default when metrics are not
// configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveBuild(string, time.Duration) {}
func (NoopRecorder) IncBuilder(string, ResultLabel)     {}
func (NoopRecorder) SetVolumes(int)                     {}
func (NoopRecorder) SetPlacements(int)                  {}
func (NoopRecorder) SetOverlaps(int)                    {}
