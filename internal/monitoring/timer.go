package monitoring

import "time"

// Timer measures stage duration
type Timer struct {
	start   time.Time
	metrics *Metrics
	stage   string
}

// NewTimer creates a new timer
func NewTimer(metrics *Metrics, stage string) *Timer {
	return &Timer{
		start:   time.Now(),
		metrics: metrics,
		stage:   stage,
	}
}

// Stop stops the timer and records the duration
func (t *Timer) Stop(status string) time.Duration {
	duration := time.Since(t.start)
	t.metrics.RecordStage(t.stage, status, duration)
	return duration
}

// StopWith records StatusError if err is non-nil, StatusSuccess otherwise
func (t *Timer) StopWith(err error) time.Duration {
	if err != nil {
		return t.Stop(StatusError)
	}
	return t.Stop(StatusSuccess)
}
