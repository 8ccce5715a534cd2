// Package performance provides lightweight operation timing for the content
// service handlers.
package performance

import (
	"sync"
	"time"
)

// Marker represents a single performance measurement for an operation
type Marker struct {
	Operation string        `json:"operation"`       // e.g. "post_content_request"
	StartTime time.Time     `json:"startTime"`       // When the operation started
	EndTime   time.Time     `json:"endTime"`         // When the operation completed
	Duration  time.Duration `json:"duration"`        // Total operation duration
	Success   bool          `json:"success"`         // Whether the operation completed successfully
	Error     string        `json:"error,omitempty"` // Error message if operation failed
	Completed bool          `json:"completed"`       // Whether Complete() has been called
}

// Complete marks the operation as finished and calculates final metrics
func (m *Marker) Complete() {
	if m.Completed {
		return // Prevent double completion
	}
	m.EndTime = time.Now()
	m.Duration = m.EndTime.Sub(m.StartTime)
	m.Completed = true
}

// SetSuccess marks the operation as successful or failed
func (m *Marker) SetSuccess(success bool) {
	m.Success = success
}

// SetError sets an error message and marks the operation as failed
func (m *Marker) SetError(err error) {
	if err != nil {
		m.Error = err.Error()
		m.Success = false
	}
}

// Tracker manages performance markers and aggregates per-operation stats
type Tracker struct {
	markers    []*Marker
	maxMarkers int
	mu         sync.Mutex
	started    time.Time
}

// NewTracker creates a new performance tracker
func NewTracker() *Tracker {
	return &Tracker{
		markers:    make([]*Marker, 0),
		maxMarkers: 1000,
		started:    time.Now(),
	}
}

// StartOperation creates and registers a marker for an operation
func (t *Tracker) StartOperation(operation string) *Marker {
	marker := &Marker{
		Operation: operation,
		StartTime: time.Now(),
	}

	t.mu.Lock()
	t.markers = append(t.markers, marker)
	if len(t.markers) > t.maxMarkers {
		t.markers = t.markers[len(t.markers)-t.maxMarkers:]
	}
	t.mu.Unlock()

	return marker
}

// OperationStats summarizes completed markers for one operation name
type OperationStats struct {
	Operation    string        `json:"operation"`
	Count        int           `json:"count"`
	Failures     int           `json:"failures"`
	TotalTime    time.Duration `json:"totalTime"`
	AverageTime  time.Duration `json:"averageTime"`
	SlowestTime  time.Duration `json:"slowestTime"`
	LastDuration time.Duration `json:"lastDuration"`
}

// Stats returns aggregated stats for every operation seen so far
func (t *Tracker) Stats() map[string]*OperationStats {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make(map[string]*OperationStats)
	for _, m := range t.markers {
		if !m.Completed {
			continue
		}
		s, ok := out[m.Operation]
		if !ok {
			s = &OperationStats{Operation: m.Operation}
			out[m.Operation] = s
		}
		s.Count++
		if !m.Success {
			s.Failures++
		}
		s.TotalTime += m.Duration
		if m.Duration > s.SlowestTime {
			s.SlowestTime = m.Duration
		}
		s.LastDuration = m.Duration
	}
	for _, s := range out {
		if s.Count > 0 {
			s.AverageTime = s.TotalTime / time.Duration(s.Count)
		}
	}
	return out
}

// Uptime returns how long the tracker has been running
func (t *Tracker) Uptime() time.Duration {
	return time.Since(t.started)
}
