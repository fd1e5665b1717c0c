// Package stats keeps rolling-window aggregates of parse runs.
package stats

import (
	"sort"
	"sync"
	"time"
)

// Sample describes one completed parse.
type Sample struct {
	DurationMs int64
	Bytes      int
	Topics     int
	Replies    int
}

type entry struct {
	timestamp time.Time
	Sample
}

// Snapshot is a point-in-time aggregate of the samples in the window.
type Snapshot struct {
	Count        int     `json:"count"`
	MinMs        int64   `json:"min_ms"`
	MaxMs        int64   `json:"max_ms"`
	AvgMs        float64 `json:"avg_ms"`
	P50Ms        float64 `json:"p50_ms"`
	P95Ms        float64 `json:"p95_ms"`
	P99Ms        float64 `json:"p99_ms"`
	TotalBytes   int64   `json:"total_bytes"`
	TotalTopics  int64   `json:"total_topics"`
	TotalReplies int64   `json:"total_replies"`
	WindowSecs   float64 `json:"window_secs"`
}

// Window tracks parse samples recorded within maxAge.
type Window struct {
	mu      sync.Mutex
	entries []entry
	maxAge  time.Duration
	now     func() time.Time
}

func NewWindow(maxAge time.Duration) *Window {
	if maxAge <= 0 {
		maxAge = time.Hour
	}
	return &Window{
		entries: make([]entry, 0, 256),
		maxAge:  maxAge,
		now:     time.Now,
	}
}

func (w *Window) Record(s Sample) {
	if s.DurationMs < 0 {
		s.DurationMs = 0
	}
	now := w.now()

	w.mu.Lock()
	defer w.mu.Unlock()

	w.pruneLocked(now)
	w.entries = append(w.entries, entry{timestamp: now, Sample: s})
}

func (w *Window) Snapshot() Snapshot {
	now := w.now()

	w.mu.Lock()
	defer w.mu.Unlock()

	w.pruneLocked(now)
	snap := Snapshot{WindowSecs: w.maxAge.Seconds()}
	if len(w.entries) == 0 {
		return snap
	}

	values := make([]int64, 0, len(w.entries))
	var sum int64
	for _, e := range w.entries {
		values = append(values, e.DurationMs)
		sum += e.DurationMs
		snap.TotalBytes += int64(e.Bytes)
		snap.TotalTopics += int64(e.Topics)
		snap.TotalReplies += int64(e.Replies)
	}
	sort.Slice(values, func(i, j int) bool { return values[i] < values[j] })

	snap.Count = len(values)
	snap.MinMs = values[0]
	snap.MaxMs = values[len(values)-1]
	snap.AvgMs = float64(sum) / float64(len(values))
	snap.P50Ms = percentile(values, 50)
	snap.P95Ms = percentile(values, 95)
	snap.P99Ms = percentile(values, 99)
	return snap
}

func (w *Window) pruneLocked(now time.Time) {
	cutoff := now.Add(-w.maxAge)
	writeIdx := 0
	for _, e := range w.entries {
		if !e.timestamp.Before(cutoff) {
			w.entries[writeIdx] = e
			writeIdx++
		}
	}
	w.entries = w.entries[:writeIdx]
}

// percentile interpolates linearly between the two closest ranks.
func percentile(sortedValues []int64, pct float64) float64 {
	if len(sortedValues) == 0 {
		return 0
	}
	if pct <= 0 {
		return float64(sortedValues[0])
	}
	if pct >= 100 {
		return float64(sortedValues[len(sortedValues)-1])
	}

	index := (float64(len(sortedValues)-1) * pct) / 100.0
	lower := int(index)
	upper := lower + 1
	if upper >= len(sortedValues) {
		return float64(sortedValues[lower])
	}
	weight := index - float64(lower)
	lo := float64(sortedValues[lower])
	hi := float64(sortedValues[upper])
	return lo + ((hi - lo) * weight)
}
