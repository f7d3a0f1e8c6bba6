// Package telemetry aggregates per-frame readings from a headless run into
// fixed-size windows, writes them as CSV and summarizes them.
package telemetry

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Sample is one frame's readings. Metric is the game's primary measurement:
// mean bubble depth for the bubble scene, ball speed for the brick breaker.
type Sample struct {
	Frame  uint64
	Metric float64
	Score  int
	Lives  int
	Level  int
	Active int    // Bricks standing, or particles in the pool
	Events uint64 // Cumulative count: recycles or bricks destroyed
}

// WindowStats holds aggregated statistics for a window of frames.
type WindowStats struct {
	Game      string `csv:"game"`
	WindowEnd uint64 `csv:"window_end"`
	Frames    int    `csv:"frames"`

	MetricMean float64 `csv:"metric_mean"`
	MetricStd  float64 `csv:"metric_std"`
	MetricP10  float64 `csv:"metric_p10"`
	MetricP50  float64 `csv:"metric_p50"`
	MetricP90  float64 `csv:"metric_p90"`

	// Values at window end
	Score  int `csv:"score"`
	Lives  int `csv:"lives"`
	Level  int `csv:"level"`
	Active int `csv:"active"`

	// Events during the window
	Events uint64 `csv:"events"`
}

// Collector groups samples into windows of a fixed number of frames.
type Collector struct {
	game   string
	window int
	buf    []Sample
	events uint64 // Cumulative events at the end of the previous window
}

// NewCollector creates a collector. A window below 1 is treated as 1.
func NewCollector(game string, window int) *Collector {
	if window < 1 {
		window = 1
	}
	return &Collector{
		game:   game,
		window: window,
		buf:    make([]Sample, 0, window),
	}
}

// Record adds a sample. When it completes a window, the window's stats are
// returned with true.
func (c *Collector) Record(s Sample) (WindowStats, bool) {
	c.buf = append(c.buf, s)
	if len(c.buf) < c.window {
		return WindowStats{}, false
	}
	return c.Flush()
}

// Flush closes the current partial window. Returns false if it is empty.
func (c *Collector) Flush() (WindowStats, bool) {
	if len(c.buf) == 0 {
		return WindowStats{}, false
	}

	values := make([]float64, len(c.buf))
	for i, s := range c.buf {
		values[i] = s.Metric
	}
	sum := Summarize(values)

	last := c.buf[len(c.buf)-1]
	ws := WindowStats{
		Game:       c.game,
		WindowEnd:  last.Frame,
		Frames:     len(c.buf),
		MetricMean: sum.Mean,
		MetricStd:  sum.StdDev,
		MetricP10:  sum.P10,
		MetricP50:  sum.P50,
		MetricP90:  sum.P90,
		Score:      last.Score,
		Lives:      last.Lives,
		Level:      last.Level,
		Active:     last.Active,
	}
	if last.Events >= c.events {
		ws.Events = last.Events - c.events
	}
	c.events = last.Events
	c.buf = c.buf[:0]
	return ws, true
}

// Summary describes a distribution of values.
type Summary struct {
	N        int
	Mean     float64
	StdDev   float64
	Min, Max float64
	P10      float64
	P50      float64
	P90      float64
}

// Summarize computes the mean, sample standard deviation and empirical
// quantiles of values. An empty input gives a zero Summary.
func Summarize(values []float64) Summary {
	n := len(values)
	if n == 0 {
		return Summary{}
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	s := Summary{
		N:    n,
		Min:  sorted[0],
		Max:  sorted[n-1],
		P10:  stat.Quantile(0.10, stat.Empirical, sorted, nil),
		P50:  stat.Quantile(0.50, stat.Empirical, sorted, nil),
		P90:  stat.Quantile(0.90, stat.Empirical, sorted, nil),
		Mean: stat.Mean(sorted, nil),
	}
	if n > 1 {
		s.StdDev = stat.StdDev(sorted, nil)
	}
	return s
}
