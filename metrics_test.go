package bacnet

import (
	"testing"
	"time"
)

func TestCounterAndGauge(t *testing.T) {
	var c Counter
	c.Inc()
	c.Add(4)
	if c.Value() != 5 {
		t.Errorf("Counter = %d, want 5", c.Value())
	}
	c.Reset()
	if c.Value() != 0 {
		t.Errorf("Counter after Reset = %d", c.Value())
	}

	var g Gauge
	g.Set(10)
	g.Inc()
	g.Dec()
	if g.Value() != 10 {
		t.Errorf("Gauge = %d, want 10", g.Value())
	}
}

func TestLatencyHistogram(t *testing.T) {
	var h LatencyHistogram
	h.Record(2 * time.Millisecond)
	h.Record(8 * time.Millisecond)
	h.Record(20 * time.Millisecond)

	stats := h.Stats()
	if stats.Count != 3 {
		t.Fatalf("Count = %d, want 3", stats.Count)
	}
	if stats.Min != 2*time.Millisecond {
		t.Errorf("Min = %v", stats.Min)
	}
	if stats.Max != 20*time.Millisecond {
		t.Errorf("Max = %v", stats.Max)
	}
	if stats.Avg != 10*time.Millisecond {
		t.Errorf("Avg = %v", stats.Avg)
	}
}

func TestMetricsSnapshot(t *testing.T) {
	m := NewMetrics()
	m.RequestsSent.Add(3)
	m.RequestsSucceeded.Add(2)
	m.TimeSyncsSent.Inc()

	snap := m.Snapshot()
	if snap.RequestsSent != 3 || snap.RequestsSucceeded != 2 {
		t.Errorf("snapshot = %+v", snap)
	}
	if snap.TimeSyncsSent != 1 {
		t.Errorf("TimeSyncsSent = %d, want 1", snap.TimeSyncsSent)
	}
	if snap.Uptime < 0 {
		t.Errorf("Uptime = %v", snap.Uptime)
	}
}
