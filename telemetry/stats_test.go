package telemetry

import (
	"math"
	"testing"
	"time"

	"github.com/pthm-cable/rewild/systems"
)

func TestPercentile(t *testing.T) {
	tests := []struct {
		name   string
		sorted []float64
		p      float64
		want   float64
	}{
		{"empty slice", []float64{}, 0.5, 0},
		{"single element", []float64{5.0}, 0.5, 5.0},
		{"p0", []float64{1, 2, 3, 4, 5}, 0.0, 1.0},
		{"p100", []float64{1, 2, 3, 4, 5}, 1.0, 5.0},
		{"p50 odd", []float64{1, 2, 3, 4, 5}, 0.5, 3.0},
		{"p50 even", []float64{1, 2, 3, 4}, 0.5, 2.0},
		{"below range clamps", []float64{1, 2, 3}, -0.5, 1.0},
		{"above range clamps", []float64{1, 2, 3}, 1.5, 3.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Percentile(tt.sorted, tt.p)
			if math.Abs(got-tt.want) > 0.001 {
				t.Errorf("Percentile(%v, %v) = %v, want %v", tt.sorted, tt.p, got, tt.want)
			}
		})
	}
}

func TestComputeEnergyStats(t *testing.T) {
	values := []float64{80, 20, 60, 40, 100}
	mean, std, p10, p50, p90 := ComputeEnergyStats(values)

	if math.Abs(mean-60) > 0.001 {
		t.Errorf("mean = %v, want 60", mean)
	}
	// Sample standard deviation of 20,40,60,80,100
	if math.Abs(std-math.Sqrt(1000)) > 0.001 {
		t.Errorf("std = %v, want %v", std, math.Sqrt(1000))
	}
	if p10 != 20 {
		t.Errorf("p10 = %v, want 20", p10)
	}
	if p50 != 60 {
		t.Errorf("p50 = %v, want 60", p50)
	}
	if p90 != 100 {
		t.Errorf("p90 = %v, want 100", p90)
	}
	if values[0] != 80 {
		t.Error("ComputeEnergyStats reordered its input")
	}
}

func TestComputeEnergyStatsEmpty(t *testing.T) {
	mean, std, p10, p50, p90 := ComputeEnergyStats([]float64{})

	if mean != 0 || std != 0 || p10 != 0 || p50 != 0 || p90 != 0 {
		t.Error("empty slice should return all zeros")
	}
}

func TestComputeEnergyStatsSingle(t *testing.T) {
	mean, std, _, p50, _ := ComputeEnergyStats([]float64{42})
	if mean != 42 || p50 != 42 {
		t.Errorf("mean %v p50 %v, want 42", mean, p50)
	}
	if std != 0 || math.IsNaN(std) {
		t.Errorf("std = %v, want 0 for a single value", std)
	}
}

func TestCollector_FlushAndReset(t *testing.T) {
	c := NewCollector(10, 100*time.Millisecond)

	c.RecordAgents(systems.AgentStats{Removed: 2, Pollinated: 1})
	c.RecordSpawned(3)
	c.RecordScrub(4)
	c.RecordScrub(0)
	c.RecordGridChange()
	c.RecordEvent(systems.EventDrought)
	c.RecordIncome(15)

	if c.ShouldFlush(9) {
		t.Error("should not flush before the window is full")
	}
	if !c.ShouldFlush(10) {
		t.Fatal("should flush once the window is full")
	}

	stats := c.Flush(10, Sample{
		Level:   1,
		Metrics: systems.Metrics{Herbivores: 2, Pollinators: 1, Toxic: 7, PollutionPercent: 12},
		Biomass: 40,
	})

	if stats.Starved != 2 || stats.Pollinated != 1 || stats.Spawned != 3 {
		t.Errorf("agent counters wrong: %+v", stats)
	}
	if stats.ScrubCalls != 2 || stats.TilesCleared != 4 {
		t.Errorf("scrub counters: calls %d cleared %d", stats.ScrubCalls, stats.TilesCleared)
	}
	if stats.Droughts != 1 || stats.Spills != 0 || stats.GridChanges != 1 {
		t.Errorf("event counters wrong: %+v", stats)
	}
	if stats.BiomassEarned != 15 || stats.Biomass != 40 {
		t.Errorf("economy wrong: earned %d biomass %d", stats.BiomassEarned, stats.Biomass)
	}
	if stats.Agents() != 3 || stats.PollutionPercent != 12 {
		t.Errorf("snapshot fields wrong: %+v", stats)
	}
	if math.Abs(stats.SimTimeSec-1.0) > 1e-9 {
		t.Errorf("SimTimeSec = %v, want 1.0", stats.SimTimeSec)
	}

	// Counters restart with the next window
	if c.ShouldFlush(15) {
		t.Error("window should restart at tick 10")
	}
	next := c.Flush(20, Sample{})
	if next.WindowStartTick != 10 || next.Starved != 0 || next.ScrubCalls != 0 {
		t.Errorf("counters not reset: %+v", next)
	}
}
