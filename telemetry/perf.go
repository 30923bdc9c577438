package telemetry

import (
	"log/slog"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Phase names for the simulation step.
const (
	PhaseAgents      = "agents"
	PhaseRegen       = "regen"
	PhaseSpawner     = "spawner"
	PhaseSuccession  = "succession"
	PhaseProgression = "progression"
	PhaseEvents      = "events"
	PhaseMetrics     = "metrics"
	PhaseTelemetry   = "telemetry"
)

var phaseOrder = []string{
	PhaseAgents, PhaseRegen, PhaseSpawner, PhaseSuccession,
	PhaseProgression, PhaseEvents, PhaseMetrics, PhaseTelemetry,
}

// Cadence is the heaviest schedule a tick ran. A slow tick also runs the
// medium and fast work, so it is reported as slow only.
type Cadence int

const (
	CadenceFast Cadence = iota
	CadenceMedium
	CadenceSlow
	numCadences
)

func (c Cadence) String() string {
	switch c {
	case CadenceFast:
		return "fast"
	case CadenceMedium:
		return "medium"
	case CadenceSlow:
		return "slow"
	}
	return "unknown"
}

// CadenceOf classifies a tick number against the medium and slow periods.
func CadenceOf(tick, mediumEvery, slowEvery int) Cadence {
	switch {
	case slowEvery > 0 && tick%slowEvery == 0:
		return CadenceSlow
	case mediumEvery > 0 && tick%mediumEvery == 0:
		return CadenceMedium
	}
	return CadenceFast
}

type tickTiming struct {
	cadence Cadence
	total   time.Duration
	phases  map[string]time.Duration
}

// PerfCollector times simulation ticks over a ring of the most recent ticks.
// Phases are contiguous: marking a phase closes the previous one.
type PerfCollector struct {
	clock  func() time.Time
	ring   []tickTiming
	next   int
	filled int

	cur       tickTiming
	tickStart time.Time
	markAt    time.Time
	phase     string
}

// NewPerfCollector creates a collector timing with the wall clock.
func NewPerfCollector(windowTicks int) *PerfCollector {
	return NewPerfCollectorWithClock(windowTicks, time.Now)
}

// NewPerfCollectorWithClock creates a collector reading time from clock.
func NewPerfCollectorWithClock(windowTicks int, clock func() time.Time) *PerfCollector {
	if windowTicks < 1 {
		windowTicks = 10
	}
	return &PerfCollector{
		clock: clock,
		ring:  make([]tickTiming, windowTicks),
	}
}

// BeginTick starts timing a tick of the given cadence.
func (p *PerfCollector) BeginTick(c Cadence) {
	now := p.clock()
	p.cur = tickTiming{cadence: c, phases: make(map[string]time.Duration)}
	p.tickStart = now
	p.markAt = now
	p.phase = ""
}

// Mark closes the running phase, if any, and opens phase.
func (p *PerfCollector) Mark(phase string) {
	now := p.clock()
	p.closePhase(now)
	p.phase = phase
}

// EndTick closes the last phase and stores the tick in the ring.
func (p *PerfCollector) EndTick() {
	now := p.clock()
	p.closePhase(now)
	p.cur.total = now.Sub(p.tickStart)

	p.ring[p.next] = p.cur
	p.next = (p.next + 1) % len(p.ring)
	if p.filled < len(p.ring) {
		p.filled++
	}
}

func (p *PerfCollector) closePhase(now time.Time) {
	if p.phase != "" {
		p.cur.phases[p.phase] += now.Sub(p.markAt)
	}
	p.markAt = now
}

// PerfStats aggregates the ticks currently in the ring.
type PerfStats struct {
	Ticks          int
	AvgTick        time.Duration
	MinTick        time.Duration
	MaxTick        time.Duration
	TicksPerSecond float64

	// Average time per tick spent in each phase, and its share of AvgTick.
	PhaseAvg map[string]time.Duration
	PhasePct map[string]float64

	// Tick count and average tick time by cadence.
	CadenceTicks [numCadences]int
	CadenceAvg   [numCadences]time.Duration
}

// Stats computes aggregated statistics over the ring.
func (p *PerfCollector) Stats() PerfStats {
	out := PerfStats{
		Ticks:    p.filled,
		PhaseAvg: make(map[string]time.Duration),
		PhasePct: make(map[string]float64),
	}
	if p.filled == 0 {
		return out
	}

	totals := make([]float64, p.filled)
	var byCadence [numCadences][]float64
	phaseSum := make(map[string]time.Duration)
	for i, t := range p.ring[:p.filled] {
		totals[i] = float64(t.total)
		byCadence[t.cadence] = append(byCadence[t.cadence], float64(t.total))
		for phase, d := range t.phases {
			phaseSum[phase] += d
		}
	}

	avg := stat.Mean(totals, nil)
	out.AvgTick = time.Duration(avg)
	out.MinTick = time.Duration(floats.Min(totals))
	out.MaxTick = time.Duration(floats.Max(totals))
	if avg > 0 {
		out.TicksPerSecond = float64(time.Second) / avg
	}

	for phase, sum := range phaseSum {
		mean := float64(sum) / float64(p.filled)
		out.PhaseAvg[phase] = time.Duration(mean)
		if avg > 0 {
			out.PhasePct[phase] = mean / avg * 100
		}
	}

	for c, xs := range byCadence {
		out.CadenceTicks[c] = len(xs)
		if len(xs) > 0 {
			out.CadenceAvg[c] = time.Duration(stat.Mean(xs, nil))
		}
	}
	return out
}

// LogStats logs performance statistics.
func (s PerfStats) LogStats() {
	slog.Info("perf", "perf", s)
}

// LogValue implements slog.LogValuer for structured logging.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int("ticks", s.Ticks),
		slog.Int64("avg_tick_us", s.AvgTick.Microseconds()),
		slog.Int64("max_tick_us", s.MaxTick.Microseconds()),
		slog.Float64("ticks_per_sec", s.TicksPerSecond),
	}
	for c := CadenceFast; c < numCadences; c++ {
		if s.CadenceTicks[c] > 0 {
			attrs = append(attrs, slog.Int64(c.String()+"_avg_us", s.CadenceAvg[c].Microseconds()))
		}
	}
	for _, phase := range phaseOrder {
		if pct, ok := s.PhasePct[phase]; ok && pct > 0.1 {
			attrs = append(attrs, slog.Float64(phase+"_pct", pct))
		}
	}
	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is a flat struct for CSV export of performance stats.
type PerfStatsCSV struct {
	WindowEnd      int     `csv:"window_end"`
	AvgTickUS      int64   `csv:"avg_tick_us"`
	MinTickUS      int64   `csv:"min_tick_us"`
	MaxTickUS      int64   `csv:"max_tick_us"`
	TicksPerSec    float64 `csv:"ticks_per_sec"`
	FastAvgUS      int64   `csv:"fast_avg_us"`
	MediumAvgUS    int64   `csv:"medium_avg_us"`
	SlowAvgUS      int64   `csv:"slow_avg_us"`
	SlowTicks      int     `csv:"slow_ticks"`
	AgentsPct      float64 `csv:"agents_pct"`
	RegenPct       float64 `csv:"regen_pct"`
	SpawnerPct     float64 `csv:"spawner_pct"`
	SuccessionPct  float64 `csv:"succession_pct"`
	ProgressionPct float64 `csv:"progression_pct"`
	EventsPct      float64 `csv:"events_pct"`
	MetricsPct     float64 `csv:"metrics_pct"`
	TelemetryPct   float64 `csv:"telemetry_pct"`
}

// ToCSV converts PerfStats to a flat CSV-friendly struct.
func (s PerfStats) ToCSV(windowEnd int) PerfStatsCSV {
	return PerfStatsCSV{
		WindowEnd:      windowEnd,
		AvgTickUS:      s.AvgTick.Microseconds(),
		MinTickUS:      s.MinTick.Microseconds(),
		MaxTickUS:      s.MaxTick.Microseconds(),
		TicksPerSec:    s.TicksPerSecond,
		FastAvgUS:      s.CadenceAvg[CadenceFast].Microseconds(),
		MediumAvgUS:    s.CadenceAvg[CadenceMedium].Microseconds(),
		SlowAvgUS:      s.CadenceAvg[CadenceSlow].Microseconds(),
		SlowTicks:      s.CadenceTicks[CadenceSlow],
		AgentsPct:      s.PhasePct[PhaseAgents],
		RegenPct:       s.PhasePct[PhaseRegen],
		SpawnerPct:     s.PhasePct[PhaseSpawner],
		SuccessionPct:  s.PhasePct[PhaseSuccession],
		ProgressionPct: s.PhasePct[PhaseProgression],
		EventsPct:      s.PhasePct[PhaseEvents],
		MetricsPct:     s.PhasePct[PhaseMetrics],
		TelemetryPct:   s.PhasePct[PhaseTelemetry],
	}
}
