package game

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"slices"
	"sync"
	"time"

	"github.com/pthm-cable/rewild/config"
	"github.com/pthm-cable/rewild/systems"
	"github.com/pthm-cable/rewild/telemetry"
)

// Options configures game behavior.
type Options struct {
	Seed      int64
	Level     int // Starting level index
	LogStats  bool
	OutputDir string // Directory for CSV output, JSON snapshots (empty = disabled)

	Config *config.Config // Config to use (nil = embedded defaults)

	// StatsCallback is called after each telemetry window flush.
	StatsCallback func(telemetry.WindowStats)

	// Now replaces the wall clock used for event message expiry.
	Now func() time.Time
}

// Game owns one play session: the world state, the tick scheduler and the
// telemetry attached to it. All exported methods are safe for concurrent use;
// ticks and player input are serialised by a single mutex.
type Game struct {
	mu sync.Mutex

	cfg   *config.Config
	seed  int64
	rng   *rand.Rand
	now   func() time.Time
	state *State
	tick  int

	scheduler *Scheduler
	outcomes  chan Outcome
	metrics   systems.Metrics

	eventMessage string
	eventExpires time.Time

	// Telemetry
	collector        *telemetry.Collector
	perfCollector    *telemetry.PerfCollector
	bookmarkDetector *telemetry.BookmarkDetector
	outputManager    *telemetry.OutputManager
	statsCallback    func(telemetry.WindowStats)
	logStats         bool
}

// View is a read-only copy of the session for renderers.
type View struct {
	Tick      int
	Level     int
	LevelName string

	Grid    *systems.Grid
	Agents  []systems.AgentView
	Metrics systems.Metrics

	SprayEnergy    float64
	MaxSprayEnergy float64
	Biomass        int
	TimeRemaining  int
	Scrubbing      bool
	Completed      bool
	Unlocked       []string
	EventMessage   string
}

// NewGameWithOptions creates a game positioned on opts.Level. The scheduler
// is not started.
func NewGameWithOptions(opts Options) (*Game, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Defaults()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	rng := systems.NewRand(opts.Seed)
	state, err := NewState(cfg, opts.Level, rng)
	if err != nil {
		return nil, err
	}

	outputManager, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, err
	}
	if outputManager != nil {
		if err := outputManager.WriteConfig(cfg); err != nil {
			slog.Error("failed to write config", "error", err)
		}
	}

	g := &Game{
		cfg:              cfg,
		seed:             opts.Seed,
		rng:              rng,
		now:              now,
		state:            state,
		outcomes:         make(chan Outcome, cfg.Scheduler.OutcomeBuffer),
		collector:        telemetry.NewCollector(cfg.Telemetry.WindowTicks, cfg.Derived.TickPeriod),
		perfCollector:    telemetry.NewPerfCollector(cfg.Telemetry.WindowTicks),
		bookmarkDetector: telemetry.NewBookmarkDetector(10),
		outputManager:    outputManager,
		statsCallback:    opts.StatsCallback,
		logStats:         opts.LogStats,
	}
	g.metrics = systems.ComputeMetrics(state.Grid, state.Agents)
	g.scheduler = NewScheduler(cfg.Derived.TickPeriod, g.Step)

	slog.Info("level loaded", "level", opts.Level, "name", g.levelConfig().Name, "size", state.Grid.Size)
	return g, nil
}

// Start runs the scheduler until ctx is cancelled, Stop is called or the
// level timer expires.
func (g *Game) Start(ctx context.Context) { g.scheduler.Start(ctx) }

// Stop halts the scheduler. No tick runs after Stop returns.
func (g *Game) Stop() { g.scheduler.Stop() }

// Running reports whether the scheduler is active.
func (g *Game) Running() bool { return g.scheduler.Running() }

// Unload stops the scheduler and closes telemetry output.
func (g *Game) Unload() {
	g.Stop()
	if err := g.outputManager.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
}

// Step advances the simulation by one tick. It returns false when the level
// timer expired during this tick and the loop should halt.
func (g *Game) Step() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.step()
}

// Tick returns the number of ticks run in this session.
func (g *Game) Tick() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.tick
}

// Outcomes delivers level notifications. The channel is buffered; outcomes
// are dropped when no one is reading.
func (g *Game) Outcomes() <-chan Outcome { return g.outcomes }

// Config returns the session configuration.
func (g *Game) Config() *config.Config { return g.cfg }

// Metrics returns the most recent slow-tick metrics.
func (g *Game) Metrics() systems.Metrics {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.metrics
}

// EventMessage returns the message of the last global event while it is
// still displayed, or the empty string.
func (g *Game) EventMessage() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.currentEventMessage()
}

// SetScrubbing records whether the player is holding the spray. Energy does
// not regenerate while scrubbing.
func (g *Game) SetScrubbing(on bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.state.Scrubbing = on
}

// Scrub sprays at (x, y) and returns the number of tiles cleared.
func (g *Game) Scrub(x, y int) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.scrub(x, y)
}

// Purchase buys a tech with banked biomass.
func (g *Game) Purchase(id string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	ok := Purchase(g.state, g.cfg, id)
	if ok {
		slog.Info("tech unlocked", "tech", id, "biomass", g.state.Biomass)
	}
	return ok
}

// LoadLevel starts level index on a freshly generated map.
func (g *Game) LoadLevel(index int) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.state.LoadLevel(g.cfg, index, g.rng); err != nil {
		return err
	}
	g.levelReset("level loaded")
	return nil
}

// RetryLevel restarts the current level from its saved grid when present.
func (g *Game) RetryLevel() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.state.RetryLevel(g.cfg, g.rng); err != nil {
		return err
	}
	g.levelReset("level retried")
	return nil
}

// View copies the session for rendering.
func (g *Game) View() View {
	g.mu.Lock()
	defer g.mu.Unlock()

	s := g.state
	unlocked := make([]string, 0, len(s.Unlocked))
	for id := range s.Unlocked {
		unlocked = append(unlocked, id)
	}
	slices.Sort(unlocked)

	return View{
		Tick:           g.tick,
		Level:          s.LevelIndex,
		LevelName:      g.levelConfig().Name,
		Grid:           s.Grid.Clone(),
		Agents:         s.Agents.Snapshot(),
		Metrics:        g.metrics,
		SprayEnergy:    s.SprayEnergy,
		MaxSprayEnergy: MaxSprayEnergy(s, g.cfg.Spray),
		Biomass:        s.Biomass,
		TimeRemaining:  s.TimeRemaining,
		Scrubbing:      s.Scrubbing,
		Completed:      s.Completed,
		Unlocked:       unlocked,
		EventMessage:   g.currentEventMessage(),
	}
}

func (g *Game) levelConfig() config.LevelConfig {
	lvl, _ := g.cfg.Level(g.state.LevelIndex)
	return lvl
}

func (g *Game) levelReset(msg string) {
	g.eventMessage = ""
	g.metrics = systems.ComputeMetrics(g.state.Grid, g.state.Agents)
	g.collector.Reset(g.tick)
	g.bookmarkDetector.Reset()
	slog.Info(msg, "level", g.state.LevelIndex, "name", g.levelConfig().Name, "size", g.state.Grid.Size)
}

func (g *Game) currentEventMessage() string {
	if g.eventMessage != "" && !g.now().Before(g.eventExpires) {
		g.eventMessage = ""
	}
	return g.eventMessage
}

func (g *Game) scrub(x, y int) int {
	cleared, sprayed := Scrub(g.state, g.cfg, x, y, g.rng)
	if sprayed {
		g.collector.RecordScrub(cleared)
	}
	return cleared
}

// emit publishes an outcome without blocking the tick.
func (g *Game) emit(out Outcome) {
	lvl := g.levelConfig()
	slog.Info("level outcome", "outcome", out.Kind.String(), "level", out.Level, "name", lvl.Name,
		"biodiversity", g.metrics.BiodiversityScore, "pollution_pct", g.metrics.PollutionPercent)

	if g.outputManager != nil {
		rec := telemetry.OutcomeRecord{
			Tick:              g.tick,
			Level:             out.Level,
			LevelName:         lvl.Name,
			Outcome:           out.Kind.String(),
			BiodiversityScore: g.metrics.BiodiversityScore,
			PollutionPercent:  g.metrics.PollutionPercent,
			TimeRemaining:     g.state.TimeRemaining,
		}
		if err := g.outputManager.WriteOutcome(rec); err != nil {
			slog.Error("failed to write outcome", "error", err)
		}
	}

	select {
	case g.outcomes <- out:
	default:
		slog.Warn("outcome dropped", "outcome", out.Kind.String(), "level", out.Level)
	}
}
