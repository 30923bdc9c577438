package main

import (
	"math"
	"sync"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/rewild/config"
	"github.com/pthm-cable/rewild/game"
	"github.com/pthm-cable/rewild/telemetry"
)

// FitnessEvaluator plays headless levels with the autopilot and scores how
// close each run lands to the target completion time.
type FitnessEvaluator struct {
	params        *ParamVector
	level         int
	seeds         []int64
	baseConfig    *config.Config
	target        float64 // Desired completion time as a fraction of the limit
	scrubsPerTick int

	// Best run tracking
	mu          sync.Mutex
	bestFitness float64
	bestWindows []telemetry.WindowStats
	lastQuality float64 // quality from most recent Evaluate call
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, level int, seeds []int64, baseCfg *config.Config, target float64, scrubsPerTick int) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:        params,
		level:         level,
		seeds:         seeds,
		baseConfig:    baseCfg,
		target:        target,
		scrubsPerTick: scrubsPerTick,
		bestFitness:   math.Inf(1),
	}
}

// BestWindows returns the telemetry of the best single run.
func (fe *FitnessEvaluator) BestWindows() []telemetry.WindowStats {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.bestWindows
}

// LastQuality returns the quality score from the most recent evaluation.
func (fe *FitnessEvaluator) LastQuality() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastQuality
}

// runResult holds the results from a single level run.
type runResult struct {
	completed   bool
	ticks       int // ticks until completion or expiry
	limitTicks  int
	pollution   int // pollution percent at the end of the run
	windowStats []telemetry.WindowStats
}

// seedResult holds the result from one seed evaluation.
type seedResult struct {
	fitness float64
	quality float64
	windows []telemetry.WindowStats
}

// Evaluate computes fitness for a parameter vector (lower = better).
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	results := make([]seedResult, len(fe.seeds))
	var wg sync.WaitGroup

	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			r := fe.runLevel(x, s)
			results[idx] = seedResult{
				fitness: fe.computeFitness(r),
				quality: computeQuality(r.windowStats),
				windows: r.windowStats,
			}
		}(i, seed)
	}
	wg.Wait()

	var totalFitness, totalQuality float64
	bestSeed := 0
	for i, r := range results {
		totalFitness += r.fitness
		totalQuality += r.quality
		if r.fitness < results[bestSeed].fitness {
			bestSeed = i
		}
	}

	n := float64(len(fe.seeds))
	avgFitness := totalFitness / n

	fe.mu.Lock()
	if avgFitness < fe.bestFitness {
		fe.bestFitness = avgFitness
		fe.bestWindows = results[bestSeed].windows
	}
	fe.lastQuality = totalQuality / n
	fe.mu.Unlock()

	return avgFitness
}

// runLevel plays one level until it is completed or the timer runs out.
func (fe *FitnessEvaluator) runLevel(x []float64, seed int64) *runResult {
	cfg := fe.copyConfig()
	fe.params.ApplyToConfig(cfg, x)

	lvl, _ := cfg.Level(fe.level)
	result := &runResult{limitTicks: lvl.TimeLimit * cfg.Scheduler.SlowEvery}

	g, err := game.NewGameWithOptions(game.Options{
		Seed:   seed,
		Level:  fe.level,
		Config: cfg,
		StatsCallback: func(stats telemetry.WindowStats) {
			result.windowStats = append(result.windowStats, stats)
		},
	})
	if err != nil {
		result.ticks = result.limitTicks
		result.pollution = 100
		return result
	}
	defer g.Unload()

	pilot := game.NewAutopilot(fe.scrubsPerTick)
	for running := true; running && !result.completed; {
		pilot.Step(g)
		running = g.Step()

		select {
		case out := <-g.Outcomes():
			result.completed = out.Kind == game.OutcomeLevelComplete || out.Kind == game.OutcomeGameWon
		default:
		}
	}

	result.ticks = g.Tick()
	result.pollution = g.Metrics().PollutionPercent
	return result
}

// copyConfig copies the base config. Levels and techs are shared; the
// tuned sections are plain values.
func (fe *FitnessEvaluator) copyConfig() *config.Config {
	cfg := *fe.baseConfig
	return &cfg
}

// computeFitness calculates the scalar fitness (lower = better).
// A completed run scores its distance from the target completion time.
// A failed run scores at least 1, plus the pollution it left behind, so
// any completion beats any failure.
func (fe *FitnessEvaluator) computeFitness(r *runResult) float64 {
	if r.completed {
		frac := float64(r.ticks) / float64(r.limitTicks)
		return math.Abs(frac - fe.target)
	}
	return 1 + float64(r.pollution)/100
}

// Quality component weights.
const (
	qualityWeightFauna     = 0.5
	qualityWeightStability = 0.5

	qualityWarmupWindows = 2 // skip first N windows (warmup)
	qualityTargetAgents  = 20
)

// computeQuality scores how lively and steady the fauna was, in [0, 1].
func computeQuality(windows []telemetry.WindowStats) float64 {
	if len(windows) <= qualityWarmupWindows {
		return 0
	}

	valid := windows[qualityWarmupWindows:]
	counts := make([]float64, len(valid))
	for i, w := range valid {
		counts[i] = float64(w.Agents())
	}

	mean, std := stat.PopMeanStdDev(counts, nil)
	if mean == 0 {
		return 0
	}

	faunaScore := clamp01(mean / qualityTargetAgents)
	cv := std / mean
	stabilityScore := math.Exp(-cv * cv)

	return clamp01(qualityWeightFauna*faunaScore + qualityWeightStability*stabilityScore)
}

// clamp01 clamps x to [0, 1].
func clamp01(x float64) float64 {
	return min(1, max(0, x))
}
