package telemetry

import (
	"fmt"
	"log/slog"

	"gonum.org/v1/gonum/stat"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkPollutionSpike  BookmarkType = "pollution_spike"
	BookmarkCanopyGrowth    BookmarkType = "canopy_growth"
	BookmarkPopulationCrash BookmarkType = "population_crash"
	BookmarkStableEcosystem BookmarkType = "stable_ecosystem"
)

// Bookmark represents an automatically triggered bookmark.
type Bookmark struct {
	Type        BookmarkType `csv:"type"`
	Tick        int          `csv:"tick"`
	Level       int          `csv:"level"`
	Description string       `csv:"description"`
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"type", string(b.Type),
		"tick", b.Tick,
		"level", b.Level,
		"description", b.Description,
	)
}

// BookmarkDetector detects interesting moments in a level.
type BookmarkDetector struct {
	// Rolling history (circular buffer)
	history     []WindowStats
	historySize int
	historyIdx  int
	historyFull bool

	// State tracking
	recentAgentPeak    int // peak agent count in recent history
	stableWindowsCount int // consecutive windows with a steady population
}

// NewBookmarkDetector creates a detector with the given history size.
func NewBookmarkDetector(historySize int) *BookmarkDetector {
	if historySize < 5 {
		historySize = 5 // minimum for stable ecosystem detection
	}
	return &BookmarkDetector{
		history:     make([]WindowStats, historySize),
		historySize: historySize,
	}
}

// Reset forgets all history, e.g. when a new level starts.
func (bd *BookmarkDetector) Reset() {
	clear(bd.history)
	bd.historyIdx = 0
	bd.historyFull = false
	bd.recentAgentPeak = 0
	bd.stableWindowsCount = 0
}

// Check analyzes the latest stats and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(stats WindowStats) []Bookmark {
	var bookmarks []Bookmark

	if bd.historyFull || bd.historyIdx > 0 {
		// Pollution spike: jumped 10+ points since the previous window
		if b := bd.checkPollutionSpike(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}

		// Canopy growth: forest cover > 2x rolling average
		if b := bd.checkCanopyGrowth(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}

		// Population crash: dropped >30% from recent peak
		if b := bd.checkPopulationCrash(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}

		// Stable ecosystem: herbivores and pollinators steady over 5+ windows
		if b := bd.checkStableEcosystem(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}
	}

	bd.addToHistory(stats)

	if stats.Agents() > bd.recentAgentPeak {
		bd.recentAgentPeak = stats.Agents()
	}

	return bookmarks
}

func (bd *BookmarkDetector) addToHistory(stats WindowStats) {
	bd.history[bd.historyIdx] = stats
	bd.historyIdx = (bd.historyIdx + 1) % bd.historySize
	if bd.historyIdx == 0 {
		bd.historyFull = true
	}
}

func (bd *BookmarkDetector) getHistory() []WindowStats {
	if bd.historyFull {
		return bd.history
	}
	return bd.history[:bd.historyIdx]
}

// previous returns the most recently recorded window.
func (bd *BookmarkDetector) previous() WindowStats {
	idx := (bd.historyIdx - 1 + bd.historySize) % bd.historySize
	return bd.history[idx]
}

func (bd *BookmarkDetector) checkPollutionSpike(stats WindowStats) *Bookmark {
	prev := bd.previous()
	rise := stats.PollutionPercent - prev.PollutionPercent
	if rise < 10 {
		return nil
	}
	return &Bookmark{
		Type:        BookmarkPollutionSpike,
		Tick:        stats.WindowEndTick,
		Level:       stats.Level,
		Description: fmt.Sprintf("Pollution rose from %d%% to %d%%", prev.PollutionPercent, stats.PollutionPercent),
	}
}

func (bd *BookmarkDetector) checkCanopyGrowth(stats WindowStats) *Bookmark {
	history := bd.getHistory()
	if len(history) < 3 {
		return nil
	}

	var total int
	for _, h := range history {
		total += h.Forest
	}
	avgForest := float64(total) / float64(len(history))
	if avgForest == 0 {
		return nil
	}

	if float64(stats.Forest) > avgForest*2.0 && stats.Forest >= 20 {
		return &Bookmark{
			Type:        BookmarkCanopyGrowth,
			Tick:        stats.WindowEndTick,
			Level:       stats.Level,
			Description: fmt.Sprintf("Forest cover %d is %.1fx average (%.1f)", stats.Forest, float64(stats.Forest)/avgForest, avgForest),
		}
	}
	return nil
}

func (bd *BookmarkDetector) checkPopulationCrash(stats WindowStats) *Bookmark {
	if bd.recentAgentPeak == 0 {
		return nil
	}

	agents := stats.Agents()
	dropPercent := 1.0 - float64(agents)/float64(bd.recentAgentPeak)
	if dropPercent > 0.30 && agents < bd.recentAgentPeak-10 {
		// Reset peak after crash
		oldPeak := bd.recentAgentPeak
		bd.recentAgentPeak = agents

		return &Bookmark{
			Type:        BookmarkPopulationCrash,
			Tick:        stats.WindowEndTick,
			Level:       stats.Level,
			Description: fmt.Sprintf("Agents crashed %.0f%% from peak %d to %d", dropPercent*100, oldPeak, agents),
		}
	}
	return nil
}

func (bd *BookmarkDetector) checkStableEcosystem(stats WindowStats) *Bookmark {
	// Need grazers and pollinators present
	if stats.Herbivores < 5 || stats.Pollinators < 3 {
		bd.stableWindowsCount = 0
		return nil
	}

	history := bd.getHistory()
	if len(history) < 4 {
		return nil
	}

	recent := history[len(history)-4:]
	herb := make([]float64, len(recent))
	poll := make([]float64, len(recent))
	for i, h := range recent {
		herb[i] = float64(h.Herbivores)
		poll[i] = float64(h.Pollinators)
	}

	// Low variance: coefficient of variation < 20%
	if coeffVarSq(herb) < 0.04 && coeffVarSq(poll) < 0.04 {
		bd.stableWindowsCount++
	} else {
		bd.stableWindowsCount = 0
	}

	if bd.stableWindowsCount == 5 { // trigger exactly once at 5 windows
		return &Bookmark{
			Type:        BookmarkStableEcosystem,
			Tick:        stats.WindowEndTick,
			Level:       stats.Level,
			Description: fmt.Sprintf("Stable ecosystem with %d herbivores, %d pollinators over 5+ windows", stats.Herbivores, stats.Pollinators),
		}
	}
	return nil
}

// coeffVarSq returns the squared coefficient of variation (population variance).
func coeffVarSq(xs []float64) float64 {
	mean, variance := stat.PopMeanVariance(xs, nil)
	if mean == 0 {
		return 0
	}
	return variance / (mean * mean)
}
