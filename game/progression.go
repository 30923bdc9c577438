package game

import (
	"github.com/pthm-cable/rewild/config"
	"github.com/pthm-cable/rewild/systems"
)

// OutcomeKind classifies a level notification.
type OutcomeKind uint8

const (
	OutcomeContinue OutcomeKind = iota
	OutcomeLevelComplete
	OutcomeGameWon
	OutcomeGameOver
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeContinue:
		return "continue"
	case OutcomeLevelComplete:
		return "level_complete"
	case OutcomeGameWon:
		return "game_won"
	case OutcomeGameOver:
		return "game_over"
	}
	return "unknown"
}

// Outcome is a level notification for the UI and audio layers.
type Outcome struct {
	Kind  OutcomeKind
	Level int // Level the outcome refers to

	HasNextLevel   bool
	NextLevelIndex int
	IsGameOver     bool
	IsGameWon      bool
}

// GoalMet reports whether metrics satisfy a level goal. Both bounds are
// inclusive.
func GoalMet(m systems.Metrics, goal config.LevelGoals) bool {
	return m.BiodiversityScore >= goal.Biodiversity && m.PollutionPercent <= goal.Pollution
}

// CheckProgress evaluates the current level goal. The first time the goal is
// met it marks the level completed and returns LevelComplete, or GameWon on
// the last level; every other call returns Continue.
func CheckProgress(s *State, level config.LevelConfig, levelCount int) Outcome {
	if s.Completed {
		return Outcome{Kind: OutcomeContinue, Level: s.LevelIndex}
	}
	if !GoalMet(systems.ComputeMetrics(s.Grid, s.Agents), level.Goals) {
		return Outcome{Kind: OutcomeContinue, Level: s.LevelIndex}
	}

	s.Completed = true
	next := s.LevelIndex + 1
	out := Outcome{
		Kind:           OutcomeLevelComplete,
		Level:          s.LevelIndex,
		HasNextLevel:   next < levelCount,
		NextLevelIndex: next,
	}
	if !out.HasNextLevel {
		out.Kind = OutcomeGameWon
		out.IsGameWon = true
	}
	return out
}

// GameOverOutcome is emitted when the level timer runs out.
func GameOverOutcome(level int) Outcome {
	return Outcome{
		Kind:       OutcomeGameOver,
		Level:      level,
		IsGameOver: true,
	}
}
