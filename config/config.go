// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/rewild/components"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Scheduler  SchedulerConfig  `yaml:"scheduler"`
	Spray      SprayConfig      `yaml:"spray"`
	Scrub      ScrubConfig      `yaml:"scrub"`
	Succession SuccessionConfig `yaml:"succession"`
	Agents     AgentConfig      `yaml:"agents"`
	Spawner    SpawnerConfig    `yaml:"spawner"`
	Events     EventConfig      `yaml:"events"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`
	Levels     []LevelConfig    `yaml:"levels"`
	Techs      []TechConfig     `yaml:"techs"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// SchedulerConfig holds tick cadence parameters.
type SchedulerConfig struct {
	TickMillis      int     `yaml:"tick_millis"`       // Real-time period of one tick
	MediumEvery     int     `yaml:"medium_every"`      // Spawner runs every N ticks
	SlowEvery       int     `yaml:"slow_every"`        // Succession/progression/timer every N ticks
	EventChance     float64 `yaml:"event_chance"`      // Per slow tick probability of a global event
	EventMessageSec float64 `yaml:"event_message_sec"` // How long an event message stays visible
	OutcomeBuffer   int     `yaml:"outcome_buffer"`    // Capacity of the outcome notification channel
}

// SprayConfig holds the spray-energy economy.
type SprayConfig struct {
	BaseMax       float64 `yaml:"base_max"`       // Max energy without capacity upgrade
	UpgradedMax   float64 `yaml:"upgraded_max"`   // Max energy with capacity upgrade
	BaseRegen     float64 `yaml:"base_regen"`     // Regen per tick while not scrubbing
	UpgradedRegen float64 `yaml:"upgraded_regen"` // Regen per tick with regen upgrade
	CostPerScrub  float64 `yaml:"cost_per_scrub"` // Energy spent per scrub call
}

// ScrubConfig holds remediation brush parameters.
type ScrubConfig struct {
	BaseRadius      int     `yaml:"base_radius"`
	BasePower       float64 `yaml:"base_power"`
	PowerMultiplier float64 `yaml:"power_multiplier"` // Applied with the efficiency upgrade
	MinClean        float64 `yaml:"min_clean"`        // Falloff floor so the brush edge still makes progress
	ClearedMoisture float64 `yaml:"cleared_moisture"` // Moisture of a freshly cleared tile
	SeedChance      float64 `yaml:"seed_chance"`      // Chance a cleared tile becomes grass with seeding
}

// SuccessionConfig holds cellular automaton transition parameters.
type SuccessionConfig struct {
	GrassSpreadChance   float64 `yaml:"grass_spread_chance"`   // Barren->Grass with a vegetation neighbour
	GrassSpreadMoisture float64 `yaml:"grass_spread_moisture"` // Moisture must exceed this
	WindSeedChance      float64 `yaml:"wind_seed_chance"`      // Barren->Grass with no neighbour
	WindSeedMoisture    float64 `yaml:"wind_seed_moisture"`    // Moisture must exceed this
	WetlandChance       float64 `yaml:"wetland_chance"`        // Grass->Wetland next to water
	WetlandMoisture     float64 `yaml:"wetland_moisture"`      // Moisture must exceed this
	ForestChance        float64 `yaml:"forest_chance"`         // Grass->Forest in dense cover
	ForestMoisture      float64 `yaml:"forest_moisture"`       // Moisture must exceed this
	ForestMinNeighbours int     `yaml:"forest_min_neighbours"` // Vegetation neighbours required
}

// AgentConfig holds per-tick agent metabolism and movement parameters.
type AgentConfig struct {
	MaxEnergy       float64 `yaml:"max_energy"`
	EatGain         float64 `yaml:"eat_gain"`         // Energy gained on grass/forest
	StarveCost      float64 `yaml:"starve_cost"`      // Energy lost elsewhere
	HungerThreshold float64 `yaml:"hunger_threshold"` // Below this agents look for food
	WanderTries     int     `yaml:"wander_tries"`     // Random offsets attempted per step
	PollinateEnergy float64 `yaml:"pollinate_energy"` // Pollinators must exceed this to seed
	PollinateChance float64 `yaml:"pollinate_chance"` // Chance to seed a barren tile
	PollinateCost   float64 `yaml:"pollinate_cost"`   // Energy spent seeding
}

// SpawnerConfig holds agent introduction parameters.
type SpawnerConfig struct {
	MaxAgents             int     `yaml:"max_agents"`
	Attempts              int     `yaml:"attempts"` // Random coordinates sampled per call
	InitialEnergy         float64 `yaml:"initial_energy"`
	PollinatorChance      float64 `yaml:"pollinator_chance"` // On grass or wetland
	HerbivoreForestChance float64 `yaml:"herbivore_forest_chance"`
	HerbivoreGrassChance  float64 `yaml:"herbivore_grass_chance"`
	CarnivoreChance       float64 `yaml:"carnivore_chance"`   // On forest
	CarnivoreMinPrey      int     `yaml:"carnivore_min_prey"` // Herbivores must exceed this
}

// EventConfig holds global perturbation parameters.
type EventConfig struct {
	SpillShare       float64 `yaml:"spill_share"` // Fraction of events that are toxic spills
	SpillRadius      int     `yaml:"spill_radius"`
	SpillDensity     float64 `yaml:"spill_density"`      // Per-cell chance inside the spill square
	DroughtLoss      float64 `yaml:"drought_loss"`       // Moisture removed from every tile
	DroughtKillBelow float64 `yaml:"drought_kill_below"` // Grass below this moisture dies
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	WindowTicks int `yaml:"window_ticks"` // Ticks per stats window
}

// LevelGoals are the completion thresholds of a level.
type LevelGoals struct {
	Biodiversity int `yaml:"biodiversity"` // Minimum biodiversity score
	Pollution    int `yaml:"pollution"`    // Maximum pollution percent
}

// LevelConfig describes one playable level.
type LevelConfig struct {
	Name        string     `yaml:"name"`
	Description string     `yaml:"description"`
	MapType     string     `yaml:"map_type"`
	Goals       LevelGoals `yaml:"goals"`
	TimeLimit   int        `yaml:"time_limit"` // Seconds

	Archetype components.Archetype `yaml:"-"`
}

// TechConfig describes a purchasable upgrade.
type TechConfig struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Cost        int    `yaml:"cost"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	TickPeriod   time.Duration  // Scheduler.TickMillis as a duration
	EventMessage time.Duration  // Scheduler.EventMessageSec as a duration
	TechIndex    map[string]int // id -> index into Techs
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.computeDerived(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// MustLoad is like Load but panics on error.
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(fmt.Sprintf("config: failed to load: %v", err))
	}
	return cfg
}

// Defaults returns the embedded default configuration.
func Defaults() *Config {
	return MustLoad("")
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() error {
	c.Derived.TickPeriod = time.Duration(c.Scheduler.TickMillis) * time.Millisecond
	c.Derived.EventMessage = time.Duration(c.Scheduler.EventMessageSec * float64(time.Second))

	for i := range c.Levels {
		lvl := &c.Levels[i]
		arch, err := components.ParseArchetype(lvl.MapType)
		if err != nil {
			return fmt.Errorf("level %d (%s): %w", i, lvl.Name, err)
		}
		lvl.Archetype = arch
	}

	c.Derived.TechIndex = make(map[string]int, len(c.Techs))
	for i, t := range c.Techs {
		c.Derived.TechIndex[t.ID] = i
	}
	return nil
}

// Validate checks invariants the simulation relies on.
func (c *Config) Validate() error {
	var errs []error
	if c.Scheduler.TickMillis <= 0 {
		errs = append(errs, errors.New("scheduler.tick_millis must be positive"))
	}
	if c.Scheduler.MediumEvery <= 0 || c.Scheduler.SlowEvery <= 0 {
		errs = append(errs, errors.New("scheduler cadences must be positive"))
	}
	if c.Scheduler.OutcomeBuffer < 0 {
		errs = append(errs, errors.New("scheduler.outcome_buffer must not be negative"))
	}
	if c.Spray.BaseMax <= 0 || c.Spray.UpgradedMax < c.Spray.BaseMax {
		errs = append(errs, errors.New("spray max energy must be positive and upgraded_max >= base_max"))
	}
	if c.Scrub.BaseRadius < 0 {
		errs = append(errs, errors.New("scrub.base_radius must not be negative"))
	}
	if c.Scrub.MinClean <= 0 {
		errs = append(errs, errors.New("scrub.min_clean must be positive"))
	}
	if len(c.Levels) == 0 {
		errs = append(errs, errors.New("at least one level is required"))
	}
	for i, lvl := range c.Levels {
		if lvl.TimeLimit <= 0 {
			errs = append(errs, fmt.Errorf("level %d (%s): time_limit must be positive", i, lvl.Name))
		}
	}
	if len(c.Derived.TechIndex) != len(c.Techs) {
		errs = append(errs, errors.New("tech ids must be unique"))
	}
	return errors.Join(errs...)
}

// Level returns the level at index and whether it exists.
func (c *Config) Level(index int) (LevelConfig, bool) {
	if index < 0 || index >= len(c.Levels) {
		return LevelConfig{}, false
	}
	return c.Levels[index], true
}

// Tech returns the tech definition with the given id.
func (c *Config) Tech(id string) (TechConfig, bool) {
	i, ok := c.Derived.TechIndex[id]
	if !ok {
		return TechConfig{}, false
	}
	return c.Techs[i], true
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
