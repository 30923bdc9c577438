package components

import "fmt"

// String returns the lowercase name of the biome.
func (b Biome) String() string {
	names := BiomeNames()
	if int(b) < len(names) {
		return names[b]
	}
	return "unknown"
}

// BiomeNames returns the names of all biomes in constant order.
func BiomeNames() []string {
	return []string{"toxic", "barren", "grass", "water", "wetland", "forest"}
}

// BiomeCount returns the number of biomes.
func BiomeCount() int {
	return len(BiomeNames())
}

// String returns the lowercase name of the agent kind.
func (k AgentKind) String() string {
	switch k {
	case KindHerbivore:
		return "herbivore"
	case KindCarnivore:
		return "carnivore"
	case KindPollinator:
		return "pollinator"
	}
	return "unknown"
}

// AgentKinds lists every agent kind.
func AgentKinds() []AgentKind {
	return []AgentKind{KindHerbivore, KindCarnivore, KindPollinator}
}

// Archetype selects the procedural layout used to generate a level map.
type Archetype uint8

const (
	ArchetypeRiver Archetype = iota
	ArchetypeDesert
	ArchetypeForest
	ArchetypeDelta
)

var archetypeNames = map[Archetype]string{
	ArchetypeRiver:  "river",
	ArchetypeDesert: "desert",
	ArchetypeForest: "forest",
	ArchetypeDelta:  "delta",
}

// String returns the archetype's config name.
func (a Archetype) String() string {
	if name, ok := archetypeNames[a]; ok {
		return name
	}
	return fmt.Sprintf("archetype(%d)", uint8(a))
}

// Valid reports whether a is one of the defined archetypes.
func (a Archetype) Valid() bool {
	_, ok := archetypeNames[a]
	return ok
}

// ParseArchetype maps a config name to an Archetype.
func ParseArchetype(name string) (Archetype, error) {
	for a, n := range archetypeNames {
		if n == name {
			return a, nil
		}
	}
	return 0, fmt.Errorf("unknown map archetype %q", name)
}
