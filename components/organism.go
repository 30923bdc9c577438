package components

// AgentKind is the species class of a mobile agent.
type AgentKind uint8

const (
	KindHerbivore AgentKind = iota
	KindCarnivore
	KindPollinator
)

// Agent holds identity and metabolic state for a mobile organism.
// Energy is in [0, 100]; agents at or below zero are removed.
type Agent struct {
	ID     string
	Kind   AgentKind
	Energy float64
}
