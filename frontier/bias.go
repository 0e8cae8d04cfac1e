package frontier

import (
	"sync"
)

// BiasState is the state of the avoid-point bias latch
type BiasState uint8

const (
	// Unarmed contributes no bias
	Unarmed BiasState = iota
	// Armed contributes the configured weight while the robot is outside the near band
	Armed
)

func (s BiasState) String() string {
	switch s {
	case Unarmed:
		return "unarmed"
	case Armed:
		return "armed"
	default:
		return "invalid"
	}
}

// BiasSession carries the avoid-point latch between searches.
// Transitions:
//
//	Unarmed -> Armed  when near <= distance < far
//	Armed   -> Armed  always (no way back)
//
// Weight output: Unarmed gives 0; Armed gives 0 while distance < near and the
// configured weight otherwise. One session may be shared by several searches;
// it is safe for concurrent use.
type BiasSession struct {
	mu    sync.Mutex
	state BiasState
}

// NewBiasSession creates session in Unarmed state
func NewBiasSession() *BiasSession {
	return &BiasSession{
		state: Unarmed,
	}
}

// State returns current latch state
func (session *BiasSession) State() BiasState {
	session.mu.Lock()
	defer session.mu.Unlock()
	return session.state
}

// Reset puts the session back to Unarmed
func (session *BiasSession) Reset() {
	session.mu.Lock()
	defer session.mu.Unlock()
	session.state = Unarmed
}

// Observe advances the latch with robot's distance to the avoid point and
// returns the weight in effect for that distance.
func (session *BiasSession) Observe(distance float64, cfg BiasConfig) float64 {
	session.mu.Lock()
	defer session.mu.Unlock()
	if distance < cfg.NearThreshold {
		return 0
	}
	if session.state == Unarmed && distance < cfg.FarThreshold {
		session.state = Armed
	}
	if session.state == Armed {
		return cfg.Weight
	}
	return 0
}
