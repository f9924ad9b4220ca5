// Package registry provides a global registry for environment factories.
// Environments register themselves in init() functions, allowing the CLI
// to discover and instantiate them without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tetris-gym/internal/config"
	"github.com/vovakirdan/tetris-gym/internal/core"
	"github.com/vovakirdan/tetris-gym/internal/telemetry"
)

// Environment is the interface every training environment implements.
// Environments are driven synchronously by a single caller.
type Environment interface {
	// ID returns a unique identifier for this environment (e.g., "tetris").
	// Used for CLI commands and episode storage.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Reset starts a new episode and returns the initial observation.
	Reset(cfg core.RuntimeConfig) core.StepResult

	// Step applies one driver action code and advances the simulation.
	// Unknown codes are treated as no-ops.
	Step(code int) core.StepResult

	// Advance feeds elapsed wall time to clock-driven gravity.
	// Step-driven environments return the current state unchanged.
	Advance(dt time.Duration) core.StepResult

	// State returns the current episode state.
	State() core.GameState

	// Actions returns the valid action codes in ascending order.
	Actions() []int

	// ObservationSize returns the length of the observation vector.
	ObservationSize() int
}

// Settings carries the collaborators an environment is built with.
type Settings struct {
	Config config.TetrisConfig
	Logger *log.Logger    // nil = discard
	Sink   telemetry.Sink // nil = no telemetry
}

// EnvInfo contains metadata about a registered environment.
type EnvInfo struct {
	ID    string
	Title string
}

// Factory is a function that creates a new instance of an environment.
type Factory func(s Settings) (Environment, error)

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds an environment factory to the registry.
// Typically called from an environment's init() function.
// Panics if an environment with the same ID is already registered.
func Register(id, title string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: environment %q already registered", id))
	}

	factories[id] = f
	titles[id] = title
}

// List returns information about all registered environments, sorted by ID.
func List() []EnvInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]EnvInfo, 0, len(factories))
	for id := range factories {
		result = append(result, EnvInfo{
			ID:    id,
			Title: titles[id],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a new environment by its ID.
// Returns an error if the ID is not registered or the factory fails.
func Create(id string, s Settings) (Environment, error) {
	mu.RLock()
	f, ok := factories[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown environment %q", id)
	}

	env, err := f(s)
	if err != nil {
		return nil, fmt.Errorf("registry: create %q: %w", id, err)
	}
	return env, nil
}

// Exists checks if an environment with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
