// Package registry provides a global registry for game factories.
// Games register themselves in init() functions, allowing the platform
// to discover and instantiate games without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/codekriti/deepsea/internal/core"
)

// Game is the core interface that all scenes must implement.
// Games contain pure logic with no external dependencies (especially no Bubble Tea).
// The platform handles input mapping, timing, and rendering.
type Game interface {
	// ID returns a unique identifier for this game (e.g., "bubbles").
	// Used for CLI commands and score storage.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Reset initializes or resets the game state.
	// The RuntimeConfig provides screen dimensions and RNG seed.
	Reset(cfg core.RuntimeConfig)

	// Step advances the simulation by one frame.
	// Input is abstracted to platform-level actions.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current game state into the provided screen buffer.
	// It must be a no-op when the screen is not ready.
	Render(dst *core.Screen)

	// State returns the current game state.
	State() core.GameState
}

// Animator is implemented by games whose frame loop may legitimately stop.
// The platform only resumes frames after a visibility change while Running
// reports true. Games that don't implement it always run.
type Animator interface {
	Running() bool
}

// KV is a string key/value store used for small persisted values.
type KV interface {
	Get(key string) (string, error)
	Set(key, value string) error
}

// Persistent is implemented by games that persist values between sessions.
// The platform attaches its store before the first Reset.
type Persistent interface {
	AttachStore(kv KV)
}

// IsRunning reports whether the platform should keep scheduling frames for g.
func IsRunning(g Game) bool {
	if a, ok := g.(Animator); ok {
		return a.Running()
	}
	return true
}

// Describer is implemented by games with a one-line description for pickers.
type Describer interface {
	Blurb() string
}

// GameInfo contains metadata about a registered game.
type GameInfo struct {
	ID    string
	Title string
	Blurb string // Empty unless the game implements Describer
}

// Factory is a function that creates a new instance of a game.
type Factory func() Game

var (
	factories = make(map[string]Factory)
	infos     = make(map[string]GameInfo)
	mu        sync.RWMutex
)

// Register adds a game factory to the registry.
// Typically called from a game's init() function.
// Panics if a game with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}

	factories[id] = f

	// Metadata comes from a throwaway instance
	g := f()
	info := GameInfo{ID: id, Title: g.Title()}
	if d, ok := g.(Describer); ok {
		info.Blurb = d.Blurb()
	}
	infos[id] = info
}

// List returns information about all registered games, sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(infos))
	for _, info := range infos {
		result = append(result, info)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a new game by its ID.
// Returns an error if the game ID is not registered.
func Create(id string) (Game, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}

	return f(), nil
}

// Exists checks if a game with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
