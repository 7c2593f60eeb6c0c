// Package registry provides a global registry for game factories.
// Game variants register themselves in init() functions so the platform
// can list and create them without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/supply-tictactoe/internal/core"
)

// Game is the interface every registered game implements. Games hold pure
// logic; the platform handles input mapping, timing and rendering.
type Game interface {
	// ID returns the unique identifier used on the command line and in the
	// results ledger (e.g. "tictactoe").
	ID() string

	// Title returns a human-readable name.
	Title() string

	// Reset starts a fresh game. Called once at start and again after the
	// player asks for a rematch.
	Reset(cfg core.RuntimeConfig)

	// Step consumes the input gathered since the previous step.
	Step(in core.InputFrame) core.StepResult

	// Render draws the game into dst. dst is cleared before the call.
	Render(dst *core.Screen)

	// State returns the current game state.
	State() core.GameState
}

// Recorder is implemented by games whose finished matches go into the
// results ledger. ok is false while the game is still running.
type Recorder interface {
	Result() (res core.Result, ok bool)
}

// Describer is implemented by games that provide a one-line description
// for the menu and the list command.
type Describer interface {
	Description() string
}

// GameInfo contains metadata about a registered game.
type GameInfo struct {
	ID          string
	Title       string
	Description string
}

// Factory creates a new game instance.
type Factory func() Game

var (
	factories = make(map[string]Factory)
	infos     = make(map[string]GameInfo)
	mu        sync.RWMutex
)

// Register adds a game factory. Panics if the ID is already taken.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}

	factories[id] = f

	g := f()
	info := GameInfo{ID: id, Title: g.Title()}
	if d, ok := g.(Describer); ok {
		info.Description = d.Description()
	}
	infos[id] = info
}

// List returns all registered games sorted by ID.
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

// Create instantiates a game by ID.
func Create(id string) (Game, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}

	return f(), nil
}

// Exists reports whether a game with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
