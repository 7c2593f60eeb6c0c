// Package tictactoe adapts the supply-weighted engine to the arcade
// platform: cursor and direct cell selection, mouse hit-testing, the HUD
// and the results ledger hook.
package tictactoe

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/supply-tictactoe/internal/config"
	"github.com/vovakirdan/supply-tictactoe/internal/core"
	"github.com/vovakirdan/supply-tictactoe/internal/games/tictactoe/engine"
	"github.com/vovakirdan/supply-tictactoe/internal/registry"
)

// Registered game IDs.
const (
	IDWeighted = "tictactoe"
	IDFair     = "tictactoe_fair"
	IDClassic  = "tictactoe_classic"
)

// Package defaults set from the CLI before games are created.
var (
	defaultsMu           sync.RWMutex
	configPath           string
	initialCountOverride int
	defaultLogger        *log.Logger
)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	defaultsMu.Lock()
	defer defaultsMu.Unlock()
	configPath = path
}

// SetInitialCount overrides the configured supply for every variant that
// uses one. Zero restores the configured value.
func SetInitialCount(n int) {
	defaultsMu.Lock()
	defer defaultsMu.Unlock()
	initialCountOverride = n
}

// SetLogger sets the logger new games write placement events to.
func SetLogger(l *log.Logger) {
	defaultsMu.Lock()
	defer defaultsMu.Unlock()
	defaultLogger = l
}

// Option customises a single game instance.
type Option func(*Game)

// WithLogger sets the placement logger.
func WithLogger(l *log.Logger) Option {
	return func(g *Game) { g.logger = l }
}

// WithConfig uses cfg instead of loading tictactoe.yaml on reset.
func WithConfig(cfg config.TicTacToeConfig) Option {
	return func(g *Game) {
		g.cfg = cfg
		g.cfgFixed = true
	}
}

// WithInitialCount overrides the supply for this instance.
func WithInitialCount(n int) Option {
	return func(g *Game) { g.initialCount = n }
}

// Game is one tic-tac-toe session in a given variant.
type Game struct {
	variant config.Variant
	logger  *log.Logger

	cfg          config.TicTacToeConfig
	cfgFixed     bool
	cfgPath      string
	initialCount int

	eng     *engine.BoardEngine
	rng     *rand.Rand
	runtime core.RuntimeConfig

	cursor engine.Cell
	paused bool
	status string
	last   *engine.PlacementResult

	layout layout
}

// New creates a game in the given variant. It is not playable until Reset.
func New(variant config.Variant, opts ...Option) *Game {
	defaultsMu.RLock()
	g := &Game{
		variant:      variant,
		logger:       defaultLogger,
		cfgPath:      configPath,
		initialCount: initialCountOverride,
	}
	defaultsMu.RUnlock()

	for _, opt := range opts {
		opt(g)
	}
	if g.logger == nil {
		g.logger = log.New(io.Discard)
	}
	return g
}

func init() {
	registry.Register(IDWeighted, func() registry.Game {
		return New(config.VariantWeighted)
	})
	registry.Register(IDFair, func() registry.Game {
		return New(config.VariantFair)
	})
	registry.Register(IDClassic, func() registry.Game {
		return New(config.VariantClassic)
	})
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	switch g.variant {
	case config.VariantFair:
		return IDFair
	case config.VariantClassic:
		return IDClassic
	default:
		return IDWeighted
	}
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	switch g.variant {
	case config.VariantFair:
		return "Tic-Tac-Toe (Fair Draw)"
	case config.VariantClassic:
		return "Tic-Tac-Toe (Classic)"
	default:
		return "Tic-Tac-Toe (Supply)"
	}
}

// Description returns a one-line summary for menus.
func (g *Game) Description() string {
	switch g.variant {
	case config.VariantFair:
		return "Every mark is a coin flip from a bottomless supply"
	case config.VariantClassic:
		return "Marks alternate X, O, X... as usual"
	default:
		return "Marks are drawn at random from 5 X and 5 O"
	}
}

// Variant returns the variant this game plays.
func (g *Game) Variant() config.Variant {
	return g.variant
}

// Reset initializes or restarts the game.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	if !g.cfgFixed {
		cfg, err := config.LoadTicTacToe(g.cfgPath)
		if err != nil {
			g.logger.Warn("config load failed, using defaults", "path", g.cfgPath, "err", err)
			cfg = config.DefaultTicTacToeConfig()
		}
		g.cfg = cfg
	}

	seed := runtime.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	g.rng = rand.New(rand.NewSource(seed)) //nolint:gosec // game randomness

	opts := []engine.Option{engine.WithRand(g.rng)}
	if g.variant == config.VariantClassic {
		opts = append(opts, engine.WithoutSupply())
	} else {
		n := g.cfg.InitialCountFor(g.variant)
		if g.initialCount > 0 {
			n = g.initialCount
		}
		opts = append(opts, engine.WithInitialCount(n))
	}
	g.eng = engine.New(opts...)

	g.cursor = engine.Cell{Row: 1, Col: 1}
	g.paused = false
	g.status = ""
	g.last = nil
	g.layout = newLayout(runtime.ScreenW, runtime.ScreenH)

	g.logger.Debug("game reset", "game", g.ID(), "seed", seed,
		"initial", g.eng.InitialCount(), "supply", g.eng.HasSupply())
}

// restart begins a rematch with a seed drawn from the current one, so a
// seeded session stays reproducible across games.
func (g *Game) restart() {
	rt := g.runtime
	rt.Seed = g.rng.Int63()
	g.Reset(rt)
}

// Step consumes the input gathered since the previous step.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.eng == nil {
		g.Reset(core.DefaultConfig())
	}

	terminal := g.eng.State() == engine.Terminal

	if in.Has(core.ActionRestart) && terminal {
		g.restart()
		return core.StepResult{State: g.State(), Changed: true}
	}

	if in.Has(core.ActionPause) && !terminal {
		g.paused = !g.paused
	}
	if g.paused || terminal {
		return core.StepResult{State: g.State()}
	}

	g.moveCursor(in)

	changed := false
	switch {
	case in.Click != nil:
		if cell, ok := g.layout.cellAt(in.Click.X, in.Click.Y); ok {
			g.cursor = cell
			changed = g.place(cell)
		}
	case in.Has(core.ActionConfirm):
		changed = g.place(g.cursor)
	default:
		for i := 0; i < engine.CellCount; i++ {
			if in.Has(core.CellAction(i)) {
				cell := engine.CellAt(i)
				g.cursor = cell
				changed = g.place(cell)
				break
			}
		}
	}

	return core.StepResult{State: g.State(), Changed: changed}
}

func (g *Game) moveCursor(in core.InputFrame) {
	switch {
	case in.Has(core.ActionUp):
		g.cursor.Row--
	case in.Has(core.ActionDown):
		g.cursor.Row++
	}
	switch {
	case in.Has(core.ActionLeft):
		g.cursor.Col--
	case in.Has(core.ActionRight):
		g.cursor.Col++
	}
	g.cursor.Row = core.Clamp(g.cursor.Row, 0, engine.Size-1)
	g.cursor.Col = core.Clamp(g.cursor.Col, 0, engine.Size-1)
}

// place asks the engine for a mark at cell. Rejected placements only set
// the status line.
func (g *Game) place(cell engine.Cell) bool {
	res, err := g.eng.PlaceMark(cell.Row, cell.Col)
	if err != nil {
		switch {
		case errors.Is(err, engine.ErrCellOccupied):
			g.status = fmt.Sprintf("Cell %d is taken", cell.Index()+1)
		case errors.Is(err, engine.ErrGameOver):
			g.status = "Game over, press R for a rematch"
		default:
			g.status = err.Error()
			g.logger.Error("placement failed", "cell", cell, "err", err)
		}
		return false
	}

	g.status = ""
	g.last = &res

	px, po := g.eng.Probability()
	g.logger.Debug("placed",
		"game", g.ID(),
		"cell", cell,
		"mark", res.Assigned,
		"remaining_x", res.RemainingX,
		"remaining_o", res.RemainingO,
		"next_x", fmt.Sprintf("%.2f", px),
		"next_o", fmt.Sprintf("%.2f", po),
		"outcome", res.Outcome,
	)
	if res.Outcome.Terminal() {
		g.logger.Info("game finished", "game", g.ID(), "outcome", res.Outcome, "placed", g.eng.Placed())
	}
	return true
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.eng == nil {
		return core.GameState{}
	}
	return core.GameState{
		Score:    g.eng.Placed(),
		GameOver: g.eng.State() == engine.Terminal,
		Paused:   g.paused,
	}
}

// Result summarises a finished game for the results ledger.
func (g *Game) Result() (core.Result, bool) {
	if g.eng == nil || g.eng.State() != engine.Terminal {
		return core.Result{}, false
	}

	out := g.eng.Outcome()
	x, o := g.eng.RemainingCounts()
	res := core.Result{
		Outcome:    core.OutcomeDraw,
		Placements: g.eng.Placed(),
		RemainingX: x,
		RemainingO: o,
	}
	if out.Kind == engine.Won {
		res.Winner = out.Winner.String()
		res.WinningLine = out.Line.String()
		res.Outcome = core.OutcomeXWon
		if out.Winner == engine.O {
			res.Outcome = core.OutcomeOWon
		}
	}
	return res, true
}

// Engine exposes the underlying engine, mainly for tests and tools.
func (g *Game) Engine() *engine.BoardEngine {
	return g.eng
}

// Cursor returns the highlighted cell.
func (g *Game) Cursor() engine.Cell {
	return g.cursor
}

// Status returns the last rejection message, empty after a good placement.
func (g *Game) Status() string {
	return g.status
}
