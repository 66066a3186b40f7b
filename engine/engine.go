// Package engine holds the state of a running Game of Life session and the
// single periodic timer that advances it.
package engine

import (
	"math/rand/v2"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-gol-engine/model"
	"github.com/sheikhrachel/go-gol-engine/utils"
)

// historySize is how many generation hashes are kept for stagnation detection
const historySize = 5

// Snapshot is a consistent copy of the engine's observable state
type Snapshot struct {
	Grid         *model.Grid
	Columns      int
	Rows         int
	Generation   int
	Running      bool
	TickInterval time.Duration
	Population   int
	Stagnant     bool
}

// Engine owns the grid, the generation counter, the running flag and the tick timer.
// All methods are safe to call from any goroutine; each one runs to completion
// before the next starts.
type Engine struct {
	mu           sync.Mutex
	grid         *model.Grid
	generation   int
	running      bool
	tickInterval time.Duration
	history      []string
	stagnant     bool

	rng      *rand.Rand
	pool     *model.GridPool
	parallel bool
	onChange func(Snapshot)

	// timerMu serialises timer replacement and Close
	timerMu      sync.Mutex
	timer        *ticker
	activeTimers atomic.Int32
	closed       bool
}

// Option configures an Engine at construction
type Option func(*Engine)

// WithOnChange registers fn to receive a Snapshot after every state change.
// fn may be called concurrently from the tick goroutine and must not call
// SetTickInterval or Close synchronously.
func WithOnChange(fn func(Snapshot)) Option {
	return func(e *Engine) { e.onChange = fn }
}

// WithSeed makes Randomize deterministic
func WithSeed(seed uint64) Option {
	return func(e *Engine) { e.rng = rand.New(rand.NewPCG(seed, seed)) }
}

// WithParallel computes generations in row bands across all CPUs
func WithParallel(parallel bool) Option {
	return func(e *Engine) { e.parallel = parallel }
}

// WithMemoryPool recycles grid buffers between generations
func WithMemoryPool(enabled bool) Option {
	return func(e *Engine) {
		if enabled {
			e.pool = model.NewGridPool()
		} else {
			e.pool = nil
		}
	}
}

// New creates a paused engine with an all-dead grid and starts its tick timer
func New(columns, rows int, tickInterval time.Duration, opts ...Option) (*Engine, error) {
	if columns <= 0 || rows <= 0 {
		return nil, errors.Wrapf(ErrInvalidDimension, "[New] got %dx%d", columns, rows)
	}
	if tickInterval <= 0 {
		return nil, errors.Wrapf(ErrInvalidInterval, "[New] got %v", tickInterval)
	}

	e := &Engine{
		grid:         model.Initialize(columns, rows),
		tickInterval: tickInterval,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	e.timer = startTicker(tickInterval, &e.activeTimers, e.Advance)
	return e, nil
}

// NewFromConfig creates an engine from a loaded configuration.
// opts are applied after the options derived from cfg.
func NewFromConfig(cfg utils.Config, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "[NewFromConfig]")
	}

	base := []Option{
		WithParallel(cfg.UseParallel),
		WithMemoryPool(cfg.UseMemoryPool),
	}
	if cfg.Seed != 0 {
		base = append(base, WithSeed(cfg.Seed))
	}

	e, err := New(cfg.Columns, cfg.Rows, cfg.TickInterval(), append(base, opts...)...)
	if err != nil {
		return nil, err
	}
	if cfg.RandomizeOnStart {
		e.Randomize()
	}
	if cfg.StartRunning {
		e.SetRunning(true)
	}
	return e, nil
}

// Advance computes the next generation when running and is a no-op when paused.
// The next grid is built completely from the current one before it replaces it.
func (e *Engine) Advance() {
	e.mu.Lock()
	if !e.running {
		e.mu.Unlock()
		return
	}

	if len(e.history) == 0 {
		e.history = append(e.history, e.grid.GetGridHash())
	}

	var next *model.Grid
	if e.parallel {
		next = e.grid.NextGenerationParallel(e.pool)
	} else {
		next = e.grid.NextGeneration(e.pool)
	}
	model.GridToPool(e.grid, e.pool)
	e.grid = next
	e.generation++
	e.updateHistory()

	snap := e.snapshotLocked()
	e.mu.Unlock()
	e.notify(snap)
}

// updateHistory records the current grid and flags a repeat of any of the last 3 generations
func (e *Engine) updateHistory() {
	hash := e.grid.GetGridHash()
	recent := e.history[max(0, len(e.history)-3):]
	e.stagnant = slices.Contains(recent, hash)

	e.history = append(e.history, hash)
	if len(e.history) > historySize {
		e.history = e.history[1:]
	}
}

// ToggleCell flips a single cell. The generation counter is unchanged.
func (e *Engine) ToggleCell(column, row int) error {
	e.mu.Lock()
	if !e.grid.Toggle(column, row) {
		columns, rows := e.grid.GetColumns(), e.grid.GetRows()
		e.mu.Unlock()
		return errors.Wrapf(ErrInvalidCoordinate, "[ToggleCell] (%d,%d) on %dx%d grid", column, row, columns, rows)
	}
	e.forgetHistory()
	snap := e.snapshotLocked()
	e.mu.Unlock()
	e.notify(snap)
	return nil
}

// Stamp places a pattern with its origin at (column, row); cells past the edge are dropped.
// The generation counter is unchanged.
func (e *Engine) Stamp(p model.Pattern, column, row int) error {
	e.mu.Lock()
	if !e.grid.InBounds(column, row) {
		columns, rows := e.grid.GetColumns(), e.grid.GetRows()
		e.mu.Unlock()
		return errors.Wrapf(ErrInvalidCoordinate, "[Stamp] (%d,%d) on %dx%d grid", column, row, columns, rows)
	}
	e.grid.Stamp(p, column, row)
	e.forgetHistory()
	snap := e.snapshotLocked()
	e.mu.Unlock()
	e.notify(snap)
	return nil
}

// Reset kills every cell and zeroes the generation counter
func (e *Engine) Reset() {
	e.mu.Lock()
	e.grid.Clear()
	e.generation = 0
	e.forgetHistory()
	snap := e.snapshotLocked()
	e.mu.Unlock()
	e.notify(snap)
}

// Randomize marks each cell alive with probability 1/3 and zeroes the generation counter
func (e *Engine) Randomize() {
	e.mu.Lock()
	e.grid.Randomize(e.rng)
	e.generation = 0
	e.forgetHistory()
	snap := e.snapshotLocked()
	e.mu.Unlock()
	e.notify(snap)
}

// Resize replaces the grid with an all-dead one of the new size and zeroes the generation counter
func (e *Engine) Resize(columns, rows int) error {
	if columns <= 0 || rows <= 0 {
		return errors.Wrapf(ErrInvalidDimension, "[Resize] got %dx%d", columns, rows)
	}

	e.mu.Lock()
	e.grid = model.Initialize(columns, rows)
	e.generation = 0
	e.forgetHistory()
	snap := e.snapshotLocked()
	e.mu.Unlock()
	e.notify(snap)
	return nil
}

// ApplyPreset resizes the grid to a named preset
func (e *Engine) ApplyPreset(p utils.SizePreset) error {
	return errors.Wrapf(e.Resize(p.Columns, p.Rows), "[ApplyPreset] %s", p.Name)
}

// SetTickInterval cancels the outstanding timer and starts a single new one at d
func (e *Engine) SetTickInterval(d time.Duration) error {
	if d <= 0 {
		return errors.Wrapf(ErrInvalidInterval, "[SetTickInterval] got %v", d)
	}

	e.timerMu.Lock()
	defer e.timerMu.Unlock()

	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}

	e.mu.Lock()
	e.tickInterval = d
	snap := e.snapshotLocked()
	e.mu.Unlock()

	if !e.closed {
		e.timer = startTicker(d, &e.activeTimers, e.Advance)
	}
	e.notify(snap)
	return nil
}

// ToggleRunning flips between running and paused
func (e *Engine) ToggleRunning() {
	e.mu.Lock()
	e.running = !e.running
	snap := e.snapshotLocked()
	e.mu.Unlock()
	e.notify(snap)
}

// SetRunning starts or pauses automatic advancement
func (e *Engine) SetRunning(running bool) {
	e.mu.Lock()
	e.running = running
	snap := e.snapshotLocked()
	e.mu.Unlock()
	e.notify(snap)
}

// Close stops the tick timer. The engine stays queryable and editable.
func (e *Engine) Close() {
	e.timerMu.Lock()
	defer e.timerMu.Unlock()

	e.closed = true
	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}
}

// Grid returns a copy of the current generation
func (e *Engine) Grid() *model.Grid {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.grid.Clone()
}

func (e *Engine) Generation() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.generation
}

func (e *Engine) Running() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.running
}

func (e *Engine) Columns() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.grid.GetColumns()
}

func (e *Engine) Rows() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.grid.GetRows()
}

func (e *Engine) TickInterval() time.Duration {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.tickInterval
}

// ActiveTimers reports how many tick goroutines are running; at most 1
func (e *Engine) ActiveTimers() int {
	return int(e.activeTimers.Load())
}

// Snapshot returns the whole observable state taken at a single instant
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

func (e *Engine) snapshotLocked() Snapshot {
	return Snapshot{
		Grid:         e.grid.Clone(),
		Columns:      e.grid.GetColumns(),
		Rows:         e.grid.GetRows(),
		Generation:   e.generation,
		Running:      e.running,
		TickInterval: e.tickInterval,
		Population:   e.grid.CountLivingCells(),
		Stagnant:     e.stagnant,
	}
}

func (e *Engine) forgetHistory() {
	e.history = e.history[:0]
	e.stagnant = false
}

func (e *Engine) notify(s Snapshot) {
	if e.onChange != nil {
		e.onChange(s)
	}
}
