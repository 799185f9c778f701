package conveyor

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/exp/slices"
)

// DropPolicy governs what happens to an item emitted by a lane's Advance
// when both lanes of its successor tile refuse Accept during phase B of a
// tick.
type DropPolicy int

const (
	// DropPolicyDiscard silently loses the item. This matches the
	// historically observed behavior of the original simulation.
	DropPolicyDiscard DropPolicy = iota
	// DropPolicyPin leaves the item parked at the source lane's exit
	// position (255) instead of dropping it, so a future tick may retry
	// delivery once the junction drains.
	DropPolicyPin
)

// transferRecord is an in-flight item collected during phase A of a tick,
// tagged with where it came from (for DropPolicyPin) and where it is headed.
type transferRecord struct {
	sourceCoord Coordinate
	sourceSide  Side
	target      Coordinate
	item        Item
	carryPos    uint32
}

// Stats summarizes one World.Tick invocation.
type Stats struct {
	Tiles     int
	Transfers int
	Delivered int
	Dropped   int
}

// Option configures a World at construction time.
type Option interface {
	applyWorld(*worldOptions)
}

type worldOptions struct {
	logger     zerolog.Logger
	dropPolicy DropPolicy
}

type worldOptionFunc func(*worldOptions)

func (f worldOptionFunc) applyWorld(o *worldOptions) { f(o) }

// WithLogger attaches a structured logger to the World. Unset, the world
// logs nothing (zerolog.Nop()).
func WithLogger(logger zerolog.Logger) Option {
	return worldOptionFunc(func(o *worldOptions) { o.logger = logger })
}

// WithDropPolicy sets the World's DropPolicy for items that cannot be
// delivered at a saturated junction. Defaults to DropPolicyDiscard.
func WithDropPolicy(p DropPolicy) Option {
	return worldOptionFunc(func(o *worldOptions) { o.dropPolicy = p })
}

// World maps grid coordinates to tiles and drives the global, two-phase
// tick. It guards its coordinate map with a mutex so that placement
// (Insert) and lookup (LaneAt) calls issued by a host between ticks cannot
// race each other; the tick itself still assumes exclusive access for its
// duration, per the package's single-threaded cooperative scheduling model.
type World struct {
	mu         sync.RWMutex
	tiles      map[Coordinate]*Tile
	logger     zerolog.Logger
	dropPolicy DropPolicy
	tick       uint64
	cumulative Stats
}

// NewWorld constructs an empty world.
func NewWorld(opts ...Option) *World {
	o := worldOptions{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt.applyWorld(&o)
	}
	return &World{
		tiles:      make(map[Coordinate]*Tile),
		logger:     o.logger,
		dropPolicy: o.dropPolicy,
	}
}

// Insert places tile at its own coordinate, replacing any existing tile
// there.
func (w *World) Insert(tile *Tile) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.tiles[tile.Coord] = tile
}

// Tile returns the tile at coord, if any.
func (w *World) Tile(coord Coordinate) (*Tile, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	t, ok := w.tiles[coord]
	return t, ok
}

// LaneAt returns the lane on the given side of the tile at coord, if a tile
// is present there.
func (w *World) LaneAt(coord Coordinate, side Side) (*Lane, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	t, ok := w.tiles[coord]
	if !ok {
		return nil, false
	}
	return t.Lane(side), true
}

// Stats returns the Transfers, Delivered and Dropped totals accumulated
// across every Tick call so far; Tiles holds the tile count seen by the most
// recent Tick.
func (w *World) Stats() Stats {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.cumulative
}

// Tick advances the entire world by one step, in two phases: phase A asks
// every lane to advance against the tick's starting state and collects the
// resulting transfers; phase B delivers each collected transfer to its
// successor tile, trying the left lane first and then the right.
//
// ctx is accepted so a host can attach tick-scoped tracing/deadline context
// to the surrounding call; the tick body does not read it: it never checks
// ctx.Err() and does not pass it to the logger, so the tick runs to
// completion regardless.
func (w *World) Tick(ctx context.Context) Stats {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.tick++
	logger := w.logger.With().Uint64("tick", w.tick).Logger()

	var transfers []transferRecord

	// Phase A: advance. Every lane decides its own motion against the same
	// starting state; iteration order over tiles is arbitrary and does not
	// affect any single lane's motion.
	for coord, t := range w.tiles {
		for _, side := range [...]Side{Left, Right} {
			lane := t.Lane(side)
			successor, ok := lane.Successor()
			if !ok {
				lane.Advance()
				continue
			}
			for _, xfer := range lane.Advance() {
				transfers = append(transfers, transferRecord{
					sourceCoord: coord,
					sourceSide:  side,
					target:      successor,
					item:        xfer.Item,
					carryPos:    xfer.Pos,
				})
			}
		}
	}

	// Deterministic ordering for delivery and for log/stat reproducibility;
	// the spec leaves delivery order across contested convergence points
	// undefined but deterministic, so we fix one here rather than relying
	// on Go's randomized map iteration order.
	slices.SortFunc(transfers, func(a, b transferRecord) int {
		if c := coordCompare(a.target, b.target); c != 0 {
			return c
		}
		if a.sourceSide != b.sourceSide {
			return int(a.sourceSide) - int(b.sourceSide)
		}
		switch {
		case a.item < b.item:
			return -1
		case a.item > b.item:
			return 1
		default:
			return 0
		}
	})

	stats := Stats{
		Tiles:     len(w.tiles),
		Transfers: len(transfers),
	}

	// Phase B: deliver. Left lane first, then right; both refusing drops
	// (or pins) the item per the world's DropPolicy.
	for _, tr := range transfers {
		target, ok := w.tiles[tr.target]
		if !ok {
			logger.Debug().
				Int32("target_x", tr.target.X).
				Int32("target_y", tr.target.Y).
				Msg("conveyor: transfer target tile absent, item dropped")
			w.handleDrop(tr, &stats)
			continue
		}

		if target.Lane(Left).Accept(tr.item, tr.carryPos) {
			stats.Delivered++
			continue
		}
		if target.Lane(Right).Accept(tr.item, tr.carryPos) {
			stats.Delivered++
			continue
		}

		logger.Warn().
			Int32("target_x", tr.target.X).
			Int32("target_y", tr.target.Y).
			Str("lane", tr.sourceSide.String()).
			Uint64("item", uint64(tr.item)).
			Msg("conveyor: both successor lanes refused item")
		w.handleDrop(tr, &stats)
	}

	logger.Debug().
		Int("tiles", stats.Tiles).
		Int("transfers", stats.Transfers).
		Int("delivered", stats.Delivered).
		Int("dropped", stats.Dropped).
		Msg("conveyor: tick complete")

	w.cumulative.Tiles = stats.Tiles
	w.cumulative.Transfers += stats.Transfers
	w.cumulative.Delivered += stats.Delivered
	w.cumulative.Dropped += stats.Dropped

	return stats
}

// handleDrop applies the World's DropPolicy to a transfer that could not be
// delivered.
func (w *World) handleDrop(tr transferRecord, stats *Stats) {
	stats.Dropped++
	if w.dropPolicy != DropPolicyPin {
		return
	}
	if source, ok := w.tiles[tr.sourceCoord]; ok {
		source.Lane(tr.sourceSide).Accept(tr.item, exitPosition)
	}
}

func coordCompare(a, b Coordinate) int {
	if a.X != b.X {
		if a.X < b.X {
			return -1
		}
		return 1
	}
	switch {
	case a.Y < b.Y:
		return -1
	case a.Y > b.Y:
		return 1
	default:
		return 0
	}
}
