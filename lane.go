package conveyor

import "golang.org/x/exp/slices"

const (
	// laneLength is the number of discrete positions on a lane; the exit
	// edge sits at laneLength-1.
	laneLength = 256
	// minGap is the minimum allowed distance between two occupied slots on
	// the same lane.
	minGap = 64
	// laneCapacity is the hard maximum number of items a single lane can
	// hold. A 256-position lane with a 64-unit minimum gap cannot hold more
	// than 5 items regardless, so this is a physical limit, not a tunable.
	laneCapacity = 5
	// exitPosition is the last valid in-lane position (the exit edge).
	exitPosition = laneLength - 1
)

// slot is a single occupancy record within a Lane's fixed-capacity storage.
// A zero Item means the slot is empty.
type slot struct {
	item Item
	pos  uint32
}

// Transfer describes an item that ran off a Lane's exit edge during Advance,
// along with the position it should land at on the successor lane.
type Transfer struct {
	Item Item
	Pos  uint32
}

// Lane is a single belt lane: a fixed-capacity, ordered sequence of items
// advancing at a constant speed, optionally handing items off to a successor
// lane when they run off the exit edge.
//
// Lane is not safe for concurrent use; the World that owns it is responsible
// for serializing access during a tick.
type Lane struct {
	speed     Speed
	slots     [laneCapacity]slot
	successor *Coordinate
}

// NewLane constructs an empty lane of the given speed class, optionally
// handing off to successor (pass nil for a terminal lane).
func NewLane(speed Speed, successor *Coordinate) *Lane {
	speed.PositionsPerTick() // panics on an invalid speed class
	l := &Lane{speed: speed}
	if successor != nil {
		c := *successor
		l.successor = &c
	}
	return l
}

// Speed returns the lane's belt speed class.
func (l *Lane) Speed() Speed {
	return l.speed
}

// Successor returns the coordinate of the lane that receives items running
// off this lane's exit edge, and whether one is configured.
func (l *Lane) Successor() (Coordinate, bool) {
	if l.successor == nil {
		return Coordinate{}, false
	}
	return *l.successor, true
}

// Items returns a snapshot of the lane's occupied (item, position) pairs,
// ordered ascending by position (entry to exit). It allocates; callers on a
// hot path should prefer a dedicated query if one becomes necessary.
func (l *Lane) Items() []Transfer {
	out := make([]Transfer, 0, laneCapacity)
	for _, s := range l.slots {
		if s.item.Valid() {
			out = append(out, Transfer{Item: s.item, Pos: s.pos})
		}
	}
	slices.SortFunc(out, func(a, b Transfer) int {
		switch {
		case a.Pos < b.Pos:
			return -1
		case a.Pos > b.Pos:
			return 1
		default:
			return 0
		}
	})
	return out
}

// resolved tracks the front-to-back advance computation for a single
// occupied slot: its storage index, its position before this tick, and its
// candidate position after this tick (possibly clamped to exitPosition for
// spacing purposes, per step 4 of the advance algorithm).
type resolved struct {
	index      int
	current    uint32
	candidate  uint32
	spacingPos uint32
}

// Advance moves every occupied slot forward by the lane's speed, honoring
// the minimum gap against the item ahead, and returns the items that ran off
// the exit edge (already removed from the lane) along with their landing
// position on a successor lane.
//
// Items are resolved front-to-back (descending current position first) so
// that a trailing item can compact against its leader's *post-advance*
// position within the same tick.
func (l *Lane) Advance() []Transfer {
	type occupied struct {
		index int
		pos   uint32
	}

	var items []occupied
	for i, s := range l.slots {
		if s.item.Valid() {
			items = append(items, occupied{index: i, pos: s.pos})
		}
	}
	if len(items) == 0 {
		return nil
	}

	slices.SortFunc(items, func(a, b occupied) int {
		switch {
		case a.pos > b.pos:
			return -1
		case a.pos < b.pos:
			return 1
		default:
			return 0
		}
	})

	speed := l.speed.PositionsPerTick()
	hasSuccessor := l.successor != nil

	resolvedItems := make([]resolved, 0, len(items))
	for _, it := range items {
		desired := it.pos + speed

		for _, ahead := range resolvedItems {
			if ahead.spacingPos > it.pos {
				if desired+minGap > ahead.spacingPos {
					maxForward := uint32(0)
					if ahead.spacingPos > minGap {
						maxForward = ahead.spacingPos - minGap
					}
					desired = maxForward
				}
			}
		}

		// guard: an item never moves backward, even if compaction math
		// above would otherwise suggest it.
		if desired < it.pos {
			desired = it.pos
		}

		spacingPos := desired
		if spacingPos > exitPosition && !hasSuccessor {
			spacingPos = exitPosition
		}

		resolvedItems = append(resolvedItems, resolved{
			index:      it.index,
			current:    it.pos,
			candidate:  desired,
			spacingPos: spacingPos,
		})
	}

	var transfers []Transfer
	for _, r := range resolvedItems {
		switch {
		case r.candidate > exitPosition && hasSuccessor:
			transfers = append(transfers, Transfer{
				Item: l.slots[r.index].item,
				Pos:  r.candidate - laneLength,
			})
			l.slots[r.index] = slot{}
		case r.candidate > exitPosition:
			l.slots[r.index].pos = exitPosition
		default:
			l.slots[r.index].pos = r.candidate
		}
	}

	return transfers
}

// Accept attempts to place item at (or just past) targetPosition. It returns
// true iff the item was placed. targetPosition greater than the exit edge is
// clamped to it first.
func (l *Lane) Accept(item Item, targetPosition uint32) bool {
	adjusted := clampOrdered(targetPosition, 0, uint32(exitPosition))

	for _, s := range l.slots {
		if !s.item.Valid() {
			continue
		}
		if s.pos <= adjusted && adjusted-s.pos < minGap {
			adjusted = s.pos + minGap
		}
	}

	if adjusted > exitPosition {
		return false
	}

	for i, s := range l.slots {
		if !s.item.Valid() {
			l.slots[i] = slot{item: item, pos: adjusted}
			return true
		}
	}
	return false
}
