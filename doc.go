// Package conveyor simulates a grid of conveyor-belt tiles.
//
// A World maps grid coordinates to Tiles. Each Tile holds two independent
// Lanes (left and right), each of which carries a small, ordered sequence of
// opaque item handles that advance by a fixed number of positions every
// World.Tick, subject to a minimum inter-item gap. Items that run off a
// lane's far edge are handed to the successor lane named by that lane's
// configuration, in a two-phase tick that keeps per-tick travel capped at a
// single tile boundary.
//
// The package is a library, not a process: it has no I/O, no timers, and no
// goroutines of its own. Hosts drive it by calling World.Tick at whatever
// rate suits their own simulation loop.
package conveyor
