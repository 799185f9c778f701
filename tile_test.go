package conveyor

import "testing"

func TestNewTile_DefaultsToTerminalLanes(t *testing.T) {
	tile := NewTile(Coordinate{X: 0, Y: 0}, Regular)

	if _, ok := tile.Lane(Left).Successor(); ok {
		t.Fatal("expected left lane to have no successor by default")
	}
	if _, ok := tile.Lane(Right).Successor(); ok {
		t.Fatal("expected right lane to have no successor by default")
	}
}

func TestNewTile_WithSuccessors(t *testing.T) {
	leftSucc := Coordinate{X: 1, Y: 0}
	rightSucc := Coordinate{X: 0, Y: 1}

	tile := NewTile(Coordinate{X: 0, Y: 0}, Fast,
		WithLeftSuccessor(leftSucc),
		WithRightSuccessor(rightSucc))

	got, ok := tile.Lane(Left).Successor()
	if !ok || got != leftSucc {
		t.Fatalf("left successor = %+v, %v; want %+v, true", got, ok, leftSucc)
	}

	got, ok = tile.Lane(Right).Successor()
	if !ok || got != rightSucc {
		t.Fatalf("right successor = %+v, %v; want %+v, true", got, ok, rightSucc)
	}

	if tile.Lane(Left).Speed() != Fast || tile.Lane(Right).Speed() != Fast {
		t.Fatal("expected both lanes to inherit the tile's speed class")
	}
}

func TestSide_String(t *testing.T) {
	if Left.String() != "left" {
		t.Errorf("Left.String() = %q, want \"left\"", Left.String())
	}
	if Right.String() != "right" {
		t.Errorf("Right.String() = %q, want \"right\"", Right.String())
	}
}

func TestCoordinate_Neighbor(t *testing.T) {
	c := Coordinate{X: 5, Y: 5}
	cases := map[Direction]Coordinate{
		North: {X: 5, Y: 4},
		South: {X: 5, Y: 6},
		East:  {X: 6, Y: 5},
		West:  {X: 4, Y: 5},
	}
	for dir, want := range cases {
		if got := c.Neighbor(dir); got != want {
			t.Errorf("Neighbor(%v) = %+v, want %+v", dir, got, want)
		}
	}
}
