package conveyor

import "testing"

func TestSpeed_PositionsPerTick(t *testing.T) {
	cases := map[Speed]uint32{
		Regular: 8,
		Fast:    16,
		Express: 24,
		Turbo:   32,
	}
	for speed, want := range cases {
		if got := speed.PositionsPerTick(); got != want {
			t.Errorf("%s.PositionsPerTick() = %d, want %d", speed, got, want)
		}
	}
}

func TestSpeed_ItemsPerSecond(t *testing.T) {
	cases := map[Speed]float64{
		Regular: 7.5,
		Fast:    15.0,
		Express: 22.5,
		Turbo:   30.0,
	}
	for speed, want := range cases {
		if got := speed.ItemsPerSecond(); got != want {
			t.Errorf("%s.ItemsPerSecond() = %v, want %v", speed, got, want)
		}
	}
}

func TestSpeed_InvalidClass_Panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected PositionsPerTick to panic on an invalid speed class")
		}
	}()
	Speed(255).PositionsPerTick()
}

func TestNewLane_InvalidSpeed_Panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected NewLane to panic on an invalid speed class")
		}
	}()
	NewLane(Speed(0), nil)
}
