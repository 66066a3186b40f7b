package rules

import "testing"

func TestApplyConwayRules(t *testing.T) {
	for n := 0; n <= 8; n++ {
		wantAlive := Dead
		if n == 2 || n == 3 {
			wantAlive = Alive
		}
		if got := ApplyConwayRules(n, Alive); got != wantAlive {
			t.Errorf("alive cell with %d neighbors: got %v, want %v", n, got, wantAlive)
		}

		wantDead := Dead
		if n == 3 {
			wantDead = Alive
		}
		if got := ApplyConwayRules(n, Dead); got != wantDead {
			t.Errorf("dead cell with %d neighbors: got %v, want %v", n, got, wantDead)
		}
	}
}

func TestCellStateFlip(t *testing.T) {
	if Alive.Flip() != Dead || Dead.Flip() != Alive {
		t.Fatal("Flip did not invert the state")
	}
	if Alive.String() != "alive" || Dead.String() != "dead" {
		t.Fatalf("unexpected names %q %q", Alive, Dead)
	}
}
