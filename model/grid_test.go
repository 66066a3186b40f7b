package model

import (
	"math/rand/v2"
	"testing"

	"github.com/sheikhrachel/go-gol-engine/rules"
)

func gridWith(columns, rows int, alive ...[2]int) *Grid {
	g := Initialize(columns, rows)
	for _, c := range alive {
		g.Set(c[0], c[1], rules.Alive)
	}
	return g
}

func assertAlive(t *testing.T, g *Grid, want ...[2]int) {
	t.Helper()
	expected := make(map[[2]int]bool, len(want))
	for _, c := range want {
		expected[c] = true
	}
	for row := range g.GetRows() {
		for column := range g.GetColumns() {
			alive := g.Get(column, row) == rules.Alive
			if alive != expected[[2]int{column, row}] {
				t.Fatalf("cell (%d,%d) alive=%v, expected %v", column, row, alive, !alive)
			}
		}
	}
}

func TestInitialize(t *testing.T) {
	g := Initialize(7, 4)
	if g.GetColumns() != 7 || g.GetRows() != 4 {
		t.Fatalf("got %dx%d, want 7x4", g.GetColumns(), g.GetRows())
	}
	if n := g.CountLivingCells(); n != 0 {
		t.Fatalf("new grid has %d living cells", n)
	}
}

func TestCountNeighborsBoundary(t *testing.T) {
	full := Initialize(3, 3)
	for row := range 3 {
		for column := range 3 {
			full.Set(column, row, rules.Alive)
		}
	}

	tests := []struct {
		name        string
		column, row int
		want        int
	}{
		{"corner", 0, 0, 3},
		{"edge", 1, 0, 5},
		{"center", 1, 1, 8},
		{"far corner", 2, 2, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := full.CountNeighbors(tt.column, tt.row); got != tt.want {
				t.Fatalf("CountNeighbors(%d,%d) = %d, want %d", tt.column, tt.row, got, tt.want)
			}
		})
	}
}

func TestNextCellStateInterior(t *testing.T) {
	// fill neighbors of (2,2) in offset order
	for _, state := range []rules.CellState{rules.Alive, rules.Dead} {
		for n := 0; n <= 8; n++ {
			g := Initialize(5, 5)
			g.Set(2, 2, state)
			for _, off := range neighborOffsets[:n] {
				g.Set(2+off[0], 2+off[1], rules.Alive)
			}
			want := rules.ApplyConwayRules(n, state)
			if got := NextCellState(g, 2, 2); got != want {
				t.Errorf("%v cell with %d neighbors: got %v, want %v", state, n, got, want)
			}
		}
	}
}

func TestNextCellStateIsPure(t *testing.T) {
	g := gridWith(4, 4, [2]int{0, 0}, [2]int{1, 0}, [2]int{0, 1})
	before := g.Clone()
	first := NextCellState(g, 1, 1)
	second := NextCellState(g, 1, 1)
	if first != second {
		t.Fatalf("NextCellState not deterministic: %v then %v", first, second)
	}
	if first != rules.Alive {
		t.Fatalf("expected birth at (1,1)")
	}
	if !g.Equal(before) {
		t.Fatal("NextCellState mutated its grid")
	}
}

func TestOffGridNeighborsAreDead(t *testing.T) {
	// two live cells on the corner would need a third off-grid neighbor to give birth at (0,0)
	g := gridWith(3, 3, [2]int{1, 0}, [2]int{0, 1})
	if got := NextCellState(g, 0, 0); got != rules.Dead {
		t.Fatalf("corner cell born with only two on-grid neighbors")
	}
}

func TestBlinker(t *testing.T) {
	g := Initialize(5, 5)
	g.Stamp(Blinker, 2, 1)
	assertAlive(t, g, [2]int{2, 1}, [2]int{2, 2}, [2]int{2, 3})

	g = g.NextGeneration(nil)
	assertAlive(t, g, [2]int{1, 2}, [2]int{2, 2}, [2]int{3, 2})

	g = g.NextGeneration(nil)
	assertAlive(t, g, [2]int{2, 1}, [2]int{2, 2}, [2]int{2, 3})
}

func TestBlockIsStill(t *testing.T) {
	g := Initialize(6, 6)
	g.Stamp(Block, 2, 2)
	start := g.Clone()
	for range 10 {
		g = g.NextGeneration(nil)
	}
	if !g.Equal(start) {
		t.Fatal("block changed")
	}
}

func TestIsolatedCellDies(t *testing.T) {
	g := gridWith(5, 5, [2]int{2, 2})
	if n := g.NextGeneration(nil).CountLivingCells(); n != 0 {
		t.Fatalf("isolated cell left %d living cells", n)
	}
}

func TestNextGenerationDoesNotMutateSource(t *testing.T) {
	g := Initialize(5, 5)
	g.Stamp(Blinker, 2, 1)
	before := g.Clone()
	_ = g.NextGeneration(nil)
	if !g.Equal(before) {
		t.Fatal("NextGeneration mutated the current grid")
	}
}

func TestParallelMatchesSequential(t *testing.T) {
	g := Initialize(31, 29)
	g.Randomize(rand.New(rand.NewPCG(42, 0)))
	pool := NewGridPool()

	for gen := range 20 {
		seq := g.NextGeneration(nil)
		par := g.NextGenerationParallel(pool)
		if !seq.Equal(par) {
			t.Fatalf("generation %d: parallel result differs", gen)
		}
		GridToPool(par, pool)
		g = seq
	}
}

func TestToggle(t *testing.T) {
	g := Initialize(3, 3)
	if !g.Toggle(1, 2) || g.Get(1, 2) != rules.Alive {
		t.Fatal("toggle did not revive the cell")
	}
	if g.CountLivingCells() != 1 {
		t.Fatal("toggle touched more than one cell")
	}
	if g.Toggle(3, 0) || g.Toggle(-1, 0) {
		t.Fatal("toggle accepted an off-grid position")
	}
	g.Toggle(1, 2)
	if g.CountLivingCells() != 0 {
		t.Fatal("second toggle did not kill the cell")
	}
}

func TestRandomizeDensity(t *testing.T) {
	g := Initialize(100, 100)
	g.Randomize(rand.New(rand.NewPCG(7, 7)))
	density := float64(g.CountLivingCells()) / 10000
	if density < 0.30 || density > 0.37 {
		t.Fatalf("density %.3f, expected about 1/3", density)
	}
}

func TestPoolResetsGrids(t *testing.T) {
	pool := NewGridPool()
	g := gridWith(4, 4, [2]int{1, 1})
	GridToPool(g, pool)
	got := pool.Get(6, 2)
	if got.GetColumns() != 6 || got.GetRows() != 2 || got.CountLivingCells() != 0 {
		t.Fatal("pooled grid not reset")
	}
}

func TestGridHash(t *testing.T) {
	a := gridWith(4, 4, [2]int{1, 1})
	b := gridWith(4, 4, [2]int{1, 1})
	if a.GetGridHash() != b.GetGridHash() {
		t.Fatal("equal grids hash differently")
	}
	b.Toggle(0, 0)
	if a.GetGridHash() == b.GetGridHash() {
		t.Fatal("different grids hash equally")
	}
	if Initialize(2, 8).GetGridHash() == Initialize(4, 4).GetGridHash() {
		t.Fatal("shape not part of hash")
	}
}
