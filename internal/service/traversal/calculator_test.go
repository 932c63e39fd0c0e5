package traversal

import (
	"math/rand"
	"testing"
	"time"
)

func TestCalculator_Compute_ReferenceValues(t *testing.T) {
	// fieldLength=800, extent=100, clearance=0.5, rate=40:
	// distance = 800 + 100 + 50 = 950, traversal = 950/40 s = 23.75 s.
	calc := NewCalculator(800, 0.5, 0, 0, 0, rand.New(rand.NewSource(1)))

	timing := calc.Compute(100, 40)

	if timing.TravelDistance != 950 {
		t.Errorf("TravelDistance = %v, want 950", timing.TravelDistance)
	}
	if timing.Traversal != 23750*time.Millisecond {
		t.Errorf("Traversal = %v, want 23.75s", timing.Traversal)
	}
}

func TestCalculator_Compute_DestroyBufferAdded(t *testing.T) {
	calc := NewCalculator(800, 0.5, 250*time.Millisecond, 0, 0, rand.New(rand.NewSource(1)))

	timing := calc.Compute(100, 40)

	want := timing.Traversal + 250*time.Millisecond
	if timing.DestroyAfter != want {
		t.Errorf("DestroyAfter = %v, want %v", timing.DestroyAfter, want)
	}
}

func TestCalculator_Compute_LaneReuseBeforeExpiry(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	calc := NewCalculator(800, 1.5, 250*time.Millisecond, 1200*time.Millisecond, 3000*time.Millisecond, rng)

	rates := []float64{38, 40, 42}
	for extent := 20.0; extent <= 600; extent += 20 {
		for _, rate := range rates {
			timing := calc.Compute(extent, rate)
			if timing.LaneReuse >= timing.Traversal {
				t.Fatalf("extent=%v rate=%v: LaneReuse %v >= Traversal %v", extent, rate, timing.LaneReuse, timing.Traversal)
			}
			if timing.LaneReuse < 0 {
				t.Fatalf("extent=%v rate=%v: negative LaneReuse %v", extent, rate, timing.LaneReuse)
			}
		}
	}
}

func TestCalculator_Compute_ReuseClampedUnderTraversal(t *testing.T) {
	// Tiny field and a huge gap force the clamp path.
	calc := NewCalculator(1, 0, 0, time.Hour, time.Hour, rand.New(rand.NewSource(1)))

	timing := calc.Compute(1, 1000)

	if timing.LaneReuse >= timing.Traversal {
		t.Errorf("LaneReuse = %v not clamped below Traversal = %v", timing.LaneReuse, timing.Traversal)
	}
}

func TestCalculator_Compute_GapWithinBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	minGap := 1200 * time.Millisecond
	maxGap := 3000 * time.Millisecond
	calc := NewCalculator(8000, 0.5, 0, minGap, maxGap, rng)

	for i := 0; i < 100; i++ {
		timing := calc.Compute(100, 40)
		entry := 2500 * time.Millisecond // 100/40 s
		gap := timing.LaneReuse - entry
		if gap < minGap || gap >= maxGap {
			t.Fatalf("draw %d: gap = %v, want in [%v, %v)", i, gap, minGap, maxGap)
		}
	}
}
