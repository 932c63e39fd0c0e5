package lanepool

import (
	"math/rand"
	"testing"
	"time"

	"github.com/finchboard/tickerlane/internal/config"
	"github.com/finchboard/tickerlane/internal/domain"
)

func freeLanes(ids ...int) []domain.Lane {
	lanes := make([]domain.Lane, 0, len(ids))
	for _, id := range ids {
		lanes = append(lanes, domain.NewLane(id, 40))
	}
	return lanes
}

func TestRandomPicker_CoversAllLanes(t *testing.T) {
	picker := NewPicker(config.LanePickerRandom, rand.New(rand.NewSource(42)))
	free := freeLanes(0, 1, 2)

	picked := make(map[int]int)
	for i := 0; i < 300; i++ {
		idx := picker.Pick(free)
		if idx < 0 || idx >= len(free) {
			t.Fatalf("Pick() = %d, out of range", idx)
		}
		picked[free[idx].ID]++
	}

	for _, id := range []int{0, 1, 2} {
		// A uniform pick over 3 lanes lands on each roughly 100 times;
		// anything below 50 over 300 draws signals a broken distribution.
		if picked[id] < 50 {
			t.Errorf("lane %d picked %d/300 times, suspiciously rare", id, picked[id])
		}
	}
}

func TestRandomPicker_SeedDeterministic(t *testing.T) {
	free := freeLanes(0, 1, 2, 3)

	seq := func(seed int64) []int {
		picker := NewPicker(config.LanePickerRandom, rand.New(rand.NewSource(seed)))
		out := make([]int, 0, 16)
		for i := 0; i < 16; i++ {
			out = append(out, picker.Pick(free))
		}
		return out
	}

	a, b := seq(7), seq(7)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("same seed diverged at draw %d: %v vs %v", i, a, b)
		}
	}
}

func TestRoundRobinPicker_CyclesLaneIDs(t *testing.T) {
	picker := NewPicker(config.LanePickerRoundRobin, nil)
	free := freeLanes(0, 1, 2)

	var got []int
	for i := 0; i < 6; i++ {
		got = append(got, free[picker.Pick(free)].ID)
	}

	want := []int{0, 1, 2, 0, 1, 2}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("round robin order = %v, want %v", got, want)
		}
	}
}

func TestRoundRobinPicker_SkipsBusyGaps(t *testing.T) {
	picker := NewPicker(config.LanePickerRoundRobin, nil)

	if id := freeLanes(0, 1, 2)[picker.Pick(freeLanes(0, 1, 2))].ID; id != 0 {
		t.Fatalf("first pick = %d, want 0", id)
	}

	// Lane 1 is busy; the next free lane after 0 is 2.
	free := freeLanes(0, 2)
	if id := free[picker.Pick(free)].ID; id != 2 {
		t.Errorf("pick with gap = %d, want 2", id)
	}
}

func TestLeastRecentPicker_PrefersLongestIdle(t *testing.T) {
	picker := NewPicker(config.LanePickerLeastRecent, nil)

	now := time.Now()
	free := freeLanes(0, 1, 2)
	free[0].FreeAt = now.Add(-time.Second)
	free[1].FreeAt = now.Add(-time.Minute)
	free[2].FreeAt = now

	if idx := picker.Pick(free); free[idx].ID != 1 {
		t.Errorf("Pick() = lane %d, want lane 1 (longest idle)", free[idx].ID)
	}
}
