package analyzer

import "testing"

// sampleGrid builds a label grid with the given pixels marked as sample.
func sampleGrid(w, h int, pts [][2]int) *LabelGrid {
	grid := NewLabelGrid(w, h)
	for _, p := range pts {
		grid.At(p[0], p[1]).Sample = true
	}
	return grid
}

func blockPoints(x0, y0, x1, y1 int) [][2]int {
	var pts [][2]int
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			pts = append(pts, [2]int{x, y})
		}
	}
	return pts
}

func TestSegment_SingleBlock(t *testing.T) {
	grid := sampleGrid(10, 10, blockPoints(2, 2, 7, 7))
	particles := newSegmenter(grid, 1, 20).segment()

	if len(particles) != 1 {
		t.Fatalf("Expected 1 particle, got %d", len(particles))
	}
	p := particles[0]
	if p.count != 25 {
		t.Errorf("Expected area 25, got %d", p.count)
	}
	if p.minX != 2 || p.minY != 2 || p.maxX != 6 || p.maxY != 6 {
		t.Errorf("Unexpected bounds: (%d,%d)-(%d,%d)", p.minX, p.minY, p.maxX, p.maxY)
	}
	// Only the 3x3 interior is surrounded by sample pixels on all 8 sides.
	if p.borderPixels != 16 {
		t.Errorf("Expected 16 border pixels, got %d", p.borderPixels)
	}
}

func TestSegment_DiagonalTouchMerges(t *testing.T) {
	// Two pixels touching only at a corner belong to one particle under
	// 8-connectivity.
	grid := sampleGrid(4, 4, [][2]int{{1, 1}, {2, 2}})
	particles := newSegmenter(grid, 1, 1).segment()

	if len(particles) != 1 {
		t.Fatalf("Expected 1 merged particle, got %d", len(particles))
	}
	if particles[0].count != 2 {
		t.Errorf("Expected area 2, got %d", particles[0].count)
	}
}

func TestSegment_SeparatedBlocksSplit(t *testing.T) {
	pts := append(blockPoints(0, 0, 2, 2), blockPoints(0, 4, 2, 6)...)
	grid := sampleGrid(6, 6, pts)
	particles := newSegmenter(grid, 1, 1).segment()

	if len(particles) != 2 {
		t.Fatalf("Expected 2 particles across the background gap, got %d", len(particles))
	}
	if particles[0].count != 4 || particles[1].count != 4 {
		t.Errorf("Expected areas 4 and 4, got %d and %d", particles[0].count, particles[1].count)
	}
}

func TestSegment_DiscardsBelowMinimumSize(t *testing.T) {
	grid := sampleGrid(10, 10, blockPoints(0, 0, 3, 3))
	particles := newSegmenter(grid, 1, 20).segment()
	if len(particles) != 0 {
		t.Errorf("Expected the 9-pixel blob to be discarded, got %d particles", len(particles))
	}
}

func TestSegment_VotesAccumulate(t *testing.T) {
	grid := sampleGrid(4, 1, blockPoints(0, 0, 4, 1))
	grid.At(0, 0).Material = 0
	grid.At(0, 0).Confidence = 0.9
	grid.At(1, 0).Material = 0
	grid.At(1, 0).Confidence = 0.7
	grid.At(2, 0).Material = 1
	grid.At(2, 0).Confidence = 0.5
	// (3,0) stays indeterminate and must not vote.

	particles := newSegmenter(grid, 2, 1).segment()
	if len(particles) != 1 {
		t.Fatalf("Expected 1 particle, got %d", len(particles))
	}
	p := particles[0]
	if p.voteCounts[0] != 2 || p.voteCounts[1] != 1 {
		t.Errorf("Unexpected vote counts: %v", p.voteCounts)
	}
	if p.voteWeights[0] < 1.59 || p.voteWeights[0] > 1.61 {
		t.Errorf("Unexpected weight for material 0: %f", p.voteWeights[0])
	}
	if p.voteWeights[1] < 0.49 || p.voteWeights[1] > 0.51 {
		t.Errorf("Unexpected weight for material 1: %f", p.voteWeights[1])
	}
}

func TestMinParticleSize(t *testing.T) {
	testCases := []struct {
		w, h, want int
	}{
		{100, 100, 20},      // floor dominates small captures
		{1000, 1000, 20},    // exactly at the floor
		{5000, 2000, 200},   // area-proportional beyond the floor
		{10000, 10000, 2000},
	}
	for _, tc := range testCases {
		if got := minParticleSize(tc.w, tc.h); got != tc.want {
			t.Errorf("minParticleSize(%d, %d) = %d, want %d", tc.w, tc.h, got, tc.want)
		}
	}
}
