package analyzer

// particleFeatures is the transient accumulator for one connected component.
// It is consumed by the record builder and then discarded.
type particleFeatures struct {
	count                  int
	minX, minY, maxX, maxY int
	sumX, sumY             float64
	hueSum, satSum, valSum float64
	confSum, confSqSum     float64
	voteCounts             []int
	voteWeights            []float64
	borderPixels           int
}

// minParticleSize is the noise floor: components smaller than
// max(20, width*height/50000) pixels are discarded.
func minParticleSize(width, height int) int {
	n := width * height / 50000
	if n < 20 {
		n = 20
	}
	return n
}

// segmenter grows 8-connected regions over the completed label grid. It runs
// strictly after the classification pass; connectivity is based on
// sample-mask membership, not on matching material id, so a particle may
// span pixels of several classified materials.
type segmenter struct {
	grid       *LabelGrid
	catalogLen int
	minSize    int
	visited    bitset
	worklist   []int32
}

func newSegmenter(grid *LabelGrid, catalogLen, minSize int) *segmenter {
	return &segmenter{
		grid:       grid,
		catalogLen: catalogLen,
		minSize:    minSize,
		visited:    newBitset(grid.Width * grid.Height),
		worklist:   make([]int32, 0, 1024),
	}
}

// neighbor offsets for 8-connectivity, as (dx, dy) pairs.
var neighbors8 = [8][2]int{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

// segment returns the feature accumulators of every particle at or above the
// minimum size, in scan order of their seed pixels.
func (s *segmenter) segment() []particleFeatures {
	var particles []particleFeatures
	w, h := s.grid.Width, s.grid.Height

	for idx := 0; idx < w*h; idx++ {
		if s.visited.get(idx) || !s.grid.Cells[idx].Sample {
			continue
		}
		features := s.grow(idx, w, h)
		if features.count >= s.minSize {
			particles = append(particles, features)
		}
	}
	return particles
}

// grow runs breadth-first region growing from the seed index, accumulating
// shape, color and vote features.
func (s *segmenter) grow(seed, w, h int) particleFeatures {
	f := particleFeatures{
		minX: w, minY: h, maxX: -1, maxY: -1,
		voteCounts:  make([]int, s.catalogLen),
		voteWeights: make([]float64, s.catalogLen),
	}

	s.worklist = s.worklist[:0]
	s.worklist = append(s.worklist, int32(seed))
	s.visited.set(seed)

	for head := 0; head < len(s.worklist); head++ {
		idx := int(s.worklist[head])
		x, y := idx%w, idx/w
		cell := &s.grid.Cells[idx]

		f.count++
		f.sumX += float64(x)
		f.sumY += float64(y)
		if x < f.minX {
			f.minX = x
		}
		if y < f.minY {
			f.minY = y
		}
		if x > f.maxX {
			f.maxX = x
		}
		if y > f.maxY {
			f.maxY = y
		}
		f.hueSum += float64(cell.H)
		f.satSum += float64(cell.S)
		f.valSum += float64(cell.V)
		conf := float64(cell.Confidence)
		f.confSum += conf
		f.confSqSum += conf * conf
		if cell.Material != NoMaterial {
			f.voteCounts[cell.Material]++
			f.voteWeights[cell.Material] += conf
		}

		border := false
		for _, d := range neighbors8 {
			nx, ny := x+d[0], y+d[1]
			if nx < 0 || nx >= w || ny < 0 || ny >= h {
				border = true
				continue
			}
			nIdx := ny*w + nx
			if !s.grid.Cells[nIdx].Sample {
				border = true
				continue
			}
			if !s.visited.get(nIdx) {
				s.visited.set(nIdx)
				s.worklist = append(s.worklist, int32(nIdx))
			}
		}
		if border {
			f.borderPixels++
		}
	}
	return f
}
