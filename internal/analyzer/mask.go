package analyzer

import (
	"image"
	"math/bits"
)

// Mask is the binary sample/background flag grid supplied by the external
// segmentation collaborator. Bits are packed row-major; set means sample.
type Mask struct {
	Width  int
	Height int
	words  []uint64
}

// NewMask allocates an all-background mask.
func NewMask(width, height int) *Mask {
	return &Mask{
		Width:  width,
		Height: height,
		words:  make([]uint64, (width*height+63)/64),
	}
}

// Set marks the pixel at (x, y) as sample or background.
func (m *Mask) Set(x, y int, sample bool) {
	i := y*m.Width + x
	if sample {
		m.words[i>>6] |= 1 << uint(i&63)
	} else {
		m.words[i>>6] &^= 1 << uint(i&63)
	}
}

// At reports whether the pixel at (x, y) is a sample pixel.
func (m *Mask) At(x, y int) bool {
	i := y*m.Width + x
	return m.words[i>>6]&(1<<uint(i&63)) != 0
}

// SampleCount returns the number of sample pixels.
func (m *Mask) SampleCount() int {
	n := 0
	for _, w := range m.words {
		n += bits.OnesCount64(w)
	}
	return n
}

// Restrict clears every sample bit outside the given region of interest.
func (m *Mask) Restrict(roi image.Rectangle) {
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			if !image.Pt(x, y).In(roi) && m.At(x, y) {
				m.Set(x, y, false)
			}
		}
	}
}

// bitset is a flat visited-marker used by the particle segmenter.
type bitset []uint64

func newBitset(n int) bitset {
	return make(bitset, (n+63)/64)
}

func (b bitset) set(i int) {
	b[i>>6] |= 1 << uint(i&63)
}

func (b bitset) get(i int) bool {
	return b[i>>6]&(1<<uint(i&63)) != 0
}
