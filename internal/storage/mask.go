package storage

import (
	"fmt"
	"image"

	"go-mineral-analyzer/internal/analyzer"
)

// sampleLumaThreshold separates foreground from background in a decoded
// mask image: any pixel brighter than this is a sample pixel.
const sampleLumaThreshold = 127

// MaskFromImage converts a decoded mask image into the analyzer's packed
// binary mask. The mask must match the capture dimensions exactly.
func MaskFromImage(maskImg image.Image, width, height int) (*analyzer.Mask, error) {
	bounds := maskImg.Bounds()
	if bounds.Dx() != width || bounds.Dy() != height {
		return nil, fmt.Errorf("mask dimensions %dx%d do not match image %dx%d",
			bounds.Dx(), bounds.Dy(), width, height)
	}

	mask := analyzer.NewMask(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := maskImg.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			luma := 0.299*float64(r>>8) + 0.587*float64(g>>8) + 0.114*float64(b>>8)
			if luma > sampleLumaThreshold {
				mask.Set(x, y, true)
			}
		}
	}
	return mask, nil
}
