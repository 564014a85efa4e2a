package storage

import (
	"image"
	"image/color"
	"testing"
)

func TestMaskFromImage_LumaThreshold(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 4, 1))
	img.SetGray(0, 0, color.Gray{Y: 255}) // sample
	img.SetGray(1, 0, color.Gray{Y: 128}) // just above the threshold
	img.SetGray(2, 0, color.Gray{Y: 127}) // exactly at the threshold: background
	img.SetGray(3, 0, color.Gray{Y: 0})   // background

	mask, err := MaskFromImage(img, 4, 1)
	if err != nil {
		t.Fatalf("MaskFromImage failed: %v", err)
	}

	if !mask.At(0, 0) || !mask.At(1, 0) {
		t.Error("Expected bright pixels to be sample")
	}
	if mask.At(2, 0) || mask.At(3, 0) {
		t.Error("Expected dark pixels to be background")
	}
	if mask.SampleCount() != 2 {
		t.Errorf("Expected 2 sample pixels, got %d", mask.SampleCount())
	}
}

func TestMaskFromImage_ColorMask(t *testing.T) {
	// Colored masks are thresholded by luma, not per channel.
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.SetRGBA(0, 0, color.RGBA{R: 255, G: 255, B: 255, A: 255}) // luma 255
	img.SetRGBA(1, 0, color.RGBA{R: 255, G: 0, B: 0, A: 255})     // luma ~76

	mask, err := MaskFromImage(img, 2, 1)
	if err != nil {
		t.Fatalf("MaskFromImage failed: %v", err)
	}
	if !mask.At(0, 0) {
		t.Error("Expected the white pixel to be sample")
	}
	if mask.At(1, 0) {
		t.Error("Expected the dim red pixel to be background")
	}
}

func TestMaskFromImage_DimensionMismatch(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 4, 4))
	if _, err := MaskFromImage(img, 8, 8); err == nil {
		t.Fatal("Expected an error for mismatched dimensions")
	}
}

func TestMaskFromImage_NonZeroOrigin(t *testing.T) {
	// Decoders may return images with shifted bounds; the mask indexes from
	// the bounds origin.
	img := image.NewGray(image.Rect(2, 3, 6, 7))
	img.SetGray(2, 3, color.Gray{Y: 255})

	mask, err := MaskFromImage(img, 4, 4)
	if err != nil {
		t.Fatalf("MaskFromImage failed: %v", err)
	}
	if !mask.At(0, 0) {
		t.Error("Expected the origin pixel to map to mask (0, 0)")
	}
	if mask.SampleCount() != 1 {
		t.Errorf("Expected a single sample pixel, got %d", mask.SampleCount())
	}
}
