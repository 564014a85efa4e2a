package analyzer

import (
	"context"
	"fmt"
	"image"
	"image/draw"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"go-mineral-analyzer/internal/catalog"
	"go-mineral-analyzer/pkg/colorspace"
	"go-mineral-analyzer/pkg/models"
	"go-mineral-analyzer/pkg/validation"
)

// coreAnalyzer implements SampleAnalyzer and orchestrates the classification
// fan-out, quality diagnostics, particle segmentation and aggregation.
type coreAnalyzer struct {
	pool      *WorkerPool
	catalog   *catalog.Catalog
	validator *validation.QualityValidator
	fuser     ScoreFuser
}

// NewSampleAnalyzer creates an analyzer bound to an immutable material
// catalog. The catalog is the only long-lived shared state and is read-only
// after construction.
func NewSampleAnalyzer(cat *catalog.Catalog, fuser ScoreFuser, maxWorkers int) (SampleAnalyzer, error) {
	if cat == nil || cat.Len() == 0 {
		return nil, fmt.Errorf("material catalog is empty")
	}
	if fuser == nil {
		fuser = NewPassthroughFuser()
	}
	pool := NewWorkerPool(maxWorkers)
	pool.Start()

	return &coreAnalyzer{
		pool:      pool,
		catalog:   cat,
		validator: validation.NewQualityValidator(),
		fuser:     fuser,
	}, nil
}

func (ca *coreAnalyzer) Analyze(ctx context.Context, img image.Image, mask *Mask, opts AnalysisOptions) (*models.AnalysisResult, error) {
	result, _, err := ca.AnalyzeGrid(ctx, img, mask, opts)
	return result, err
}

func (ca *coreAnalyzer) AnalyzeGrid(ctx context.Context, img image.Image, mask *Mask, opts AnalysisOptions) (*models.AnalysisResult, *LabelGrid, error) {
	start := time.Now()

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width == 0 || height == 0 {
		return nil, nil, fmt.Errorf("empty image")
	}
	if mask == nil || mask.Width != width || mask.Height != height {
		return nil, nil, fmt.Errorf("mask dimensions do not match image %dx%d", width, height)
	}

	// The caller's mask is read-only; clone before narrowing to the ROI.
	if opts.ROI != nil {
		clone := NewMask(width, height)
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				if mask.At(x, y) {
					clone.Set(x, y, true)
				}
			}
		}
		clone.Restrict(*opts.ROI)
		mask = clone
	}

	// Flatten to RGBA once so workers index pixels directly.
	rgba, ok := img.(*image.RGBA)
	if !ok || !bounds.Min.Eq(image.Point{}) {
		rgba = image.NewRGBA(image.Rect(0, 0, width, height))
		draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)
	}

	grid := NewLabelGrid(width, height)
	classifier := newPixelClassifier(ca.catalog, opts.Thresholds)

	// Data-parallel fan-out over row bands. Each worker owns a private
	// accumulator and writes only its assigned rows of the shared grid, so
	// no per-cell synchronization is needed; accumulators merge into the
	// shared totals once per band.
	workers := opts.MaxWorkers
	if workers <= 0 {
		workers = ca.pool.Workers()
	}
	if workers > height {
		workers = height
	}
	rowsPerBand := (height + workers - 1) / workers

	total := newDiagAccumulator(ca.catalog.Len())
	var mu sync.Mutex

	for band := 0; band < workers; band++ {
		startY := band * rowsPerBand
		endY := startY + rowsPerBand
		if endY > height {
			endY = height
		}
		ca.pool.Submit(func() {
			if ctx.Err() != nil {
				return
			}
			acc := ca.classifyBand(rgba, mask, grid, classifier, startY, endY)
			mu.Lock()
			total.merge(acc)
			mu.Unlock()
		})
	}
	ca.pool.Wait() // barrier: segmentation needs the fully-populated grid

	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	diagnostics, index := computeDiagnostics(total, width*height)
	status := ca.validator.StatusFor(index)

	minSize := opts.MinParticleSize
	if minSize <= 0 {
		minSize = minParticleSize(width, height)
	}
	seg := newSegmenter(grid, ca.catalog.Len(), minSize)
	features := seg.segment()

	particles := make([]models.ParticleRecord, 0, len(features))
	for _, f := range features {
		particles = append(particles, buildParticleRecord(f, ca.catalog, ca.fuser))
	}

	metals, crystals, gems := ca.materialResults(total)

	result := &models.AnalysisResult{
		ID:           uuid.NewString(),
		Timestamp:    start,
		QualityIndex: index,
		Status:       status,
		Diagnostics:  diagnostics,
		Metals:       metals,
		Crystals:     crystals,
		Gems:         gems,
		Particles:    particles,
	}
	result.Summary = ca.buildSummary(result)
	result.ProcessingTimeSec = time.Since(start).Seconds()

	return result, grid, nil
}

// classifyBand labels rows [startY, endY) and returns the band-private
// accumulator.
func (ca *coreAnalyzer) classifyBand(rgba *image.RGBA, mask *Mask, grid *LabelGrid, classifier *pixelClassifier, startY, endY int) *diagAccumulator {
	acc := newDiagAccumulator(ca.catalog.Len())
	width, height := grid.Width, grid.Height

	for y := startY; y < endY; y++ {
		for x := 0; x < width; x++ {
			cell := grid.At(x, y)
			if !mask.At(x, y) {
				// Background: cell keeps the zeroed NoMaterial state.
				continue
			}
			o := rgba.PixOffset(x, y)
			r, g, b := rgba.Pix[o], rgba.Pix[o+1], rgba.Pix[o+2]
			classifier.classify(r, g, b, cell)

			acc.samplePixels++
			if cell.Material != NoMaterial {
				acc.tallies[cell.Material].pixels++
				acc.tallies[cell.Material].scoreSum += float64(cell.Confidence)
			}

			luma := colorspace.Luma(r, g, b)
			if luma < clipLow || luma > clipHigh {
				acc.clippedPixels++
			}

			// Focus: 4-neighbor luma gradient over interior sample pixels.
			if x > 0 && x < width-1 && y > 0 && y < height-1 {
				gx := ca.lumaAt(rgba, x+1, y) - ca.lumaAt(rgba, x-1, y)
				gy := ca.lumaAt(rgba, x, y+1) - ca.lumaAt(rgba, x, y-1)
				acc.gradientEnergy += gx*gx + gy*gy
			}
		}
	}
	return acc
}

func (ca *coreAnalyzer) lumaAt(rgba *image.RGBA, x, y int) float64 {
	o := rgba.PixOffset(x, y)
	return colorspace.Luma(rgba.Pix[o], rgba.Pix[o+1], rgba.Pix[o+2])
}

// materialResults folds the per-material tallies into ordered result lists
// per material kind. Each fraction is computed independently against the
// total sample-pixel count.
func (ca *coreAnalyzer) materialResults(acc *diagAccumulator) (metals, crystals, gems []models.MaterialResult) {
	sampleCount := acc.samplePixels
	if sampleCount < 1 {
		sampleCount = 1
	}

	for i, tally := range acc.tallies {
		if tally.pixels == 0 {
			continue
		}
		entry := ca.catalog.Entry(i)
		fraction := float64(tally.pixels) / float64(sampleCount)
		meanScore := tally.scoreSum / float64(tally.pixels)

		mr := models.MaterialResult{
			MaterialID:     entry.ID,
			Name:           entry.Name,
			Group:          entry.Group,
			Kind:           entry.Kind,
			SampleFraction: fraction,
			Concentration:  fraction * meanScore,
			Score:          meanScore,
		}
		switch entry.Kind {
		case models.KindMetal:
			metals = append(metals, mr)
		case models.KindCrystal:
			crystals = append(crystals, mr)
		case models.KindGem:
			gems = append(gems, mr)
		}
	}

	byFraction := func(list []models.MaterialResult) {
		sort.SliceStable(list, func(i, j int) bool {
			return list[i].SampleFraction > list[j].SampleFraction
		})
	}
	byFraction(metals)
	byFraction(crystals)
	byFraction(gems)
	return metals, crystals, gems
}

func (ca *coreAnalyzer) buildSummary(r *models.AnalysisResult) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Quality index %.1f (%s)\n", r.QualityIndex, r.Status)
	fmt.Fprintf(&sb, "Sample pixels: %d of %d\n", r.Diagnostics.SamplePixels, r.Diagnostics.TotalPixels)

	for _, msg := range ca.validator.ConvertIssuesToMessages(ca.validator.Validate(r.Diagnostics)) {
		sb.WriteString(msg)
		sb.WriteByte('\n')
	}

	for _, list := range [][]models.MaterialResult{r.Metals, r.Crystals, r.Gems} {
		for _, m := range list {
			fmt.Fprintf(&sb, "%s (%s): %.2f%% of sample, score %.2f\n",
				m.Name, m.Kind, m.SampleFraction*100, m.Score)
		}
	}
	fmt.Fprintf(&sb, "Particles detected: %d\n", len(r.Particles))
	return sb.String()
}

// Close shuts down the worker pool.
func (ca *coreAnalyzer) Close() error {
	ca.pool.Close()
	return nil
}
