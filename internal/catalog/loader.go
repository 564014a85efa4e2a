package catalog

import (
	"encoding/json"
	"fmt"
	"os"

	"go-mineral-analyzer/pkg/models"
)

// LoadFile reads a JSON array of material descriptors and builds a catalog.
// Individual malformed entries are skipped by New; only unreadable files or
// invalid JSON are reported as errors.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}
	var descriptors []MaterialRange
	if err := json.Unmarshal(data, &descriptors); err != nil {
		return nil, fmt.Errorf("parse catalog file: %w", err)
	}
	return New(descriptors), nil
}

// Default returns the built-in reference catalog used when no catalog file
// is configured. Hue ranges follow the colorimetric signatures of the
// supported metals, crystals and gems under standard microscope lighting.
func Default() *Catalog {
	return New([]MaterialRange{
		{ID: "gold", Name: "Gold", Group: "precious metals", Kind: models.KindMetal,
			HueMin: 35, HueMax: 65, SatMin: 0.25, SatMax: 0.95, ValMin: 0.40, ValMax: 1.0, Priority: 1.0},
		{ID: "copper", Name: "Copper", Group: "base metals", Kind: models.KindMetal,
			HueMin: 10, HueMax: 35, SatMin: 0.30, SatMax: 0.95, ValMin: 0.30, ValMax: 0.95, Priority: 0.9},
		{ID: "silver", Name: "Silver", Group: "precious metals", Kind: models.KindMetal,
			HueMin: 0, HueMax: 359, SatMin: 0.0, SatMax: 0.12, ValMin: 0.75, ValMax: 1.0, Priority: 0.85},
		{ID: "platinum", Name: "Platinum", Group: "platinum group", Kind: models.KindMetal,
			HueMin: 0, HueMax: 359, SatMin: 0.0, SatMax: 0.18, ValMin: 0.55, ValMax: 0.92, Priority: 0.8},
		{ID: "pyrite", Name: "Pyrite", Group: "sulfides", Kind: models.KindCrystal,
			HueMin: 40, HueMax: 60, SatMin: 0.20, SatMax: 0.60, ValMin: 0.25, ValMax: 0.70, Priority: 0.7},
		{ID: "quartz", Name: "Quartz", Group: "silicates", Kind: models.KindCrystal,
			HueMin: 0, HueMax: 359, SatMin: 0.0, SatMax: 0.20, ValMin: 0.50, ValMax: 0.95, Priority: 0.6},
		{ID: "amethyst", Name: "Amethyst", Group: "silicates", Kind: models.KindCrystal,
			HueMin: 260, HueMax: 300, SatMin: 0.15, SatMax: 0.80, ValMin: 0.30, ValMax: 0.90, Priority: 0.65},
		{ID: "emerald", Name: "Emerald", Group: "beryls", Kind: models.KindGem,
			HueMin: 110, HueMax: 160, SatMin: 0.30, SatMax: 1.0, ValMin: 0.25, ValMax: 0.90, Priority: 0.75},
		{ID: "ruby", Name: "Ruby", Group: "corundums", Kind: models.KindGem,
			HueMin: 345, HueMax: 10, SatMin: 0.40, SatMax: 1.0, ValMin: 0.25, ValMax: 0.85, Priority: 0.75},
		{ID: "sapphire", Name: "Sapphire", Group: "corundums", Kind: models.KindGem,
			HueMin: 200, HueMax: 250, SatMin: 0.30, SatMax: 1.0, ValMin: 0.20, ValMax: 0.85, Priority: 0.7},
	})
}
