// Package catalog holds the immutable material catalog the classifier scores
// pixels against. The catalog is built once at startup and never mutated.
package catalog

import (
	"sort"

	"github.com/sirupsen/logrus"

	"go-mineral-analyzer/internal/logger"
	"go-mineral-analyzer/pkg/models"
)

// MaterialRange describes the colorimetric signature of one catalog entry.
// Hue is in degrees [0,360) and supports wrap-around ranges (HueMin > HueMax,
// e.g. 350–10 for deep reds). Saturation and value are in [0,1].
type MaterialRange struct {
	ID       string              `json:"id"`
	Name     string              `json:"name"`
	Group    string              `json:"group"`
	Kind     models.MaterialKind `json:"kind"`
	HueMin   float64             `json:"hue_min"`
	HueMax   float64             `json:"hue_max"`
	SatMin   float64             `json:"sat_min"`
	SatMax   float64             `json:"sat_max"`
	ValMin   float64             `json:"val_min"`
	ValMax   float64             `json:"val_max"`
	Priority float64             `json:"priority"`
}

// HueWraps reports whether the entry's hue range crosses the 0/360 boundary.
func (m MaterialRange) HueWraps() bool {
	return m.HueMin > m.HueMax
}

// HueCenter returns the midpoint of the hue range, wrap-aware.
func (m MaterialRange) HueCenter() float64 {
	if !m.HueWraps() {
		return (m.HueMin + m.HueMax) / 2
	}
	c := (m.HueMin + m.HueMax + 360) / 2
	if c >= 360 {
		c -= 360
	}
	return c
}

// HueHalfWidth returns half the angular width of the hue range.
func (m MaterialRange) HueHalfWidth() float64 {
	if !m.HueWraps() {
		return (m.HueMax - m.HueMin) / 2
	}
	return (m.HueMax + 360 - m.HueMin) / 2
}

// Catalog is a priority-ordered, read-only list of material ranges.
type Catalog struct {
	entries []MaterialRange
	byID    map[string]int
}

// New builds a catalog from already-parsed descriptors. Malformed entries
// are skipped with a warning; construction never fails, the catalog is
// simply shorter. Entries are ordered by descending priority, ties broken
// by id so iteration order is deterministic.
func New(descriptors []MaterialRange) *Catalog {
	entries := make([]MaterialRange, 0, len(descriptors))
	for _, d := range descriptors {
		if reason := validate(d); reason != "" {
			logger.WithFields(logrus.Fields{
				"material_id": d.ID,
				"reason":      reason,
			}).Warn("Skipping malformed catalog entry")
			continue
		}
		entries = append(entries, d)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Priority != entries[j].Priority {
			return entries[i].Priority > entries[j].Priority
		}
		return entries[i].ID < entries[j].ID
	})

	byID := make(map[string]int, len(entries))
	for i, e := range entries {
		byID[e.ID] = i
	}
	return &Catalog{entries: entries, byID: byID}
}

func validate(d MaterialRange) string {
	switch {
	case d.ID == "":
		return "empty id"
	case d.Name == "":
		return "empty name"
	case d.Kind != models.KindMetal && d.Kind != models.KindCrystal && d.Kind != models.KindGem:
		return "unknown material kind"
	case d.HueMin < 0 || d.HueMin >= 360 || d.HueMax < 0 || d.HueMax >= 360:
		return "hue out of range"
	case d.SatMin < 0 || d.SatMax > 1 || d.SatMin > d.SatMax:
		return "invalid saturation range"
	case d.ValMin < 0 || d.ValMax > 1 || d.ValMin > d.ValMax:
		return "invalid value range"
	case d.Priority <= 0:
		return "non-positive priority"
	}
	return ""
}

// Len returns the number of valid entries.
func (c *Catalog) Len() int { return len(c.entries) }

// Entry returns the entry at catalog index i.
func (c *Catalog) Entry(i int) MaterialRange { return c.entries[i] }

// Entries returns a copy of the entry list.
func (c *Catalog) Entries() []MaterialRange {
	out := make([]MaterialRange, len(c.entries))
	copy(out, c.entries)
	return out
}

// IndexOf returns the catalog index for a material id, or -1 if absent.
func (c *Catalog) IndexOf(id string) int {
	if i, ok := c.byID[id]; ok {
		return i
	}
	return -1
}
