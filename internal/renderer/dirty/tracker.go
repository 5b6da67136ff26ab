package dirty

import (
	"image"
	"sync"
)

// Tracker tracks dirty regions and coalesces them for efficient painting.
type Tracker struct {
	mu sync.RWMutex

	// regions contains the current dirty regions, clipped to bounds.
	regions []Region

	// fullRedraw indicates the entire surface needs repainting.
	fullRedraw bool

	// bounds is the surface rectangle.
	bounds Region
}

// Past either limit a single full redraw is cheaper than many small ones.
const (
	maxRegions        = 32
	coalesceThreshold = 0.75
)

// NewTracker creates a tracker for a surface with the given bounds.
func NewTracker(bounds Region) *Tracker {
	return &Tracker{
		regions: make([]Region, 0, 16),
		bounds:  bounds.Canon(),
	}
}

// Bounds returns the surface rectangle.
func (t *Tracker) Bounds() Region {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.bounds
}

// SetBounds updates the surface rectangle. Pending regions are clipped to
// the new bounds; newly exposed area is not marked, since the host follows
// a resize with its own repaint request.
func (t *Tracker) SetBounds(bounds Region) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.bounds = bounds.Canon()
	kept := t.regions[:0]
	for _, r := range t.regions {
		if r = r.Intersect(t.bounds); !r.Empty() {
			kept = append(kept, r)
		}
	}
	t.regions = kept
	if t.bounds.Empty() {
		t.fullRedraw = false
	}
}

// MarkFullRedraw marks the entire surface as needing repaint.
func (t *Tracker) MarkFullRedraw() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.bounds.Empty() {
		return
	}
	t.fullRedraw = true
	t.regions = t.regions[:0]
}

// Mark marks a rectangle as dirty. The part outside the bounds is ignored.
func (t *Tracker) Mark(r Region) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.fullRedraw {
		return
	}
	t.addRegion(r)
}

// Translate moves pending regions by dy pixels, following content that was
// blitted by the same amount. Parts moved outside the bounds are dropped.
func (t *Tracker) Translate(dy int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.fullRedraw || dy == 0 {
		return
	}
	moved := t.regions[:0]
	for _, r := range t.regions {
		if r = r.Add(image.Pt(0, dy)).Intersect(t.bounds); !r.Empty() {
			moved = append(moved, r)
		}
	}
	t.regions = moved
}

// addRegion adds a region and coalesces with existing regions.
func (t *Tracker) addRegion(region Region) {
	region = region.Canon().Intersect(t.bounds)
	if region.Empty() {
		return
	}

	merged := false
	for i := range t.regions {
		if m, ok := Merge(t.regions[i], region); ok {
			t.regions[i] = m
			merged = true
			break
		}
	}
	if !merged {
		t.regions = append(t.regions, region)
	}
	t.coalesceRegions()

	if len(t.regions) > maxRegions || t.dirtyAreaRatio() > coalesceThreshold {
		t.fullRedraw = true
		t.regions = t.regions[:0]
	}
}

// coalesceRegions merges overlapping or adjacent regions until stable.
func (t *Tracker) coalesceRegions() {
	// Simple O(n²) merge - acceptable for small region counts
	changed := true
	for changed {
		changed = false
		for i := 0; i < len(t.regions) && !changed; i++ {
			for j := i + 1; j < len(t.regions); j++ {
				if m, ok := Merge(t.regions[i], t.regions[j]); ok {
					t.regions[i] = m
					t.regions = append(t.regions[:j], t.regions[j+1:]...)
					changed = true
					break
				}
			}
		}
	}
}

// dirtyAreaRatio returns the ratio of dirty area to total surface area.
func (t *Tracker) dirtyAreaRatio() float64 {
	total := Area(t.bounds)
	if total == 0 {
		return 0
	}
	dirty := 0
	for _, r := range t.regions {
		dirty += Area(r)
	}
	return float64(dirty) / float64(total)
}

// IsDirty returns true if any region is marked dirty.
func (t *Tracker) IsDirty() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.fullRedraw || len(t.regions) > 0
}

// NeedsFullRedraw returns true if a full redraw is needed.
func (t *Tracker) NeedsFullRedraw() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.fullRedraw
}

// Regions returns a copy of the current dirty regions.
// If a full redraw is needed, returns a single region covering the bounds.
func (t *Tracker) Regions() []Region {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.snapshot()
}

func (t *Tracker) snapshot() []Region {
	if t.fullRedraw {
		return []Region{t.bounds}
	}
	result := make([]Region, len(t.regions))
	copy(result, t.regions)
	return result
}

// Flush returns the dirty regions and clears them.
func (t *Tracker) Flush() []Region {
	t.mu.Lock()
	defer t.mu.Unlock()

	result := t.snapshot()
	t.regions = t.regions[:0]
	t.fullRedraw = false
	return result
}

// Clear clears all dirty regions.
func (t *Tracker) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.regions = t.regions[:0]
	t.fullRedraw = false
}
