package history

import (
	"slices"
	"sync"
)

type Sample struct {
	ElapsedMinutes float64 `json:"elapsed_minutes"`
	Differential   int     `json:"differential"`
}

var sentinel = Sample{}

// Domain is the axis range the chart should draw.
type Domain struct {
	MinX float64 `json:"min_x"`
	MaxX float64 `json:"max_x"`
	MinY float64 `json:"min_y"`
	MaxY float64 `json:"max_y"`
}

var FallbackDomain = Domain{MinX: 0, MaxX: 1, MinY: -100, MaxY: 100}

// Track is the session's rolling record of the team gold differential. It
// always holds at least the (0, 0) sentinel and only grows when the
// differential changes.
type Track struct {
	mu      sync.Mutex
	samples []Sample
}

func NewTrack() *Track {
	return &Track{samples: []Sample{sentinel}}
}

// Record appends a sample if diff differs from the last recorded one and
// reports whether it did.
func (t *Track) Record(elapsedMinutes float64, diff int) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.samples[len(t.samples)-1].Differential == diff {
		return false
	}
	t.samples = append(t.samples, Sample{ElapsedMinutes: elapsedMinutes, Differential: diff})
	return true
}

func (t *Track) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.samples = []Sample{sentinel}
}

func (t *Track) Samples() []Sample {
	t.mu.Lock()
	defer t.mu.Unlock()
	return slices.Clone(t.samples)
}

// Tracking reports whether anything beyond the sentinel has been recorded.
func (t *Track) Tracking() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.samples) > 1
}

func (t *Track) Domain() Domain {
	return DomainOf(t.Samples())
}

// DomainOf spans the samples, falling back to FallbackDomain when the series
// never left time zero. A flat differential is widened so the y range never
// collapses.
func DomainOf(samples []Sample) Domain {
	if len(samples) == 0 {
		return FallbackDomain
	}

	first := float64(samples[0].Differential)
	d := Domain{MinY: first, MaxY: first}
	for _, s := range samples {
		d.MaxX = max(d.MaxX, s.ElapsedMinutes)
		d.MinY = min(d.MinY, float64(s.Differential))
		d.MaxY = max(d.MaxY, float64(s.Differential))
	}
	if d.MaxX == 0 {
		return FallbackDomain
	}
	if d.MinY == d.MaxY {
		d.MinY += FallbackDomain.MinY
		d.MaxY += FallbackDomain.MaxY
	}
	return d
}
