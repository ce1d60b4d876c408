// Package selector picks the engine for an operand shape pair.
//
// The decision depends only on shapes, never on values. Each distinct pair
// is evaluated once and remembered for the lifetime of the Selector.
package selector

import (
	"log/slog"

	"github.com/puzpuzpuz/xsync/v3"

	"github.com/born-ml/arith/internal/tensor"
)

// DefaultThreshold is the cost above which the heavy engine runs.
const DefaultThreshold = 100

// pair is the cache key. Shape is comparable, so no normalization is needed.
type pair struct {
	a, b tensor.Shape
}

// Selector maps shape pairs to engines.
type Selector struct {
	threshold int
	light     tensor.Engine
	heavy     tensor.Engine
	cache     *xsync.MapOf[pair, tensor.Engine]
}

// New creates a selector that routes pairs costing more than threshold to
// heavy and everything else to light.
func New(threshold int, light, heavy tensor.Engine) *Selector {
	return &Selector{
		threshold: threshold,
		light:     light,
		heavy:     heavy,
		cache:     xsync.NewMapOf[pair, tensor.Engine](),
	}
}

// Cost returns the sum of every dimension of both shapes.
// Scalars contribute 0.
func Cost(a, b tensor.Shape) int {
	return a.Cost() + b.Cost()
}

// Select returns the engine for the shape pair (a, b). The pair is ordered:
// (a, b) and (b, a) are cached separately but always agree.
func (s *Selector) Select(a, b tensor.Shape) tensor.Engine {
	e, _ := s.cache.LoadOrCompute(pair{a, b}, func() tensor.Engine {
		cost := Cost(a, b)
		e := s.light
		if cost > s.threshold {
			e = s.heavy
		}
		slog.Debug("selector: engine chosen",
			"a", a.String(), "b", b.String(), "cost", cost, "engine", e.Name())
		return e
	})
	return e
}

// Threshold returns the configured cost threshold.
func (s *Selector) Threshold() int {
	return s.threshold
}

// Light returns the engine used at or below the threshold.
func (s *Selector) Light() tensor.Engine {
	return s.light
}

// Heavy returns the engine used above the threshold.
func (s *Selector) Heavy() tensor.Engine {
	return s.heavy
}

// CacheSize returns the number of shape pairs decided so far.
func (s *Selector) CacheSize() int {
	return s.cache.Size()
}
