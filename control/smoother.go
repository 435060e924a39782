// Package control holds the host-side decision pipeline: the temporal
// smoother that debounces per-frame counts and the engine that decides when
// the green phase moves.
package control

import "smart-traffic-control/types"

// DefaultWindowSize is the number of recent frames averaged per side.
const DefaultWindowSize = 5

// Smoother keeps a bounded history of raw per-side counts and exposes a
// moving average. The two sides have independent windows.
type Smoother struct {
	size    int
	windows [2][]int
}

// NewSmoother creates a Smoother averaging over the given number of frames.
// A non-positive size falls back to DefaultWindowSize.
func NewSmoother(size int) *Smoother {
	if size <= 0 {
		size = DefaultWindowSize
	}
	return &Smoother{size: size}
}

// Push records one frame's raw count for a side, evicting the oldest entry
// once the window is full.
func (s *Smoother) Push(side types.Side, raw int) {
	w := s.windows[side]
	if len(w) == s.size {
		copy(w, w[1:])
		w = w[:len(w)-1]
	}
	s.windows[side] = append(w, raw)
}

// Smoothed returns the mean of the current window contents. With a single
// sample it returns that raw value unmodified; before any push it returns 0.
func (s *Smoother) Smoothed(side types.Side) float64 {
	w := s.windows[side]
	if len(w) == 0 {
		return 0
	}
	sum := 0
	for _, v := range w {
		sum += v
	}
	return float64(sum) / float64(len(w))
}
