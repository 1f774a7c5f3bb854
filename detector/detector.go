// Package detector reports whether an observed input changed since the
// previous observation. Hosts use it to call a transition controller only
// on real changes of the mounted flag.
package detector

import "sync"

// Detector remembers the last value it observed.
type Detector[T comparable] struct {
	mu     sync.Mutex
	last   T
	primed bool
}

// New creates a detector primed with an initial value, so the first Observe
// compares against it.
func New[T comparable](initial T) *Detector[T] {
	return &Detector[T]{
		last:   initial,
		primed: true,
	}
}

// Observe records value and reports whether it differs from the previous
// observation. The first observation of an unprimed detector only primes it
// and reports false.
func (d *Detector[T]) Observe(value T) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.primed {
		d.last = value
		d.primed = true

		return false
	}

	changed := d.last != value
	d.last = value

	return changed
}

// Last returns the most recent observation and whether there has been one.
func (d *Detector[T]) Last() (T, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.last, d.primed
}

// Reset forgets the previous observation.
func (d *Detector[T]) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()

	var zero T

	d.last = zero
	d.primed = false
}
