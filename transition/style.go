package transition

import (
	"maps"
	"strconv"
	"time"
)

// Style property keys set on every snapshot by MapStyles.
const (
	PropertyTransitionDuration       = "transition-duration"
	PropertyTransitionTimingFunction = "transition-timing-function"
	PropertyTransitionProperty       = "transition-property"
)

// DefaultTimingFunction is used when neither the caller nor the controller
// names a timing function.
const DefaultTimingFunction = "ease"

// Style is a snapshot of style declarations, keyed by property name.
type Style map[string]string

// Equal reports whether two snapshots hold the same declarations.
func (s Style) Equal(other Style) bool {
	return maps.Equal(s, other)
}

// Definition describes one transition: the declarations that apply while
// shown (In), while hidden (Out), and in both (Common). Property, when set,
// becomes the transition-property declaration.
type Definition struct {
	Property string `json:"transitionProperty,omitempty" yaml:"transitionProperty,omitempty"`
	Common   Style  `json:"common,omitempty"             yaml:"common,omitempty"`
	In       Style  `json:"in"                           yaml:"in"`
	Out      Style  `json:"out"                          yaml:"out"`
}

// StyleFunc maps a definition, duration, status and timing function to a
// style snapshot. It must be pure and total over all four statuses.
type StyleFunc func(def Definition, duration time.Duration, status Status, timingFunction string) Style

// MapStyles is the default StyleFunc. Entering and entered use the In
// declarations so the host animates towards them; exiting and exited use Out.
func MapStyles(def Definition, duration time.Duration, status Status, timingFunction string) Style {
	out := Style{
		PropertyTransitionDuration:       strconv.FormatInt(duration.Milliseconds(), 10) + "ms",
		PropertyTransitionTimingFunction: timingFunction,
	}

	if def.Property != "" {
		out[PropertyTransitionProperty] = def.Property
	}

	maps.Copy(out, def.Common)

	switch status {
	case StatusEntering, StatusEntered:
		maps.Copy(out, def.In)
	case StatusExiting, StatusExited:
		maps.Copy(out, def.Out)
	}

	return out
}
