// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package grade turns continuous performance metrics into DPE letter grades
// and splits magnitudes into whole percentages that always total 100.
package grade

import (
	"math"
	"strings"

	"github.com/pdiddy/dpe-reader/pkg/types"
)

// Parse accepts a letter as written in a source document, ignoring case and
// surrounding whitespace. It reports false for anything outside A–G.
func Parse(s string) (types.Grade, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for _, g := range types.Grades {
		if string(g) == s {
			return g, true
		}
	}
	return "", false
}

// Scale is a step function over ascending exclusive upper bounds. Bounds[i]
// is the first value that no longer belongs to types.Grades[i].
type Scale struct {
	Name   string
	Unit   string
	Bounds [6]float64
}

// Energy grades primary energy use in kWh/m²/year.
var Energy = Scale{
	Name:   "energie",
	Unit:   "kWh/m²/an",
	Bounds: [6]float64{70, 110, 180, 250, 330, 420},
}

// Climate grades greenhouse-gas emissions in kg CO₂/m²/year.
var Climate = Scale{
	Name:   "climat",
	Unit:   "kg CO₂/m²/an",
	Bounds: [6]float64{6, 11, 30, 50, 70, 100},
}

// Classify returns the letter whose band contains v. A value equal to a bound
// belongs to the next letter; NaN falls through to G.
func (s Scale) Classify(v float64) types.Grade {
	for i, bound := range s.Bounds {
		if v < bound {
			return types.Grades[i]
		}
	}
	return types.GradeG
}

// Band returns the half-open band [lo, hi) covered by g. A starts at 0 and
// G is unbounded above. ok is false for an unknown letter.
func (s Scale) Band(g types.Grade) (lo, hi float64, ok bool) {
	for i, l := range types.Grades {
		if l != g {
			continue
		}
		if i > 0 {
			lo = s.Bounds[i-1]
		}
		if i < len(s.Bounds) {
			hi = s.Bounds[i]
		} else {
			hi = math.Inf(1)
		}
		return lo, hi, true
	}
	return 0, 0, false
}
