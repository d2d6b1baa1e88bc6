// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package grade

import (
	"errors"
	"math"
	"sort"
)

// ErrNoTotal is returned by Apportion when no magnitude is positive.
var ErrNoTotal = errors.New("grade: magnitudes have no positive total")

// Apportion converts magnitudes into whole percentages using the largest
// remainder method. Each exact share is floored, then the points missing to
// reach 100 go one at a time to the largest fractional remainders. Equal
// remainders are resolved by position in magnitudes, earlier first, so the
// caller's ordering is the tie-break order.
//
// Negative, NaN and infinite magnitudes count as 0. The result has the same
// length as magnitudes, holds no negative value and sums to exactly 100.
func Apportion(magnitudes []float64) ([]int, error) {
	vals := make([]float64, len(magnitudes))
	var largest float64
	for i, m := range magnitudes {
		if m > 0 && !math.IsInf(m, 1) {
			vals[i] = m
			largest = math.Max(largest, m)
		}
	}
	if !(largest > 0) {
		return nil, ErrNoTotal
	}

	// Scaled by the largest magnitude, the total stays finite.
	var total float64
	for i := range vals {
		vals[i] /= largest
		total += vals[i]
	}

	shares := make([]int, len(vals))
	remainders := make([]float64, len(vals))
	sum := 0
	for i, v := range vals {
		exact := v / total * 100
		floor := math.Floor(exact)
		shares[i] = int(floor)
		remainders[i] = exact - floor
		sum += shares[i]
	}

	order := make([]int, len(vals))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return remainders[order[a]] > remainders[order[b]]
	})

	for i := 0; i < 100-sum; i++ {
		shares[order[i%len(order)]]++
	}
	return shares, nil
}
