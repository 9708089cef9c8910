// Package estimate projects how long a search would take to run, given a
// measured per-derivation cost, without ever running one itself. It backs
// both the `benchmark` and standalone `estimate` subcommands (spec.md §4.5
// and §6), and is grounded line-for-line on wskdf-cli's
// calculate_systematic_times/calculate_random_times/pretty functions.
//
// Figures are kept as float64 seconds rather than time.Duration: for large
// bit lengths the projected time overflows a signed 64-bit nanosecond
// count (time.Duration's range is about 292 years), so a Go duration would
// silently wrap. Seconds as float64 cover the whole range of values this
// package computes, at float64 precision.
package estimate

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/wskdf/wskdf/apperror"
	"github.com/wskdf/wskdf/preimage"
)

// Figures holds the three non-percentile projections for one bit length.
type Figures struct {
	SystematicWorstSecs    float64
	SystematicExpectedSecs float64
	RandomExpectedSecs     float64
}

// ForBits computes the systematic and random-expected projections for an
// n-bit preimage space, given threads workers each averaging avg per
// derivation, per spec.md §4.5.
func ForBits(n uint8, threads int, avg time.Duration) (Figures, error) {
	if err := preimage.ValidateBits(n); err != nil {
		return Figures{}, err
	}
	if threads < 1 {
		return Figures{}, apperror.NewErrorf("thread count must be >= 1, got %d", threads)
	}

	space := float64(preimage.SpaceSize(n))
	t := avg.Seconds()
	T := float64(threads)

	worstWork := math.Max(math.Ceil(space/T), 1)
	expectedWork := math.Max(math.Ceil(space/(2*T)), 1)
	randomWork := space / T

	return Figures{
		SystematicWorstSecs:    worstWork * t,
		SystematicExpectedSecs: expectedWork * t,
		RandomExpectedSecs:     randomWork * t,
	}, nil
}

// RandomPercentile computes the time by which a fraction p of random
// searches would have found the answer, using the geometric-distribution
// percentile multiplier -ln(1-p), per spec.md §4.5.
func RandomPercentile(n uint8, threads int, avg time.Duration, p float64) (float64, error) {
	if p <= 0 || p >= 1 {
		return 0, apperror.NewErrorf("percentile must be in (0, 1), got %v", p)
	}
	fig, err := ForBits(n, threads, avg)
	if err != nil {
		return 0, err
	}
	multiplier := -math.Log(1 - p)
	return fig.RandomExpectedSecs * multiplier, nil
}

const (
	secondsPerMinute = 60.0
	secondsPerHour   = 60.0 * secondsPerMinute
	secondsPerDay    = 24.0 * secondsPerHour
	secondsPerYear   = 365.0 * secondsPerDay
)

// Pretty renders a duration in seconds as the two most significant units,
// e.g. "11d 9h", "1min 0s", "30s". Below one minute only seconds are shown.
func Pretty(secs float64) string {
	var whole float64
	var unit string
	var rest float64

	switch {
	case secs < secondsPerMinute:
		whole, unit, rest = secs, "s", 0
	case secs < secondsPerHour:
		whole = math.Floor(secs / secondsPerMinute)
		unit = "min"
		rest = secs - whole*secondsPerMinute
	case secs < secondsPerDay:
		whole = math.Floor(secs / secondsPerHour)
		unit = "h"
		rest = secs - whole*secondsPerHour
	case secs < secondsPerYear:
		whole = math.Floor(secs / secondsPerDay)
		unit = "d"
		rest = secs - whole*secondsPerDay
	default:
		whole = math.Floor(secs / secondsPerYear)
		unit = "y"
		rest = secs - whole*secondsPerYear
	}

	var second string
	switch unit {
	case "y":
		second = fmt.Sprintf(" %.0fd", math.Round(rest/secondsPerDay))
	case "d":
		second = fmt.Sprintf(" %.0fh", math.Round(rest/secondsPerHour))
	case "h":
		second = fmt.Sprintf(" %.0fmin", math.Round(rest/secondsPerMinute))
	case "min":
		second = fmt.Sprintf(" %.0fs", math.Round(rest))
	}

	return fmt.Sprintf("%.0f%s%s", whole, unit, second)
}

// Table renders the fixed-column projection table for bit lengths 1..maxBits,
// given a measured per-derivation average avg and thread count threads. The
// exact column layout is reproducible but not an API contract (spec.md §4.5).
func Table(avg time.Duration, threads int, maxBits uint8) (string, error) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%-5s %-14s %-14s %-14s %-14s %-14s\n",
		"bits", "systematic-exp", "systematic-max", "random-exp", "random-p99", "random-p999")

	for n := uint8(1); n <= maxBits; n++ {
		fig, err := ForBits(n, threads, avg)
		if err != nil {
			return "", err
		}
		p99, err := RandomPercentile(n, threads, avg, 0.99)
		if err != nil {
			return "", err
		}
		p999, err := RandomPercentile(n, threads, avg, 0.999)
		if err != nil {
			return "", err
		}

		fmt.Fprintf(&sb, "%-5d %-14s %-14s %-14s %-14s %-14s\n",
			n,
			Pretty(fig.SystematicExpectedSecs),
			Pretty(fig.SystematicWorstSecs),
			Pretty(fig.RandomExpectedSecs),
			Pretty(p99),
			Pretty(p999),
		)
	}
	return sb.String(), nil
}
