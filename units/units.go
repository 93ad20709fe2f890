// Package units implements the fixed-point quantities the routing engine
// uses for distance, time, speed and penalty arithmetic. Everything here is
// integer and saturating so that route costs compare deterministically
// regardless of platform floating-point behavior.
package units

import (
	"log/slog"
	"math/bits"
)

// TravelledDistance is a distance in millimetres.
type TravelledDistance uint64

// ZeroDistance is the additive identity for TravelledDistance.
func ZeroDistance() TravelledDistance { return TravelledDistance(0) }

// Mm returns the distance in millimetres.
func (d TravelledDistance) Mm() uint64 { return uint64(d) }

// FromMeters builds a TravelledDistance from a whole number of metres.
func FromMeters(meters uint64) TravelledDistance {
	return TravelledDistance(saturatingMulU64(meters, 1000))
}

// Add returns the saturating sum of two distances.
func (d TravelledDistance) Add(other TravelledDistance) TravelledDistance {
	return TravelledDistance(saturatingAddU64(uint64(d), uint64(other)))
}

// DivSpeed computes the time needed to cover d at the given speed. The
// second return value is false if the speed is zero or the fixed-point
// multiplication overflows, matching the "impassable" semantics the rest of
// the engine relies on.
func (d TravelledDistance) DivSpeed(speed TravelSpeed) (ElapsedTime, bool) {
	if speed == 0 {
		return 0, false
	}
	hi, lo := bits.Mul64(uint64(d), 1000)
	if hi != 0 {
		slog.Warn("overflow computing travel time from distance and speed",
			"distance_mm", uint64(d), "speed_um_per_ms", uint32(speed))
		return 0, false
	}
	return ElapsedTime(lo / uint64(speed)), true
}

// ElapsedTime is a duration in milliseconds.
type ElapsedTime uint64

// ZeroTime is the additive identity for ElapsedTime.
func ZeroTime() ElapsedTime { return ElapsedTime(0) }

// Ms returns the duration in milliseconds.
func (t ElapsedTime) Ms() uint64 { return uint64(t) }

// FromSeconds builds an ElapsedTime from a whole number of seconds.
func FromSeconds(seconds uint64) ElapsedTime {
	return ElapsedTime(saturatingMulU64(seconds, 1000))
}

// Add returns the saturating sum of two durations.
func (t ElapsedTime) Add(other ElapsedTime) ElapsedTime {
	return ElapsedTime(saturatingAddU64(uint64(t), uint64(other)))
}

// MulPPM scales t by a parts-per-million factor, returning an *additional*
// elapsed time equal to t*ppm/1_000_000. Overflow saturates to zero and logs,
// rather than panicking or wrapping.
func (t ElapsedTime) MulPPM(ppm PartsPerMillion) ElapsedTime {
	if ppm == 0 {
		return 0
	}
	hi, lo := bits.Mul64(uint64(t), uint64(ppm))
	if hi != 0 {
		slog.Warn("overflow applying parts-per-million penalty",
			"elapsed_ms", uint64(t), "ppm", uint32(ppm))
		return 0
	}
	return ElapsedTime(lo / 1_000_000)
}

// TravelSpeed is a speed in micrometres per millisecond (numerically equal
// to millimetres per second, chosen so that distance/speed divisions stay in
// pure integer arithmetic).
type TravelSpeed uint32

// FromMetersPerSecond builds a TravelSpeed from a floating-point speed in
// metres per second, truncating to micrometre-per-millisecond resolution.
func FromMetersPerSecond(metersPerSecond float64) TravelSpeed {
	if metersPerSecond <= 0 {
		return 0
	}
	return TravelSpeed(metersPerSecond * 1000.0)
}

// FromMph builds a TravelSpeed from a floating-point speed in miles per hour.
func FromMph(mph float64) TravelSpeed {
	return FromMetersPerSecond(mph * 0.44704)
}

// Min returns the slower of the two speeds.
func (s TravelSpeed) Min(other TravelSpeed) TravelSpeed {
	if other < s {
		return other
	}
	return s
}

// PartsPerMillion is a dimensionless multiplier expressed in millionths.
type PartsPerMillion uint32

// ZeroPPM is the additive identity for PartsPerMillion.
func ZeroPPM() PartsPerMillion { return PartsPerMillion(0) }

// PPMOf constructs a PartsPerMillion directly from an integer ppm value.
func PPMOf(ppm uint32) PartsPerMillion { return PartsPerMillion(ppm) }

// PPMFromFraction converts a fraction (e.g. 0.2 for 20%) into parts per
// million, matching the host costing-callback contract's fractional
// penalty fields.
func PPMFromFraction(fraction float64) PartsPerMillion {
	if fraction <= 0 {
		return 0
	}
	return PartsPerMillion(fraction * 1_000_000)
}

// Add returns the saturating sum of two ppm values.
func (p PartsPerMillion) Add(other PartsPerMillion) PartsPerMillion {
	return PartsPerMillion(saturatingAddU32(uint32(p), uint32(other)))
}

func saturatingAddU64(a, b uint64) uint64 {
	sum := a + b
	if sum < a {
		return ^uint64(0)
	}
	return sum
}

func saturatingAddU32(a, b uint32) uint32 {
	sum := a + b
	if sum < a {
		return ^uint32(0)
	}
	return sum
}

func saturatingMulU64(a, b uint64) uint64 {
	hi, lo := bits.Mul64(a, b)
	if hi != 0 {
		return ^uint64(0)
	}
	return lo
}
