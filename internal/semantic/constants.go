// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

package semantic

import "nickandperla.net/rmscript/internal/token"

// Default strengths applied when a movement has no explicit magnitude.
const (
	defaultAngleDeg      = 30.0 // turn, look, tilt
	defaultDistanceMM    = 10.0 // head translation
	defaultAntennaDeg    = 45.0
	defaultDurationSec   = 1.0
	minSmoothDurationSec = 0.1
)

// qualitativeTable holds the five-level magnitudes for one channel.
type qualitativeTable struct {
	verySmall, small, medium, large, veryLarge float64
}

func (t qualitativeTable) value(level token.QualitativeLevel) float64 {
	switch level {
	case token.VerySmall:
		return t.verySmall
	case token.Small:
		return t.small
	case token.Medium:
		return t.medium
	case token.Large:
		return t.large
	case token.VeryLarge:
		return t.veryLarge
	}
	return t.medium
}

// Context-aware qualitative magnitudes. The level selects a value based on
// which channel the part addresses: a "big" body turn is much larger than a
// "big" head pitch.
var (
	bodyYawTable       = qualitativeTable{10, 30, 60, 90, 120} // degrees
	headPitchRollTable = qualitativeTable{5, 10, 20, 30, 38}   // degrees
	headYawTable       = qualitativeTable{5, 15, 30, 45, 60}   // degrees
	translationTable   = qualitativeTable{2, 5, 10, 20, 28}    // mm
	antennaTable       = qualitativeTable{10, 30, 60, 90, 110} // degrees
)

// Limits holds the physical warn thresholds. Values at or below a threshold
// are silent; values beyond it produce a warning while the IR keeps the
// requested value (the adapter clamps).
type Limits struct {
	BodyYawDeg     float64
	HeadPitchDeg   float64
	HeadRollDeg    float64
	HeadYawDeg     float64 // relative to body
	AntennaSafeDeg float64
	AntennaMaxDeg  float64 // hard physical ceiling
	HeadXMM        float64
	HeadYMM        float64
	HeadZUpMM      float64
	HeadZDownMM    float64
}

// DefaultLimits returns the stock robot limit table.
func DefaultLimits() Limits {
	return Limits{
		BodyYawDeg:     160,
		HeadPitchDeg:   40,
		HeadRollDeg:    40,
		HeadYawDeg:     65,
		AntennaSafeDeg: 65,
		AntennaMaxDeg:  180,
		HeadXMM:        30,
		HeadYMM:        30,
		HeadZUpMM:      20,
		HeadZDownMM:    40,
	}
}
