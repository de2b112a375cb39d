package harmonics

import "strings"

// StandardSpeeds holds the angular speeds of common constituents in degrees
// per hour.
var StandardSpeeds = map[string]float64{
	// Semidiurnal
	"M2": 28.9841042,
	"S2": 30.0000000,
	"N2": 28.4397295,
	"K2": 30.0821373,

	// Diurnal
	"K1": 15.0410686,
	"O1": 13.9430356,
	"P1": 14.9589314,
	"Q1": 13.3986609,

	// Shallow water
	"M4":  57.9682084,
	"M6":  86.9523127,
	"MK3": 44.0251729,
	"S4":  60.0000000,
	"MN4": 57.4238337,
	"MS4": 58.9841042,

	// Long period
	"MF":  1.0980331,
	"MM":  0.5443747,
	"SSA": 0.0821373,
	"SA":  0.0410686,
}

// FrequencyOf returns a constituent's frequency in cycles per hour. Names are
// matched case-insensitively.
func FrequencyOf(name string) (float64, bool) {
	speed, ok := StandardSpeeds[strings.ToUpper(strings.TrimSpace(name))]
	if !ok {
		return 0, false
	}
	return speed / 360, true
}
