// Package moon computes an approximate lunar age from a fixed reference new
// moon and a mean synodic period. The approximation is good to roughly a day,
// which is enough to place a date within the tide cycle.
package moon

import (
	"math"
	"time"

	"cloud.google.com/go/civil"
	"github.com/soniakeys/meeus/v3/julian"
)

// SynodicMonth is the mean length of a lunation in days.
const SynodicMonth = 29.53058867

// ReferenceNewMoon is the new moon of 2000-01-06 18:14 UTC.
var ReferenceNewMoon = time.Date(2000, time.January, 6, 18, 14, 0, 0, time.UTC)

var referenceJD = julian.TimeToJD(ReferenceNewMoon)

// Age returns the moon age in days, in [0, SynodicMonth), for the start of
// date in UTC.
func Age(date civil.Date) float64 {
	return AgeAt(date.In(time.UTC))
}

// AgeAt returns the moon age in days for an instant.
func AgeAt(t time.Time) float64 {
	elapsed := julian.TimeToJD(t.UTC()) - referenceJD
	age := math.Mod(elapsed, SynodicMonth)
	if age < 0 {
		age += SynodicMonth
	}
	if age >= SynodicMonth {
		return 0
	}
	return age
}
