package station

import (
	"time"

	"github.com/bbernstein/tidecal/internal/models"
)

// JSTOffset is the fixed UTC offset of Japan Standard Time in seconds.
const JSTOffset = 9 * 3600

// JST is the zone JMA stations report in.
var JST = time.FixedZone("JST", JSTOffset)

// Coordinates and reference levels (observation datum relative to T.P., cm)
// from the JMA tidal station list.
var jmaStations = []models.Station{
	{ID: "WN", Name: "Wakkanai", Latitude: 45.4, Longitude: 141.683, ReferenceLevelCM: -165.0},
	{ID: "AS", Name: "Abashiri", Latitude: 44.017, Longitude: 144.283, ReferenceLevelCM: -150.5},
	{ID: "KR", Name: "Kushiro", Latitude: 42.983, Longitude: 144.367, ReferenceLevelCM: -189.6},
	{ID: "HK", Name: "Hakodate", Latitude: 41.783, Longitude: 140.717, ReferenceLevelCM: -155.5},
	{ID: "B3", Name: "Otaru", Latitude: 43.183, Longitude: 141.017, ReferenceLevelCM: -210.2},
	{ID: "MY", Name: "Miyako", Latitude: 39.65, Longitude: 141.983, ReferenceLevelCM: -128.2},
	{ID: "AY", Name: "Ayukawa", Latitude: 38.3, Longitude: 141.5, ReferenceLevelCM: -260.9},
	{ID: "ON", Name: "Onahama", Latitude: 36.933, Longitude: 140.9, ReferenceLevelCM: -171.4},
	{ID: "MR", Name: "Mera", Latitude: 34.917, Longitude: 139.833, ReferenceLevelCM: -138.1},
	{ID: "TK", Name: "Tokyo", Latitude: 35.65, Longitude: 139.767, ReferenceLevelCM: -188.4},
	{ID: "OK", Name: "Okada", Latitude: 34.783, Longitude: 139.383, ReferenceLevelCM: -154.2},
	{ID: "MJ", Name: "Miyakejima", Latitude: 34.05, Longitude: 139.55, ReferenceLevelCM: -416.5},
	{ID: "CC", Name: "Chichijima", Latitude: 27.1, Longitude: 142.2, ReferenceLevelCM: -186.0},
	{ID: "OD", Name: "Odawara", Latitude: 35.233, Longitude: 139.15, ReferenceLevelCM: -344.9},
	{ID: "UC", Name: "Uchiura", Latitude: 35.017, Longitude: 138.883, ReferenceLevelCM: -152.1},
	{ID: "SM", Name: "Shimizu", Latitude: 35.017, Longitude: 138.517, ReferenceLevelCM: -158.3},
	{ID: "OM", Name: "Omaezaki", Latitude: 34.617, Longitude: 138.217, ReferenceLevelCM: -193.7},
	{ID: "NG", Name: "Nagoya", Latitude: 35.083, Longitude: 136.883, ReferenceLevelCM: -201.0},
	{ID: "TB", Name: "Toba", Latitude: 34.483, Longitude: 136.817, ReferenceLevelCM: -281.0},
	{ID: "KS", Name: "Kushimoto", Latitude: 33.483, Longitude: 135.767, ReferenceLevelCM: -161.1},
	{ID: "OS", Name: "Osaka", Latitude: 34.65, Longitude: 135.433, ReferenceLevelCM: -354.2},
	{ID: "KB", Name: "Kobe", Latitude: 34.683, Longitude: 135.183, ReferenceLevelCM: -168.2},
	{ID: "TA", Name: "Takamatsu", Latitude: 34.35, Longitude: 134.05, ReferenceLevelCM: -189.8},
	{ID: "KC", Name: "Kochi", Latitude: 33.5, Longitude: 133.567, ReferenceLevelCM: -95.9},
	{ID: "KG", Name: "Kagoshima", Latitude: 31.6, Longitude: 130.567, ReferenceLevelCM: -201.5},
	{ID: "NS", Name: "Nagasaki", Latitude: 32.733, Longitude: 129.867, ReferenceLevelCM: -274.3},
	{ID: "NH", Name: "Naha", Latitude: 26.217, Longitude: 127.667, ReferenceLevelCM: -258.0},
	{ID: "IS", Name: "Ishigaki", Latitude: 24.333, Longitude: 124.167, ReferenceLevelCM: -172.4},
	{ID: "SK", Name: "Sakai", Latitude: 35.55, Longitude: 133.25, ReferenceLevelCM: -115.0},
	{ID: "MZ", Name: "Maizuru", Latitude: 35.483, Longitude: 135.383, ReferenceLevelCM: -132.1},
	{ID: "TY", Name: "Toyama", Latitude: 36.767, Longitude: 137.217, ReferenceLevelCM: -107.6},
	{ID: "S0", Name: "Sado", Latitude: 38.317, Longitude: 138.517, ReferenceLevelCM: -151.7},
}

// JMAStations returns the built-in JMA catalog.
func JMAStations() []models.Station {
	stations := make([]models.Station, len(jmaStations))
	for i, s := range jmaStations {
		s.Source = models.SourceJMA
		s.TimeZoneOffset = JSTOffset
		stations[i] = s
	}
	return stations
}
