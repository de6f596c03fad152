package track

import (
	"math"

	"github.com/montaraz/rutas/pkg/types"
)

const (
	// earthRadiusM is the mean Earth radius used by the haversine formula.
	earthRadiusM = 6371000.0

	// ascentThreshold is the minimum positive elevation delta, per
	// consecutive point pair, counted toward cumulative ascent. Smaller
	// deltas are barometric jitter and are discarded.
	ascentThreshold = 1.0
)

// Metrics are the values derived once at ingestion and editable thereafter.
type Metrics struct {
	DistanceKm float64
	AscentM    float64
}

// Haversine returns the great-circle distance in meters between two
// latitude/longitude pairs in degrees.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	toRad := func(d float64) float64 { return d * math.Pi / 180 }
	p1, p2 := toRad(lat1), toRad(lat2)
	dphi := toRad(lat2 - lat1)
	dl := toRad(lon2 - lon1)
	a := math.Sin(dphi/2)*math.Sin(dphi/2) +
		math.Cos(p1)*math.Cos(p2)*math.Sin(dl/2)*math.Sin(dl/2)
	return 2 * earthRadiusM * math.Asin(math.Sqrt(a))
}

// ComputeMetrics derives cumulative distance and net ascent from a point
// sequence. Distance sums haversine legs and rounds to 3 decimals of a
// kilometer; ascent sums consecutive positive deltas of at least
// ascentThreshold and rounds to 1 decimal. A single-point track yields zero
// for both.
func ComputeMetrics(points []types.TrackPoint) Metrics {
	var distM, ascent float64
	for i := 1; i < len(points); i++ {
		prev, cur := points[i-1], points[i]
		distM += Haversine(prev.Lat, prev.Lon, cur.Lat, cur.Lon)
		if d := cur.Ele - prev.Ele; d >= ascentThreshold {
			ascent += d
		}
	}
	return Metrics{
		DistanceKm: math.Round(distM/1000*1000) / 1000,
		AscentM:    math.Round(ascent*10) / 10,
	}
}
