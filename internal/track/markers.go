package track

import (
	"math"

	"github.com/montaraz/rutas/pkg/types"
)

// DirectionMarker is one bearing-annotated position along a route line.
type DirectionMarker struct {
	Lat        float64
	Lon        float64
	BearingDeg float64
}

// Bearing returns the initial great-circle bearing in degrees from the first
// to the second position, normalized to [0, 360).
func Bearing(lat1, lon1, lat2, lon2 float64) float64 {
	toRad := func(d float64) float64 { return d * math.Pi / 180 }
	y := math.Sin(toRad(lon2-lon1)) * math.Cos(toRad(lat2))
	x := math.Cos(toRad(lat1))*math.Sin(toRad(lat2)) -
		math.Sin(toRad(lat1))*math.Cos(toRad(lat2))*math.Cos(toRad(lon2-lon1))
	deg := math.Atan2(y, x) * 180 / math.Pi
	return math.Mod(deg+360, 360)
}

// PlaceDirectionMarkers samples up to count interior positions of a
// simplified line, evenly strided, with each marker's bearing taken from its
// neighbor points (clamped at the sequence bounds). Lines with fewer than
// two points yield no markers.
func PlaceDirectionMarkers(coords []types.Coordinate, count int) []DirectionMarker {
	n := len(coords)
	if n < 2 || count <= 0 {
		return nil
	}

	stride := (n - 2) / (count + 1)
	if stride < 1 {
		stride = 1
	}

	var markers []DirectionMarker
	for i := 1; i < n-1 && len(markers) < count; i += stride {
		a := coords[max(0, i-1)]
		b := coords[min(n-1, i+1)]
		markers = append(markers, DirectionMarker{
			Lat:        coords[i].Lat(),
			Lon:        coords[i].Lon(),
			BearingDeg: Bearing(a.Lat(), a.Lon(), b.Lat(), b.Lon()),
		})
	}
	return markers
}
