package track

import (
	"math"

	"github.com/montaraz/rutas/pkg/types"
)

// Meters per degree in the locally-planar approximation used for
// perpendicular distances. Longitude degrees shrink with cos(latitude).
const (
	metersPerLonDegree = 111320.0
	metersPerLatDegree = 110540.0
)

// lonLat is a 2-D point in longitude/latitude order.
type lonLat [2]float64

// pointSegmentDistance returns the meters from p to the chord a-b, measured
// in a local plane anchored at a. A zero-length chord degenerates to the
// straight-line distance from p to a.
func pointSegmentDistance(p, a, b lonLat) float64 {
	x := (p[0] - a[0]) * metersPerLonDegree * math.Cos((p[1]+a[1])/2*math.Pi/180)
	y := (p[1] - a[1]) * metersPerLatDegree
	x2 := (b[0] - a[0]) * metersPerLonDegree * math.Cos((b[1]+a[1])/2*math.Pi/180)
	y2 := (b[1] - a[1]) * metersPerLatDegree
	if x2 == 0 && y2 == 0 {
		return math.Hypot(x, y)
	}
	t := (x*x2 + y*y2) / (x2*x2 + y2*y2)
	t = math.Max(0, math.Min(1, t))
	return math.Hypot(x-t*x2, y-t*y2)
}

// douglasPeucker marks in keep the surviving indices of pts[lo..hi]
// inclusive. The recursion works over index ranges so no sub-slices are
// copied; endpoints of every range survive.
func douglasPeucker(pts []lonLat, lo, hi int, epsM float64, keep []bool) {
	if hi-lo < 2 {
		return
	}
	maxDist, maxIdx := -1.0, -1
	for i := lo + 1; i < hi; i++ {
		if d := pointSegmentDistance(pts[i], pts[lo], pts[hi]); d > maxDist {
			maxDist, maxIdx = d, i
		}
	}
	if maxDist > epsM {
		keep[maxIdx] = true
		douglasPeucker(pts, lo, maxIdx, epsM, keep)
		douglasPeucker(pts, maxIdx, hi, epsM, keep)
	}
}

// Simplify reduces a dense point sequence to a sparse polyline whose maximum
// perpendicular deviation from the original stays within epsM meters, and
// reattaches elevation to every surviving point by exact coordinate lookup
// (the first elevation seen wins on duplicate positions). Both endpoints are
// preserved exactly; sequences shorter than three points pass through
// unchanged.
func Simplify(points []types.TrackPoint, epsM float64) []types.Coordinate {
	pts := make([]lonLat, len(points))
	for i, p := range points {
		pts[i] = lonLat{p.Lon, p.Lat}
	}

	keep := make([]bool, len(pts))
	if len(pts) > 0 {
		keep[0] = true
		keep[len(pts)-1] = true
	}
	if len(pts) < 3 {
		for i := range keep {
			keep[i] = true
		}
	} else {
		douglasPeucker(pts, 0, len(pts)-1, epsM, keep)
	}

	eleByPos := make(map[lonLat]float64, len(points))
	for _, p := range points {
		key := lonLat{p.Lon, p.Lat}
		if _, ok := eleByPos[key]; !ok {
			eleByPos[key] = p.Ele
		}
	}

	out := make([]types.Coordinate, 0, len(pts))
	for i, p := range pts {
		if keep[i] {
			out = append(out, types.Coordinate{p[0], p[1], eleByPos[p]})
		}
	}
	return out
}
