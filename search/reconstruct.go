package search

import (
	"errors"

	"github.com/paulmach/orb"
	"github.com/twpayne/go-polyline"
	"github.com/umahmood/haversine"

	"github.com/ellenhp/mot-go/graph"
	"github.com/ellenhp/mot-go/tilecoord"
)

// ErrReconstructionCycle is returned if unwinding the predecessor chain
// revisits a step_log index, which would indicate a corrupted search state
// rather than a normal routing failure.
var ErrReconstructionCycle = errors.New("search: cycle detected during path reconstruction")

// Result is a completed route: its encoded geometry and the terminating
// RoutingCost, reported in the units a caller expects (metres, seconds).
type Result struct {
	Polyline5       string
	DistanceMeters  float64
	DurationSeconds float64
	CostSeconds     float64
}

// Reconstruct unwinds the predecessor chain from the terminal step_log entry
// back to the root, then stitches together the polyline for each hop by
// interpolating along the relevant way's geometry between the predecessor's
// node and the via point at which it left that way.
func Reconstruct(g *graph.Graph, stepLog []SearchState, terminal int) (Result, error) {
	chain, err := unwind(stepLog, terminal)
	if err != nil {
		return Result{}, err
	}

	var points []orb.Point
	for i := 0; i+1 < len(chain); i++ {
		prev := chain[i]
		next := chain[i+1]

		coords, ok := g.Geometry(prev.Node.Way)
		if !ok || len(coords) == 0 {
			continue
		}
		seg := subPolyline(coords, prev.Node.DistanceMM, next.Via.DistanceMM)
		points = appendDedup(points, seg)
	}

	coords := make([][]float64, len(points))
	for i, p := range points {
		coords[i] = []float64{p[1], p[0]}
	}

	terminalCost := stepLog[terminal].Cost
	return Result{
		Polyline5:       string(polyline.EncodeCoords(coords)),
		DistanceMeters:  float64(terminalCost.Distance.Mm()) / 1000.0,
		DurationSeconds: float64(terminalCost.ActualTime.Ms()) / 1000.0,
		CostSeconds:     float64(terminalCost.CostTime.Ms()) / 1000.0,
	}, nil
}

// unwind follows Previous pointers from terminal back to the root (the
// state whose Previous equals its own Idx), returning the chain in forward
// (root-to-terminal) order.
func unwind(stepLog []SearchState, terminal int) ([]SearchState, error) {
	visited := make(map[int]bool)
	var reversed []SearchState

	idx := terminal
	for {
		if visited[idx] {
			return nil, ErrReconstructionCycle
		}
		visited[idx] = true

		s := stepLog[idx]
		reversed = append(reversed, s)
		if s.Previous == s.Idx {
			break
		}
		idx = s.Previous
	}

	chain := make([]SearchState, len(reversed))
	for i, s := range reversed {
		chain[len(reversed)-1-i] = s
	}
	return chain, nil
}

// subPolyline returns the sequence of geographic points along coords
// between distances fromMM and toMM (in either direction), starting and
// ending with interpolated endpoints and including any real vertices that
// fall strictly between them.
func subPolyline(coords []tilecoord.TileCoordinates, fromMM, toMM int32) []orb.Point {
	cum := cumulativeDistancesMM(coords)

	start := pointAtDistance(coords, cum, fromMM)
	end := pointAtDistance(coords, cum, toMM)

	var mid []orb.Point
	if toMM >= fromMM {
		for i, d := range cum {
			if d > fromMM && d < toMM {
				lat, lng := coords[i].ToLatLng()
				mid = append(mid, orb.Point{lng, lat})
			}
		}
	} else {
		for i := len(cum) - 1; i >= 0; i-- {
			d := cum[i]
			if d < fromMM && d > toMM {
				lat, lng := coords[i].ToLatLng()
				mid = append(mid, orb.Point{lng, lat})
			}
		}
	}

	out := make([]orb.Point, 0, len(mid)+2)
	out = append(out, start)
	out = append(out, mid...)
	out = append(out, end)
	return out
}

// cumulativeDistancesMM returns, per vertex, the arc-length distance in
// millimetres from the start of the polyline, computed via haversine great-
// circle distance between consecutive vertices.
func cumulativeDistancesMM(coords []tilecoord.TileCoordinates) []int32 {
	cum := make([]int32, len(coords))
	if len(coords) == 0 {
		return cum
	}
	prevLat, prevLng := coords[0].ToLatLng()
	for i := 1; i < len(coords); i++ {
		lat, lng := coords[i].ToLatLng()
		_, km := haversine.Distance(
			haversine.Coord{Lat: prevLat, Lon: prevLng},
			haversine.Coord{Lat: lat, Lon: lng},
		)
		cum[i] = cum[i-1] + int32(km*1000.0*1000.0)
		prevLat, prevLng = lat, lng
	}
	return cum
}

// pointAtDistance linearly interpolates the geographic point at distanceMM
// along coords, given its precomputed per-vertex cumulative distances.
func pointAtDistance(coords []tilecoord.TileCoordinates, cum []int32, distanceMM int32) orb.Point {
	if len(coords) == 0 {
		return orb.Point{}
	}
	if distanceMM <= cum[0] {
		lat, lng := coords[0].ToLatLng()
		return orb.Point{lng, lat}
	}
	last := len(coords) - 1
	if distanceMM >= cum[last] {
		lat, lng := coords[last].ToLatLng()
		return orb.Point{lng, lat}
	}
	for i := 1; i < len(coords); i++ {
		if distanceMM <= cum[i] {
			segLen := cum[i] - cum[i-1]
			if segLen == 0 {
				lat, lng := coords[i].ToLatLng()
				return orb.Point{lng, lat}
			}
			frac := float64(distanceMM-cum[i-1]) / float64(segLen)
			lat0, lng0 := coords[i-1].ToLatLng()
			lat1, lng1 := coords[i].ToLatLng()
			lat := lat0 + frac*(lat1-lat0)
			lng := lng0 + frac*(lng1-lng0)
			return orb.Point{lng, lat}
		}
	}
	lat, lng := coords[last].ToLatLng()
	return orb.Point{lng, lat}
}

// appendDedup appends seg to points, dropping any point equal to the one
// before it so neither a hop's internal duplicates nor the shared endpoint
// between consecutive hops appear twice in the output.
func appendDedup(points []orb.Point, seg []orb.Point) []orb.Point {
	for _, p := range seg {
		if len(points) > 0 && points[len(points)-1] == p {
			continue
		}
		points = append(points, p)
	}
	return points
}
