package graph

import (
	"math"
	"sort"

	"github.com/umahmood/haversine"

	"github.com/ellenhp/mot-go/tilecoord"
)

// wayPoint is a single indexed vertex of a way's geometry, projected into
// flat Web-Mercator metres for nearest-neighbor search, tagged with the
// SearchNode it resolves to.
type wayPoint struct {
	x, y       float64
	way        WayId
	distanceMM int32
}

// KDTree is a 2-d k-d tree over way-geometry vertices, used to snap an
// arbitrary (lat, lng) query to the closest routable position on the graph.
type KDTree struct {
	root *kdNode
}

type kdNode struct {
	p    wayPoint
	l, r *kdNode
}

// BuildKDTree constructs a KDTree from a slice of way vertices.
func BuildKDTree(points []wayPoint) *KDTree {
	return &KDTree{root: buildKD(points, 0)}
}

func buildKD(points []wayPoint, depth int) *kdNode {
	if len(points) == 0 {
		return nil
	}
	axis := depth % 2
	sort.Slice(points, func(i, j int) bool {
		if axis == 0 {
			return points[i].x < points[j].x
		}
		return points[i].y < points[j].y
	})
	median := len(points) / 2
	return &kdNode{
		p: points[median],
		l: buildKD(points[:median], depth+1),
		r: buildKD(points[median+1:], depth+1),
	}
}

func squaredDist(a, b wayPoint) float64 {
	dx := a.x - b.x
	dy := a.y - b.y
	return dx*dx + dy*dy
}

func axisValue(p wayPoint, axis int) float64 {
	if axis == 0 {
		return p.x
	}
	return p.y
}

// FindNearest returns the indexed vertex closest to target and the
// Euclidean distance (in metres) to it.
func (t *KDTree) FindNearest(target wayPoint) (wayPoint, float64, bool) {
	if t == nil || t.root == nil {
		return wayPoint{}, 0, false
	}
	best, bestSq := nearestKD(t.root, target, 0, nil, math.MaxFloat64)
	if best == nil {
		return wayPoint{}, 0, false
	}
	return best.p, math.Sqrt(bestSq), true
}

func nearestKD(n *kdNode, target wayPoint, depth int, best *kdNode, bestSq float64) (*kdNode, float64) {
	if n == nil {
		return best, bestSq
	}
	axis := depth % 2

	d := squaredDist(n.p, target)
	if d < bestSq {
		bestSq = d
		best = n
	}

	var next, other *kdNode
	if axisValue(target, axis) < axisValue(n.p, axis) {
		next, other = n.l, n.r
	} else {
		next, other = n.r, n.l
	}

	best, bestSq = nearestKD(next, target, depth+1, best, bestSq)
	if diff := axisValue(n.p, axis) - axisValue(target, axis); diff*diff < bestSq {
		best, bestSq = nearestKD(other, target, depth+1, best, bestSq)
	}
	return best, bestSq
}

// buildIndex rebuilds the spatial index from the currently published
// geometry snapshot. Called after a refresh so queries see newly ingested
// ways; safe to call concurrently with Get (atomic.Pointer swap).
func (g *Graph) buildIndex() {
	g.indexMu.Lock()
	defer g.indexMu.Unlock()

	var points []wayPoint
	snap := *g.geometry.snapshot.Load()
	for way, coords := range snap {
		if len(coords) == 0 {
			continue
		}
		cumMM := int32(0)
		prevLat, prevLng := coords[0].ToLatLng()
		prevX, prevY := tilecoord.LatLngToMeters(prevLat, prevLng)
		points = append(points, wayPoint{x: prevX, y: prevY, way: way, distanceMM: 0})
		for i := 1; i < len(coords); i++ {
			lat, lng := coords[i].ToLatLng()
			x, y := tilecoord.LatLngToMeters(lat, lng)
			_, km := haversine.Distance(
				haversine.Coord{Lat: prevLat, Lon: prevLng},
				haversine.Coord{Lat: lat, Lon: lng},
			)
			cumMM += int32(km * 1000.0 * 1000.0)
			points = append(points, wayPoint{x: x, y: y, way: way, distanceMM: cumMM})
			prevLat, prevLng = lat, lng
		}
	}
	tree := BuildKDTree(points)
	g.index.Store(tree)
}

// NearestWay snaps (lat, lng) to the closest indexed way vertex, returning
// the search node it resolves to and the distance in metres from the query
// point to that vertex.
func (g *Graph) NearestWay(lat, lng float64) (SearchNode, float64, bool) {
	tree := g.index.Load()
	if tree == nil {
		return SearchNode{}, 0, false
	}
	x, y := tilecoord.LatLngToMeters(lat, lng)
	found, dist, ok := tree.FindNearest(wayPoint{x: x, y: y})
	if !ok {
		return SearchNode{}, 0, false
	}
	return SearchNode{Way: found.way, DistanceMM: found.distanceMM}, dist, true
}
