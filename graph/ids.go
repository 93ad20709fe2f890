// Package graph implements the position-indexed routing graph: a concurrent
// read-optimized store keyed on (way_id, distance_along_way) vertices, built
// by ingesting vector tiles through a host-supplied costing model.
package graph

import "github.com/ellenhp/mot-go/costing"

// WayId re-exports costing.WayId so callers of this package don't need to
// import costing just to name a way.
type WayId = costing.WayId

// SearchNode is a routable position: a point at a given distance along a
// specific way. Ordered lexicographically by (Way, DistanceMM).
type SearchNode struct {
	Way        WayId
	DistanceMM int32
}

// Less orders search nodes first by way, then by distance along that way.
func (n SearchNode) Less(other SearchNode) bool {
	if n.Way != other.Way {
		return n.Way < other.Way
	}
	return n.DistanceMM < other.DistanceMM
}

// WayTransition expresses "after reaching FromDistanceMM along FromWay, you
// may continue at ToDistanceMM along ToWay." A transition with ToWay ==
// FromWay and ToDistanceMM == FromDistanceMM is a continue transition: it
// pays the intersection's cost but leaves the traveller on the same way.
type WayTransition struct {
	FromWay        WayId
	FromDistanceMM int32
	ToWay          WayId
	ToDistanceMM   int32
}

// CostedWayTransition is the cost of taking a WayTransition, keyed by the
// destination way.
type CostedWayTransition struct {
	ToWay WayId
	Cost  costing.RoutingCost
}

// TransitionPair bundles a priced transition with the raw transition it
// prices, as stored under a SearchNode in the transitions map.
type TransitionPair struct {
	Costed     CostedWayTransition
	Transition WayTransition
}
