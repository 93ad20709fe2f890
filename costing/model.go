package costing

// TransitionToCost describes one candidate outgoing transition the costing
// model is asked to price, as part of a group of transitions sharing the
// same source search node.
type TransitionToCost struct {
	FromWayID        WayId
	ToWayID          WayId
	FromWayTags      Tags
	ToWayTags        Tags
	IntersectionTags Tags
}

// IntersectionCost is the result of pricing a group of transitions sharing a
// source search node. PerToWay holds the cost of transitioning onto each
// listed to-way; a to-way absent from the map is impassable at this
// intersection. ContinueCost, if non-nil, is the penalty for passing through
// the intersection while staying on the current way.
type IntersectionCost struct {
	PerToWay     map[WayId]RoutingCost
	ContinueCost *RoutingCost
}

// CostingModel is the host-supplied capability that turns tags into travel
// costs. The engine never interprets tags itself; it only forwards them.
type CostingModel interface {
	// CostWay is called once per way, with that way's tags.
	CostWay(tags Tags) WayCoster

	// CostIntersection is called once per group of outgoing transitions that
	// share a source search node, with the tags of the way they originate
	// from and the full set of candidate transitions.
	CostIntersection(currentWayTags Tags, transitions []TransitionToCost) IntersectionCost
}
