package costing

import "github.com/ellenhp/mot-go/units"

// RoutingCost is the triple (cost time, actual time, distance) the search
// compares lexicographically. cost_time includes soft penalties and is
// always >= actual_time.
type RoutingCost struct {
	CostTime   units.ElapsedTime
	ActualTime units.ElapsedTime
	Distance   units.TravelledDistance
}

// ZeroCost is the additive identity, and the cost of the root search state.
func ZeroCost() RoutingCost {
	return RoutingCost{}
}

// WithPenalty adds a soft penalty to cost_time only, leaving actual_time and
// distance untouched. Used for intersection transition penalties that affect
// route ranking but not reported duration.
func (c RoutingCost) WithPenalty(extra units.ElapsedTime) RoutingCost {
	return RoutingCost{
		CostTime:   c.CostTime.Add(extra),
		ActualTime: c.ActualTime,
		Distance:   c.Distance,
	}
}

// WithAdditional adds to cost_time, actual_time, and distance alike. Used
// when travelling a segment: the elapsed time is both "real" and counted
// against the route cost.
func (c RoutingCost) WithAdditional(extraTime units.ElapsedTime, extraDistance units.TravelledDistance) RoutingCost {
	return RoutingCost{
		CostTime:   c.CostTime.Add(extraTime),
		ActualTime: c.ActualTime.Add(extraTime),
		Distance:   c.Distance.Add(extraDistance),
	}
}

// Add returns the pairwise saturating sum of two costs.
func (c RoutingCost) Add(other RoutingCost) RoutingCost {
	return RoutingCost{
		CostTime:   c.CostTime.Add(other.CostTime),
		ActualTime: c.ActualTime.Add(other.ActualTime),
		Distance:   c.Distance.Add(other.Distance),
	}
}

// Less reports whether c sorts before other under the lexicographic order
// on (cost_time, actual_time, distance).
func (c RoutingCost) Less(other RoutingCost) bool {
	if c.CostTime != other.CostTime {
		return c.CostTime < other.CostTime
	}
	if c.ActualTime != other.ActualTime {
		return c.ActualTime < other.ActualTime
	}
	return c.Distance < other.Distance
}
