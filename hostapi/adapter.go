package hostapi

import (
	"github.com/ellenhp/mot-go/costing"
	"github.com/ellenhp/mot-go/units"
)

// HostCostingModel adapts a pair of host callback functions, shaped exactly
// like the JSON request/response types in this package, into a
// costing.CostingModel. It exists so the hostapi schema has a concrete,
// exercised consumer even though no actual WASM/JS transport is implemented
// here: a future binding only needs to deserialize into these same structs
// and call through this adapter.
type HostCostingModel struct {
	CostWayFn          func(tags map[string]string) WayCostResponse
	CostIntersectionFn func(currentWayTags map[string]string, transitions []TransitionToCostRequest) IntersectionCostResponse
}

// CostWay implements costing.CostingModel. A schema-mismatched or nil
// response direction is treated as impassable.
func (h HostCostingModel) CostWay(tags costing.Tags) costing.WayCoster {
	if h.CostWayFn == nil {
		return costing.Impassable()
	}
	resp := h.CostWayFn(tags.All())

	var coster costing.WayCoster
	if resp.SpeedForwardMetersPerSecond != nil {
		speed := units.FromMetersPerSecond(*resp.SpeedForwardMetersPerSecond)
		coster.SpeedForward = &speed
		ppm := fractionToPPM(resp.TimePenaltyFractionForward)
		coster.PenaltyPPMForward = &ppm
	}
	if resp.SpeedReverseMetersPerSecond != nil {
		speed := units.FromMetersPerSecond(*resp.SpeedReverseMetersPerSecond)
		coster.SpeedReverse = &speed
		ppm := fractionToPPM(resp.TimePenaltyFractionReverse)
		coster.PenaltyPPMReverse = &ppm
	}
	return coster
}

// CostIntersection implements costing.CostingModel. A nil callback or an
// absent to_way_id entry is treated as impassable for that transition.
func (h HostCostingModel) CostIntersection(currentWayTags costing.Tags, transitions []costing.TransitionToCost) costing.IntersectionCost {
	if h.CostIntersectionFn == nil {
		return costing.IntersectionCost{}
	}

	reqs := make([]TransitionToCostRequest, 0, len(transitions))
	for _, t := range transitions {
		reqs = append(reqs, TransitionToCostRequest{
			FromWayID:        uint64(t.FromWayID),
			ToWayID:          uint64(t.ToWayID),
			FromWayTags:      t.FromWayTags.All(),
			ToWayTags:        t.ToWayTags.All(),
			IntersectionTags: t.IntersectionTags.All(),
		})
	}

	resp := h.CostIntersectionFn(currentWayTags.All(), reqs)

	result := costing.IntersectionCost{PerToWay: make(map[costing.WayId]costing.RoutingCost, len(resp.TransitionCosts))}
	for _, tc := range resp.TransitionCosts {
		result.PerToWay[costing.WayId(tc.ToWayID)] = costing.ZeroCost().WithPenalty(secondsToElapsed(tc.PenaltySeconds))
	}
	if resp.ContinuePenalty != nil {
		cost := costing.ZeroCost().WithPenalty(secondsToElapsed(*resp.ContinuePenalty))
		result.ContinueCost = &cost
	}
	return result
}

// secondsToElapsed converts a floating-point seconds value (as carried over
// the JSON boundary) into millisecond-resolution ElapsedTime.
func secondsToElapsed(seconds float64) units.ElapsedTime {
	if seconds <= 0 {
		return units.ZeroTime()
	}
	return units.ElapsedTime(seconds * 1000.0)
}

func fractionToPPM(fraction *float64) units.PartsPerMillion {
	if fraction == nil {
		return units.ZeroPPM()
	}
	return units.PPMFromFraction(*fraction)
}
