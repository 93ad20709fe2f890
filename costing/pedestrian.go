package costing

import "github.com/ellenhp/mot-go/units"

// Road-type and attribute tag values the pedestrian profile inspects.
const (
	tagHighway  = "highway"
	tagSidewalk = "sidewalk"

	highwayFootway      = "footway"
	highwaySteps        = "steps"
	highwayMotorway     = "motorway"
	highwayTrunk        = "trunk"
	highwayMotorwayLink = "motorway_link"
	highwayTrunkLink    = "trunk_link"
	highwaySecondary    = "secondary"
	highwayPrimary      = "primary"

	sidewalkBoth     = "both"
	sidewalkLeft     = "left"
	sidewalkRight    = "right"
	sidewalkYes      = "yes"
	sidewalkSeparate = "separate"
)

// PedestrianCostingModel builds the reference pedestrian profile: a flat
// base speed, with flat-time and ppm penalties layered on depending on
// sidewalk presence and road classification. All intersection transitions,
// including continues, are free.
func PedestrianCostingModel(pedestrianSpeedMetersPerSecond float64) CostingModel {
	baseSpeed := units.FromMetersPerSecond(pedestrianSpeedMetersPerSecond)

	speedFn := func(_ Direction, tags Tags) *WayCost {
		cost := WayCostFromSpeed(baseSpeed)

		isFootpath := tags.TagIn(tagHighway, highwayFootway, highwaySteps)
		hasSidewalk := tags.TagIn(tagSidewalk, sidewalkBoth, sidewalkLeft, sidewalkRight, sidewalkYes)
		sidewalkIsSeparate := tags.TagIs(tagSidewalk, sidewalkSeparate) ||
			tags.TagIs("sidewalk:left", sidewalkSeparate) ||
			tags.TagIs("sidewalk:right", sidewalkSeparate)
		isArterial := tags.TagIn(tagHighway, highwaySecondary, highwayPrimary)
		isHighway := tags.TagIn(tagHighway, highwayMotorway, highwayTrunk, highwayMotorwayLink, highwayTrunkLink)

		if isFootpath {
			return &cost
		}

		if sidewalkIsSeparate {
			cost.AddFlatPenalty(units.FromSeconds(30))
			cost.AddPenaltyPPM(units.PPMFromFraction(0.2))
		} else if !hasSidewalk {
			if isHighway {
				cost.AddFlatPenalty(units.FromSeconds(120))
				cost.AddPenaltyPPM(units.PPMFromFraction(2.0))
			} else {
				cost.AddFlatPenalty(units.FromSeconds(10))
				cost.AddPenaltyPPM(units.PPMFromFraction(0.1))
			}
		}

		if isArterial {
			cost.AddPenaltyPPM(units.PPMFromFraction(0.05))
		}

		return &cost
	}

	intersectionFn := func(_ Tags, transitions []TransitionToCost) IntersectionCost {
		zero := ZeroCost()
		perToWay := make(map[WayId]RoutingCost, len(transitions))
		for _, t := range transitions {
			perToWay[t.ToWayID] = zero
		}
		return IntersectionCost{PerToWay: perToWay, ContinueCost: &zero}
	}

	return NewBaseCostingModel(speedFn, intersectionFn)
}
