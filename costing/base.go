package costing

import "github.com/ellenhp/mot-go/units"

// WayCost is the per-direction speed/penalty a WaySpeedFunc builds up for a
// single way. It is assembled with a starting speed and optionally narrowed
// or penalized as tags are inspected.
type WayCost struct {
	Speed       units.TravelSpeed
	PenaltyPPM  units.PartsPerMillion
	FlatPenalty units.ElapsedTime
}

// WayCostFromSpeed starts a WayCost at the given speed with no penalties.
func WayCostFromSpeed(speed units.TravelSpeed) WayCost {
	return WayCost{Speed: speed}
}

// LimitSpeed narrows the way's speed to the slower of its current speed and
// the given speed.
func (w *WayCost) LimitSpeed(speed units.TravelSpeed) {
	w.Speed = w.Speed.Min(speed)
}

// AddPenaltyPPM accumulates an additional ppm penalty.
func (w *WayCost) AddPenaltyPPM(penalty units.PartsPerMillion) {
	w.PenaltyPPM = w.PenaltyPPM.Add(penalty)
}

// AddFlatPenalty accumulates an additional flat-time penalty that does not
// scale with length. WayCoster.CostWaySegment folds it into cost_time via
// WithPenalty on every call, so it is paid once per segment costed (including
// zero-length segments), not once per way: a way crossed through several
// intersections pays it once for each segment between them.
func (w *WayCost) AddFlatPenalty(penalty units.ElapsedTime) {
	w.FlatPenalty = w.FlatPenalty.Add(penalty)
}

// WaySpeedFunc computes the WayCost for one direction of travel along a way,
// or nil if that direction is impassable.
type WaySpeedFunc func(dir Direction, tags Tags) *WayCost

// IntersectionFunc prices a group of transitions sharing a source node.
type IntersectionFunc func(currentWayTags Tags, transitions []TransitionToCost) IntersectionCost

// BaseCostingModel adapts a pair of plain functions into a CostingModel,
// using Go closures in place of a class hierarchy per costing profile.
type BaseCostingModel struct {
	speedFn        WaySpeedFunc
	intersectionFn IntersectionFunc
}

// NewBaseCostingModel builds a CostingModel from a per-direction speed
// function and an intersection pricing function.
func NewBaseCostingModel(speedFn WaySpeedFunc, intersectionFn IntersectionFunc) *BaseCostingModel {
	return &BaseCostingModel{speedFn: speedFn, intersectionFn: intersectionFn}
}

func (m *BaseCostingModel) CostIntersection(currentWayTags Tags, transitions []TransitionToCost) IntersectionCost {
	return m.intersectionFn(currentWayTags, transitions)
}

func (m *BaseCostingModel) CostWay(tags Tags) WayCoster {
	forward := m.speedFn(Forward, tags)
	reverse := m.speedFn(Reverse, tags)

	var coster WayCoster
	if forward != nil {
		speed := forward.Speed
		ppm := forward.PenaltyPPM
		coster.SpeedForward = &speed
		coster.PenaltyPPMForward = &ppm
		coster.FlatPenaltyForward = forward.FlatPenalty
	}
	if reverse != nil {
		speed := reverse.Speed
		ppm := reverse.PenaltyPPM
		coster.SpeedReverse = &speed
		coster.PenaltyPPMReverse = &ppm
		coster.FlatPenaltyReverse = reverse.FlatPenalty
	}
	return coster
}
