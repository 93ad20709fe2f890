package costing

import "github.com/ellenhp/mot-go/units"

// Direction distinguishes travel along a way from its start towards its end
// (Forward) from travel the other way (Reverse).
type Direction int

const (
	Forward Direction = iota
	Reverse
)

// WayCoster is the per-way summary emitted by a CostingModel: independent
// forward/reverse speeds and ppm penalties. A nil speed in either direction
// means that direction is impassable.
type WayCoster struct {
	SpeedForward       *units.TravelSpeed
	SpeedReverse       *units.TravelSpeed
	PenaltyPPMForward  *units.PartsPerMillion
	PenaltyPPMReverse  *units.PartsPerMillion
	FlatPenaltyForward units.ElapsedTime
	FlatPenaltyReverse units.ElapsedTime
}

// Impassable returns a WayCoster with no speed in either direction.
func Impassable() WayCoster {
	return WayCoster{}
}

func (w WayCoster) speed(dir Direction) *units.TravelSpeed {
	if dir == Forward {
		return w.SpeedForward
	}
	return w.SpeedReverse
}

func (w WayCoster) penaltyPPM(dir Direction) units.PartsPerMillion {
	var p *units.PartsPerMillion
	if dir == Forward {
		p = w.PenaltyPPMForward
	} else {
		p = w.PenaltyPPMReverse
	}
	if p == nil {
		return units.ZeroPPM()
	}
	return *p
}

func (w WayCoster) flatPenalty(dir Direction) units.ElapsedTime {
	if dir == Forward {
		return w.FlatPenaltyForward
	}
	return w.FlatPenaltyReverse
}

// CostWaySegment computes the cost of travelling this way from
// fromDistanceMM to toDistanceMM (both distances along the way, in
// millimetres). The second return value is false if the implied direction
// is impassable.
func (w WayCoster) CostWaySegment(fromDistanceMM, toDistanceMM int32) (RoutingCost, bool) {
	var dir Direction
	var deltaMM int64
	if toDistanceMM < fromDistanceMM {
		dir = Reverse
		deltaMM = int64(fromDistanceMM) - int64(toDistanceMM)
	} else {
		dir = Forward
		deltaMM = int64(toDistanceMM) - int64(fromDistanceMM)
	}

	speed := w.speed(dir)
	if speed == nil {
		return RoutingCost{}, false
	}

	distance := units.TravelledDistance(deltaMM)
	actual, ok := distance.DivSpeed(*speed)
	if !ok {
		return RoutingCost{}, false
	}

	penalty := actual.MulPPM(w.penaltyPPM(dir))
	cost := RoutingCost{
		CostTime:   actual.Add(penalty),
		ActualTime: actual,
		Distance:   distance,
	}
	return cost.WithPenalty(w.flatPenalty(dir)), true
}
