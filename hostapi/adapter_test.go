package hostapi

import (
	"testing"

	"github.com/ellenhp/mot-go/costing"
)

func TestHostCostingModelCostWayImpassableWhenDirectionMissing(t *testing.T) {
	model := HostCostingModel{
		CostWayFn: func(tags map[string]string) WayCostResponse {
			speed := 1.4
			return WayCostResponse{SpeedForwardMetersPerSecond: &speed}
		},
	}

	coster := model.CostWay(costing.NewTags(nil))
	if coster.SpeedForward == nil {
		t.Fatalf("expected forward direction to be passable")
	}
	if coster.SpeedReverse != nil {
		t.Fatalf("expected reverse direction to be impassable when omitted")
	}
}

func TestHostCostingModelNilCallbacksAreImpassable(t *testing.T) {
	var model HostCostingModel
	coster := model.CostWay(costing.NewTags(nil))
	if coster.SpeedForward != nil || coster.SpeedReverse != nil {
		t.Fatalf("expected a zero-value model to be impassable in both directions")
	}

	result := model.CostIntersection(costing.NewTags(nil), nil)
	if result.PerToWay != nil || result.ContinueCost != nil {
		t.Fatalf("expected a zero-value model to price no transitions")
	}
}

func TestHostCostingModelCostIntersectionConvertsSecondsToCost(t *testing.T) {
	model := HostCostingModel{
		CostIntersectionFn: func(currentWayTags map[string]string, transitions []TransitionToCostRequest) IntersectionCostResponse {
			continuePenalty := 5.0
			costs := make([]TransitionCost, 0, len(transitions))
			for _, tr := range transitions {
				costs = append(costs, TransitionCost{ToWayID: tr.ToWayID, PenaltySeconds: 2.5})
			}
			return IntersectionCostResponse{TransitionCosts: costs, ContinuePenalty: &continuePenalty}
		},
	}

	result := model.CostIntersection(costing.NewTags(nil), []costing.TransitionToCost{
		{FromWayID: 1, ToWayID: 2},
	})

	cost, ok := result.PerToWay[2]
	if !ok {
		t.Fatalf("expected a priced entry for way 2")
	}
	if cost.CostTime.Ms() != 2500 {
		t.Fatalf("expected 2.5s == 2500ms, got %d", cost.CostTime.Ms())
	}
	if result.ContinueCost == nil || result.ContinueCost.CostTime.Ms() != 5000 {
		t.Fatalf("expected continue cost of 5000ms, got %+v", result.ContinueCost)
	}
}
