package search

import (
	"github.com/ellenhp/mot-go/costing"
	"github.com/ellenhp/mot-go/graph"
)

// SearchState is one entry of the search's predecessor log. Previous is the
// idx of the predecessor state (the root's Previous equals its own Idx). Via
// is the SearchNode on the predecessor's way through which this state was
// reached — the point at which the previous hop left its way — and is what
// makes path reconstruction direction-unambiguous at hairpin turns.
type SearchState struct {
	Previous int
	Idx      int
	Node     graph.SearchNode
	Via      graph.SearchNode
	Cost     costing.RoutingCost
}

// group is one of the up-to-three transition groups considered when
// expanding a popped state: the SearchNode (via) at which its transitions
// are recorded, and the transitions themselves.
type group struct {
	via         graph.SearchNode
	transitions []graph.CostedWayTransition
	wayEnds     []graph.WayTransition
}

// Run performs the modified Dijkstra search described for this engine: a
// frontier ordered by RoutingCost (ties broken by SearchNode), expanding
// each popped node by locating up to three sparse intersection groups on its
// current way rather than a dense per-edge relaxation, plus a direct
// relaxation onto end whenever the current way is end's way. Returns the
// full step_log and the index of the terminal state, or found=false if the
// frontier empties without reaching end.
func Run(g *graph.Graph, start, end graph.SearchNode) (stepLog []SearchState, terminal int, found bool) {
	bestCost := map[graph.SearchNode]costing.RoutingCost{}

	root := SearchState{Previous: 0, Idx: 0, Node: start, Via: start, Cost: costing.ZeroCost()}
	stepLog = append(stepLog, root)
	bestCost[start] = root.Cost

	f := newFrontier()
	f.push(frontierItem{idx: 0, node: start, cost: root.Cost})

	for {
		item, ok := f.pop()
		if !ok {
			return stepLog, -1, false
		}
		// Stale entries (superseded by a cheaper path found after this one
		// was pushed) are simply skipped rather than re-pushed.
		if item.cost != bestCost[item.node] {
			continue
		}

		s := stepLog[item.idx]
		if s.Node == end {
			return stepLog, s.Idx, true
		}

		coster, ok := g.WayCoster(s.Node.Way)
		if !ok {
			continue
		}

		// Relax directly onto the destination when travelling its way, even
		// if its exact distance isn't a recorded intersection: a caller may
		// ask to end anywhere along a way, not only at a point some other
		// way branches from. Without this, a destination that never sources
		// a transition of its own (the common case — a snapped endpoint is
		// usually mid-way or at a dead end) could never be reached.
		if s.Node.Way == end.Way && s.Node != end {
			if segCost, ok := coster.CostWaySegment(s.Node.DistanceMM, end.DistanceMM); ok {
				candidate := s.Cost.Add(segCost)
				if best, exists := bestCost[end]; !exists || candidate.Less(best) {
					bestCost[end] = candidate
					idx := len(stepLog)
					stepLog = append(stepLog, SearchState{
						Previous: s.Idx,
						Idx:      idx,
						Node:     end,
						Via:      end,
						Cost:     candidate,
					})
					f.push(frontierItem{idx: idx, node: end, cost: candidate})
				}
			}
		}

		for _, grp := range selectGroups(g, s.Node) {
			segCost, ok := coster.CostWaySegment(s.Node.DistanceMM, grp.via.DistanceMM)
			if !ok {
				continue
			}
			costAtVia := s.Cost.Add(segCost)

			for i, t := range grp.transitions {
				wayEnd := grp.wayEnds[i]
				successor := graph.SearchNode{Way: wayEnd.ToWay, DistanceMM: wayEnd.ToDistanceMM}
				candidate := costAtVia.Add(t.Cost)

				best, exists := bestCost[successor]
				if exists && !candidate.Less(best) {
					continue
				}
				bestCost[successor] = candidate

				idx := len(stepLog)
				stepLog = append(stepLog, SearchState{
					Previous: s.Idx,
					Idx:      idx,
					Node:     successor,
					Via:      grp.via,
					Cost:     candidate,
				})
				f.push(frontierItem{idx: idx, node: successor, cost: candidate})
			}
		}
	}
}

// selectGroups locates up to three transition groups on node.Way: the group
// at exactly node (identity/continue transitions), the closest recorded
// search node strictly greater than node on the same way, and the closest
// one strictly less than node.
func selectGroups(g *graph.Graph, node graph.SearchNode) []group {
	distances := g.SearchNodesOnWay(node.Way)
	var result []group

	addGroup := func(distanceMM int32) {
		via := graph.SearchNode{Way: node.Way, DistanceMM: distanceMM}
		pairs := g.TransitionsAt(via)
		if len(pairs) == 0 {
			return
		}
		grp := group{via: via}
		for _, p := range pairs {
			grp.transitions = append(grp.transitions, p.Costed)
			grp.wayEnds = append(grp.wayEnds, p.Transition)
		}
		result = append(result, grp)
	}

	var above, below *int32
	haveIdentity := false
	for i := range distances {
		d := distances[i]
		switch {
		case d == node.DistanceMM:
			haveIdentity = true
		case d > node.DistanceMM:
			if above == nil || d < *above {
				dv := d
				above = &dv
			}
		case d < node.DistanceMM:
			if below == nil || d > *below {
				dv := d
				below = &dv
			}
		}
	}

	if haveIdentity {
		addGroup(node.DistanceMM)
	}
	if above != nil {
		addGroup(*above)
	}
	if below != nil {
		addGroup(*below)
	}
	return result
}
