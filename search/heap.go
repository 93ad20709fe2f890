// Package search implements the modified Dijkstra search over position-along-way
// vertices and reconstructs the resulting route as a polyline5 string.
package search

import (
	"container/heap"

	"github.com/ellenhp/mot-go/costing"
	"github.com/ellenhp/mot-go/graph"
)

// frontierItem is a single entry on the search frontier: the step_log index
// it was recorded at, the node it reaches, and the best known cost to reach it.
type frontierItem struct {
	idx  int
	node graph.SearchNode
	cost costing.RoutingCost
}

// frontier is a min-heap over frontierItems ordered by cost, with ties
// broken by SearchNode so that search behaviour is deterministic for equal
// costs.
type frontier []frontierItem

func (f frontier) Len() int { return len(f) }

func (f frontier) Less(i, j int) bool {
	if f[i].cost.Less(f[j].cost) {
		return true
	}
	if f[j].cost.Less(f[i].cost) {
		return false
	}
	return f[i].node.Less(f[j].node)
}

func (f frontier) Swap(i, j int) { f[i], f[j] = f[j], f[i] }

func (f *frontier) Push(x any) {
	*f = append(*f, x.(frontierItem))
}

func (f *frontier) Pop() any {
	old := *f
	n := len(old)
	item := old[n-1]
	*f = old[:n-1]
	return item
}

func newFrontier() *frontier {
	f := &frontier{}
	heap.Init(f)
	return f
}

func (f *frontier) push(item frontierItem) {
	heap.Push(f, item)
}

func (f *frontier) pop() (frontierItem, bool) {
	if f.Len() == 0 {
		return frontierItem{}, false
	}
	return heap.Pop(f).(frontierItem), true
}
