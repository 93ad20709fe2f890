package graph

import (
	"sync"
	"sync/atomic"

	"github.com/ellenhp/mot-go/costing"
	"github.com/ellenhp/mot-go/tilecoord"
)

// snapshotMap is a concurrent read-optimized map: readers load an
// immutable snapshot through an atomic pointer and never block; writers
// accumulate changes under a mutex and publish them with Refresh, so reads
// never wait on a writer mid-update.
type snapshotMap[K comparable, V any] struct {
	mu       sync.Mutex
	pending  map[K]V
	snapshot atomic.Pointer[map[K]V]
}

func newSnapshotMap[K comparable, V any]() *snapshotMap[K, V] {
	m := &snapshotMap[K, V]{}
	empty := map[K]V{}
	m.snapshot.Store(&empty)
	return m
}

// Get returns the value for k from the current published snapshot.
func (m *snapshotMap[K, V]) Get(k K) (V, bool) {
	snap := *m.snapshot.Load()
	v, ok := snap[k]
	return v, ok
}

// Insert stages entries to be merged into the current snapshot on the next
// Refresh. Multiple Insert calls before a Refresh accumulate.
func (m *snapshotMap[K, V]) Insert(entries map[K]V) {
	if len(entries) == 0 {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	base := m.pending
	if base == nil {
		current := *m.snapshot.Load()
		base = make(map[K]V, len(current)+len(entries))
		for k, v := range current {
			base[k] = v
		}
	}
	for k, v := range entries {
		base[k] = v
	}
	m.pending = base
}

// Refresh atomically publishes any staged inserts so readers see them.
func (m *snapshotMap[K, V]) Refresh() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.pending == nil {
		return
	}
	pending := m.pending
	m.pending = nil
	m.snapshot.Store(&pending)
}

// Purge stages a full wipe of the map, taking effect on the next Refresh.
func (m *snapshotMap[K, V]) Purge() {
	m.mu.Lock()
	defer m.mu.Unlock()
	empty := map[K]V{}
	m.pending = empty
}

// Len reports the size of the currently published snapshot.
func (m *snapshotMap[K, V]) Len() int {
	return len(*m.snapshot.Load())
}

// Graph is the position-indexed routing graph: four snapshot maps (ways,
// geometry, per-way search-node distances, and per-node transitions) plus a
// spatial index used to snap query coordinates to the nearest way.
type Graph struct {
	costingModel costing.CostingModel

	ways        *snapshotMap[WayId, costing.WayCoster]
	geometry    *snapshotMap[WayId, []tilecoord.TileCoordinates]
	wayNodes    *snapshotMap[WayId, []int32] // sorted, deduplicated distances along the way
	transitions *snapshotMap[SearchNode, []TransitionPair]

	indexMu sync.Mutex
	index   atomic.Pointer[KDTree]
}

// New creates an empty graph driven by the given costing model.
func New(costingModel costing.CostingModel) *Graph {
	return &Graph{
		costingModel: costingModel,
		ways:         newSnapshotMap[WayId, costing.WayCoster](),
		geometry:     newSnapshotMap[WayId, []tilecoord.TileCoordinates](),
		wayNodes:     newSnapshotMap[WayId, []int32](),
		transitions:  newSnapshotMap[SearchNode, []TransitionPair](),
	}
}

// Clear purges and refreshes all four maps in the mandated order
// (ways, geometry, then wayNodes, transitions), and drops the spatial index.
// This is not atomic across the whole graph and may race with a concurrent
// search; callers should quiesce searches before clearing.
func (g *Graph) Clear() {
	g.ways.Purge()
	g.geometry.Purge()
	g.wayNodes.Purge()
	g.transitions.Purge()

	g.ways.Refresh()
	g.geometry.Refresh()
	g.wayNodes.Refresh()
	g.transitions.Refresh()

	g.indexMu.Lock()
	g.index.Store(nil)
	g.indexMu.Unlock()
}

// WayCoster returns the published coster for a way, if any.
func (g *Graph) WayCoster(way WayId) (costing.WayCoster, bool) {
	return g.ways.Get(way)
}

// Geometry returns the published polyline for a way, if any.
func (g *Graph) Geometry(way WayId) ([]tilecoord.TileCoordinates, bool) {
	return g.geometry.Get(way)
}

// SearchNodesOnWay returns the sorted, deduplicated set of distances at
// which a way has a recorded search node (i.e. an intersection).
func (g *Graph) SearchNodesOnWay(way WayId) []int32 {
	nodes, _ := g.wayNodes.Get(way)
	return nodes
}

// TransitionsAt returns the transitions recorded at a search node.
func (g *Graph) TransitionsAt(node SearchNode) []TransitionPair {
	pairs, _ := g.transitions.Get(node)
	return pairs
}
