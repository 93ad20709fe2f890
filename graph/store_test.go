package graph

import (
	"testing"

	"github.com/ellenhp/mot-go/costing"
)

func TestSnapshotMapInsertIsInvisibleUntilRefresh(t *testing.T) {
	m := newSnapshotMap[WayId, int]()
	m.Insert(map[WayId]int{1: 10})

	if _, ok := m.Get(1); ok {
		t.Fatalf("unrefreshed insert should not be visible to readers")
	}

	m.Refresh()
	v, ok := m.Get(1)
	if !ok || v != 10 {
		t.Fatalf("expected 10 after refresh, got %d, %v", v, ok)
	}
}

func TestSnapshotMapInsertAccumulatesAcrossCalls(t *testing.T) {
	m := newSnapshotMap[WayId, int]()
	m.Insert(map[WayId]int{1: 1})
	m.Insert(map[WayId]int{2: 2})
	m.Refresh()

	if v, ok := m.Get(1); !ok || v != 1 {
		t.Fatalf("expected way 1 == 1, got %d %v", v, ok)
	}
	if v, ok := m.Get(2); !ok || v != 2 {
		t.Fatalf("expected way 2 == 2, got %d %v", v, ok)
	}
}

func TestSnapshotMapPurgeClearsOnRefresh(t *testing.T) {
	m := newSnapshotMap[WayId, int]()
	m.Insert(map[WayId]int{1: 1})
	m.Refresh()

	m.Purge()
	if _, ok := m.Get(1); !ok {
		t.Fatalf("purge should not take effect before refresh")
	}
	m.Refresh()
	if _, ok := m.Get(1); ok {
		t.Fatalf("purge should have cleared the map after refresh")
	}
}

func TestGraphClearPurgesAllFourMaps(t *testing.T) {
	model := costing.PedestrianCostingModel(1.4)
	g := New(model)

	g.ways.Insert(map[WayId]costing.WayCoster{1: model.CostWay(costing.NewTags(nil))})
	g.ways.Refresh()
	if _, ok := g.WayCoster(1); !ok {
		t.Fatalf("setup: expected way 1 present before Clear")
	}

	g.Clear()
	if _, ok := g.WayCoster(1); ok {
		t.Fatalf("expected way 1 gone after Clear")
	}
	if g.index.Load() != nil {
		t.Fatalf("expected spatial index dropped after Clear")
	}
}
