package graph

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/mvt"
	"github.com/paulmach/orb/geojson"

	"github.com/ellenhp/mot-go/costing"
)

// buildTile encodes a synthetic single-layer vector tile from raw tile-local
// feature geometry and properties, mirroring the shape IngestTile expects:
// roads/intersections layers whose feature geometry is already in the
// tile's local integer coordinate space.
func buildTile(t *testing.T, layerName string, extent uint32, features []*geojson.Feature) []byte {
	t.Helper()
	layer := &mvt.Layer{
		Name:     layerName,
		Version:  2,
		Extent:   extent,
		Features: features,
	}
	data, err := mvt.Marshal(mvt.Layers{layer})
	if err != nil {
		t.Fatalf("buildTile: marshal failed: %v", err)
	}
	return data
}

func roadFeature(wayID uint64, tags map[string]interface{}, line orb.LineString) *geojson.Feature {
	props := geojson.Properties{"way_id": wayID}
	for k, v := range tags {
		props[k] = v
	}
	return &geojson.Feature{Geometry: line, Properties: props}
}

func intersectionFeature(wayID, toWayID uint64, fromMeters, toMeters float64, point orb.Point) *geojson.Feature {
	return &geojson.Feature{
		Geometry: point,
		Properties: geojson.Properties{
			"way_id":                           wayID,
			"transition_to_way":                toWayID,
			"distance_along_way":               fromMeters,
			"transition_to_distance_along_way": toMeters,
		},
	}
}

func TestIngestTileCommitsWaysGeometryAndTransitions(t *testing.T) {
	g := New(costing.PedestrianCostingModel(1.4))

	ways := buildTile(t, layerRoads, 4096, []*geojson.Feature{
		roadFeature(1, map[string]interface{}{"highway": "footway"}, orb.LineString{{0, 0}, {100, 0}}),
		roadFeature(2, map[string]interface{}{"highway": "footway"}, orb.LineString{{100, 0}, {200, 0}}),
	})
	nodes := buildTile(t, layerIntersections, 4096, []*geojson.Feature{
		intersectionFeature(1, 2, 10.0, 0.0, orb.Point{100, 0}),
	})

	if err := g.IngestTile(10, 20, 14, ways, nodes); err != nil {
		t.Fatalf("IngestTile failed: %v", err)
	}

	if _, ok := g.WayCoster(1); !ok {
		t.Fatalf("expected way 1 to have a coster")
	}
	if _, ok := g.WayCoster(2); !ok {
		t.Fatalf("expected way 2 to have a coster")
	}

	geom, ok := g.Geometry(1)
	if !ok || len(geom) != 2 {
		t.Fatalf("expected way 1 geometry with 2 vertices, got %v ok=%v", geom, ok)
	}

	node := SearchNode{Way: 1, DistanceMM: 10000}
	pairs := g.TransitionsAt(node)
	// The pedestrian model prices a continue for every intersection, so the
	// node carries the way-2 transition plus an identity continue transition.
	if len(pairs) != 2 {
		t.Fatalf("expected a way-2 transition and a continue at node, got %d", len(pairs))
	}
	wantTransition := WayTransition{FromWay: 1, FromDistanceMM: 10000, ToWay: 2, ToDistanceMM: 0}
	if diff := cmp.Diff(wantTransition, pairs[0].Transition); diff != "" {
		t.Fatalf("unexpected transition (-want +got):\n%s", diff)
	}
	wantContinue := WayTransition{FromWay: 1, FromDistanceMM: 10000, ToWay: 1, ToDistanceMM: 10000}
	if diff := cmp.Diff(wantContinue, pairs[1].Transition); diff != "" {
		t.Fatalf("unexpected continue transition (-want +got):\n%s", diff)
	}

	nodesOnWay := g.SearchNodesOnWay(1)
	if len(nodesOnWay) != 1 || nodesOnWay[0] != 10000 {
		t.Fatalf("expected a single search node at 10000mm on way 1, got %v", nodesOnWay)
	}
}

func TestIngestTileUndecodableBytesIsFatal(t *testing.T) {
	g := New(costing.PedestrianCostingModel(1.4))

	nodes := buildTile(t, layerIntersections, 4096, nil)
	if err := g.IngestTile(0, 0, 0, []byte("not a vector tile"), nodes); err == nil {
		t.Fatalf("expected an error for undecodable tile bytes")
	}
}

func TestIngestTileWithoutEitherLayerLeavesGraphUnchanged(t *testing.T) {
	g := New(costing.PedestrianCostingModel(1.4))

	empty := buildTile(t, "unrelated", 4096, nil)
	if err := g.IngestTile(0, 0, 0, empty, empty); err != nil {
		t.Fatalf("ingesting a tile without roads or intersections should succeed, got %v", err)
	}
	if g.ways.Len() != 0 || g.geometry.Len() != 0 || g.wayNodes.Len() != 0 || g.transitions.Len() != 0 {
		t.Fatalf("expected all maps to stay empty after a layerless tile")
	}
}

func TestIngestTileSkipsIntersectionReferencingUnknownWay(t *testing.T) {
	g := New(costing.PedestrianCostingModel(1.4))

	ways := buildTile(t, layerRoads, 4096, []*geojson.Feature{
		roadFeature(1, map[string]interface{}{"highway": "footway"}, orb.LineString{{0, 0}, {100, 0}}),
	})
	nodes := buildTile(t, layerIntersections, 4096, []*geojson.Feature{
		intersectionFeature(1, 999, 10.0, 0.0, orb.Point{100, 0}),
	})

	if err := g.IngestTile(0, 0, 0, ways, nodes); err != nil {
		t.Fatalf("IngestTile should not fail on an unknown to-way, got %v", err)
	}

	node := SearchNode{Way: 1, DistanceMM: 10000}
	if pairs := g.TransitionsAt(node); len(pairs) != 0 {
		t.Fatalf("expected no transitions recorded for an unknown to-way, got %v", pairs)
	}
}
