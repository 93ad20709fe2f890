package mot

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/mvt"
	"github.com/paulmach/orb/geojson"

	"github.com/ellenhp/mot-go/costing"
	"github.com/ellenhp/mot-go/tilecoord"
)

func buildTile(t *testing.T, layerName string, extent uint32, features []*geojson.Feature) []byte {
	t.Helper()
	layer := &mvt.Layer{Name: layerName, Version: 2, Extent: extent, Features: features}
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

// TestIngestTileThenSearchEndToEnd reproduces the documented S1 scenario's
// shape: two ways joined end to end, ingested from a single synthetic tile,
// with Search snapping real-world lon/lat endpoints onto the graph and
// returning a non-empty encoded route.
func TestIngestTileThenSearchEndToEnd(t *testing.T) {
	const tileX, tileY, z, extent = 100, 100, 14, 4096

	ways := buildTile(t, "roads", extent, []*geojson.Feature{
		roadFeature(1173831634, map[string]interface{}{"highway": "footway"}, orb.LineString{{0, 0}, {extent, 0}}),
		roadFeature(1172841584, map[string]interface{}{"highway": "footway"}, orb.LineString{{extent, 0}, {extent, extent}}),
	})
	nodes := buildTile(t, "intersections", extent, []*geojson.Feature{
		intersectionFeature(1173831634, 1172841584, float64(extent), 0, orb.Point{extent, 0}),
	})

	model := costing.PedestrianCostingModel(1.4)

	if err := IngestTile(model, tileX, tileY, z, ways, nodes); err != nil {
		t.Fatalf("IngestTile failed: %v", err)
	}

	startCoord := tilecoord.New(0, 0, z, extent, tileX, tileY)
	endCoord := tilecoord.New(extent, extent, z, extent, tileX, tileY)
	startLat, startLng := startCoord.ToLatLng()
	endLat, endLng := endCoord.ToLatLng()

	result, found := Search(model, startLng, startLat, endLng, endLat)
	if !found {
		t.Fatalf("expected a route between the two joined ways")
	}
	if result.Polyline5 == "" {
		t.Fatalf("expected a non-empty encoded polyline")
	}
	if result.DistanceMeters <= 0 {
		t.Fatalf("expected a positive route distance, got %f", result.DistanceMeters)
	}

	// Coordinates far outside the loaded tile must not snap onto it.
	if _, found := Search(model, 0, 0, endLng, endLat); found {
		t.Fatalf("expected no route from a coordinate outside the loaded graph")
	}

	// Clearing is total: every search afterwards returns absent, and
	// re-ingesting the same bytes reproduces the original result.
	Clear(model)
	if _, found := Search(model, startLng, startLat, endLng, endLat); found {
		t.Fatalf("expected no route after Clear")
	}
	if err := IngestTile(model, tileX, tileY, z, ways, nodes); err != nil {
		t.Fatalf("re-ingest after Clear failed: %v", err)
	}
	again, found := Search(model, startLng, startLat, endLng, endLat)
	if !found {
		t.Fatalf("expected the route to come back after re-ingesting the same tile")
	}
	if again.Polyline5 != result.Polyline5 || again.DistanceMeters != result.DistanceMeters {
		t.Fatalf("re-ingested route differs: %+v vs %+v", again, result)
	}
}

func TestSearchWithNoIngestedDataReturnsNotFound(t *testing.T) {
	model := costing.PedestrianCostingModel(1.4)
	Clear(model)

	if _, found := Search(model, 0, 0, 1, 1); found {
		t.Fatalf("expected no route before any tile is ingested")
	}
}
