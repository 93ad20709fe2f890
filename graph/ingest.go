package graph

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/mvt"
	"github.com/paulmach/orb/geojson"

	"github.com/ellenhp/mot-go/costing"
	"github.com/ellenhp/mot-go/tilecoord"
)

// ErrDecodeTile is reported by IngestTile when the tile bytes are not a
// valid vector tile. A decode failure aborts the whole tile; a malformed
// individual feature is logged and skipped, per the ambient error taxonomy.
var ErrDecodeTile = errors.New("graph: failed to decode tile bytes")

const (
	layerRoads         = "roads"
	layerIntersections = "intersections"

	propWayID                        = "way_id"
	propTransitionToWay              = "transition_to_way"
	propDistanceAlongWay             = "distance_along_way"
	propTransitionToDistanceAlongWay = "transition_to_distance_along_way"
)

// intersectionRecord is a single decoded feature from the intersections
// layer, before grouping by source SearchNode.
type intersectionRecord struct {
	node       SearchNode
	transition WayTransition
	tags       costing.Tags
}

// IngestTile parses a tile's ways and nodes layers and merges the resulting
// ways, geometry, and transitions into the graph. Ways and geometry are
// committed and refreshed before transitions and nodes, so a reader never
// observes a transition whose target way lacks a coster.
func (g *Graph) IngestTile(tileX, tileY, z uint32, waysBytes, nodesBytes []byte) error {
	waysLayers, err := mvt.Unmarshal(waysBytes)
	if err != nil {
		return fmt.Errorf("%w: ways layer: %w", ErrDecodeTile, err)
	}
	nodesLayers, err := mvt.Unmarshal(nodesBytes)
	if err != nil {
		return fmt.Errorf("%w: nodes layer: %w", ErrDecodeTile, err)
	}

	// A tile may legitimately omit either layer; an absent layer is an empty
	// one, and ingesting a tile with neither layer leaves the graph unchanged.
	roads := findLayer(waysLayers, layerRoads)
	intersections := findLayer(nodesLayers, layerIntersections)

	ways := make(map[WayId]costing.WayCoster)
	geometry := make(map[WayId][]tilecoord.TileCoordinates)
	wayTags := make(map[WayId]costing.Tags)

	var roadFeatures []*geojson.Feature
	extent := uint32(4096)
	if roads != nil {
		roadFeatures = roads.Features
		if roads.Extent != 0 {
			extent = roads.Extent
		}
	}

	for _, feature := range roadFeatures {
		wayID, ok := propertyWayID(feature.Properties, propWayID)
		if !ok {
			slog.Warn("graph: road feature missing way_id, skipping")
			continue
		}
		tags := tagsFromProperties(feature.Properties)

		coords, ok := lineStringVertices(feature.Geometry)
		if !ok {
			slog.Warn("graph: road feature has non-linestring geometry, skipping", "way_id", wayID)
			continue
		}
		polyline := make([]tilecoord.TileCoordinates, 0, len(coords))
		for _, p := range coords {
			polyline = append(polyline, tilecoord.New(int32(p[0]), int32(p[1]), z, extent, tileX, tileY))
		}

		ways[WayId(wayID)] = g.costingModel.CostWay(tags)
		geometry[WayId(wayID)] = polyline
		wayTags[WayId(wayID)] = tags
	}

	g.ways.Insert(ways)
	g.geometry.Insert(geometry)
	g.ways.Refresh()
	g.geometry.Refresh()

	var intersectionFeatures []*geojson.Feature
	if intersections != nil {
		intersectionFeatures = intersections.Features
	}

	var records []intersectionRecord
	for _, feature := range intersectionFeatures {
		wayID, ok := propertyWayID(feature.Properties, propWayID)
		if !ok {
			slog.Warn("graph: intersection feature missing way_id, skipping")
			continue
		}
		toWayID, ok := propertyWayID(feature.Properties, propTransitionToWay)
		if !ok {
			slog.Warn("graph: intersection feature missing transition_to_way, skipping", "way_id", wayID)
			continue
		}
		fromMeters, ok := propertyFloat64(feature.Properties, propDistanceAlongWay)
		if !ok {
			slog.Warn("graph: intersection feature missing distance_along_way, skipping", "way_id", wayID)
			continue
		}
		toMeters, ok := propertyFloat64(feature.Properties, propTransitionToDistanceAlongWay)
		if !ok {
			slog.Warn("graph: intersection feature missing transition_to_distance_along_way, skipping", "way_id", wayID)
			continue
		}

		fromMM := int32(fromMeters * 1000.0)
		toMM := int32(toMeters * 1000.0)

		if _, ok := wayTags[WayId(wayID)]; !ok {
			slog.Warn("graph: intersection references unknown from-way, skipping", "way_id", wayID)
			continue
		}
		if _, ok := wayTags[WayId(toWayID)]; !ok {
			slog.Warn("graph: intersection references unknown to-way, skipping", "to_way_id", toWayID)
			continue
		}

		records = append(records, intersectionRecord{
			node: SearchNode{Way: WayId(wayID), DistanceMM: fromMM},
			transition: WayTransition{
				FromWay:        WayId(wayID),
				FromDistanceMM: fromMM,
				ToWay:          WayId(toWayID),
				ToDistanceMM:   toMM,
			},
			tags: tagsFromProperties(feature.Properties),
		})
	}

	groups := make(map[SearchNode][]intersectionRecord)
	for _, rec := range records {
		groups[rec.node] = append(groups[rec.node], rec)
	}

	transitions := make(map[SearchNode][]TransitionPair)
	wayNodes := make(map[WayId]map[int32]bool)

	for node, group := range groups {
		currentTags := wayTags[node.Way]

		toCost := make([]costing.TransitionToCost, 0, len(group))
		for _, rec := range group {
			toCost = append(toCost, costing.TransitionToCost{
				FromWayID:        node.Way,
				ToWayID:          rec.transition.ToWay,
				FromWayTags:      currentTags,
				ToWayTags:        wayTags[rec.transition.ToWay],
				IntersectionTags: rec.tags,
			})
		}

		result := g.costingModel.CostIntersection(currentTags, toCost)

		var pairs []TransitionPair
		for _, rec := range group {
			cost, ok := result.PerToWay[rec.transition.ToWay]
			if !ok {
				continue
			}
			pairs = append(pairs, TransitionPair{
				Costed:     CostedWayTransition{ToWay: rec.transition.ToWay, Cost: cost},
				Transition: rec.transition,
			})
		}
		if result.ContinueCost != nil {
			pairs = append(pairs, TransitionPair{
				Costed:     CostedWayTransition{ToWay: node.Way, Cost: *result.ContinueCost},
				Transition: WayTransition{FromWay: node.Way, FromDistanceMM: node.DistanceMM, ToWay: node.Way, ToDistanceMM: node.DistanceMM},
			})
		}

		if len(pairs) == 0 {
			continue
		}
		transitions[node] = pairs

		if wayNodes[node.Way] == nil {
			wayNodes[node.Way] = make(map[int32]bool)
		}
		wayNodes[node.Way][node.DistanceMM] = true
		for _, p := range pairs {
			if wayNodes[p.Transition.ToWay] == nil {
				wayNodes[p.Transition.ToWay] = make(map[int32]bool)
			}
			wayNodes[p.Transition.ToWay][p.Transition.ToDistanceMM] = true
		}
	}

	wayNodeDistances := make(map[WayId][]int32, len(wayNodes))
	for way, set := range wayNodes {
		existing := g.SearchNodesOnWay(way)
		merged := make(map[int32]bool, len(set)+len(existing))
		for _, d := range existing {
			merged[d] = true
		}
		for d := range set {
			merged[d] = true
		}
		distances := make([]int32, 0, len(merged))
		for d := range merged {
			distances = append(distances, d)
		}
		sort.Slice(distances, func(i, j int) bool { return distances[i] < distances[j] })
		wayNodeDistances[way] = distances
	}

	g.wayNodes.Insert(wayNodeDistances)
	g.transitions.Insert(transitions)
	g.wayNodes.Refresh()
	g.transitions.Refresh()

	g.buildIndex()

	return nil
}

func findLayer(layers mvt.Layers, name string) *mvt.Layer {
	for _, l := range layers {
		if l.Name == name {
			return l
		}
	}
	return nil
}

func lineStringVertices(geom orb.Geometry) ([]orb.Point, bool) {
	switch g := geom.(type) {
	case orb.LineString:
		return g, true
	case orb.MultiLineString:
		if len(g) == 1 {
			return g[0], true
		}
		return nil, false
	default:
		return nil, false
	}
}

func propertyWayID(props map[string]interface{}, key string) (uint64, bool) {
	v, ok := props[key]
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case uint64:
		return n, true
	case int64:
		return uint64(n), true
	case int:
		return uint64(n), true
	case float64:
		return uint64(n), true
	default:
		return 0, false
	}
}

func propertyFloat64(props map[string]interface{}, key string) (float64, bool) {
	v, ok := props[key]
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	case int:
		return float64(n), true
	default:
		return 0, false
	}
}

func tagsFromProperties(props map[string]interface{}) costing.Tags {
	values := make(map[string]string)
	for k, v := range props {
		if s, ok := v.(string); ok {
			values[k] = s
		}
	}
	return costing.NewTags(values)
}
