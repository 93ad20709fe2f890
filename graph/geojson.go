package graph

import (
	"github.com/paulmach/go.geojson"
)

// ExportGeoJSON dumps the currently published way geometry as a GeoJSON
// FeatureCollection, one LineString feature per way tagged with its
// way_id, for inspection during development.
func (g *Graph) ExportGeoJSON() *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()

	snap := *g.geometry.snapshot.Load()
	for way, coords := range snap {
		if len(coords) == 0 {
			continue
		}
		path := make([][]float64, 0, len(coords))
		for _, c := range coords {
			lat, lng := c.ToLatLng()
			path = append(path, []float64{lng, lat})
		}
		feature := geojson.NewLineStringFeature(path)
		feature.SetProperty("way_id", uint64(way))
		fc.AddFeature(feature)
	}
	return fc
}
