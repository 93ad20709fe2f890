// Package tilecoord converts a vector tile's local integer coordinate space
// into WGS84 longitude/latitude, the way the engine stores way geometry.
package tilecoord

import "math"

// TileCoordinates is a single vertex expressed in a specific tile's local
// coordinate space: (TileX, TileY, Z) identify the slippy-map tile, Extent
// is that tile's coordinate grid size (from the layer's metadata), and (X,
// Y) is the vertex's position within that grid.
type TileCoordinates struct {
	X, Y   int32
	Z      uint32
	Extent uint32
	TileX  uint32
	TileY  uint32
}

// New builds a TileCoordinates for a vertex at local (x, y) within the tile
// (tileX, tileY, z) whose layer extent is extent.
func New(x, y int32, z, extent, tileX, tileY uint32) TileCoordinates {
	return TileCoordinates{X: x, Y: y, Z: z, Extent: extent, TileX: tileX, TileY: tileY}
}

// ToLatLng converts the local coordinate to WGS84 (lat, lng) via the
// standard slippy-map Web-Mercator inverse.
func (c TileCoordinates) ToLatLng() (lat, lng float64) {
	n := math.Exp2(float64(c.Z))
	extent := float64(c.Extent)
	if extent == 0 {
		extent = 4096
	}

	globalX := (float64(c.TileX) + float64(c.X)/extent) / n
	globalY := (float64(c.TileY) + float64(c.Y)/extent) / n

	lng = globalX*360.0 - 180.0
	latRad := math.Atan(math.Sinh(math.Pi * (1 - 2*globalY)))
	lat = latRad * 180.0 / math.Pi
	return lat, lng
}
