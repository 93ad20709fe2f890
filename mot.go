// Package mot is the engine's external entry point: ingest_tile, clear, and
// search, operating on a single lazily-created default graph instance.
package mot

import (
	"fmt"
	"sync"

	"github.com/ellenhp/mot-go/costing"
	"github.com/ellenhp/mot-go/graph"
	"github.com/ellenhp/mot-go/search"
)

var (
	defaultGraphOnce sync.Once
	defaultGraph     *graph.Graph
)

// getGraph lazily builds the single default graph instance, mirroring the
// original's OnceLock+Mutex pairing in its routing demo. The graph is built
// with the model passed on the first call; the model argument of every
// later call is ignored.
func getGraph(model costing.CostingModel) *graph.Graph {
	defaultGraphOnce.Do(func() {
		defaultGraph = graph.New(model)
	})
	return defaultGraph
}

// IngestTile parses and merges a vector tile into the default graph. The
// tile's ways and intersections are priced by the costing model the default
// graph was built with (the model of the first call into this package);
// model only takes effect when this is that first call.
func IngestTile(model costing.CostingModel, tileX, tileY, z uint32, waysBytes, nodesBytes []byte) error {
	g := getGraph(model)
	if err := g.IngestTile(tileX, tileY, z, waysBytes, nodesBytes); err != nil {
		return fmt.Errorf("mot: ingest_tile: %w", err)
	}
	return nil
}

// Clear purges the default graph in its entirety.
func Clear(model costing.CostingModel) {
	g := getGraph(model)
	g.Clear()
}

// maxSnapMeters bounds how far a query coordinate may sit from the nearest
// indexed way vertex. A point further out than this is outside the loaded
// graph, and searching from it returns absent rather than routing from
// whatever happens to be the closest loaded tile.
const maxSnapMeters = 500.0

// Search snaps (fromLon, fromLat) and (toLon, toLat) to the nearest indexed
// way and runs the modified Dijkstra search between them, returning the
// route (encoded polyline5 plus distance, duration and cost) and true, or a
// zero Result and false if no route exists.
func Search(model costing.CostingModel, fromLon, fromLat, toLon, toLat float64) (search.Result, bool) {
	g := getGraph(model)

	start, startDist, ok := g.NearestWay(fromLat, fromLon)
	if !ok || startDist > maxSnapMeters {
		return search.Result{}, false
	}
	end, endDist, ok := g.NearestWay(toLat, toLon)
	if !ok || endDist > maxSnapMeters {
		return search.Result{}, false
	}

	stepLog, terminal, found := search.Run(g, start, end)
	if !found {
		return search.Result{}, false
	}

	result, err := search.Reconstruct(g, stepLog, terminal)
	if err != nil {
		return search.Result{}, false
	}
	return result, true
}
