package search_test

import (
	"testing"

	"github.com/ellenhp/mot-go/graph"
	"github.com/ellenhp/mot-go/search"
)

func TestReconstructProducesNonEmptyPolylineForWinningRoute(t *testing.T) {
	g := buildThreeAlternativeRoutesGraph(t)

	start := graph.SearchNode{Way: 0, DistanceMM: 0}
	end := graph.SearchNode{Way: 99, DistanceMM: 0}

	stepLog, terminal, found := search.Run(g, start, end)
	if !found {
		t.Fatalf("expected a route to be found")
	}

	result, err := search.Reconstruct(g, stepLog, terminal)
	if err != nil {
		t.Fatalf("Reconstruct failed: %v", err)
	}
	if result.Polyline5 == "" {
		t.Fatalf("expected a non-empty encoded polyline")
	}
	if result.DistanceMeters != 0.1 {
		t.Fatalf("expected 100mm == 0.1m, got %f", result.DistanceMeters)
	}
	if result.DurationSeconds != 0.1 {
		t.Fatalf("expected 100ms == 0.1s, got %f", result.DurationSeconds)
	}
}

func TestReconstructTrivialRouteHasNoCycle(t *testing.T) {
	g := buildThreeAlternativeRoutesGraph(t)

	start := graph.SearchNode{Way: 0, DistanceMM: 0}
	end := graph.SearchNode{Way: 0, DistanceMM: 0}

	stepLog, terminal, found := search.Run(g, start, end)
	if !found {
		t.Fatalf("expected the start node to trivially reach itself")
	}
	if _, err := search.Reconstruct(g, stepLog, terminal); err != nil {
		t.Fatalf("Reconstruct failed on a trivial route: %v", err)
	}
}
