// Package hostapi documents the JSON shapes a WebAssembly/JS host boundary
// would marshal the engine's costing callbacks and host-exposed operations
// through. No binding is implemented here — the browser-sandbox host
// environment is out of scope for this module — these are plain Go structs
// with encoding/json tags so a future binding layer has a concrete schema
// to marshal against.
package hostapi

// WayCostResponse is the JSON shape a host-provided cost_way callback
// returns. A nil/omitted speed in either direction means that direction is
// impassable.
type WayCostResponse struct {
	SpeedForwardMetersPerSecond *float64 `json:"speed_forward_meters_per_second,omitempty"`
	SpeedReverseMetersPerSecond *float64 `json:"speed_reverse_meters_per_second,omitempty"`
	TimePenaltyFractionForward  *float64 `json:"time_penalty_fraction_forward,omitempty"`
	TimePenaltyFractionReverse  *float64 `json:"time_penalty_fraction_reverse,omitempty"`
}

// TransitionToCostRequest is one candidate transition passed to a host's
// cost_intersection callback.
type TransitionToCostRequest struct {
	FromWayID        uint64            `json:"from_way_id"`
	ToWayID          uint64            `json:"to_way_id"`
	FromWayTags      map[string]string `json:"from_way_tags"`
	ToWayTags        map[string]string `json:"to_way_tags"`
	IntersectionTags map[string]string `json:"intersection_tags"`
}

// TransitionCost is one priced entry in an IntersectionCostResponse.
type TransitionCost struct {
	ToWayID        uint64  `json:"to_way_id"`
	PenaltySeconds float64 `json:"penalty_seconds"`
}

// IntersectionCostResponse is the JSON shape a host-provided
// cost_intersection callback returns. A to_way_id absent from
// TransitionCosts is impassable at this intersection; a nil ContinuePenalty
// means the intersection cannot be passed through without turning.
type IntersectionCostResponse struct {
	TransitionCosts []TransitionCost `json:"transition_costs"`
	ContinuePenalty *float64         `json:"continue_penalty_seconds,omitempty"`
}

// IngestTileRequest is the JSON shape of an ingest_tile host call. Byte
// blobs are base64-encoded by the host's JSON transport.
type IngestTileRequest struct {
	X          uint32 `json:"x"`
	Y          uint32 `json:"y"`
	Z          uint32 `json:"z"`
	WaysBytes  []byte `json:"ways_bytes"`
	NodesBytes []byte `json:"nodes_bytes"`
}

// SearchRequest is the JSON shape of a search host call.
type SearchRequest struct {
	FromLon float64 `json:"from_lon"`
	FromLat float64 `json:"from_lat"`
	ToLon   float64 `json:"to_lon"`
	ToLat   float64 `json:"to_lat"`
}

// SearchResponse is the JSON shape of a search host call's result. Polyline5
// is empty and Found is false when no route exists.
type SearchResponse struct {
	Found           bool    `json:"found"`
	Polyline5       string  `json:"polyline5,omitempty"`
	DistanceMeters  float64 `json:"distance_meters,omitempty"`
	DurationSeconds float64 `json:"duration_seconds,omitempty"`
	CostSeconds     float64 `json:"cost_seconds,omitempty"`
}
