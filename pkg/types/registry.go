// Package types holds the wire messages exchanged over the bus between the
// registry service, the nodes, and client tooling.
package types

import "github.com/Morgane2t/decent-workshop-4/pkg/registry"

// StatusLive is the liveness probe reply value.
const StatusLive = "live"

type RegisterRequest struct {
	NodeID int    `json:"node_id"`
	PubKey string `json:"pub_key"`
}

// RegisterResponse carries the registration outcome as a tagged status:
// "registered" or "already_registered". Callers switch on the value, never on
// prose.
type RegisterResponse struct {
	Status registry.Outcome `json:"status"`
	Error  string           `json:"error,omitempty"`
}

type NodesResponse struct {
	Nodes []registry.Node `json:"nodes"`
	Error string          `json:"error,omitempty"`
}

type StatusResponse struct {
	Status string `json:"status"`
}
