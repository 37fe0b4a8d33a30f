// Package server exposes the node registry over the message bus. Handler
// logic lives on Service so it unit-tests without a broker; Server binds the
// handlers to NATS subjects.
package server

import (
	"fmt"

	"github.com/Morgane2t/decent-workshop-4/pkg/registry"
	"github.com/Morgane2t/decent-workshop-4/pkg/types"
)

// Service implements the registry contract over an injected store.
type Service struct {
	store registry.Store
}

func NewService(store registry.Store) *Service {
	return &Service{store: store}
}

// RegisterNode admits the node unless its ID or public key is already taken.
// A constraint violation is a normal outcome in the response, not an error.
func (s *Service) RegisterNode(req types.RegisterRequest) (types.RegisterResponse, error) {
	outcome, err := s.store.Register(registry.Node{NodeID: req.NodeID, PubKey: req.PubKey})
	if err != nil {
		return types.RegisterResponse{}, fmt.Errorf("register node %d: %w", req.NodeID, err)
	}
	return types.RegisterResponse{Status: outcome}, nil
}

// ListNodes returns the directory in insertion order.
func (s *Service) ListNodes() (types.NodesResponse, error) {
	nodes, err := s.store.ListNodes()
	if err != nil {
		return types.NodesResponse{}, fmt.Errorf("list nodes: %w", err)
	}
	return types.NodesResponse{Nodes: nodes}, nil
}

// Status is the liveness probe. No side effect.
func (s *Service) Status() types.StatusResponse {
	return types.StatusResponse{Status: types.StatusLive}
}
