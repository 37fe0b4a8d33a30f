package registry

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/hashicorp/consul/api"

	"github.com/Morgane2t/decent-workshop-4/pkg/infra"
)

const consulNodesKey = "registry/nodes"

// consulStore keeps the ordered node list as a single JSON document in Consul
// KV. The process-local mutex makes check-then-act atomic for this service
// instance; the registry is served by one process in this scope.
type consulStore struct {
	mu       sync.Mutex
	consulKV infra.ConsulKV
}

var _ Store = (*consulStore)(nil)

// NewConsulStore creates a Consul-backed registry.
func NewConsulStore(consulKV infra.ConsulKV) Store {
	return &consulStore{consulKV: consulKV}
}

func (s *consulStore) Register(node Node) (Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	nodes, err := s.load()
	if err != nil {
		return "", err
	}

	for _, existing := range nodes {
		if existing.NodeID == node.NodeID || existing.PubKey == node.PubKey {
			return AlreadyRegistered, nil
		}
	}

	nodes = append(nodes, node)
	payload, err := json.Marshal(nodes)
	if err != nil {
		return "", fmt.Errorf("marshal node list: %w", err)
	}

	pair := &api.KVPair{Key: consulNodesKey, Value: payload}
	if _, err := s.consulKV.Put(pair, nil); err != nil {
		return "", fmt.Errorf("store node list: %w", err)
	}
	return Registered, nil
}

func (s *consulStore) ListNodes() ([]Node, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *consulStore) load() ([]Node, error) {
	pair, _, err := s.consulKV.Get(consulNodesKey, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch node list: %w", err)
	}
	if pair == nil {
		return nil, nil
	}

	var nodes []Node
	if err := json.Unmarshal(pair.Value, &nodes); err != nil {
		return nil, fmt.Errorf("unmarshal node list: %w", err)
	}
	return nodes, nil
}
