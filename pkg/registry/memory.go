package registry

import "sync"

type memoryStore struct {
	mu    sync.Mutex
	nodes []Node
	byID  map[int]struct{}
	byKey map[string]struct{}
}

var _ Store = (*memoryStore)(nil)

// NewMemoryStore creates an empty in-memory registry. Its lifetime is the
// process's lifetime.
func NewMemoryStore() Store {
	return &memoryStore{
		byID:  make(map[int]struct{}),
		byKey: make(map[string]struct{}),
	}
}

func (s *memoryStore) Register(node Node) (Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byID[node.NodeID]; exists {
		return AlreadyRegistered, nil
	}
	if _, exists := s.byKey[node.PubKey]; exists {
		return AlreadyRegistered, nil
	}

	s.nodes = append(s.nodes, node)
	s.byID[node.NodeID] = struct{}{}
	s.byKey[node.PubKey] = struct{}{}
	return Registered, nil
}

func (s *memoryStore) ListNodes() ([]Node, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	nodes := make([]Node, len(s.nodes))
	copy(nodes, s.nodes)
	return nodes, nil
}
