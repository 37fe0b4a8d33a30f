package registry

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterUniqueness(t *testing.T) {
	store := NewMemoryStore()

	outcome, err := store.Register(Node{NodeID: 1, PubKey: "A"})
	require.NoError(t, err)
	assert.Equal(t, Registered, outcome)

	// Duplicate node ID.
	outcome, err = store.Register(Node{NodeID: 1, PubKey: "B"})
	require.NoError(t, err)
	assert.Equal(t, AlreadyRegistered, outcome)

	// Duplicate public key.
	outcome, err = store.Register(Node{NodeID: 2, PubKey: "A"})
	require.NoError(t, err)
	assert.Equal(t, AlreadyRegistered, outcome)

	outcome, err = store.Register(Node{NodeID: 2, PubKey: "B"})
	require.NoError(t, err)
	assert.Equal(t, Registered, outcome)

	nodes, err := store.ListNodes()
	require.NoError(t, err)
	assert.Equal(t, []Node{{NodeID: 1, PubKey: "A"}, {NodeID: 2, PubKey: "B"}}, nodes)
}

func TestRejectedRegistrationLeavesStoreUnchanged(t *testing.T) {
	store := NewMemoryStore()

	_, err := store.Register(Node{NodeID: 1, PubKey: "A"})
	require.NoError(t, err)

	outcome, err := store.Register(Node{NodeID: 1, PubKey: "B"})
	require.NoError(t, err)
	require.Equal(t, AlreadyRegistered, outcome)

	nodes, err := store.ListNodes()
	require.NoError(t, err)
	assert.Equal(t, []Node{{NodeID: 1, PubKey: "A"}}, nodes)
}

func TestListNodesInsertionOrder(t *testing.T) {
	store := NewMemoryStore()

	for i := 0; i < 10; i++ {
		outcome, err := store.Register(Node{NodeID: i, PubKey: fmt.Sprintf("key-%d", i)})
		require.NoError(t, err)
		require.Equal(t, Registered, outcome)
	}

	nodes, err := store.ListNodes()
	require.NoError(t, err)
	require.Len(t, nodes, 10)
	for i, node := range nodes {
		assert.Equal(t, i, node.NodeID)
	}
}

func TestListNodesReturnsCopy(t *testing.T) {
	store := NewMemoryStore()

	_, err := store.Register(Node{NodeID: 1, PubKey: "A"})
	require.NoError(t, err)

	nodes, err := store.ListNodes()
	require.NoError(t, err)
	nodes[0].PubKey = "mutated"

	again, err := store.ListNodes()
	require.NoError(t, err)
	assert.Equal(t, "A", again[0].PubKey)
}

func TestConcurrentRegistration(t *testing.T) {
	store := NewMemoryStore()

	// Every goroutine races to claim the same node ID with a distinct key and
	// the same key with a distinct node ID. Exactly one of each may win.
	const attempts = 64
	var wg sync.WaitGroup
	outcomes := make([]Outcome, attempts*2)

	for i := 0; i < attempts; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			outcome, err := store.Register(Node{NodeID: 1, PubKey: fmt.Sprintf("key-%d", i)})
			assert.NoError(t, err)
			outcomes[i] = outcome
		}(i)
		go func(i int) {
			defer wg.Done()
			outcome, err := store.Register(Node{NodeID: 1000 + i, PubKey: "contended"})
			assert.NoError(t, err)
			outcomes[attempts+i] = outcome
		}(i)
	}
	wg.Wait()

	idWins, keyWins := 0, 0
	for i := 0; i < attempts; i++ {
		if outcomes[i] == Registered {
			idWins++
		}
		if outcomes[attempts+i] == Registered {
			keyWins++
		}
	}
	assert.Equal(t, 1, idWins)
	assert.Equal(t, 1, keyWins)

	nodes, err := store.ListNodes()
	require.NoError(t, err)
	assert.Len(t, nodes, 2)
}
