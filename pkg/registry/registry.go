// Package registry is the directory service participants publish their public
// keys through. A registry admits each node exactly once: node IDs and
// published keys are both unique across all entries, and entries are immutable
// once admitted.
package registry

// Node is one registered participant.
type Node struct {
	NodeID int    `json:"node_id"`
	PubKey string `json:"pub_key"`
}

// Outcome is the result of a registration attempt. Constraint violations are
// ordinary outcomes callers check, not errors.
type Outcome string

const (
	Registered        Outcome = "registered"
	AlreadyRegistered Outcome = "already_registered"
)

// Store is the registry's backing structure. Register must treat its
// duplicate check and append as one critical section: two concurrent calls
// with a colliding node ID or public key must never both succeed.
type Store interface {
	// Register admits the node unless an entry with the same NodeID or the
	// same PubKey already exists. The two collision kinds are deliberately
	// not distinguished.
	Register(node Node) (Outcome, error)

	// ListNodes returns the admitted entries in insertion order.
	ListNodes() ([]Node, error)
}
