package messaging

import "strconv"

const (
	// Registry service subjects (request/reply)
	RegistryRegisterSubject = "registry.register"
	RegistryNodesSubject    = "registry.nodes"
	RegistryStatusSubject   = "registry.status"

	// Envelope delivery
	EnvelopeStreamName   = "envelopes"
	EnvelopeSubjectsWild = "envelopes.node.*"
)

// FormatEnvelopeSubject creates the delivery subject for a node's inbox.
func FormatEnvelopeSubject(nodeID int) string {
	return "envelopes.node." + strconv.Itoa(nodeID)
}
