package types

import "github.com/Morgane2t/decent-workshop-4/pkg/encryption"

// EnvelopeMessage is one sealed payload delivered to a node's inbox. Only the
// holder of the recipient's private key can open the envelope; everything else
// on the message is routing metadata.
type EnvelopeMessage struct {
	ID       string              `json:"id"`
	From     int                 `json:"from"`
	To       int                 `json:"to"`
	Envelope encryption.Envelope `json:"envelope"`
}
