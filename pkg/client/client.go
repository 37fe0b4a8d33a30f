// Package client is the bus-side consumer of the registry contract: it
// registers nodes, reads the directory, and sends sealed envelopes to
// registered peers.
package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"

	"github.com/Morgane2t/decent-workshop-4/pkg/encryption"
	"github.com/Morgane2t/decent-workshop-4/pkg/messaging"
	"github.com/Morgane2t/decent-workshop-4/pkg/registry"
	"github.com/Morgane2t/decent-workshop-4/pkg/types"
)

const defaultRequestTimeout = 5 * time.Second

// ErrNodeNotFound reports a recipient that is not in the registry.
var ErrNodeNotFound = errors.New("node not registered")

// Client talks to the registry service and to peer inboxes.
type Client struct {
	conn    *nats.Conn
	queues  *messaging.EnvelopeQueueManager
	timeout time.Duration
}

// Options defines configuration options for creating a new Client.
type Options struct {
	// NATS connection
	NatsConn *nats.Conn

	// Per-request timeout; defaults to 5s.
	Timeout time.Duration
}

// NewClient creates a registry client using the provided options.
func NewClient(opts Options) (*Client, error) {
	if opts.NatsConn == nil {
		return nil, errors.New("NATS connection is required")
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}

	queues, err := messaging.NewEnvelopeQueueManager(opts.NatsConn)
	if err != nil {
		return nil, fmt.Errorf("create envelope queue manager: %w", err)
	}

	return &Client{conn: opts.NatsConn, queues: queues, timeout: timeout}, nil
}

// Inbox opens the durable delivery queue for the given node. Only the node
// that owns the inbox should call this.
func (c *Client) Inbox(nodeID int) (messaging.MessageQueue, error) {
	return c.queues.NewInbox(nodeID)
}

// RegisterNode publishes a node's public key to the directory and returns the
// tagged outcome.
func (c *Client) RegisterNode(nodeID int, pubKey string) (registry.Outcome, error) {
	req := types.RegisterRequest{NodeID: nodeID, PubKey: pubKey}
	payload, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("RegisterNode: marshal error: %w", err)
	}

	msg, err := c.conn.Request(messaging.RegistryRegisterSubject, payload, c.timeout)
	if err != nil {
		return "", fmt.Errorf("RegisterNode: request error: %w", err)
	}

	var resp types.RegisterResponse
	if err := json.Unmarshal(msg.Data, &resp); err != nil {
		return "", fmt.Errorf("RegisterNode: parse reply: %w", err)
	}
	if resp.Error != "" {
		return "", fmt.Errorf("RegisterNode: service error: %s", resp.Error)
	}
	return resp.Status, nil
}

// GetNodeRegistry returns the directory in insertion order.
func (c *Client) GetNodeRegistry() ([]registry.Node, error) {
	msg, err := c.conn.Request(messaging.RegistryNodesSubject, nil, c.timeout)
	if err != nil {
		return nil, fmt.Errorf("GetNodeRegistry: request error: %w", err)
	}

	var resp types.NodesResponse
	if err := json.Unmarshal(msg.Data, &resp); err != nil {
		return nil, fmt.Errorf("GetNodeRegistry: parse reply: %w", err)
	}
	if resp.Error != "" {
		return nil, fmt.Errorf("GetNodeRegistry: service error: %s", resp.Error)
	}
	return resp.Nodes, nil
}

// Status probes the registry service.
func (c *Client) Status() (string, error) {
	msg, err := c.conn.Request(messaging.RegistryStatusSubject, nil, c.timeout)
	if err != nil {
		return "", fmt.Errorf("Status: request error: %w", err)
	}

	var resp types.StatusResponse
	if err := json.Unmarshal(msg.Data, &resp); err != nil {
		return "", fmt.Errorf("Status: parse reply: %w", err)
	}
	return resp.Status, nil
}

// SendMessage looks up the recipient's published key, seals the plaintext
// into an envelope, and enqueues it on the recipient's inbox.
func (c *Client) SendMessage(fromID, toID int, plaintext string) (string, error) {
	nodes, err := c.GetNodeRegistry()
	if err != nil {
		return "", err
	}

	var pubKey string
	for _, node := range nodes {
		if node.NodeID == toID {
			pubKey = node.PubKey
			break
		}
	}
	if pubKey == "" {
		return "", fmt.Errorf("%w: node %d", ErrNodeNotFound, toID)
	}

	env, err := encryption.SealEnvelope(plaintext, pubKey)
	if err != nil {
		return "", fmt.Errorf("SendMessage: seal error: %w", err)
	}

	message := types.EnvelopeMessage{
		ID:       uuid.NewString(),
		From:     fromID,
		To:       toID,
		Envelope: *env,
	}
	payload, err := json.Marshal(message)
	if err != nil {
		return "", fmt.Errorf("SendMessage: marshal error: %w", err)
	}

	subject := messaging.FormatEnvelopeSubject(toID)
	if err := c.queues.Publish(subject, payload, &messaging.EnqueueOptions{IdempotentKey: message.ID}); err != nil {
		return "", fmt.Errorf("SendMessage: publish error: %w", err)
	}
	return message.ID, nil
}
