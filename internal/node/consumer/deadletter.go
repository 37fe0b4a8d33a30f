// Package consumer watches JetStream advisories for envelopes that exhausted
// their delivery attempts.
package consumer

import (
	"encoding/json"

	"github.com/nats-io/nats.go"

	"github.com/Morgane2t/decent-workshop-4/pkg/logger"
	"github.com/Morgane2t/decent-workshop-4/pkg/messaging"
	"github.com/Morgane2t/decent-workshop-4/pkg/types"
)

const maxDeliveriesExceededSubject = "$JS.EVENT.ADVISORY.CONSUMER.MAX_DELIVERIES.>"

// DeadLetterHandler receives envelopes the stream gave up on.
type DeadLetterHandler func(msg types.EnvelopeMessage)

// deadLetterConsumer surfaces undeliverable envelopes instead of letting them
// vanish from the work queue.
type deadLetterConsumer struct {
	natsConn     *nats.Conn
	handler      DeadLetterHandler
	subscription *nats.Subscription
}

// NewDeadLetterConsumer creates a new dead letter consumer
func NewDeadLetterConsumer(natsConn *nats.Conn, handler DeadLetterHandler) *deadLetterConsumer {
	return &deadLetterConsumer{
		natsConn: natsConn,
		handler:  handler,
	}
}

// Run starts the dead letter consumer
func (dc *deadLetterConsumer) Run() {
	logger.Info("Starting advisory consumer for max deliveries exceeded")

	sub, err := dc.natsConn.Subscribe(maxDeliveriesExceededSubject, dc.handleDeadlineExceeded)
	if err != nil {
		logger.Error("Failed to subscribe to max deliveries exceeded subject", err)
		return
	}

	dc.subscription = sub
}

// handleDeadlineExceeded processes deadline exceeded messages
func (dc *deadLetterConsumer) handleDeadlineExceeded(msg *nats.Msg) {
	var advisory struct {
		Stream    string `json:"stream"`
		StreamSeq uint64 `json:"stream_seq"`
	}

	if err := json.Unmarshal(msg.Data, &advisory); err != nil {
		logger.Error("Failed to unmarshal advisory message", err)
		return
	}

	if advisory.Stream != messaging.EnvelopeStreamName {
		return
	}

	logger.Info("Received max deliveries exceeded advisory",
		"stream", advisory.Stream,
		"stream_seq", advisory.StreamSeq)

	js, err := dc.natsConn.JetStream()
	if err != nil {
		logger.Error("Failed to get JetStream context", err)
		return
	}

	failedMsg, err := js.GetMsg(advisory.Stream, advisory.StreamSeq)
	if err != nil {
		logger.Error("Failed to retrieve failed message", err,
			"stream", advisory.Stream,
			"stream_seq", advisory.StreamSeq,
		)
		return
	}

	var envMsg types.EnvelopeMessage
	if err := json.Unmarshal(failedMsg.Data, &envMsg); err != nil {
		logger.Error("Failed to unmarshal dead-lettered envelope", err,
			"stream_seq", advisory.StreamSeq,
		)
		return
	}

	logger.Warn("Envelope exhausted delivery attempts",
		"ID", envMsg.ID,
		"from", envMsg.From,
		"to", envMsg.To,
	)

	if dc.handler != nil {
		dc.handler(envMsg)
	}
}

// Close stops the dead letter consumer
func (dc *deadLetterConsumer) Close() error {
	if dc.subscription != nil {
		if err := dc.subscription.Unsubscribe(); err != nil {
			logger.Error("Failed to unsubscribe from max deliveries exceeded subject", err)
			return err
		}
	}
	logger.Info("Unsubscribed from max deliveries exceeded subject")
	return nil
}
