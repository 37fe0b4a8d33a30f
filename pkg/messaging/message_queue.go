package messaging

import (
	"context"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/Morgane2t/decent-workshop-4/pkg/logger"
)

// MessageQueue is a durable per-node inbox. Sealed envelopes published while a
// node is offline are redelivered when it comes back.
type MessageQueue interface {
	Enqueue(subject string, message []byte, options *EnqueueOptions) error
	Dequeue(handler func(message []byte) error) error
	Close()
}

type EnqueueOptions struct {
	IdempotentKey string
}

type messageQueue struct {
	consumerName string
	js           jetstream.JetStream
	consumer     jetstream.Consumer
	context      jetstream.ConsumeContext
}

// EnvelopeQueueManager owns the envelope delivery stream and creates the
// per-node inbox consumers on it.
type EnvelopeQueueManager struct {
	streamName string
	js         jetstream.JetStream
}

func NewEnvelopeQueueManager(nc *nats.Conn) (*EnvelopeQueueManager, error) {
	js, err := jetstream.New(nc)
	if err != nil {
		return nil, fmt.Errorf("create JetStream context: %w", err)
	}

	_, err = js.CreateOrUpdateStream(context.Background(), jetstream.StreamConfig{
		Name:        EnvelopeStreamName,
		Description: "Sealed envelope deliveries between nodes",
		Subjects:    []string{EnvelopeSubjectsWild},
		MaxBytes:    10_485_760, // 10 MB
		Storage:     jetstream.FileStorage,
		Retention:   jetstream.WorkQueuePolicy,
	})
	if err != nil {
		return nil, fmt.Errorf("create envelope stream: %w", err)
	}
	logger.Info("Envelope stream ready", "stream", EnvelopeStreamName)

	return &EnvelopeQueueManager{streamName: EnvelopeStreamName, js: js}, nil
}

// Publish enqueues a message on the stream without touching any inbox
// consumer. Senders use this; only the owning node creates its inbox.
func (m *EnvelopeQueueManager) Publish(subject string, message []byte, options *EnqueueOptions) error {
	header := nats.Header{}
	if options != nil && options.IdempotentKey != "" {
		header.Add("Nats-Msg-Id", options.IdempotentKey)
	}

	_, err := m.js.PublishMsg(context.Background(), &nats.Msg{
		Subject: subject,
		Data:    message,
		Header:  header,
	})
	if err != nil {
		return fmt.Errorf("publish envelope: %w", err)
	}
	return nil
}

// NewInbox creates the durable consumer for one node's delivery subject.
func (m *EnvelopeQueueManager) NewInbox(nodeID int) (MessageQueue, error) {
	consumerName := fmt.Sprintf("node_%d", nodeID)
	cfg := jetstream.ConsumerConfig{
		Name:           consumerName,
		Durable:        consumerName,
		AckWait:        30 * time.Second,
		AckPolicy:      jetstream.AckExplicitPolicy,
		FilterSubjects: []string{FormatEnvelopeSubject(nodeID)},
		MaxDeliver:     3,
	}

	consumer, err := m.js.CreateOrUpdateConsumer(context.Background(), m.streamName, cfg)
	if err != nil {
		return nil, fmt.Errorf("create inbox consumer: %w", err)
	}
	logger.Info("Inbox consumer ready", "consumer", consumerName)

	return &messageQueue{consumerName: consumerName, js: m.js, consumer: consumer}, nil
}

func (mq *messageQueue) Enqueue(subject string, message []byte, options *EnqueueOptions) error {
	header := nats.Header{}
	if options != nil && options.IdempotentKey != "" {
		header.Add("Nats-Msg-Id", options.IdempotentKey)
	}

	_, err := mq.js.PublishMsg(context.Background(), &nats.Msg{
		Subject: subject,
		Data:    message,
		Header:  header,
	})
	if err != nil {
		return fmt.Errorf("enqueue message: %w", err)
	}
	return nil
}

func (mq *messageQueue) Dequeue(handler func(message []byte) error) error {
	consumeContext, err := mq.consumer.Consume(func(msg jetstream.Msg) {
		if err := handler(msg.Data()); err != nil {
			logger.Error("Envelope handler failed, message will be redelivered", err, "consumer", mq.consumerName)
			if nakErr := msg.Nak(); nakErr != nil {
				logger.Error("Failed to NAK message", nakErr)
			}
			return
		}
		if err := msg.Ack(); err != nil {
			logger.Error("Failed to ACK message", err)
		}
	})
	if err != nil {
		return fmt.Errorf("consume inbox: %w", err)
	}

	mq.context = consumeContext
	return nil
}

func (mq *messageQueue) Close() {
	if mq.context != nil {
		mq.context.Stop()
	}
}
