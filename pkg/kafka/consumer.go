package kafka

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"hotelier/pkg/logger"

	"github.com/segmentio/kafka-go"
)

const defaultMaxRetries = 3

// Consumer wraps a kafka-go reader with a handler and simple retry logic.
type Consumer struct {
	reader     *kafka.Reader
	topic      string
	groupID    string
	maxRetries int
	handler    MessageHandler
	log        *logger.Logger
	closed     bool
	mu         sync.RWMutex
}

func NewConsumer(brokers []string, topic, groupID string, handler MessageHandler, log *logger.Logger) (*Consumer, error) {
	if len(brokers) == 0 {
		return nil, fmt.Errorf("at least one broker is required")
	}
	if topic == "" {
		return nil, fmt.Errorf("topic cannot be empty")
	}
	if groupID == "" {
		return nil, fmt.Errorf("group ID cannot be empty")
	}
	if handler == nil {
		return nil, fmt.Errorf("message handler cannot be nil")
	}

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     brokers,
		Topic:       topic,
		GroupID:     groupID,
		MinBytes:    1,
		MaxBytes:    10e6,
		MaxWait:     500 * time.Millisecond,
		StartOffset: kafka.FirstOffset,
		Logger:      kafka.LoggerFunc(func(msg string, args ...any) {}),
	})

	return &Consumer{
		reader:     reader,
		topic:      topic,
		groupID:    groupID,
		maxRetries: defaultMaxRetries,
		handler:    handler,
		log:        log,
	}, nil
}

// Start consumes messages until the context is cancelled. Failed messages are
// retried up to maxRetries and then skipped; the offset is committed either way.
func (c *Consumer) Start(ctx context.Context) error {
	c.mu.RLock()
	if c.closed {
		c.mu.RUnlock()
		return ErrConsumerClosed
	}
	c.mu.RUnlock()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
			kafkaMsg, err := c.reader.FetchMessage(ctx)
			if err != nil {
				if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					return err
				}
				c.log.Error("Failed to fetch message", "topic", c.topic, "error", err)
				time.Sleep(1 * time.Second)
				continue
			}

			msg := c.convertMessage(kafkaMsg)
			if err := c.processMessage(ctx, msg); err != nil {
				c.log.Error("Message dropped after retries",
					"topic", c.topic,
					"key", msg.Key,
					"error", err,
				)
			}

			if err := c.reader.CommitMessages(ctx, kafkaMsg); err != nil {
				c.log.Error("Failed to commit offset", "topic", c.topic, "error", err)
			}
		}
	}
}

func (c *Consumer) processMessage(ctx context.Context, msg Message) error {
	err := c.handler(ctx, msg)
	if err == nil {
		return nil
	}

	if ShouldRetry(err, msg.GetRetryCount(), c.maxRetries) {
		msg.IncrementRetryCount()
		c.log.Warn("Retrying message",
			"topic", c.topic,
			"key", msg.Key,
			"attempt", msg.GetRetryCount(),
			"error", err,
		)
		return c.processMessage(ctx, msg)
	}

	return err
}

func (c *Consumer) convertMessage(kafkaMsg kafka.Message) Message {
	msg := Message{
		Key:       string(kafkaMsg.Key),
		Value:     kafkaMsg.Value,
		Headers:   make(map[string]string),
		Topic:     kafkaMsg.Topic,
		Partition: kafkaMsg.Partition,
		Offset:    kafkaMsg.Offset,
		Timestamp: kafkaMsg.Time,
	}
	for _, header := range kafkaMsg.Headers {
		msg.Headers[header.Key] = string(header.Value)
	}
	return msg
}

func (c *Consumer) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true
	return c.reader.Close()
}
