package pubsub

import (
	"context"
	"encoding/json"
	"fmt"
)

// Topic binds a topic name to the JSON payload type carried on it.
type Topic[T any] struct {
	name string
}

// NewTopic declares a typed topic.
func NewTopic[T any](name string) Topic[T] {
	return Topic[T]{name: name}
}

// Name returns the topic name.
func (t Topic[T]) Name() string { return t.name }

// Publish encodes payload and publishes it for userID.
func (t Topic[T]) Publish(ctx context.Context, pub Publisher, userID string, payload T, metadata map[string]string) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode %s payload: %w", t.name, err)
	}
	return pub.Publish(ctx, Message{
		Topic:    t.name,
		UserID:   userID,
		Payload:  data,
		Metadata: metadata,
	})
}

// Subscribe decodes every message on the topic before handing it to handler.
func (t Topic[T]) Subscribe(ctx context.Context, sub Subscriber, handler func(ctx context.Context, msg Message, payload T) error) error {
	return sub.Subscribe(ctx, t.name, func(ctx context.Context, msg Message) error {
		var payload T
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			return fmt.Errorf("decode %s payload: %w", t.name, err)
		}
		return handler(ctx, msg, payload)
	})
}
