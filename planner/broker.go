// Package planner runs the planning pipeline over the stored catalog
// and keeps the published schedule current as the catalog changes.
package planner

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
)

// TopicReplan carries requests to regenerate the plan.
const TopicReplan = "plan.replan"

type ReplanRequest struct {
	ID          uuid.UUID
	Reason      string
	RequestedAt time.Time
}

func NewReplanRequest(reason string) ReplanRequest {
	return ReplanRequest{
		ID:          uuid.New(),
		Reason:      reason,
		RequestedAt: time.Now(),
	}
}

type Subscriber chan ReplanRequest

type Broker interface {
	Subscribe(topic string) Subscriber
	Unsubscribe(topic string, ch Subscriber)
	Publish(ctx context.Context, topic string, req ReplanRequest) error
}

type MessageBroker struct {
	subscribers map[string][]Subscriber // keys are topics
	mu          sync.RWMutex
}

func NewMessageBroker() *MessageBroker {
	return &MessageBroker{
		subscribers: make(map[string][]Subscriber),
	}
}

func (b *MessageBroker) Subscribe(topic string) Subscriber {
	ch := make(Subscriber, 10)
	b.mu.Lock()
	b.subscribers[topic] = append(b.subscribers[topic], ch)
	b.mu.Unlock()
	return ch
}

func (b *MessageBroker) Unsubscribe(topic string, ch Subscriber) {
	b.mu.Lock()
	defer b.mu.Unlock()

	subs := b.subscribers[topic]
	for i, sub := range subs {
		if sub == ch {
			b.subscribers[topic] = append(subs[:i], subs[i+1:]...)
			break
		}
	}
	log.Printf("Unsubscribed from topic '%s'", topic)
}

func (b *MessageBroker) Publish(ctx context.Context, topic string, req ReplanRequest) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	subs := b.subscribers[topic]

	// No subscribers is not an error, just a no-op
	if len(subs) == 0 {
		log.Printf("[WARN] No subscribers for topic '%s', request %s not delivered", topic, req.ID)
		return nil
	}

	var (
		successCount     int
		timeoutCount     int
		channelFullCount int
	)

	// Best-effort: attempt delivery to ALL subscribers
	for i, sub := range subs {
		select {
		case sub <- req:
			successCount++
			log.Printf("[DEBUG] Request %s delivered to subscriber %d on topic '%s'", req.ID, i, topic)
		case <-ctx.Done():
			timeoutCount++
			log.Printf("[ERROR] Request %s failed to subscriber %d on topic '%s': context timeout/cancelled",
				req.ID, i, topic)
		default:
			channelFullCount++
			log.Printf("[ERROR] Request %s failed to subscriber %d on topic '%s': channel full",
				req.ID, i, topic)
		}
	}

	if timeoutCount > 0 || channelFullCount > 0 {
		return fmt.Errorf(
			"partial delivery failure on topic '%s': %d/%d delivered (%d timeout, %d channel full)",
			topic, successCount, len(subs), timeoutCount, channelFullCount,
		)
	}

	log.Printf("[INFO] Request %s successfully delivered to all %d subscribers on topic '%s'",
		req.ID, successCount, topic)
	return nil
}

// ReplanRequester adapts the broker to the catalog's notification
// hook: every catalog mutation becomes a replan request.
type ReplanRequester struct {
	broker Broker
}

func NewReplanRequester(broker Broker) *ReplanRequester {
	return &ReplanRequester{broker: broker}
}

func (r *ReplanRequester) RequestReplan(ctx context.Context, reason string) {
	if err := r.broker.Publish(ctx, TopicReplan, NewReplanRequest(reason)); err != nil {
		log.Printf("[WARN] replan request not fully delivered: %v", err)
	}
}
