package planner

import (
	"context"
	"testing"
)

func TestBrokerDeliversToSubscribers(t *testing.T) {
	broker := NewMessageBroker()
	first := broker.Subscribe(TopicReplan)
	second := broker.Subscribe(TopicReplan)

	req := NewReplanRequest("catalog changed")
	if err := broker.Publish(context.Background(), TopicReplan, req); err != nil {
		t.Fatalf("Expected delivery, got %v", err)
	}

	for _, sub := range []Subscriber{first, second} {
		select {
		case got := <-sub:
			if got.ID != req.ID {
				t.Errorf("Expected request %s, got %s", req.ID, got.ID)
			}
		default:
			t.Error("Expected a buffered delivery")
		}
	}
}

func TestBrokerNoSubscribersIsNoOp(t *testing.T) {
	broker := NewMessageBroker()
	if err := broker.Publish(context.Background(), TopicReplan, NewReplanRequest("x")); err != nil {
		t.Fatalf("Expected a no-op, got %v", err)
	}
}

func TestBrokerUnsubscribeStopsDelivery(t *testing.T) {
	broker := NewMessageBroker()
	sub := broker.Subscribe(TopicReplan)
	broker.Unsubscribe(TopicReplan, sub)

	if err := broker.Publish(context.Background(), TopicReplan, NewReplanRequest("x")); err != nil {
		t.Fatalf("Expected a no-op, got %v", err)
	}
	select {
	case <-sub:
		t.Error("Expected no delivery after unsubscribing")
	default:
	}
}

func TestBrokerFullChannelIsAnError(t *testing.T) {
	broker := NewMessageBroker()
	broker.Subscribe(TopicReplan)

	// Subscriber channels buffer 10 requests; the 11th cannot be
	// delivered because nobody is draining.
	var err error
	for i := 0; i < 11; i++ {
		err = broker.Publish(context.Background(), TopicReplan, NewReplanRequest("x"))
	}
	if err == nil {
		t.Fatal("Expected a delivery failure on the full channel")
	}
}
