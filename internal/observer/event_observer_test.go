package observer

import (
	"context"
	"sync"
	"testing"
	"time"
)

type countingObserver struct {
	mu     sync.Mutex
	events []AnalysisEvent
}

func (c *countingObserver) OnEvent(_ context.Context, event AnalysisEvent) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, event)
}

func (c *countingObserver) GetObserverName() string { return "counting" }

func (c *countingObserver) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.events)
}

func TestEventPublisher_DeliversToAllObservers(t *testing.T) {
	publisher := NewEventPublisher()
	a := &countingObserver{}
	b := &countingObserver{}
	publisher.Subscribe(a)
	publisher.Subscribe(b)

	event := AnalysisEvent{
		EventType: AnalysisCompleted,
		Timestamp: time.Now(),
		ImageURL:  "https://example.com/capture.png",
		Success:   true,
	}
	publisher.NotifyObservers(context.Background(), event)

	if a.count() != 1 || b.count() != 1 {
		t.Errorf("Expected both observers to receive the event: a=%d b=%d", a.count(), b.count())
	}
	if a.events[0].EventType != AnalysisCompleted {
		t.Errorf("Unexpected event type: %s", a.events[0].EventType)
	}
}

func TestEventPublisher_NoObservers(t *testing.T) {
	publisher := NewEventPublisher()
	// Must not panic with an empty observer list.
	publisher.NotifyObservers(context.Background(), AnalysisEvent{EventType: AnalysisStarted})
}

func TestEventPublisher_ConcurrentNotify(t *testing.T) {
	publisher := NewEventPublisher()
	obs := &countingObserver{}
	publisher.Subscribe(obs)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			publisher.NotifyObservers(context.Background(), AnalysisEvent{EventType: AnalysisStarted})
		}()
	}
	wg.Wait()

	if obs.count() != 20 {
		t.Errorf("Expected 20 deliveries, got %d", obs.count())
	}
}
