package websockets

import (
	"fmt"
	"sync"
	"testing"
)

func TestSubscribe(t *testing.T) {
	manager := NewWebSocketManager()
	client := &Client{Plans: make(map[string]bool)}

	manager.subscribe(client, Message{
		Type:    MsgTypeSubscribe,
		UserID:  "user-1",
		PlanIDs: []string{"plan-a", "plan-b"},
	})

	if client.UserID != "user-1" {
		t.Errorf("UserID = %q; want user-1", client.UserID)
	}
	for _, planID := range []string{"plan-a", "plan-b"} {
		if !client.Plans[planID] {
			t.Errorf("client not subscribed to %s", planID)
		}
	}
}

// Concurrent subscribes against readers that take the same mutex; run with
// the race detector to verify UserID is never touched outside the lock.
func TestSubscribeConcurrent(t *testing.T) {
	manager := NewWebSocketManager()
	client := &Client{Plans: make(map[string]bool)}

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			manager.subscribe(client, Message{
				Type:    MsgTypeSubscribe,
				UserID:  fmt.Sprintf("user-%d", i),
				PlanIDs: []string{fmt.Sprintf("plan-%d", i)},
			})
		}(i)

		wg.Add(1)
		go func() {
			defer wg.Done()
			manager.mu.Lock()
			_ = client.UserID
			manager.mu.Unlock()
		}()
	}
	wg.Wait()

	if client.UserID == "" {
		t.Error("UserID not set after concurrent subscribes")
	}
	if len(client.Plans) != 20 {
		t.Errorf("subscribed plans = %d; want 20", len(client.Plans))
	}
}
