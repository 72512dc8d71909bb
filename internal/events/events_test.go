package events

import (
	"testing"
	"time"
)

func TestNewBus(t *testing.T) {
	bus := NewBus()
	if bus == nil {
		t.Fatal("NewBus() returned nil")
	}
	if bus.Changes == nil {
		t.Fatal("Changes channel is nil")
	}
}

func TestBus_PublishReceive(t *testing.T) {
	bus := NewBus()

	go bus.Publish(Event{Kind: KindShot, Score: 3, ShotsFired: 4, Hit: true})

	select {
	case received := <-bus.Changes:
		if received.Kind != KindShot {
			t.Errorf("received Kind = %q, want %q", received.Kind, KindShot)
		}
		if received.Score != 3 || received.ShotsFired != 4 || !received.Hit {
			t.Errorf("received %+v, want score 3, shots 4, hit", received)
		}
	case <-time.After(1 * time.Second):
		t.Fatal("timed out waiting for event")
	}
}

func TestBus_Buffered(t *testing.T) {
	bus := NewBus()

	for i := 0; i < busBuffer; i++ {
		if !bus.Publish(Event{Kind: KindTick}) {
			t.Fatalf("Publish #%d dropped before buffer was full", i)
		}
	}

	for i := 0; i < busBuffer; i++ {
		<-bus.Changes
	}
}

func TestBus_PublishNeverBlocks(t *testing.T) {
	bus := NewBus()
	for i := 0; i < busBuffer; i++ {
		bus.Publish(Event{Kind: KindTick})
	}

	done := make(chan bool)
	go func() {
		done <- bus.Publish(Event{Kind: KindTick})
	}()

	select {
	case ok := <-done:
		if ok {
			t.Error("Publish on a full bus = true, want false")
		}
	case <-time.After(1 * time.Second):
		t.Fatal("Publish blocked on full bus")
	}
}
