package queue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/telemedicina/booking-api/internal/core/domain"
)

type recordingSink struct {
	mu     sync.Mutex
	events []domain.ActivityEvent
	block  chan struct{}
}

func (s *recordingSink) Insert(_ context.Context, e domain.ActivityEvent) error {
	if s.block != nil {
		<-s.block
	}
	s.mu.Lock()
	s.events = append(s.events, e)
	s.mu.Unlock()
	return nil
}

func (s *recordingSink) snapshot() []domain.ActivityEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.ActivityEvent(nil), s.events...)
}

func TestDispatcher_PreservesPerEmailOrder(t *testing.T) {
	sink := &recordingSink{}
	d := NewDispatcher(4, sink, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	d.Start(ctx)

	actions := []string{domain.ActionLogin, domain.ActionCartAdd, domain.ActionCartConfirm, domain.ActionLogout}
	for _, a := range actions {
		d.Record(domain.ActivityEvent{Email: "a@b.com", Action: a})
		d.Record(domain.ActivityEvent{Email: "c@d.com", Action: a})
	}

	deadline := time.Now().Add(2 * time.Second)
	for len(sink.snapshot()) < 2*len(actions) {
		if time.Now().After(deadline) {
			t.Fatalf("timed out, got %d events", len(sink.snapshot()))
		}
		time.Sleep(5 * time.Millisecond)
	}
	cancel()
	d.Wait()

	var got []string
	for _, e := range sink.snapshot() {
		if e.Email == "a@b.com" {
			got = append(got, e.Action)
		}
	}
	for i := range actions {
		if got[i] != actions[i] {
			t.Fatalf("events out of order: %v", got)
		}
	}
}

func TestDispatcher_DropsWhenFull(t *testing.T) {
	sink := &recordingSink{block: make(chan struct{})}
	d := NewDispatcher(1, sink, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	d.Start(ctx)

	// One event is held by the blocked worker; the rest fill the buffer.
	done := make(chan struct{})
	go func() {
		for i := 0; i < channelBuffer+10; i++ {
			d.Record(domain.ActivityEvent{Email: "a@b.com", Action: domain.ActionCartAdd})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Record blocked on a full queue")
	}

	close(sink.block)
	cancel()
	d.Wait()

	if n := len(sink.snapshot()); n > channelBuffer+1 {
		t.Fatalf("expected drops, %d events persisted", n)
	}
}

func TestDispatcher_ShardIndexIsStable(t *testing.T) {
	d := NewDispatcher(8, &recordingSink{}, zerolog.Nop())
	first := d.shardIndex("a@b.com")
	for i := 0; i < 10; i++ {
		if d.shardIndex("a@b.com") != first {
			t.Fatal("shard index changed between calls")
		}
	}
	if first < 0 || first >= 8 {
		t.Fatalf("shard index out of range: %d", first)
	}
}
