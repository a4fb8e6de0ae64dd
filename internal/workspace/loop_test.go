package workspace

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestLoop_RunsJobsInOrder(t *testing.T) {
	f := newFixture(t, nil)
	loop := NewLoop(f.ws)

	var (
		mu    sync.Mutex
		order []int
		snaps int
	)
	done := make(chan struct{})

	for i := 0; i < 5; i++ {
		i := i
		loop.Post(func(ctx context.Context) {
			mu.Lock()
			order = append(order, i)
			mu.Unlock()
			if i == 4 {
				close(done)
			}
		})
	}

	ctx, cancel := context.WithCancel(context.Background())
	finished := make(chan error, 1)
	go func() {
		finished <- loop.Run(ctx, func(Snapshot) {
			mu.Lock()
			snaps++
			mu.Unlock()
		})
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("jobs did not run")
	}
	cancel()
	if err := <-finished; err != nil {
		t.Errorf("Run() error = %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	for i, v := range order {
		if v != i {
			t.Fatalf("order = %v", order)
		}
	}
	if snaps < 6 {
		t.Errorf("snapshots = %d, want at least 6", snaps)
	}
}

func TestLoop_JobsMutateWorkspace(t *testing.T) {
	f := newFixture(t, nil)
	loop := NewLoop(f.ws)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	published := make(chan Snapshot, 16)
	go func() {
		_ = loop.Run(ctx, func(s Snapshot) { published <- s })
	}()

	<-published
	loop.Post(func(ctx context.Context) { f.ws.NewTab(ctx) })

	select {
	case snap := <-published:
		if len(snap.Tabs) != 2 {
			t.Errorf("tabs = %d, want 2", len(snap.Tabs))
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no snapshot after job")
	}
}

func TestLoop_PostAfterStopIsDropped(t *testing.T) {
	f := newFixture(t, nil)
	loop := NewLoop(f.ws)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := loop.Run(ctx, nil); err != nil {
		t.Fatal(err)
	}

	ran := false
	loop.Post(func(context.Context) { ran = true })
	if ran {
		t.Error("job ran after the loop stopped")
	}
}
