package workspace

import (
	"context"
	"sync"
)

// Job is one unit of work run on the loop goroutine
type Job func(ctx context.Context)

// Loop serializes every state transition of a Workspace. Jobs run one at a
// time in the order posted; a job blocked on a prompt holds the loop until
// it is answered.
type Loop struct {
	ws *Workspace

	mu     sync.Mutex
	queue  []Job
	wake   chan struct{}
	closed bool
}

// NewLoop creates a loop for ws
func NewLoop(ws *Workspace) *Loop {
	return &Loop{
		ws:   ws,
		wake: make(chan struct{}, 1),
	}
}

// Post queues job. It never blocks; jobs posted after Run returns are
// dropped.
func (l *Loop) Post(job Job) {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return
	}
	l.queue = append(l.queue, job)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// Run drains the queue until ctx is done. publish receives a snapshot
// after every job and once at start.
func (l *Loop) Run(ctx context.Context, publish func(Snapshot)) error {
	defer func() {
		l.mu.Lock()
		l.closed = true
		l.queue = nil
		l.mu.Unlock()
	}()

	if publish != nil {
		publish(l.ws.Snapshot())
	}

	for {
		job, ok := l.next()
		if !ok {
			select {
			case <-ctx.Done():
				return nil
			case <-l.wake:
			}
			continue
		}

		if ctx.Err() != nil {
			return nil
		}
		job(ctx)
		if publish != nil {
			publish(l.ws.Snapshot())
		}
	}
}

func (l *Loop) next() (Job, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.queue) == 0 {
		return nil, false
	}
	job := l.queue[0]
	l.queue[0] = nil
	l.queue = l.queue[1:]
	return job, true
}
