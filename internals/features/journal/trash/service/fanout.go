package service

import (
	"log"
	"sync"
	"time"
)

const (
	fanoutMaxAttempts = 3
	fanoutBackoff     = 50 * time.Millisecond
)

// Fanout runs dependent writes off the response's critical path. Each step is
// idempotent (flag sets and single-statement increments), so a failed step is
// retried on its own without re-running its siblings. Failures are logged,
// never surfaced to the caller: once the primary transition is durable the
// operation has succeeded from the client's point of view.
type Fanout struct {
	mu     sync.Mutex
	wg     sync.WaitGroup
	closed bool
}

func NewFanout() *Fanout {
	return &Fanout{}
}

// Enqueue schedules the steps for asynchronous execution. After Close the
// steps run inline so shutdown never drops work.
func (f *Fanout) Enqueue(steps []FanoutStep) {
	if len(steps) == 0 {
		return
	}
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		runSteps(steps)
		return
	}
	f.wg.Add(1)
	f.mu.Unlock()

	go func() {
		defer f.wg.Done()
		runSteps(steps)
	}()
}

// Wait blocks until every enqueued step has finished. Used by tests and by
// shutdown.
func (f *Fanout) Wait() {
	f.wg.Wait()
}

// Close drains in-flight work; later Enqueue calls run synchronously.
func (f *Fanout) Close() {
	f.mu.Lock()
	f.closed = true
	f.mu.Unlock()
	f.wg.Wait()
}

func runSteps(steps []FanoutStep) {
	for _, step := range steps {
		var err error
		for attempt := 1; attempt <= fanoutMaxAttempts; attempt++ {
			if err = step.Run(); err == nil {
				break
			}
			log.Printf("[FANOUT] step=%s attempt=%d err=%v", step.Name, attempt, err)
			time.Sleep(time.Duration(attempt) * fanoutBackoff)
		}
		if err != nil {
			log.Printf("[FANOUT] step=%s gave up after %d attempts: %v", step.Name, fanoutMaxAttempts, err)
		}
	}
}
