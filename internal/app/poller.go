package app

import (
	"context"
	"sync"
	"time"

	"github.com/five82/coolctl/internal/logging"
	"github.com/five82/coolctl/internal/remote"
	"github.com/five82/coolctl/internal/state"
)

const defaultPollInterval = 3 * time.Second

// Subscriber receives every status the poller publishes. *state.Store
// implements it.
type Subscriber interface {
	Publish(status state.Status)
}

// SubscriberFunc adapts a function to Subscriber.
type SubscriberFunc func(status state.Status)

// Publish calls f.
func (f SubscriberFunc) Publish(status state.Status) { f(status) }

// Poller checks device status at a fixed interval. There is no backoff: the
// interval stays constant across failures.
type Poller struct {
	fetcher  remote.StatusFetcher
	interval time.Duration
	log      *logging.Logger
}

// NewPoller returns a Poller. A non-positive interval uses the default.
func NewPoller(fetcher remote.StatusFetcher, interval time.Duration, log *logging.Logger) *Poller {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	if log == nil {
		log = logging.Nop()
	}
	return &Poller{fetcher: fetcher, interval: interval, log: log}
}

// Interval returns the polling cadence.
func (p *Poller) Interval() time.Duration {
	return p.interval
}

// Session is one running polling loop.
type Session struct {
	mu    sync.Mutex
	alive bool

	stop     chan struct{}
	stopOnce sync.Once
	done     chan struct{}
}

// Subscribe publishes Checking, then starts a loop that checks status
// immediately and again every interval until Unsubscribe is called or ctx
// ends. It returns immediately.
func (p *Poller) Subscribe(ctx context.Context, sub Subscriber) *Session {
	s := &Session{
		alive: true,
		stop:  make(chan struct{}),
		done:  make(chan struct{}),
	}
	sub.Publish(state.Checking{})

	go func() {
		defer close(s.done)
		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()

		failures := 0
		for {
			p.tick(ctx, s, sub, &failures)
			select {
			case <-ctx.Done():
				s.kill()
				return
			case <-s.stop:
				return
			case <-ticker.C:
			}
		}
	}()
	return s
}

func (p *Poller) tick(ctx context.Context, s *Session, sub Subscriber, failures *int) {
	if !s.isAlive() {
		return
	}
	resp, err := p.fetcher.GetStatus(ctx)
	if ctx.Err() != nil {
		return
	}

	var next state.Status
	if err != nil {
		*failures++
		if *failures == 1 {
			p.log.Warnw("status poll failed", "err", err)
		} else {
			p.log.Debugw("status poll failed", "err", err, "consecutive", *failures)
		}
		next = state.Failed{Err: err}
	} else {
		if *failures > 0 {
			p.log.Infow("status poll recovered", "after_failures", *failures)
		}
		*failures = 0
		next = state.Reported{Online: resp.Online}
	}
	s.publish(sub, next)
}

// publish delivers status unless the session has been cancelled. Holding the
// lock across the call makes Unsubscribe wait for a publish in progress.
func (s *Session) publish(sub Subscriber, status state.Status) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.alive {
		return
	}
	sub.Publish(status)
}

func (s *Session) isAlive() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.alive
}

func (s *Session) kill() {
	s.mu.Lock()
	s.alive = false
	s.mu.Unlock()
}

// Unsubscribe stops the loop. No publish happens after it returns. An
// in-flight request is left to finish and its result is dropped. Calling it
// more than once is safe.
func (s *Session) Unsubscribe() {
	s.kill()
	s.stopOnce.Do(func() { close(s.stop) })
}

// Done is closed once the loop goroutine has exited.
func (s *Session) Done() <-chan struct{} {
	return s.done
}
