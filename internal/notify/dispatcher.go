package notify

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Sender delivers a single composed message to a target number.
type Sender interface {
	Send(ctx context.Context, target, message string) error
}

// Dispatcher runs notification jobs on a background worker so that the
// submission path never waits on, or fails because of, the gateway.
type Dispatcher struct {
	sender      Sender
	links       GroupLinks
	countryCode string
	sendTimeout time.Duration

	jobs chan Job
	wg   sync.WaitGroup
}

// NewDispatcher constructs a Dispatcher with a bounded job queue.
func NewDispatcher(sender Sender, links GroupLinks, countryCode string, sendTimeout time.Duration) *Dispatcher {
	return &Dispatcher{
		sender:      sender,
		links:       links,
		countryCode: countryCode,
		sendTimeout: sendTimeout,
		jobs:        make(chan Job, 64),
	}
}

// Start launches the worker goroutine.
func (d *Dispatcher) Start() {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		for job := range d.jobs {
			d.deliver(job)
		}
	}()
}

// Enqueue queues a job without blocking. When the queue is full the job is
// dropped and logged; a lost welcome message never fails a registration.
func (d *Dispatcher) Enqueue(job Job) {
	select {
	case d.jobs <- job:
	default:
		slog.Warn("notification_dropped", "reason", "queue full", "mobile_number", job.MobileNumber)
	}
}

// Close stops accepting jobs and waits for the queue to drain.
func (d *Dispatcher) Close() {
	close(d.jobs)
	d.wg.Wait()
}

func (d *Dispatcher) deliver(job Job) {
	ctx, cancel := context.WithTimeout(context.Background(), d.sendTimeout)
	defer cancel()

	target := TargetNumber(job.MobileNumber, d.countryCode)
	message := BuildMessage(job, d.links)
	if err := d.sender.Send(ctx, target, message); err != nil {
		slog.Error("notification_failed", "error", err, "target", target)
		return
	}
	slog.Info("notification_sent", "target", target)
}
