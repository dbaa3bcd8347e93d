package workers

import (
	"context"
	"time"

	"ewaste_backend/internal/email"
	"ewaste_backend/internal/logger"
)

const (
	defaultQueueSize  = 256
	defaultMaxRetries = 3
	retryBackoff      = 5 * time.Second
)

type mailJob struct {
	kind    string
	msg     *email.Email
	attempt int
}

// MailDispatcher delivers notification emails off the request path.
// Delivery is at-least-once: failed sends are retried with backoff and
// dropped (with an error log) only after maxRetries attempts. Enqueue
// never blocks; when the queue is full the message is sent from its
// own goroutine instead.
type MailDispatcher struct {
	provider   email.Provider
	queue      chan mailJob
	maxRetries int
}

func NewMailDispatcher(provider email.Provider) *MailDispatcher {
	return &MailDispatcher{
		provider:   provider,
		queue:      make(chan mailJob, defaultQueueSize),
		maxRetries: defaultMaxRetries,
	}
}

// Enqueue implements email.Dispatcher.
func (d *MailDispatcher) Enqueue(kind string, msg *email.Email) {
	job := mailJob{kind: kind, msg: msg}
	select {
	case d.queue <- job:
	default:
		// Queue full: don't block the request, deliver directly.
		logger.Warn("mail queue full, sending inline", "kind", kind)
		go d.deliver(job)
	}
}

// Start runs the delivery loop until the context is cancelled.
func (d *MailDispatcher) Start(ctx context.Context) {
	go func() {
		for {
			select {
			case <-ctx.Done():
				logger.Info("mail dispatcher stopped")
				return
			case job := <-d.queue:
				d.deliver(job)
			}
		}
	}()
}

func (d *MailDispatcher) deliver(job mailJob) {
	to := ""
	if len(job.msg.To) > 0 {
		to = job.msg.To[0]
	}

	err := d.provider.Send(job.msg)
	logger.MailLog(job.kind, to, err)
	if err == nil {
		return
	}

	job.attempt++
	if job.attempt >= d.maxRetries {
		logger.Error("giving up on mail delivery",
			"kind", job.kind,
			"to", to,
			"attempts", job.attempt,
		)
		return
	}

	// Requeue after a pause; if the queue stays full, retry inline.
	time.AfterFunc(retryBackoff, func() {
		select {
		case d.queue <- job:
		default:
			d.deliver(job)
		}
	})
}
