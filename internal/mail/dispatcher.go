package mail

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

const sendTimeout = 10 * time.Second

// Dispatcher moves notification delivery off the request path. Enqueue never
// blocks: when the buffer is full the notification is dropped with a log
// line, because losing a courtesy email must never slow down or fail the
// request that triggered it.
type Dispatcher struct {
	mailer      Mailer
	workerCount int

	inputChan  chan Notification
	shutdownCh chan struct{}
	once       sync.Once
	wg         sync.WaitGroup
}

func NewDispatcher(mailer Mailer, workerCount, bufferSize int) *Dispatcher {
	return &Dispatcher{
		mailer:      mailer,
		workerCount: workerCount,
		inputChan:   make(chan Notification, bufferSize),
		shutdownCh:  make(chan struct{}),
	}
}

func (d *Dispatcher) Start(ctx context.Context) {
	for i := 0; i < d.workerCount; i++ {
		d.wg.Add(1)
		go d.runWorker(ctx, i)
	}
}

// Enqueue hands a notification to the workers. It reports whether the
// notification was accepted; false means disabled or buffer full, both of
// which are best-effort outcomes the caller ignores.
func (d *Dispatcher) Enqueue(n Notification) bool {
	if !d.mailer.Enabled() {
		return false
	}

	select {
	case d.inputChan <- n:
		return true
	default:
		zap.L().Warn("notification dropped: dispatch buffer full",
			zap.String("subject", n.Subject))
		return false
	}
}

func (d *Dispatcher) runWorker(ctx context.Context, id int) {
	defer d.wg.Done()

	for {
		select {
		case n := <-d.inputChan:
			d.send(n)
		case <-d.shutdownCh:
			// Drain whatever is already buffered, then exit.
			for {
				select {
				case n := <-d.inputChan:
					d.send(n)
				default:
					zap.L().Debug("notification worker exiting", zap.Int("worker", id))
					return
				}
			}
		case <-ctx.Done():
			return
		}
	}
}

func (d *Dispatcher) send(n Notification) {
	ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
	defer cancel()

	if err := d.mailer.Send(ctx, n); err != nil {
		// Best effort: the primary write already succeeded, so the failure
		// is logged with enough context to diagnose and goes no further.
		zap.L().Error("notification delivery failed",
			zap.String("subject", n.Subject),
			zap.Error(err),
		)
	}
}

// Shutdown stops the workers and waits for in-flight sends until ctx expires.
func (d *Dispatcher) Shutdown(ctx context.Context) {
	d.once.Do(func() {
		close(d.shutdownCh)

		done := make(chan struct{})
		go func() {
			d.wg.Wait()
			close(done)
		}()

		select {
		case <-done:
		case <-ctx.Done():
			zap.L().Warn("notification dispatcher shutdown interrupted")
		}
	})
}
