package events

import (
	"context"

	"github.com/ikeydoherty/budgie-rd/util/multiplexer"
	"github.com/sirupsen/logrus"
)

// DefaultSize is the number of notifications that can be pending before
// Post blocks.
const DefaultSize = 64

// Queue serialises notifications from any number of goroutines onto the
// one goroutine that calls Drain or Run. Every notification is handled
// completely before the next one starts.
type Queue[K comparable] struct {
	plexer  *multiplexer.ManyToOne[Notification[K]]
	handler Handler[K]
}

func NewQueue[K comparable](handler Handler[K], size int) *Queue[K] {
	if size <= 0 {
		size = DefaultSize
	}
	return &Queue[K]{
		plexer:  multiplexer.NewManyToOne[Notification[K]](size),
		handler: handler,
	}
}

// Post queues n. It fails once the queue is closed.
func (q *Queue[K]) Post(n Notification[K]) error {
	return q.plexer.Send(n)
}

// Go queues f to run on the control goroutine without waiting for it.
func (q *Queue[K]) Go(f func() error) error {
	return q.plexer.Send(call[K]{f: f})
}

// Call runs f on the control goroutine and waits for it to finish.
func (q *Queue[K]) Call(ctx context.Context, f func() error) error {
	done := make(chan error, 1)
	if err := q.plexer.Send(call[K]{f: f, done: done}); err != nil {
		return err
	}
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (q *Queue[K]) apply(n Notification[K]) {
	if err := n.Apply(q.handler); err != nil {
		logrus.WithError(err).WithField("notification", n).Debugln("Notification skipped")
	}
}

// Drain handles everything that is pending right now and returns how many
// notifications that was. It never blocks.
func (q *Queue[K]) Drain() int {
	handled := 0
	for {
		select {
		case n, ok := <-q.plexer.Receiver():
			if !ok {
				return handled
			}
			q.apply(n)
			handled++
		default:
			return handled
		}
	}
}

// Pump is Drain for loops owned by someone else, like the Wayland event
// loop. After draining it calls draw if a frame arrived on frames since
// the last call. It never blocks and reports whether it drew.
func (q *Queue[K]) Pump(frames <-chan struct{}, draw func()) bool {
	q.Drain()
	select {
	case _, ok := <-frames:
		if !ok {
			return false
		}
		draw()
		return true
	default:
		return false
	}
}

// Run handles notifications as they come in until ctx is cancelled or the
// queue is closed and empty.
func (q *Queue[K]) Run(ctx context.Context) error {
	for {
		select {
		case n, ok := <-q.plexer.Receiver():
			if !ok {
				return nil
			}
			q.apply(n)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Close stops accepting notifications. Pending ones are still handled by
// Run and Drain.
func (q *Queue[K]) Close() {
	q.plexer.Close()
}
