// Copyright (c) 2024 mStar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package multiplexer

import (
	"errors"
	"sync"
)

var ErrClosed = errors.New("multiplexer has been closed")

// A many to one multiplexer
// Yes, channels technically already are that, but sending to a closed
// channel explodes. The lock makes Send and Close safe to race, a send
// after close just reports ErrClosed
type ManyToOne[T any] struct {
	outbound chan T
	// Closed first on Close, releases senders stuck on a full buffer
	done     chan struct{}
	doneOnce sync.Once
	lock     sync.RWMutex
	closed   bool
}

// NewManyToOne creates a new ManyToOne multiplexer with room for size
// pending messages
func NewManyToOne[T any](size int) *ManyToOne[T] {
	return &ManyToOne[T]{
		outbound: make(chan T, size),
		done:     make(chan struct{}),
	}
}

// Receiver returns the channel all messages arrive on. It is closed once
// the multiplexer is closed and drained
func (m *ManyToOne[T]) Receiver() <-chan T {
	return m.outbound
}

// Send a message to this many to one plexer
// Blocks while the buffer is full. If closed, even while blocked, the
// message won't get sent
func (m *ManyToOne[T]) Send(msg T) error {
	m.lock.RLock()
	defer m.lock.RUnlock()
	if m.closed {
		return ErrClosed
	}
	select {
	case m.outbound <- msg:
		return nil
	case <-m.done:
		return ErrClosed
	}
}

// Closes the channel and marks the plexer as closed
// Closing twice is harmless
func (m *ManyToOne[T]) Close() {
	m.doneOnce.Do(func() { close(m.done) })
	m.lock.Lock()
	defer m.lock.Unlock()
	if m.closed {
		return
	}
	close(m.outbound)
	m.closed = true
}
