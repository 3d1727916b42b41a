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

var ErrReceiverExists = errors.New("receiver with that name already exists")

// OneToMany fans one sender out to named receivers. Every receiver holds
// at most one pending message, further sends to a receiver that hasn't
// caught up are dropped. This suits signals like "redraw" where only the
// fact that something happened matters
type OneToMany[T any] struct {
	outbound map[string]chan T // Use map here to give names to outbound channels
	lock     sync.Mutex
	closed   bool
}

func NewOneToMany[T any]() *OneToMany[T] {
	return &OneToMany[T]{
		outbound: make(map[string]chan T),
	}
}

// Create a new receiver for the multiplexer to send messages to.
// Please do not close this manually, instead use the CloseReceiver func
func (o *OneToMany[T]) MakeReceiver(name string) (<-chan T, error) {
	o.lock.Lock()
	defer o.lock.Unlock()
	if o.closed {
		return nil, ErrClosed
	}
	if _, ok := o.outbound[name]; ok {
		return nil, ErrReceiverExists
	}
	rec := make(chan T, 1)
	o.outbound[name] = rec
	return rec, nil
}

// Closes a receiver channel with the given name and removes it from the multiplexer
func (o *OneToMany[T]) CloseReceiver(name string) {
	o.lock.Lock()
	defer o.lock.Unlock()
	if val, ok := o.outbound[name]; ok {
		close(val)
		delete(o.outbound, name)
	}
}

// Send hands msg to every receiver without blocking
// Returns how many receivers got it
func (o *OneToMany[T]) Send(msg T) int {
	o.lock.Lock()
	defer o.lock.Unlock()
	sent := 0
	for _, c := range o.outbound {
		select {
		case c <- msg:
			sent++
		default:
		}
	}
	return sent
}

// Close all receiver channels and mark the plexer as closed
func (o *OneToMany[T]) Close() {
	o.lock.Lock()
	defer o.lock.Unlock()
	if o.closed {
		return
	}
	// No need to send any signal there as readers will just stop
	for name, c := range o.outbound {
		close(c)
		delete(o.outbound, name)
	}
	o.closed = true
}
