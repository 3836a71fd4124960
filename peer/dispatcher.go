// Copyright (c) 2024 The bitcoin-node developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package peer

// Dispatcher is the shared queue of PeerActions consumed by every
// outbound worker (spec C12). A channel already gives exactly the
// semantics spec §5.3 asks for: whichever outbound worker is idle first
// receives the next send on the channel, which is how Go's runtime
// schedules multiple receivers on one channel, so no extra mutex is
// layered on top of it.
type Dispatcher struct {
	actions chan PeerAction
}

// NewDispatcher returns a Dispatcher with an unbounded-in-practice backlog;
// spec §5 calls for unbounded channels so peer writes never block the node
// loop.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{actions: make(chan PeerAction, 4096)}
}

// Enqueue hands action to the dispatcher for the next idle outbound
// worker to pick up.
func (d *Dispatcher) Enqueue(action PeerAction) {
	d.actions <- action
}

// Next blocks until an action is available.
func (d *Dispatcher) Next() PeerAction {
	return <-d.actions
}
