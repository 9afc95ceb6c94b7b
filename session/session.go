// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package session

import (
	"code.hybscloud.com/atomix"
	"code.hybscloud.com/iox"
	"code.hybscloud.com/kont"
	"code.hybscloud.com/lfq"

	"code.hybscloud.com/pipes"
)

// channelCapacity is the bounded capacity for session transport queues.
// 4 balances amortizing producer-side cached-index refresh cost while
// keeping ring buffers within a single cache line.
const channelCapacity = 4

// Packet is one message on the wire: the label the sender picked and the
// payload values it carried.
type Packet struct {
	Label  string
	Values []any
}

// sessionContext holds the lock-free transport and the protocol position
// of a single endpoint. Each direction is a single-producer
// single-consumer bounded queue.
type sessionContext struct {
	m        *Machine
	dual     bool
	cur      int
	serial   Serial
	sendQ    *lfq.SPSC[Packet]
	recvQ    *lfq.SPSC[Packet]
	closed   *atomix.Uint32
	sendSlot Packet
}

// sessionDispatcher is the structural interface for session operations.
// DispatchSession is non-blocking: it returns iox.ErrWouldBlock at
// the I/O boundary when the bounded queue cannot make progress, and a
// *ViolationError when the operation does not fit the current state.
type sessionDispatcher interface {
	DispatchSession(ctx *sessionContext) (kont.Resumed, error)
}

// dispatchWait retries DispatchSession until it succeeds or fails with
// anything other than iox.ErrWouldBlock, backing off with iox.Backoff.
func dispatchWait(ctx *sessionContext, sop sessionDispatcher) (kont.Resumed, error) {
	var bo iox.Backoff
	for {
		v, err := sop.DispatchSession(ctx)
		if err == nil {
			return v, nil
		}
		if !iox.IsWouldBlock(err) {
			return nil, err
		}
		bo.Wait()
	}
}

// Endpoint represents one side of a protocol-checked channel pair.
// An endpoint must be driven by one goroutine at a time.
type Endpoint struct {
	ctx sessionContext
}

// Serial returns the serial number assigned to this endpoint's session.
func (ep *Endpoint) Serial() Serial {
	return ep.ctx.serial
}

// Dual reports whether the endpoint plays the protocol with every
// direction reversed.
func (ep *Endpoint) Dual() bool {
	return ep.ctx.dual
}

// State returns the name of the endpoint's current state, or "" once a
// message without transition has been exchanged.
func (ep *Endpoint) State() string {
	if ep.ctx.cur == end {
		return ""
	}
	return ep.ctx.m.rows[ep.ctx.cur].name
}

// Direction returns the endpoint's direction in its current state.
// It is meaningless once Done reports true.
func (ep *Endpoint) Direction() pipes.Direction {
	if ep.ctx.cur == end {
		return pipes.Recv
	}
	return ep.ctx.direction()
}

// Done reports whether the session has reached a point where Close is
// allowed: after a message without transition, or in a state without
// messages.
func (ep *Endpoint) Done() bool {
	return ep.ctx.terminal()
}

// Closed returns how many endpoints of the pair have closed.
func (ep *Endpoint) Closed() int {
	return int(ep.ctx.closed.Load())
}

// endpointPair holds both endpoints, queues, and shared state
// in a single allocation. SPSC queues are embedded as values;
// only the ring buffers are separate heap objects.
type endpointPair struct {
	a      Endpoint
	b      Endpoint
	closed atomix.Uint32
	dataAB lfq.SPSC[Packet]
	dataBA lfq.SPSC[Packet]
}

// New creates a connected pair of endpoints for m, both in the start
// state. The first endpoint follows the protocol as declared; the second
// follows its dual.
//
// Session operations are non-blocking: DispatchSession returns
// iox.ErrWouldBlock when the peer has not yet produced or consumed.
func New(m *Machine) (*Endpoint, *Endpoint) {
	s := nextSerial()

	pair := &endpointPair{}
	pair.dataAB.Init(channelCapacity)
	pair.dataBA.Init(channelCapacity)

	pair.a = Endpoint{
		ctx: sessionContext{
			m:      m,
			serial: s,
			sendQ:  &pair.dataAB,
			recvQ:  &pair.dataBA,
			closed: &pair.closed,
		},
	}
	pair.b = Endpoint{
		ctx: sessionContext{
			m:      m,
			dual:   true,
			serial: s,
			sendQ:  &pair.dataBA,
			recvQ:  &pair.dataAB,
			closed: &pair.closed,
		},
	}
	return &pair.a, &pair.b
}

func (ctx *sessionContext) direction() pipes.Direction {
	d := ctx.m.rows[ctx.cur].dir
	if ctx.dual {
		return d.Reverse()
	}
	return d
}

func (ctx *sessionContext) terminal() bool {
	return ctx.cur == end || len(ctx.m.rows[ctx.cur].edges) == 0
}

// expect checks that the endpoint may perform an operation of direction d
// in its current state.
func (ctx *sessionContext) expect(d pipes.Direction, label string) error {
	if ctx.cur == end {
		return ctx.violation(label, "session has ended")
	}
	if len(ctx.m.rows[ctx.cur].edges) == 0 {
		return ctx.violation(label, "state has no messages")
	}
	if got := ctx.direction(); got != d {
		return ctx.violation(label, "endpoint must "+verb(got))
	}
	return nil
}

func (ctx *sessionContext) violation(label, reason string) *ViolationError {
	v := &ViolationError{
		Protocol: ctx.m.proto.Name(),
		Serial:   ctx.serial,
		Dual:     ctx.dual,
		Label:    label,
		Reason:   reason,
	}
	if ctx.cur != end {
		v.State = ctx.m.rows[ctx.cur].name
	}
	return v
}

func verb(d pipes.Direction) string {
	if d == pipes.Send {
		return "send"
	}
	return "receive"
}
