// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package session executes pipes protocols: it compiles a frozen
// [pipes.Protocol] into a transition table and runs protocol-checked
// endpoint pairs as algebraic effects on [code.hybscloud.com/kont].
//
// Every operation is validated against the endpoint's current state before
// it touches the transport, so a program that strays from its protocol
// fails with a [*ViolationError] instead of corrupting its peer.
//
// # Architecture
//
//   - Compilation: [Compile] folds the protocol with [pipes.VisitError] into a [Machine].
//     Transitions become state indices; unresolved names fail with [*pipes.UnknownStateError].
//   - Transport: Lock-free bounded SPSC queues via [code.hybscloud.com/lfq]. [New] creates an [Endpoint] pair:
//     the first follows the protocol as declared, the second its dual with every direction reversed.
//   - Non-blocking: Operations return [code.hybscloud.com/iox.ErrWouldBlock] on backpressure.
//   - Results: Evaluation returns [code.hybscloud.com/kont.Either]: Right on success, Left with the
//     violation or transport error that stopped the session.
//
// # API Topologies
//
//   - Operations: [Send], [Recv], [Close]. A send picks the message label, so it also selects the branch;
//     a receive reports the label the peer picked.
//   - Cont-world: [SendThen], [RecvBind], [Branch], [CloseDone].
//   - Expr-world: [ExprSendThen], [ExprRecvBind], [ExprBranch], [ExprCloseDone]. Bridge via [Reify] and [Reflect].
//   - Recursive: [Loop] and [ExprLoop] drive cyclic protocols iteratively.
//
// # Integration
//
//   - Stepping: [Step] and [Advance] evaluate one effect at a time for use in a proactor loop.
//   - Blocking: [Exec], [ExecExpr], [Run] and [RunExpr] wait past boundaries using adaptive backoff.
//
// # Example
//
//	m, _ := session.Compile(proto) // Ready(Send): add(int) -> Ready, done
//	client := session.SendThen(session.Msg("add", 1),
//		session.SendThen(session.Msg("done"), session.CloseDone(struct{}{})))
//	server := session.Loop(0, func(sum int) kont.Eff[kont.Either[int, int]] {
//		return session.RecvBind(func(p session.Packet) kont.Eff[kont.Either[int, int]] {
//			if p.Label == "done" {
//				return session.CloseDone(kont.Right[int, int](sum))
//			}
//			return kont.Pure(kont.Left[int, int](sum + p.Values[0].(int)))
//		})
//	})
//	_, total := session.Run(m, client, server)
package session
