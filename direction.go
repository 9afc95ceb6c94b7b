// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pipes

import "strconv"

// Direction tags the role of a state: whether the endpoint sitting in it
// sends the next message or receives it.
type Direction uint8

const (
	Send Direction = iota
	Recv
)

// Reverse returns the direction seen by the peer endpoint.
// Reverse(Reverse(d)) == d for every d; values other than Send and Recv
// are returned unchanged.
func (d Direction) Reverse() Direction {
	switch d {
	case Send:
		return Recv
	case Recv:
		return Send
	}
	return d
}

func (d Direction) String() string {
	switch d {
	case Send:
		return "Send"
	case Recv:
		return "Recv"
	}
	return "Direction(" + strconv.Itoa(int(d)) + ")"
}
