// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package session

import "code.hybscloud.com/atomix"

// Serial identifies an endpoint pair. Both endpoints of a pair share it,
// and every call to New draws a larger one.
type Serial = uint32

// serials is the process-wide source of pair serials.
var serials atomix.Uint32

func nextSerial() Serial {
	return serials.Add(1)
}
