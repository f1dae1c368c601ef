// SPDX-License-Identifier: EPL-2.0

package pcm

import "errors"

// ErrBadFormat is returned for a decoder without a usable sample rate or
// channel count.
var ErrBadFormat = errors.New("pcm: missing sample rate or channel count")
