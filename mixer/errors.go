// SPDX-License-Identifier: EPL-2.0

package mixer

import "errors"

var (
	ErrInvalidSampleRate = errors.New("output sample rate must be positive")
	ErrInvalidCapacity   = errors.New("channel capacity must be positive")
	ErrNilStream         = errors.New("stream is nil")
	ErrNotReady          = errors.New("mixer is not ready")
	ErrDuplicateID       = errors.New("a sound with this id is already playing")
	ErrNoFreeSlot        = errors.New("out of mixer slots")
	ErrInvalidStream     = errors.New("stream cannot be played")
)
