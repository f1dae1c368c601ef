// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	ErrInvalidDstSize  = errors.New("dst size must be multiple of channels")
	ErrInvalidRate     = errors.New("sample rate out of range")
	ErrInvalidChannels = errors.New("only mono and stereo streams are supported")
	ErrNotRewindable   = errors.New("stream cannot be rewound")
	ErrQueueFinished   = errors.New("queue already finished")
)
