// SPDX-License-Identifier: EPL-2.0

// Package formats registers every decoder this module ships with.
package formats

import (
	"path/filepath"
	"strings"

	"github.com/ik5/audmix/audio"
	"github.com/ik5/audmix/formats/aiff"
	"github.com/ik5/audmix/formats/mp3"
	"github.com/ik5/audmix/formats/vorbis"
	"github.com/ik5/audmix/formats/wav"
)

// Register adds the wav, mp3, ogg and aiff decoders to reg.
func Register(reg *audio.Registry) {
	reg.Register("wav", wav.Decoder{})
	reg.Register("mp3", mp3.Decoder{})
	reg.Register("ogg", vorbis.Decoder{})
	reg.Register("aiff", aiff.Decoder{})
	reg.Register("aif", aiff.Decoder{})
}

// NewRegistry returns a registry holding every shipped decoder.
func NewRegistry() *audio.Registry {
	reg := audio.NewRegistry()
	Register(reg)

	return reg
}

// FromPath returns the format key for a file name, its lower-cased
// extension without the dot.
func FromPath(path string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
}
