// SPDX-License-Identifier: EPL-2.0

package mixer

import "fmt"

const (
	// MaxChannelVolume is the loudest per-channel volume.
	MaxChannelVolume = 255
	// MaxMixerVolume is the loudest per-category volume. A channel at
	// MaxChannelVolume in a category at MaxMixerVolume plays at unity gain.
	MaxMixerVolume = 256
	// MaxFader is the fader level that leaves a side untouched.
	MaxFader = 255
	// DefaultCapacity is the number of channel slots unless WithCapacity
	// says otherwise.
	DefaultCapacity = 32
	// NoID marks a sound that is not deduplicated by id.
	NoID = -1
)

// Category groups sounds that share a volume and mute setting.
type Category int

const (
	Plain Category = iota
	Music
	SFX
	Speech

	numCategories
)

// Categories lists every category in order.
var Categories = [...]Category{Plain, Music, SFX, Speech}

func (c Category) String() string {
	switch c {
	case Plain:
		return "plain"
	case Music:
		return "music"
	case SFX:
		return "sfx"
	case Speech:
		return "speech"
	}

	return fmt.Sprintf("category(%d)", int(c))
}

func (c Category) valid() bool { return c >= 0 && c < numCategories }

// ParseCategory is the inverse of Category.String.
func ParseCategory(s string) (Category, error) {
	for _, c := range Categories {
		if c.String() == s {
			return c, nil
		}
	}

	return Plain, fmt.Errorf("unknown sound category %q", s)
}

type categorySettings struct {
	volume int
	muted  bool
}

// Handle identifies a playing sound without owning it. It encodes the slot
// index and a generation so a handle to a finished sound never matches the
// sound that later reuses its slot. The zero Handle is never issued.
type Handle uint64

// Ownership says who closes a stream handed to PlayStream.
type Ownership int

const (
	// DisposeAfterUse hands the stream to the mixer, which closes it when
	// the sound ends, is stopped, or is rejected.
	DisposeAfterUse Ownership = iota
	// KeepAfterUse leaves closing the stream to the caller.
	KeepAfterUse
)
