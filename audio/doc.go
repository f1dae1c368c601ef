// SPDX-License-Identifier: EPL-2.0

// Package audio provides the streams and sample conversion the mixer is
// built on.
//
// # Sources and Streams
//
// A Source yields interleaved float32 samples in [-1, 1]:
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    ReadSamples(dst []float32) (int, error)
//	    BufSize() int
//	    Close() error
//	}
//
// Every decoder in the formats packages returns a Source. A Stream adds
// what the mixer needs to schedule it: whether data is available now
// (EndOfData), whether it ended for good (EndOfStream), and whether it can
// start over (Rewindable, Rewind).
//
// The package ships four streams:
//   - SourceStream wraps a decoded Source; NewStream builds it
//   - MemoryStream plays samples held in memory and can rewind; Load fills
//     one from a Source
//   - LoopingStream repeats a rewindable stream
//   - QueueStream plays blocks queued by a producer and may run dry
//     without ending
//
// # Rate Conversion
//
// A RateConverter reads a Stream at its rate and adds it to an int16
// output buffer at another rate, using cubic interpolation. It also maps
// mono and stereo, applies a left and right gain where UnityGain leaves
// samples unchanged, and saturates at the int16 range:
//
//	c, err := audio.NewRateConverter(22050, 44100, false, true, false)
//	n := c.Convert(stream, buf, frames, audio.UnityGain, audio.UnityGain)
//
// # Format Registry
//
// The registry maps format keys to decoders:
//
//	registry := audio.NewRegistry()
//	formats.Register(registry)
//	decoder, ok := registry.Get("wav")
//
// # Error Handling
//
// ReadSamples returns io.EOF once no more data follows. Other errors come
// from the underlying decoder:
//
//	for {
//	    n, err := source.ReadSamples(buf)
//	    if errors.Is(err, io.EOF) {
//	        break
//	    }
//	    if err != nil {
//	        return err
//	    }
//	    // process buf[:n]
//	}
package audio
