package player

import (
	"encoding/binary"
	"fmt"
	"io"
)

const (
	// playbackRate matches the spectrum pipeline's assumed sample rate; the
	// conformer exists so that assumption holds for every source format.
	playbackRate        = 44100
	playbackChannels    = 2
	bytesPerSample      = 2
	frameBytes          = playbackChannels * bytesPerSample
	playbackBytesPerSec = playbackRate * frameBytes
)

// conformedDecoder presents any decoder as 44.1 kHz stereo s16le: mono is
// upmixed and other rates are linearly resampled. Sources that already match
// pass straight through.
type conformedDecoder struct {
	src      audioDecoder
	srcRate  int
	srcChans int
	direct   bool

	outFrames int64 // total output frames
	outPos    int64 // next output frame index
	pos       int64 // byte position in the output stream
	carry     carryBuffer

	// win is a sliding window of source frames, already stereo, starting at
	// source frame index winBase. srcEOF means the source is drained and the
	// final frame is held for interpolation.
	win     []int16
	winBase int64
	srcEOF  bool
	scratch []byte
}

func newConformedDecoder(src audioDecoder) (audioDecoder, error) {
	rate := src.SampleRate()
	if rate <= 0 {
		return nil, fmt.Errorf("unsupported sample rate: %d", rate)
	}
	chans := src.ChannelCount()
	if chans < 1 || chans > playbackChannels {
		return nil, fmt.Errorf("unsupported channel count: %d", chans)
	}

	srcFrames := src.Length() / int64(chans*bytesPerSample)
	outFrames := srcFrames * playbackRate / int64(rate)
	if srcFrames > 0 && outFrames == 0 {
		outFrames = 1
	}

	d := &conformedDecoder{
		src:       src,
		srcRate:   rate,
		srcChans:  chans,
		direct:    rate == playbackRate && chans == playbackChannels,
		outFrames: outFrames,
	}
	if d.direct {
		d.outFrames = src.Length() / frameBytes
	}
	return d, nil
}

func (d *conformedDecoder) Length() int64     { return d.outFrames * frameBytes }
func (d *conformedDecoder) SampleRate() int   { return playbackRate }
func (d *conformedDecoder) ChannelCount() int { return playbackChannels }

func (d *conformedDecoder) Read(p []byte) (int, error) {
	if d.direct {
		n, err := d.src.Read(p)
		d.pos += int64(n)
		return n, err
	}

	if n := d.carry.take(p); n > 0 {
		d.pos += int64(n)
		return n, nil
	}
	if d.outPos >= d.outFrames {
		return 0, io.EOF
	}

	frames := len(p) / frameBytes
	if frames == 0 {
		frames = 1
	}
	if remaining := d.outFrames - d.outPos; int64(frames) > remaining {
		frames = int(remaining)
	}

	raw := make([]byte, frames*frameBytes)
	written := 0
	for k := 0; k < frames; k++ {
		// Source position as a rational: outPos·srcRate / playbackRate.
		num := d.outPos * int64(d.srcRate)
		sf := num / playbackRate
		frac := num % playbackRate

		if err := d.ensureWindow(sf); err != nil {
			break
		}

		l0, r0 := d.frameAt(sf)
		l1, r1 := d.frameAt(sf + 1)

		off := k * frameBytes
		binary.LittleEndian.PutUint16(raw[off:], uint16(lerpSample(l0, l1, frac)))
		binary.LittleEndian.PutUint16(raw[off+2:], uint16(lerpSample(r0, r1, frac)))

		written++
		d.outPos++
	}

	if written == 0 {
		return 0, io.EOF
	}
	n := d.carry.give(p, raw[:written*frameBytes])
	d.pos += int64(n)
	return n, nil
}

// ensureWindow slides the window forward so frames sf and sf+1 are buffered,
// reading more from the source as needed.
func (d *conformedDecoder) ensureWindow(sf int64) error {
	if sf < d.winBase {
		return fmt.Errorf("source frame %d fell behind the window at %d", sf, d.winBase)
	}

	if drop := sf - d.winBase; drop > 0 {
		have := int64(len(d.win)) / playbackChannels
		if drop >= have {
			d.win = d.win[:0]
			d.winBase += have
		} else {
			keep := int64(len(d.win)) - drop*playbackChannels
			copy(d.win, d.win[drop*playbackChannels:])
			d.win = d.win[:keep]
			d.winBase = sf
		}
	}

	need := sf - d.winBase + 2
	for int64(len(d.win))/playbackChannels < need && !d.srcEOF {
		if err := d.fill(); err != nil {
			if err == io.EOF {
				d.srcEOF = true
				break
			}
			return err
		}
	}
	return nil
}

// fill appends one chunk of source frames to the window, upmixing mono.
func (d *conformedDecoder) fill() error {
	const chunkFrames = 4096

	srcFrameBytes := d.srcChans * bytesPerSample
	if len(d.scratch) < chunkFrames*srcFrameBytes {
		d.scratch = make([]byte, chunkFrames*srcFrameBytes)
	}
	buf := d.scratch[:chunkFrames*srcFrameBytes]

	n, err := d.src.Read(buf)
	if n > 0 {
		frames := n / srcFrameBytes
		for i := 0; i < frames; i++ {
			off := i * srcFrameBytes
			l := int16(binary.LittleEndian.Uint16(buf[off:]))
			r := l
			if d.srcChans == playbackChannels {
				r = int16(binary.LittleEndian.Uint16(buf[off+2:]))
			}
			d.win = append(d.win, l, r)
		}
		return nil
	}
	if err == nil {
		err = io.EOF
	}
	return err
}

// frameAt returns the stereo pair at source frame sf, holding the final
// frame once the source is exhausted.
func (d *conformedDecoder) frameAt(sf int64) (int16, int16) {
	off := (sf - d.winBase) * playbackChannels
	if off < 0 || off+1 >= int64(len(d.win)) {
		if n := len(d.win); n >= playbackChannels {
			return d.win[n-2], d.win[n-1]
		}
		return 0, 0
	}
	return d.win[off], d.win[off+1]
}

func (d *conformedDecoder) Seek(offset int64, whence int) (int64, error) {
	var newPos int64
	switch whence {
	case io.SeekStart:
		newPos = offset
	case io.SeekCurrent:
		newPos = d.pos + offset
	case io.SeekEnd:
		newPos = d.Length() + offset
	default:
		return d.pos, fmt.Errorf("invalid seek whence: %d", whence)
	}
	if newPos < 0 {
		newPos = 0
	}
	if max := d.Length(); newPos > max {
		newPos = max
	}
	newPos -= newPos % frameBytes

	if d.direct {
		pos, err := d.src.Seek(newPos, io.SeekStart)
		if err != nil {
			return d.pos, err
		}
		d.pos = pos
		return pos, nil
	}

	outFrame := newPos / frameBytes
	srcFrame := outFrame * int64(d.srcRate) / playbackRate
	if _, err := d.src.Seek(srcFrame*int64(d.srcChans*bytesPerSample), io.SeekStart); err != nil {
		return d.pos, err
	}

	d.carry.drop()
	d.win = d.win[:0]
	d.winBase = srcFrame
	d.srcEOF = false
	d.outPos = outFrame
	d.pos = newPos
	return newPos, nil
}

// lerpSample interpolates between consecutive source samples with frac given
// as a numerator over playbackRate, rounding to nearest.
func lerpSample(a, b int16, frac int64) int16 {
	if frac == 0 || a == b {
		return a
	}
	diff := int64(b) - int64(a)
	return int16(int64(a) + (diff*frac+playbackRate/2)/playbackRate)
}
