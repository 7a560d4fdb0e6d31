package player

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/mewkiz/flac"
)

// flacDecoder converts FLAC frames of any bit depth to s16le.
type flacDecoder struct {
	stream     *flac.Stream
	sampleRate int
	channels   int
	bps        int
	totalBytes int64
	pos        int64
	carry      carryBuffer
}

func newFLACDecoder(f *os.File) (*flacDecoder, error) {
	stream, err := flac.NewSeek(f)
	if err != nil {
		return nil, fmt.Errorf("decoding FLAC: %w", err)
	}

	info := stream.Info
	channels := int(info.NChannels)
	return &flacDecoder{
		stream:     stream,
		sampleRate: int(info.SampleRate),
		channels:   channels,
		bps:        int(info.BitsPerSample),
		totalBytes: int64(info.NSamples) * int64(channels) * 2,
	}, nil
}

func (d *flacDecoder) Read(p []byte) (int, error) {
	if n := d.carry.take(p); n > 0 {
		d.pos += int64(n)
		return n, nil
	}

	frame, err := d.stream.ParseNext()
	if err != nil {
		return 0, err
	}

	nSamples := int(frame.Subframes[0].NSamples)
	raw := make([]byte, nSamples*d.channels*2)
	for i := 0; i < nSamples; i++ {
		for ch := 0; ch < d.channels; ch++ {
			s := int(frame.Subframes[ch].Samples[i])
			switch {
			case d.bps > 16:
				s >>= uint(d.bps - 16)
			case d.bps < 16:
				s <<= uint(16 - d.bps)
			}
			off := (i*d.channels + ch) * 2
			binary.LittleEndian.PutUint16(raw[off:], uint16(clampToInt16(s)))
		}
	}

	written := d.carry.give(p, raw)
	d.pos += int64(written)
	return written, nil
}

func (d *flacDecoder) Seek(offset int64, whence int) (int64, error) {
	var newPos int64
	switch whence {
	case io.SeekStart:
		newPos = offset
	case io.SeekCurrent:
		newPos = d.pos + offset
	case io.SeekEnd:
		newPos = d.totalBytes + offset
	default:
		return d.pos, fmt.Errorf("invalid seek whence: %d", whence)
	}
	if newPos < 0 {
		newPos = 0
	}
	if newPos > d.totalBytes {
		newPos = d.totalBytes
	}

	frameBytes := int64(d.channels) * 2
	newPos -= newPos % frameBytes

	if _, err := d.stream.Seek(uint64(newPos / frameBytes)); err != nil {
		return d.pos, err
	}

	d.carry.drop()
	d.pos = newPos
	return newPos, nil
}

func (d *flacDecoder) Length() int64     { return d.totalBytes }
func (d *flacDecoder) SampleRate() int   { return d.sampleRate }
func (d *flacDecoder) ChannelCount() int { return d.channels }
