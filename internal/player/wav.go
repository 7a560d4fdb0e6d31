package player

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/go-audio/wav"
)

// wavDecoder parses the header with go-audio/wav, then streams raw PCM out
// of the file itself, converting any source bit depth to s16le.
type wavDecoder struct {
	file       *os.File
	pcmStart   int64 // file offset of the data chunk
	sampleRate int
	channels   int
	srcBits    int
	srcBytes   int // bytes per sample in the source
	totalBytes int64
	pos        int64
	carry      carryBuffer
}

func newWAVDecoder(f *os.File) (*wavDecoder, error) {
	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("invalid WAV file")
	}
	if err := dec.FwdToPCM(); err != nil {
		return nil, fmt.Errorf("locating WAV PCM data: %w", err)
	}

	bits := int(dec.BitDepth)
	switch bits {
	case 8, 16, 24, 32:
	default:
		return nil, fmt.Errorf("unsupported WAV bit depth: %d", bits)
	}

	pcmStart, err := f.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, fmt.Errorf("locating WAV PCM start: %w", err)
	}

	srcBytes := bits / 8
	totalSamples := dec.PCMLen() / int64(srcBytes)

	return &wavDecoder{
		file:       f,
		pcmStart:   pcmStart,
		sampleRate: int(dec.SampleRate),
		channels:   int(dec.NumChans),
		srcBits:    bits,
		srcBytes:   srcBytes,
		totalBytes: totalSamples * 2, // s16le output
	}, nil
}

func (d *wavDecoder) Read(p []byte) (int, error) {
	if n := d.carry.take(p); n > 0 {
		d.pos += int64(n)
		return n, nil
	}

	wantSamples := len(p) / 2
	if wantSamples == 0 {
		wantSamples = 1
	}

	src := make([]byte, wantSamples*d.srcBytes)
	n, err := io.ReadFull(d.file, src)
	samples := n / d.srcBytes
	if samples == 0 {
		if err == nil || err == io.ErrUnexpectedEOF {
			err = io.EOF
		}
		return 0, err
	}

	raw := make([]byte, samples*2)
	for i := 0; i < samples; i++ {
		binary.LittleEndian.PutUint16(raw[i*2:], uint16(d.sampleAt(src, i)))
	}

	written := d.carry.give(p, raw)
	d.pos += int64(written)
	if err == io.ErrUnexpectedEOF {
		err = io.EOF
	}
	return written, err
}

// sampleAt decodes source sample i into a signed 16-bit value.
func (d *wavDecoder) sampleAt(src []byte, i int) int16 {
	off := i * d.srcBytes
	switch d.srcBits {
	case 8:
		// 8-bit WAV is unsigned
		return int16((int(src[off]) - 128) << 8)
	case 16:
		return int16(binary.LittleEndian.Uint16(src[off:]))
	case 24:
		s := int32(src[off]) | int32(src[off+1])<<8 | int32(src[off+2])<<16
		if s&0x800000 != 0 {
			s |= ^int32(0xFFFFFF)
		}
		return clampToInt16(int(s >> 8))
	default: // 32
		return clampToInt16(int(int32(binary.LittleEndian.Uint32(src[off:])) >> 16))
	}
}

func (d *wavDecoder) Seek(offset int64, whence int) (int64, error) {
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
	newPos -= newPos % 2

	srcOff := newPos / 2 * int64(d.srcBytes)
	if _, err := d.file.Seek(d.pcmStart+srcOff, io.SeekStart); err != nil {
		return d.pos, err
	}

	d.carry.drop()
	d.pos = newPos
	return newPos, nil
}

func (d *wavDecoder) Length() int64     { return d.totalBytes }
func (d *wavDecoder) SampleRate() int   { return d.sampleRate }
func (d *wavDecoder) ChannelCount() int { return d.channels }
