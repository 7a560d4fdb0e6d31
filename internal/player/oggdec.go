package player

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/jfreymuth/oggvorbis"
)

// oggDecoder converts Vorbis float samples to s16le.
type oggDecoder struct {
	reader     *oggvorbis.Reader
	sampleRate int
	channels   int
	totalBytes int64
	pos        int64
	carry      carryBuffer
}

func newOGGDecoder(f *os.File) (*oggDecoder, error) {
	reader, err := oggvorbis.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("decoding OGG: %w", err)
	}

	channels := reader.Channels()
	return &oggDecoder{
		reader:     reader,
		sampleRate: reader.SampleRate(),
		channels:   channels,
		totalBytes: reader.Length() * int64(channels) * 2,
	}, nil
}

func (d *oggDecoder) Read(p []byte) (int, error) {
	if n := d.carry.take(p); n > 0 {
		d.pos += int64(n)
		return n, nil
	}

	floats := make([]float32, len(p)/2)
	if len(floats) == 0 {
		floats = make([]float32, 1)
	}
	n, err := d.reader.Read(floats)
	if n == 0 {
		if err == nil {
			err = io.EOF
		}
		return 0, err
	}

	raw := make([]byte, n*2)
	for i := 0; i < n; i++ {
		s := floats[i]
		if s > 1 {
			s = 1
		} else if s < -1 {
			s = -1
		}
		binary.LittleEndian.PutUint16(raw[i*2:], uint16(int16(s*32767)))
	}

	written := d.carry.give(p, raw)
	d.pos += int64(written)
	return written, err
}

func (d *oggDecoder) Seek(offset int64, whence int) (int64, error) {
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

	if err := d.reader.SetPosition(newPos / frameBytes); err != nil {
		return d.pos, err
	}

	d.carry.drop()
	d.pos = newPos
	return newPos, nil
}

func (d *oggDecoder) Length() int64     { return d.totalBytes }
func (d *oggDecoder) SampleRate() int   { return d.sampleRate }
func (d *oggDecoder) ChannelCount() int { return d.channels }
