package player

import (
	"bytes"
	"encoding/binary"
	"io"
	"testing"
)

type stubPCMDecoder struct {
	data       []byte
	pos        int64
	sampleRate int
	channels   int
}

func (d *stubPCMDecoder) Read(p []byte) (int, error) {
	if d.pos >= int64(len(d.data)) {
		return 0, io.EOF
	}
	n := copy(p, d.data[d.pos:])
	d.pos += int64(n)
	if d.pos >= int64(len(d.data)) {
		return n, io.EOF
	}
	return n, nil
}

func (d *stubPCMDecoder) Seek(offset int64, whence int) (int64, error) {
	var next int64
	switch whence {
	case io.SeekStart:
		next = offset
	case io.SeekCurrent:
		next = d.pos + offset
	case io.SeekEnd:
		next = int64(len(d.data)) + offset
	}
	if next < 0 {
		next = 0
	}
	if next > int64(len(d.data)) {
		next = int64(len(d.data))
	}
	d.pos = next
	return next, nil
}

func (d *stubPCMDecoder) Length() int64     { return int64(len(d.data)) }
func (d *stubPCMDecoder) SampleRate() int   { return d.sampleRate }
func (d *stubPCMDecoder) ChannelCount() int { return d.channels }

func pcm16(samples ...int16) []byte {
	out := make([]byte, len(samples)*2)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(out[i*2:], uint16(s))
	}
	return out
}

func TestConformedDecoderUpmixesMono(t *testing.T) {
	src := &stubPCMDecoder{
		data:       pcm16(1000, -2000, 3000),
		sampleRate: playbackRate,
		channels:   1,
	}

	dec, err := newConformedDecoder(src)
	if err != nil {
		t.Fatalf("newConformedDecoder() error = %v", err)
	}

	out, err := io.ReadAll(dec)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}

	want := pcm16(1000, 1000, -2000, -2000, 3000, 3000)
	if !bytes.Equal(out, want) {
		t.Fatalf("upmixed PCM mismatch:\n got %v\nwant %v", out, want)
	}
	if dec.SampleRate() != playbackRate {
		t.Fatalf("SampleRate() = %d, want %d", dec.SampleRate(), playbackRate)
	}
	if dec.ChannelCount() != playbackChannels {
		t.Fatalf("ChannelCount() = %d, want %d", dec.ChannelCount(), playbackChannels)
	}
}

func TestConformedDecoderResamples(t *testing.T) {
	src := &stubPCMDecoder{
		data:       pcm16(0, 1000),
		sampleRate: 22050,
		channels:   1,
	}

	dec, err := newConformedDecoder(src)
	if err != nil {
		t.Fatalf("newConformedDecoder() error = %v", err)
	}

	out, err := io.ReadAll(dec)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}

	// Two source samples become four output frames; the midpoints are
	// interpolated and the last frame is held past the end of the source.
	want := pcm16(0, 0, 500, 500, 1000, 1000, 1000, 1000)
	if !bytes.Equal(out, want) {
		t.Fatalf("resampled PCM mismatch:\n got %v\nwant %v", out, want)
	}
}

func TestConformedDecoderSeek(t *testing.T) {
	src := &stubPCMDecoder{
		data:       pcm16(0, 1000),
		sampleRate: 22050,
		channels:   1,
	}

	dec, err := newConformedDecoder(src)
	if err != nil {
		t.Fatalf("newConformedDecoder() error = %v", err)
	}

	pos, err := dec.Seek(2*frameBytes, io.SeekStart)
	if err != nil {
		t.Fatalf("Seek() error = %v", err)
	}
	if pos != 2*frameBytes {
		t.Fatalf("Seek() = %d, want %d", pos, 2*frameBytes)
	}

	out, err := io.ReadAll(dec)
	if err != nil {
		t.Fatalf("ReadAll() after seek error = %v", err)
	}

	want := pcm16(1000, 1000, 1000, 1000)
	if !bytes.Equal(out, want) {
		t.Fatalf("PCM after seek mismatch:\n got %v\nwant %v", out, want)
	}
}

func TestConformedDecoderDirectPassthrough(t *testing.T) {
	src := &stubPCMDecoder{
		data:       pcm16(10, 20, 30, 40),
		sampleRate: playbackRate,
		channels:   playbackChannels,
	}

	dec, err := newConformedDecoder(src)
	if err != nil {
		t.Fatalf("newConformedDecoder() error = %v", err)
	}
	if dec.Length() != src.Length() {
		t.Fatalf("Length() = %d, want %d", dec.Length(), src.Length())
	}

	out, err := io.ReadAll(dec)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if !bytes.Equal(out, src.data) {
		t.Fatalf("passthrough PCM mismatch:\n got %v\nwant %v", out, src.data)
	}
}

func TestConformedDecoderRejectsBadSource(t *testing.T) {
	if _, err := newConformedDecoder(&stubPCMDecoder{sampleRate: 0, channels: 2}); err == nil {
		t.Fatal("expected error for zero sample rate")
	}
	if _, err := newConformedDecoder(&stubPCMDecoder{sampleRate: playbackRate, channels: 6}); err == nil {
		t.Fatal("expected error for six channels")
	}
}
