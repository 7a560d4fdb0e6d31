package player

import (
	"encoding/binary"
	"io"
	"sync"
)

// tapReader sits between the decoder and the playback device. It tracks the
// byte position for the progress display and mirrors every PCM block to a
// sample sink as flat float64 amplitudes in [-1, 1]. The playback goroutine
// drives Read, so the sink is the asynchronous producer feeding the spectrum
// pipeline; it must return quickly.
type tapReader struct {
	src  io.ReadSeeker
	mu   sync.Mutex
	pos  int64
	sink func([]float64)
}

func newTapReader(src io.ReadSeeker, sink func([]float64)) *tapReader {
	return &tapReader{src: src, sink: sink}
}

func (t *tapReader) Read(p []byte) (int, error) {
	n, err := t.src.Read(p)
	if n == 0 {
		return n, err
	}

	t.mu.Lock()
	t.pos += int64(n)
	sink := t.sink
	t.mu.Unlock()

	if sink != nil {
		samples := make([]float64, n/2)
		for i := range samples {
			samples[i] = float64(int16(binary.LittleEndian.Uint16(p[i*2:]))) / 32768
		}
		sink(samples)
	}
	return n, err
}

func (t *tapReader) Pos() int64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.pos
}

func (t *tapReader) SetPos(pos int64) {
	t.mu.Lock()
	t.pos = pos
	t.mu.Unlock()
}

// Detach disconnects the sink. Called before teardown so the playback
// goroutine cannot invoke a callback into state being freed.
func (t *tapReader) Detach() {
	t.mu.Lock()
	t.sink = nil
	t.mu.Unlock()
}
