package player

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
)

// Player streams a local audio file to the sound device. Every format is
// conformed to 44.1 kHz stereo first, and the decoded PCM is mirrored to the
// sample sink on its way to the device.
type Player struct {
	file      *os.File
	decoder   audioDecoder
	tap       *tapReader
	otoCtx    *oto.Context
	otoPlayer *oto.Player
	duration  time.Duration
	volume    float64
	paused    bool
	done      chan struct{}
	mu        sync.Mutex
	closed    bool
}

var (
	globalOtoCtx *oto.Context
	otoOnce      sync.Once
	otoInitErr   error
)

func initOto() (*oto.Context, error) {
	otoOnce.Do(func() {
		op := &oto.NewContextOptions{
			SampleRate:   playbackRate,
			ChannelCount: playbackChannels,
			Format:       oto.FormatSignedInt16LE,
		}
		var ready chan struct{}
		globalOtoCtx, ready, otoInitErr = oto.NewContext(op)
		if otoInitErr == nil {
			<-ready
		}
	})
	return globalOtoCtx, otoInitErr
}

// New opens the file at path and starts playback. Each PCM block pulled by
// the audio device is also delivered to sink as normalized float64 samples.
func New(path string, sink func([]float64)) (*Player, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	dec, err := openDecoder(f)
	if err != nil {
		f.Close()
		return nil, err
	}

	conformed, err := newConformedDecoder(dec)
	if err != nil {
		f.Close()
		return nil, err
	}

	ctx, err := initOto()
	if err != nil {
		f.Close()
		return nil, err
	}

	totalBytes := conformed.Length()
	dur := time.Duration(float64(totalBytes) / float64(playbackBytesPerSec) * float64(time.Second))

	tap := newTapReader(conformed, sink)

	p := &Player{
		file:     f,
		decoder:  conformed,
		tap:      tap,
		otoCtx:   ctx,
		duration: dur,
		volume:   0.8,
		done:     make(chan struct{}),
	}

	p.otoPlayer = ctx.NewPlayer(tap)
	p.otoPlayer.SetVolume(p.volume)
	p.otoPlayer.Play()

	// Monitor for playback end
	go p.monitor()

	return p, nil
}

func (p *Player) monitor() {
	for {
		p.mu.Lock()
		if p.closed {
			p.mu.Unlock()
			return
		}
		pos := p.tap.Pos()
		total := p.decoder.Length()
		paused := p.paused
		p.mu.Unlock()

		if !paused && pos >= total {
			close(p.done)
			return
		}
		time.Sleep(200 * time.Millisecond)
	}
}

// Done returns a channel that closes when playback finishes.
func (p *Player) Done() <-chan struct{} {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.done
}

// TogglePause toggles between play and pause.
func (p *Player) TogglePause() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.paused {
		p.otoPlayer.Play()
		p.paused = false
	} else {
		p.otoPlayer.Pause()
		p.paused = true
	}
}

// Paused returns whether playback is paused.
func (p *Player) Paused() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.paused
}

// Position returns the current playback position.
func (p *Player) Position() time.Duration {
	pos := p.tap.Pos()
	secs := float64(pos) / float64(playbackBytesPerSec)
	return time.Duration(secs * float64(time.Second))
}

// Duration returns the total duration of the track.
func (p *Player) Duration() time.Duration {
	return p.duration
}

// Seek moves playback by the given delta from current position.
func (p *Player) Seek(delta time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()

	deltaBytes := int64(delta.Seconds() * float64(playbackBytesPerSec))
	newPos := clampSeekPos(p.tap.Pos(), deltaBytes, p.decoder.Length())

	// Close the old Oto player before seeking: its device goroutine may
	// still be mid-Read inside the resampler, whose window state the seek
	// is about to reset.
	wasPaused := p.paused
	p.otoPlayer.Close()

	if _, err := p.decoder.Seek(newPos, io.SeekStart); err == nil {
		p.tap.SetPos(newPos)
	}

	p.otoPlayer = p.otoCtx.NewPlayer(p.tap)
	p.otoPlayer.SetVolume(p.volume)
	if !wasPaused {
		p.otoPlayer.Play()
	}
}

// clampSeekPos bounds a byte-delta move to the stream and aligns the result
// to a whole output frame.
func clampSeekPos(cur, delta, total int64) int64 {
	pos := cur + delta
	if pos < 0 {
		pos = 0
	}
	if pos > total {
		pos = total
	}
	return pos - pos%frameBytes
}

// Volume returns current volume (0.0 to 1.0).
func (p *Player) Volume() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.volume
}

// SetVolume sets volume (clamped to 0.0 - 1.0).
func (p *Player) SetVolume(v float64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	p.volume = v
	p.otoPlayer.SetVolume(v)
}

// AdjustVolume changes volume by the given delta.
func (p *Player) AdjustVolume(delta float64) {
	p.SetVolume(p.Volume() + delta)
}

// Close stops playback and releases the file. The sample sink is detached
// first so the device goroutine cannot call into freed state.
func (p *Player) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}
	p.closed = true

	p.tap.Detach()
	if p.otoPlayer != nil {
		p.otoPlayer.Close()
	}
	return p.file.Close()
}
