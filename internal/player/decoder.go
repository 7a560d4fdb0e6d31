package player

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// audioDecoder produces 16-bit little-endian PCM and reports the stream's
// native shape. Length is the total number of PCM bytes the decoder will emit.
type audioDecoder interface {
	io.ReadSeeker
	Length() int64
	SampleRate() int
	ChannelCount() int
}

var supportedExts = []string{".mp3", ".wav", ".flac", ".ogg"}

// IsSupportedExt reports whether the (lowercase) extension is playable.
func IsSupportedExt(ext string) bool {
	for _, e := range supportedExts {
		if e == ext {
			return true
		}
	}
	return false
}

// SupportedExtsList returns the playable extensions for error messages.
func SupportedExtsList() string {
	return strings.Join(supportedExts, ", ")
}

// openDecoder picks a decoder by file extension.
func openDecoder(f *os.File) (audioDecoder, error) {
	switch ext := strings.ToLower(filepath.Ext(f.Name())); ext {
	case ".mp3":
		return newMP3Decoder(f)
	case ".wav":
		return newWAVDecoder(f)
	case ".flac":
		return newFLACDecoder(f)
	case ".ogg":
		return newOGGDecoder(f)
	default:
		return nil, fmt.Errorf("unsupported format: %s", ext)
	}
}

// carryBuffer holds PCM a decoder produced beyond what the caller's read
// buffer could take, and serves it first on the next read.
type carryBuffer struct {
	rem []byte
}

// take drains stashed bytes into p, returning how many were copied.
func (c *carryBuffer) take(p []byte) int {
	if len(c.rem) == 0 {
		return 0
	}
	n := copy(p, c.rem)
	c.rem = c.rem[n:]
	return n
}

// give copies raw into p and stashes whatever did not fit.
func (c *carryBuffer) give(p, raw []byte) int {
	n := copy(p, raw)
	if n < len(raw) {
		c.rem = append(c.rem[:0], raw[n:]...)
	}
	return n
}

// drop discards stashed bytes, typically after a seek.
func (c *carryBuffer) drop() {
	c.rem = c.rem[:0]
}

func clampToInt16(v int) int16 {
	if v > 32767 {
		return 32767
	}
	if v < -32768 {
		return -32768
	}
	return int16(v)
}
