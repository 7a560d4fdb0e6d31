package player

import (
	"path/filepath"
	"strings"

	"github.com/bogem/id3v2/v2"
)

// Metadata holds track information for the header line.
type Metadata struct {
	Title  string
	Artist string
	Album  string
}

// ReadMetadata reads ID3v2 tags from MP3 files, falling back to the filename
// for other formats or untagged files. An "Artist - Title" filename is split
// into its parts.
func ReadMetadata(path string) Metadata {
	if strings.EqualFold(filepath.Ext(path), ".mp3") {
		tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
		if err == nil {
			defer tag.Close()
			m := Metadata{
				Title:  strings.TrimSpace(tag.Title()),
				Artist: strings.TrimSpace(tag.Artist()),
				Album:  strings.TrimSpace(tag.Album()),
			}
			if m.Title != "" {
				return m
			}
		}
	}

	base := filepath.Base(path)
	name := strings.TrimSuffix(base, filepath.Ext(base))

	if artist, title, ok := strings.Cut(name, " - "); ok {
		artist = strings.TrimSpace(artist)
		title = strings.TrimSpace(title)
		if artist != "" && title != "" {
			return Metadata{Title: title, Artist: artist}
		}
	}

	return Metadata{Title: name}
}
