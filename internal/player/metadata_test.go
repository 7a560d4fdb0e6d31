package player

import "testing"

func TestReadMetadataFilenameFallback(t *testing.T) {
	tests := []struct {
		path string
		want Metadata
	}{
		{"/music/Boards of Canada - Roygbiv.flac", Metadata{Title: "Roygbiv", Artist: "Boards of Canada"}},
		{"/music/untitled.wav", Metadata{Title: "untitled"}},
		{"/music/ - .ogg", Metadata{Title: " - "}},
	}
	for _, tt := range tests {
		if got := ReadMetadata(tt.path); got != tt.want {
			t.Errorf("ReadMetadata(%q) = %+v, want %+v", tt.path, got, tt.want)
		}
	}
}
