package player

import "testing"

func TestClampSeekPos(t *testing.T) {
	total := int64(10 * playbackBytesPerSec)
	tests := []struct {
		cur, delta, want int64
	}{
		{0, -5 * playbackBytesPerSec, 0},
		{playbackBytesPerSec, playbackBytesPerSec, 2 * playbackBytesPerSec},
		{total - 10, playbackBytesPerSec, total},
		{0, 7, 4},
		{total, 0, total},
	}
	for _, tt := range tests {
		if got := clampSeekPos(tt.cur, tt.delta, total); got != tt.want {
			t.Errorf("clampSeekPos(%d, %d, %d) = %d, want %d", tt.cur, tt.delta, total, got, tt.want)
		}
	}
}
