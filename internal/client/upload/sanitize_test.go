package upload

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeFileName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"clip.mp4", "clip.mp4"},
		{"my holiday video.mp4", "my_holiday_video.mp4"},
		{"a  \t b.mov", "a_b.mov"},
		{"weird$%name(1).mp4", "weirdname1.mp4"},
		{"über clip.mp4", "ber_clip.mp4"},
		{"  leading.mp4", "_leading.mp4"},
		{"already_safe-name.v2.webm", "already_safe-name.v2.webm"},
		{"a\u00a0b.mp4", "a_b.mp4"},
		{"a\u2003\u3000b.mp4", "a_b.mp4"},
		{"a\vb.mp4", "a_b.mp4"},
		{"???", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeFileName(tt.in))
		})
	}
}

func TestSanitizeFileName_IdempotentAndSafe(t *testing.T) {
	safe := regexp.MustCompile(`^[A-Za-z0-9_.-]*$`)
	inputs := []string{
		"clip.mp4", "my video (final).mp4", "ä ö ü.mov", "a/b\\c.mp4",
		"tab\tsep\nline.mkv", "emoji 🎬 take 2.mp4", "--..__", "   ",
	}

	for _, in := range inputs {
		once := SanitizeFileName(in)
		assert.Equal(t, once, SanitizeFileName(once), "not idempotent for %q", in)
		assert.Regexp(t, safe, once, "unsafe output for %q", in)
	}
}
