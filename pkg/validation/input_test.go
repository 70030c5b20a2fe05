package validation

import (
	"strings"
	"testing"
)

func TestCleanText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"plain", "hello world", "hello world"},
		{"collapses whitespace", "hello   world\n\n  again", "hello world again"},
		{"strips control chars", "hello\x00world\x07!", "helloworld!"},
		{"trims", "   padded   ", "padded"},
		{"keeps punctuation", "First, I did this. Then, that!", "First, I did this. Then, that!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanText(tt.input); got != tt.want {
				t.Errorf("CleanText(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "answer.mp3", "answer.mp3"},
		{"path traversal", "../../etc/passwd", "____etc_passwd"},
		{"separators", "a/b\\c.wav", "a_b_c.wav"},
		{"shell chars", `a<b>c:d"e|f?g*.m4a`, "a_b_c_d_e_f_g_.m4a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeFilename(tt.input); got != tt.want {
				t.Errorf("SanitizeFilename(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSanitizeFilenameLengthCap(t *testing.T) {
	long := strings.Repeat("a", 300) + ".flac"
	got := SanitizeFilename(long)

	if len(got) > 255 {
		t.Errorf("sanitized filename is %d chars, want at most 255", len(got))
	}
	if !strings.HasSuffix(got, ".flac") {
		t.Errorf("expected extension to survive truncation, got %q", got)
	}
}

func TestFileExtension(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"answer.MP3", "mp3"},
		{"clip.wav", "wav"},
		{"noext", ""},
		{"many.dots.m4a", "m4a"},
	}

	for _, tt := range tests {
		if got := FileExtension(tt.input); got != tt.want {
			t.Errorf("FileExtension(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
