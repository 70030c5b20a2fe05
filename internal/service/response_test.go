package service

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	domerr "github.com/hireloop/interview-api/internal/errors"
	"gorm.io/datatypes"
)

func TestImprovementTrend(t *testing.T) {
	tests := []struct {
		name   string
		scores []int // newest first
		want   string
	}{
		{"too few scores", []int{90, 40}, "stable"},
		{"improving", []int{85, 80, 60, 55}, "improving"},
		{"declining", []int{55, 60, 80, 85}, "declining"},
		{"flat", []int{70, 71, 69, 70}, "stable"},
		{"within threshold", []int{74, 72, 70, 68}, "stable"},
		{"odd length improving", []int{90, 88, 60, 58, 55}, "improving"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := improvementTrend(tt.scores); got != tt.want {
				t.Errorf("improvementTrend(%v) = %q, want %q", tt.scores, got, tt.want)
			}
		})
	}
}

// Length bounds count characters, not bytes, so multibyte answers near
// the limits are judged the way users count them.
func TestValidateResponseLength(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		wantErr bool
	}{
		{"too short ascii", strings.Repeat("a", 9), true},
		{"minimum ascii", strings.Repeat("a", 10), false},
		{"maximum ascii", strings.Repeat("a", 5000), false},
		{"too long ascii", strings.Repeat("a", 5001), true},
		{"nine cjk runes", strings.Repeat("面", 9), true},
		{"ten cjk runes", strings.Repeat("面", 10), false},
		{"five thousand cjk runes", strings.Repeat("面", 5000), false},
		{"surrounding whitespace ignored", "   " + strings.Repeat("a", 9) + "   ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateResponseLength(tt.text)
			if tt.wantErr {
				if !errors.Is(err, domerr.ErrInvalidInput) {
					t.Errorf("validateResponseLength() = %v, want ErrInvalidInput", err)
				}
				return
			}
			if err != nil {
				t.Errorf("validateResponseLength() = %v, want nil", err)
			}
		})
	}
}

func TestClampAnalyticsDays(t *testing.T) {
	tests := []struct {
		in   int
		want int
	}{
		{0, 30},
		{-5, 30},
		{1, 1},
		{30, 30},
		{365, 365},
		{400, 365},
	}

	for _, tt := range tests {
		if got := clampAnalyticsDays(tt.in); got != tt.want {
			t.Errorf("clampAnalyticsDays(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestJSONListRoundTrip(t *testing.T) {
	in := []string{"Clear delivery", "Good examples"}

	out := fromJSONList(toJSONList(in))
	if !reflect.DeepEqual(out, in) {
		t.Errorf("round trip mismatch: got %v, want %v", out, in)
	}
}

func TestJSONListEmptyAndInvalid(t *testing.T) {
	if got := fromJSONList(nil); len(got) != 0 {
		t.Errorf("expected empty list for nil JSON, got %v", got)
	}
	if got := fromJSONList(datatypes.JSON(`{broken`)); len(got) != 0 {
		t.Errorf("expected empty list for invalid JSON, got %v", got)
	}
	if got := fromJSONList(toJSONList(nil)); len(got) != 0 {
		t.Errorf("expected empty list round-tripping nil, got %v", got)
	}
}
