package imagen

import (
	"testing"
)

func TestParseSize(t *testing.T) {
	tests := []struct {
		name       string
		raw        string
		wantWidth  int
		wantHeight int
	}{
		{
			name:       "pixel size",
			raw:        "1024x768",
			wantWidth:  1024,
			wantHeight: 768,
		},
		{
			name:       "pixel size clamped low",
			raw:        "10x10",
			wantWidth:  32,
			wantHeight: 32,
		},
		{
			name:       "pixel size clamped high",
			raw:        "4096x4096",
			wantWidth:  2048,
			wantHeight: 2048,
		},
		{
			name:       "uppercase separator",
			raw:        "640X480",
			wantWidth:  640,
			wantHeight: 480,
		},
		{
			name:       "landscape aspect ratio scales to default",
			raw:        "16:9",
			wantWidth:  512,
			wantHeight: 288,
		},
		{
			name:       "portrait aspect ratio scales to default",
			raw:        "9:16",
			wantWidth:  288,
			wantHeight: 512,
		},
		{
			name:       "square aspect ratio",
			raw:        "1:1",
			wantWidth:  512,
			wantHeight: 512,
		},
		{
			name:       "empty string falls back to default",
			raw:        "",
			wantWidth:  512,
			wantHeight: 512,
		},
		{
			name:       "junk falls back to default",
			raw:        "banana",
			wantWidth:  512,
			wantHeight: 512,
		},
		{
			name:       "negative dimensions fall back to default",
			raw:        "-100x200",
			wantWidth:  512,
			wantHeight: 512,
		},
		{
			name:       "malformed ratio falls back to default",
			raw:        "16:9:4",
			wantWidth:  512,
			wantHeight: 512,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseSize(tt.raw)
			if got.Width != tt.wantWidth || got.Height != tt.wantHeight {
				t.Errorf("ParseSize(%q) = %dx%d, want %dx%d",
					tt.raw, got.Width, got.Height, tt.wantWidth, tt.wantHeight)
			}
		})
	}
}

func TestSizePixels(t *testing.T) {
	s := Size{Width: 1024, Height: 768}
	if got := s.Pixels(); got != "1024x768" {
		t.Errorf("Pixels() = %q, want %q", got, "1024x768")
	}
}

func TestSizeAspectRatio(t *testing.T) {
	tests := []struct {
		size Size
		want string
	}{
		{Size{Width: 1024, Height: 768}, "4:3"},
		{Size{Width: 512, Height: 512}, "1:1"},
		{Size{Width: 512, Height: 288}, "16:9"},
	}

	for _, tt := range tests {
		if got := tt.size.AspectRatio(); got != tt.want {
			t.Errorf("AspectRatio(%dx%d) = %q, want %q", tt.size.Width, tt.size.Height, got, tt.want)
		}
	}
}
