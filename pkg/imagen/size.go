package imagen

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	minDimension = 32
	maxDimension = 2048

	defaultWidth  = 512
	defaultHeight = 512
)

// Size is a parsed image size. Width and Height are always within the
// supported pixel range.
type Size struct {
	Width  int
	Height int
}

// Pixels renders the size as "WxH" for providers that take pixel sizes.
func (s Size) Pixels() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

// AspectRatio reduces the size to its simplest "W:H" ratio for providers
// that take aspect ratios instead of pixel sizes.
func (s Size) AspectRatio() string {
	d := gcd(s.Width, s.Height)
	return fmt.Sprintf("%d:%d", s.Width/d, s.Height/d)
}

// ParseSize parses a user-supplied size string. Accepted forms are
// "WxH" pixel sizes (each dimension clamped to [32, 2048]) and "W:H"
// aspect ratios (mapped onto the default pixel size). Anything else
// falls back to the square default.
func ParseSize(raw string) Size {
	raw = strings.TrimSpace(strings.ToLower(raw))

	if strings.Contains(raw, ":") {
		w, h, ok := splitDims(raw, ":")
		if ok {
			// Scale the ratio so the longer side lands on the default size.
			scale := defaultWidth
			if h > w {
				return Size{Width: clamp(scale * w / h), Height: clamp(scale)}
			}
			return Size{Width: clamp(scale), Height: clamp(scale * h / w)}
		}
		return Size{Width: defaultWidth, Height: defaultHeight}
	}

	w, h, ok := splitDims(raw, "x")
	if !ok {
		return Size{Width: defaultWidth, Height: defaultHeight}
	}
	return Size{Width: clamp(w), Height: clamp(h)}
}

func splitDims(raw, sep string) (int, int, bool) {
	parts := strings.Split(raw, sep)
	if len(parts) != 2 {
		return 0, 0, false
	}
	w, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
	h, err2 := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err1 != nil || err2 != nil || w <= 0 || h <= 0 {
		return 0, 0, false
	}
	return w, h, true
}

func clamp(v int) int {
	if v < minDimension {
		return minDimension
	}
	if v > maxDimension {
		return maxDimension
	}
	return v
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
