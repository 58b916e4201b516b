package utils

import (
	"strings"
	"testing"
)

func TestSplitText(t *testing.T) {
	t.Run("short text stays whole", func(t *testing.T) {
		chunks := SplitText("short", 100, 10)
		if len(chunks) != 1 || chunks[0] != "short" {
			t.Errorf("got %v, want single chunk", chunks)
		}
	})

	t.Run("long text is chunked with overlap", func(t *testing.T) {
		text := strings.Repeat("a", 250)
		chunks := SplitText(text, 100, 20)

		if len(chunks) < 3 {
			t.Fatalf("got %d chunks, want at least 3", len(chunks))
		}
		for i, c := range chunks {
			if len(c) > 100 {
				t.Errorf("chunk %d has length %d, want <= 100", i, len(c))
			}
		}

		// Reassembling with the overlap removed must restore the input.
		step := 100 - 20
		var sb strings.Builder
		for i, c := range chunks {
			if i == 0 {
				sb.WriteString(c)
				continue
			}
			start := i * step
			if start+len(c) <= sb.Len() {
				continue
			}
			sb.WriteString(c[sb.Len()-start:])
		}
		if sb.String() != text {
			t.Errorf("chunks do not cover the input text")
		}
	})

	t.Run("overlap larger than chunk size falls back to plain steps", func(t *testing.T) {
		text := strings.Repeat("b", 50)
		chunks := SplitText(text, 10, 15)
		if len(chunks) != 5 {
			t.Errorf("got %d chunks, want 5", len(chunks))
		}
	})
}
