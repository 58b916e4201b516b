package imagen

import (
	"context"
)

// ImageProvider defines the contract for any image generation backend.
// Generate returns raw PNG bytes for the given prompt.
type ImageProvider interface {
	Generate(ctx context.Context, prompt string, size Size) ([]byte, error)
}
