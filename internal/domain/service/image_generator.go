package service

import "context"

// ImageGenerator renders a single image from a text prompt.
type ImageGenerator interface {
	Generate(ctx context.Context, prompt string) ([]byte, error)
}
