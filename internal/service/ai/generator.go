package ai

import (
	"context"

	"github.com/ninakotova/lumina/internal/model/chat"
)

// Generator is the external generation collaborator: one request, one
// complete response. The engine never streams from it; progressive display
// is simulated by the playback scheduler.
type Generator interface {
	Generate(ctx context.Context, contextText string, images []chat.Image) (string, error)
}

// GeneratorFunc adapts a function to the Generator interface, mostly for
// tests.
type GeneratorFunc func(ctx context.Context, contextText string, images []chat.Image) (string, error)

// Generate implements Generator.
func (f GeneratorFunc) Generate(ctx context.Context, contextText string, images []chat.Image) (string, error) {
	return f(ctx, contextText, images)
}
