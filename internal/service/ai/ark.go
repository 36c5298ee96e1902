package ai

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"
	"github.com/rs/zerolog/log"

	"github.com/ninakotova/lumina/internal/model/chat"
)

// Ark drives the Volcengine Ark chat model through an eino chain. The
// orchestrator already folds the personality directive and transcript into
// contextText, so the chain carries a single user slot.
type Ark struct {
	chain compose.Runnable[map[string]any, *schema.Message]
}

// NewArk compiles the generation chain on top of the supplied chat model.
func NewArk(ctx context.Context, chatModel model.ChatModel) (*Ark, error) {
	promptTemplate := prompt.FromMessages(
		schema.FString,
		schema.UserMessage("{query}"),
	)

	chain := compose.NewChain[map[string]any, *schema.Message]()
	chain.AppendChatTemplate(promptTemplate)
	chain.AppendChatModel(chatModel)

	runnable, err := chain.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compile generation chain: %w", err)
	}
	return &Ark{chain: runnable}, nil
}

// Generate implements Generator. The Ark text endpoint takes no inline
// images; attachments are dropped with a warning.
func (a *Ark) Generate(ctx context.Context, contextText string, images []chat.Image) (string, error) {
	if len(images) > 0 {
		log.Warn().Int("images", len(images)).Msg("ark provider ignores image attachments")
	}

	response, err := a.chain.Invoke(ctx, map[string]any{"query": contextText})
	if err != nil {
		return "", fmt.Errorf("failed to run generation chain: %w", err)
	}

	log.Debug().Int("length", len(response.Content)).Msg("ark response received")
	return response.Content, nil
}
