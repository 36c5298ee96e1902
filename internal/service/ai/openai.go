package ai

import (
	"context"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	openai "github.com/sashabaranov/go-openai"

	"github.com/ninakotova/lumina/internal/model/chat"
)

// OpenAIConfig parameterizes the OpenAI provider.
type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// OpenAI calls the chat completions API, attaching images as data-URI
// image parts.
type OpenAI struct {
	cfg    OpenAIConfig
	client *openai.Client
}

// NewOpenAI returns an OpenAI-backed generator.
func NewOpenAI(cfg OpenAIConfig) *OpenAI {
	if cfg.Model == "" {
		cfg.Model = openai.GPT4oMini
	}
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	return &OpenAI{cfg: cfg, client: openai.NewClientWithConfig(clientCfg)}
}

// Generate implements Generator.
func (o *OpenAI) Generate(ctx context.Context, contextText string, images []chat.Image) (string, error) {
	var message openai.ChatCompletionMessage
	message.Role = openai.ChatMessageRoleUser

	if len(images) == 0 {
		message.Content = contextText
	} else {
		parts := make([]openai.ChatMessagePart, 0, 1+len(images))
		if contextText != "" {
			parts = append(parts, openai.ChatMessagePart{
				Type: openai.ChatMessagePartTypeText,
				Text: contextText,
			})
		}
		for _, img := range images {
			if img.Base64 == "" || img.MimeType == "" {
				continue
			}
			parts = append(parts, openai.ChatMessagePart{
				Type:     openai.ChatMessagePartTypeImageURL,
				ImageURL: &openai.ChatMessageImageURL{URL: img.DataURI()},
			})
		}
		message.MultiContent = parts
	}

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    o.cfg.Model,
		Messages: []openai.ChatCompletionMessage{message},
	})
	if err != nil {
		return "", errors.Wrap(err, "calling openai")
	}
	if len(resp.Choices) == 0 {
		return "No valid response from AI.", nil
	}

	log.Debug().Int("length", len(resp.Choices[0].Message.Content)).Msg("openai response received")
	return resp.Choices[0].Message.Content, nil
}
