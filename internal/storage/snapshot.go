package storage

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/ninakotova/lumina/internal/model/category"
	"github.com/ninakotova/lumina/internal/model/chat"
	"github.com/ninakotova/lumina/internal/model/persona"
	"github.com/ninakotova/lumina/internal/model/settings"
	"github.com/ninakotova/lumina/internal/model/template"
)

// Saved snapshots may come from older versions of the application, so every
// decoder here validates and defaults field by field instead of trusting the
// stored shape. Entries too broken to repair are skipped, never fatal.

type chatSnapshot struct {
	ID         string            `json:"id"`
	Title      string            `json:"title"`
	CategoryID string            `json:"categoryId"`
	CreatedAt  time.Time         `json:"createdAt"`
	Messages   []messageSnapshot `json:"messages"`
}

type messageSnapshot struct {
	ID        string       `json:"id"`
	Role      string       `json:"role"`
	Content   string       `json:"content"`
	Images    []chat.Image `json:"images"`
	Timestamp time.Time    `json:"timestamp"`
}

// EncodeChats serializes the chat collection for the chats snapshot key.
func EncodeChats(chats []*chat.Chat) ([]byte, error) {
	return json.Marshal(chats)
}

// DecodeChats rebuilds the chat collection from a stored snapshot,
// defaulting missing fields and dropping entries that cannot be repaired.
func DecodeChats(data []byte) []*chat.Chat {
	var snaps []chatSnapshot
	if err := json.Unmarshal(data, &snaps); err != nil {
		log.Warn().Err(err).Msg("discarding unreadable chats snapshot")
		return nil
	}

	out := make([]*chat.Chat, 0, len(snaps))
	for _, cs := range snaps {
		if cs.ID == "" {
			cs.ID = uuid.NewString()
		}
		if cs.Title == "" {
			cs.Title = chat.DefaultTitle
		}
		if cs.CreatedAt.IsZero() {
			cs.CreatedAt = time.Now().UTC()
		}

		c := &chat.Chat{
			ID:         cs.ID,
			Title:      cs.Title,
			CategoryID: cs.CategoryID,
			CreatedAt:  cs.CreatedAt,
			Messages:   make([]*chat.Message, 0, len(cs.Messages)),
		}
		for _, ms := range cs.Messages {
			role := chat.Role(ms.Role)
			if role != chat.RoleUser && role != chat.RoleAssistant {
				log.Warn().Str("chat", cs.ID).Str("role", ms.Role).Msg("skipping message with unknown role")
				continue
			}
			if ms.ID == "" {
				ms.ID = uuid.NewString()
			}
			if ms.Timestamp.IsZero() {
				ms.Timestamp = cs.CreatedAt
			}
			c.Messages = append(c.Messages, &chat.Message{
				ID:        ms.ID,
				Role:      role,
				Content:   ms.Content,
				Images:    ms.Images,
				Timestamp: ms.Timestamp,
			})
		}
		out = append(out, c)
	}
	return out
}

// DecodeCategories rebuilds the category list, dropping unnamed entries.
func DecodeCategories(data []byte) []category.Category {
	var items []category.Category
	if err := json.Unmarshal(data, &items); err != nil {
		log.Warn().Err(err).Msg("discarding unreadable categories snapshot")
		return nil
	}
	out := items[:0]
	for _, item := range items {
		if item.Name == "" {
			continue
		}
		if item.ID == "" {
			item.ID = uuid.NewString()
		}
		if item.Color == "" {
			item.Color = "#8b5cf6"
		}
		out = append(out, item)
	}
	return out
}

// DecodeTemplates rebuilds the prompt template list.
func DecodeTemplates(data []byte) []template.Template {
	var items []template.Template
	if err := json.Unmarshal(data, &items); err != nil {
		log.Warn().Err(err).Msg("discarding unreadable templates snapshot")
		return nil
	}
	out := items[:0]
	for _, item := range items {
		if item.Title == "" && item.Content == "" {
			continue
		}
		if item.ID == "" {
			item.ID = uuid.NewString()
		}
		if item.Category == "" {
			item.Category = "general"
		}
		out = append(out, item)
	}
	return out
}

// DecodePersonality rebuilds the personality profile, falling back to the
// defaults for any missing knob.
func DecodePersonality(data []byte) persona.Profile {
	profile := persona.DefaultProfile()
	var stored persona.Profile
	if err := json.Unmarshal(data, &stored); err != nil {
		log.Warn().Err(err).Msg("discarding unreadable personality snapshot")
		return profile
	}
	if stored.Preset != "" {
		profile.Preset = stored.Preset
	}
	if stored.Tone != "" {
		profile.Tone = stored.Tone
	}
	if stored.Style != "" {
		profile.Style = stored.Style
	}
	if stored.Expertise != "" {
		profile.Expertise = stored.Expertise
	}
	profile.CustomInstructions = stored.CustomInstructions
	return profile
}

// DecodeAppearance rebuilds the appearance settings with defaults applied.
func DecodeAppearance(data []byte) settings.Appearance {
	current := settings.Default()
	var stored map[string]json.RawMessage
	if err := json.Unmarshal(data, &stored); err != nil {
		log.Warn().Err(err).Msg("discarding unreadable appearance snapshot")
		return current
	}
	if raw, ok := stored["theme"]; ok {
		var v string
		if json.Unmarshal(raw, &v) == nil && v != "" {
			current.Theme = v
		}
	}
	if raw, ok := stored["fontSize"]; ok {
		var v string
		if json.Unmarshal(raw, &v) == nil && v != "" {
			current.FontSize = v
		}
	}
	if raw, ok := stored["soundEnabled"]; ok {
		var v bool
		if json.Unmarshal(raw, &v) == nil {
			current.SoundEnabled = v
		}
	}
	if raw, ok := stored["autoSave"]; ok {
		var v bool
		if json.Unmarshal(raw, &v) == nil {
			current.AutoSave = v
		}
	}
	return current
}
