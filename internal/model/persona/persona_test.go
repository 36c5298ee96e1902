package persona_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ninakotova/lumina/internal/model/persona"
)

func TestDirectiveRendersKnobs(t *testing.T) {
	p := persona.Profile{Tone: "formal", Style: "concise", Expertise: "business"}

	got := p.Directive()
	assert.Contains(t, got, "- Tone: formal")
	assert.Contains(t, got, "- Style: concise")
	assert.Contains(t, got, "- Expertise focus: business")
	assert.NotContains(t, got, "Additional instructions")
}

func TestDirectiveIncludesCustomInstructions(t *testing.T) {
	p := persona.DefaultProfile()
	p.CustomInstructions = "  answer in haiku  "

	got := p.Directive()
	assert.Contains(t, got, "- Additional instructions: answer in haiku")
}

func TestFindPreset(t *testing.T) {
	store := persona.NewStore(persona.DefaultProfile())

	preset, ok := store.FindPreset("teacher")
	require.True(t, ok)
	assert.Equal(t, "educational", preset.Style)

	_, ok = store.FindPreset("nonexistent")
	assert.False(t, ok)
}

func TestUpdateNotifies(t *testing.T) {
	store := persona.NewStore(persona.DefaultProfile())
	var calls int
	store.OnChange(func() { calls++ })

	p := store.Profile()
	p.Tone = "formal"
	store.Update(p)

	assert.Equal(t, 1, calls)
	assert.Equal(t, "formal", store.Profile().Tone)
}
