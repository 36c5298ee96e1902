package persona

import "strings"

// Profile captures the assistant personality applied to every generation
// request: a preset id plus the individual knobs the user may override.
type Profile struct {
	Preset             string `json:"preset"`
	Tone               string `json:"tone"`
	Style              string `json:"style"`
	Expertise          string `json:"expertise"`
	CustomInstructions string `json:"customInstructions,omitempty"`
}

// Preset is a named personality bundle selectable from the settings surface.
type Preset struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Tone        string `json:"tone"`
	Style       string `json:"style"`
	Expertise   string `json:"expertise"`
}

// DefaultProfile is the personality applied before the user changes anything.
func DefaultProfile() Profile {
	return Profile{
		Preset:    "friendly",
		Tone:      "casual",
		Style:     "detailed",
		Expertise: "general",
	}
}

// Seed provides the built-in personality presets.
func Seed() []Preset {
	return []Preset{
		{
			ID:          "professional",
			Name:        "Professional",
			Description: "Formal, precise, and business-oriented responses",
			Tone:        "formal",
			Style:       "concise",
			Expertise:   "business",
		},
		{
			ID:          "friendly",
			Name:        "Friendly",
			Description: "Warm, approachable, and conversational",
			Tone:        "casual",
			Style:       "detailed",
			Expertise:   "general",
		},
		{
			ID:          "technical",
			Name:        "Technical Expert",
			Description: "Deep technical knowledge with detailed explanations",
			Tone:        "neutral",
			Style:       "detailed",
			Expertise:   "technical",
		},
		{
			ID:          "creative",
			Name:        "Creative",
			Description: "Imaginative, inspiring, and out-of-the-box thinking",
			Tone:        "enthusiastic",
			Style:       "creative",
			Expertise:   "creative",
		},
		{
			ID:          "teacher",
			Name:        "Teacher",
			Description: "Patient, educational, with step-by-step explanations",
			Tone:        "encouraging",
			Style:       "educational",
			Expertise:   "educational",
		},
	}
}

// Directive renders the profile as the personality block prepended to the
// model context.
func (p Profile) Directive() string {
	var b strings.Builder
	b.WriteString("Respond according to these personality settings:\n")
	b.WriteString("- Tone: ")
	b.WriteString(p.Tone)
	b.WriteString("\n- Style: ")
	b.WriteString(p.Style)
	b.WriteString("\n- Expertise focus: ")
	b.WriteString(p.Expertise)
	if custom := strings.TrimSpace(p.CustomInstructions); custom != "" {
		b.WriteString("\n- Additional instructions: ")
		b.WriteString(custom)
	}
	return b.String()
}
