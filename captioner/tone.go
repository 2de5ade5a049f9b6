package captioner

import (
	"fmt"
	"math/rand"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

// Tone selects the register a templated caption is written in.
type Tone int

const (
	ToneCreative Tone = iota
	ToneProfessional
	ToneCasual
	TonePoetic
	ToneSocial
	ToneDescriptive
)

var toneNames = map[Tone]string{
	ToneCreative:     "creative",
	ToneProfessional: "professional",
	ToneCasual:       "casual",
	TonePoetic:       "poetic",
	ToneSocial:       "social",
	ToneDescriptive:  "descriptive",
}

// String returns the tone's wire name.
func (t Tone) String() string {
	if name, ok := toneNames[t]; ok {
		return name
	}
	return "creative"
}

// ParseTone resolves a tone name, reporting whether it is known.
func ParseTone(name string) (Tone, bool) {
	for tone, n := range toneNames {
		if n == strings.ToLower(strings.TrimSpace(name)) {
			return tone, true
		}
	}
	return ToneCreative, false
}

// Tones lists all known tones in a stable order.
func Tones() []Tone {
	return []Tone{ToneCreative, ToneProfessional, ToneCasual, TonePoetic, ToneSocial, ToneDescriptive}
}

// toneBuilder produces one templated caption for a subject in a given
// context. Builders draw phrases from the injected random source only, so a
// seeded source makes them reproducible.
type toneBuilder func(rng *rand.Rand, subject string, info ContextInfo, confidence float32) string

// toneBuilders resolves a tone to its builder. Lookup table instead of a
// string-comparison chain; unknown tones fall back to creative.
var toneBuilders = map[Tone]toneBuilder{
	ToneCreative:     buildCreativeCaption,
	ToneProfessional: buildProfessionalCaption,
	ToneCasual:       buildCasualCaption,
	TonePoetic:       buildPoeticCaption,
	ToneSocial:       buildSocialCaption,
	ToneDescriptive:  buildDescriptiveCaption,
}

func buildToneCaption(rng *rand.Rand, tone Tone, subject string, info ContextInfo, confidence float32) string {
	builder, ok := toneBuilders[tone]
	if !ok {
		builder = buildCreativeCaption
	}
	return builder(rng, subject, info, confidence)
}

func pick(rng *rand.Rand, phrases []string) string {
	if len(phrases) == 0 {
		return ""
	}
	return phrases[rng.Intn(len(phrases))]
}

func firstEnvironment(info ContextInfo) string {
	if len(info.Environment) > 0 {
		return info.Environment[0]
	}
	return ""
}

func buildCreativeCaption(rng *rand.Rand, subject string, info ContextInfo, _ float32) string {
	if env := firstEnvironment(info); env != "" {
		return fmt.Sprintf("%s %s in a %s, creating an enchanting visual narrative",
			pick(rng, creativeIntros), subject, env)
	}
	return fmt.Sprintf("A %s %s that creates visual impact with artistic composition",
		pick(rng, creativeWords), subject)
}

func buildProfessionalCaption(rng *rand.Rand, subject string, info ContextInfo, confidence float32) string {
	quality := "artistic interpretation"
	switch {
	case confidence > 0.7:
		quality = "exceptional clarity and detail"
	case confidence > 0.4:
		quality = "excellent image quality"
	}
	if env := firstEnvironment(info); env != "" {
		return fmt.Sprintf("Professional %s photography captured in a %s, demonstrating %s and %s composition",
			subject, env, quality, pick(rng, professionalTerms))
	}
	return fmt.Sprintf("Professional %s photography showcasing %s with %s execution",
		subject, quality, pick(rng, professionalTerms))
}

func buildCasualCaption(rng *rand.Rand, subject string, _ ContextInfo, _ float32) string {
	return fmt.Sprintf("%s %s! %s", pick(rng, casualStarters), subject, pick(rng, casualEndings))
}

func buildPoeticCaption(rng *rand.Rand, subject string, _ ContextInfo, _ float32) string {
	return fmt.Sprintf("%s captured %s", titleCaser.String(subject), pick(rng, poeticPhrases))
}

func buildSocialCaption(rng *rand.Rand, subject string, _ ContextInfo, _ float32) string {
	starters := []string{
		"Obsessed with this", "Can't get over this", "Living for this", "Absolutely loving this",
	}
	trending := []string{
		"aesthetic goals", "pure perfection", "total inspiration", "absolutely stunning",
	}
	return fmt.Sprintf("%s %s! %s", pick(rng, starters), subject, pick(rng, trending))
}

func buildDescriptiveCaption(_ *rand.Rand, subject string, info ContextInfo, _ float32) string {
	parts := []string{fmt.Sprintf("This image features %s", subject)}
	if env := firstEnvironment(info); env != "" {
		parts = append(parts, fmt.Sprintf("located in a %s", env))
	}
	if len(info.SecondaryObjects) > 0 {
		limit := len(info.SecondaryObjects)
		if limit > 2 {
			limit = 2
		}
		parts = append(parts, fmt.Sprintf("with %s also visible", strings.Join(info.SecondaryObjects[:limit], ", ")))
	}
	if len(info.Activities) > 0 {
		parts = append(parts, fmt.Sprintf("showing %s", strings.Join(info.Activities, ", ")))
	}
	return strings.Join(parts, ". ") + "."
}
