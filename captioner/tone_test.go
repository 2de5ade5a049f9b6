package captioner

import (
	"math/rand"
	"strings"
	"testing"
)

func TestParseTone(t *testing.T) {
	for _, tone := range Tones() {
		parsed, ok := ParseTone(tone.String())
		if !ok || parsed != tone {
			t.Errorf("ParseTone(%q) = (%v, %v), want (%v, true)", tone.String(), parsed, ok, tone)
		}
	}
	if parsed, ok := ParseTone("  Casual "); !ok || parsed != ToneCasual {
		t.Errorf("ParseTone with spacing/case = (%v, %v), want (casual, true)", parsed, ok)
	}
	if _, ok := ParseTone("sarcastic"); ok {
		t.Error("ParseTone(sarcastic) should report unknown")
	}
}

func TestBuildToneCaptionDeterministicWithSeed(t *testing.T) {
	info := ContextInfo{Environment: []string{"beach"}}
	for _, tone := range Tones() {
		a := buildToneCaption(rand.New(rand.NewSource(7)), tone, "dog", info, 0.8)
		b := buildToneCaption(rand.New(rand.NewSource(7)), tone, "dog", info, 0.8)
		if a == "" {
			t.Errorf("tone %v produced an empty caption", tone)
		}
		if a != b {
			t.Errorf("tone %v not reproducible under the same seed: %q vs %q", tone, a, b)
		}
	}
}

func TestBuildToneCaptionMentionsSubject(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for _, tone := range Tones() {
		caption := buildToneCaption(rng, tone, "retriever", ContextInfo{}, 0.5)
		if !strings.Contains(strings.ToLower(caption), "retriever") {
			t.Errorf("tone %v caption %q does not mention the subject", tone, caption)
		}
	}
}

func TestProfessionalToneReflectsConfidence(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	high := buildProfessionalCaption(rng, "dog", ContextInfo{}, 0.9)
	if !strings.Contains(high, "exceptional clarity") {
		t.Errorf("high confidence caption %q lacks the quality phrase", high)
	}
	mid := buildProfessionalCaption(rng, "dog", ContextInfo{}, 0.5)
	if !strings.Contains(mid, "excellent image quality") {
		t.Errorf("mid confidence caption %q lacks the quality phrase", mid)
	}
	low := buildProfessionalCaption(rng, "dog", ContextInfo{}, 0.2)
	if !strings.Contains(low, "artistic interpretation") {
		t.Errorf("low confidence caption %q lacks the quality phrase", low)
	}
}

func TestSocialToneHasNoHashtags(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 20; i++ {
		caption := buildSocialCaption(rng, "dog", ContextInfo{}, 0.5)
		if strings.Contains(caption, "#") {
			t.Fatalf("social caption %q contains a hashtag", caption)
		}
	}
}

func TestDescriptiveToneComposesContext(t *testing.T) {
	info := ContextInfo{
		Environment:      []string{"kitchen"},
		SecondaryObjects: []string{"cup", "plate", "fork"},
		Activities:       []string{"eating"},
	}
	caption := buildDescriptiveCaption(nil, "person", info, 0.5)
	for _, want := range []string{"person", "kitchen", "cup, plate", "eating"} {
		if !strings.Contains(caption, want) {
			t.Errorf("descriptive caption %q lacks %q", caption, want)
		}
	}
	if strings.Contains(caption, "fork") {
		t.Errorf("descriptive caption %q should list at most two secondary objects", caption)
	}
}
