package captioner

import (
	"reflect"
	"testing"
)

func TestExtractContextBuckets(t *testing.T) {
	preds := []Prediction{
		{Label: "golden_dog", Confidence: 0.8},  // primary object
		{Label: "small_cat", Confidence: 0.25},  // secondary object
		{Label: "beach", Confidence: 0.4},       // environment
		{Label: "running", Confidence: 0.2},     // activity
		{Label: "sunset", Confidence: 0.35},     // mood (and nature keyword, but context is independent)
		{Label: "noise", Confidence: 0.05},      // below gate
		{Label: "unmatched", Confidence: 0.5},   // no bucket
	}
	info := ExtractContext(preds)

	if want := []string{"golden dog"}; !reflect.DeepEqual(info.PrimaryObjects, want) {
		t.Errorf("PrimaryObjects = %v, want %v", info.PrimaryObjects, want)
	}
	if want := []string{"small cat"}; !reflect.DeepEqual(info.SecondaryObjects, want) {
		t.Errorf("SecondaryObjects = %v, want %v", info.SecondaryObjects, want)
	}
	if want := []string{"beach"}; !reflect.DeepEqual(info.Environment, want) {
		t.Errorf("Environment = %v, want %v", info.Environment, want)
	}
	if want := []string{"running"}; !reflect.DeepEqual(info.Activities, want) {
		t.Errorf("Activities = %v, want %v", info.Activities, want)
	}
	if want := []string{"sunset"}; !reflect.DeepEqual(info.Moods, want) {
		t.Errorf("Moods = %v, want %v", info.Moods, want)
	}
}

func TestExtractContextConfidenceGate(t *testing.T) {
	// Exactly 0.1 is excluded, just above is kept.
	info := ExtractContext([]Prediction{{Label: "dog", Confidence: 0.1}})
	if len(info.SecondaryObjects) != 0 {
		t.Errorf("confidence 0.1 should be gated out, got %v", info.SecondaryObjects)
	}
	info = ExtractContext([]Prediction{{Label: "dog", Confidence: 0.11}})
	if want := []string{"dog"}; !reflect.DeepEqual(info.SecondaryObjects, want) {
		t.Errorf("SecondaryObjects = %v, want %v", info.SecondaryObjects, want)
	}
}

func TestExtractContextPrimaryBoundary(t *testing.T) {
	// Exactly 0.3 is secondary, above is primary.
	info := ExtractContext([]Prediction{{Label: "car", Confidence: 0.3}})
	if len(info.PrimaryObjects) != 0 || len(info.SecondaryObjects) != 1 {
		t.Errorf("confidence 0.3: primary=%v secondary=%v, want secondary only",
			info.PrimaryObjects, info.SecondaryObjects)
	}
	info = ExtractContext([]Prediction{{Label: "car", Confidence: 0.31}})
	if len(info.PrimaryObjects) != 1 || len(info.SecondaryObjects) != 0 {
		t.Errorf("confidence 0.31: primary=%v secondary=%v, want primary only",
			info.PrimaryObjects, info.SecondaryObjects)
	}
}

func TestExtractContextWindow(t *testing.T) {
	preds := make([]Prediction, 0, 9)
	for i := 0; i < 8; i++ {
		preds = append(preds, Prediction{Label: "unmatched", Confidence: 0.9})
	}
	// Ninth prediction would match, but only the first eight are considered.
	preds = append(preds, Prediction{Label: "dog", Confidence: 0.9})
	info := ExtractContext(preds)
	if len(info.PrimaryObjects) != 0 {
		t.Errorf("prediction beyond the window leaked in: %v", info.PrimaryObjects)
	}
}

func TestExtractContextMultiBucket(t *testing.T) {
	// One label can land in several buckets.
	info := ExtractContext([]Prediction{{Label: "dog_running", Confidence: 0.6}})
	if len(info.PrimaryObjects) != 1 {
		t.Errorf("PrimaryObjects = %v, want one entry", info.PrimaryObjects)
	}
	if len(info.Activities) != 1 {
		t.Errorf("Activities = %v, want one entry", info.Activities)
	}
}

func TestExtractContextEmptyInput(t *testing.T) {
	info := ExtractContext(nil)
	for name, bucket := range info.Buckets() {
		if len(bucket) != 0 {
			t.Errorf("bucket %s = %v, want empty", name, bucket)
		}
	}
}
