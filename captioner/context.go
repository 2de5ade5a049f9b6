package captioner

// Keyword tables for the contextual buckets. Independent of the scene
// taxonomy and matched non-exclusively.
var (
	objectKeywords      = []string{"person", "dog", "cat", "car", "building", "tree", "flower", "food"}
	environmentKeywords = []string{"outdoor", "indoor", "beach", "forest", "city", "room", "kitchen"}
	activityKeywords    = []string{"playing", "running", "sitting", "walking", "eating", "sleeping"}
	moodKeywords        = []string{"sunset", "sunny", "cloudy", "bright", "dark", "colorful"}
)

// Confidence gates for context extraction.
const (
	contextGate   float32 = 0.1
	primaryGate   float32 = 0.3
	contextWindow         = 8
)

// ExtractContext partitions the ranked predictions into contextual buckets.
// Only the first eight predictions with confidence above 0.1 are considered;
// object matches above 0.3 are primary, the rest secondary. One prediction
// may land in several buckets. It never fails: empty input yields an empty
// ContextInfo.
func ExtractContext(preds []Prediction) ContextInfo {
	var info ContextInfo
	limit := len(preds)
	if limit > contextWindow {
		limit = contextWindow
	}
	for _, pred := range preds[:limit] {
		if pred.Confidence <= contextGate {
			continue
		}
		display := HumanizeLabel(pred.Label)
		if labelMatchesAny(pred.Label, objectKeywords) {
			if pred.Confidence > primaryGate {
				info.PrimaryObjects = append(info.PrimaryObjects, display)
			} else {
				info.SecondaryObjects = append(info.SecondaryObjects, display)
			}
		}
		if labelMatchesAny(pred.Label, environmentKeywords) {
			info.Environment = append(info.Environment, display)
		}
		if labelMatchesAny(pred.Label, activityKeywords) {
			info.Activities = append(info.Activities, display)
		}
		if labelMatchesAny(pred.Label, moodKeywords) {
			info.Moods = append(info.Moods, display)
		}
	}
	return info
}

// Buckets exposes the context as a bucket-name to labels mapping for callers
// that iterate generically (the CLI summary does).
func (c ContextInfo) Buckets() map[string][]string {
	return map[string][]string{
		"primary_objects":   c.PrimaryObjects,
		"secondary_objects": c.SecondaryObjects,
		"environment":       c.Environment,
		"activities":        c.Activities,
		"moods":             c.Moods,
	}
}
