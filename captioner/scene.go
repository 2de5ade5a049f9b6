package captioner

import "strings"

// GeneralScene is the catch-all category returned when no keyword table wins.
const GeneralScene = "general"

// Fixed confidences for the catch-all and the unweighted match cases.
const (
	generalConfidence float32 = 0.5
	matchedConfidence float32 = 0.7
)

// weightedThreshold is the minimum accumulated score a category must exceed
// before the weighted variant trusts it over the catch-all.
const weightedThreshold = 0.3

// SceneClassifier maps ranked label predictions onto the closed scene
// taxonomy. The category table is ordered; when two categories tie, the one
// listed first wins, which keeps classification deterministic. It never
// fails: degenerate input degrades to the catch-all category.
type SceneClassifier struct {
	categories []SceneCategory
}

// NewSceneClassifier builds a classifier over the given category table, or
// over DefaultSceneCategories when nil.
func NewSceneClassifier(categories []SceneCategory) *SceneClassifier {
	if len(categories) == 0 {
		categories = DefaultSceneCategories
	}
	return &SceneClassifier{categories: categories}
}

// Categories returns the classifier's category table.
func (c *SceneClassifier) Categories() []SceneCategory {
	return c.categories
}

// Categorize counts, per category, how many predictions contain at least one
// category keyword as a substring and returns the best category at a fixed
// confidence. With no match at all it returns the catch-all.
func (c *SceneClassifier) Categorize(preds []Prediction) (string, float32) {
	bestName := ""
	bestCount := 0
	for _, cat := range c.categories {
		count := 0
		for _, pred := range preds {
			if labelMatchesAny(pred.Label, cat.Keywords) {
				count++
			}
		}
		if count > bestCount {
			bestCount = count
			bestName = cat.Name
		}
	}
	if bestCount == 0 {
		return GeneralScene, generalConfidence
	}
	return bestName, matchedConfidence
}

// CategorizeWeighted scores categories with position- and
// confidence-weighted keyword matches. The prediction at rank i contributes
// max(0, 1-0.1i) * confidence * 2 once per matching keyword, so a label
// hitting several keywords of one category accumulates. The best score must
// exceed 0.3 or the catch-all wins; the returned confidence is the score
// clamped to 1.0.
func (c *SceneClassifier) CategorizeWeighted(preds []Prediction) (string, float32) {
	bestName := ""
	bestScore := 0.0
	for _, cat := range c.categories {
		score := 0.0
		for i, pred := range preds {
			positionWeight := 1.0 - float64(i)*0.1
			if positionWeight < 0 {
				positionWeight = 0
			}
			label := NormalizeLabel(pred.Label)
			for _, kw := range cat.Keywords {
				if kw != "" && strings.Contains(label, kw) {
					score += positionWeight * float64(pred.Confidence) * 2
				}
			}
		}
		if score > bestScore {
			bestScore = score
			bestName = cat.Name
		}
	}
	if bestScore <= weightedThreshold {
		return GeneralScene, generalConfidence
	}
	if bestScore > 1.0 {
		bestScore = 1.0
	}
	return bestName, float32(bestScore)
}

func labelMatchesAny(label string, keywords []string) bool {
	normed := NormalizeLabel(label)
	for _, kw := range keywords {
		if kw != "" && strings.Contains(normed, kw) {
			return true
		}
	}
	return false
}
