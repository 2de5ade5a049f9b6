package captioner

import (
	"math"
	"sync"
)

// IndexEntry pairs a feature vector with the caption it produced.
type IndexEntry struct {
	Features []float32
	Result   CaptionResult
}

// FeatureIndex is a brute-force cosine-similarity index over feature
// vectors. The service consults it before decoding so near-identical images
// reuse an existing caption instead of paying for another beam search.
type FeatureIndex struct {
	mu      sync.RWMutex
	entries []IndexEntry
	limit   int
}

// NewFeatureIndex constructs an empty index keeping at most limit entries
// (oldest evicted first). A non-positive limit keeps everything.
func NewFeatureIndex(limit int) *FeatureIndex {
	return &FeatureIndex{limit: limit}
}

// Size returns the current number of stored entries.
func (idx *FeatureIndex) Size() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.entries)
}

// Add stores a feature vector with its caption result.
func (idx *FeatureIndex) Add(features []float32, result CaptionResult) {
	vec := make([]float32, len(features))
	copy(vec, features)
	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.entries = append(idx.entries, IndexEntry{Features: vec, Result: result})
	if idx.limit > 0 && len(idx.entries) > idx.limit {
		idx.entries = idx.entries[len(idx.entries)-idx.limit:]
	}
}

// Lookup returns the stored result whose features are most similar to vec,
// provided the cosine similarity reaches threshold.
func (idx *FeatureIndex) Lookup(vec []float32, threshold float32) (CaptionResult, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	best := -1
	var bestScore float32
	for i, entry := range idx.entries {
		score := cosineSimilarity(vec, entry.Features)
		if best < 0 || score > bestScore {
			best = i
			bestScore = score
		}
	}
	if best < 0 || bestScore < threshold {
		return CaptionResult{}, false
	}
	result := idx.entries[best].Result
	result.FromCache = true
	return result, true
}

func cosineSimilarity(a, b []float32) float32 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot, na, nb float64
	for i := 0; i < n; i++ {
		fa := float64(a[i])
		fb := float64(b[i])
		dot += fa * fb
		na += fa * fa
		nb += fb * fb
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return float32(dot / (math.Sqrt(na) * math.Sqrt(nb)))
}
