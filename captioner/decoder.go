package captioner

import (
	"fmt"
	"math"
	"sort"
)

// logEpsilon keeps log scores finite when a token probability is zero.
const logEpsilon = 1e-8

// StepModel is the per-step inference capability the decoder consumes. Given
// the fixed image features and the partial output sequence (padded to the
// model's input width), it yields a probability distribution over the next
// token, one entry per vocabulary id.
type StepModel interface {
	NextTokenDistribution(features []float32, sequence []int) ([]float32, error)
}

// StepFunc adapts a plain function to the StepModel interface.
type StepFunc func(features []float32, sequence []int) ([]float32, error)

// NextTokenDistribution implements StepModel.
func (f StepFunc) NextTokenDistribution(features []float32, sequence []int) ([]float32, error) {
	return f(features, sequence)
}

// Decoder turns a feature vector into a word sequence by repeatedly querying
// a StepModel. It holds no state across calls; the vocabulary and model are
// read-only, so a single Decoder is safe for concurrent use as long as the
// underlying model is.
type Decoder struct {
	vocab     Vocabulary
	model     StepModel
	maxLength int
}

// NewDecoder constructs a decoder over the given vocabulary and stepping
// model. maxLength bounds both the emitted sequence and the number of step
// calls per candidate.
func NewDecoder(vocab Vocabulary, model StepModel, maxLength int) *Decoder {
	if maxLength <= 0 {
		maxLength = 34
	}
	return &Decoder{vocab: vocab, model: model, maxLength: maxLength}
}

// candidate is a partial or complete sequence under construction during beam
// search: token ids (starting with the start marker), a cumulative
// log-probability score and a completion flag.
type candidate struct {
	ids      []int
	score    float64
	complete bool
}

func (d *Decoder) ready() (startID, endID int, err error) {
	if d == nil || d.vocab == nil || d.model == nil {
		return 0, 0, ErrNotReady
	}
	startID, ok := d.vocab.ID(StartToken)
	if !ok {
		return 0, 0, fmt.Errorf("%w: vocabulary lacks %q", ErrNotReady, StartToken)
	}
	endID, ok = d.vocab.ID(EndToken)
	if !ok {
		return 0, 0, fmt.Errorf("%w: vocabulary lacks %q", ErrNotReady, EndToken)
	}
	return startID, endID, nil
}

// padded returns the sequence padded (post) with PAD to the decoder's fixed
// input width.
func (d *Decoder) padded(ids []int) []int {
	out := make([]int, d.maxLength)
	n := copy(out, ids)
	for i := n; i < d.maxLength; i++ {
		out[i] = PadID
	}
	return out
}

func (d *Decoder) step(features []float32, ids []int) ([]float32, error) {
	dist, err := d.model.NextTokenDistribution(features, d.padded(ids))
	if err != nil {
		return nil, fmt.Errorf("step model: %w", err)
	}
	if len(dist) != d.vocab.Size() {
		return nil, fmt.Errorf("%w: length %d, vocabulary size %d",
			ErrMalformedDistribution, len(dist), d.vocab.Size())
	}
	for i, p := range dist {
		if math.IsNaN(float64(p)) {
			return nil, fmt.Errorf("%w: NaN at id %d", ErrMalformedDistribution, i)
		}
	}
	return dist, nil
}

// Greedy decodes by always taking the most probable next token, with ties
// broken by the lowest id. It stops on the end marker, an unknown id, or
// after maxLength steps.
func (d *Decoder) Greedy(features []float32) ([]string, error) {
	startID, endID, err := d.ready()
	if err != nil {
		return nil, err
	}

	ids := []int{startID}
	words := make([]string, 0, d.maxLength)
	for step := 0; step < d.maxLength; step++ {
		dist, err := d.step(features, ids)
		if err != nil {
			return nil, err
		}
		next := argmax(dist)
		if next == endID {
			break
		}
		word, ok := d.vocab.Word(next)
		if !ok {
			// Unknown id: treat as an implicit stop.
			break
		}
		ids = append(ids, next)
		if word != StartToken {
			words = append(words, word)
		}
	}
	if len(words) == 0 {
		return nil, ErrEmptyOutput
	}
	return words, nil
}

// BeamSearch decodes keeping the beamWidth best-scoring candidates per step.
// Scores are cumulative log probabilities and are not length-normalized, so
// shorter completions are favoured; callers depend on that bias staying
// stable. beamWidth 1 reduces to greedy search.
func (d *Decoder) BeamSearch(features []float32, beamWidth int) ([]string, error) {
	startID, endID, err := d.ready()
	if err != nil {
		return nil, err
	}
	if beamWidth < 1 {
		beamWidth = 1
	}

	frontier := []candidate{{ids: []int{startID}}}
	for step := 0; step < d.maxLength; step++ {
		if allComplete(frontier) {
			break
		}
		merged := make([]candidate, 0, len(frontier)*beamWidth)
		for _, cand := range frontier {
			if cand.complete {
				// Finished sequences ride along unchanged.
				merged = append(merged, cand)
				continue
			}
			dist, err := d.step(features, cand.ids)
			if err != nil {
				return nil, err
			}
			for _, id := range topIDs(dist, beamWidth) {
				ids := make([]int, len(cand.ids), len(cand.ids)+1)
				copy(ids, cand.ids)
				ids = append(ids, id)
				merged = append(merged, candidate{
					ids:      ids,
					score:    cand.score + math.Log(float64(dist[id])+logEpsilon),
					complete: id == endID || len(ids) >= d.maxLength,
				})
			}
		}
		sort.SliceStable(merged, func(i, j int) bool {
			return merged[i].score > merged[j].score
		})
		if len(merged) > beamWidth {
			merged = merged[:beamWidth]
		}
		frontier = merged
	}

	best := frontier[0]
	for _, cand := range frontier[1:] {
		if cand.score > best.score {
			best = cand
		}
	}

	words := make([]string, 0, len(best.ids))
	for _, id := range best.ids {
		if id == startID {
			continue
		}
		if id == endID {
			break
		}
		word, ok := d.vocab.Word(id)
		if !ok {
			break
		}
		words = append(words, word)
	}
	if len(words) == 0 {
		return nil, ErrEmptyOutput
	}
	return words, nil
}

// Decode runs beam search with the given width, or greedy search when the
// width is 1 or less.
func (d *Decoder) Decode(features []float32, beamWidth int) ([]string, error) {
	if beamWidth <= 1 {
		return d.Greedy(features)
	}
	return d.BeamSearch(features, beamWidth)
}

// argmax returns the index of the highest probability, preferring the lowest
// index on ties.
func argmax(dist []float32) int {
	best := 0
	for i := 1; i < len(dist); i++ {
		if dist[i] > dist[best] {
			best = i
		}
	}
	return best
}

// topIDs returns the k highest-probability ids, ties broken by the lowest id.
func topIDs(dist []float32, k int) []int {
	ids := make([]int, len(dist))
	for i := range ids {
		ids[i] = i
	}
	sort.SliceStable(ids, func(a, b int) bool {
		if dist[ids[a]] == dist[ids[b]] {
			return ids[a] < ids[b]
		}
		return dist[ids[a]] > dist[ids[b]]
	})
	if len(ids) > k {
		ids = ids[:k]
	}
	return ids
}

func allComplete(frontier []candidate) bool {
	for _, cand := range frontier {
		if !cand.complete {
			return false
		}
	}
	return true
}
