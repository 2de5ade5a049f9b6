package captioner

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log"
	"math/rand"
	"strings"
	"sync"
	"time"
)

// FeatureEncoder produces the fixed-length feature vector for an image. It
// is an external model collaborator; its concurrency safety is its own
// responsibility.
type FeatureEncoder interface {
	EncodeImage(ctx context.Context, img image.Image) ([]float32, error)
	Close() error
}

// LabelClassifier produces ranked (label, confidence) predictions for an
// image, confidence-descending.
type LabelClassifier interface {
	ClassifyImage(ctx context.Context, img image.Image) ([]Prediction, error)
}

// Service wires the decoder, the scene classifier and the tone builders
// behind the two external model collaborators. All model capabilities are
// injected; the service keeps no model state of its own.
type Service struct {
	encoder FeatureEncoder
	labeler LabelClassifier
	decoder *Decoder
	scenes  *SceneClassifier
	reuse   *FeatureIndex

	cfgMu sync.RWMutex
	cfg   Config

	rngMu sync.Mutex
	rng   *rand.Rand

	logger *log.Logger
}

// NewService constructs a service. encoder and labeler are required; decoder
// may be nil, in which case every caption comes from the tone templates. A
// nil rng falls back to a time-seeded source; tests inject a seeded one.
func NewService(encoder FeatureEncoder, labeler LabelClassifier, decoder *Decoder, cfg Config, rng *rand.Rand, logger *log.Logger) (*Service, error) {
	if encoder == nil {
		return nil, errors.New("feature encoder is required")
	}
	if labeler == nil {
		return nil, errors.New("label classifier is required")
	}
	cfg.ApplyDefaults()
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Service{
		encoder: encoder,
		labeler: labeler,
		decoder: decoder,
		scenes:  NewSceneClassifier(nil),
		reuse:   NewFeatureIndex(256),
		cfg:     cfg,
		rng:     rng,
		logger:  logger,
	}, nil
}

// Close releases encoder resources.
func (s *Service) Close() error {
	if s.encoder != nil {
		return s.encoder.Close()
	}
	return nil
}

// Config returns a copy of the current configuration.
func (s *Service) Config() Config {
	s.cfgMu.RLock()
	defer s.cfgMu.RUnlock()
	return s.cfg.Clone()
}

// UpdateConfig replaces the configuration.
func (s *Service) UpdateConfig(cfg Config) {
	cfg.ApplyDefaults()
	s.cfgMu.Lock()
	s.cfg = cfg
	s.cfgMu.Unlock()
}

// GenerateCaption produces one caption for the image in the given tone. The
// decoded model sentence is preferred; when decoding is unavailable or
// yields no words, a tone-templated caption built from the scene analysis
// takes its place, and as a last resort a default phrase.
func (s *Service) GenerateCaption(ctx context.Context, img image.Image, tone Tone) (CaptionResult, error) {
	cfg := s.Config()

	preds, err := s.labeler.ClassifyImage(ctx, img)
	if err != nil {
		return CaptionResult{}, fmt.Errorf("classify image: %w", err)
	}
	preds = filterPredictions(preds, cfg.MinConfidence)
	scene, confidence := s.scenes.CategorizeWeighted(preds)
	info := ExtractContext(preds)

	result := CaptionResult{
		Scene:       scene,
		Confidence:  confidence,
		Predictions: preds,
		Context:     info,
	}

	features, err := s.encoder.EncodeImage(ctx, img)
	if err != nil {
		return CaptionResult{}, fmt.Errorf("encode image: %w", err)
	}
	if cached, ok := s.reuse.Lookup(features, cfg.ReuseThreshold); ok {
		s.logf("reusing caption for near-identical features (scene=%s)", cached.Scene)
		return cached, nil
	}

	result.Caption = s.captionFor(features, preds, info, tone, confidence, cfg)
	s.reuse.Add(features, result)
	return result, nil
}

// captionFor decodes a sentence, falling back to the tone templates and then
// the default phrases.
func (s *Service) captionFor(features []float32, preds []Prediction, info ContextInfo, tone Tone, confidence float32, cfg Config) string {
	if s.decoder != nil {
		words, err := s.decoder.Decode(features, cfg.BeamWidth)
		if err == nil {
			return strings.Join(words, " ")
		}
		if !errors.Is(err, ErrEmptyOutput) {
			s.logf("decode failed: %v", err)
		}
	}
	subject := mainSubject(preds)
	if subject != "" {
		return s.withRNG(func(rng *rand.Rand) string {
			return buildToneCaption(rng, tone, subject, info, confidence)
		})
	}
	return s.withRNG(func(rng *rand.Rand) string {
		return pick(rng, DefaultCaptions)
	})
}

// GenerateAlternatives produces up to n distinct captions in the given tone.
// Duplicates from the random phrase pools are dropped, so fewer than n may
// come back for very small pools.
func (s *Service) GenerateAlternatives(ctx context.Context, img image.Image, n int, tone Tone) ([]string, error) {
	cfg := s.Config()
	if n <= 0 {
		n = cfg.NumAlternatives
	}
	preds, err := s.labeler.ClassifyImage(ctx, img)
	if err != nil {
		return nil, fmt.Errorf("classify image: %w", err)
	}
	preds = filterPredictions(preds, cfg.MinConfidence)
	_, confidence := s.scenes.CategorizeWeighted(preds)
	info := ExtractContext(preds)
	subject := mainSubject(preds)
	if subject == "" {
		subject = "composition"
	}

	seen := make(map[string]struct{}, n)
	captions := make([]string, 0, n)
	// A few extra draws compensate for pool collisions.
	for attempt := 0; attempt < n*4 && len(captions) < n; attempt++ {
		caption := s.withRNG(func(rng *rand.Rand) string {
			return buildToneCaption(rng, tone, subject, info, confidence)
		})
		if _, ok := seen[caption]; ok {
			continue
		}
		seen[caption] = struct{}{}
		captions = append(captions, caption)
	}
	return captions, nil
}

// SceneFor classifies the image without captioning it.
func (s *Service) SceneFor(ctx context.Context, img image.Image) (string, float32, error) {
	preds, err := s.labeler.ClassifyImage(ctx, img)
	if err != nil {
		return "", 0, fmt.Errorf("classify image: %w", err)
	}
	preds = filterPredictions(preds, s.Config().MinConfidence)
	scene, confidence := s.scenes.CategorizeWeighted(preds)
	return scene, confidence, nil
}

func (s *Service) withRNG(f func(*rand.Rand) string) string {
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	return f(s.rng)
}

// filterPredictions drops predictions below the configured confidence floor.
func filterPredictions(preds []Prediction, min float32) []Prediction {
	if min <= 0 {
		return preds
	}
	out := make([]Prediction, 0, len(preds))
	for _, p := range preds {
		if p.Confidence >= min {
			out = append(out, p)
		}
	}
	return out
}

// mainSubject picks the display form of the top prediction.
func mainSubject(preds []Prediction) string {
	if len(preds) == 0 {
		return ""
	}
	return HumanizeLabel(preds[0].Label)
}

func (s *Service) logf(format string, args ...any) {
	if s.logger != nil {
		s.logger.Printf(format, args...)
	}
}
