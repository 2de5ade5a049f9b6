package captioner

import "encoding/json"

// Prediction is a single (label, confidence) pair produced by an image
// classifier. Slices of Prediction are assumed to be confidence-descending.
type Prediction struct {
	Label      string  `json:"label"`
	Confidence float32 `json:"confidence"`
}

// SceneCategory names one entry of the closed scene taxonomy together with
// the keywords that vote for it and the phrase templates used by the caption
// builder.
type SceneCategory struct {
	Name      string   `json:"name"`
	Keywords  []string `json:"keywords"`
	Templates []string `json:"templates,omitempty"`
}

// ContextInfo partitions ranked predictions into non-exclusive buckets used
// by the caption builders. A prediction may land in several buckets.
type ContextInfo struct {
	PrimaryObjects   []string `json:"primaryObjects,omitempty"`
	SecondaryObjects []string `json:"secondaryObjects,omitempty"`
	Environment      []string `json:"environment,omitempty"`
	Activities       []string `json:"activities,omitempty"`
	Moods            []string `json:"moods,omitempty"`
}

// CaptionResult holds the outcome of a single captioning call.
type CaptionResult struct {
	Caption     string       `json:"caption"`
	Scene       string       `json:"scene"`
	Confidence  float32      `json:"confidence"`
	Predictions []Prediction `json:"predictions,omitempty"`
	Context     ContextInfo  `json:"context"`
	FromCache   bool         `json:"fromCache,omitempty"`
}

// ModelConfig wraps the paths and dimensions for the ONNX sessions and the
// tokenizer file.
type ModelConfig struct {
	OrtDLL         string `json:"ortDll"`
	EncoderPath    string `json:"encoderPath"`
	DecoderPath    string `json:"decoderPath"`
	ClassifierPath string `json:"classifierPath"`
	TokenizerPath  string `json:"tokenizerPath"`
	LabelsPath     string `json:"labelsPath"`
	FeatureDim     int    `json:"featureDim"`
}

// Config aggregates runtime settings persisted to config.json.
type Config struct {
	MaxLength       int         `json:"maxLength"`
	BeamWidth       int         `json:"beamWidth"`
	NumAlternatives int         `json:"numAlternatives"`
	Tone            string      `json:"tone"`
	MinConfidence   float32     `json:"minConfidence"`
	ReuseThreshold  float32     `json:"reuseThreshold"`
	Model           ModelConfig `json:"model"`
	CacheDir        string      `json:"cacheDir"`
}

// Clone creates a deep copy of the configuration so callers can mutate safely.
func (c Config) Clone() Config {
	buf, _ := json.Marshal(c)
	var out Config
	_ = json.Unmarshal(buf, &out)
	return out
}

// ApplyDefaults populates zero values with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.MaxLength <= 0 {
		c.MaxLength = 34
	}
	if c.BeamWidth <= 0 {
		c.BeamWidth = 3
	}
	if c.NumAlternatives <= 0 {
		c.NumAlternatives = 3
	}
	if c.Tone == "" {
		c.Tone = ToneCreative.String()
	}
	if c.MinConfidence <= 0 {
		c.MinConfidence = 0.1
	}
	if c.ReuseThreshold <= 0 {
		c.ReuseThreshold = 0.985
	}
	if c.Model.FeatureDim <= 0 {
		c.Model.FeatureDim = 2048
	}
}
