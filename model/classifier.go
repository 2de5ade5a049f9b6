package model

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"image"
	"os"
	"sort"
	"strings"
	"sync"

	ort "github.com/yalue/onnxruntime_go"

	"minatostudio/captioner/captioner"
)

// topPredictions bounds how many ranked labels the classifier reports.
const topPredictions = 10

// Classifier implements captioner.LabelClassifier against an ONNX export of
// the full classification network, paired with a labels file (one label per
// output index).
type Classifier struct {
	mu     sync.Mutex
	sess   *ort.DynamicAdvancedSession
	labels []string
}

var _ captioner.LabelClassifier = (*Classifier)(nil)

// NewClassifier opens the classifier session and loads the label list.
func NewClassifier(ortDLL, modelPath, labelsPath string) (*Classifier, error) {
	if modelPath == "" {
		return nil, errors.New("classifier model path is required")
	}
	labels, err := loadLabels(labelsPath)
	if err != nil {
		return nil, err
	}
	if err := ensureRuntime(ortDLL); err != nil {
		return nil, err
	}
	sess, err := ort.NewDynamicAdvancedSession(modelPath,
		[]string{"image"}, []string{"probabilities"}, nil)
	if err != nil {
		return nil, fmt.Errorf("open classifier session: %w", err)
	}
	return &Classifier{sess: sess, labels: labels}, nil
}

// Close releases the session.
func (c *Classifier) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sess != nil {
		err := c.sess.Destroy()
		c.sess = nil
		return err
	}
	return nil
}

// ClassifyImage implements captioner.LabelClassifier. Predictions come back
// confidence-descending, limited to the top ten labels.
func (c *Classifier) ClassifyImage(_ context.Context, img image.Image) ([]captioner.Prediction, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sess == nil {
		return nil, errors.New("classifier is closed")
	}

	input, err := ort.NewTensor(ort.NewShape(1, inputSize, inputSize, channels), imageToTensor(img))
	if err != nil {
		return nil, fmt.Errorf("build input tensor: %w", err)
	}
	defer input.Destroy()

	outputs := []ort.Value{nil}
	if err := c.sess.Run([]ort.Value{input}, outputs); err != nil {
		return nil, fmt.Errorf("run classifier: %w", err)
	}
	out, ok := outputs[0].(*ort.Tensor[float32])
	if !ok {
		return nil, errors.New("classifier returned unexpected output type")
	}
	defer out.Destroy()

	probs := out.GetData()
	if len(probs) != len(c.labels) {
		return nil, fmt.Errorf("classifier output length %d, labels %d", len(probs), len(c.labels))
	}

	preds := make([]captioner.Prediction, len(probs))
	for i, p := range probs {
		preds[i] = captioner.Prediction{Label: c.labels[i], Confidence: p}
	}
	sort.SliceStable(preds, func(i, j int) bool {
		return preds[i].Confidence > preds[j].Confidence
	})
	if len(preds) > topPredictions {
		preds = preds[:topPredictions]
	}
	return preds, nil
}

func loadLabels(path string) ([]string, error) {
	if path == "" {
		return nil, errors.New("labels path is required")
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open labels: %w", err)
	}
	defer f.Close()

	var labels []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		label := strings.TrimSpace(scanner.Text())
		if label != "" {
			labels = append(labels, label)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read labels: %w", err)
	}
	if len(labels) == 0 {
		return nil, fmt.Errorf("labels file is empty: %s", path)
	}
	return labels, nil
}
