package model

import (
	"errors"
	"fmt"
	"sync"

	ort "github.com/yalue/onnxruntime_go"

	"minatostudio/captioner/captioner"
)

// StepModel implements captioner.StepModel against an ONNX export of the
// caption decoder network: inputs are the image features and the padded
// token id sequence, output is the next-token probability distribution.
type StepModel struct {
	mu        sync.Mutex
	sess      *ort.DynamicAdvancedSession
	maxLength int
	vocabSize int
}

var _ captioner.StepModel = (*StepModel)(nil)

// NewStepModel opens the decoder session. maxLength is the fixed sequence
// input width; vocabSize the expected distribution length.
func NewStepModel(ortDLL, modelPath string, maxLength, vocabSize int) (*StepModel, error) {
	if modelPath == "" {
		return nil, errors.New("decoder model path is required")
	}
	if maxLength <= 0 || vocabSize <= 0 {
		return nil, errors.New("maxLength and vocabSize must be positive")
	}
	if err := ensureRuntime(ortDLL); err != nil {
		return nil, err
	}
	sess, err := ort.NewDynamicAdvancedSession(modelPath,
		[]string{"image_features", "sequence"}, []string{"probabilities"}, nil)
	if err != nil {
		return nil, fmt.Errorf("open decoder session: %w", err)
	}
	return &StepModel{sess: sess, maxLength: maxLength, vocabSize: vocabSize}, nil
}

// Close releases the session.
func (m *StepModel) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sess != nil {
		err := m.sess.Destroy()
		m.sess = nil
		return err
	}
	return nil
}

// NextTokenDistribution implements captioner.StepModel.
func (m *StepModel) NextTokenDistribution(features []float32, sequence []int) ([]float32, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sess == nil {
		return nil, errors.New("step model is closed")
	}
	if len(sequence) != m.maxLength {
		return nil, fmt.Errorf("sequence length %d, want %d", len(sequence), m.maxLength)
	}

	featTensor, err := ort.NewTensor(ort.NewShape(1, int64(len(features))), features)
	if err != nil {
		return nil, fmt.Errorf("build feature tensor: %w", err)
	}
	defer featTensor.Destroy()

	ids := make([]int64, len(sequence))
	for i, id := range sequence {
		ids[i] = int64(id)
	}
	seqTensor, err := ort.NewTensor(ort.NewShape(1, int64(m.maxLength)), ids)
	if err != nil {
		return nil, fmt.Errorf("build sequence tensor: %w", err)
	}
	defer seqTensor.Destroy()

	outputs := []ort.Value{nil}
	if err := m.sess.Run([]ort.Value{featTensor, seqTensor}, outputs); err != nil {
		return nil, fmt.Errorf("run decoder: %w", err)
	}
	out, ok := outputs[0].(*ort.Tensor[float32])
	if !ok {
		return nil, errors.New("decoder returned unexpected output type")
	}
	defer out.Destroy()

	data := out.GetData()
	dist := make([]float32, len(data))
	copy(dist, data)
	if len(dist) != m.vocabSize {
		return nil, fmt.Errorf("distribution length %d, want %d", len(dist), m.vocabSize)
	}
	return dist, nil
}
