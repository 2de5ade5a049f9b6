package model

import (
	"context"
	"errors"
	"fmt"
	"image"
	"sync"

	ort "github.com/yalue/onnxruntime_go"
	"golang.org/x/image/draw"
)

// Input geometry of the InceptionV3-style encoder.
const (
	inputSize = 299
	channels  = 3
)

// Encoder turns an image into a fixed-length feature vector using an ONNX
// export of the encoder network (classification head removed).
type Encoder struct {
	mu         sync.Mutex
	sess       *ort.DynamicAdvancedSession
	featureDim int
}

// NewEncoder opens the encoder session. featureDim is the expected output
// width (2048 for InceptionV3).
func NewEncoder(ortDLL, modelPath string, featureDim int) (*Encoder, error) {
	if modelPath == "" {
		return nil, errors.New("encoder model path is required")
	}
	if featureDim <= 0 {
		featureDim = 2048
	}
	if err := ensureRuntime(ortDLL); err != nil {
		return nil, err
	}
	sess, err := ort.NewDynamicAdvancedSession(modelPath,
		[]string{"image"}, []string{"features"}, nil)
	if err != nil {
		return nil, fmt.Errorf("open encoder session: %w", err)
	}
	return &Encoder{sess: sess, featureDim: featureDim}, nil
}

// Close releases the session.
func (e *Encoder) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.sess != nil {
		err := e.sess.Destroy()
		e.sess = nil
		return err
	}
	return nil
}

// EncodeImage scales the image to the encoder input size, applies the
// [-1, 1] pixel mapping and runs the session.
func (e *Encoder) EncodeImage(_ context.Context, img image.Image) ([]float32, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.sess == nil {
		return nil, errors.New("encoder is closed")
	}

	input, err := ort.NewTensor(ort.NewShape(1, inputSize, inputSize, channels), imageToTensor(img))
	if err != nil {
		return nil, fmt.Errorf("build input tensor: %w", err)
	}
	defer input.Destroy()

	outputs := []ort.Value{nil}
	if err := e.sess.Run([]ort.Value{input}, outputs); err != nil {
		return nil, fmt.Errorf("run encoder: %w", err)
	}
	out, ok := outputs[0].(*ort.Tensor[float32])
	if !ok {
		return nil, errors.New("encoder returned unexpected output type")
	}
	defer out.Destroy()

	data := out.GetData()
	if len(data) != e.featureDim {
		return nil, fmt.Errorf("encoder output length %d, want %d", len(data), e.featureDim)
	}
	features := make([]float32, len(data))
	copy(features, data)
	return features, nil
}

// imageToTensor produces NHWC float32 pixels mapped to [-1, 1].
func imageToTensor(img image.Image) []float32 {
	scaled := image.NewRGBA(image.Rect(0, 0, inputSize, inputSize))
	draw.ApproxBiLinear.Scale(scaled, scaled.Bounds(), img, img.Bounds(), draw.Src, nil)

	data := make([]float32, inputSize*inputSize*channels)
	i := 0
	for y := 0; y < inputSize; y++ {
		for x := 0; x < inputSize; x++ {
			r, g, b, _ := scaled.At(x, y).RGBA()
			data[i] = float32(r>>8)/127.5 - 1
			data[i+1] = float32(g>>8)/127.5 - 1
			data[i+2] = float32(b>>8)/127.5 - 1
			i += channels
		}
	}
	return data
}
