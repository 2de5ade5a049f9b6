// Package model provides the ONNX Runtime backed implementations of the
// captioner's external model collaborators: the feature encoder, the label
// classifier, the caption step model and the tokenizer-backed vocabulary.
package model

import (
	"fmt"
	"sync"

	ort "github.com/yalue/onnxruntime_go"
)

var (
	runtimeOnce sync.Once
	runtimeErr  error
)

// ensureRuntime points the ONNX Runtime bindings at the shared library and
// initializes the environment once per process.
func ensureRuntime(ortDLL string) error {
	runtimeOnce.Do(func() {
		if ortDLL != "" {
			ort.SetSharedLibraryPath(ortDLL)
		}
		if !ort.IsInitialized() {
			runtimeErr = ort.InitializeEnvironment()
		}
	})
	if runtimeErr != nil {
		return fmt.Errorf("initialize onnxruntime: %w", runtimeErr)
	}
	return nil
}
