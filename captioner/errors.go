package captioner

import "errors"

// Sentinel errors for decoding failures.
var (
	// ErrNotReady reports that the decoder is missing its vocabulary or
	// stepping model. Fatal for the call, not retried.
	ErrNotReady = errors.New("decoder not ready")

	// ErrEmptyOutput reports that decoding produced no usable words after
	// stripping control tokens. Recoverable: callers substitute a default
	// phrase.
	ErrEmptyOutput = errors.New("decoder produced empty output")

	// ErrMalformedDistribution reports a stepping model response whose
	// length does not match the vocabulary size or which contains NaN.
	ErrMalformedDistribution = errors.New("malformed token distribution")
)
