package domain

import (
	"errors"
	"fmt"
)

// ErrReferenceDataUnavailable signals that the geographic reference table
// could not be loaded. Kept distinct from model failures so operators know to
// restore the reference file rather than suspect the model artifact.
var ErrReferenceDataUnavailable = errors.New("geo reference data unavailable")

// ErrModelUnavailable signals that the trained model artifact could not be
// loaded.
var ErrModelUnavailable = errors.New("model artifact unavailable")

// SchemaError reports a required field that is missing or malformed when the
// feature vector is assembled. Surfaced to callers as a bad request.
type SchemaError struct {
	Field  string
	Reason string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema: field %q %s", e.Field, e.Reason)
}

// PredictionError wraps a failure of the underlying model inference call.
// Inference is deterministic for a given input, so these are never retried.
type PredictionError struct {
	Err error
}

func (e *PredictionError) Error() string {
	return fmt.Sprintf("prediction failed: %v", e.Err)
}

func (e *PredictionError) Unwrap() error {
	return e.Err
}
