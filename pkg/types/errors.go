package types

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a ProcessingError.
type ErrorKind string

// Failure kinds raised by the compositing engine.
const (
	KindInvalidBounds     ErrorKind = "invalid_bounds"
	KindExtractFailed     ErrorKind = "extract_failed"
	KindCompositeFailed   ErrorKind = "composite_failed"
	KindMaskCombineFailed ErrorKind = "mask_combine_failed"
)

// ProcessingError is the failure type for every pixel and geometry operation.
// It pairs a machine-readable kind with a human-readable message and a
// structured context payload suitable for logging fields.
type ProcessingError struct {
	Kind    ErrorKind
	Message string
	Context map[string]any
	Err     error
}

// Error implements the error interface.
func (e *ProcessingError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the wrapped cause, if any.
func (e *ProcessingError) Unwrap() error {
	return e.Err
}

// NewInvalidBoundsError reports a bounding box that failed validation.
// Validation failures have no underlying cause; they are caller input errors.
func NewInvalidBoundsError(message string, context map[string]any) *ProcessingError {
	return &ProcessingError{Kind: KindInvalidBounds, Message: message, Context: context}
}

// NewExtractError reports a failed region extraction.
func NewExtractError(message string, cause error, context map[string]any) *ProcessingError {
	return &ProcessingError{Kind: KindExtractFailed, Message: message, Context: context, Err: cause}
}

// NewCompositeError reports a failed tile composite.
func NewCompositeError(message string, cause error, context map[string]any) *ProcessingError {
	return &ProcessingError{Kind: KindCompositeFailed, Message: message, Context: context, Err: cause}
}

// NewMaskCombineError reports a failed mask/background combination.
func NewMaskCombineError(message string, cause error, context map[string]any) *ProcessingError {
	return &ProcessingError{Kind: KindMaskCombineFailed, Message: message, Context: context, Err: cause}
}

func isKind(err error, kind ErrorKind) bool {
	var pe *ProcessingError
	return errors.As(err, &pe) && pe.Kind == kind
}

// IsInvalidBounds reports whether err is a bounds validation failure.
func IsInvalidBounds(err error) bool { return isKind(err, KindInvalidBounds) }

// IsExtractFailed reports whether err is a region extraction failure.
func IsExtractFailed(err error) bool { return isKind(err, KindExtractFailed) }

// IsCompositeFailed reports whether err is a tile composite failure.
func IsCompositeFailed(err error) bool { return isKind(err, KindCompositeFailed) }

// IsMaskCombineFailed reports whether err is a mask combination failure.
func IsMaskCombineFailed(err error) bool { return isKind(err, KindMaskCombineFailed) }
