package analysis

import "fmt"

// ValidationError means the request itself is unusable.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ExtractionError wraps a failure to fetch or read the submitted URL.
type ExtractionError struct {
	URL string
	Err error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("failed to extract text from URL: %v", e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// UpstreamError wraps a completion service failure or an answer that could not be used.
type UpstreamError struct {
	Op  string
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("failed to %s: %v", e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}
