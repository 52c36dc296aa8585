package scheduler

import (
	"errors"
	"fmt"
)

// Common errors
var (
	// ErrSchedulerNotFound indicates the sbatch binary was not found
	ErrSchedulerNotFound = errors.New("sbatch binary not found in PATH")
)

// SubmissionError represents a failure to spawn the submission command.
// It does not cover a non-zero sbatch exit status, which is deliberately
// never inspected.
type SubmissionError struct {
	JobName string // Job name
	Err     error  // Underlying error
}

func (e *SubmissionError) Error() string {
	return fmt.Sprintf("sbatch submission failed for job %s: %v", e.JobName, e.Err)
}

func (e *SubmissionError) Unwrap() error {
	return e.Err
}

// NewSubmissionError creates a new SubmissionError
func NewSubmissionError(jobName string, err error) *SubmissionError {
	return &SubmissionError{
		JobName: jobName,
		Err:     err,
	}
}

// IsSubmissionError checks if an error is a SubmissionError
func IsSubmissionError(err error) bool {
	var se *SubmissionError
	return errors.As(err, &se)
}
