package plan

import "fmt"

// ConfigurationError reports malformed or self-inconsistent planning
// inputs, detected before any solve attempt.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "configuration: " + e.Reason
}

func configErrorf(format string, args ...any) *ConfigurationError {
	return &ConfigurationError{Reason: fmt.Sprintf(format, args...)}
}

// InfeasibleModelError reports that the hard constraints admit no
// assignment. Retrying the same model is pointless; callers must relax
// the configuration and start a new run.
type InfeasibleModelError struct {
	Detail string
}

func (e *InfeasibleModelError) Error() string {
	return "infeasible model: " + e.Detail
}

// SolverError reports that the solving procedure failed to run or
// returned an unusable status.
type SolverError struct {
	Err error
}

func (e *SolverError) Error() string {
	return "solver: " + e.Err.Error()
}

func (e *SolverError) Unwrap() error { return e.Err }

// ExtractionError reports a solved decision value that cannot be read as
// binary within tolerance.
type ExtractionError struct {
	Variable string
	Value    float64
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extraction: variable %s has non-binary value %g", e.Variable, e.Value)
}
