package chart

import "fmt"

// DataShapeError reports raw data that does not match the declared kind.
// Validation stops at the first violated rule; no partial processing happens.
type DataShapeError struct {
	Kind Kind
	Rule string
}

func (e *DataShapeError) Error() string {
	return fmt.Sprintf("invalid %s data: %s", e.Kind, e.Rule)
}

func shapeErr(kind Kind, format string, args ...interface{}) *DataShapeError {
	return &DataShapeError{Kind: kind, Rule: fmt.Sprintf(format, args...)}
}

// ScaleError reports a degenerate range or drawing box that would make a
// scale denominator zero outside the explicitly handled single-point case.
type ScaleError struct {
	Kind   Kind
	Reason string
}

func (e *ScaleError) Error() string {
	return fmt.Sprintf("cannot scale %s chart: %s", e.Kind, e.Reason)
}

// InteractionError wraps a failure recovered while hit-testing or updating
// selection state. It should not occur in normal operation.
type InteractionError struct {
	Op  string
	Err error
}

func (e *InteractionError) Error() string {
	return fmt.Sprintf("interaction failed during %s: %v", e.Op, e.Err)
}

func (e *InteractionError) Unwrap() error {
	return e.Err
}
