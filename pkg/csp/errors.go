package csp

import (
	"fmt"

	"github.com/pkg/errors"
)

// Sentinel errors identifying the structural-error taxonomy: programmer
// mistakes that indicate caller misuse rather than an algorithmic outcome.
// Unsatisfiability is never represented as an error - see Assignment.IsNull.
var (
	// ErrValueNotInDomain is returned when hiding or binding a value that
	// does not belong to a Variable's initial domain.
	ErrValueNotInDomain = errors.New("value is not in the variable's initial domain")

	// ErrValueNotHidden is returned by UnhideValue when the value is not
	// currently hidden.
	ErrValueNotHidden = errors.New("value is not currently hidden")

	// ErrConstraintArity is returned when a Constraint has no predicate
	// attached (the zero value), which cannot be evaluated as a unary or
	// binary constraint.
	ErrConstraintArity = errors.New("constraint has no predicate attached")

	// ErrUnknownVariable is returned when an operation references a
	// Variable that has not been added to the CSP.
	ErrUnknownVariable = errors.New("variable is not part of this CSP")

	// ErrAssignmentIsNull is returned when attempting to mutate a null
	// Assignment.
	ErrAssignmentIsNull = errors.New("cannot mutate a null assignment")

	// ErrNotBound is returned by Assignment.MustValue when the requested
	// variable has no binding.
	ErrNotBound = errors.New("variable is not bound in this assignment")

	// ErrNotATree is returned by TopSort when the constraint graph is not a
	// tree (disconnected or cyclic).
	ErrNotATree = errors.New("constraint graph is not a tree")
)

// VariableError wraps a structural error raised by the Variable API.
type VariableError struct {
	Op  string
	Err error
}

func (e *VariableError) Error() string { return fmt.Sprintf("csp: variable %s: %v", e.Op, e.Err) }
func (e *VariableError) Unwrap() error { return e.Err }

func newVariableError(op string, err error) error {
	return errors.WithStack(&VariableError{Op: op, Err: err})
}

// ConstraintError wraps a structural error raised while building a Constraint.
type ConstraintError struct {
	Op  string
	Err error
}

func (e *ConstraintError) Error() string { return fmt.Sprintf("csp: constraint %s: %v", e.Op, e.Err) }
func (e *ConstraintError) Unwrap() error { return e.Err }

func newConstraintError(op string, err error) error {
	return errors.WithStack(&ConstraintError{Op: op, Err: err})
}

// CSPError wraps a structural error raised by the CSP container, including
// the non-tree graph-shape violation the tree solver reports.
type CSPError struct {
	Op  string
	Err error
}

func (e *CSPError) Error() string { return fmt.Sprintf("csp: %s: %v", e.Op, e.Err) }
func (e *CSPError) Unwrap() error { return e.Err }

func newCSPError(op string, err error) error {
	return errors.WithStack(&CSPError{Op: op, Err: err})
}

// AssignmentError wraps a structural error raised by the Assignment API.
type AssignmentError struct {
	Op  string
	Err error
}

func (e *AssignmentError) Error() string { return fmt.Sprintf("csp: assignment %s: %v", e.Op, e.Err) }
func (e *AssignmentError) Unwrap() error { return e.Err }

func newAssignmentError(op string, err error) error {
	return errors.WithStack(&AssignmentError{Op: op, Err: err})
}
