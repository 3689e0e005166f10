package jsdata

import (
	"errors"
	"fmt"

	"github.com/ready-research/js-data/record"
)

var (
	// ErrInvalidArgument is the category for rejected inputs: bad primary
	// keys, unknown conflict policies, malformed queries. Typed errors in
	// this category unwrap to it.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNotFound is the category for lookups that matched nothing where a
	// match was required, such as querying an index that was never created.
	ErrNotFound = errors.New("not found")

	// ErrNilRecord is returned when a nil record is passed to a mutation.
	ErrNilRecord = fmt.Errorf("%w: record must not be nil", ErrInvalidArgument)
)

// ErrInvalidID indicates a record whose primary key is missing or not a
// string or number.
type ErrInvalidID struct {
	Value record.Value
}

func (e *ErrInvalidID) Error() string {
	return fmt.Sprintf("invalid primary key %s: value must be a string or a number", e.Value)
}

func (e *ErrInvalidID) Unwrap() error { return ErrInvalidArgument }

// ErrInvalidConflictPolicy indicates an unsupported conflict policy.
type ErrInvalidConflictPolicy struct {
	Policy ConflictPolicy
}

func (e *ErrInvalidConflictPolicy) Error() string {
	return fmt.Sprintf("invalid conflict policy %q: must be one of (merge, replace)", string(e.Policy))
}

func (e *ErrInvalidConflictPolicy) Unwrap() error { return ErrInvalidArgument }

// ErrUnknownIndex indicates a query against an index name the collection
// does not have.
type ErrUnknownIndex struct {
	Name string
}

func (e *ErrUnknownIndex) Error() string {
	return fmt.Sprintf("unknown index %q", e.Name)
}

func (e *ErrUnknownIndex) Unwrap() error { return ErrNotFound }

// ErrIndexExists indicates an attempt to create an index under a name that
// is already taken.
type ErrIndexExists struct {
	Name string
}

func (e *ErrIndexExists) Error() string {
	return fmt.Sprintf("index %q already exists", e.Name)
}

func (e *ErrIndexExists) Unwrap() error { return ErrInvalidArgument }
