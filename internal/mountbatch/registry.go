// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package mountbatch

import (
	"errors"
	"fmt"
	"iter"
	"slices"

	"github.com/matt-FFFFFF/rmount/internal/hostsfile"
)

var (
	// ErrRowOutOfRange is returned when a completion references a row outside
	// the known target set. This is a correctness bug in the orchestration,
	// not a runtime condition; callers abort rather than recover.
	ErrRowOutOfRange = errors.New("completion row out of range")
	// ErrBadTransition is returned when a status transition violates the
	// one-directional order. Same contract as ErrRowOutOfRange: fatal.
	ErrBadTransition = errors.New("status transition out of order")
)

// Target represents one desired mount. Row is the target's position in the
// declared order; it is assigned at creation, immutable, and serves as both
// the key for asynchronous updates and the terminal row index.
type Target struct {
	Local  string
	Remote string
	Row    int

	status Status
}

// Status returns the target's current status. Mutation goes through
// Registry.Apply only.
func (t *Target) Status() Status {
	return t.status
}

// Registry holds the ordered list of mount targets and their current status.
// It is the single source of truth for state. It is not synchronized: the
// dispatcher mutates it before any concurrency is introduced, and afterwards
// the aggregator is the sole writer.
type Registry struct {
	targets []*Target
}

// NewRegistry builds a Registry from declared hosts, in order.
func NewRegistry(hosts []hostsfile.Host) *Registry {
	targets := make([]*Target, 0, len(hosts))
	for i, h := range hosts {
		targets = append(targets, &Target{
			Local:  h.Local,
			Remote: h.Remote,
			Row:    i,
			status: Unknown(),
		})
	}

	return &Registry{targets: targets}
}

// Len returns the number of targets.
func (r *Registry) Len() int {
	return len(r.targets)
}

// At returns the target at the given row.
func (r *Registry) At(row int) (*Target, error) {
	if row < 0 || row >= len(r.targets) {
		return nil, fmt.Errorf("%w: %d (targets: %d)", ErrRowOutOfRange, row, len(r.targets))
	}

	return r.targets[row], nil
}

// Targets iterates the targets in row order.
func (r *Registry) Targets() iter.Seq[*Target] {
	return slices.Values(r.targets)
}

// Apply sets the status of the target at the given row, enforcing the
// transition order: Unknown to Okay, Warned or Pending; Pending to Okay or
// Failed. Any other transition is an invariant violation.
func (r *Registry) Apply(row int, status Status) error {
	t, err := r.At(row)
	if err != nil {
		return err
	}

	if !validTransition(t.status.Kind, status.Kind) {
		return fmt.Errorf("%w: %s: %s -> %s", ErrBadTransition, t.Local, t.status.Kind, status.Kind)
	}

	t.status = status

	return nil
}

func validTransition(from, to StatusKind) bool {
	switch from {
	case StatusUnknown:
		return to == StatusOkay || to == StatusWarned || to == StatusPending
	case StatusPending:
		return to == StatusOkay || to == StatusFailed
	default:
		return false
	}
}
