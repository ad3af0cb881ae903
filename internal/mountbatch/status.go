// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package mountbatch

// StatusKind enumerates the states a target moves through. Transitions are
// one-directional: Unknown to Okay, Warned or Pending; Pending to Okay or
// Failed. They are validated in Registry.Apply, the single mutation point.
type StatusKind int

const (
	// StatusUnknown is the initial state, before any decision is made.
	StatusUnknown StatusKind = iota
	// StatusPending means a mount attempt has been launched and has not yet reported.
	StatusPending
	// StatusWarned means the path is already mounted, but from a different source than declared.
	StatusWarned
	// StatusFailed means the mount attempt reported an unsuccessful result.
	StatusFailed
	// StatusOkay means the target is confirmed mounted with the expected source.
	StatusOkay
)

// Terminal reports whether a target in this state is done for the run.
func (k StatusKind) Terminal() bool {
	return k == StatusWarned || k == StatusFailed || k == StatusOkay
}

// String implements fmt.Stringer for log output.
func (k StatusKind) String() string {
	switch k {
	case StatusPending:
		return "pending"
	case StatusWarned:
		return "warned"
	case StatusFailed:
		return "failed"
	case StatusOkay:
		return "okay"
	default:
		return "unknown"
	}
}

// Status is a target's state together with the diagnostic text attached to
// the Warned and Failed kinds.
type Status struct {
	Kind   StatusKind
	Reason string
}

// Unknown returns the initial status.
func Unknown() Status { return Status{Kind: StatusUnknown} }

// Pending returns the status of a launched, unreported mount attempt.
func Pending() Status { return Status{Kind: StatusPending} }

// Okay returns the status of a confirmed mount.
func Okay() Status { return Status{Kind: StatusOkay} }

// Warned returns the status of a path mounted from an unexpected source.
func Warned(reason string) Status { return Status{Kind: StatusWarned, Reason: reason} }

// Failed returns the status of an unsuccessful mount attempt.
func Failed(reason string) Status { return Status{Kind: StatusFailed, Reason: reason} }
