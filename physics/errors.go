// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package physics

import "fmt"

// InvariantViolation marks a programmer-contract violation:
// NaN input, negative density, a polygon with too few vertices, mutating
// the world while it is locked, and similar unrecoverable misuses. These
// are panics rather than errors because there is no sane way for the
// caller to continue — the earlier 3D engine's own "Dev error" log.Printf guards
// (physics/collision.go, physics/solver.go) are promoted here to hard
// failures since a library has no render loop worth limping along for.
type InvariantViolation struct {
	Op  string
	Msg string
}

func (e *InvariantViolation) Error() string {
	return fmt.Sprintf("physics: invariant violated in %s: %s", e.Op, e.Msg)
}

func panicInvariant(op, format string, args ...any) {
	panic(&InvariantViolation{Op: op, Msg: fmt.Sprintf(format, args...)})
}

// ErrWorldLocked describes a World mutation attempted during a Step. No
// method in this package returns it: mutating World methods called while
// the world is locked panic with an InvariantViolation instead.
var ErrWorldLocked = fmt.Errorf("physics: world is locked during step")

// ErrUnknownBody/ErrUnknownFixture describe a missed id-keyed lookup. No
// method in this package returns them; bodies and fixtures are handed out
// and passed around as pointers.
var (
	ErrUnknownBody    = fmt.Errorf("physics: unknown body id")
	ErrUnknownFixture = fmt.Errorf("physics: unknown fixture id")
)
