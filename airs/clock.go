// Copyright (C) 2023 Sneller, Inc.
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package airs

import "sync/atomic"

// Clock returns the 48-bit timestamp a reset cycle stamps into a
// frame's identifier field. Implementations must return a value that
// fits in 48 bits; Context.Reset rejects anything wider.
type Clock func() uint64

var monotonicCounter atomic.Uint64

// monotonicClock is the default Clock: an in-process counter, not a wall
// clock, so frames compressed in the same process are ordered but not
// tied to real time. Contexts may be reset concurrently on independent
// goroutines, so the counter itself must be safe for that.
func monotonicClock() uint64 {
	return monotonicCounter.Add(1)
}

// defaultClock is the process-wide Clock new contexts capture at Init
// time. Per the fix adopted for this repo (see DESIGN.md), a Context
// only ever reads this once, at Init, and keeps its own copy from then
// on — later SetClock calls never retroactively affect an already
// initialized Context.
var defaultClock Clock = monotonicClock

// SetClock installs c as the process-wide default Clock for contexts
// initialized from this point on. Replacing the clock concurrently with
// Context.Init calls must be externally synchronized by the caller.
func SetClock(c Clock) {
	if c != nil {
		defaultClock = c
	}
}

// RestoreDefaultClock reinstalls the built-in monotonic counter clock.
func RestoreDefaultClock() {
	defaultClock = monotonicClock
}
