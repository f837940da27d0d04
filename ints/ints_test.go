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

package ints

import "testing"

func TestClamp(t *testing.T) {
	cases := []struct {
		x, lo, hi, want int
	}{
		{5, 0, 10, 5},
		{-5, 0, 10, 0},
		{15, 0, 10, 10},
		{0, 0, 0, 0},
	}
	for _, c := range cases {
		if got := Clamp(c.x, c.lo, c.hi); got != c.want {
			t.Errorf("Clamp(%d, %d, %d) = %d, want %d", c.x, c.lo, c.hi, got, c.want)
		}
	}
}

func TestAlignUp(t *testing.T) {
	cases := []struct{ v, alignment, want uint32 }{
		{0, 8, 0},
		{1, 8, 8},
		{8, 8, 8},
		{9, 8, 16},
		{3, 2, 4},
	}
	for _, c := range cases {
		if got := AlignUp(c.v, c.alignment); got != c.want {
			t.Errorf("AlignUp(%d, %d) = %d, want %d", c.v, c.alignment, got, c.want)
		}
	}
}

func TestIsAligned(t *testing.T) {
	if !IsAligned[uint32](16, 8) {
		t.Error("16 should be 8-aligned")
	}
	if IsAligned[uint32](15, 8) {
		t.Error("15 should not be 8-aligned")
	}
}
