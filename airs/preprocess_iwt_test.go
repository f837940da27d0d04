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

import "testing"

func TestIWTForwardTransformWorkedExample(t *testing.T) {
	buf := []int16{-3, 2, -1, 3, -2, 5, 0, 7}
	iwtForwardTransform(buf)
	want := []int16{0, 4, 2, 5, 1, 6, 3, 7}
	for i := range want {
		if buf[i] != want[i] {
			t.Errorf("buf[%d] = %d, want %d", i, buf[i], want[i])
		}
	}
}

func TestIWTPreprocessorInit(t *testing.T) {
	samples := []int16{-3, 2, -1, 3, -2, 5, 0, 7}
	r := NewI16Reader(samples)
	work := make([]byte, workBufSizeFor(PreprocessIWT, r.PackedSize()))
	p := &iwtPreprocessor{}
	n, res := p.init(&r, work)
	if res != OK {
		t.Fatalf("init: %v", ErrorMessage(res))
	}
	if n != len(samples) {
		t.Fatalf("n = %d, want %d", n, len(samples))
	}
	want := []int16{0, 4, 2, 5, 1, 6, 3, 7}
	for i := range want {
		if got := p.process(i); got != want[i] {
			t.Errorf("process(%d) = %d, want %d", i, got, want[i])
		}
	}
}

func TestIWTPreprocessorRejectsTooSmallWorkBuf(t *testing.T) {
	samples := []int16{1, 2, 3, 4}
	r := NewI16Reader(samples)
	p := &iwtPreprocessor{}
	_, res := p.init(&r, make([]byte, 2))
	if res.Kind() != ErrWorkBufTooSmall {
		t.Fatalf("init = %v, want work-buf-too-small", ErrorMessage(res))
	}
}
