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

func TestDiffPreprocessor(t *testing.T) {
	samples := []int16{10, 12, 9, 9}
	r := NewI16Reader(samples)
	p := &diffPreprocessor{}
	n, res := p.init(&r)
	if res != OK {
		t.Fatalf("init: %v", ErrorMessage(res))
	}
	if n != len(samples) {
		t.Fatalf("n = %d, want %d", n, len(samples))
	}
	want := []int16{10, 2, -3, 0}
	for i := range want {
		if got := p.process(i); got != want[i] {
			t.Errorf("process(%d) = %d, want %d", i, got, want[i])
		}
	}
}

func TestNonePreprocessorIsIdentity(t *testing.T) {
	samples := []int16{-5, 0, 32767, -32768}
	r := NewI16Reader(samples)
	p := &nonePreprocessor{}
	if _, res := p.init(&r); res != OK {
		t.Fatalf("init: %v", ErrorMessage(res))
	}
	for i, s := range samples {
		if got := p.process(i); got != s {
			t.Errorf("process(%d) = %d, want %d", i, got, s)
		}
	}
}

func TestModelPreprocessorDiffsAgainstSeededModel(t *testing.T) {
	samples := []int16{1, 3, 5}
	r := NewI16Reader(samples)
	work := make([]byte, workBufSizeFor(PreprocessModel, r.PackedSize()))
	model := bytesAsInt16(work, len(samples))
	copy(model, []int16{0, 1, 10})

	p := &modelPreprocessor{}
	n, res := p.init(&r, work, 1)
	if res != OK {
		t.Fatalf("init: %v", ErrorMessage(res))
	}
	if n != len(samples) {
		t.Fatalf("n = %d, want %d", n, len(samples))
	}
	want := []int16{1, 2, -5}
	for i := range want {
		if got := p.process(i); got != want[i] {
			t.Errorf("process(%d) = %d, want %d", i, got, want[i])
		}
	}
	wantModel := []int16{0, 2, 5}
	for i := range wantModel {
		if model[i] != wantModel[i] {
			t.Errorf("model[%d] = %d, want %d", i, model[i], wantModel[i])
		}
	}
}

func TestSourceValidationRejectsEmpty(t *testing.T) {
	r := NewI16Reader(nil)
	if _, _, res := newPreprocessor(PreprocessNone, &r, nil, 0); res.Kind() != ErrSourceSizeWrong {
		t.Fatalf("newPreprocessor(empty) = %v, want source-size-wrong", ErrorMessage(res))
	}
}
