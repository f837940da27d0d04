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

func TestCompressBoundGrowsWithSampleCount(t *testing.T) {
	small := CompressBound(100)
	large := CompressBound(100000)
	if small.IsError() || large.IsError() {
		t.Fatalf("unexpected error: small=%v large=%v", ErrorMessage(small), ErrorMessage(large))
	}
	if uint32(large) <= uint32(small) {
		t.Fatalf("CompressBound did not grow: small=%d large=%d", uint32(small), uint32(large))
	}
}

func TestCompressBoundRejectsOversizedSource(t *testing.T) {
	// A source whose worst-case bound would overflow the header's
	// 24-bit compressed_size field.
	res := CompressBound(0xFFFFFF * 2)
	if res.Kind() != ErrSourceSizeWrong {
		t.Fatalf("CompressBound(huge) = %v, want source-size-wrong", ErrorMessage(res))
	}
}

func TestWorkBufSizeNoneNeedsNothing(t *testing.T) {
	p := Params{PrimaryPreprocessing: PreprocessNone}
	if got := WorkBufSize(&p, 1000); got != 0 {
		t.Fatalf("WorkBufSize(none) = %d, want 0", got)
	}
}

func TestWorkBufSizeTakesLargerOfTheTwoRulesets(t *testing.T) {
	p := Params{
		PrimaryPreprocessing:    PreprocessIWT,
		SecondaryIterations:     4,
		SecondaryPreprocessing:  PreprocessModel,
		PrimaryEncoderType:      EncoderGolombZero,
		PrimaryEncoderParam:     1,
		SecondaryEncoderType:    EncoderGolombZero,
		SecondaryEncoderParam:   1,
		ModelRate:               8,
	}
	iwtOnly := workBufSizeFor(PreprocessIWT, 2000)
	modelOnly := workBufSizeFor(PreprocessModel, 2000)
	got := WorkBufSize(&p, 2000)
	want := iwtOnly
	if modelOnly > want {
		want = modelOnly
	}
	if got != want {
		t.Fatalf("WorkBufSize = %d, want %d", got, want)
	}
}
