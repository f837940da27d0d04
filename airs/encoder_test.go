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

func TestZigzag(t *testing.T) {
	cases := []struct {
		v    int16
		want uint16
	}{
		{0, 0},
		{-1, 1},
		{1, 2},
		{-2, 3},
		{2, 4},
		{-9, 17},
	}
	for _, c := range cases {
		if got := zigzag(c.v); got != c.want {
			t.Errorf("zigzag(%d) = %d, want %d", c.v, got, c.want)
		}
	}
}

func TestGolombUpperBoundG1(t *testing.T) {
	if got := golombUpperBound(1); got != 32 {
		t.Errorf("golombUpperBound(1) = %d, want 32", got)
	}
}

func TestGolombZeroSingleEscape(t *testing.T) {
	// One negative outlier sample, g=1: escape symbol then raw 16-bit
	// zigzag value.
	enc, outlier, res := newGolombZeroEncoder(1)
	if res != OK {
		t.Fatalf("newGolombZeroEncoder: %v", ErrorMessage(res))
	}
	if outlier != 16 {
		t.Fatalf("derived outlier = %d, want 16", outlier)
	}
	dst := make([]byte, 8)
	var w BitWriter
	if res := w.Init(dst); res != OK {
		t.Fatalf("Init: %v", ErrorMessage(res))
	}
	if res := enc.encode(&w, -9); res != OK {
		t.Fatalf("encode: %v", ErrorMessage(res))
	}
	n, res := w.Flush()
	if res != OK {
		t.Fatalf("Flush: %v", ErrorMessage(res))
	}
	if n != 3 {
		t.Fatalf("payload length = %d, want 3", n)
	}
	want := []byte{0x00, 0x08, 0x80}
	for i, b := range want {
		if dst[i] != b {
			t.Errorf("dst[%d] = %02x, want %02x", i, dst[i], b)
		}
	}
}

func TestGolombZeroInRangeValues(t *testing.T) {
	enc, _, res := newGolombZeroEncoder(1)
	if res != OK {
		t.Fatalf("newGolombZeroEncoder: %v", ErrorMessage(res))
	}
	dst := make([]byte, 8)
	var w BitWriter
	if res := w.Init(dst); res != OK {
		t.Fatalf("Init: %v", ErrorMessage(res))
	}
	if res := enc.encode(&w, -1); res != OK {
		t.Fatalf("encode(-1): %v", ErrorMessage(res))
	}
	if res := enc.encode(&w, 1); res != OK {
		t.Fatalf("encode(1): %v", ErrorMessage(res))
	}
	n, res := w.Flush()
	if res != OK {
		t.Fatalf("Flush: %v", ErrorMessage(res))
	}
	if n != 1 {
		t.Fatalf("payload length = %d, want 1", n)
	}
	if dst[0] != 0xDC {
		t.Fatalf("dst[0] = %08b, want %08b", dst[0], 0xDC)
	}
}

func TestGolombCodeLenMatchesWriteLength(t *testing.T) {
	for _, g := range []uint32{1, 3, 7, 100} {
		for v := uint32(0); v < 40; v++ {
			dst := make([]byte, 64)
			var w BitWriter
			if res := w.Init(dst); res != OK {
				t.Fatalf("Init: %v", ErrorMessage(res))
			}
			if res := golombWriteValue(&w, v, g); res != OK {
				t.Fatalf("golombWriteValue(%d,%d): %v", v, g, ErrorMessage(res))
			}
			got := w.pos*8 + w.nbits
			want := int(golombCodeLen(v, g))
			if got != want {
				t.Errorf("g=%d v=%d: wrote %d bits, golombCodeLen says %d", g, v, got, want)
			}
		}
	}
}
