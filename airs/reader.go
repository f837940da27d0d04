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

// Layout names the physical representation a SampleReader was built over.
type Layout uint8

const (
	LayoutU16 Layout = iota
	LayoutI16
	LayoutI16InI32
)

// SampleReader presents any of the three supported physical sample
// layouts (packed u16, packed i16, or i16 widened into i32) through one
// uniform, index-addressable, signed 16-bit view. Preprocessors and the
// checksum read samples exclusively through this type so their logic
// never depends on the caller's storage choice.
type SampleReader struct {
	layout Layout
	u16    []uint16
	i16    []int16
	i32    []int32
}

// NewU16Reader builds a reader over packed unsigned 16-bit samples.
func NewU16Reader(data []uint16) SampleReader {
	return SampleReader{layout: LayoutU16, u16: data}
}

// NewI16Reader builds a reader over packed signed 16-bit samples.
func NewI16Reader(data []int16) SampleReader {
	return SampleReader{layout: LayoutI16, i16: data}
}

// NewI16InI32Reader builds a reader over signed 16-bit samples each
// widened into its own 32-bit element (low 16 bits significant).
func NewI16InI32Reader(data []int32) SampleReader {
	return SampleReader{layout: LayoutI16InI32, i32: data}
}

// Len returns the sample count.
func (r *SampleReader) Len() int {
	switch r.layout {
	case LayoutU16:
		return len(r.u16)
	case LayoutI16:
		return len(r.i16)
	default:
		return len(r.i32)
	}
}

// At returns the sample at index i, reinterpreted as a signed 16-bit
// value. The bit pattern is preserved across all three layouts.
func (r *SampleReader) At(i int) int16 {
	switch r.layout {
	case LayoutU16:
		return int16(r.u16[i])
	case LayoutI16:
		return r.i16[i]
	default:
		return int16(uint16(r.i32[i]))
	}
}

// PackedSize returns the byte count the header records as original_size:
// the sample count expressed as packed 16-bit words, regardless of the
// reader's physical layout.
func (r *SampleReader) PackedSize() uint32 {
	return uint32(r.Len()) * 2
}
