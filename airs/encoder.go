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

import "math/bits"

// sampleBits is the fixed sample width this codec targets; non-16-bit
// samples are a stated non-goal.
const sampleBits = 16

// escapeSymbolCount is n_escape_symbols = ceil((sampleBits+1)/2): the
// number of Golomb symbols golomb_multi reserves above its outlier for
// escape levels.
const escapeSymbolCount = (sampleBits + 2) / 2

// zigzag maps a signed residual onto an unsigned value with small
// magnitude mapping to small output, so the Golomb coder sees small
// non-negative numbers for small residuals in either direction.
func zigzag(v int16) uint16 {
	return uint16((int32(v) << 1) ^ (int32(v) >> 15))
}

// golombParams returns l = floor(log2(g)) and the cutoff c = 2^(l+1) - g
// for Golomb parameter g.
func golombParams(g uint32) (l, c uint32) {
	l = uint32(bits.Len32(g)) - 1
	c = 2*(uint32(1)<<l) - g
	return l, c
}

// golombCodeLen returns the codeword length, in bits, for value v under
// parameter g.
func golombCodeLen(v, g uint32) uint32 {
	l, c := golombParams(g)
	if v < c {
		return l + 1
	}
	group := (v - c) / g
	return group + l + 2
}

// golombUpperBound returns the smallest value whose Golomb codeword
// under parameter g would exceed 32 bits, in closed form: the largest
// encodable group is 30-l (since length = group+l+2 <= 32), so the first
// value past it is c + (31-l)*g.
func golombUpperBound(g uint32) uint32 {
	l, c := golombParams(g)
	return c + (31-l)*g
}

// golombWriteValue writes the Golomb codeword for v under parameter g:
// a trailer of c+R in l+1 bits (R the remainder, c the cutoff), followed
// by a unary prefix of `group` ones and a terminating zero, when v falls
// outside the direct group-0 range.
func golombWriteValue(w *BitWriter, v, g uint32) Result {
	l, c := golombParams(g)
	if v < c {
		return w.Write(v, uint(l+1))
	}
	group := (v - c) / g
	r := (v - c) - group*g
	if res := w.Write(c+r, uint(l+1)); res != OK {
		return res
	}
	for i := uint32(0); i < group; i++ {
		if res := w.Write(1, 1); res != OK {
			return res
		}
	}
	return w.Write(0, 1)
}

// residualEncoder is the interface each entropy coding variant
// implements, selected once per pass.
type residualEncoder interface {
	encode(w *BitWriter, v int16) Result
}

func newEncoder(t EncoderType, param uint16, outlier uint32) (residualEncoder, uint32, Result) {
	switch t {
	case EncoderUncompressed:
		return uncompressedEncoder{}, 0, OK
	case EncoderGolombZero:
		return newGolombZeroEncoder(param)
	case EncoderGolombMulti:
		return newGolombMultiEncoder(param, outlier)
	default:
		return nil, 0, resultFor(ErrParamsInvalid)
	}
}

// uncompressedEncoder writes each residual's 16-bit pattern verbatim,
// with no outlier handling.
type uncompressedEncoder struct{}

func (uncompressedEncoder) encode(w *BitWriter, v int16) Result {
	return w.Write(uint32(uint16(v)), 16)
}

// golombZeroEncoder Golomb-codes mapped+1 for in-range values, reserving
// the symbol 0 as an escape that is followed by the raw 16-bit value.
type golombZeroEncoder struct {
	g       uint32
	outlier uint32
}

func newGolombZeroEncoder(param uint16) (golombZeroEncoder, uint32, Result) {
	g := uint32(param)
	if g < 1 || g > 0xFFFF {
		return golombZeroEncoder{}, 0, resultFor(ErrParamsInvalid)
	}
	outlier := golombZeroDefaultOutlier(g)
	return golombZeroEncoder{g: g, outlier: outlier}, outlier, OK
}

// golombZeroDefaultOutlier derives the outlier threshold golomb_zero
// always uses, regardless of any caller-supplied value: the highest v
// below which the escape+raw alternative would be worse, clamped so the
// in-range codeword never exceeds 32 bits.
func golombZeroDefaultOutlier(g uint32) uint32 {
	_, c := golombParams(g)
	vLow := c + sampleBits*g - 1
	ub := golombUpperBound(g)
	if vLow > ub-1 {
		return ub - 1
	}
	return vLow
}

func (e golombZeroEncoder) encode(w *BitWriter, v int16) Result {
	mapped := uint32(zigzag(v))
	if mapped < e.outlier {
		return golombWriteValue(w, mapped+1, e.g)
	}
	if res := golombWriteValue(w, 0, e.g); res != OK {
		return res
	}
	return w.Write(mapped, 16)
}

// golombMultiEncoder Golomb-codes mapped values below the outlier
// directly, and above it a level symbol (outlier+level) followed by the
// level-sized raw difference, allowing unbounded outlier magnitude at a
// gracefully growing cost.
type golombMultiEncoder struct {
	g       uint32
	outlier uint32
}

func newGolombMultiEncoder(param uint16, outlier uint32) (golombMultiEncoder, uint32, Result) {
	g := uint32(param)
	if g < 1 || g > 0xFFFF {
		return golombMultiEncoder{}, 0, resultFor(ErrParamsInvalid)
	}
	maxOutlier := golombUpperBound(g) - escapeSymbolCount
	clamped := outlier
	if clamped > maxOutlier {
		clamped = maxOutlier
	}
	return golombMultiEncoder{g: g, outlier: clamped}, clamped, OK
}

func (e golombMultiEncoder) encode(w *BitWriter, v int16) Result {
	mapped := uint32(zigzag(v))
	if mapped < e.outlier {
		return golombWriteValue(w, mapped, e.g)
	}
	diff := mapped - e.outlier
	var level uint32
	if diff >= 4 {
		level = (uint32(bits.Len32(diff)) - 1) / 2
	}
	if res := golombWriteValue(w, e.outlier+level, e.g); res != OK {
		return res
	}
	return w.Write(diff, uint(2*(level+1)))
}
