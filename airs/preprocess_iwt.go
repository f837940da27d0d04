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

// iwtPreprocessor is the integer wavelet transform: an in-place,
// multi-level lifting decomposition (Solomon eq. 5.24) over the work
// buffer, copied in from the source once at init.
type iwtPreprocessor struct {
	coeffs []int16
}

func (p *iwtPreprocessor) init(r *SampleReader, work []byte) (int, Result) {
	if res := validateSource(r); res != OK {
		return 0, res
	}
	n := r.Len()
	need := workBufSizeFor(PreprocessIWT, uint32(n)*2)
	if work == nil {
		return 0, resultFor(ErrWorkBufNull)
	}
	if uint32(len(work)) < need {
		return 0, resultFor(ErrWorkBufTooSmall)
	}
	buf := bytesAsInt16(work, n)
	for i := 0; i < n; i++ {
		buf[i] = r.At(i)
	}
	iwtForwardTransform(buf)
	p.coeffs = buf
	return n, OK
}

func (p *iwtPreprocessor) process(i int) int16 {
	return p.coeffs[i]
}

// iwtForwardTransform applies the lifting decomposition in place over
// buf, doubling the stride from 1 until it reaches len(buf).
func iwtForwardTransform(buf []int16) {
	n := len(buf)
	for s := 1; s < n; s *= 2 {
		iwtLiftLevel(buf, s, n)
	}
}

// iwtLiftLevel performs one lifting level at stride s: it updates the
// odd-indexed (stride multiples) coefficients first using their original
// neighbors, then the even-indexed coefficients using the now-updated
// odd neighbors, matching the boundary rules for the leading/trailing
// and single-remaining-sample cases.
func iwtLiftLevel(buf []int16, s, n int) {
	for k := s; k < n; k += 2 * s {
		left, right := k-s, k+s
		if right < n {
			buf[k] = buf[k] - int16((int32(buf[left])+int32(buf[right]))>>1)
		} else {
			buf[k] = buf[k] - buf[left]
		}
	}
	for k := 0; k < n; k += 2 * s {
		left, right := k-s, k+s
		switch {
		case left >= 0 && right < n:
			buf[k] = buf[k] + int16((int32(buf[left])+int32(buf[right]))>>2)
		case left >= 0:
			buf[k] = buf[k] + int16(int32(buf[left])>>1)
		case right < n:
			buf[k] = buf[k] + int16(int32(buf[right])>>1)
		}
	}
}
