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

import (
	"unsafe"

	"github.com/dloidolt/airs-compression-sub000/ints"
)

// preprocessor is the interface each sample-to-residual transform
// implements. The active ruleset's variant is selected once per pass by
// the compression context; the hot loop then calls process(i) through a
// single concrete type, never through a dynamic per-sample dispatch.
type preprocessor interface {
	process(i int) int16
}

// workBufSizeFor returns the work buffer size, in bytes, variant pp needs
// for a source of srcSize bytes.
func workBufSizeFor(pp Preprocessing, srcSize uint32) uint32 {
	switch pp {
	case PreprocessIWT, PreprocessModel:
		return ints.AlignUp(srcSize, 2)
	default:
		return 0
	}
}

func validateSource(r *SampleReader) Result {
	if r == nil {
		return resultFor(ErrSourceNull)
	}
	if r.Len() == 0 {
		return resultFor(ErrSourceSizeWrong)
	}
	return OK
}

// bytesAsInt16 reinterprets the first n*2 bytes of b as a []int16. b must
// be at least 2-byte aligned, which the codec guarantees by requiring the
// caller's work buffer to be 4-byte aligned.
func bytesAsInt16(b []byte, n int) []int16 {
	if n == 0 {
		return nil
	}
	return unsafe.Slice((*int16)(unsafe.Pointer(&b[0])), n)
}

// newPreprocessor constructs and initializes the preprocessor for
// variant pp, returning the sample count it reports and a Result.
func newPreprocessor(pp Preprocessing, r *SampleReader, work []byte, modelRate uint8) (preprocessor, int, Result) {
	switch pp {
	case PreprocessNone:
		p := &nonePreprocessor{}
		n, res := p.init(r)
		return p, n, res
	case PreprocessDiff:
		p := &diffPreprocessor{}
		n, res := p.init(r)
		return p, n, res
	case PreprocessIWT:
		p := &iwtPreprocessor{}
		n, res := p.init(r, work)
		return p, n, res
	case PreprocessModel:
		p := &modelPreprocessor{}
		n, res := p.init(r, work, modelRate)
		return p, n, res
	default:
		return nil, 0, resultFor(ErrParamsInvalid)
	}
}
