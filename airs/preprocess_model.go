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

// modelPreprocessor diffs each sample against a running per-index model,
// then updates the model with an exponentially weighted average. The
// model buffer is context-scoped state living in the caller's work
// buffer: the context seeds it with raw samples on the first pass of a
// reset cycle (see Context.seedModel), since model preprocessing is
// never the active ruleset on that pass, and this type only ever reads
// and updates an already-seeded buffer.
type modelPreprocessor struct {
	model  []int16
	src    *SampleReader
	weight int32
}

func (p *modelPreprocessor) init(r *SampleReader, work []byte, rate uint8) (int, Result) {
	if res := validateSource(r); res != OK {
		return 0, res
	}
	if rate > 16 {
		return 0, resultFor(ErrParamsInvalid)
	}
	n := r.Len()
	need := workBufSizeFor(PreprocessModel, uint32(n)*2)
	if work == nil {
		return 0, resultFor(ErrWorkBufNull)
	}
	if uint32(len(work)) < need {
		return 0, resultFor(ErrWorkBufTooSmall)
	}
	p.model = bytesAsInt16(work, n)
	p.src = r
	p.weight = int32(rate)
	return n, OK
}

func (p *modelPreprocessor) process(i int) int16 {
	s := p.src.At(i)
	d := int16(uint16(s) - uint16(p.model[i]))
	updated := (p.weight*int32(p.model[i]) + (16-p.weight)*int32(s)) / 16
	p.model[i] = int16(updated)
	return d
}
