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

// diffPreprocessor emits the first sample unchanged, then each
// subsequent sample minus its predecessor, wrapping modulo 2^16. It
// needs no work buffer.
type diffPreprocessor struct {
	r *SampleReader
}

func (p *diffPreprocessor) init(r *SampleReader) (int, Result) {
	if res := validateSource(r); res != OK {
		return 0, res
	}
	p.r = r
	return r.Len(), OK
}

func (p *diffPreprocessor) process(i int) int16 {
	if i == 0 {
		return p.r.At(0)
	}
	return int16(uint16(p.r.At(i)) - uint16(p.r.At(i-1)))
}
