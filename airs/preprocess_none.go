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

// nonePreprocessor is the identity transform: each residual is the raw
// sample. It needs no work buffer.
type nonePreprocessor struct {
	r *SampleReader
}

func (p *nonePreprocessor) init(r *SampleReader) (int, Result) {
	if res := validateSource(r); res != OK {
		return 0, res
	}
	p.r = r
	return r.Len(), OK
}

func (p *nonePreprocessor) process(i int) int16 {
	return p.r.At(i)
}
