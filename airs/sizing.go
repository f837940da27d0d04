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

import "github.com/dloidolt/airs-compression-sub000/ints"

// worstCaseBitsPerSample bounds the codeword length any configured
// encoder can ever emit for one sample: a 32-bit Golomb codeword in the
// worst Golomb case, or a 16-bit raw escape value on top of it.
const worstCaseBitsPerSample = 48

// CompressBound returns the worst-case compressed byte count for a
// source of srcSize bytes (sample_count*2): header_max + checksum +
// ceil(worstCaseBitsPerSample*sample_count/8). It fails with
// source-size-wrong if that bound would not fit the header's 24-bit
// compressed_size field.
func CompressBound(srcSize uint32) Result {
	sampleCount := uint64(srcSize) / 2
	payloadBits := worstCaseBitsPerSample * sampleCount
	payload := (payloadBits + 7) / 8
	total := uint64(MaxHeaderSize+ChecksumSize) + payload
	if total > 0xFFFFFF {
		return resultFor(ErrSourceSizeWrong)
	}
	return Result(total)
}

// WorkBufSize returns the work buffer size, in bytes, Context.Compress
// needs for a source of srcSize bytes under params: the larger of the
// primary and secondary ruleset's own requirement, since only one
// ruleset's preprocessor is active in a given pass. It returns 0 when
// neither ruleset needs scratch space.
func WorkBufSize(params *Params, srcSize uint32) uint32 {
	primary := workBufSizeFor(params.PrimaryPreprocessing, srcSize)
	var secondary uint32
	if params.SecondaryIterations > 0 {
		secondary = workBufSizeFor(params.SecondaryPreprocessing, srcSize)
	}
	return ints.Max(primary, secondary)
}
