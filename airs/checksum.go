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
	"encoding/binary"
	"math/bits"
)

// XXH32 constants (Cyan4973's public-domain xxHash, 32-bit variant).
const (
	xxh32Prime1 uint32 = 2654435761
	xxh32Prime2 uint32 = 2246822519
	xxh32Prime3 uint32 = 3266489917
	xxh32Prime4 uint32 = 668265263
	xxh32Prime5 uint32 = 374761393
)

// checksumSeed is the fixed seed the codec uses for every frame checksum,
// chosen once and kept stable so compressed frames are reproducible
// byte-for-byte across runs and platforms.
const checksumSeed uint32 = 0

// xxh32State is a streaming XXH32 accumulator. No library in the
// retrieved pack exposes a public XXH32 with this seed/word-order
// contract (klauspost's copy is private to its zstd frame decoder), so
// this is hand-rolled directly from the published algorithm, the way the
// teacher hand-rolls SipHash in its own vm package rather than importing
// one for an internal, exact-format-matching use.
type xxh32State struct {
	v1, v2, v3, v4 uint32
	total          uint64
	buf            [16]byte
	bufLen         int
}

func newXXH32(seed uint32) xxh32State {
	return xxh32State{
		v1: seed + xxh32Prime1 + xxh32Prime2,
		v2: seed + xxh32Prime2,
		v3: seed,
		v4: seed - xxh32Prime1,
	}
}

func xxh32Round(acc, input uint32) uint32 {
	acc += input * xxh32Prime2
	acc = bits.RotateLeft32(acc, 13)
	acc *= xxh32Prime1
	return acc
}

func (s *xxh32State) process(block []byte) {
	s.v1 = xxh32Round(s.v1, binary.LittleEndian.Uint32(block[0:4]))
	s.v2 = xxh32Round(s.v2, binary.LittleEndian.Uint32(block[4:8]))
	s.v3 = xxh32Round(s.v3, binary.LittleEndian.Uint32(block[8:12]))
	s.v4 = xxh32Round(s.v4, binary.LittleEndian.Uint32(block[12:16]))
}

func (s *xxh32State) write(p []byte) {
	s.total += uint64(len(p))
	if s.bufLen+len(p) < 16 {
		copy(s.buf[s.bufLen:], p)
		s.bufLen += len(p)
		return
	}
	if s.bufLen > 0 {
		n := copy(s.buf[s.bufLen:], p)
		s.process(s.buf[:16])
		p = p[n:]
		s.bufLen = 0
	}
	for len(p) >= 16 {
		s.process(p[:16])
		p = p[16:]
	}
	if len(p) > 0 {
		copy(s.buf[:], p)
		s.bufLen = len(p)
	}
}

func (s *xxh32State) sum32() uint32 {
	var h uint32
	if s.total >= 16 {
		h = bits.RotateLeft32(s.v1, 1) + bits.RotateLeft32(s.v2, 7) +
			bits.RotateLeft32(s.v3, 12) + bits.RotateLeft32(s.v4, 18)
	} else {
		h = s.v3 + xxh32Prime5 // s.v3 == seed for the short-input case
	}
	h += uint32(s.total)

	rem := s.buf[:s.bufLen]
	for len(rem) >= 4 {
		h += binary.LittleEndian.Uint32(rem[:4]) * xxh32Prime3
		h = bits.RotateLeft32(h, 17) * xxh32Prime4
		rem = rem[4:]
	}
	for len(rem) > 0 {
		h += uint32(rem[0]) * xxh32Prime5
		h = bits.RotateLeft32(h, 11) * xxh32Prime1
		rem = rem[1:]
	}

	h ^= h >> 15
	h *= xxh32Prime2
	h ^= h >> 13
	h *= xxh32Prime3
	h ^= h >> 16
	return h
}

// Checksum computes the frame checksum over r's samples, each expressed
// as a 2-byte big-endian word, so the digest is identical regardless of
// which physical layout produced the reader.
func Checksum(r *SampleReader) uint32 {
	s := newXXH32(checksumSeed)
	var tmp [2]byte
	n := r.Len()
	for i := 0; i < n; i++ {
		binary.BigEndian.PutUint16(tmp[:], uint16(r.At(i)))
		s.write(tmp[:])
	}
	return s.sum32()
}
