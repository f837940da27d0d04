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
	"unsafe"
)

// BitWriter packs values MSB-first into a caller-owned, 8-byte-aligned
// destination buffer. It mirrors the accumulator-plus-counter shape of an
// ANS bit writer, but accumulates big-endian and latches a sticky error:
// once any call fails, every later call on the same writer returns that
// same failure without touching the destination again.
type BitWriter struct {
	dst   []byte
	pos   int    // bytes already committed to dst
	cache uint64 // pending bits, left-justified (MSB-aligned) in the top nbits
	nbits int    // number of valid pending bits in cache
	err   Result
}

// Init binds w to dst. dst must be non-nil and 8-byte aligned; size is
// taken from len(dst). A prior pending state is discarded.
func (w *BitWriter) Init(dst []byte) Result {
	*w = BitWriter{}
	if dst == nil {
		return w.fail(ErrDestinationNull)
	}
	if len(dst) > 0 && uintptr(unsafe.Pointer(&dst[0]))%8 != 0 {
		return w.fail(ErrDestinationUnaligned)
	}
	w.dst = dst
	return OK
}

func (w *BitWriter) fail(k ErrorKind) Result {
	if w.err == OK {
		w.err = resultFor(k)
	}
	return w.err
}

// Err returns the writer's sticky error, or OK if none has occurred.
func (w *BitWriter) Err() Result {
	return w.err
}

// Write packs the low n bits of value (n in [0,32]) MSB-first.
func (w *BitWriter) Write(value uint32, n uint) Result {
	if w.err != OK {
		return w.err
	}
	if n > 32 {
		return w.fail(ErrBitstream)
	}
	if n == 0 {
		return OK
	}
	if n < 32 && value>>n != 0 {
		return w.fail(ErrBitstream)
	}

	avail := 64 - w.nbits
	if int(n) <= avail {
		w.cache |= uint64(value) << (avail - int(n))
		w.nbits += int(n)
		if w.nbits == 64 {
			if res := w.emit64(w.cache); res != OK {
				return res
			}
			w.cache, w.nbits = 0, 0
		}
		return OK
	}

	// Slow path: split the value across the current and a fresh cache.
	hi := value >> (int(n) - avail)
	w.cache |= uint64(hi)
	if res := w.emit64(w.cache); res != OK {
		return res
	}
	rem := int(n) - avail
	mask := uint32(1)<<uint(rem) - 1
	low := value & mask
	w.cache = uint64(low) << (64 - rem)
	w.nbits = rem
	return OK
}

// Write64 packs the low n bits of value (n in [0,64]) MSB-first.
func (w *BitWriter) Write64(value uint64, n uint) Result {
	if w.err != OK {
		return w.err
	}
	if n > 64 {
		return w.fail(ErrBitstream)
	}
	if n <= 32 {
		return w.Write(uint32(value), n)
	}
	hi := uint32(value >> 32)
	if res := w.Write(hi, n-32); res != OK {
		return res
	}
	return w.Write(uint32(value), 32)
}

func (w *BitWriter) emit64(word uint64) Result {
	if w.pos+8 > len(w.dst) {
		return w.fail(ErrDestinationTooSmall)
	}
	binary.BigEndian.PutUint64(w.dst[w.pos:w.pos+8], word)
	w.pos += 8
	return OK
}

// Size reports the byte count that Flush would commit, without mutating
// the writer's state.
func (w *BitWriter) Size() int {
	return w.pos + (w.nbits+7)/8
}

// Flush pads any pending bits with zeros up to a byte boundary, commits
// them to the destination, and returns the total byte count written so
// far.
func (w *BitWriter) Flush() (int, Result) {
	if w.err != OK {
		return 0, w.err
	}
	nbytes := (w.nbits + 7) / 8
	if w.pos+nbytes > len(w.dst) {
		return 0, w.fail(ErrDestinationTooSmall)
	}
	if nbytes > 0 {
		var tmp [8]byte
		binary.BigEndian.PutUint64(tmp[:], w.cache)
		copy(w.dst[w.pos:w.pos+nbytes], tmp[:nbytes])
		w.pos += nbytes
	}
	w.cache, w.nbits = 0, 0
	return w.pos, OK
}

// Rewind flushes any pending bits, then reinitializes the writer over the
// same destination range (without clearing its contents), so the header
// can be rewritten in place once the payload size is known.
func (w *BitWriter) Rewind() Result {
	if _, res := w.Flush(); res != OK {
		return res
	}
	dst := w.dst
	*w = BitWriter{}
	return w.Init(dst)
}
