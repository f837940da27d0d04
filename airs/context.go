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

// Context drives the multi-pass compression state machine: it selects a
// ruleset per pass, maintains the reset identifier and sequence number,
// and owns the caller-provided work buffer across the lifetime of a
// reset cycle.
type Context struct {
	params Params
	work   []byte

	clock Clock

	seq        uint8
	identifier uint64
	modelSize  int
}

// NewContext allocates and initializes a Context over work for params.
func NewContext(params Params, work []byte) (*Context, Result) {
	c := &Context{}
	if res := c.Init(params, work); res != OK {
		return nil, res
	}
	return c, OK
}

// Init validates params, binds work as the context's scratch region, and
// resets the compression state. work may be nil only if neither ruleset
// needs scratch space for any source size the caller intends to pass;
// Compress still re-checks the size actually needed once src is known.
func (c *Context) Init(params Params, work []byte) Result {
	*c = Context{}
	if res := params.Validate(); res != OK {
		return res
	}
	needsScratch := params.PrimaryPreprocessing == PreprocessIWT ||
		params.PrimaryPreprocessing == PreprocessModel ||
		(params.SecondaryIterations > 0 &&
			(params.SecondaryPreprocessing == PreprocessIWT || params.SecondaryPreprocessing == PreprocessModel))
	if needsScratch {
		if work == nil {
			return resultFor(ErrWorkBufNull)
		}
		if len(work) == 0 {
			return resultFor(ErrWorkBufTooSmall)
		}
		if uintptr(unsafe.Pointer(&work[0]))%4 != 0 {
			return resultFor(ErrWorkBufUnaligned)
		}
	}
	c.params = params
	c.work = work
	c.clock = defaultClock
	return c.Reset()
}

// Reset starts a new reset cycle: sequence number back to 0, a freshly
// stamped identifier, and the locked model size cleared.
func (c *Context) Reset() Result {
	if c.clock == nil {
		return resultFor(ErrContextInvalid)
	}
	ts := c.clock()
	if ts > 1<<48-1 {
		return resultFor(ErrTimestampInvalid)
	}
	c.seq = 0
	c.identifier = ts
	c.modelSize = 0
	return OK
}

// SequenceNumber returns the sequence number the next Compress call will
// stamp into its frame.
func (c *Context) SequenceNumber() uint8 {
	return c.seq
}

// Identifier returns the identifier stamped on the current reset cycle.
func (c *Context) Identifier() uint64 {
	return c.identifier
}

// Teardown zeroes the context, making it indistinguishable from a never
// initialized one.
func (c *Context) Teardown() {
	*c = Context{}
}

// Compress runs one pass: it selects the primary or secondary ruleset
// per the sequence number, preprocesses and entropy-codes src into dst,
// and returns the compressed byte count (including any checksum) as a
// Result, or a failure.
func (c *Context) Compress(dst []byte, src *SampleReader) Result {
	if c.clock == nil {
		return resultFor(ErrContextInvalid)
	}
	if src == nil {
		return resultFor(ErrSourceNull)
	}
	n := src.Len()
	if n == 0 {
		return resultFor(ErrSourceSizeWrong)
	}
	srcSize := uint32(n) * 2

	usePrimary := c.seq == 0 || c.seq > c.params.SecondaryIterations
	if usePrimary {
		if res := c.Reset(); res != OK {
			return res
		}
		c.modelSize = n
	} else if c.params.SecondaryPreprocessing == PreprocessModel && n != c.modelSize {
		return resultFor(ErrSourceSizeMismatch)
	}

	pp, et, param, outlierIn, modelRate := c.activeRuleset(usePrimary)

	if pp == PreprocessIWT || pp == PreprocessModel {
		need := workBufSizeFor(pp, srcSize)
		if uint32(len(c.work)) < need {
			return resultFor(ErrWorkBufTooSmall)
		}
	}

	var w BitWriter
	if res := w.Init(dst); res != OK {
		return res
	}

	enc, effectiveOutlier, res := newEncoder(et, param, outlierIn)
	if res != OK {
		return res
	}

	hdr := Header{
		VersionID:       libraryVersionID,
		OriginalSize:    srcSize,
		Identifier:      c.identifier,
		SequenceNumber:  c.seq,
		Preprocessing:   pp,
		ChecksumEnabled: c.params.ChecksumEnabled,
		EncoderType:     et,
		ModelRate:       modelRate,
		EncoderParam:    param,
		EncoderOutlier:  effectiveOutlier,
	}
	if res := hdr.Serialize(&w); res != OK {
		return res
	}

	pre, _, res := newPreprocessor(pp, src, c.work, modelRate)
	if res != OK {
		return res
	}

	// A model pass mutates c.work in place as it runs, one sample ahead
	// of the frame it produces. If this pass gets thrown away below, that
	// mutation must not survive it: snapshot here and restore on
	// fallback, so a discarded pass leaves the model exactly as it found
	// it.
	var modelSnapshot []int16
	if pp == PreprocessModel {
		modelSnapshot = make([]int16, n)
		copy(modelSnapshot, bytesAsInt16(c.work, n))
	}

	for i := 0; i < n; i++ {
		if res := enc.encode(&w, pre.process(i)); res != OK {
			return res
		}
	}

	payloadEnd, res := w.Flush()
	if res != OK {
		return res
	}
	compressedSize := uint32(payloadEnd)
	if c.params.ChecksumEnabled {
		compressedSize += ChecksumSize
	}

	if c.params.UncompressedFallbackEnabled && compressedSize >= rawFrameSize(c.params.ChecksumEnabled, srcSize) {
		if modelSnapshot != nil {
			copy(bytesAsInt16(c.work, n), modelSnapshot)
		}
		result := c.emitFallback(dst, src, srcSize)
		if usePrimary {
			c.seedModel(src)
		}
		return result
	}

	hdr.CompressedSize = compressedSize
	if res := w.Rewind(); res != OK {
		return res
	}
	if res := hdr.Serialize(&w); res != OK {
		return res
	}
	if _, res := w.Flush(); res != OK {
		return res
	}
	if c.params.ChecksumEnabled {
		if res := appendChecksum(dst, payloadEnd, src); res != OK {
			return res
		}
	}

	if usePrimary {
		c.seedModel(src)
	}
	c.seq++
	return Result(compressedSize)
}

func (c *Context) activeRuleset(usePrimary bool) (pp Preprocessing, et EncoderType, param uint16, outlier uint32, modelRate uint8) {
	if usePrimary {
		return c.params.PrimaryPreprocessing, c.params.PrimaryEncoderType, c.params.PrimaryEncoderParam, c.params.PrimaryEncoderOutlier, c.params.ModelRate
	}
	return c.params.SecondaryPreprocessing, c.params.SecondaryEncoderType, c.params.SecondaryEncoderParam, c.params.SecondaryEncoderOutlier, c.params.ModelRate
}

// seedModel stashes src's raw samples into the model scratch region so a
// later pass using model preprocessing can diff against them. It is a
// no-op when this context's secondary ruleset isn't model preprocessing.
// Called only after the active pass is done reading or writing the work
// buffer for its own purposes, so it is safe for it to reuse (and
// overwrite) that same region.
func (c *Context) seedModel(r *SampleReader) {
	if c.params.SecondaryPreprocessing != PreprocessModel {
		return
	}
	n := r.Len()
	need := workBufSizeFor(PreprocessModel, uint32(n)*2)
	if uint32(len(c.work)) < need {
		return
	}
	buf := bytesAsInt16(c.work, n)
	for i := 0; i < n; i++ {
		buf[i] = r.At(i)
	}
}

// emitFallback discards the just-computed frame and rewrites dst as an
// identity-preprocessed, uncompressed frame instead. It keeps the same
// identifier and sequence number: a fallback does not advance the model,
// but the secondary iteration counter still advances past this pass.
func (c *Context) emitFallback(dst []byte, src *SampleReader, srcSize uint32) Result {
	var w BitWriter
	if res := w.Init(dst); res != OK {
		return res
	}
	hdr := Header{
		VersionID:       libraryVersionID,
		OriginalSize:    srcSize,
		Identifier:      c.identifier,
		SequenceNumber:  c.seq,
		Preprocessing:   PreprocessNone,
		ChecksumEnabled: c.params.ChecksumEnabled,
		EncoderType:     EncoderUncompressed,
	}
	if res := hdr.Serialize(&w); res != OK {
		return res
	}
	n := src.Len()
	for i := 0; i < n; i++ {
		if res := w.Write(uint32(uint16(src.At(i))), 16); res != OK {
			return res
		}
	}
	payloadEnd, res := w.Flush()
	if res != OK {
		return res
	}
	compressedSize := uint32(payloadEnd)
	if c.params.ChecksumEnabled {
		compressedSize += ChecksumSize
	}
	hdr.CompressedSize = compressedSize
	if res := w.Rewind(); res != OK {
		return res
	}
	if res := hdr.Serialize(&w); res != OK {
		return res
	}
	if _, res := w.Flush(); res != OK {
		return res
	}
	if c.params.ChecksumEnabled {
		if res := appendChecksum(dst, payloadEnd, src); res != OK {
			return res
		}
	}
	c.seq++
	return Result(compressedSize)
}

func appendChecksum(dst []byte, payloadEnd int, src *SampleReader) Result {
	if payloadEnd+ChecksumSize > len(dst) {
		return resultFor(ErrDestinationTooSmall)
	}
	sum := Checksum(src)
	binary.BigEndian.PutUint32(dst[payloadEnd:payloadEnd+ChecksumSize], sum)
	return OK
}

// rawFrameSize is the byte count an identity-preprocessed, uncompressed
// frame of packedSize payload bytes would occupy: the fixed header alone
// (that combination never needs the extended header), plus the payload,
// plus an optional checksum.
func rawFrameSize(checksumEnabled bool, packedSize uint32) uint32 {
	s := uint32(FixedHeaderSize) + packedSize
	if checksumEnabled {
		s += ChecksumSize
	}
	return s
}
