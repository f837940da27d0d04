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

// Package airs implements the AIRS lossless sample codec: a preprocessing
// stage (none/diff/IWT/model), a three-mode entropy encoder (uncompressed,
// Golomb with zero-escape, Golomb with multi-level escape), and the framed
// container and multi-pass compression context that drive them.
package airs

import "errors"

// ErrorKind identifies the reason a Result carries a failure. The zero
// value, ErrNone, never appears in a failing Result.
type ErrorKind uint8

const (
	ErrNone ErrorKind = iota

	// Parameter validation.
	ErrContextInvalid
	ErrParamsInvalid
	ErrWorkBufNull
	ErrWorkBufTooSmall
	ErrWorkBufUnaligned
	ErrDestinationNull
	ErrDestinationUnaligned
	ErrSourceNull
	ErrSourceSizeWrong

	// Runtime.
	ErrDestinationTooSmall
	ErrSourceSizeMismatch
	ErrTimestampInvalid
	ErrHeaderCompressedTooLarge
	ErrHeaderOriginalTooLarge

	// Internal (programmer errors).
	ErrHeader
	ErrEncoder
	ErrBitstream

	// Generic, reserved for unclassified faults.
	ErrGeneric

	errKindCount
)

var errorMessages = [errKindCount]string{
	ErrNone:                     "no error",
	ErrContextInvalid:           "context is not initialized",
	ErrParamsInvalid:            "compression parameters are invalid",
	ErrWorkBufNull:              "work buffer is required but was nil",
	ErrWorkBufTooSmall:          "work buffer is smaller than required",
	ErrWorkBufUnaligned:         "work buffer is not 4-byte aligned",
	ErrDestinationNull:          "destination buffer is nil",
	ErrDestinationUnaligned:     "destination buffer is not 8-byte aligned",
	ErrSourceNull:               "sample source is nil",
	ErrSourceSizeWrong:          "sample source size is invalid",
	ErrDestinationTooSmall:      "destination buffer is too small",
	ErrSourceSizeMismatch:       "sample count does not match the locked model size",
	ErrTimestampInvalid:         "clock returned a timestamp wider than 48 bits",
	ErrHeaderCompressedTooLarge: "compressed_size exceeds the 24-bit header field",
	ErrHeaderOriginalTooLarge:   "original_size exceeds the 24-bit header field",
	ErrHeader:                   "internal header codec error",
	ErrEncoder:                  "internal entropy encoder error",
	ErrBitstream:                "internal bitstream error",
	ErrGeneric:                  "unclassified error",
}

// Result is the codec's unified 32-bit return value. Values at or below
// maxResultThreshold are byte counts; values above it are error sentinels,
// each encoding one ErrorKind. This mirrors the classic C convention (as
// used by LZ4F's LZ4F_isError) of reserving the top of the return range
// for errors rather than stealing the bottom of it, since legitimate byte
// counts can themselves be arbitrarily large.
type Result uint32

// OK is the zero Result: a successful operation that carries no byte count.
const OK Result = 0

// maxErrorCode bounds the number of distinct error kinds representable in
// a Result (this codec defines far fewer than that).
const maxErrorCode = 128

// maxResultThreshold is the highest value that is never an error.
const maxResultThreshold = ^uint32(0) - maxErrorCode

func resultFor(k ErrorKind) Result {
	return Result(maxResultThreshold) + Result(k)
}

// IsError reports whether r encodes a failure.
func (r Result) IsError() bool {
	return uint32(r) > maxResultThreshold
}

// Kind extracts the ErrorKind from a failing Result. It returns ErrNone
// for a non-error Result.
func (r Result) Kind() ErrorKind {
	if !r.IsError() {
		return ErrNone
	}
	return ErrorKind(uint32(r) - maxResultThreshold)
}

// Size returns the byte count carried by a non-error Result.
func (r Result) Size() uint32 {
	return uint32(r)
}

// ErrorMessage returns a stable human-readable string for the error kind
// carried by r, or "no error" if r is not a failure.
func ErrorMessage(r Result) string {
	k := r.Kind()
	if int(k) >= len(errorMessages) {
		return "unknown error"
	}
	return errorMessages[k]
}

// AsError adapts r to the standard error interface for public, idiomatic
// entry points; it returns nil when r is not a failure.
func (r Result) AsError() error {
	if !r.IsError() {
		return nil
	}
	return errors.New(ErrorMessage(r))
}
