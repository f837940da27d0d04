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

// Preprocessing selects which sample-to-residual transform a ruleset uses.
type Preprocessing uint8

const (
	PreprocessNone Preprocessing = iota
	PreprocessDiff
	PreprocessIWT
	PreprocessModel
)

// EncoderType selects which entropy coder a ruleset uses.
type EncoderType uint8

const (
	EncoderUncompressed EncoderType = iota
	EncoderGolombZero
	EncoderGolombMulti
)

// Params configures a Context: a primary ruleset used on the first pass of
// each reset cycle, and an optional secondary ruleset used for a bounded
// run of subsequent passes before the cycle rolls back to primary.
type Params struct {
	PrimaryPreprocessing  Preprocessing
	PrimaryEncoderType    EncoderType
	PrimaryEncoderParam   uint16 // Golomb parameter g; ignored for uncompressed
	PrimaryEncoderOutlier uint32 // required for golomb_multi; derived for golomb_zero

	SecondaryIterations     uint8 // 0 disables the secondary ruleset entirely
	SecondaryPreprocessing  Preprocessing
	SecondaryEncoderType    EncoderType
	SecondaryEncoderParam   uint16
	SecondaryEncoderOutlier uint32

	ModelRate uint8 // [0,16], meaningful only when secondary preprocessing is model

	ChecksumEnabled             bool
	UncompressedFallbackEnabled bool
}

// Validate checks Params for internal consistency without requiring a
// Context or a work buffer. Context.Init calls this itself, but callers
// that want to reject bad parameters before sizing a work buffer can call
// it directly.
func (p *Params) Validate() Result {
	if p.PrimaryPreprocessing == PreprocessModel {
		// Model prediction needs a prior frame's state; the primary
		// ruleset runs on the first pass of a reset cycle, where no
		// such state exists yet.
		return resultFor(ErrParamsInvalid)
	}
	if p.PrimaryPreprocessing > PreprocessModel || p.SecondaryPreprocessing > PreprocessModel {
		return resultFor(ErrParamsInvalid)
	}
	if p.PrimaryEncoderType > EncoderGolombMulti || p.SecondaryEncoderType > EncoderGolombMulti {
		return resultFor(ErrParamsInvalid)
	}
	if p.SecondaryPreprocessing == PreprocessModel && p.ModelRate > 16 {
		return resultFor(ErrParamsInvalid)
	}
	if _, _, res := newEncoder(p.PrimaryEncoderType, p.PrimaryEncoderParam, p.PrimaryEncoderOutlier); res != OK {
		return res
	}
	if p.SecondaryIterations > 0 {
		if _, _, res := newEncoder(p.SecondaryEncoderType, p.SecondaryEncoderParam, p.SecondaryEncoderOutlier); res != OK {
			return res
		}
	}
	return OK
}
