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

import "testing"

func validParams() Params {
	return Params{
		PrimaryPreprocessing:  PreprocessNone,
		PrimaryEncoderType:    EncoderGolombZero,
		PrimaryEncoderParam:   4,
		SecondaryIterations:   3,
		SecondaryPreprocessing: PreprocessDiff,
		SecondaryEncoderType:   EncoderGolombZero,
		SecondaryEncoderParam:  4,
	}
}

func TestParamsValidateAccepts(t *testing.T) {
	p := validParams()
	if res := p.Validate(); res != OK {
		t.Fatalf("Validate: %v", ErrorMessage(res))
	}
}

func TestParamsValidateRejectsModelAsPrimary(t *testing.T) {
	p := validParams()
	p.PrimaryPreprocessing = PreprocessModel
	if res := p.Validate(); res.Kind() != ErrParamsInvalid {
		t.Fatalf("Validate = %v, want params-invalid", ErrorMessage(res))
	}
}

func TestParamsValidateRejectsOutOfRangeEnum(t *testing.T) {
	p := validParams()
	p.PrimaryPreprocessing = Preprocessing(200)
	if res := p.Validate(); res.Kind() != ErrParamsInvalid {
		t.Fatalf("Validate = %v, want params-invalid", ErrorMessage(res))
	}
}

func TestParamsValidateRejectsModelRateOutOfRange(t *testing.T) {
	p := validParams()
	p.SecondaryPreprocessing = PreprocessModel
	p.ModelRate = 17
	if res := p.Validate(); res.Kind() != ErrParamsInvalid {
		t.Fatalf("Validate = %v, want params-invalid", ErrorMessage(res))
	}
}

func TestParamsValidateRejectsBadEncoderParam(t *testing.T) {
	p := validParams()
	p.PrimaryEncoderParam = 0
	if res := p.Validate(); res.Kind() != ErrParamsInvalid {
		t.Fatalf("Validate = %v, want params-invalid", ErrorMessage(res))
	}
}

func TestParamsValidateIgnoresSecondaryWhenDisabled(t *testing.T) {
	p := validParams()
	p.SecondaryIterations = 0
	p.SecondaryEncoderParam = 0 // would be invalid if checked
	if res := p.Validate(); res != OK {
		t.Fatalf("Validate: %v", ErrorMessage(res))
	}
}
