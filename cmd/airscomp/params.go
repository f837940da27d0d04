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

package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"sigs.k8s.io/yaml"

	"github.com/dloidolt/airs-compression-sub000/airs"
)

// rawConfig is the key=value/YAML surface: every field is a string or a
// plain integer so -p and -config feed the same resolution path. YAML
// unmarshaling goes through sigs.k8s.io/yaml, which converts to JSON and
// uses these json tags.
type rawConfig struct {
	PrimaryPreprocessing    string `json:"primary_preprocessing"`
	PrimaryEncoderType      string `json:"primary_encoder_type"`
	PrimaryEncoderParam     uint16 `json:"primary_encoder_param"`
	PrimaryEncoderOutlier   uint32 `json:"primary_encoder_outlier"`
	SecondaryIterations     uint8  `json:"secondary_iterations"`
	SecondaryPreprocessing  string `json:"secondary_preprocessing"`
	SecondaryEncoderType    string `json:"secondary_encoder_type"`
	SecondaryEncoderParam   uint16 `json:"secondary_encoder_param"`
	SecondaryEncoderOutlier uint32 `json:"secondary_encoder_outlier"`
	ModelRate               uint8  `json:"model_rate"`
	Checksum                bool   `json:"checksum"`
	Fallback                bool   `json:"fallback"`
}

func defaultRawConfig() rawConfig {
	return rawConfig{
		PrimaryPreprocessing:   "none",
		PrimaryEncoderType:     "golomb_zero",
		PrimaryEncoderParam:    4,
		SecondaryPreprocessing: "none",
		SecondaryEncoderType:   "uncompressed",
		Fallback:               true,
	}
}

// loadParams resolves codec parameters from, in increasing priority: the
// built-in defaults, an optional YAML config file, and -p key=value pairs.
func loadParams(configPath, p string) (*airs.Params, error) {
	cfg := defaultRawConfig()

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", configPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", configPath, err)
		}
	}

	if p != "" {
		for _, kv := range strings.Split(p, ",") {
			if kv == "" {
				continue
			}
			k, v, ok := strings.Cut(kv, "=")
			if !ok {
				return nil, fmt.Errorf("-p entry %q is not key=value", kv)
			}
			if err := applyParam(&cfg, strings.TrimSpace(k), strings.TrimSpace(v)); err != nil {
				return nil, err
			}
		}
	}

	return cfg.resolve()
}

func applyParam(cfg *rawConfig, key, value string) error {
	switch key {
	case "primary_preprocessing":
		cfg.PrimaryPreprocessing = value
	case "primary_encoder_type":
		cfg.PrimaryEncoderType = value
	case "primary_encoder_param":
		return setUint16(&cfg.PrimaryEncoderParam, key, value)
	case "primary_encoder_outlier":
		return setUint32(&cfg.PrimaryEncoderOutlier, key, value)
	case "secondary_iterations":
		return setUint8(&cfg.SecondaryIterations, key, value)
	case "secondary_preprocessing":
		cfg.SecondaryPreprocessing = value
	case "secondary_encoder_type":
		cfg.SecondaryEncoderType = value
	case "secondary_encoder_param":
		return setUint16(&cfg.SecondaryEncoderParam, key, value)
	case "secondary_encoder_outlier":
		return setUint32(&cfg.SecondaryEncoderOutlier, key, value)
	case "model_rate":
		return setUint8(&cfg.ModelRate, key, value)
	case "checksum":
		return setBool(&cfg.Checksum, key, value)
	case "fallback":
		return setBool(&cfg.Fallback, key, value)
	default:
		return fmt.Errorf("unknown parameter %q", key)
	}
	return nil
}

func setUint8(dst *uint8, key, value string) error {
	n, err := strconv.ParseUint(value, 10, 8)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = uint8(n)
	return nil
}

func setUint16(dst *uint16, key, value string) error {
	n, err := strconv.ParseUint(value, 10, 16)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = uint16(n)
	return nil
}

func setUint32(dst *uint32, key, value string) error {
	n, err := strconv.ParseUint(value, 10, 32)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = uint32(n)
	return nil
}

func setBool(dst *bool, key, value string) error {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = b
	return nil
}

func (cfg rawConfig) resolve() (*airs.Params, error) {
	primaryPP, err := parsePreprocessing(cfg.PrimaryPreprocessing)
	if err != nil {
		return nil, fmt.Errorf("primary_preprocessing: %w", err)
	}
	primaryET, err := parseEncoderType(cfg.PrimaryEncoderType)
	if err != nil {
		return nil, fmt.Errorf("primary_encoder_type: %w", err)
	}
	secondaryPP, err := parsePreprocessing(cfg.SecondaryPreprocessing)
	if err != nil {
		return nil, fmt.Errorf("secondary_preprocessing: %w", err)
	}
	secondaryET, err := parseEncoderType(cfg.SecondaryEncoderType)
	if err != nil {
		return nil, fmt.Errorf("secondary_encoder_type: %w", err)
	}
	return &airs.Params{
		PrimaryPreprocessing:        primaryPP,
		PrimaryEncoderType:          primaryET,
		PrimaryEncoderParam:         cfg.PrimaryEncoderParam,
		PrimaryEncoderOutlier:       cfg.PrimaryEncoderOutlier,
		SecondaryIterations:         cfg.SecondaryIterations,
		SecondaryPreprocessing:      secondaryPP,
		SecondaryEncoderType:        secondaryET,
		SecondaryEncoderParam:       cfg.SecondaryEncoderParam,
		SecondaryEncoderOutlier:     cfg.SecondaryEncoderOutlier,
		ModelRate:                   cfg.ModelRate,
		ChecksumEnabled:             cfg.Checksum,
		UncompressedFallbackEnabled: cfg.Fallback,
	}, nil
}

func parsePreprocessing(s string) (airs.Preprocessing, error) {
	switch s {
	case "none", "":
		return airs.PreprocessNone, nil
	case "diff":
		return airs.PreprocessDiff, nil
	case "iwt":
		return airs.PreprocessIWT, nil
	case "model":
		return airs.PreprocessModel, nil
	default:
		return 0, fmt.Errorf("unknown preprocessing %q", s)
	}
}

func parseEncoderType(s string) (airs.EncoderType, error) {
	switch s {
	case "uncompressed", "":
		return airs.EncoderUncompressed, nil
	case "golomb_zero":
		return airs.EncoderGolombZero, nil
	case "golomb_multi":
		return airs.EncoderGolombMulti, nil
	default:
		return 0, fmt.Errorf("unknown encoder type %q", s)
	}
}
