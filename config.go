// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package objparse

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/sassoftware/pdf-objparse/logger"
)

type ParsingMode string

const (
	// Strict aborts a document at its first parse error.
	Strict ParsingMode = "strict"
	// BestEffort records the error and resumes at the next top-level construct.
	BestEffort ParsingMode = "best-effort"
)

type Config struct {
	MaxConcurrentDocs int           `validate:"min=1,max=64"`
	ParsingMode       ParsingMode   `validate:"oneof=strict best-effort"`
	DocumentTimeout   time.Duration `validate:"required"`
	// MaxScanLength bounds a single string, hex string, stream payload or
	// bare token, in bytes. Zero means unbounded.
	MaxScanLength   int `validate:"min=0"`
	MaxNestingDepth int `validate:"min=1,max=1024"`
	// MaxDecodedSize bounds the output of a stream decoder. Zero means unbounded.
	MaxDecodedSize int64 `validate:"min=0"`
	DebugOn        bool
	Logger         logger.LogFunc
}

func NewDefaultConfig() *Config {
	return &Config{
		MaxConcurrentDocs: 4,
		ParsingMode:       BestEffort,
		DocumentTimeout:   30 * time.Second,
		MaxScanLength:     64 << 20,
		MaxNestingDepth:   256,
		MaxDecodedSize:    256 << 20,
		DebugOn:           false,
	}
}

func (cfg *Config) Validate() error {
	logger.Debug("Validating Config Object")
	validate := validator.New()
	return validate.Struct(cfg)
}

// orDefault returns cfg, or the default configuration if cfg is nil.
func orDefault(cfg *Config) *Config {
	if cfg == nil {
		return NewDefaultConfig()
	}
	return cfg
}
