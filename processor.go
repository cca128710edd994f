// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package objparse

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/sassoftware/pdf-objparse/logger"
)

// Processor defines the contract for parsing the objects of PDF files.
type Processor interface {
	Parse(ctx context.Context, r io.Reader) (*Document, error)
	ParseFile(ctx context.Context, path string) (*Document, error)
	ParseFiles(ctx context.Context, paths []string) []Result
}

// Result is the outcome of parsing one file with ParseFiles.
type Result struct {
	Path     string
	Document *Document
	Err      error
}

// processor bounds the number of documents parsed at the same time. Every
// document gets its own Tokenizer and Parser.
type processor struct {
	cfg *Config
	sem *semaphore.Weighted
}

// NewProcessor validates the config and creates a new processor.
func NewProcessor(cfg *Config) (*processor, error) {
	cfg = orDefault(cfg)

	//Validate the config object
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	//Set the logger function
	if cfg.Logger != nil {
		logger.SetLogger(cfg.Logger)
	}
	logger.SetDebug(cfg.DebugOn)

	logger.Debug(fmt.Sprintf("Processor initialized: parsing_mode=%v, max_concurrent_docs=%d, document_timeout=%v",
		cfg.ParsingMode, cfg.MaxConcurrentDocs, cfg.DocumentTimeout), true)

	return &processor{
		cfg: cfg,
		sem: semaphore.NewWeighted(int64(cfg.MaxConcurrentDocs)),
	}, nil
}

// Parse parses one document from r within Config.DocumentTimeout.
func (p *processor) Parse(ctx context.Context, r io.Reader) (*Document, error) {
	if err := p.acquireSlot(ctx); err != nil {
		logger.Debug(fmt.Sprintf("Failed to acquire slot: err=%v", err), true)
		return nil, err
	}
	defer p.sem.Release(1)

	ctx, cancel := context.WithTimeout(ctx, p.cfg.DocumentTimeout)
	defer cancel()
	return Parse(ctx, r, p.cfg)
}

// ParseFile opens path and parses it.
func (p *processor) ParseFile(ctx context.Context, path string) (*Document, error) {
	logger.Debug(fmt.Sprintf("Starting parse: path=%s", path), true)

	f, err := os.Open(path)
	if err != nil {
		logger.Debug(fmt.Sprintf("Failed to open PDF: path=%s err=%v", path, err), true)
		return nil, errors.Wrap(err, "open")
	}
	defer f.Close()

	doc, err := p.Parse(ctx, f)
	if err != nil {
		return doc, errors.Wrapf(err, "parse %s", path)
	}
	logger.Debug(fmt.Sprintf("Parse completed: path=%s objects=%d errors=%d", path, len(doc.Objects), len(doc.Errors)), true)
	return doc, nil
}

// ParseFiles parses paths concurrently, at most Config.MaxConcurrentDocs at a
// time. Results are returned in the order of paths; a failing file does not
// stop the others.
func (p *processor) ParseFiles(ctx context.Context, paths []string) []Result {
	results := make([]Result, len(paths))
	var g errgroup.Group
	g.SetLimit(p.cfg.MaxConcurrentDocs)
	for i, path := range paths {
		g.Go(func() error {
			doc, err := p.ParseFile(ctx, path)
			results[i] = Result{Path: path, Document: doc, Err: err}
			if err != nil {
				logger.Error("parse failed", "path", path, "err", err)
			}
			return nil
		})
	}
	_ = g.Wait()
	logger.Debug(fmt.Sprintf("All files processed: total=%d", len(paths)), true)
	return results
}

func (p *processor) acquireSlot(ctx context.Context) error {
	if err := p.sem.Acquire(ctx, 1); err != nil {
		return fmt.Errorf("acquire slot: %w", err)
	}
	logger.Debug("Slot acquired successfully", true)
	return nil
}
