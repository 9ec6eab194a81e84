// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/pdiddy/quote-detection/internal/corpus"
	"github.com/pdiddy/quote-detection/internal/worker"
)

// openInput opens the corpus file and returns a document reader over it.
func openInput(path string) (*corpus.Reader, io.Closer, error) {
	if path == "" {
		return nil, nil, errors.New("input file required: use -i/--input-file")
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening input: %w", err)
	}
	r, err := corpus.NewReader(f, logger)
	if err != nil {
		f.Close()
		return nil, nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return r, f, nil
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// openOutput creates path for writing. Empty or "-" selects stdout.
func openOutput(path string, stdout io.Writer) (io.WriteCloser, error) {
	if path == "" || path == "-" {
		return nopCloser{stdout}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating output: %w", err)
	}
	return f, nil
}

// process runs fn over every document of reader on the given number of
// workers and calls emit with the results in input order. It stops at the
// first emit error; read errors are returned after the documents read so
// far have been emitted.
func process[R any](ctx context.Context, reader *corpus.Reader, workers int, fn func(*corpus.Document) R, emit func(R) error) error {
	pool := worker.NewPool(ctx, workers, func(_ context.Context, doc *corpus.Document) R {
		return fn(doc)
	})
	pool.Start()

	readErr := make(chan error, 1)
	go func() {
		defer pool.Close()
		for {
			doc, err := reader.Next()
			if err == io.EOF {
				readErr <- nil
				return
			}
			if err != nil {
				readErr <- fmt.Errorf("reading corpus: %w", err)
				return
			}
			if !pool.Submit(doc) {
				readErr <- nil
				return
			}
		}
	}()

	var emitErr error
	for r := range pool.Results() {
		if emitErr != nil {
			continue
		}
		if emitErr = emit(r); emitErr != nil {
			pool.Shutdown()
		}
	}
	// The reader goroutine must be done with reader before returning.
	err := <-readErr
	if emitErr != nil {
		return emitErr
	}
	return err
}
