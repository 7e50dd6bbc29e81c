package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/andybalholm/brotli"

	"github.com/onnwee/forcelayout/internal/layout"
	"github.com/onnwee/forcelayout/internal/logger"
)

const brotliExt = ".br"

// fileSource decodes the graph at path on every call. When resume names an
// existing result, its positions seed the graph.
func fileSource(path, resume string) layout.Source {
	return func(ctx context.Context) (*layout.Graph, error) {
		g, err := readGraph(path)
		if err != nil {
			return nil, err
		}
		if resume == "" {
			return g, nil
		}

		res, err := readResult(resume)
		if errors.Is(err, os.ErrNotExist) {
			// First run of a watch loop writing to its own resume file
			return g, nil
		}
		if err != nil {
			return nil, err
		}
		g.Apply(res)
		logger.Debug("Resumed from earlier result", "path", resume, "positions", len(res.Positions))
		return g, nil
	}
}

func readGraph(path string) (*layout.Graph, error) {
	if path == "-" {
		return layout.DecodeGraph(os.Stdin)
	}
	r, closeFn, err := openInput(path)
	if err != nil {
		return nil, err
	}
	defer closeFn()
	return layout.DecodeGraph(r)
}

func readResult(path string) (*layout.Result, error) {
	r, closeFn, err := openInput(path)
	if err != nil {
		return nil, err
	}
	defer closeFn()
	return layout.DecodeResult(r)
}

// openInput opens path, decompressing .br files.
func openInput(path string) (io.Reader, func() error, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	if strings.HasSuffix(path, brotliExt) {
		return brotli.NewReader(f), f.Close, nil
	}
	return f, f.Close, nil
}

// writeOutput replaces path atomically so readers never see a partial result.
// Paths ending in .br are brotli-compressed.
func writeOutput(path string, data []byte) error {
	if path == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := writeEncoded(tmp, path, data); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

func writeEncoded(w io.Writer, path string, data []byte) error {
	if !strings.HasSuffix(path, brotliExt) {
		_, err := w.Write(data)
		return err
	}
	bw := brotli.NewWriterLevel(w, brotli.DefaultCompression)
	if _, err := bw.Write(data); err != nil {
		bw.Close()
		return err
	}
	return bw.Close()
}
