// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import "errors"

// Sentinel errors for the render package.
var (
	// ErrNoBackend is returned when none of the requested hal backends is
	// registered in the binary.
	ErrNoBackend = errors.New("render: no hal backend available")

	// ErrNoAdapter is returned when a backend exposes no adapter.
	ErrNoAdapter = errors.New("render: no GPU adapter found")

	// ErrProviderHAL is returned by FromProvider when the host does not
	// expose hal.Device and hal.Queue.
	ErrProviderHAL = errors.New("render: provider does not expose hal device and queue")

	// ErrShaderCompile is returned when a WGSL module fails validation or
	// the device rejects it.
	ErrShaderCompile = errors.New("render: shader compilation failed")

	// ErrPipeline is returned when a layout, pipeline, sampler or uniform
	// buffer cannot be created.
	ErrPipeline = errors.New("render: pipeline creation failed")

	// ErrTarget is returned when the offscreen target cannot be created.
	ErrTarget = errors.New("render: render target creation failed")

	// ErrInvalidSize is returned for non-positive viewport dimensions.
	ErrInvalidSize = errors.New("render: viewport size must be positive")

	// ErrNotReady is the panic value of a draw on a rasterizer that was
	// never set up or has been closed.
	ErrNotReady = errors.New("render: rasterizer is not ready")
)
