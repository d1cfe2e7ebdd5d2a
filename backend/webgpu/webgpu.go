// Copyright 2025 The Laminar Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package webgpu provides the GPU backend on WebGPU compute shaders.
//
// WebGPU is a cross-platform compute API that reaches the native GPU
// through wgpu-native:
//   - Windows (D3D12 or Vulkan)
//   - macOS (Metal)
//   - Linux (Vulkan)
//
// Example:
//
//	import (
//	    "github.com/laminar-la/laminar/backend/webgpu"
//	    "github.com/laminar-la/laminar/linalg"
//	    "github.com/laminar-la/laminar/matrix"
//	)
//
//	func main() {
//	    gpu, err := webgpu.New()
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    defer gpu.Release()
//
//	    // WebGPU-tagged operands now dispatch to the device.
//	    a, _ := matrix.NewDenseFrom(2, 2, []float32{4, 3, 6, 3}, matrix.WebGPU)
//	    err = linalg.LUFactorize(a)
//	}
package webgpu

import (
	"github.com/go-webgpu/webgpu/wgpu"

	internalwebgpu "github.com/laminar-la/laminar/internal/backend/webgpu"
	"github.com/laminar-la/laminar/linalg"
)

// Backend executes kernels on a WebGPU device. Operands are uploaded per
// call and results read back synchronously, so the in-place contract of
// the host backend holds on the device too.
type Backend = internalwebgpu.Backend

// Compile-time check that Backend implements linalg.Backend.
var _ linalg.Backend = (*Backend)(nil)

// New initializes the WebGPU device and registers the backend, so
// WebGPU-tagged operands dispatch to it from then on.
//
// Call Release when the process is done with the device; a released
// backend must not be dispatched to again. Returns an error when no
// compatible adapter or native library is present, in which case nothing
// is registered and host execution is unaffected.
func New() (*Backend, error) {
	b, err := internalwebgpu.New()
	if err != nil {
		return nil, err
	}
	linalg.Register(b)
	return b, nil
}

// IsAvailable reports whether a WebGPU adapter can be initialized on
// this system. Useful for graceful fallback to the host backend:
//
//	if webgpu.IsAvailable() {
//	    gpu, err := webgpu.New()
//	    ...
//	}
func IsAvailable() bool {
	return internalwebgpu.IsAvailable()
}

// ListAdapters describes the adapters visible to this process.
func ListAdapters() ([]*wgpu.AdapterInfoGo, error) {
	return internalwebgpu.ListAdapters()
}
