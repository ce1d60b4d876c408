// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package parallel provides the data-parallel engine.
//
// Each operation runs a kernel that computes one output element per unit of
// work. Kernels are compiled once per family and output shape and shared by
// every engine in the process.
package parallel

import (
	internalparallel "github.com/born-ml/arith/internal/backend/parallel"
	workers "github.com/born-ml/arith/internal/parallel"
	"github.com/born-ml/arith/tensor"
)

// Backend is the parallel engine.
type Backend = internalparallel.Backend

// Config controls how work is split across goroutines.
type Config = workers.Config

// Compile-time check that Backend implements tensor.Engine.
var _ tensor.Engine = (*Backend)(nil)

// DefaultConfig returns a configuration based on the CPU count.
func DefaultConfig() Config {
	return workers.DefaultConfig()
}

// New creates a parallel engine.
func New(cfg Config) *Backend {
	return internalparallel.New(cfg)
}

// KernelCount returns the number of kernels compiled so far.
func KernelCount() int {
	return internalparallel.KernelCount()
}
