// Package testutil provides shared fixtures for cadence tests.
//
// It should only be imported by test files (*_test.go).
package testutil

import "errors"

// Mock errors for simulating failures the code under test does not classify.
var (
	// ErrMockUpdate stands in for a mutation that fails midway.
	ErrMockUpdate = errors.New("update failed")

	// ErrMockDisk stands in for an unexpected I/O failure.
	ErrMockDisk = errors.New("disk on fire")
)
