package util

import "runtime"

// GetOptimalPoolSize returns the worker count for CPU-bound fan-out, such
// as running export generators in parallel.
//
// Formula: min(max(runtime.NumCPU() * 2, 4), 32)
//
//   - Minimum 4: some parallelism even on small machines
//   - 2x cores: generators interleave string building with allocation
//   - Maximum 32: more workers than formats is wasted anyway
func GetOptimalPoolSize() int {
	cores := runtime.NumCPU()
	poolSize := cores * 2

	if poolSize < 4 {
		poolSize = 4
	}
	if poolSize > 32 {
		poolSize = 32
	}

	return poolSize
}

// GetOptimalPoolSizeWithOverride returns the pool size, or override when
// override > 0 (for testing and tuning).
func GetOptimalPoolSizeWithOverride(override int) int {
	if override > 0 {
		return override
	}
	return GetOptimalPoolSize()
}
