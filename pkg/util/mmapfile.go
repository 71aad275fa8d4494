package util

import (
	"fmt"
	"os"

	"github.com/edsrzf/mmap-go"
)

// mmapThreshold is the size below which plain os.ReadFile wins: mapping a
// tiny file costs more syscalls than reading it.
const mmapThreshold = 64 * 1024

// ReadFileMapped reads a file through a memory mapping, falling back to
// os.ReadFile when the file is small or the mapping fails. The returned
// slice is an owned copy; the mapping is released before returning.
func ReadFileMapped(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if info.Size() < mmapThreshold {
		return os.ReadFile(path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		// Graceful fallback: some filesystems refuse mappings.
		return os.ReadFile(path)
	}
	defer m.Unmap()

	data := make([]byte, len(m))
	copy(data, m)
	return data, nil
}
