package input

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/edsrzf/mmap-go"
)

// Buffer is a fully materialized, read-only input.
// Bytes must not be used after Close.
type Buffer struct {
	data   []byte
	mapped mmap.MMap
	file   *os.File
}

// Open materializes the file at path, memory-mapping it when useMmap is set.
// Empty files are never mapped.
func Open(path string, useMmap bool) (*Buffer, error) {
	if !useMmap {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read input %s: %w", path, err)
		}
		return &Buffer{data: data}, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input %s: %w", path, err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("stat input %s: %w", path, err)
	}
	if info.Size() == 0 {
		f.Close()
		return &Buffer{data: []byte{}}, nil
	}

	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("mmap input %s: %w", path, err)
	}

	slog.Debug("[Input] Mapped input file", "path", path, "bytes", len(m))
	return &Buffer{data: m, mapped: m, file: f}, nil
}

// Bytes returns the input contents.
func (b *Buffer) Bytes() []byte {
	return b.data
}

// Close releases the mapping and the file.
func (b *Buffer) Close() error {
	var err error
	if b.mapped != nil {
		if uerr := b.mapped.Unmap(); uerr != nil {
			err = fmt.Errorf("unmap input: %w", uerr)
		}
		b.mapped = nil
	}
	if b.file != nil {
		if cerr := b.file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close input: %w", cerr)
		}
		b.file = nil
	}
	b.data = nil
	return err
}
