// Package loader handles ROM and save state file operations.
package loader

import (
	"fmt"
	"io"
	"os"

	"github.com/retroenv/retrochip8/internal/vm"
)

// Loader handles loading ROM files and reading and writing save states.
type Loader struct{}

// New creates a new loader.
func New() *Loader {
	return &Loader{}
}

// LoadROM reads a raw ROM file. Files that do not fit into the program
// memory are rejected without reading them completely.
func (l *Loader) LoadROM(path string) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(io.LimitReader(file, vm.MaxROMSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	if len(data) > vm.MaxROMSize {
		return nil, fmt.Errorf("%w: file %s exceeds %d bytes", vm.ErrROMTooLarge, path, vm.MaxROMSize)
	}
	return data, nil
}

// LoadState reads a save state file.
func (l *Loader) LoadState(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading save state %s: %w", path, err)
	}
	return data, nil
}

// SaveState writes a save state file.
func (l *Loader) SaveState(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing save state %s: %w", path, err)
	}
	return nil
}
